package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conbuild/conbuild/internal/adapters/config"
	"github.com/conbuild/conbuild/internal/core/domain"
)

func validConfig() *domain.BuildConfig {
	return &domain.BuildConfig{
		TagName:       "4.0.0",
		ThemeFile:     "theme.css",
		IndexFile:     "index.html",
		AppTitle:      "Console",
		BundleCommand: []string{"npx", "webpack"},
		SourceDir:     config.DefaultSourceDir,
		OutputDir:     config.DefaultOutputDir,
	}
}

func findingRules(result *domain.ValidationResult) []string {
	names := make([]string, 0, len(result.Findings))
	for _, f := range result.Findings {
		names = append(names, f.Rule)
	}
	return names
}

func TestValidate_ValidConfig(t *testing.T) {
	result := config.Validate(validConfig())

	assert.True(t, result.OK())
	assert.Empty(t, result.Findings)
}

func TestValidate_MissingTag(t *testing.T) {
	cfg := validConfig()
	cfg.TagName = "  "

	result := config.Validate(cfg)

	require.False(t, result.OK())
	assert.Contains(t, findingRules(result), "tag-required")
	require.Len(t, result.Errors(), 1)
	assert.Equal(t, domain.SeverityError, result.Errors()[0].Severity)
}

func TestValidate_MissingBundleCommand(t *testing.T) {
	cfg := validConfig()
	cfg.BundleCommand = nil

	result := config.Validate(cfg)

	assert.False(t, result.OK())
	assert.Contains(t, findingRules(result), "bundle-command-required")
}

func TestValidate_WarningsDoNotFail(t *testing.T) {
	cfg := validConfig()
	cfg.ThemeFile = "theme.scss"
	cfg.IndexFile = "index.htm"

	result := config.Validate(cfg)

	assert.True(t, result.OK())
	assert.Len(t, result.Warnings(), 2)
	assert.Contains(t, findingRules(result), "theme-extension")
	assert.Contains(t, findingRules(result), "index-extension")
}

func TestValidate_LongTitle(t *testing.T) {
	cfg := validConfig()
	cfg.AppTitle = strings.Repeat("x", 201)

	result := config.Validate(cfg)

	assert.True(t, result.OK())
	assert.Contains(t, findingRules(result), "title-length")
}

func TestValidate_EmptyAttribute(t *testing.T) {
	cfg := validConfig()
	cfg.Attributes = []domain.Attribute{{Value: " "}}

	result := config.Validate(cfg)

	assert.True(t, result.OK())
	assert.Contains(t, findingRules(result), "attributes-shape")
}

func TestValidate_EmptyAttributeMapping(t *testing.T) {
	cfg := validConfig()
	cfg.Attributes = []domain.Attribute{{Pairs: map[string]string{}}}

	result := config.Validate(cfg)

	assert.Contains(t, findingRules(result), "attributes-shape")
}

func TestValidate_OutputInsideSource(t *testing.T) {
	cfg := validConfig()
	cfg.SourceDir = "src"
	cfg.OutputDir = "src/dist"

	result := config.Validate(cfg)

	assert.False(t, result.OK())
	assert.Contains(t, findingRules(result), "output-inside-source")
}

func TestRuleValidator_ImplementsPort(t *testing.T) {
	v := config.NewValidator()

	result := v.Validate(validConfig())
	assert.True(t, result.OK())
}
