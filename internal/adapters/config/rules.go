package config

import (
	"fmt"
	"strings"

	"github.com/conbuild/conbuild/internal/core/domain"
)

// maxTitleLength bounds AppTitle; longer titles are almost always a pasted
// template mistake.
const maxTitleLength = 200

// rule is one check of the option validation schema. A rule returns nil when
// the configuration passes.
type rule struct {
	name  string
	check func(cfg *domain.BuildConfig) *domain.Finding
}

// rules is the fixed validation schema, evaluated in order.
var rules = []rule{
	{
		name: "tag-required",
		check: func(cfg *domain.BuildConfig) *domain.Finding {
			if strings.TrimSpace(cfg.TagName) == "" {
				return &domain.Finding{
					Severity: domain.SeverityError,
					Message:  "tagName is required: the console is built from a tagged upstream release",
				}
			}
			return nil
		},
	},
	{
		name: "bundle-command-required",
		check: func(cfg *domain.BuildConfig) *domain.Finding {
			if len(cfg.BundleCommand) == 0 {
				return &domain.Finding{
					Severity: domain.SeverityError,
					Message:  "bundleCommand is required",
				}
			}
			return nil
		},
	},
	{
		name: "theme-extension",
		check: func(cfg *domain.BuildConfig) *domain.Finding {
			if cfg.ThemeFile != "" && !strings.HasSuffix(cfg.ThemeFile, ".css") {
				return &domain.Finding{
					Severity: domain.SeverityWarning,
					Message:  fmt.Sprintf("themeFile %q does not look like a stylesheet", cfg.ThemeFile),
				}
			}
			return nil
		},
	},
	{
		name: "index-extension",
		check: func(cfg *domain.BuildConfig) *domain.Finding {
			if cfg.IndexFile != "" && !strings.HasSuffix(cfg.IndexFile, ".html") {
				return &domain.Finding{
					Severity: domain.SeverityWarning,
					Message:  fmt.Sprintf("indexFile %q does not look like an HTML page", cfg.IndexFile),
				}
			}
			return nil
		},
	},
	{
		name: "title-length",
		check: func(cfg *domain.BuildConfig) *domain.Finding {
			if len(cfg.AppTitle) > maxTitleLength {
				return &domain.Finding{
					Severity: domain.SeverityWarning,
					Message:  fmt.Sprintf("appTitle is %d characters long and will be truncated by most browsers", len(cfg.AppTitle)),
				}
			}
			return nil
		},
	},
	{
		name: "attributes-shape",
		check: func(cfg *domain.BuildConfig) *domain.Finding {
			for i, attr := range cfg.Attributes {
				if attr.IsScalar() && strings.TrimSpace(attr.Value) == "" {
					return &domain.Finding{
						Severity: domain.SeverityWarning,
						Message:  fmt.Sprintf("attributes[%d] is empty and will be ignored by the bundler", i),
					}
				}
				if !attr.IsScalar() && len(attr.Pairs) == 0 {
					return &domain.Finding{
						Severity: domain.SeverityWarning,
						Message:  fmt.Sprintf("attributes[%d] is an empty mapping", i),
					}
				}
			}
			return nil
		},
	},
	{
		name: "output-inside-source",
		check: func(cfg *domain.BuildConfig) *domain.Finding {
			if cfg.SourceDir != "" && strings.HasPrefix(cfg.OutputDir, cfg.SourceDir+"/") {
				return &domain.Finding{
					Severity: domain.SeverityError,
					Message:  "outputDir must not be nested inside sourceDir",
				}
			}
			return nil
		},
	},
}

// Validate checks cfg against the fixed validation schema and returns the
// collected findings. Warnings do not affect the outcome; a single error
// finding makes the configuration invalid.
func Validate(cfg *domain.BuildConfig) *domain.ValidationResult {
	result := &domain.ValidationResult{}
	for _, r := range rules {
		if f := r.check(cfg); f != nil {
			f.Rule = r.name
			result.Findings = append(result.Findings, *f)
		}
	}
	return result
}
