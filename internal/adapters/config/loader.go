// Package config provides the configuration loader and the option validation
// rules for conbuild.
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/conbuild/conbuild/internal/core/domain"
	"github.com/conbuild/conbuild/internal/core/ports"
)

// DefaultFilename is the configuration file looked up in the working
// directory.
const DefaultFilename = "conbuild.yaml"

// Defaults applied to fields left empty in the configuration file.
const (
	DefaultSourceDir = ".conbuild/src"
	DefaultOutputDir = "dist"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
	logger   ports.Logger
}

// NewLoader creates a loader for the default configuration filename.
func NewLoader(logger ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{
		Filename: DefaultFilename,
		logger:   logger,
	}
}

// Load reads the configuration from the given working directory.
func (l *FileConfigLoader) Load(cwd string) (*domain.BuildConfig, error) {
	path := filepath.Join(cwd, l.Filename)
	if l.logger != nil {
		l.logger.Debug("loading configuration: " + path)
	}
	return Load(path)
}

// Load reads a configuration file from the given path. Unknown fields are
// rejected so a typo in the file surfaces as a load error rather than a
// silently ignored option. A missing file yields an empty configuration with
// defaults applied.
func Load(path string) (*domain.BuildConfig, error) {
	cfg := &domain.BuildConfig{}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	if len(bytes.TrimSpace(data)) == 0 {
		applyDefaults(cfg)
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *domain.BuildConfig) {
	if cfg.SourceDir == "" {
		cfg.SourceDir = DefaultSourceDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
}
