package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/nfsprofile/internal/rspec"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Profile is a builtin variant name or a path to a profile file. Empty
	// means the profile comes from ParamPaths, or the default variant.
	Profile    string
	ParamPaths []string // hcl/yaml files or directories

	// Overrides are name=value assignments applied after all files.
	Overrides map[string]string

	Format     rspec.Format
	OutputPath string // empty writes to the app's output writer

	Describe     bool
	ListProfiles bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Format == "" {
		cfg.Format = rspec.FormatXML
	}
	if _, err := rspec.ParseFormat(string(cfg.Format)); err != nil {
		return nil, err
	}
	for name := range cfg.Overrides {
		if strings.TrimSpace(name) == "" {
			return nil, errors.New("parameter override with an empty name")
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.Describe && cfg.ListProfiles {
		return nil, fmt.Errorf("describe and list-profiles cannot be combined")
	}
	return &cfg, nil
}
