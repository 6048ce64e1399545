// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the application configuration: defaults, evidence
// table location, pipeline tuning and named profiles. Structural limits
// (weights, thresholds) are validated at load so a bad config fails at
// startup, not mid-analysis.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format      string  `yaml:"format"`
		Severities  string  `yaml:"severities"`
		MinEvidence float64 `yaml:"min_evidence" validate:"gte=0,lte=1"`
		ContentType string  `yaml:"content_type"`
		Audience    string  `yaml:"audience"`
		Domain      string  `yaml:"domain"`
		Verbose     bool    `yaml:"verbose"`
		Debug       bool    `yaml:"debug"`
		NoColor     bool    `yaml:"no_color"`
		Recursive   bool    `yaml:"recursive"`
	} `yaml:"defaults"`

	// Evidence table configuration
	Tables struct {
		Dir   string `yaml:"dir"`
		Watch bool   `yaml:"watch"`
	} `yaml:"tables"`

	// Name registry configuration
	Registry struct {
		Path string `yaml:"path"`
	} `yaml:"registry"`

	// Entity ensemble configuration
	Entities struct {
		ConfidenceThreshold float64 `yaml:"confidence_threshold" validate:"gte=0,lte=1"`
	} `yaml:"entities"`

	// Validation pipeline configuration
	Pipeline PipelineConfig `yaml:"pipeline"`

	// Suppression file path
	Suppressions string `yaml:"suppressions"`

	// Profiles for different analysis scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// PipelineConfig tunes consensus and the pass set.
type PipelineConfig struct {
	Consensus        string       `yaml:"consensus" validate:"oneof=weighted_majority unanimous"`
	Margin           float64      `yaml:"margin" validate:"gte=0"`
	EarlyTermination bool         `yaml:"early_termination"`
	DecisiveMargin   float64      `yaml:"decisive_margin" validate:"gte=0,lte=1"`
	Passes           []PassConfig `yaml:"passes" validate:"dive"`
}

// PassConfig enables one validation pass with its weight.
type PassConfig struct {
	Name    string  `yaml:"name" validate:"required,oneof=morphological contextual domain cross_rule"`
	Weight  float64 `yaml:"weight" validate:"gte=0"`
	Enabled bool    `yaml:"enabled"`
}

// Profile represents overrides for a named analysis scenario.
type Profile struct {
	Description string   `yaml:"description,omitempty"`
	ContentType *string  `yaml:"content_type,omitempty"`
	Audience    *string  `yaml:"audience,omitempty"`
	Domain      *string  `yaml:"domain,omitempty"`
	MinEvidence *float64 `yaml:"min_evidence,omitempty" validate:"omitempty,gte=0,lte=1"`
	Severities  *string  `yaml:"severities,omitempty"`
}

var validate = validator.New()

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Defaults.Format = "text"
	cfg.Defaults.Severities = "all"
	cfg.Defaults.MinEvidence = 0.1
	cfg.Tables.Dir = "tables"
	cfg.Entities.ConfidenceThreshold = 0.6
	cfg.Pipeline = PipelineConfig{
		Consensus:        "weighted_majority",
		EarlyTermination: true,
		DecisiveMargin:   0.5,
		Passes: []PassConfig{
			{Name: "morphological", Weight: 1.0, Enabled: true},
			{Name: "contextual", Weight: 1.0, Enabled: true},
			{Name: "domain", Weight: 1.0, Enabled: true},
			{Name: "cross_rule", Weight: 2.0, Enabled: true},
		},
	}
	return cfg
}

// LoadConfig loads configuration from a file, applying defaults for
// anything unset. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	for name, profile := range cfg.Profiles {
		if err := validate.Struct(profile); err != nil {
			return nil, fmt.Errorf("invalid profile %q: %w", name, err)
		}
	}
	return cfg, nil
}

// FindConfigFile looks for a config file in standard locations.
func FindConfigFile() string {
	candidates := []string{
		"stylescan.yaml",
		".stylescan.yaml",
	}
	if dir := configDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "config.yaml"))
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// configDir returns the user config directory, honoring the explicit
// override and XDG conventions.
func configDir() string {
	if dir := os.Getenv("STYLESCAN_CONFIG_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stylescan")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "stylescan")
}

// ApplyProfile overlays a named profile's overrides onto the defaults.
func (c *Config) ApplyProfile(name string) (*Profile, error) {
	profile, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found", name)
	}
	if profile.ContentType != nil {
		c.Defaults.ContentType = *profile.ContentType
	}
	if profile.Audience != nil {
		c.Defaults.Audience = *profile.Audience
	}
	if profile.Domain != nil {
		c.Defaults.Domain = *profile.Domain
	}
	if profile.MinEvidence != nil {
		c.Defaults.MinEvidence = *profile.MinEvidence
	}
	if profile.Severities != nil {
		c.Defaults.Severities = *profile.Severities
	}
	return &profile, nil
}
