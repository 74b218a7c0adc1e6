package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/labelcrop/output"
)

// Config holds the full labelcrop CLI configuration. Every field can also
// be set from the command line; flags override the file.
type Config struct {
	Mode    string `yaml:"mode"`    // hangtag | carton
	Output  string `yaml:"output"`  // ZIP archive path
	Copies  int    `yaml:"copies"`  // page copies per hangtag label
	Workers int    `yaml:"workers"` // concurrent renders, 0 = GOMAXPROCS

	Columns   int     `yaml:"columns"`
	Grammar   string  `yaml:"grammar"`
	MinDigits int     `yaml:"min_digits"`
	Zoom      float64 `yaml:"zoom"`

	Reference ReferenceConfig `yaml:"reference"`

	HangtagPrefix string `yaml:"hangtag_prefix"`
	CartonPrefix  string `yaml:"carton_prefix"`

	Verbose bool `yaml:"verbose"`
}

// ReferenceConfig selects the crop-window policy.
type ReferenceConfig struct {
	Policy string  `yaml:"policy"` // fixed | first-seen | none
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:          "hangtag",
		Output:        "labels.zip",
		Copies:        1,
		HangtagPrefix: output.DefaultHangtagPrefix,
		CartonPrefix:  output.DefaultCartonPrefix,
	}
}

// LoadConfig reads and parses a YAML config file. Returns DefaultConfig
// merged with the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	switch c.Mode {
	case "hangtag", "carton":
	default:
		return fmt.Errorf("mode must be hangtag or carton, got %q", c.Mode)
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if c.Copies < 1 {
		return fmt.Errorf("copies must be at least 1, got %d", c.Copies)
	}
	switch c.Reference.Policy {
	case "", "fixed", "first-seen", "none":
	default:
		return fmt.Errorf("reference policy must be fixed, first-seen or none, got %q", c.Reference.Policy)
	}
	if c.Reference.Policy == "fixed" && (c.Reference.Width <= 0 || c.Reference.Height <= 0) {
		return fmt.Errorf("fixed reference policy requires positive width and height")
	}
	return nil
}
