package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Mode != "hangtag" || cfg.Copies != 1 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labelcrop.yaml")
	data := []byte(`
mode: carton
output: cartons.zip
copies: 3
columns: 4
reference:
  policy: fixed
  width: 82.69
  height: 78.56
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Mode != "carton" || cfg.Output != "cartons.zip" || cfg.Copies != 3 {
		t.Errorf("loaded config = %+v", cfg)
	}
	if cfg.Reference.Policy != "fixed" || cfg.Reference.Width != 82.69 {
		t.Errorf("reference = %+v", cfg.Reference)
	}
	// Unset fields keep their defaults.
	if cfg.HangtagPrefix == "" {
		t.Error("defaults not merged under the file")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad mode", func(c *Config) { c.Mode = "sticker" }},
		{"empty output", func(c *Config) { c.Output = "" }},
		{"zero copies", func(c *Config) { c.Copies = 0 }},
		{"bad policy", func(c *Config) { c.Reference.Policy = "sometimes" }},
		{"fixed without size", func(c *Config) { c.Reference.Policy = "fixed" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
