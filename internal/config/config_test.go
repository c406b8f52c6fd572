package config

import (
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
	if cfg.Canvas.Preset != "youtube" {
		t.Errorf("Expected youtube preset, got %q", cfg.Canvas.Preset)
	}
	if cfg.Crop.Padding != 0.3 {
		t.Errorf("Expected padding 0.3, got %v", cfg.Crop.Padding)
	}
	if !cfg.Crop.ToSquare {
		t.Error("Crops should square by default")
	}
	if cfg.Detect.ServerURL == "" {
		t.Error("Default detect server URL missing")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	cfg := Default()
	cfg.Canvas.Preset = "instagram"
	cfg.Crop.Quality = 75

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded.Canvas.Preset != "instagram" {
		t.Errorf("Preset lost in round trip: %q", loaded.Canvas.Preset)
	}
	if loaded.Crop.Quality != 75 {
		t.Errorf("Quality lost in round trip: %d", loaded.Crop.Quality)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad preset", func(c *Config) { c.Canvas.Preset = "tiktok" }},
		{"zero scale", func(c *Config) { c.Canvas.DisplayScale = 0 }},
		{"negative padding", func(c *Config) { c.Crop.Padding = -0.1 }},
		{"excess padding", func(c *Config) { c.Crop.Padding = 1.5 }},
		{"zero quality", func(c *Config) { c.Crop.Quality = 0 }},
		{"excess quality", func(c *Config) { c.Crop.Quality = 101 }},
	}

	for _, test := range tests {
		cfg := Default()
		test.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", test.name)
		}
	}
}
