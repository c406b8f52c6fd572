package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Canvas Canvas `json:"canvas"`
	Crop   Crop   `json:"crop"`
	Detect Detect `json:"detect"`
	Output Output `json:"output"`
}

// Canvas holds the editor surface defaults
type Canvas struct {
	Preset       string  `json:"preset"`
	DisplayScale float64 `json:"display_scale"`
	Touch        bool    `json:"touch"`
}

// Crop holds face-crop defaults
type Crop struct {
	Padding  float64 `json:"padding"`
	ToSquare bool    `json:"to_square"`
	Format   string  `json:"format"`
	Quality  int     `json:"quality"`
}

// Detect holds face detection settings
type Detect struct {
	CascadePath string `json:"cascade_path"`
	Model       string `json:"model"`
	ServerURL   string `json:"server_url"`
}

// Output holds configuration for output generation
type Output struct {
	DefaultFormat string `json:"default_format"`
	OutputDir     string `json:"output_dir"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Canvas: Canvas{
			Preset:       "youtube",
			DisplayScale: 1.0,
		},
		Crop: Crop{
			Padding:  0.3,
			ToSquare: true,
			Format:   "jpg",
			Quality:  92,
		},
		Detect: Detect{
			Model:     "llava",
			ServerURL: "http://localhost:11434",
		},
		Output: Output{
			DefaultFormat: "png",
			OutputDir:     "./output",
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Canvas.Preset {
	case "youtube", "instagram", "square":
	default:
		return fmt.Errorf("canvas.preset must be youtube, instagram or square")
	}

	if c.Canvas.DisplayScale <= 0 {
		return fmt.Errorf("canvas.display_scale must be positive")
	}

	if c.Crop.Padding < 0 || c.Crop.Padding > 1 {
		return fmt.Errorf("crop.padding must be between 0 and 1")
	}

	if c.Crop.Quality < 1 || c.Crop.Quality > 100 {
		return fmt.Errorf("crop.quality must be between 1 and 100")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "thumbstudio", "config.json")
}
