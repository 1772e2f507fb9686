// Package config loads qed configuration from the workspace .qed directory.
// A missing config file is not an error: every field has a default, and a
// handful of environment variables override the file for scripting.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Dir is the workspace subdirectory holding config, logs and the progress
// database.
const Dir = ".qed"

// Config holds all qed configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Shor    ShorConfig    `yaml:"shor"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// BackendConfig selects the external quantum backend.
type BackendConfig struct {
	Name  string `yaml:"name"`  // registered backend name; "none" by default
	Shots int    `yaml:"shots"` // measurements per run
}

// ShorConfig tunes the classical factoring shell.
type ShorConfig struct {
	MaxAttempts int   `yaml:"max_attempts"` // retry bound for the base loop
	OrderBound  int64 `yaml:"order_bound"`  // cap for brute-force order search; 0 = exhaustive
}

// UIConfig controls terminal rendering.
type UIConfig struct {
	ColorMode string `yaml:"color_mode"` // auto, dark, light, plain
	Width     int    `yaml:"width"`      // wrap width for rendered markdown
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Backend: BackendConfig{Name: "none", Shots: 1024},
		Shor:    ShorConfig{MaxAttempts: 64},
		UI:      UIConfig{ColorMode: "auto", Width: 80},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Path returns the config file location for a workspace.
func Path(workspace string) string {
	return filepath.Join(workspace, Dir, "config.yaml")
}

// Load reads the workspace config, layering file values and then environment
// overrides on top of the defaults.
func Load(workspace string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(Path(workspace))
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return cfg, fmt.Errorf("config: reading %s: %w", Path(workspace), err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parsing %s: %w", Path(workspace), err)
		}
	}

	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config back to the workspace, creating .qed if needed.
func Save(workspace string, cfg Config) error {
	if err := os.MkdirAll(filepath.Join(workspace, Dir), 0o755); err != nil {
		return fmt.Errorf("config: creating %s: %w", Dir, err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshaling: %w", err)
	}
	return os.WriteFile(Path(workspace), data, 0o644)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("QED_BACKEND"); v != "" {
		cfg.Backend.Name = v
	}
	if v := os.Getenv("QED_SHOTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Backend.Shots = n
		}
	}
	if v := os.Getenv("QED_COLOR_MODE"); v != "" {
		cfg.UI.ColorMode = v
	}
	if v := os.Getenv("QED_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func (c Config) validate() error {
	switch c.UI.ColorMode {
	case "auto", "dark", "light", "plain":
	default:
		return fmt.Errorf("config: unknown color_mode %q", c.UI.ColorMode)
	}
	if c.Backend.Shots < 1 {
		return fmt.Errorf("config: shots must be positive, got %d", c.Backend.Shots)
	}
	if c.Shor.MaxAttempts < 1 {
		return fmt.Errorf("config: shor.max_attempts must be positive, got %d", c.Shor.MaxAttempts)
	}
	return nil
}
