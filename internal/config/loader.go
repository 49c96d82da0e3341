package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables that override commerce settings from the file.
const (
	EnvAPIKey  = "ONCADE_API_KEY"
	EnvGameID  = "ONCADE_GAME_ID"
	EnvBaseURL = "ONCADE_API_URL"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.flappy/config.yaml -> ./configs/flappy.yaml -> embedded default.
// Values missing from a file keep their defaults. Environment overrides are
// applied last.
func Load(customPath string) (FlappyConfig, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultFlappyConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/flappy.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultFlappyConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultFlappyYAML, &cfg); err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ApplyEnv overrides commerce credentials from the environment.
// getenv is os.Getenv outside of tests.
func ApplyEnv(cfg *FlappyConfig, getenv func(string) string) {
	if v := getenv(EnvAPIKey); v != "" {
		cfg.Commerce.APIKey = v
	}
	if v := getenv(EnvGameID); v != "" {
		cfg.Commerce.GameID = v
	}
	if v := getenv(EnvBaseURL); v != "" {
		cfg.Commerce.BaseURL = v
	}
}

// UserPath returns a path inside ~/.flappy, or empty if home is unavailable.
func UserPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", name)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
