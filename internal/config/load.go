package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "LipsyncAvatar")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "LipsyncAvatar")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "lipsync-avatar")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "lipsync-avatar")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// OpenAIKey resolves the OpenAI API key. The config value wins; otherwise
// the env file (if present) is loaded without overriding the process
// environment and OPENAI_API_KEY is read.
func (c *Config) OpenAIKey() (string, error) {
	if c.Speech.OpenAIAPIKey != "" {
		return c.Speech.OpenAIAPIKey, nil
	}
	if c.Speech.EnvFile != "" {
		if _, err := os.Stat(c.Speech.EnvFile); err == nil {
			if err := godotenv.Load(c.Speech.EnvFile); err != nil {
				return "", fmt.Errorf("loading %s: %w", c.Speech.EnvFile, err)
			}
		}
	}
	return os.Getenv("OPENAI_API_KEY"), nil
}
