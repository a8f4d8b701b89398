package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveTo writes the config to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c.redacted())
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// String renders the effective config as YAML with secrets masked.
func (c *Config) String() string {
	data, err := yaml.Marshal(c.redacted())
	if err != nil {
		return err.Error()
	}
	return string(data)
}

func (c *Config) redacted() *Config {
	cp := *c
	if cp.Speech.OpenAIAPIKey != "" {
		cp.Speech.OpenAIAPIKey = "***"
	}
	return &cp
}
