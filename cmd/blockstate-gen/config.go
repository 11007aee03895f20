package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Config drives one generator run.
type Config struct {
	// Definition is the path of the definition source to compile.
	Definition string `toml:"definition"`
	// Snapshot is the path the compiled snapshot is written to. Empty skips
	// snapshot output and only verifies the definition.
	Snapshot string `toml:"snapshot"`
	// Verbose enables debug logging.
	Verbose bool `toml:"verbose"`
}

// LoadConfig reads and validates a generator config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal toml: %w", err)
	}
	if cfg.Definition == "" {
		return nil, fmt.Errorf("definition is required")
	}
	return &cfg, nil
}
