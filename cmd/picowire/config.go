package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const defaultBufferSize = 512

// Config holds tool settings loaded from a TOML file. Flags override file
// values.
type Config struct {
	// SchemaPaths lists .proto files or directories to load at startup.
	SchemaPaths []string `toml:"schema_paths"`

	// BufferSize is the capacity in bytes of the bounded encode buffer.
	BufferSize int `toml:"buffer_size"`
}

// loadConfig reads the TOML config at path. An empty path falls back to
// picowire.toml in the working directory; a missing default file is not an
// error.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{BufferSize: defaultBufferSize}

	explicit := path != ""
	if !explicit {
		path = "picowire.toml"
	}

	if _, err := os.Stat(path); err != nil {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}
	return cfg, nil
}
