package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// TOMLConfig represents the TOML configuration file structure.
type TOMLConfig struct {
	HTTP    TOMLHTTPConfig    `toml:"http"`
	MongoDB TOMLMongoDBConfig `toml:"mongodb"`
	DevMode bool              `toml:"dev_mode"`
}

// TOMLHTTPConfig represents HTTP configuration in TOML
type TOMLHTTPConfig struct {
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// TOMLMongoDBConfig represents MongoDB configuration in TOML
type TOMLMongoDBConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// loadTOML reads a TOML file and merges non-zero values into cfg.
func loadTOML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var tc TOMLConfig
	if err := toml.Unmarshal(data, &tc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if tc.HTTP.Port != 0 {
		cfg.HTTP.Port = tc.HTTP.Port
	}
	if len(tc.HTTP.CORSOrigins) > 0 {
		cfg.HTTP.CORSOrigins = tc.HTTP.CORSOrigins
	}
	if tc.MongoDB.URI != "" {
		cfg.MongoDB.URI = tc.MongoDB.URI
	}
	if tc.MongoDB.Database != "" {
		cfg.MongoDB.Database = tc.MongoDB.Database
	}
	if tc.DevMode {
		cfg.DevMode = true
	}

	return nil
}
