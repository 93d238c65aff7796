package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the AccessDeck authorization core.
type Config struct {
	// HTTP server configuration (health/metrics surface only)
	HTTP HTTPConfig

	// MongoDB configuration
	MongoDB MongoDBConfig

	// Development mode
	DevMode bool
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port        int
	CORSOrigins []string
}

// MongoDBConfig holds MongoDB connection configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// Default returns a configuration with local development defaults.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:        8086,
			CORSOrigins: []string{"*"},
		},
		MongoDB: MongoDBConfig{
			URI:      "mongodb://localhost:27017",
			Database: "accessdeck",
		},
	}
}

// Load builds the configuration from the optional TOML file named by
// ACCESSDECK_CONFIG, then applies environment variable overrides.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("ACCESSDECK_CONFIG"); path != "" {
		if err := loadTOML(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides lets environment variables win over file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ACCESSDECK_HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Port = port
		}
	}
	if v := os.Getenv("ACCESSDECK_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("ACCESSDECK_MONGODB_URI"); v != "" {
		cfg.MongoDB.URI = v
	}
	if v := os.Getenv("ACCESSDECK_MONGODB_DATABASE"); v != "" {
		cfg.MongoDB.Database = v
	}
	if v := os.Getenv("ACCESSDECK_DEV"); v != "" {
		cfg.DevMode = v == "true" || v == "1"
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
