package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen      string        `yaml:"listen"`
	DatabaseURL string        `yaml:"database_url"`
	Session     SessionConfig `yaml:"session"`
	Market      MarketConfig  `yaml:"market"`
	Logs        LogsConfig    `yaml:"logs"`
	TLS         TLSConfig     `yaml:"tls"`
}

type SessionConfig struct {
	// Timeout bounds how long an identity stays valid without a logout.
	// Zero means the session never expires.
	Timeout time.Duration `yaml:"timeout"`
	Secret  string        `yaml:"secret"`
}

type MarketConfig struct {
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type LogsConfig struct {
	Retention time.Duration `yaml:"retention"`
}

type TLSConfig struct {
	Enabled bool   `yaml:"enabled"`
	Cert    string `yaml:"cert"`
	Key     string `yaml:"key"`
}

var C Config

// databaseEnvVars is the recognized set of connection-string variables, in
// precedence order. The older Mongo-era names still work.
var databaseEnvVars = []string{"DATABASE_URL", "MONGODB_URI", "MONGO_URI"}

func Load() error {
	// Defaults
	C = Config{
		Listen: ":8080",
		Session: SessionConfig{
			Timeout: 24 * time.Hour,
		},
		Market: MarketConfig{
			RequestTimeout: 10 * time.Second,
		},
		Logs: LogsConfig{
			Retention: 48 * time.Hour,
		},
	}

	// Load from YAML if exists
	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &C); err != nil {
			return err
		}
	}

	// Environment overrides
	if v := os.Getenv("LISTEN"); v != "" {
		C.Listen = v
	}
	if v := os.Getenv("SESSION_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			C.Session.Timeout = d
		}
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		C.Session.Secret = v
	}
	if v := os.Getenv("MARKET_BASE_URL"); v != "" {
		C.Market.BaseURL = v
	}
	if v := os.Getenv("LOGS_RETENTION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			C.Logs.Retention = d
		}
	}
	if v := os.Getenv("TLS_ENABLED"); v == "true" {
		C.TLS.Enabled = true
	}
	if v := os.Getenv("TLS_CERT"); v != "" {
		C.TLS.Cert = v
	}
	if v := os.Getenv("TLS_KEY"); v != "" {
		C.TLS.Key = v
	}

	if v := resolveDatabaseURL(); v != "" {
		C.DatabaseURL = v
	}
	if C.DatabaseURL == "" {
		return fmt.Errorf("database connection string not found: set one of %v or database_url in config.yaml", databaseEnvVars)
	}

	return nil
}

// resolveDatabaseURL walks the recognized variable names in precedence
// order and returns the first non-empty value.
func resolveDatabaseURL() string {
	for _, name := range databaseEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
