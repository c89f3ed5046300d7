package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultSessionSecret = "dev-secret-change-me"

type Config struct {
	Addr            string        `yaml:"addr"`
	DatabasePath    string        `yaml:"database_path"`
	SessionSecret   string        `yaml:"session_secret"`
	SessionDuration time.Duration `yaml:"session_duration"`
	APITimeout      time.Duration `yaml:"timeout"`
	AdminUsername   string        `yaml:"admin_username"`
	AdminPassword   string        `yaml:"admin_password"`
}

// LoadConfig builds the configuration from environment variables and,
// when path is non-empty, a YAML file layered on top.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:            getEnv("TIMESHEET_ADDR", ":8080"),
		DatabasePath:    getEnv("TIMESHEET_DATABASE_PATH", "timesheet.db"),
		SessionSecret:   getEnv("TIMESHEET_SESSION_SECRET", defaultSessionSecret),
		SessionDuration: 12 * time.Hour,
		APITimeout:      15 * time.Second,
		AdminUsername:   getEnv("TIMESHEET_ADMIN_USERNAME", "admin"),
		AdminPassword:   getEnv("TIMESHEET_ADMIN_PASSWORD", "admin"),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that must not reach a real deployment.
// The default session secret is allowed only when TIMESHEET_ENV is
// "development" or unset.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	if c.SessionDuration <= 0 {
		return fmt.Errorf("session_duration must be positive")
	}
	env := os.Getenv("TIMESHEET_ENV")
	if c.SessionSecret == defaultSessionSecret && env != "" && env != "development" {
		return fmt.Errorf("session_secret must be changed outside development")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
