package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wattshed/timesheet/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("default addr: got %q", cfg.Addr)
	}
	if cfg.DatabasePath != "timesheet.db" {
		t.Fatalf("default database path: got %q", cfg.DatabasePath)
	}
	if cfg.AdminUsername != "admin" {
		t.Fatalf("default admin username: got %q", cfg.AdminUsername)
	}
	if cfg.SessionDuration != 12*time.Hour {
		t.Fatalf("default session duration: got %v", cfg.SessionDuration)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("TIMESHEET_ADDR", ":9999")
	t.Setenv("TIMESHEET_ADMIN_USERNAME", "boss")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9999" {
		t.Fatalf("env addr: got %q", cfg.Addr)
	}
	if cfg.AdminUsername != "boss" {
		t.Fatalf("env admin username: got %q", cfg.AdminUsername)
	}
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "addr: \":7070\"\ndatabase_path: \"/tmp/ts.db\"\nsession_secret: \"s3cret\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("yaml addr: got %q", cfg.Addr)
	}
	if cfg.DatabasePath != "/tmp/ts.db" {
		t.Fatalf("yaml database path: got %q", cfg.DatabasePath)
	}
	if cfg.SessionSecret != "s3cret" {
		t.Fatalf("yaml session secret: got %q", cfg.SessionSecret)
	}
}

func TestValidate_InsecureSecret_FailsWhenNotDevelopment(t *testing.T) {
	t.Setenv("TIMESHEET_ENV", "production")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for default secret in production")
	}
}

func TestValidate_InsecureSecret_AllowsDevelopment(t *testing.T) {
	t.Setenv("TIMESHEET_ENV", "development")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected Validate to succeed in development, got: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	cfg := &config.Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to fail for empty config")
	}
}
