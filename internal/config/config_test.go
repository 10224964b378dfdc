package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
port: "8080"
databaseURL: "postgres://localhost/rentals"
jwtSecret: "secret"
`

func TestLoadMinimalConfig(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://localhost/rentals" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://override/db")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("AUTH_RATE_LIMIT_PER_MINUTE", "25")

	cfg, err := Load(writeConfigFile(t, minimalConfig+`
redisAddr: "localhost:6379"
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabaseURL != "postgres://override/db" {
		t.Errorf("DatabaseURL = %q, want env override", cfg.DatabaseURL)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Errorf("JWTSecret = %q, want env override", cfg.JWTSecret)
	}
	if cfg.AuthRateLimitPerMinute != 25 {
		t.Errorf("AuthRateLimitPerMinute = %d, want 25", cfg.AuthRateLimitPerMinute)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"missing port", `
databaseURL: "postgres://localhost/rentals"
jwtSecret: "secret"
`},
		{"missing database url", `
port: "8080"
jwtSecret: "secret"
`},
		{"missing jwt secret", `
port: "8080"
databaseURL: "postgres://localhost/rentals"
`},
		{"rate limit without redis", minimalConfig + `
authRateLimitPerMinute: 10
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfigFile(t, tt.contents)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseDurationOr(t *testing.T) {
	got, err := ParseDurationOr("", 24*time.Hour)
	if err != nil || got != 24*time.Hour {
		t.Errorf("empty input: got %v, %v", got, err)
	}
	got, err = ParseDurationOr("90m", 0)
	if err != nil || got != 90*time.Minute {
		t.Errorf("90m: got %v, %v", got, err)
	}
	if _, err := ParseDurationOr("soon", 0); err == nil {
		t.Error("expected error for malformed duration")
	}
}
