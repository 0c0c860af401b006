package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load("", nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Audit.DefaultPlays != 10_000 {
		t.Errorf("expected default plays 10000, got %d", cfg.Audit.DefaultPlays)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("expected cache ttl 5m, got %v", cfg.Cache.TTL)
	}
	if cfg.Audit.WarningAbove != 10 || cfg.Audit.CriticalAbove != 50 {
		t.Errorf("expected thresholds 10/50, got %d/%d", cfg.Audit.WarningAbove, cfg.Audit.CriticalAbove)
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := writeFile(t, `
server:
  addr: ":9000"
audit:
  workers: 2
  tolerance: 0.1
cache:
  backend: sqlite
  ttl: 1m
log:
  level: debug
`)

	environ := map[string]string{
		"RTP_AUDIT_AUDIT_WORKERS":        "6",
		"RTP_AUDIT_OTEL_ENDPOINT":        "localhost:4318",
		"RTP_AUDIT_CORS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
		"UNRELATED_AUDIT_WORKERS":        "99",
	}

	cfg, err := load(path, environ)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"yaml overrides default addr", cfg.Server.Addr, ":9000"},
		{"env overrides yaml workers", cfg.Audit.Workers, 6},
		{"yaml tolerance kept", cfg.Audit.Tolerance, 0.1},
		{"yaml duration", cfg.Cache.TTL, time.Minute},
		{"yaml backend", cfg.Cache.Backend, "sqlite"},
		{"default survives partial yaml", cfg.Audit.DefaultPlays, 10_000},
		{"default log format", cfg.Log.Format, "json"},
		{"yaml log level", cfg.Log.Level, "debug"},
		{"env endpoint", cfg.Telemetry.Endpoint, "localhost:4318"},
		{"env origins count", len(cfg.CORS.AllowedOrigins), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, tt.got)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := load(filepath.Join(t.TempDir(), "nope.yaml"), nil); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadBadEnv(t *testing.T) {
	_, err := load("", map[string]string{"RTP_AUDIT_AUDIT_WORKERS": "many"})
	if err == nil {
		t.Error("expected error for non-numeric workers")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	_, err := load("", map[string]string{"RTP_AUDIT_CACHE_BACKEND": "memcached"})
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tolerance", func(c *Config) { c.Audit.Tolerance = 0 }},
		{"negative epsilon", func(c *Config) { c.Audit.Epsilon = -1 }},
		{"inverted thresholds", func(c *Config) { c.Audit.WarningAbove, c.Audit.CriticalAbove = 60, 50 }},
		{"max plays too large", func(c *Config) { c.Audit.MaxPlays = MaxPlays + 1 }},
		{"zero default plays", func(c *Config) { c.Audit.DefaultPlays = 0 }},
		{"default above max", func(c *Config) { c.Audit.DefaultPlays, c.Audit.MaxPlays = 200, 100 }},
		{"negative workers", func(c *Config) { c.Audit.Workers = -1 }},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"redis without addr", func(c *Config) { c.Cache.Backend = "redis" }},
		{"sqlite without path", func(c *Config) { c.Cache.Backend, c.Cache.SQLitePath = "sqlite", "" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"rate limit without burst", func(c *Config) { c.RateLimit.Burst = 0 }},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestEnvMap(t *testing.T) {
	m := envMap([]string{"A=1", "B=x=y", "BROKEN"})
	if m["A"] != "1" || m["B"] != "x=y" {
		t.Errorf("unexpected map %v", m)
	}
	if _, ok := m["BROKEN"]; ok {
		t.Error("expected entries without '=' to be skipped")
	}
}
