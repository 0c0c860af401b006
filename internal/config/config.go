// Package config loads service configuration from defaults, an optional YAML
// file and RTP_AUDIT_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RTP_AUDIT_"

// FileEnvVar names the variable holding the optional YAML config path.
const FileEnvVar = EnvPrefix + "CONFIG_FILE"

// MaxPlays is the largest plays-per-scenario accepted anywhere.
const MaxPlays = 10_000_000

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envPrefix:"SERVER_"`
	Audit     AuditConfig     `yaml:"audit" envPrefix:"AUDIT_"`
	Cache     CacheConfig     `yaml:"cache" envPrefix:"CACHE_"`
	Log       LogConfig       `yaml:"log" envPrefix:"LOG_"`
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"OTEL_"`
	CORS      CORSConfig      `yaml:"cors" envPrefix:"CORS_"`
	RateLimit RateLimitConfig `yaml:"rateLimit" envPrefix:"RATE_LIMIT_"`
}

// ServerConfig holds the listener and timeout settings. RequestTimeout also
// bounds a shared audit run.
type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"ADDR"`
	ReadTimeout     time.Duration `yaml:"readTimeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" env:"WRITE_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"requestTimeout" env:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" env:"SHUTDOWN_TIMEOUT"`
}

// AuditConfig tunes the engine and the plays bounds of the HTTP endpoint.
type AuditConfig struct {
	DefaultPlays  int     `yaml:"defaultPlays" env:"DEFAULT_PLAYS"`
	MaxPlays      int     `yaml:"maxPlays" env:"MAX_PLAYS"`
	Workers       int     `yaml:"workers" env:"WORKERS"`
	Tolerance     float64 `yaml:"tolerance" env:"TOLERANCE"`
	Epsilon       float64 `yaml:"epsilon" env:"EPSILON"`
	WarningAbove  int     `yaml:"warningAbove" env:"WARNING_ABOVE"`
	CriticalAbove int     `yaml:"criticalAbove" env:"CRITICAL_ABOVE"`
}

// CacheConfig selects the response cache. TTL is also the purge interval of
// backends that need sweeping.
type CacheConfig struct {
	Backend    string        `yaml:"backend" env:"BACKEND"`
	TTL        time.Duration `yaml:"ttl" env:"TTL"`
	SQLitePath string        `yaml:"sqlitePath" env:"SQLITE_PATH"`
	RedisAddr  string        `yaml:"redisAddr" env:"REDIS_ADDR"`
	RedisDB    int           `yaml:"redisDB" env:"REDIS_DB"`
	KeyPrefix  string        `yaml:"keyPrefix" env:"KEY_PREFIX"`
}

// LogConfig sets the zap level and the json or console encoding.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// TelemetryConfig enables OTLP trace export when Endpoint is set.
type TelemetryConfig struct {
	Endpoint    string `yaml:"endpoint" env:"ENDPOINT"`
	ServiceName string `yaml:"serviceName" env:"SERVICE_NAME"`
}

// CORSConfig lists allowed origins. Requests from any other origin are
// answered with FallbackOrigin.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins" env:"ALLOWED_ORIGINS" envSeparator:","`
	FallbackOrigin string   `yaml:"fallbackOrigin" env:"FALLBACK_ORIGIN"`
	MaxAge         int      `yaml:"maxAge" env:"MAX_AGE"`
}

// RateLimitConfig is a per-client token bucket. RPS <= 0 disables it.
type RateLimitConfig struct {
	RPS   float64       `yaml:"rps" env:"RPS"`
	Burst int           `yaml:"burst" env:"BURST"`
	TTL   time.Duration `yaml:"ttl" env:"TTL"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    10 * time.Minute,
			RequestTimeout:  10 * time.Minute,
			ShutdownTimeout: 30 * time.Second,
		},
		Audit: AuditConfig{
			DefaultPlays:  10_000,
			MaxPlays:      MaxPlays,
			Workers:       0,
			Tolerance:     0.2,
			Epsilon:       1e-4,
			WarningAbove:  10,
			CriticalAbove: 50,
		},
		Cache: CacheConfig{
			Backend:    "none",
			TTL:        5 * time.Minute,
			SQLitePath: "rtp-audit-cache.db",
			KeyPrefix:  "rtp-audit:",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "rtp-audit",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"https://degenheart.casino", "http://localhost:4001"},
			FallbackOrigin: "https://degenheart.casino",
			MaxAge:         300,
		},
		RateLimit: RateLimitConfig{
			RPS:   1,
			Burst: 5,
			TTL:   10 * time.Minute,
		},
	}
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	return load(os.Getenv(FileEnvVar), envMap(os.Environ()))
}

func load(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			m[k] = v
		}
	}
	return m
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	a := c.Audit
	switch {
	case a.MaxPlays < 1 || a.MaxPlays > MaxPlays:
		return fmt.Errorf("%w: audit.maxPlays must be in [1, %d], got %d", ErrInvalid, MaxPlays, a.MaxPlays)
	case a.DefaultPlays < 1 || a.DefaultPlays > a.MaxPlays:
		return fmt.Errorf("%w: audit.defaultPlays must be in [1, %d], got %d", ErrInvalid, a.MaxPlays, a.DefaultPlays)
	case a.Workers < 0:
		return fmt.Errorf("%w: audit.workers must not be negative", ErrInvalid)
	case a.Tolerance <= 0:
		return fmt.Errorf("%w: audit.tolerance must be positive", ErrInvalid)
	case a.Epsilon < 0:
		return fmt.Errorf("%w: audit.epsilon must not be negative", ErrInvalid)
	case a.WarningAbove < 0 || a.CriticalAbove < a.WarningAbove:
		return fmt.Errorf("%w: need 0 <= audit.warningAbove <= audit.criticalAbove, got %d and %d",
			ErrInvalid, a.WarningAbove, a.CriticalAbove)
	}

	switch c.Cache.Backend {
	case "none", "":
	case "sqlite":
		if c.Cache.SQLitePath == "" {
			return fmt.Errorf("%w: cache.sqlitePath is required for the sqlite backend", ErrInvalid)
		}
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("%w: cache.redisAddr is required for the redis backend", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown cache backend %q", ErrInvalid, c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("%w: cache.ttl must not be negative", ErrInvalid)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.format must be json or console, got %q", ErrInvalid, c.Log.Format)
	}

	if c.RateLimit.RPS > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("%w: rateLimit.burst must be at least 1 when enabled", ErrInvalid)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalid)
	}
	return nil
}
