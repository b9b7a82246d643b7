// Package config loads server configuration from an optional YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig controls the relational store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SessionConfig controls admin session cookies.
type SessionConfig struct {
	Secret       string `yaml:"secret"`
	TTLHours     int    `yaml:"ttl_hours"`
	CookieName   string `yaml:"cookie_name"`
	CookieSecure bool   `yaml:"cookie_secure"`
}

// RedisConfig selects the optional Redis session store. Empty Addr keeps
// sessions in the relational database.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CORSConfig lists allowed browser origins.
type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

// LogConfig controls logrus output and optional file rotation.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// RateLimitConfig sets the default submission policy. DB settings rows can
// override these at runtime.
type RateLimitConfig struct {
	MaxSubmissions int `yaml:"max_submissions"`
	WindowDays     int `yaml:"window_days"`
}

// Config is the full server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Session   SessionConfig   `yaml:"session"`
	Redis     RedisConfig     `yaml:"redis"`
	CORS      CORSConfig      `yaml:"cors"`
	Log       LogConfig       `yaml:"log"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// defaults returns the baseline configuration.
func defaults() Config {
	return Config{
		Server:   ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{DSN: "file:data/adsite.db"},
		Session: SessionConfig{
			TTLHours:   24 * 7,
			CookieName: "adsite_session",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
		RateLimit: RateLimitConfig{
			MaxSubmissions: 5,
			WindowDays:     7,
		},
	}
}

// Load reads path (ignored when empty or absent) and applies environment
// overrides on top of the defaults.
func Load(path string) (Config, error) {
	cfg := defaults()

	if strings.TrimSpace(path) != "" {
		data, errRead := os.ReadFile(path)
		switch {
		case errRead == nil:
			if errYAML := yaml.Unmarshal(data, &cfg); errYAML != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, errYAML)
			}
		case os.IsNotExist(errRead):
			// Optional file; env and defaults carry the configuration.
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", path, errRead)
		}
	}

	applyEnv(&cfg)

	if cfg.Session.TTLHours <= 0 {
		cfg.Session.TTLHours = 24 * 7
	}
	if strings.TrimSpace(cfg.Session.CookieName) == "" {
		cfg.Session.CookieName = "adsite_session"
	}
	if cfg.RateLimit.MaxSubmissions <= 0 {
		cfg.RateLimit.MaxSubmissions = 5
	}
	if cfg.RateLimit.WindowDays <= 0 {
		cfg.RateLimit.WindowDays = 7
	}
	return cfg, nil
}

// applyEnv layers environment variables over the loaded configuration.
func applyEnv(cfg *Config) {
	if port := envValue("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if addr := envValue("LISTEN_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if dsn := envValue("DATABASE_URL"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if secret := envValue("SESSION_SECRET"); secret != "" {
		cfg.Session.Secret = secret
	}
	if ttl := envValue("SESSION_TTL_HOURS"); ttl != "" {
		if n, err := strconv.Atoi(ttl); err == nil && n > 0 {
			cfg.Session.TTLHours = n
		}
	}
	if secure := envValue("SESSION_COOKIE_SECURE"); secure != "" {
		cfg.Session.CookieSecure = secure == "1" || strings.EqualFold(secure, "true")
	}
	if addr := envValue("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := envValue("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if origins := envValue("CORS_ORIGINS"); origins != "" {
		cfg.CORS.Origins = splitOrigins(origins)
	}
	if level := envValue("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if file := envValue("LOG_FILE"); file != "" {
		cfg.Log.File = file
	}
}

// envValue returns a trimmed environment variable.
func envValue(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// splitOrigins parses a comma-separated origin list.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
