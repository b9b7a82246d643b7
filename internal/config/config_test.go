package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("default addr %q", cfg.Server.Addr)
	}
	if cfg.RateLimit.MaxSubmissions != 5 || cfg.RateLimit.WindowDays != 7 {
		t.Fatalf("default rate limit %+v", cfg.RateLimit)
	}
	if cfg.Session.CookieName != "adsite_session" {
		t.Fatalf("default cookie name %q", cfg.Session.CookieName)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  addr: ":9090"
database:
  dsn: "postgres://site:pw@localhost:5432/adsite"
session:
  secret: "file-secret"
  ttl_hours: 12
cors:
  origins:
    - https://example.com
`
	if errWrite := os.WriteFile(path, []byte(body), 0o600); errWrite != nil {
		t.Fatalf("write config: %v", errWrite)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("addr %q", cfg.Server.Addr)
	}
	if cfg.Database.DSN != "postgres://site:pw@localhost:5432/adsite" {
		t.Fatalf("dsn %q", cfg.Database.DSN)
	}
	if cfg.Session.Secret != "file-secret" || cfg.Session.TTLHours != 12 {
		t.Fatalf("session %+v", cfg.Session)
	}
	if len(cfg.CORS.Origins) != 1 || cfg.CORS.Origins[0] != "https://example.com" {
		t.Fatalf("origins %v", cfg.CORS.Origins)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("DATABASE_URL", "file:env.db")
	t.Setenv("SESSION_SECRET", "env-secret")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":3000" {
		t.Fatalf("addr %q", cfg.Server.Addr)
	}
	if cfg.Database.DSN != "file:env.db" {
		t.Fatalf("dsn %q", cfg.Database.DSN)
	}
	if cfg.Session.Secret != "env-secret" {
		t.Fatalf("secret %q", cfg.Session.Secret)
	}
	if len(cfg.CORS.Origins) != 2 || cfg.CORS.Origins[1] != "https://b.example" {
		t.Fatalf("origins %v", cfg.CORS.Origins)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if errWrite := os.WriteFile(path, []byte("server: [not a map"), 0o600); errWrite != nil {
		t.Fatalf("write config: %v", errWrite)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
