package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func setBase(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"HTTP_ADDR", "REDIS_ADDR", "POSTGRES_DSN", "ALMAPAC_COOKIE_NAME", "ALMAPAC_COOKIE_SECURE",
		"ALMAPAC_SESSION_TTL", "ALMAPAC_BEARER_TTL", "ALMAPAC_LOG_LEVEL", "ALMAPAC_METRICS", "ALMAPAC_AUDIT",
		"ALMAPAC_METRICS_LOG_INTERVAL",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("ALMAPAC_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoadRequiresSecret(t *testing.T) {
	setBase(t)
	t.Setenv("ALMAPAC_SECRET", "  ")

	if _, err := Load(); !errors.Is(err, ErrSecretRequired) {
		t.Fatalf("expected ErrSecretRequired, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	setBase(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("unexpected addresses: %q %q", cfg.HTTPAddr, cfg.RedisAddr)
	}
	if cfg.CookieName != "almapac_session" || !cfg.CookieSecure {
		t.Fatalf("unexpected cookie defaults: %q secure=%v", cfg.CookieName, cfg.CookieSecure)
	}
	if cfg.SessionTTL != 8*time.Hour || cfg.BearerTTL != 12*time.Hour {
		t.Fatalf("unexpected ttl defaults: %v %v", cfg.SessionTTL, cfg.BearerTTL)
	}
	if cfg.LogLevel != slog.LevelInfo || !cfg.EnableMetrics || !cfg.EnableAudit || cfg.MetricsLogInterval != 0 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	gc := cfg.Gateway()
	if err := gc.Validate(); err != nil {
		t.Fatalf("gateway config from defaults must validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	setBase(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("ALMAPAC_COOKIE_NAME", "almapac_dev")
	t.Setenv("ALMAPAC_COOKIE_SECURE", "off")
	t.Setenv("ALMAPAC_SESSION_TTL", "3600")
	t.Setenv("ALMAPAC_BEARER_TTL", "30m")
	t.Setenv("ALMAPAC_LOG_LEVEL", "debug")
	t.Setenv("ALMAPAC_METRICS", "no")
	t.Setenv("ALMAPAC_METRICS_LOG_INTERVAL", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" || cfg.CookieName != "almapac_dev" || cfg.CookieSecure {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.SessionTTL != time.Hour || cfg.BearerTTL != 30*time.Minute {
		t.Fatalf("unexpected ttls: %v %v", cfg.SessionTTL, cfg.BearerTTL)
	}
	if cfg.MetricsLogInterval != time.Minute {
		t.Fatalf("unexpected metrics log interval: %v", cfg.MetricsLogInterval)
	}
	if cfg.LogLevel != slog.LevelDebug || cfg.EnableMetrics {
		t.Fatalf("unexpected level/metrics: %v %v", cfg.LogLevel, cfg.EnableMetrics)
	}

	gc := cfg.Gateway()
	if gc.Session.CookieName != "almapac_dev" || gc.Session.Secure || gc.Session.TTL != time.Hour {
		t.Fatalf("gateway session config mismatch: %+v", gc.Session)
	}
	if gc.Metrics.Enabled {
		t.Fatalf("metrics should be disabled")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"ALMAPAC_SESSION_TTL": "soon",
		"ALMAPAC_BEARER_TTL":  "-5m",
		"ALMAPAC_LOG_LEVEL":   "loud",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			setBase(t)
			t.Setenv(name, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", name, value)
			}
		})
	}
}

func TestEnvBoolFallback(t *testing.T) {
	t.Setenv("ALMAPAC_FLAG", "maybe")
	if !envBool("ALMAPAC_FLAG", true) || envBool("ALMAPAC_FLAG", false) {
		t.Fatalf("unrecognised values must fall back")
	}
	t.Setenv("ALMAPAC_FLAG", " YES ")
	if !envBool("ALMAPAC_FLAG", false) {
		t.Fatalf("YES should parse as true")
	}
}
