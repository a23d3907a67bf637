// Package config maps process environment variables onto the server's typed
// configuration. Only cmd/ binaries import it; library packages take typed config.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	gateway "github.com/AdolfoCB/almapac-gateway"
)

// ErrSecretRequired is returned by Load when ALMAPAC_SECRET is unset.
var ErrSecretRequired = errors.New("ALMAPAC_SECRET is required")

// Config is centralized process configuration for almapacd.
type Config struct {
	HTTPAddr    string
	RedisAddr   string
	PostgresDSN string

	Secret        []byte
	CookieName    string
	CookieSecure  bool
	SessionTTL    time.Duration
	BearerTTL     time.Duration
	LogLevel      slog.Level
	EnableMetrics bool
	EnableAudit   bool

	// MetricsLogInterval flushes OTel metrics to the log when positive.
	MetricsLogInterval time.Duration
}

func Load() (Config, error) {
	secret := strings.TrimSpace(os.Getenv("ALMAPAC_SECRET"))
	if secret == "" {
		return Config{}, ErrSecretRequired
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	defaults := gateway.DefaultConfig()

	cookieName := strings.TrimSpace(os.Getenv("ALMAPAC_COOKIE_NAME"))
	if cookieName == "" {
		cookieName = defaults.Session.CookieName
	}

	sessionTTL, err := envDuration("ALMAPAC_SESSION_TTL", defaults.Session.TTL)
	if err != nil {
		return Config{}, err
	}
	bearerTTL, err := envDuration("ALMAPAC_BEARER_TTL", defaults.JWT.BearerTTL)
	if err != nil {
		return Config{}, err
	}

	var metricsLog time.Duration
	if os.Getenv("ALMAPAC_METRICS_LOG_INTERVAL") != "" {
		metricsLog, err = envDuration("ALMAPAC_METRICS_LOG_INTERVAL", 0)
		if err != nil {
			return Config{}, err
		}
	}

	level, err := envLevel("ALMAPAC_LOG_LEVEL", slog.LevelInfo)
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPAddr:    addr,
		RedisAddr:   redisAddr,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		Secret:        []byte(secret),
		CookieName:    cookieName,
		CookieSecure:  envBool("ALMAPAC_COOKIE_SECURE", true),
		SessionTTL:    sessionTTL,
		BearerTTL:     bearerTTL,
		LogLevel:      level,
		EnableMetrics: envBool("ALMAPAC_METRICS", true),
		EnableAudit:   envBool("ALMAPAC_AUDIT", true),

		MetricsLogInterval: metricsLog,
	}, nil
}

// Gateway returns the gateway configuration derived from c, starting from
// gateway.DefaultConfig.
func (c Config) Gateway() gateway.Config {
	cfg := gateway.DefaultConfig()
	cfg.Secret = append([]byte(nil), c.Secret...)
	cfg.JWT.BearerTTL = c.BearerTTL
	cfg.Session.CookieName = c.CookieName
	cfg.Session.Secure = c.CookieSecure
	cfg.Session.TTL = c.SessionTTL
	if cfg.Session.IdleTimeout > cfg.Session.TTL {
		cfg.Session.IdleTimeout = cfg.Session.TTL
	}
	cfg.Metrics.Enabled = c.EnableMetrics
	cfg.Audit.Enabled = c.EnableAudit
	return cfg
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envDuration(name string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		raw = strconv.Itoa(secs) + "s"
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", name, raw)
	}
	return d, nil
}

func envLevel(name string, fallback slog.Level) (slog.Level, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return level, nil
}
