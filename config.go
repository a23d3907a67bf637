package gateway

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"
)

// DefaultTokenHint tells an unauthenticated caller where Bearer tokens come from.
const DefaultTokenHint = "Inicie sesión desde la aplicación para obtener la cookie de sesión, o solicite un token al administrador (almapac-token) y envíelo en el encabezado Authorization"

// Config is the full gateway configuration. Secret is required; everything else has a
// default from DefaultConfig.
type Config struct {
	Secret []byte

	JWT       JWTConfig
	Session   SessionConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
	TokenHint string
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig configures both Bearer tokens and the session cookie token. The signing keys
// are derived from Config.Secret.
type JWTConfig struct {
	BearerTTL time.Duration
	Issuer    string
	Audience  string
	Leeway    time.Duration
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig configures the session cookie and its Redis record.
type SessionConfig struct {
	CookieName  string
	CookiePath  string
	Domain      string
	Secure      bool
	SameSite    http.SameSite
	TTL         time.Duration
	IdleTimeout time.Duration
	JitterRange time.Duration
	RedisPrefix string
}

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls in-process counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns a configuration with every field except Secret filled in.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			BearerTTL: 12 * time.Hour,
			Issuer:    "almapac",
			Leeway:    30 * time.Second,
		},
		Session: SessionConfig{
			CookieName:  "almapac_session",
			CookiePath:  "/",
			Secure:      true,
			SameSite:    http.SameSiteLaxMode,
			TTL:         8 * time.Hour,
			IdleTimeout: 0,
			RedisPrefix: "almapac:sess",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: true,
		},
		TokenHint: DefaultTokenHint,
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Secret = cloneBytes(cfg.Secret)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) validate() error {
	if len(c.Secret) < 32 {
		return errors.New("Secret must be at least 32 bytes")
	}

	// JWT
	if c.JWT.BearerTTL <= 0 {
		return errors.New("JWT BearerTTL must be > 0")
	}
	if c.JWT.Leeway < 0 || c.JWT.Leeway > 2*time.Minute {
		return errors.New("JWT Leeway must be between 0 and 2m")
	}

	// Session
	if strings.TrimSpace(c.Session.CookieName) == "" {
		return errors.New("Session CookieName must be set")
	}
	if strings.ContainsAny(c.Session.CookieName, " ;,=\t\r\n") {
		return errors.New("Session CookieName contains invalid characters")
	}
	if c.Session.TTL <= 0 {
		return errors.New("Session TTL must be > 0")
	}
	if c.Session.IdleTimeout < 0 {
		return errors.New("Session IdleTimeout must be >= 0")
	}
	if c.Session.IdleTimeout > c.Session.TTL {
		return errors.New("Session IdleTimeout must not exceed TTL")
	}
	if c.Session.JitterRange < 0 {
		return errors.New("Session JitterRange must be >= 0")
	}
	if c.Session.JitterRange > time.Duration((math.MaxInt64-1)/2) {
		return errors.New("Session JitterRange is too large")
	}
	if c.Session.SameSite == http.SameSiteNoneMode && !c.Session.Secure {
		return errors.New("Session SameSite=None requires Secure")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when enabled")
	}

	return nil
}
