package gateway

import (
	"errors"
	"log/slog"
	"time"

	"github.com/AdolfoCB/almapac-gateway/internal/audit"
	"github.com/AdolfoCB/almapac-gateway/jwt"
	"github.com/AdolfoCB/almapac-gateway/session"
	"github.com/AdolfoCB/almapac-gateway/translate"
	"github.com/redis/go-redis/v9"
)

// Builder assembles a Gateway. A Builder is single-use.
type Builder struct {
	config    Config
	redis     redis.UniversalClient
	logger    *slog.Logger
	auditSink AuditSink

	built bool
}

func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithSecret sets the server secret both token keys are derived from.
func (b *Builder) WithSecret(secret []byte) *Builder {
	b.config.Secret = cloneBytes(secret)
	return b
}

func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithAuditSink sets the sink and enables auditing.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = sink != nil
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

func (b *Builder) Build() (*Gateway, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}

	bearer, err := newTokenManager(cfg, jwt.PurposeBearer, cfg.JWT.BearerTTL)
	if err != nil {
		return nil, err
	}
	cookie, err := newTokenManager(cfg, jwt.PurposeSessionCookie, cfg.Session.TTL)
	if err != nil {
		return nil, err
	}

	g := &Gateway{
		config:       cfg,
		precedence:   PrecedenceCookieFirst,
		logger:       logger,
		bearerTokens: bearer,
		cookieTokens: cookie,
		sessions: session.NewStore(
			b.redis,
			cfg.Session.RedisPrefix,
			cfg.Session.IdleTimeout,
			cfg.Session.JitterRange,
		),
		translator: translate.New(logger),
		metrics:    NewMetrics(cfg.Metrics),
		audit: audit.NewDispatcher(audit.Config{
			Enabled:    cfg.Audit.Enabled,
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		}, b.auditSink),
	}
	g.unauthorized, g.forbidden = failureEnvelopes(cfg.TokenHint)

	b.built = true
	return g, nil
}

func newTokenManager(cfg Config, purpose string, ttl time.Duration) (*jwt.Manager, error) {
	key, err := jwt.DeriveKey(cfg.Secret, purpose)
	if err != nil {
		return nil, err
	}
	return jwt.NewManager(jwt.Config{
		Key:      key,
		TTL:      ttl,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		Leeway:   cfg.JWT.Leeway,
	})
}
