package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/AdolfoCB/almapac-gateway/internal/audit"
	"github.com/AdolfoCB/almapac-gateway/jwt"
	"github.com/AdolfoCB/almapac-gateway/response"
	"github.com/AdolfoCB/almapac-gateway/session"
	"github.com/AdolfoCB/almapac-gateway/translate"
)

// Gateway resolves and authorizes callers. It holds no per-request state and is safe for
// concurrent use after [Builder.Build].
type Gateway struct {
	config       Config
	precedence   Precedence
	logger       *slog.Logger
	bearerTokens *jwt.Manager
	cookieTokens *jwt.Manager
	sessions     *session.Store
	translator   *translate.Translator
	metrics      *Metrics
	audit        *audit.Dispatcher

	unauthorized response.Envelope
	forbidden    response.Envelope
}

// Close flushes and stops the audit dispatcher.
func (g *Gateway) Close() {
	if g == nil {
		return
	}
	if g.audit != nil {
		g.audit.Close()
	}
}

// Precedence reports the credential resolution policy.
func (g *Gateway) Precedence() Precedence {
	return g.precedence
}

// AuditDropped reports events lost to dispatcher backpressure.
func (g *Gateway) AuditDropped() uint64 {
	if g == nil || g.audit == nil {
		return 0
	}
	return g.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of the gateway counters.
func (g *Gateway) MetricsSnapshot() MetricsSnapshot {
	if g == nil || g.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return g.metrics.Snapshot()
}

// Ping checks the session store.
func (g *Gateway) Ping(ctx context.Context) (time.Duration, error) {
	if g == nil || g.sessions == nil {
		return 0, ErrGatewayNotReady
	}
	return g.sessions.Ping(ctx)
}
