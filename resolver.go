package gateway

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/AdolfoCB/almapac-gateway/session"
)

// Resolve identifies the caller of r following [PrecedenceCookieFirst]. A credential
// that fails verification on either transport counts as absent; the reason is logged at
// debug level and never returned. The only error is [ErrNotAuthenticated].
func (g *Gateway) Resolve(r *http.Request) (Identity, CredentialSource, error) {
	if g == nil {
		return Identity{}, SourceNone, ErrGatewayNotReady
	}
	if g.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() { g.metrics.Observe(MetricResolveLatency, time.Since(start)) }()
	}

	for _, source := range g.precedence.order() {
		var (
			id Identity
			ok bool
		)
		switch source {
		case SourceCookie:
			id, ok = g.fromCookie(r)
		case SourceBearer:
			id, ok = g.fromBearer(r)
		}
		if !ok {
			continue
		}
		if source == SourceCookie {
			g.metrics.Inc(MetricCookieResolved)
		} else {
			g.metrics.Inc(MetricBearerResolved)
		}
		return id, source, nil
	}

	return Identity{}, SourceNone, ErrNotAuthenticated
}

func (g *Gateway) fromCookie(r *http.Request) (Identity, bool) {
	c, err := r.Cookie(g.config.Session.CookieName)
	if err != nil || c.Value == "" {
		return Identity{}, false
	}

	claims, err := g.cookieTokens.ParseSession(c.Value)
	if err != nil {
		g.rejectCookie(r, slog.LevelDebug, "token", err)
		return Identity{}, false
	}

	rec, err := g.sessions.Get(r.Context(), claims.SID)
	if err != nil {
		level := slog.LevelDebug
		if errors.Is(err, session.ErrRedisUnavailable) || errors.Is(err, session.ErrSessionCorrupt) {
			level = slog.LevelWarn
		}
		g.rejectCookie(r, level, "session", err)
		return Identity{}, false
	}

	id := identityFromRecord(rec)
	if !id.Complete() {
		g.rejectCookie(r, slog.LevelWarn, "incomplete", nil)
		return Identity{}, false
	}
	return id, true
}

func (g *Gateway) fromBearer(r *http.Request) (Identity, bool) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return Identity{}, false
	}

	claims, err := g.bearerTokens.ParseIdentity(token)
	if err != nil {
		g.rejectBearer(r, "token", err)
		return Identity{}, false
	}

	id := identityFromClaims(claims)
	if !id.Complete() {
		g.rejectBearer(r, "incomplete", nil)
		return Identity{}, false
	}
	return id, true
}

func (g *Gateway) rejectCookie(r *http.Request, level slog.Level, reason string, err error) {
	g.metrics.Inc(MetricCookieRejected)
	attrs := []slog.Attr{
		slog.String("event", "credential_cookie_rejected"),
		slog.String("reason", reason),
		slog.String("path", r.URL.Path),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	g.logger.LogAttrs(r.Context(), level, "session cookie rejected", attrs...)
}

func (g *Gateway) rejectBearer(r *http.Request, reason string, err error) {
	g.metrics.Inc(MetricBearerRejected)
	attrs := []slog.Attr{
		slog.String("event", "credential_bearer_rejected"),
		slog.String("reason", reason),
		slog.String("path", r.URL.Path),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	g.logger.LogAttrs(r.Context(), slog.LevelDebug, "bearer token rejected", attrs...)
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := strings.TrimSpace(value[len(bearer):])
	if token == "" {
		return "", false
	}

	return token, true
}
