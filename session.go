package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AdolfoCB/almapac-gateway/session"
)

// IssueSessionCookie stores id in a new session and returns the cookie that carries it.
// Credential checking happens before this call and is not the gateway's concern.
func (g *Gateway) IssueSessionCookie(ctx context.Context, id Identity) (*http.Cookie, error) {
	if g == nil {
		return nil, ErrGatewayNotReady
	}
	if !id.Complete() {
		return nil, ErrIncompleteIdentity
	}

	sid, err := g.sessions.Create(ctx, id.record(), g.config.Session.TTL)
	if err != nil {
		if errors.Is(err, session.ErrRedisUnavailable) {
			return nil, fmt.Errorf("%w: %v", ErrSessionStoreUnavailable, err)
		}
		return nil, err
	}

	token, err := g.cookieTokens.IssueSession(sid)
	if err != nil {
		_ = g.sessions.Delete(ctx, sid)
		return nil, err
	}

	g.metrics.Inc(MetricSessionStarted)
	g.emitAudit(ctx, nil, AuditEvent{EventType: AuditSessionStarted, Username: id.Username, RoleID: id.RoleID, Source: SourceCookie.String(), Success: true})

	return g.cookie(token, g.config.Session.TTL), nil
}

// EndSession deletes the session referenced by r's cookie, if any, and returns an
// expired cookie that clears it in the browser. A missing or invalid cookie is not an
// error.
func (g *Gateway) EndSession(ctx context.Context, r *http.Request) (*http.Cookie, error) {
	if g == nil {
		return nil, ErrGatewayNotReady
	}
	expired := g.cookie("", -1)

	c, err := r.Cookie(g.config.Session.CookieName)
	if err != nil || c.Value == "" {
		return expired, nil
	}
	claims, err := g.cookieTokens.ParseSession(c.Value)
	if err != nil {
		return expired, nil
	}
	if err := g.sessions.Delete(ctx, claims.SID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionStoreUnavailable, err)
	}

	g.metrics.Inc(MetricSessionEnded)
	g.emitAudit(ctx, r, AuditEvent{EventType: AuditSessionEnded, Source: SourceCookie.String(), Success: true})
	return expired, nil
}

// EndAllSessions deletes every cookie session of the caller on r, on any device, and
// returns an expired cookie along with the number of sessions removed. The caller is
// taken from r's context when a middleware already resolved it.
func (g *Gateway) EndAllSessions(ctx context.Context, r *http.Request) (*http.Cookie, int, error) {
	if g == nil {
		return nil, 0, ErrGatewayNotReady
	}
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		var err error
		if id, _, err = g.Resolve(r); err != nil {
			return nil, 0, err
		}
	}

	n, err := g.sessions.DeleteAllForUser(ctx, id.Username)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrSessionStoreUnavailable, err)
	}

	for range n {
		g.metrics.Inc(MetricSessionEnded)
	}
	g.emitAudit(ctx, r, AuditEvent{
		EventType: AuditSessionEnded,
		Username:  id.Username,
		RoleID:    id.RoleID,
		Source:    SourceCookie.String(),
		Success:   true,
		Metadata:  map[string]string{"scope": "all", "count": strconv.Itoa(n)},
	})
	return g.cookie("", -1), n, nil
}

// IssueBearerToken signs a Bearer token for id.
func (g *Gateway) IssueBearerToken(id Identity) (string, error) {
	if g == nil {
		return "", ErrGatewayNotReady
	}
	if !id.Complete() {
		return "", ErrIncompleteIdentity
	}
	return g.bearerTokens.IssueIdentity(id.Claims())
}

func (g *Gateway) cookie(value string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     g.config.Session.CookieName,
		Value:    value,
		Path:     g.config.Session.CookiePath,
		Domain:   g.config.Session.Domain,
		Secure:   g.config.Session.Secure,
		HttpOnly: true,
		SameSite: g.config.Session.SameSite,
	}
	if ttl < 0 {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		return c
	}
	c.MaxAge = int(ttl.Seconds())
	c.Expires = time.Now().Add(ttl)
	return c
}
