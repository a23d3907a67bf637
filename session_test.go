package gateway

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestIssueSessionCookieAttributes(t *testing.T) {
	env := newTestGateway(t)

	c := env.cookieFor(t, adminIdentity)
	cfg := DefaultConfig().Session
	if c.Name != cfg.CookieName || c.Path != "/" {
		t.Fatalf("unexpected cookie name/path %q %q", c.Name, c.Path)
	}
	if !c.HttpOnly || !c.Secure || c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie flags %+v", c)
	}
	if c.MaxAge != int(cfg.TTL.Seconds()) {
		t.Fatalf("expected MaxAge %d, got %d", int(cfg.TTL.Seconds()), c.MaxAge)
	}
	if got := env.gw.MetricsSnapshot().Counters[MetricSessionStarted]; got != 1 {
		t.Fatalf("expected session started counter 1, got %d", got)
	}
}

func TestIssueSessionCookieRejectsIncompleteIdentity(t *testing.T) {
	env := newTestGateway(t)

	for _, id := range []Identity{{RoleID: 1}, {Username: "u"}, {Username: "u", RoleID: -1}} {
		if _, err := env.gw.IssueSessionCookie(t.Context(), id); !errors.Is(err, ErrIncompleteIdentity) {
			t.Fatalf("identity %+v: expected ErrIncompleteIdentity, got %v", id, err)
		}
		if _, err := env.gw.IssueBearerToken(id); !errors.Is(err, ErrIncompleteIdentity) {
			t.Fatalf("identity %+v: expected ErrIncompleteIdentity from bearer, got %v", id, err)
		}
	}
}

func TestIssueSessionCookieStoreOutage(t *testing.T) {
	env := newTestGateway(t)
	env.mr.Close()

	if _, err := env.gw.IssueSessionCookie(t.Context(), adminIdentity); !errors.Is(err, ErrSessionStoreUnavailable) {
		t.Fatalf("expected ErrSessionStoreUnavailable, got %v", err)
	}
}

func TestEndSessionExpiresCookie(t *testing.T) {
	env := newTestGateway(t)

	cookie := env.cookieFor(t, adminIdentity)
	expired, err := env.gw.EndSession(t.Context(), newRequest(cookie, ""))
	if err != nil {
		t.Fatalf("end session: %v", err)
	}
	if expired.MaxAge != -1 || expired.Value != "" || !expired.Expires.Before(time.Now()) {
		t.Fatalf("expected expired cookie, got %+v", expired)
	}
	if got := env.gw.MetricsSnapshot().Counters[MetricSessionEnded]; got != 1 {
		t.Fatalf("expected session ended counter 1, got %d", got)
	}
}

func TestEndSessionWithoutCookie(t *testing.T) {
	env := newTestGateway(t)

	expired, err := env.gw.EndSession(t.Context(), newRequest(nil, ""))
	if err != nil {
		t.Fatalf("end session: %v", err)
	}
	if expired.MaxAge != -1 {
		t.Fatalf("expected clearing cookie, got %+v", expired)
	}
	if got := env.gw.MetricsSnapshot().Counters[MetricSessionEnded]; got != 0 {
		t.Fatalf("expected no session ended, got %d", got)
	}
}

func TestSessionExpiresWithRedisTTL(t *testing.T) {
	env := newTestGateway(t)

	cookie := env.cookieFor(t, adminIdentity)
	env.mr.FastForward(DefaultConfig().Session.TTL + time.Minute)

	if _, _, err := env.gw.Resolve(newRequest(cookie, "")); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected expired session to be rejected, got %v", err)
	}
}

func TestEndAllSessionsRevokesEveryDevice(t *testing.T) {
	env := newTestGateway(t)

	first := env.cookieFor(t, adminIdentity)
	second := env.cookieFor(t, adminIdentity)
	other := env.cookieFor(t, muelleIdentity)

	expired, n, err := env.gw.EndAllSessions(t.Context(), newRequest(first, ""))
	if err != nil {
		t.Fatalf("end all sessions: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 sessions removed, got %d", n)
	}
	if expired.MaxAge != -1 || expired.Value != "" {
		t.Fatalf("expected expired cookie, got %+v", expired)
	}
	for _, c := range []*http.Cookie{first, second} {
		if _, _, err := env.gw.Resolve(newRequest(c, "")); !errors.Is(err, ErrNotAuthenticated) {
			t.Fatalf("expected revoked cookie to be rejected, got %v", err)
		}
	}
	if id, _, err := env.gw.Resolve(newRequest(other, "")); err != nil || id.Username != muelleIdentity.Username {
		t.Fatalf("expected other user's session to survive, got %+v %v", id, err)
	}
	if got := env.gw.MetricsSnapshot().Counters[MetricSessionEnded]; got != 2 {
		t.Fatalf("expected session ended counter 2, got %d", got)
	}
}

func TestEndAllSessionsUsesBearerIdentity(t *testing.T) {
	env := newTestGateway(t)

	cookie := env.cookieFor(t, adminIdentity)
	_, n, err := env.gw.EndAllSessions(t.Context(), newRequest(nil, env.bearerFor(t, adminIdentity)))
	if err != nil || n != 1 {
		t.Fatalf("expected one session removed, got %d %v", n, err)
	}
	if _, _, err := env.gw.Resolve(newRequest(cookie, "")); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected cookie revoked, got %v", err)
	}
}

func TestEndAllSessionsRequiresCaller(t *testing.T) {
	env := newTestGateway(t)

	if _, _, err := env.gw.EndAllSessions(t.Context(), newRequest(nil, "")); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestSessionCookieAcceptsLongProfileAndLargeRoleID(t *testing.T) {
	env := newTestGateway(t)

	id := Identity{
		Username: "jperez",
		RoleID:   70000,
		RoleName: "ROL_EXTERNO",
		FullName: strings.Repeat("a", 300),
		Email:    strings.Repeat("e", 260) + "@almapac.test",
	}
	if _, err := env.gw.IssueBearerToken(id); err != nil {
		t.Fatalf("bearer: %v", err)
	}
	cookie := env.cookieFor(t, id)
	got, src, err := env.gw.Resolve(newRequest(cookie, ""))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if src != SourceCookie || got.RoleID != id.RoleID || got.FullName != id.FullName || got.Email != id.Email {
		t.Fatalf("unexpected identity %+v from %v", got, src)
	}
}
