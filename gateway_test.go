package gateway

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AdolfoCB/almapac-gateway/response"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const testSecret = "almapac-test-secret-0123456789abcdef"

type testEnv struct {
	gw   *Gateway
	mr   *miniredis.Miniredis
	logs *bytes.Buffer
}

func newTestGateway(t testing.TB, mutate ...func(*Builder)) *testEnv {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b := New().WithSecret([]byte(testSecret)).WithRedis(rdb).WithLogger(logger)
	for _, m := range mutate {
		m(b)
	}
	gw, err := b.Build()
	if err != nil {
		t.Fatalf("build gateway: %v", err)
	}
	t.Cleanup(func() {
		gw.Close()
		rdb.Close()
		mr.Close()
	})
	return &testEnv{gw: gw, mr: mr, logs: logs}
}

var (
	adminIdentity  = Identity{Username: "jperez", RoleID: 1, RoleName: "ADMINISTRADOR", FullName: "Juan Pérez"}
	muelleIdentity = Identity{Username: "mlopez", RoleID: 2, RoleName: "MUELLERO", EmployeeCode: "EMP-0042"}
)

func (e *testEnv) cookieFor(t *testing.T, id Identity) *http.Cookie {
	t.Helper()
	c, err := e.gw.IssueSessionCookie(t.Context(), id)
	if err != nil {
		t.Fatalf("issue session cookie: %v", err)
	}
	return c
}

func (e *testEnv) bearerFor(t *testing.T, id Identity) string {
	t.Helper()
	tok, err := e.gw.IssueBearerToken(id)
	if err != nil {
		t.Fatalf("issue bearer token: %v", err)
	}
	return tok
}

func newRequest(cookie *http.Cookie, bearer string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/barcos", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	if bearer != "" {
		r.Header.Set("Authorization", "Bearer "+bearer)
	}
	return r
}

func decodeBody(t *testing.T, env response.Envelope) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := response.Write(rec, env); err != nil {
		t.Fatalf("write envelope: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return rec.Code, body
}

func TestBuildRequiresSecretAndRedis(t *testing.T) {
	if _, err := New().WithSecret([]byte(testSecret)).Build(); err == nil {
		t.Fatal("expected missing redis to fail")
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	if _, err := New().WithRedis(rdb).Build(); err == nil {
		t.Fatal("expected missing secret to fail")
	}

	b := New().WithSecret([]byte(testSecret)).WithRedis(rdb)
	gw, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer gw.Close()
	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
	if gw.Precedence() != PrecedenceCookieFirst || gw.Precedence().String() != "cookie-first" {
		t.Fatalf("unexpected precedence %v", gw.Precedence())
	}
}

func TestNilGatewayIsNotReady(t *testing.T) {
	var gw *Gateway
	if _, _, err := gw.Resolve(newRequest(nil, "")); err != ErrGatewayNotReady {
		t.Fatalf("expected ErrGatewayNotReady, got %v", err)
	}
	if _, err := gw.Ping(t.Context()); err != ErrGatewayNotReady {
		t.Fatalf("expected ErrGatewayNotReady from Ping, got %v", err)
	}
	if gw.AuditDropped() != 0 || len(gw.MetricsSnapshot().Counters) != 0 {
		t.Fatal("expected zero values from nil gateway")
	}
	gw.Close()
}
