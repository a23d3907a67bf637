package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gateway "github.com/AdolfoCB/almapac-gateway"
)

type fakeSource struct {
	snapshot gateway.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() gateway.MetricsSnapshot { return f.snapshot }
func (f fakeSource) AuditDropped() uint64                     { return f.dropped }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: gateway.MetricsSnapshot{
			Counters:   map[gateway.MetricID]uint64{},
			Histograms: map[gateway.MetricID][]uint64{},
		},
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderIncludesCounterAndHistogram(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: gateway.MetricsSnapshot{
			Counters: map[gateway.MetricID]uint64{
				gateway.MetricForbidden: 7,
			},
			Histograms: map[gateway.MetricID][]uint64{
				gateway.MetricResolveLatency: {1, 2, 3, 4, 5, 6, 7, 8},
			},
		},
		dropped: 2,
	})

	out := exp.Render()
	for _, want := range []string{
		"# TYPE almapac_gateway_decisions_total counter",
		`almapac_gateway_decisions_total{decision="forbidden"} 7`,
		`almapac_gateway_decisions_total{decision="permitted"} 0`,
		`almapac_gateway_credentials_total{source="cookie",outcome="resolved"} 0`,
		"almapac_gateway_resolve_latency_seconds_bucket{le=\"0.005\"} 1",
		"almapac_gateway_resolve_latency_seconds_bucket{le=\"+Inf\"} 36",
		"almapac_gateway_resolve_latency_seconds_count 36",
		"almapac_gateway_audit_dropped_total 2",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: gateway.MetricsSnapshot{
			Counters:   map[gateway.MetricID]uint64{gateway.MetricPermitted: 1},
			Histograms: map[gateway.MetricID][]uint64{},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRenderWritesEachFamilyHeaderOnce(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: gateway.MetricsSnapshot{
			Counters: map[gateway.MetricID]uint64{gateway.MetricCookieResolved: 1, gateway.MetricBearerResolved: 2},
		},
	})

	out := exp.Render()
	if n := strings.Count(out, "# TYPE almapac_gateway_credentials_total counter"); n != 1 {
		t.Fatalf("expected one TYPE line for credentials family, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, `almapac_gateway_credentials_total{source="bearer",outcome="resolved"} 2`) {
		t.Fatalf("missing bearer series:\n%s", out)
	}
}

func TestEscapeLabel(t *testing.T) {
	if got := escapeLabel("a\"b\\c\n"); got != `a\"b\\c\n` {
		t.Fatalf("unexpected escape %q", got)
	}
}
