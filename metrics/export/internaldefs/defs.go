package internaldefs

import (
	gateway "github.com/AdolfoCB/almapac-gateway"
)

// Label is one name="value" pair on a series.
type Label struct {
	Key   string
	Value string
}

// Series is one labelled sample of a family, read from a gateway counter.
type Series struct {
	ID     gateway.MetricID
	Labels []Label
}

// CounterFamily groups gateway counters that differ only by label values.
type CounterFamily struct {
	Name   string
	Help   string
	Series []Series
}

// HistogramDef names one exported histogram.
type HistogramDef struct {
	ID   gateway.MetricID
	Name string
	Help string
}

const (
	AuditDroppedName = "almapac_gateway_audit_dropped_total"
	AuditDroppedHelp = "Audit events lost to dispatcher backpressure."
)

func series(id gateway.MetricID, kv ...string) Series {
	s := Series{ID: id}
	for i := 0; i+1 < len(kv); i += 2 {
		s.Labels = append(s.Labels, Label{Key: kv[i], Value: kv[i+1]})
	}
	return s
}

var CounterFamilies = []CounterFamily{
	{
		Name: "almapac_gateway_credentials_total",
		Help: "Credentials seen by the resolver, by transport and outcome.",
		Series: []Series{
			series(gateway.MetricCookieResolved, "source", "cookie", "outcome", "resolved"),
			series(gateway.MetricCookieRejected, "source", "cookie", "outcome", "rejected"),
			series(gateway.MetricBearerResolved, "source", "bearer", "outcome", "resolved"),
			series(gateway.MetricBearerRejected, "source", "bearer", "outcome", "rejected"),
		},
	},
	{
		Name: "almapac_gateway_decisions_total",
		Help: "Guard decisions.",
		Series: []Series{
			series(gateway.MetricPermitted, "decision", "permitted"),
			series(gateway.MetricForbidden, "decision", "forbidden"),
			series(gateway.MetricNotAuthenticated, "decision", "not_authenticated"),
		},
	},
	{
		Name: "almapac_gateway_sessions_total",
		Help: "Cookie session lifecycle events.",
		Series: []Series{
			series(gateway.MetricSessionStarted, "event", "started"),
			series(gateway.MetricSessionEnded, "event", "ended"),
		},
	},
	{
		Name: "almapac_gateway_storage_errors_total",
		Help: "Errors passed to the storage translator, by outcome.",
		Series: []Series{
			series(gateway.MetricStorageTranslated, "outcome", "translated"),
			series(gateway.MetricStorageUnknownCode, "outcome", "unknown_code"),
			series(gateway.MetricStorageUnrecognized, "outcome", "unrecognized"),
		},
	},
}

var HistogramDefs = []HistogramDef{
	{ID: gateway.MetricResolveLatency, Name: "almapac_gateway_resolve_latency_seconds", Help: "Credential resolution latency."},
}

// HistogramBounds are the upper bounds of the eight latency buckets, in seconds, as
// written in the le label.
var HistogramBounds = [8]string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// CumulativeBuckets turns the per-bucket counts of a snapshot into the cumulative
// counts exporters publish. Missing buckets count as zero.
func CumulativeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := range out {
		if i < len(raw) {
			running += raw[i]
		}
		out[i] = running
	}
	return out
}
