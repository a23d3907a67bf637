package gateway

import internalmetrics "github.com/AdolfoCB/almapac-gateway/internal/metrics"

// MetricID identifies a counter or histogram in the in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	MetricCookieResolved      = internalmetrics.MetricCookieResolved
	MetricBearerResolved      = internalmetrics.MetricBearerResolved
	MetricCookieRejected      = internalmetrics.MetricCookieRejected
	MetricBearerRejected      = internalmetrics.MetricBearerRejected
	MetricNotAuthenticated    = internalmetrics.MetricNotAuthenticated
	MetricPermitted           = internalmetrics.MetricPermitted
	MetricForbidden           = internalmetrics.MetricForbidden
	MetricSessionStarted      = internalmetrics.MetricSessionStarted
	MetricSessionEnded        = internalmetrics.MetricSessionEnded
	MetricStorageTranslated   = internalmetrics.MetricStorageTranslated
	MetricStorageUnrecognized = internalmetrics.MetricStorageUnrecognized
	MetricStorageUnknownCode  = internalmetrics.MetricStorageUnknownCode
	MetricResolveLatency      = internalmetrics.MetricResolveLatency
)

// Metrics holds atomic counters and the optional resolve-latency histogram.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time copy of all metrics.
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics creates a [Metrics]. When cfg.Enabled is false every operation is a no-op.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{
		Enabled:       cfg.Enabled,
		EnableLatency: cfg.EnableLatencyHistograms,
	})
}
