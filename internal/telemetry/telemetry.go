// Package telemetry runs the OTel meter provider used by almapacd. Gateway counters
// are registered through metrics/export/otel and flushed periodically to the process
// log.
package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gateway "github.com/AdolfoCB/almapac-gateway"
	otelexport "github.com/AdolfoCB/almapac-gateway/metrics/export/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const meterName = "github.com/AdolfoCB/almapac-gateway"

// LogExporter is an sdkmetric.Exporter that writes every collected data point as a
// structured log record.
type LogExporter struct {
	logger *slog.Logger
}

var _ sdkmetric.Exporter = (*LogExporter)(nil)

func NewLogExporter(logger *slog.Logger) *LogExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogExporter{logger: logger}
}

func (e *LogExporter) Temporality(kind sdkmetric.InstrumentKind) metricdata.Temporality {
	return sdkmetric.DefaultTemporalitySelector(kind)
}

func (e *LogExporter) Aggregation(kind sdkmetric.InstrumentKind) sdkmetric.Aggregation {
	return sdkmetric.DefaultAggregationSelector(kind)
}

func (e *LogExporter) Export(ctx context.Context, rm *metricdata.ResourceMetrics) error {
	if rm == nil {
		return nil
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			var points []metricdata.DataPoint[int64]
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				points = data.DataPoints
			case metricdata.Gauge[int64]:
				points = data.DataPoints
			}
			for _, dp := range points {
				e.logger.InfoContext(ctx, "metric",
					"event", "metric_export",
					"name", m.Name,
					"attributes", dp.Attributes.Encoded(attribute.DefaultEncoder()),
					"value", dp.Value,
				)
			}
		}
	}
	return nil
}

func (e *LogExporter) ForceFlush(context.Context) error { return nil }

func (e *LogExporter) Shutdown(context.Context) error { return nil }

// Telemetry owns the meter provider and the gateway exporter registered on it.
type Telemetry struct {
	provider *sdkmetric.MeterProvider
	exporter *otelexport.OTelExporter
}

// Start registers gw's metrics on a meter provider that flushes to logger every
// interval.
func Start(gw *gateway.Gateway, logger *slog.Logger, interval time.Duration) (*Telemetry, error) {
	if interval <= 0 {
		return nil, errors.New("telemetry: interval must be > 0")
	}
	reader := sdkmetric.NewPeriodicReader(NewLogExporter(logger), sdkmetric.WithInterval(interval))
	return start(gw, reader)
}

func start(gw *gateway.Gateway, reader sdkmetric.Reader) (*Telemetry, error) {
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	exporter, err := otelexport.NewOTelExporter(provider.Meter(meterName), gw)
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, err
	}
	return &Telemetry{provider: provider, exporter: exporter}, nil
}

// Shutdown unregisters the instruments and flushes the provider.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	return errors.Join(t.exporter.Close(), t.provider.Shutdown(ctx))
}
