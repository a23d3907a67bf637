// Package otel publishes gateway counters and the resolve-latency histogram through an
// OpenTelemetry meter.
//
// Each metric family becomes one Int64ObservableCounter whose data points carry the
// family labels as attributes (decision="forbidden", source="cookie", ...). The
// latency histogram is published as cumulative gauges keyed by an le attribute. One
// callback reads [gateway.Gateway.MetricsSnapshot] per collection cycle.
//
// Callers own the MeterProvider and pass in a Meter.
package otel
