// Package prometheus renders gateway metrics in Prometheus text exposition format.
//
// [NewPrometheusExporter] wraps a [gateway.Gateway] and exposes an [http.Handler]
// that almapacd mounts at GET /metrics. Counters are grouped into labelled
// families (almapac_gateway_decisions_total{decision="forbidden"}, ...).
//
// # What this package must NOT do
//
//   - Register metrics in a global registry; callers mount the Handler.
//   - Mutate gateway state.
package prometheus
