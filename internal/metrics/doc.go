// Package metrics stores the gateway's access-decision counters.
//
// Each [MetricID] owns one padded atomic slot, so concurrent guards incrementing
// different counters never share a cache line. Resolve latency, when enabled, is
// bucketed into eight fixed bounds from 5ms to +Inf. [Metrics.Snapshot] copies
// everything for the exporters under metrics/export; this package does no I/O.
package metrics
