// Package prometheus renders goToken metrics in Prometheus text exposition
// format.
//
// [NewPrometheusExporter] accepts an [goToken.Engine] and exposes an
// [http.Handler] that renders all goToken counters and histograms. Counter
// names are prefixed gotoken_*_total; the single histogram is
// gotoken_validate_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
