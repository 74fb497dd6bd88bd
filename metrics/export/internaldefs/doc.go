// Package internaldefs holds the shared metric name/help tables consumed by
// the Prometheus and OTel exporters so both emit identical series names.
//
// # What this package must NOT do
//
//   - Read engine state; it is pure data plus bucket arithmetic.
//   - Be imported by anything outside metrics/export.
package internaldefs
