// Package metrics records scheduler activity: accumulated iterations,
// refresh decisions, restarts, peak density and step latency.
//
// The explorer has no network surface, so values are kept in a private
// Prometheus registry and written to a textfile on exit when requested.
package metrics
