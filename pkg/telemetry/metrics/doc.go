// Package metrics exposes Prometheus collectors for the configuration
// bootstrap.
//
// Metrics are registered against an injectable *prometheus.Registry so that
// embedding applications control exposition and tests stay isolated:
//
//	registry := prometheus.NewRegistry()
//	cm := metrics.NewConfigMetrics(registry)
//	bootstrap.EnableMetrics(cm)
package metrics
