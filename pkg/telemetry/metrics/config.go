package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the metric namespace for all firewall collectors.
const Namespace = "piisec"

// ConfigMetrics tracks configuration bootstrap activity.
//
// Metrics:
//   - piisec_config_reloads_total: Configuration resolutions by load outcome
//   - piisec_config_last_reload_timestamp_seconds: Unix time of last resolution
//   - piisec_config_logging_configured: Logging latch state (0 or 1)
type ConfigMetrics struct {
	// Reload operations, labeled by file load outcome
	reloadsTotal *prometheus.CounterVec

	// Timestamp of the most recent resolution
	lastReload prometheus.Gauge

	// Whether the one-time logging initialization has happened
	loggingConfigured prometheus.Gauge
}

// NewConfigMetrics creates and registers configuration metrics with the
// provided registry.
func NewConfigMetrics(registry *prometheus.Registry) *ConfigMetrics {
	cm := &ConfigMetrics{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: "config",
				Name:      "reloads_total",
				Help:      "Total number of configuration resolutions by load outcome",
			},
			[]string{"outcome"},
		),

		lastReload: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Subsystem: "config",
				Name:      "last_reload_timestamp_seconds",
				Help:      "Unix timestamp of the most recent configuration resolution",
			},
		),

		loggingConfigured: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Subsystem: "config",
				Name:      "logging_configured",
				Help:      "Whether the one-time logging initialization has completed (0 or 1)",
			},
		),
	}

	registry.MustRegister(
		cm.reloadsTotal,
		cm.lastReload,
		cm.loggingConfigured,
	)

	return cm
}

// RecordReload records a configuration resolution with its file load outcome.
func (cm *ConfigMetrics) RecordReload(outcome string) {
	cm.reloadsTotal.WithLabelValues(outcome).Inc()
	cm.lastReload.Set(float64(time.Now().Unix()))
}

// SetLoggingConfigured records the state of the logging latch.
func (cm *ConfigMetrics) SetLoggingConfigured(configured bool) {
	if configured {
		cm.loggingConfigured.Set(1)
		return
	}
	cm.loggingConfigured.Set(0)
}
