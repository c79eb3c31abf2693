package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestConfigMetrics_RecordReload(t *testing.T) {
	registry := prometheus.NewRegistry()
	cm := NewConfigMetrics(registry)

	cm.RecordReload("loaded")
	cm.RecordReload("loaded")
	cm.RecordReload("malformed")

	if got := testutil.ToFloat64(cm.reloadsTotal.WithLabelValues("loaded")); got != 2 {
		t.Errorf("expected 2 loaded reloads, got %v", got)
	}
	if got := testutil.ToFloat64(cm.reloadsTotal.WithLabelValues("malformed")); got != 1 {
		t.Errorf("expected 1 malformed reload, got %v", got)
	}
	if got := testutil.ToFloat64(cm.lastReload); got == 0 {
		t.Error("expected last reload timestamp to be set")
	}
}

func TestConfigMetrics_LoggingConfiguredGauge(t *testing.T) {
	registry := prometheus.NewRegistry()
	cm := NewConfigMetrics(registry)

	cm.SetLoggingConfigured(true)
	if got := testutil.ToFloat64(cm.loggingConfigured); got != 1 {
		t.Errorf("expected gauge 1, got %v", got)
	}

	cm.SetLoggingConfigured(false)
	if got := testutil.ToFloat64(cm.loggingConfigured); got != 0 {
		t.Errorf("expected gauge 0, got %v", got)
	}
}

func TestConfigMetrics_RegistersWithRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewConfigMetrics(registry)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	// Counters with no observations are not exported, but both gauges are.
	found := map[string]bool{}
	for _, fam := range families {
		found[fam.GetName()] = true
	}
	if !found["piisec_config_last_reload_timestamp_seconds"] {
		t.Error("expected last reload gauge registered")
	}
	if !found["piisec_config_logging_configured"] {
		t.Error("expected logging configured gauge registered")
	}
}
