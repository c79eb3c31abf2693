package bootstrap

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"piisec-hq/piisec/pkg/config"
	"piisec-hq/piisec/pkg/extension"
	"piisec-hq/piisec/pkg/telemetry/logging"
	"piisec-hq/piisec/pkg/telemetry/metrics"
)

// ReloadInfo describes the most recent configuration resolution.
type ReloadInfo struct {
	// ID is the generation identifier assigned to the resolution.
	ID string

	// Time is when the resolution completed.
	Time time.Time

	// Outcome is the file load classification behind the resolution.
	Outcome config.LoadOutcome
}

var (
	// mu guards current and lastReload.
	mu sync.RWMutex

	// current is the process-wide effective configuration. Replaced
	// wholesale on every reload, never partially mutated.
	current config.Tree

	// lastReload records the most recent resolution for diagnostics.
	lastReload ReloadInfo

	// initOnce makes Initialize idempotent.
	initOnce sync.Once

	// pathOnce fixes the resolved path at first use.
	pathOnce sync.Once
	path     string

	// fallbackPath replaces the packaged default path when set before the
	// first resolution (the --config flag, embedding applications).
	fallbackPath string

	// consumers receives the effective tree after every resolution.
	consumers = extension.NewRegistry()

	// configMetrics is optional; nil until EnableMetrics.
	configMetrics *metrics.ConfigMetrics
)

// Initialize resolves the configuration once and returns the effective tree.
// Subsequent calls return the cached tree without re-reading the file; use
// Reload to force a re-read. Initialize cannot fail: configuration content
// problems degrade to the safe baseline.
func Initialize() config.Tree {
	initOnce.Do(func() { reload() })
	return Config()
}

// Reload forces a re-read of the configuration file, replaces the cached
// effective configuration wholesale, and returns the new tree. The
// configuration path stays as resolved at startup, and the logging backend
// keeps its first-initialization settings.
func Reload() config.Tree {
	initOnce.Do(func() {})
	return reload()
}

// Config returns the current effective configuration by reference. Callers
// must treat the tree as read-only; no defensive copy is made.
func Config() config.Tree {
	initOnce.Do(func() { reload() })

	mu.RLock()
	defer mu.RUnlock()
	return current
}

// ConfigPath returns the resolved configuration file location, fixing it on
// first call.
func ConfigPath() string {
	pathOnce.Do(func() {
		path = config.ResolvePath(fallbackPath)
	})
	return path
}

// SetFallbackPath replaces the packaged default configuration path. It only
// has effect before the first resolution; PIISEC_CONFIG still wins when set.
func SetFallbackPath(p string) {
	fallbackPath = p
}

// Logger returns a namespaced logger handle from the configured backend. An
// empty name selects the firewall's default namespace.
func Logger(name string) *slog.Logger {
	return logging.Named(name)
}

// Extensions returns the registry of configuration consumers. Consumers
// registered here receive the effective tree on every resolution.
func Extensions() *extension.Registry {
	return consumers
}

// LastReload returns diagnostics for the most recent resolution.
func LastReload() ReloadInfo {
	mu.RLock()
	defer mu.RUnlock()
	return lastReload
}

// EnableMetrics attaches configuration metrics. Resolutions before this call
// are not recorded.
func EnableMetrics(cm *metrics.ConfigMetrics) {
	configMetrics = cm
}

// reload is the resolver: load, merge, configure logging, publish, notify.
func reload() config.Tree {
	tree, status := config.LoadFile(ConfigPath())
	effective := config.DeepMerge(config.Defaults(), tree)

	// No-op after the first successful initialization.
	logging.Configure(effective)

	info := ReloadInfo{
		ID:      uuid.NewString(),
		Time:    time.Now(),
		Outcome: status.Outcome,
	}

	mu.Lock()
	current = effective
	lastReload = info
	mu.Unlock()

	log := logging.Named("piisec.config")
	switch status.Outcome {
	case config.OutcomeMalformed:
		log.Warn("configuration file unreadable, using defaults",
			"path", status.Path,
			"reload_id", info.ID,
			"error", status.Err,
		)
	case config.OutcomeNonMapping:
		log.Warn("configuration file top level is not a mapping, using defaults",
			"path", status.Path,
			"reload_id", info.ID,
		)
	default:
		log.Debug("configuration resolved",
			"path", status.Path,
			"reload_id", info.ID,
			"outcome", string(status.Outcome),
		)
	}

	if err := consumers.Apply(effective); err != nil {
		log.Warn("extension consumers rejected configuration",
			"reload_id", info.ID,
			"error", err,
		)
	}

	if configMetrics != nil {
		configMetrics.RecordReload(string(status.Outcome))
		configMetrics.SetLoggingConfigured(logging.Configured())
	}

	return effective
}
