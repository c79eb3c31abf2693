package bootstrap

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"piisec-hq/piisec/pkg/config"
	"piisec-hq/piisec/pkg/extension"
	"piisec-hq/piisec/pkg/telemetry/logging"
	"piisec-hq/piisec/pkg/telemetry/metrics"
)

// resetState clears the package singletons between tests. The logging latch
// is process-global and deliberately cannot be reset; tests that touch it
// assert relative behavior instead.
func resetState(t *testing.T) {
	t.Helper()
	mu.Lock()
	current = nil
	lastReload = ReloadInfo{}
	mu.Unlock()
	initOnce = *new(sync.Once)
	pathOnce = *new(sync.Once)
	path = ""
	fallbackPath = ""
	consumers = extension.NewRegistry()
	configMetrics = nil
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return p
}

func TestInitialize_MissingFileYieldsDefaults(t *testing.T) {
	resetState(t)
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))

	tree := Initialize()

	if !reflect.DeepEqual(tree, config.Defaults()) {
		t.Errorf("expected exactly the defaults, got %#v", tree)
	}
	if LastReload().Outcome != config.OutcomeMissing {
		t.Errorf("expected outcome missing, got %q", LastReload().Outcome)
	}
	if LastReload().ID == "" {
		t.Error("expected a reload generation ID")
	}
}

func TestInitialize_EnvPathOverride(t *testing.T) {
	resetState(t)
	p := writeConfig(t, t.TempDir(), `
logging:
  level: "DEBUG"
`)
	t.Setenv(config.EnvConfigPath, p)

	tree := Initialize()

	if got := tree.String("logging.level", ""); got != "DEBUG" {
		t.Errorf("expected file level %q, got %q", "DEBUG", got)
	}
	// Defaulted keys the file does not mention stay intact.
	if !tree.Bool("transport.require_tls", false) {
		t.Error("expected transport.require_tls default true to survive")
	}
	if got := tree.String("policy.actions.otherwise", ""); got != "ALLOW" {
		t.Errorf("expected default action, got %q", got)
	}
	if ConfigPath() != p {
		t.Errorf("expected resolved path %q, got %q", p, ConfigPath())
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	resetState(t)
	dir := t.TempDir()
	p := writeConfig(t, dir, "logging:\n  level: \"WARN\"\n")
	t.Setenv(config.EnvConfigPath, p)

	first := Initialize()

	// Rewrite the file; a second Initialize must NOT pick it up.
	writeConfig(t, dir, "logging:\n  level: \"ERROR\"\n")
	second := Initialize()

	if !reflect.DeepEqual(first, second) {
		t.Error("second Initialize re-read the file; expected cached tree")
	}
	if got := Config().String("logging.level", ""); got != "WARN" {
		t.Errorf("expected cached level WARN, got %q", got)
	}
}

func TestReload_ReplacesWholesale(t *testing.T) {
	resetState(t)
	dir := t.TempDir()
	p := writeConfig(t, dir, "permit_list:\n  recipients: [\"alice@example.org\"]\n")
	t.Setenv(config.EnvConfigPath, p)

	Initialize()
	if got := Config().Strings("permit_list.recipients"); len(got) != 1 {
		t.Fatalf("expected one recipient, got %v", got)
	}

	writeConfig(t, dir, "transport:\n  require_tls: false\n")
	tree := Reload()

	// The old override is gone entirely, not merged into the new state.
	if got := tree.Strings("permit_list.recipients"); len(got) != 0 {
		t.Errorf("expected permit list reset to default, got %v", got)
	}
	if tree.Bool("transport.require_tls", true) {
		t.Error("expected require_tls false from reloaded file")
	}
	if !reflect.DeepEqual(tree, Config()) {
		t.Error("Reload return value and Config() diverge")
	}
}

func TestReload_PathFixedAtStartup(t *testing.T) {
	resetState(t)
	dirA := t.TempDir()
	dirB := t.TempDir()
	pathA := writeConfig(t, dirA, "logging:\n  level: \"WARN\"\n")
	pathB := writeConfig(t, dirB, "logging:\n  level: \"ERROR\"\n")

	t.Setenv(config.EnvConfigPath, pathA)
	Initialize()

	// Re-pointing the environment variable after startup has no effect.
	t.Setenv(config.EnvConfigPath, pathB)
	tree := Reload()

	if got := tree.String("logging.level", ""); got != "WARN" {
		t.Errorf("expected reload from startup path, got level %q", got)
	}
	if ConfigPath() != pathA {
		t.Errorf("expected path fixed at %q, got %q", pathA, ConfigPath())
	}
}

func TestReload_LoggingLatchHolds(t *testing.T) {
	resetState(t)
	dir := t.TempDir()
	p := writeConfig(t, dir, "logging:\n  level: \"ERROR\"\n")
	t.Setenv(config.EnvConfigPath, p)
	t.Setenv(config.EnvLogLevel, "")

	Initialize()
	levelAfterFirst := logging.ActiveLevel()
	if !logging.Configured() {
		t.Fatal("expected logging configured after first resolution")
	}

	writeConfig(t, dir, "logging:\n  level: \"DEBUG\"\n")
	Reload()

	if logging.ActiveLevel() != levelAfterFirst {
		t.Errorf("reload changed the active level from %v to %v",
			levelAfterFirst, logging.ActiveLevel())
	}
}

func TestReload_MalformedFileFallsBackToDefaults(t *testing.T) {
	resetState(t)
	p := writeConfig(t, t.TempDir(), "logging:\n  level: \"DEBUG\n  broken: [\n")
	t.Setenv(config.EnvConfigPath, p)

	tree := Initialize()

	if !reflect.DeepEqual(tree, config.Defaults()) {
		t.Errorf("expected defaults for malformed file, got %#v", tree)
	}
	if LastReload().Outcome != config.OutcomeMalformed {
		t.Errorf("expected outcome malformed, got %q", LastReload().Outcome)
	}
}

func TestConfig_LazyInitialization(t *testing.T) {
	resetState(t)
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))

	// No explicit Initialize: the first accessor performs the resolution.
	tree := Config()

	if !tree.Bool("transport.require_tls", false) {
		t.Error("expected lazy resolution to produce the safe baseline")
	}
}

func TestSetFallbackPath(t *testing.T) {
	resetState(t)
	p := writeConfig(t, t.TempDir(), "logging:\n  level: \"WARN\"\n")
	t.Setenv(config.EnvConfigPath, "")

	SetFallbackPath(p)
	tree := Initialize()

	if got := tree.String("logging.level", ""); got != "WARN" {
		t.Errorf("expected fallback path to be used, got level %q", got)
	}

	// After resolution the fallback is locked in.
	SetFallbackPath("/nowhere/else.yaml")
	if ConfigPath() != p {
		t.Errorf("expected path fixed at %q, got %q", p, ConfigPath())
	}
}

// reloadProbe is a minimal extension consumer for reload fan-out tests.
type reloadProbe struct {
	trees []config.Tree
	fail  bool
}

func (p *reloadProbe) Name() string { return extension.PointAudit }

func (p *reloadProbe) ApplyConfig(cfg config.Tree) error {
	p.trees = append(p.trees, cfg)
	if p.fail {
		return errors.New("not ready")
	}
	return nil
}

func TestReload_NotifiesConsumers(t *testing.T) {
	resetState(t)
	p := writeConfig(t, t.TempDir(), "logging:\n  level: \"WARN\"\n")
	t.Setenv(config.EnvConfigPath, p)

	probe := &reloadProbe{}
	if err := Extensions().Register(probe); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	Initialize()
	Reload()

	if len(probe.trees) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(probe.trees))
	}
	if got := probe.trees[1].String("logging.level", ""); got != "WARN" {
		t.Errorf("consumer received wrong tree: %q", got)
	}
}

func TestReload_ConsumerFailureDoesNotAbort(t *testing.T) {
	resetState(t)
	p := writeConfig(t, t.TempDir(), "logging:\n  level: \"WARN\"\n")
	t.Setenv(config.EnvConfigPath, p)

	probe := &reloadProbe{fail: true}
	Extensions().Register(probe)

	tree := Initialize()

	if got := tree.String("logging.level", ""); got != "WARN" {
		t.Errorf("consumer failure disturbed resolution: %q", got)
	}
	if len(probe.trees) != 1 {
		t.Errorf("expected 1 notification, got %d", len(probe.trees))
	}
}

func TestEnableMetrics_RecordsOutcomes(t *testing.T) {
	resetState(t)
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))

	registry := prometheus.NewRegistry()
	EnableMetrics(metrics.NewConfigMetrics(registry))

	Initialize()
	Reload()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	var reloads float64
	for _, fam := range families {
		if fam.GetName() != "piisec_config_reloads_total" {
			continue
		}
		for _, m := range fam.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "outcome" && l.GetValue() == "missing" {
					reloads = m.GetCounter().GetValue()
				}
			}
		}
	}
	if reloads != 2 {
		t.Errorf("expected 2 missing-outcome reloads recorded, got %v", reloads)
	}
}
