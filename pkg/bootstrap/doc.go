// Package bootstrap owns the process-wide configuration state of the PII-sec
// firewall and the one-time logging initialization tied to it.
//
// # Lifecycle
//
// At startup the application calls Initialize, which resolves the
// configuration path (PIISEC_CONFIG environment variable, falling back to the
// packaged default), loads and parses the file, deep-merges it over the safe
// built-in baseline, configures the logging backend, and caches the result:
//
//	tree := bootstrap.Initialize()
//	cfg := bootstrap.Config()          // cached effective configuration
//	log := bootstrap.Logger("piisec.policy")
//
// Accessing Config before Initialize performs the same resolution lazily, so
// the effective configuration is always available. Reload re-runs the
// resolution on demand, replacing the cached tree wholesale and fanning the
// new tree out to registered extension consumers. The logging backend is
// deliberately untouched by reloads: the first successful initialization
// latches for the process lifetime.
//
// The configuration path is fixed at first resolution. Changing PIISEC_CONFIG
// afterwards has no effect until restart.
//
// # Degradation
//
// Resolution never fails. A missing, malformed, or non-mapping configuration
// file degrades to the safe baseline, with the distinction surfaced only as a
// warning-level diagnostic, a reload metric label, and the LastReload
// outcome.
//
// # Concurrency
//
// The cached tree is guarded by a read-write lock; readers always observe
// either the previous or the new tree, never a partial merge. Reload is meant
// to be an infrequent operator action, not a hot path.
package bootstrap
