// Package logging configures the process-wide structured logging backend for
// the PII-sec firewall and hands out namespaced logger handles.
//
// # One-time initialization
//
// Configure shapes the global slog backend from the effective configuration
// exactly once per process. The first successful call wins; every later call
// is a no-op, so a configuration reload never re-styles log output mid-flight.
// The level is resolved from the PIISEC_LOG_LEVEL environment variable, then
// logging.level in the configuration tree, then INFO. Unrecognized level or
// format names fall back silently; logging setup must never fail the process.
//
// # Named loggers
//
// Named returns a handle carrying a "logger" attribute for the given
// namespace, defaulting to "piisec":
//
//	log := logging.Named("piisec.policy")
//	log.Info("policy loaded", "rules", n)
//
// # PII redaction
//
// Because this process exists to keep PII out of the wrong places, its own
// log stream is filtered too. When logging.redact_pii is enabled (the
// default) the installed handler rewrites string attribute values through a
// set of built-in patterns (email, SSN, phone, credit card, bearer token)
// plus any custom patterns under logging.redact_patterns.
package logging
