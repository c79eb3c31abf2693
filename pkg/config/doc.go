// Package config provides configuration loading and merging for the PII-sec
// firewall.
//
// Configuration is an untyped tree of nested string-keyed mappings loaded from
// a YAML file and deep-merged over a built-in safe baseline. Unknown keys pass
// through untouched so that policy extensions can carry their own settings
// without this package knowing about them.
//
// # Resolution
//
// The configuration file location is resolved from the PIISEC_CONFIG
// environment variable when set to a non-empty value, falling back to the
// packaged default path (/etc/piisec/config.yaml):
//
//	path := config.ResolvePath()
//	tree, status := config.LoadFile(path)
//	effective := config.DeepMerge(config.Defaults(), tree)
//
// # Degradation
//
// Configuration content problems never surface as errors. A missing file, a
// malformed document, or a document whose top level is not a mapping all
// degrade to an empty override, so the effective configuration falls back to
// the safe baseline. The LoadStatus returned alongside the tree classifies
// the outcome for diagnostics without changing that contract.
//
// # Safe baseline
//
// The defaults fail closed: transport requires TLS, insecure transport is
// blocked, unpermitted PHI is redacted, and only the residual case is allowed.
//
// # Thread safety
//
// All functions in this package are pure and safe for concurrent use. The
// process-wide effective configuration lives in package bootstrap, which
// guards it with a read-write lock.
package config
