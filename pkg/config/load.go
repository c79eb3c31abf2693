package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized by the firewall.
const (
	// EnvConfigPath names the configuration file location. When set to a
	// non-empty value it takes precedence over the packaged default path.
	// Read once at startup; changing it at runtime requires a restart.
	EnvConfigPath = "PIISEC_CONFIG"

	// EnvLogLevel overrides the file-configured logging level
	// (DEBUG|INFO|WARN|ERROR, case-insensitive).
	EnvLogLevel = "PIISEC_LOG_LEVEL"
)

// DefaultConfigPath is the packaged default configuration file location used
// when PIISEC_CONFIG is unset or empty.
const DefaultConfigPath = "/etc/piisec/config.yaml"

// LoadOutcome classifies the result of a configuration file load.
type LoadOutcome string

const (
	// OutcomeLoaded means the file was parsed into a top-level mapping.
	OutcomeLoaded LoadOutcome = "loaded"

	// OutcomeMissing means the file does not exist.
	OutcomeMissing LoadOutcome = "missing"

	// OutcomeMalformed means the file could not be read or parsed.
	OutcomeMalformed LoadOutcome = "malformed"

	// OutcomeNonMapping means the document parsed but its top level is not
	// a mapping (e.g. a bare list or scalar).
	OutcomeNonMapping LoadOutcome = "non_mapping"

	// OutcomeEmpty means the file exists but contains no document.
	OutcomeEmpty LoadOutcome = "empty"
)

// LoadStatus describes how a configuration file load went. It is diagnostic
// only: every outcome other than OutcomeLoaded still yields an empty tree,
// never an error, so the caller falls back to the safe baseline.
type LoadStatus struct {
	// Outcome classifies the load result.
	Outcome LoadOutcome

	// Path is the file path that was attempted.
	Path string

	// Err holds the underlying read or parse error for malformed files.
	// Nil for every other outcome.
	Err error
}

// ResolvePath returns the configuration file location: the value of
// PIISEC_CONFIG when set and non-empty, otherwise fallback. An empty fallback
// selects the packaged default path.
func ResolvePath(fallback string) string {
	if v := os.Getenv(EnvConfigPath); v != "" {
		return v
	}
	if fallback != "" {
		return fallback
	}
	return DefaultConfigPath
}

// LoadFile reads and parses the YAML configuration file at path.
//
// A missing file, an unreadable or malformed file, and a document whose top
// level is not a mapping all return an empty tree rather than an error;
// configuration problems must never crash the host process. The returned
// LoadStatus distinguishes the cases for the optional diagnostic channel.
func LoadFile(path string) (Tree, LoadStatus) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Tree{}, LoadStatus{Outcome: OutcomeMissing, Path: path}
		}
		return Tree{}, LoadStatus{Outcome: OutcomeMalformed, Path: path, Err: err}
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Tree{}, LoadStatus{Outcome: OutcomeMalformed, Path: path, Err: err}
	}

	if doc == nil {
		return Tree{}, LoadStatus{Outcome: OutcomeEmpty, Path: path}
	}

	mapping, ok := doc.(map[string]any)
	if !ok {
		return Tree{}, LoadStatus{Outcome: OutcomeNonMapping, Path: path}
	}

	return Tree(mapping), LoadStatus{Outcome: OutcomeLoaded, Path: path}
}
