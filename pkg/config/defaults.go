package config

// Default values for the safe baseline configuration.
const (
	// Transport defaults
	DefaultRequireTLS = true

	// Policy action defaults. The firewall fails closed: insecure transport
	// is blocked, unpermitted PHI is redacted, and only the residual case is
	// allowed. Action strings are passed through to the policy engine
	// unvalidated.
	DefaultActionInsecureTransport = "BLOCK"
	DefaultActionPHINotPermitted   = "REDACT"
	DefaultActionOtherwise         = "ALLOW"

	// Logging defaults
	DefaultLoggingLevel  = "INFO"
	DefaultLoggingFormat = "json"
)

// Defaults returns the built-in safe baseline configuration. A fresh tree is
// returned on every call so the baseline can never be mutated through a
// previously returned reference.
func Defaults() Tree {
	return Tree{
		"transport": Tree{
			"require_tls": DefaultRequireTLS,
		},
		"permit_list": Tree{
			"recipients": []any{},
		},
		"policy": Tree{
			"actions": Tree{
				"insecure_transport":         DefaultActionInsecureTransport,
				"contains_phi_not_permitted": DefaultActionPHINotPermitted,
				"otherwise":                  DefaultActionOtherwise,
			},
		},
		"logging": Tree{
			"level":  DefaultLoggingLevel,
			"format": DefaultLoggingFormat,
		},
	}
}
