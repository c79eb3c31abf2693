// Piisec is the PII-sec firewall: a policy enforcement point that keeps
// protected information from leaving over insecure or unpermitted channels.
//
// This binary hosts the configuration and logging bootstrap plus diagnostic
// commands. Detection, policy evaluation, action execution, and audit
// logging are separate components that register against the firewall's
// extension points.
//
// Usage:
//
//	# Print the effective configuration
//	piisec config show
//
//	# Print the resolved configuration file path
//	piisec config path
//
//	# Diagnose the configuration file without starting anything
//	piisec config check
//
//	# Show version information
//	piisec version
//
// The configuration file location is taken from the PIISEC_CONFIG environment
// variable, the --config flag, or the packaged default, in that order.
package main

func main() {
	Execute()
}
