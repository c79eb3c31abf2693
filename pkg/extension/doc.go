// Package extension defines the typed plugin surface through which optional
// firewall components consume the effective configuration.
//
// The firewall core only resolves configuration and sets up logging. The
// interesting parts — the PII/PHI detector, the policy engine, the action
// executor, the audit logger — are separate components that register here
// against well-known extension point names. The core never links against
// them and never guesses at their behavior; it hands them the effective
// configuration tree on every reload and otherwise stays out of the way.
//
// Absence is explicit: looking up an extension point nobody registered for
// returns ErrNotInstalled, never a nil reference.
//
//	reg := bootstrap.Extensions()
//	reg.Register(myDetector) // Name() == extension.PointDetector
//
//	detector, err := reg.Lookup(extension.PointDetector)
//	if errors.Is(err, extension.ErrNotInstalled) {
//	    // run without detection
//	}
package extension
