package config

import (
	"reflect"
	"testing"
)

func TestDefaults_SafeBaseline(t *testing.T) {
	d := Defaults()

	if !d.Bool("transport.require_tls", false) {
		t.Error("baseline must require TLS")
	}
	if got := d.String("policy.actions.insecure_transport", ""); got != "BLOCK" {
		t.Errorf("expected insecure_transport %q, got %q", "BLOCK", got)
	}
	if got := d.String("policy.actions.contains_phi_not_permitted", ""); got != "REDACT" {
		t.Errorf("expected contains_phi_not_permitted %q, got %q", "REDACT", got)
	}
	if got := d.String("policy.actions.otherwise", ""); got != "ALLOW" {
		t.Errorf("expected otherwise %q, got %q", "ALLOW", got)
	}
	if got := d.String("logging.level", ""); got != "INFO" {
		t.Errorf("expected logging level %q, got %q", "INFO", got)
	}
	if got := d.Strings("permit_list.recipients"); len(got) != 0 {
		t.Errorf("expected empty permit list, got %v", got)
	}
}

func TestDefaults_FreshTreePerCall(t *testing.T) {
	first := Defaults()
	first.Sub("logging")["level"] = "ERROR"

	second := Defaults()
	if got := second.String("logging.level", ""); got != "INFO" {
		t.Errorf("mutating one Defaults tree leaked into the next: %q", got)
	}
	if reflect.DeepEqual(first, second) {
		t.Error("expected trees to diverge after mutation")
	}
}
