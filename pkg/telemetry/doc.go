// Package telemetry groups the observability subsystems of the PII-sec
// firewall: structured logging (telemetry/logging) and Prometheus metrics
// (telemetry/metrics).
package telemetry
