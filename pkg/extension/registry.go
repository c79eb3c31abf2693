package extension

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"piisec-hq/piisec/pkg/config"
)

// Well-known extension point names. Consumers are free to register under
// other names; these are the points the firewall distribution knows about.
const (
	PointDetector = "detector"
	PointPolicy   = "policy"
	PointActions  = "actions"
	PointAudit    = "audit"
)

// Consumer is a configuration consumer: a component that receives the
// effective configuration at registration time and again after every reload.
type Consumer interface {
	// Name identifies the extension point this consumer fills.
	Name() string

	// ApplyConfig hands the consumer a new effective configuration tree.
	// The tree is shared; consumers must not mutate it. An error is
	// diagnostic only and never aborts a reload.
	ApplyConfig(cfg config.Tree) error
}

// ErrNotInstalled is returned by Lookup when no consumer is registered for
// the requested extension point.
var ErrNotInstalled = errors.New("extension not installed")

// RegistryError describes a failed registry operation.
type RegistryError struct {
	// Point is the extension point involved, when known.
	Point string

	// Operation is the registry operation that failed.
	Operation string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *RegistryError) Error() string {
	if e.Point != "" {
		return fmt.Sprintf("extension registry %s %q: %s", e.Operation, e.Point, e.Message)
	}
	return fmt.Sprintf("extension registry %s: %s", e.Operation, e.Message)
}

// Registry is a thread-safe mapping from extension point names to registered
// consumers. A point holds at most one consumer; registering again replaces
// the previous one.
type Registry struct {
	mu        sync.RWMutex
	consumers map[string]Consumer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		consumers: make(map[string]Consumer),
	}
}

// Register adds a consumer under its own Name. A consumer already registered
// for the same point is replaced.
func (r *Registry) Register(c Consumer) error {
	if c == nil {
		return &RegistryError{Operation: "register", Message: "consumer cannot be nil"}
	}
	if c.Name() == "" {
		return &RegistryError{Operation: "register", Message: "consumer name cannot be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.consumers[c.Name()] = c
	return nil
}

// Unregister removes the consumer at the given extension point.
func (r *Registry) Unregister(point string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.consumers[point]; !ok {
		return &RegistryError{Point: point, Operation: "unregister", Message: "not installed"}
	}
	delete(r.consumers, point)
	return nil
}

// Lookup returns the consumer registered for the given extension point, or
// ErrNotInstalled (wrapped with the point name) when the point is vacant.
func (r *Registry) Lookup(point string) (Consumer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.consumers[point]
	if !ok {
		return nil, fmt.Errorf("%q: %w", point, ErrNotInstalled)
	}
	return c, nil
}

// Installed returns the sorted names of all occupied extension points.
func (r *Registry) Installed() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.consumers))
	for name := range r.consumers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply fans the effective configuration out to every registered consumer.
// Consumer errors are collected and joined, never short-circuiting the
// fan-out; a misbehaving extension must not starve the others of
// configuration.
func (r *Registry) Apply(cfg config.Tree) error {
	r.mu.RLock()
	consumers := make([]Consumer, 0, len(r.consumers))
	for _, c := range r.consumers {
		consumers = append(consumers, c)
	}
	r.mu.RUnlock()

	var errs []error
	for _, c := range consumers {
		if err := c.ApplyConfig(cfg); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name(), err))
		}
	}
	return errors.Join(errs...)
}
