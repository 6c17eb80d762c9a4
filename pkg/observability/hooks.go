// Package observability provides hooks for instrumenting check runs.
//
// The package uses a simple hooks pattern:
//   - Define a hook interface for check lifecycle events
//   - Provide a no-op default implementation
//   - Allow registration of a custom implementation at startup
//
// This keeps the core packages free of observability backends while letting
// an embedding application (CI wrapper, metrics exporter) observe model
// loading and check execution:
//
//	func main() {
//	    observability.SetCheckHooks(&myHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// CheckHooks receives events from the check lifecycle.
type CheckHooks interface {
	// OnModelLoaded fires after the registry was parsed.
	OnModelLoaded(ctx context.Context, path string, components, edges int)

	// OnCheckStart fires before edges are classified.
	OnCheckStart(ctx context.Context, components int)

	// OnCheckComplete fires after classification with the verdict counts.
	OnCheckComplete(ctx context.Context, violations, warnings int, duration time.Duration)
}

// NoopCheckHooks is a no-op implementation of CheckHooks.
type NoopCheckHooks struct{}

func (NoopCheckHooks) OnModelLoaded(context.Context, string, int, int)          {}
func (NoopCheckHooks) OnCheckStart(context.Context, int)                        {}
func (NoopCheckHooks) OnCheckComplete(context.Context, int, int, time.Duration) {}

var (
	checkHooks CheckHooks = NoopCheckHooks{}
	hooksMu    sync.RWMutex
)

// SetCheckHooks registers custom check hooks.
// This should be called once at application startup before any check runs.
func SetCheckHooks(h CheckHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		checkHooks = h
	}
}

// Check returns the registered check hooks.
func Check() CheckHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return checkHooks
}

// Reset restores the no-op default.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	checkHooks = NoopCheckHooks{}
}
