// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; the application
// registers implementations at startup. The defaults are no-ops, so the
// capture and compose packages carry no dependency on a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCaptureHooks(&myCaptureHooks{})
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Capture().OnCapture(ctx, "member", len(text))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Capture Hooks
// =============================================================================

// CaptureHooks receives events from the page capture agent.
type CaptureHooks interface {
	// OnModeChange records a mode switch and how many elements were decorated.
	OnModeChange(ctx context.Context, mode string, decorated int)

	// OnCapture records an appended item.
	OnCapture(ctx context.Context, itemType string, textLen int)

	// OnClear records a cleared selection.
	OnClear(ctx context.Context)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the composer.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, items int)
	OnRenderComplete(ctx context.Context, items int, duration time.Duration, err error)

	// OnExport records an encoded PNG.
	OnExport(ctx context.Context, size int)
}

// =============================================================================
// Storage Hooks
// =============================================================================

// StorageHooks receives events from typed storage access.
type StorageHooks interface {
	OnRead(ctx context.Context, key string, hit bool)
	OnWrite(ctx context.Context, key string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCaptureHooks is a no-op implementation of CaptureHooks.
type NoopCaptureHooks struct{}

func (NoopCaptureHooks) OnModeChange(context.Context, string, int) {}
func (NoopCaptureHooks) OnCapture(context.Context, string, int)    {}
func (NoopCaptureHooks) OnClear(context.Context)                   {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, int)                         {}
func (NoopRenderHooks) OnRenderComplete(context.Context, int, time.Duration, error) {}
func (NoopRenderHooks) OnExport(context.Context, int)                              {}

// NoopStorageHooks is a no-op implementation of StorageHooks.
type NoopStorageHooks struct{}

func (NoopStorageHooks) OnRead(context.Context, string, bool) {}
func (NoopStorageHooks) OnWrite(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	captureHooks CaptureHooks = NoopCaptureHooks{}
	renderHooks  RenderHooks  = NoopRenderHooks{}
	storageHooks StorageHooks = NoopStorageHooks{}
	hooksMu      sync.RWMutex
)

// SetCaptureHooks registers custom capture hooks. Nil is ignored.
func SetCaptureHooks(h CaptureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		captureHooks = h
	}
}

// SetRenderHooks registers custom render hooks. Nil is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetStorageHooks registers custom storage hooks. Nil is ignored.
func SetStorageHooks(h StorageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storageHooks = h
	}
}

// Capture returns the registered capture hooks.
func Capture() CaptureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return captureHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Storage returns the registered storage hooks.
func Storage() StorageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storageHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	captureHooks = NoopCaptureHooks{}
	renderHooks = NoopRenderHooks{}
	storageHooks = NoopStorageHooks{}
}
