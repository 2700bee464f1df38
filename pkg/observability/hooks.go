// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about library loading, rendering and artifact
// export.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetExportHooks(&myExportHooks{})
//	    // ... run application
//	}
//
// The pipeline calls hooks to emit events:
//
//	observability.Render().OnRenderStart(ctx, "hybrid", ids)
//	// ... render ...
//	observability.Render().OnRenderComplete(ctx, "hybrid", kinds, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// RenderHooks receives events from the render pipeline.
type RenderHooks interface {
	// OnLibraryLoaded records a descriptor library load.
	OnLibraryLoaded(ctx context.Context, source string, count int, duration time.Duration, err error)

	// OnRenderStart records the start of a render for the given descriptor ids.
	OnRenderStart(ctx context.Context, mode string, ids []string)

	// OnRenderComplete records a finished render and the pattern kinds it drew.
	OnRenderComplete(ctx context.Context, mode string, kinds []string, duration time.Duration, err error)
}

// ExportHooks receives events when rendered frames are encoded.
type ExportHooks interface {
	// OnEncode records an encoded artifact.
	OnEncode(ctx context.Context, format string, size int, duration time.Duration)
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnLibraryLoaded(context.Context, string, int, time.Duration, error) {}

func (NoopRenderHooks) OnRenderStart(context.Context, string, []string) {}

func (NoopRenderHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnEncode(context.Context, string, int, time.Duration) {}

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	exportHooks ExportHooks = NoopExportHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any render.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetExportHooks registers custom export hooks.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	exportHooks = NoopExportHooks{}
}
