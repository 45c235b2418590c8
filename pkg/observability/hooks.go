// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about pipeline execution and the
// steganographic channel.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnEncodeStart(ctx, messageChars)
//	// ... encode ...
//	observability.Pipeline().OnEncodeComplete(ctx, payloadBits, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the encode/decode pipeline.
type PipelineHooks interface {
	// Codec events
	OnEncodeStart(ctx context.Context, messageChars int)
	OnEncodeComplete(ctx context.Context, payloadBits int, duration time.Duration, err error)

	// Channel events
	OnEmbedStart(ctx context.Context, frameBits, capacityBits int)
	OnEmbedComplete(ctx context.Context, frameBits int, duration time.Duration, err error)
	OnExtractStart(ctx context.Context, capacityBits int)
	OnExtractComplete(ctx context.Context, payloadBits int, duration time.Duration, err error)
}

// =============================================================================
// Image Hooks
// =============================================================================

// ImageHooks receives events from image load/save operations.
type ImageHooks interface {
	// OnLoad records a loaded image and its grid shape.
	OnLoad(ctx context.Context, path string, w, h int, err error)

	// OnSave records a persisted stego image.
	OnSave(ctx context.Context, path string, w, h int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnEncodeStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnEncodeComplete(context.Context, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnEmbedStart(context.Context, int, int)                           {}
func (NoopPipelineHooks) OnEmbedComplete(context.Context, int, time.Duration, error)       {}
func (NoopPipelineHooks) OnExtractStart(context.Context, int)                              {}
func (NoopPipelineHooks) OnExtractComplete(context.Context, int, time.Duration, error)     {}

// NoopImageHooks is a no-op implementation of ImageHooks.
type NoopImageHooks struct{}

func (NoopImageHooks) OnLoad(context.Context, string, int, int, error) {}
func (NoopImageHooks) OnSave(context.Context, string, int, int, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	imageHooks    ImageHooks    = NoopImageHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetImageHooks registers custom image hooks.
// This should be called once at application startup before any image operations.
func SetImageHooks(h ImageHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		imageHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Image returns the registered image hooks.
func Image() ImageHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return imageHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	imageHooks = NoopImageHooks{}
}
