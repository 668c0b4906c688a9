// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional: the library emits events through small hook
// interfaces with no-op defaults, and the binary registers real
// implementations at startup. Libraries never import an observability
// backend directly.
//
// Register hooks once at startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnIndexStart(ctx, path)
//	// ... build the index ...
//	observability.Pipeline().OnIndexComplete(ctx, path, courseCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the catalog pipeline stages.
type PipelineHooks interface {
	// Index events
	OnIndexStart(ctx context.Context, path string)
	OnIndexComplete(ctx context.Context, path string, courseCount int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, vizType string, courseCount int)
	OnLayoutComplete(ctx context.Context, vizType string, unresolved int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ClassifyHooks receives events from availability classification.
type ClassifyHooks interface {
	// OnClassify records a full-catalog classification pass.
	OnClassify(ctx context.Context, recordID string, courseCount int, futureMode bool, duration time.Duration)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnIndexStart(context.Context, string) {}
func (NoopPipelineHooks) OnIndexComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                          {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                             {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)    {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopClassifyHooks is a no-op implementation of ClassifyHooks.
type NoopClassifyHooks struct{}

func (NoopClassifyHooks) OnClassify(context.Context, string, int, bool, time.Duration) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	classifyHooks ClassifyHooks = NoopClassifyHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// Call once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// Call once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetClassifyHooks registers custom classification hooks.
// Call once at application startup.
func SetClassifyHooks(h ClassifyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		classifyHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Classify returns the registered classification hooks.
func Classify() ClassifyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return classifyHooks
}

// Reset restores all hooks to their no-op defaults.
// Primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	classifyHooks = NoopClassifyHooks{}
}
