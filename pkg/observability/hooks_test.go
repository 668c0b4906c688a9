package observability

import (
	"context"
	"testing"
	"time"
)

type countingPipelineHooks struct {
	NoopPipelineHooks
	indexStarts int
}

func (h *countingPipelineHooks) OnIndexStart(ctx context.Context, path string) {
	h.indexStarts++
}

type countingCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *countingCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.hits++
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// None of these should panic.
	Pipeline().OnIndexStart(ctx, "catalog.json")
	Pipeline().OnIndexComplete(ctx, "catalog.json", 10, time.Second, nil)
	Pipeline().OnLayoutStart(ctx, "grid", 10)
	Pipeline().OnLayoutComplete(ctx, "grid", 0, time.Second, nil)
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "layout")
	Classify().OnClassify(ctx, "rec", 10, true, time.Millisecond)
}

func TestSetAndResetHooks(t *testing.T) {
	defer Reset()
	ctx := context.Background()

	ph := &countingPipelineHooks{}
	ch := &countingCacheHooks{}
	SetPipelineHooks(ph)
	SetCacheHooks(ch)

	Pipeline().OnIndexStart(ctx, "catalog.json")
	Pipeline().OnIndexStart(ctx, "catalog.json")
	Cache().OnCacheHit(ctx, "layout")

	if ph.indexStarts != 2 {
		t.Errorf("indexStarts = %d, want 2", ph.indexStarts)
	}
	if ch.hits != 1 {
		t.Errorf("hits = %d, want 1", ch.hits)
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset should restore no-op pipeline hooks")
	}
}

func TestSetNilHooksIgnored(t *testing.T) {
	defer Reset()

	ph := &countingPipelineHooks{}
	SetPipelineHooks(ph)
	SetPipelineHooks(nil)

	Pipeline().OnIndexStart(context.Background(), "catalog.json")
	if ph.indexStarts != 1 {
		t.Error("nil registration should be ignored")
	}
}
