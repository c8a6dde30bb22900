package engine

import (
	"context"
	"reflect"
	"testing"

	"github.com/openaims/sectorflow/pkg/allocation"
	"github.com/openaims/sectorflow/pkg/cache"
	"github.com/openaims/sectorflow/pkg/observability"
)

func runnerOptions() Options {
	return Options{
		Allocations: []allocation.Leaf{
			{Code: "11120", Name: "A", Percentage: 60},
			{Code: "12220", Name: "B", Percentage: 40},
		},
		Lookup: testLookup(),
		Mode:   ModeFlow,
		Canvas: testCanvas(),
	}
}

func TestRunnerCachesLayouts(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	ctx := context.Background()
	opts := runnerOptions()

	first, hit, err := r.Layout(ctx, opts)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if hit {
		t.Error("first call should be a cache miss")
	}

	second, hit, err := r.Layout(ctx, opts)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if !hit {
		t.Error("second call should be a cache hit")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached result differs from computed result")
	}
}

func TestRunnerRefreshBypassesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	ctx := context.Background()
	opts := runnerOptions()

	if _, _, err := r.Layout(ctx, opts); err != nil {
		t.Fatalf("Layout() error: %v", err)
	}

	opts.Refresh = true
	_, hit, err := r.Layout(ctx, opts)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if hit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunnerKeySeparation(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	ctx := context.Background()
	opts := runnerOptions()

	if _, _, err := r.Layout(ctx, opts); err != nil {
		t.Fatalf("Layout() error: %v", err)
	}

	// Same allocations in radial mode must not reuse the flow entry.
	opts.Mode = ModeRadial
	result, hit, err := r.Layout(ctx, opts)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if hit {
		t.Error("different mode should key a separate entry")
	}
	if len(result.Links) != 0 {
		t.Error("radial result has links, cache key separation is broken")
	}
}

func TestRunnerNilCollaborators(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	// NullCache means every call recomputes.
	opts := runnerOptions()
	for i := 0; i < 2; i++ {
		_, hit, err := r.Layout(context.Background(), opts)
		if err != nil {
			t.Fatalf("Layout() error: %v", err)
		}
		if hit {
			t.Error("null cache should never hit")
		}
	}
}

func TestRunnerInvalidate(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	ctx := context.Background()
	opts := runnerOptions()

	if _, _, err := r.Layout(ctx, opts); err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if err := r.Invalidate(ctx, opts); err != nil {
		t.Fatalf("Invalidate() error: %v", err)
	}
	if _, hit, _ := r.Layout(ctx, opts); hit {
		t.Error("invalidated entry should not hit")
	}
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestRunnerCacheHooks(t *testing.T) {
	hooks := &countingCacheHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	ctx := context.Background()
	opts := runnerOptions()
	r.Layout(ctx, opts)
	r.Layout(ctx, opts)

	if hooks.misses != 1 || hooks.hits != 1 || hooks.sets != 1 {
		t.Errorf("hooks = %d misses, %d hits, %d sets; want 1/1/1", hooks.misses, hooks.hits, hooks.sets)
	}
}
