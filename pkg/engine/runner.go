package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/openaims/sectorflow/pkg/allocation"
	"github.com/openaims/sectorflow/pkg/cache"
	"github.com/openaims/sectorflow/pkg/classify"
	"github.com/openaims/sectorflow/pkg/layout"
	"github.com/openaims/sectorflow/pkg/observability"
)

// Runner wraps Compute with caching. Both the CLI and the server use it
// to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Options holds the inputs for a cached layout computation.
type Options struct {
	Allocations []allocation.Leaf
	Lookup      *classify.Lookup
	Mode        Mode
	Canvas      layout.Canvas

	// Refresh bypasses the cache and recomputes.
	Refresh bool
}

// Layout computes a layout with caching and reports whether the result
// came from the cache.
func (r *Runner) Layout(ctx context.Context, opts Options) (*LayoutResult, bool, error) {
	key, keyed := r.layoutKey(opts)

	if keyed && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			cached, err := ParseResult(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// Corrupt entry, fall through to recompute
			_ = r.Cache.Delete(ctx, key)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	result, err := Compute(ctx, opts.Allocations, opts.Lookup, opts.Mode, opts.Canvas)
	if err != nil {
		return nil, false, err
	}

	r.Logger.Info("computed layout",
		"mode", opts.Mode,
		"nodes", result.Summary.NodeCount,
		"links", result.Summary.LinkCount,
		"duration", time.Since(start))

	if keyed {
		if data, err := RenderJSON(result); err == nil {
			setErr := cache.RetryWithBackoff(ctx, func() error {
				return r.Cache.Set(ctx, key, data, cache.TTLLayout)
			})
			if setErr != nil {
				r.Logger.Warn("layout cache write failed", "err", setErr)
			} else {
				observability.Cache().OnCacheSet(ctx, "layout", len(data))
			}
		}
	}

	return result, false, nil
}

// Invalidate drops the cached entry for the given inputs.
func (r *Runner) Invalidate(ctx context.Context, opts Options) error {
	key, keyed := r.layoutKey(opts)
	if !keyed {
		return nil
	}
	return r.Cache.Delete(ctx, key)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// layoutKey derives the cache key from the allocation set and layout
// parameters. Reports false if the allocations cannot be serialized, in
// which case caching is skipped for this request.
func (r *Runner) layoutKey(opts Options) (string, bool) {
	data, err := json.Marshal(opts.Allocations)
	if err != nil {
		return "", false
	}
	key := r.Keyer.LayoutKey(cache.Hash(data), cache.LayoutKeyOpts{
		Mode:   string(opts.Mode),
		Width:  opts.Canvas.Width,
		Height: opts.Canvas.Height,
	})
	return key, true
}
