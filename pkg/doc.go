// Package pkg provides the core libraries for Sectorflow allocation layout.
//
// # Overview
//
// Sectorflow turns flat lists of sector allocations (aid-transparency style
// classification codes with percentage shares) into hierarchical layouts
// ready for rendering. The pkg directory is organized into three main areas:
//
//  1. Core domain: [allocation], [classify], [hierarchy], [palette], [layout]
//  2. Coordination: [engine] (compute, cache-aware runner, JSON sink)
//  3. Infrastructure: [cache], [store], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow through Sectorflow:
//
//	Allocation list (code, name, percentage)
//	         ↓
//	    [classify] package (resolve codes to category/sector ancestry)
//	         ↓
//	    [hierarchy] package (reconstruct the four-level tree)
//	         ↓
//	    [layout/flow] or [layout/radial] (geometry)  +  [palette] (colors)
//	         ↓
//	    [engine] package (coordinate, color, serialize)
//	         ↓
//	    layout.json output
//
// # Quick Start
//
// Compute a flow layout and serialize it:
//
//	import (
//	    "context"
//	    "github.com/openaims/sectorflow/pkg/classify"
//	    "github.com/openaims/sectorflow/pkg/engine"
//	    "github.com/openaims/sectorflow/pkg/layout"
//	)
//
//	allocs := []allocation.Leaf{
//	    {Code: "11120", Name: "Education facilities", Percentage: 60},
//	    {Code: "12220", Name: "Basic health care", Percentage: 40},
//	}
//
//	result, err := engine.Compute(context.Background(), allocs,
//	    classify.MustDefault(), engine.ModeFlow, layout.Canvas{Width: 975, Height: 800})
//	if err != nil {
//	    return err
//	}
//
//	data, _ := engine.RenderJSON(result, engine.WithJSONIndent())
//
// Identical inputs always produce identical output bytes: geometry, colors,
// and ordering are all deterministic.
//
// # Main Packages
//
// [allocation] - Input boundary. Parses and shape-validates allocation lists;
// percentage values pass through untouched, including out-of-range ones.
//
// [classify] - Sector classification dataset and lookup. Resolves 5-digit
// subsector and 3-digit sector codes to their ancestry, synthesizing
// placeholder ancestors for unknown codes by code truncation.
//
// [hierarchy] - Tree reconstruction. Builds the root → category → sector →
// subsector tree with bottom-up value aggregation.
//
// [palette] - Deterministic color assignment. Category base colors with
// darkened node variants and per-level tint ramps for descendants.
//
// [layout] - Geometry types shared by the two engines. [layout/flow] stacks
// nodes into four vertical bands and routes value-proportional links;
// [layout/radial] nests rings of arcs around the hierarchy.
//
// [engine] - Coordination. Validates mode and canvas, runs the pipeline,
// applies colors, serializes results, and memoizes through [cache].
//
// [cache] - Byte-level caching (file, redis, null backends) keyed by input
// hashes.
//
// [store] - Saved views (memory and MongoDB backends).
//
// [errors] - Structured errors with stable machine-readable codes.
//
// [observability] - Optional hooks for engine and cache events.
package pkg
