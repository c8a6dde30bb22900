// Package engine is the layout coordinator: it runs the complete
// hierarchy → color → geometry pipeline and exposes the positioned,
// colored node and link collections consumed by rendering layers and
// selection callbacks.
//
// Compute is a pure function of its inputs. Every call reruns the whole
// pipeline from the flat allocation list. There is no incremental
// patching and no hidden state, so recomputation on resize or data
// refresh can never observe a stale layout. Callers wanting to avoid
// recomputation on unchanged input should memoize externally (see
// pkg/cache).
package engine

import (
	"context"
	"time"

	"github.com/openaims/sectorflow/pkg/allocation"
	"github.com/openaims/sectorflow/pkg/classify"
	"github.com/openaims/sectorflow/pkg/errors"
	"github.com/openaims/sectorflow/pkg/hierarchy"
	"github.com/openaims/sectorflow/pkg/layout"
	"github.com/openaims/sectorflow/pkg/layout/flow"
	"github.com/openaims/sectorflow/pkg/layout/radial"
	"github.com/openaims/sectorflow/pkg/observability"
	"github.com/openaims/sectorflow/pkg/palette"
)

// Mode selects the active layout geometry.
type Mode string

// Supported layout modes.
const (
	ModeFlow   Mode = "flow"
	ModeRadial Mode = "radial"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFlow, ModeRadial:
		return Mode(s), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidMode, "unknown layout mode %q (want flow or radial)", s)
	}
}

// Summary carries the headline figures derived from a computation.
type Summary struct {
	TotalValue float64 `json:"total_value"`
	NodeCount  int     `json:"node_count"`
	LinkCount  int     `json:"link_count"`
	MaxDepth   int     `json:"max_depth"`
}

// LayoutResult is the positioned, colored output of one computation.
type LayoutResult struct {
	Mode    Mode                    `json:"mode"`
	Canvas  layout.Canvas           `json:"canvas"`
	Nodes   []layout.PositionedNode `json:"nodes"`
	Links   []layout.FlowLink       `json:"links"`
	Summary Summary                 `json:"summary"`
}

// Selection is the payload handed to segment click callbacks: the
// classification code and hierarchy level of the clicked node.
type Selection struct {
	Code  string          `json:"code"`
	Level hierarchy.Level `json:"level"`
}

// Selection resolves a node ID to its selection payload.
func (r *LayoutResult) Selection(nodeID string) (Selection, bool) {
	for _, n := range r.Nodes {
		if n.ID == nodeID {
			return Selection{Code: n.Code, Level: n.Level}, true
		}
	}
	return Selection{}, false
}

// Node returns the positioned node with the given ID.
func (r *LayoutResult) Node(nodeID string) (layout.PositionedNode, bool) {
	for _, n := range r.Nodes {
		if n.ID == nodeID {
			return n, true
		}
	}
	return layout.PositionedNode{}, false
}

// Compute runs the full pipeline: hierarchy build, color assignment and
// geometry for the requested mode.
//
// Empty allocations produce an empty-but-valid result (no nodes, no
// links, zero summary) that consumers render as a "no data" state.
// Malformed percentage values are aggregated verbatim; Compute fails only
// on an invalid mode or canvas, never on data.
func Compute(ctx context.Context, allocs []allocation.Leaf, lookup *classify.Lookup, mode Mode, canvas layout.Canvas) (*LayoutResult, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if err := errors.ValidateCanvas(canvas.Width, canvas.Height); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Engine().OnComputeStart(ctx, string(mode), len(allocs))

	tree := buildTree(ctx, allocs, lookup)
	colors := palette.DefaultScheme().Assign(tree)

	var nodes []layout.PositionedNode
	var links []layout.FlowLink
	switch mode {
	case ModeFlow:
		nodes, links = flow.Layout(tree, canvas)
	case ModeRadial:
		nodes = radial.Partition(tree, radius(canvas))
		links = []layout.FlowLink{}
	}

	applyColors(nodes, links, colors)

	result := &LayoutResult{
		Mode:   mode,
		Canvas: canvas,
		Nodes:  nodes,
		Links:  links,
		Summary: Summary{
			TotalValue: tree.Value,
			NodeCount:  len(nodes),
			LinkCount:  len(links),
			MaxDepth:   tree.MaxDepth(),
		},
	}

	observability.Engine().OnComputeComplete(ctx, string(mode), len(nodes), time.Since(start), nil)
	return result, nil
}

func buildTree(ctx context.Context, allocs []allocation.Leaf, lookup *classify.Lookup) *hierarchy.Node {
	start := time.Now()
	observability.Engine().OnBuildStart(ctx, len(allocs))
	tree := hierarchy.Build(allocs, lookup)
	observability.Engine().OnBuildComplete(ctx, tree.CountNodes(), time.Since(start))
	return tree
}

// radius derives the radial partition radius from the canvas: the largest
// circle that fits.
func radius(canvas layout.Canvas) float64 {
	r := canvas.Width
	if canvas.Height < r {
		r = canvas.Height
	}
	return r / 2
}

// applyColors resolves the assignment onto positioned nodes and links.
// Link color is keyed by the link's target: root→category links carry the
// undarkened base color, deeper links match their target node.
func applyColors(nodes []layout.PositionedNode, links []layout.FlowLink, colors palette.Assignment) {
	for i := range nodes {
		if c, ok := colors.Node(nodes[i].ID); ok {
			nodes[i].Color = c.Hex()
		}
	}
	for i := range links {
		if c, ok := colors.Link(links[i].TargetID); ok {
			links[i].Color = c.Hex()
		}
	}
}
