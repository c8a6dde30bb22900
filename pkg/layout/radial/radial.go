// Package radial computes the concentric angular partition layout: each
// hierarchy level becomes a ring, and every node receives an angular span
// proportional to its share of its parent's value.
package radial

import (
	"math"

	"github.com/openaims/sectorflow/pkg/hierarchy"
	"github.com/openaims/sectorflow/pkg/layout"
)

// FullCircle is the angular span of the whole partition in radians.
const FullCircle = 2 * math.Pi

// Partition computes annular sectors for every node below the root.
//
// The root itself is not emitted; categories form the innermost ring at
// depth 0. Ring bounds are fixed per depth as
// [depth*ringWidth, (depth+1)*ringWidth] with ringWidth = radius/maxDepth,
// so the outermost ring always ends exactly at the given radius.
//
// Each node's span is parentSpan * (value / parentValue); siblings are
// laid out contiguously in traversal order from the parent's start angle,
// which makes the children's spans sum exactly to the parent's span.
// Zero-value nodes degenerate to zero-width sectors that remain present
// in the output so lookups by id stay valid. A zero-value parent gives
// all descendants zero-width sectors at its own start angle.
func Partition(tree *hierarchy.Node, radius float64) []layout.PositionedNode {
	maxDepth := tree.MaxDepth()
	if maxDepth == 0 {
		return []layout.PositionedNode{}
	}

	p := partitioner{
		ringWidth: radius / float64(maxDepth),
		nodes:     make([]layout.PositionedNode, 0, tree.CountNodes()-1),
	}

	cursor := 0.0
	for _, category := range tree.Children {
		span := childSpan(tree, category, FullCircle)
		p.place(category, 0, cursor, span)
		cursor += span
	}
	return p.nodes
}

type partitioner struct {
	ringWidth float64
	nodes     []layout.PositionedNode
}

// place emits the node's sector and recursively partitions its span among
// its children, threading the running start angle through the loop.
func (p *partitioner) place(n *hierarchy.Node, depth int, angleStart, span float64) {
	arc := layout.Arc{
		AngleStart:  angleStart,
		AngleEnd:    angleStart + span,
		RadiusInner: float64(depth) * p.ringWidth,
		RadiusOuter: float64(depth+1) * p.ringWidth,
	}
	p.nodes = append(p.nodes, layout.PositionedNode{
		ID:    n.ID,
		Code:  n.Code,
		Level: n.Level,
		Name:  n.Name,
		Value: n.Value,
		Arc:   &arc,
	})

	cursor := angleStart
	for _, child := range n.Children {
		cs := childSpan(n, child, span)
		p.place(child, depth+1, cursor, cs)
		cursor += cs
	}
}

// childSpan returns the angular span a child receives from its parent's
// span. A zero-value parent contributes zero-width spans to all children.
func childSpan(parent, child *hierarchy.Node, parentSpan float64) float64 {
	if parent.Value <= 0 {
		return 0
	}
	return parentSpan * (child.Value / parent.Value)
}
