// Package flow computes the left-to-right flow layout: one fixed x-band
// per hierarchy level, node heights proportional to value, and connector
// links whose thicknesses conserve value between adjacent levels.
package flow

import (
	"github.com/openaims/sectorflow/pkg/hierarchy"
	"github.com/openaims/sectorflow/pkg/layout"
)

// Geometry constants. Node bands have a fixed width; vertical stacking
// uses a fixed padding between siblings in the same band.
const (
	NodeWidth   = 24.0
	NodePadding = 8.0
)

// minHeight keeps zero and near-zero branches visible and clickable.
// This deliberately breaks strict proportionality for very small values;
// links keep their exact scaled thickness regardless.
var minHeight = map[hierarchy.Level]float64{
	hierarchy.LevelRoot:      36,
	hierarchy.LevelCategory:  30,
	hierarchy.LevelSector:    16,
	hierarchy.LevelSubsector: 8,
}

// levelCount is the number of x-bands: root, category, sector, subsector.
const levelCount = 4

// Layout computes node rectangles and link geometry for the tree on the
// given canvas.
//
// Levels sit at fixed x-bands spaced innerWidth/(levelCount-1) apart,
// where innerWidth excludes the band width itself. Node height is
// max(minHeight[level], value*scale) with scale = canvas.Height divided
// by the root value. Nodes stack top-down in traversal order; total
// consumed height may exceed the canvas for large fan-out; the engine
// never clips or rescales, scrolling is the consumer's problem.
//
// An empty tree (root without children) yields empty slices.
func Layout(tree *hierarchy.Node, canvas layout.Canvas) ([]layout.PositionedNode, []layout.FlowLink) {
	if len(tree.Children) == 0 {
		return []layout.PositionedNode{}, []layout.FlowLink{}
	}

	scale := 0.0
	if tree.Value > 0 {
		scale = canvas.Height / tree.Value
	}

	levelWidth := (canvas.Width - NodeWidth) / float64(levelCount-1)

	nodes, rects := placeNodes(tree, levelWidth, scale)
	links := placeLinks(tree, rects, scale)
	return nodes, links
}

// Scale returns the value-to-pixels factor used for the tree on the given
// canvas. Exposed so consumers can convert values in tooltips.
func Scale(tree *hierarchy.Node, canvas layout.Canvas) float64 {
	if tree.Value > 0 {
		return canvas.Height / tree.Value
	}
	return 0
}

// placeNodes assigns a rectangle to every node, stacking each level
// top-down in depth-first traversal order.
func placeNodes(tree *hierarchy.Node, levelWidth, scale float64) ([]layout.PositionedNode, map[string]layout.Rect) {
	byLevel := collectByLevel(tree)

	nodes := make([]layout.PositionedNode, 0, tree.CountNodes())
	rects := make(map[string]layout.Rect, tree.CountNodes())

	for depth, levelNodes := range byLevel {
		if len(levelNodes) == 0 {
			continue
		}
		x0 := float64(depth) * levelWidth
		cursor := 0.0
		for _, n := range levelNodes {
			h := nodeHeight(n, scale)
			rect := layout.Rect{X0: x0, Y0: cursor, X1: x0 + NodeWidth, Y1: cursor + h}
			cursor += h + NodePadding

			rects[n.ID] = rect
			r := rect
			nodes = append(nodes, layout.PositionedNode{
				ID:    n.ID,
				Code:  n.Code,
				Level: n.Level,
				Name:  n.Name,
				Value: n.Value,
				Rect:  &r,
			})
		}
	}

	return nodes, rects
}

// collectByLevel gathers nodes per depth in depth-first traversal order,
// which fixes the stacking and link order for deterministic output. The
// band index equals the level, so a tree without subsectors simply leaves
// the last band empty rather than shifting bands left.
func collectByLevel(tree *hierarchy.Node) [][]*hierarchy.Node {
	byLevel := make([][]*hierarchy.Node, levelCount)
	tree.Walk(func(n *hierarchy.Node) {
		d := int(n.Level)
		byLevel[d] = append(byLevel[d], n)
	})
	return byLevel
}

// anchors tracks the consumed offset on each node's source and target
// side. State lives entirely within one Layout call; two calls over the
// same tree produce identical anchor positions.
type anchors struct {
	source map[string]float64
	target map[string]float64
}

// placeLinks builds one link per parent→child edge in depth-first order,
// folding the running anchor offsets through the link list. A link's
// thickness is the child's value times the shared scale, never
// recomputed per link, so outgoing thicknesses sum to the parent's
// scaled value exactly.
func placeLinks(tree *hierarchy.Node, rects map[string]layout.Rect, scale float64) []layout.FlowLink {
	st := anchors{
		source: make(map[string]float64),
		target: make(map[string]float64),
	}

	links := make([]layout.FlowLink, 0, tree.CountNodes()-1)
	tree.Walk(func(parent *hierarchy.Node) {
		for _, child := range parent.Children {
			links = append(links, placeLink(parent, child, rects, scale, &st))
		}
	})
	return links
}

func placeLink(parent, child *hierarchy.Node, rects map[string]layout.Rect, scale float64, st *anchors) layout.FlowLink {
	thickness := child.Value * scale
	src := rects[parent.ID]
	tgt := rects[child.ID]

	sy := src.Y0 + st.source[parent.ID]
	ty := tgt.Y0 + st.target[child.ID]
	st.source[parent.ID] += thickness
	st.target[child.ID] += thickness

	return layout.FlowLink{
		SourceID:  parent.ID,
		TargetID:  child.ID,
		Value:     child.Value,
		SourceX:   src.X1,
		SourceY:   sy,
		TargetX:   tgt.X0,
		TargetY:   ty,
		Thickness: thickness,
	}
}

func nodeHeight(n *hierarchy.Node, scale float64) float64 {
	h := n.Value * scale
	if min := minHeight[n.Level]; h < min {
		return min
	}
	return h
}
