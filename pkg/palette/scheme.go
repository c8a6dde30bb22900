package palette

import "github.com/openaims/sectorflow/pkg/hierarchy"

// Base is the ordered palette of base colors assigned to top-level
// categories. It is a package-level constant in spirit: never mutated at
// runtime, so concurrent assignments are safe to share it.
//
// Categories beyond the palette size cycle via index modulo: the color at
// position N+1 repeats position 1. That collision is a documented property
// of the scheme, not a bug; sibling-level uniqueness only degrades once a
// tree has more top-level branches than palette entries.
var Base = []RGB{
	{0x1f, 0x77, 0xb4}, // blue
	{0xff, 0x7f, 0x0e}, // orange
	{0x2c, 0xa0, 0x2c}, // green
	{0xd6, 0x27, 0x28}, // red
	{0x94, 0x67, 0xbd}, // purple
	{0x8c, 0x56, 0x4b}, // brown
	{0xe3, 0x77, 0xc2}, // pink
	{0x7f, 0x7f, 0x7f}, // gray
	{0xbc, 0xbd, 0x22}, // olive
	{0x17, 0xbe, 0xcf}, // cyan
}

// RootColor is the neutral color of the synthetic root band.
var RootColor = RGB{0x99, 0x99, 0x99}

// Darkening factor for category node colors.
const categoryDarken = 0.7

// Tint ranges for sector and subsector siblings.
const (
	sectorTintMin    = 0.1
	sectorTintMax    = 0.3
	subsectorTintMin = 0.4
	subsectorTintMax = 0.7
)

// Assignment maps node IDs to resolved colors. Link colors are keyed by
// the link's target node ID (each node has exactly one incoming link).
type Assignment struct {
	nodes map[string]RGB
	links map[string]RGB
}

// Node returns the color assigned to a node.
func (a Assignment) Node(id string) (RGB, bool) {
	c, ok := a.nodes[id]
	return c, ok
}

// Link returns the color of the link whose target is the given node.
func (a Assignment) Link(targetID string) (RGB, bool) {
	c, ok := a.links[targetID]
	return c, ok
}

// Len returns the number of node colors assigned.
func (a Assignment) Len() int { return len(a.nodes) }

// Scheme generates color assignments from an injected base palette.
type Scheme struct {
	palette []RGB
}

// NewScheme creates a scheme over the given palette. An empty palette
// falls back to [Base].
func NewScheme(palette []RGB) Scheme {
	if len(palette) == 0 {
		palette = Base
	}
	return Scheme{palette: palette}
}

// DefaultScheme is a scheme over the packaged base palette.
func DefaultScheme() Scheme { return NewScheme(nil) }

// Assign computes colors for every node in the tree.
//
// Category node colors are the darkened base; the root→category link
// keeps the undarkened base so the flow diagram shows the pure hue.
// Sector tints spread evenly across siblings in [0.1, 0.3], subsector
// tints in [0.4, 0.7]; a single sibling takes the range midpoint. Sector
// and subsector link colors equal their node colors.
//
// Assignment depends only on tree structure and traversal order, so two
// calls over structurally identical trees yield identical colors.
func (s Scheme) Assign(root *hierarchy.Node) Assignment {
	a := Assignment{
		nodes: make(map[string]RGB, root.CountNodes()),
		links: make(map[string]RGB),
	}

	a.nodes[root.ID] = RootColor

	for i, category := range root.Children {
		base := s.palette[i%len(s.palette)]
		a.nodes[category.ID] = base.Darken(categoryDarken)
		a.links[category.ID] = base

		for j, sector := range category.Children {
			t := spread(sectorTintMin, sectorTintMax, j, len(category.Children))
			sectorColor := base.Tint(t)
			a.nodes[sector.ID] = sectorColor
			a.links[sector.ID] = sectorColor

			for k, leaf := range sector.Children {
				lt := spread(subsectorTintMin, subsectorTintMax, k, len(sector.Children))
				leafColor := base.Tint(lt)
				a.nodes[leaf.ID] = leafColor
				a.links[leaf.ID] = leafColor
			}
		}
	}

	return a
}

// spread places index i of n siblings evenly across [min, max]. A single
// sibling takes the midpoint.
func spread(min, max float64, i, n int) float64 {
	if n <= 1 {
		return (min + max) / 2
	}
	return min + (max-min)*float64(i)/float64(n-1)
}
