// Package layout defines the shared geometry types produced by the flow
// and radial layout engines.
//
// All coordinates are in user units (typically pixels). Nodes carry their
// hierarchy metadata (code, level, name, value) alongside geometry so that
// consumers can wire selection callbacks without holding the source tree.
package layout

import "github.com/openaims/sectorflow/pkg/hierarchy"

// Canvas is the drawable area given to the flow layout engine.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is an axis-aligned rectangle in flow layout space.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return (r.X0 + r.X1) / 2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return (r.Y0 + r.Y1) / 2 }

// Arc is an annular sector in radial layout space. Angles are radians,
// measured clockwise from twelve o'clock.
type Arc struct {
	AngleStart  float64 `json:"angle_start"`
	AngleEnd    float64 `json:"angle_end"`
	RadiusInner float64 `json:"radius_inner"`
	RadiusOuter float64 `json:"radius_outer"`
}

// Span returns the angular extent of the arc. Zero-value nodes degenerate
// to zero-span arcs that remain present in output for id lookups.
func (a Arc) Span() float64 { return a.AngleEnd - a.AngleStart }

// PositionedNode is a hierarchy node projected into layout space with a
// resolved color. Exactly one of Rect or Arc is set, depending on the
// engine that produced it.
type PositionedNode struct {
	ID    string          `json:"id"`
	Code  string          `json:"code"`
	Level hierarchy.Level `json:"level"`
	Name  string          `json:"name"`
	Value float64         `json:"value"`
	Color string          `json:"color,omitempty"`

	Rect *Rect `json:"rect,omitempty"`
	Arc  *Arc  `json:"arc,omitempty"`
}

// FlowLink is a connector between adjacent levels in the flow layout.
// Thickness equals the target node's value times the layout scale, so the
// outgoing thicknesses of a node sum to the node's own scaled value.
type FlowLink struct {
	SourceID string  `json:"source_id"`
	TargetID string  `json:"target_id"`
	Value    float64 `json:"value"`
	Color    string  `json:"color,omitempty"`

	// Anchor geometry: the link leaves the source's right edge at
	// (SourceX, SourceY) and enters the target's left edge at
	// (TargetX, TargetY); Y coordinates mark the top of the band.
	SourceX   float64 `json:"source_x"`
	SourceY   float64 `json:"source_y"`
	TargetX   float64 `json:"target_x"`
	TargetY   float64 `json:"target_y"`
	Thickness float64 `json:"thickness"`
}
