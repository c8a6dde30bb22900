// Package palette assigns a deterministic, collision-free color scheme to
// a classification hierarchy.
//
// Every top-level category receives a base color from an immutable palette
// and all of its descendants stay inside that hue family: the category
// node itself uses a darkened variant, sectors use light tints and
// subsectors lighter tints still. All channel math is integer-rounded and
// bit-exact, so two assignments over structurally identical trees produce
// byte-identical hex strings.
package palette

import (
	"fmt"
	"math"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the lowercase "#rrggbb" form used in all serialized output.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses a "#rrggbb" color string.
func ParseHex(s string) (RGB, error) {
	var c RGB
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("invalid hex color %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return c, nil
}

// Darken scales each channel by factor, rounding to the nearest integer.
func (c RGB) Darken(factor float64) RGB {
	return RGB{
		R: roundChannel(float64(c.R) * factor),
		G: roundChannel(float64(c.G) * factor),
		B: roundChannel(float64(c.B) * factor),
	}
}

// Tint interpolates the color toward white: ch' = round(ch + (255-ch)*t).
// t = 0 returns the color unchanged, t = 1 returns white.
func (c RGB) Tint(t float64) RGB {
	return RGB{
		R: roundChannel(float64(c.R) + (255-float64(c.R))*t),
		G: roundChannel(float64(c.G) + (255-float64(c.G))*t),
		B: roundChannel(float64(c.B) + (255-float64(c.B))*t),
	}
}

func roundChannel(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

// HSL returns the hue (degrees, 0–360), saturation and lightness (0–1) of
// the color. Used to verify hue-family containment in tests and tooling.
func (c RGB) HSL() (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h * 60, s, l
}
