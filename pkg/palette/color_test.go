package palette

import (
	"math"
	"testing"
)

func TestHexRoundTrip(t *testing.T) {
	c := RGB{0x1f, 0x77, 0xb4}
	if got := c.Hex(); got != "#1f77b4" {
		t.Errorf("Hex() = %q, want #1f77b4", got)
	}

	parsed, err := ParseHex("#1f77b4")
	if err != nil {
		t.Fatalf("ParseHex error: %v", err)
	}
	if parsed != c {
		t.Errorf("ParseHex = %+v, want %+v", parsed, c)
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, s := range []string{"", "#fff", "1f77b4", "#1f77bg4", "#zzzzzz"} {
		if _, err := ParseHex(s); err == nil {
			t.Errorf("ParseHex(%q) should fail", s)
		}
	}
}

func TestDarken(t *testing.T) {
	tests := []struct {
		name   string
		in     RGB
		factor float64
		want   RGB
	}{
		// round(0x1f*0.7)=round(21.7)=22, round(0x77*0.7)=round(83.3)=83,
		// round(0xb4*0.7)=round(126.0)=126
		{"base blue", RGB{0x1f, 0x77, 0xb4}, 0.7, RGB{22, 83, 126}},
		{"black stays black", RGB{0, 0, 0}, 0.7, RGB{0, 0, 0}},
		{"identity", RGB{10, 20, 30}, 1.0, RGB{10, 20, 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Darken(tt.factor); got != tt.want {
				t.Errorf("Darken() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTint(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		t    float64
		want RGB
	}{
		{"zero is identity", RGB{0x1f, 0x77, 0xb4}, 0, RGB{0x1f, 0x77, 0xb4}},
		{"one is white", RGB{0x1f, 0x77, 0xb4}, 1, RGB{255, 255, 255}},
		// round(31+(255-31)*0.2)=round(75.8)=76, round(119+136*0.2)=round(146.2)=146,
		// round(180+75*0.2)=195
		{"midpoint sector tint", RGB{0x1f, 0x77, 0xb4}, 0.2, RGB{76, 146, 195}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Tint(tt.t); got != tt.want {
				t.Errorf("Tint(%g) = %+v, want %+v", tt.t, got, tt.want)
			}
		})
	}
}

func TestHSL(t *testing.T) {
	h, s, l := RGB{255, 0, 0}.HSL()
	if h != 0 || math.Abs(s-1) > 1e-9 || math.Abs(l-0.5) > 1e-9 {
		t.Errorf("red HSL = %g/%g/%g, want 0/1/0.5", h, s, l)
	}

	h, s, _ = RGB{128, 128, 128}.HSL()
	if h != 0 || s != 0 {
		t.Errorf("gray should have zero hue and saturation, got %g/%g", h, s)
	}

	h, _, _ = RGB{0, 0, 255}.HSL()
	if math.Abs(h-240) > 1e-9 {
		t.Errorf("blue hue = %g, want 240", h)
	}
}

func TestTintPreservesHueFamily(t *testing.T) {
	base := RGB{0x1f, 0x77, 0xb4}
	baseHue, _, _ := base.HSL()

	for _, tint := range []float64{0.1, 0.2, 0.3, 0.4, 0.55, 0.7} {
		h, _, _ := base.Tint(tint).HSL()
		// Channel rounding can nudge the hue by a degree or two.
		if math.Abs(h-baseHue) > 3 {
			t.Errorf("Tint(%g) hue = %g, drifted from base hue %g", tint, h, baseHue)
		}
	}
}
