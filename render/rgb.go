package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a tone-mapped 8-bit color
type RGB struct {
	R, G, B uint8
}

// Color is a linear accumulation value, 1.0 is full channel intensity
type Color struct {
	R, G, B float32
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
)

// ParseTint parses a hex color such as "#ffdf7e"
func ParseTint(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("render: parse tint %q: %w", s, err)
	}
	return c, nil
}

// Premultiply scales a tint by alpha into an additive contribution
func Premultiply(c colorful.Color, alpha float64) Color {
	return Color{
		R: float32(c.R * alpha),
		G: float32(c.G * alpha),
		B: float32(c.B * alpha),
	}
}

// Add sums two contributions
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// Peak returns the largest channel
func (c Color) Peak() float32 {
	return max(c.R, c.G, c.B)
}

// clamp converts a linear channel to uint8 with saturation
func clamp(v float32) uint8 {
	if v >= 1 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v*255 + 0.5)
}

// Clamp tone-maps by clamping each channel to [0,1]
func (c Color) Clamp() RGB {
	return RGB{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B)}
}

// Tcell converts to a tcell color, tcell downsamples on terminals without truecolor
func (r RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(r.R), int32(r.G), int32(r.B))
}

// FromColorful converts a go-colorful color to RGB
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Dim blends c toward black in Lab space, t in [0,1]
func Dim(c colorful.Color, t float64) colorful.Color {
	return c.BlendLab(colorful.Color{}, t).Clamped()
}
