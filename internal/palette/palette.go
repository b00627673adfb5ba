// Package palette provides color palette generation for the demo scenes. It
// implements HSV-based palette generation and perceptual gradients.
package palette

import (
	"image/color"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds five RGBA colors: a dark ink, a light background and three
// accents.
type Palette [5]color.RGBA

const (
	Ink = iota
	Paper
	Accent1
	Accent2
	Accent3
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// hsb converts hue/saturation/brightness in 0-100 ranges to RGBA.
func hsb(h, s, b float64) color.RGBA {
	hue := h * 3.6
	sat := clamp(s/100.0, 0, 1)
	bright := clamp(b/100.0, 0, 1)
	return toRGBA(colorful.Hsv(hue, sat, bright))
}

func toRGBA(c colorful.Color) color.RGBA {
	red, green, blue := c.Clamped().RGB255()
	return color.RGBA{R: red, G: green, B: blue, A: 255}
}

func fromRGBA(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// RandomPalette returns a palette using HSV generation.
func RandomPalette(r *rand.Rand) Palette {
	p := Palette{}
	p[Ink] = hsb(r.Float64()*100, r.Float64()*100, r.Float64()*30)
	p[Paper] = hsb(r.Float64()*100, r.Float64()*10, 90+r.Float64()*10)
	for i := Accent1; i <= Accent3; i++ {
		p[i] = hsb(r.Float64()*100, r.Float64()*50+25, r.Float64()*50+25)
	}
	return p
}

// Gradient returns n colors blended from a to b in CIE-L*a*b* space, so the
// steps look evenly spaced. n < 2 returns just a.
func Gradient(a, b color.RGBA, n int) []color.RGBA {
	if n < 2 {
		return []color.RGBA{a}
	}
	ca, cb := fromRGBA(a), fromRGBA(b)
	out := make([]color.RGBA, n)
	for i := range out {
		out[i] = toRGBA(ca.BlendLab(cb, float64(i)/float64(n-1)))
	}
	return out
}

// Shade darkens (amount < 0) or lightens (amount > 0) c by adjusting its HSV
// value.
func Shade(c color.RGBA, amount float64) color.RGBA {
	h, s, v := fromRGBA(c).Hsv()
	return toRGBA(colorful.Hsv(h, s, clamp(v+amount, 0, 1)))
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string { return fromRGBA(c).Hex() }
