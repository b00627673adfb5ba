package palette

import (
	"image/color"
	"math/rand"
	"testing"
)

func TestRandomPaletteDeterministic(t *testing.T) {
	a := RandomPalette(rand.New(rand.NewSource(7)))
	b := RandomPalette(rand.New(rand.NewSource(7)))
	if a != b {
		t.Errorf("same seed gave different palettes: %v vs %v", a, b)
	}
	for i, c := range a {
		if c.A != 255 {
			t.Errorf("color %d not opaque: %v", i, c)
		}
	}
}

func TestGradientEndpoints(t *testing.T) {
	black := color.RGBA{A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	g := Gradient(black, white, 5)
	if len(g) != 5 {
		t.Fatalf("expected 5 steps, got %d", len(g))
	}
	if g[0] != black || g[4] != white {
		t.Errorf("endpoints not preserved: %v .. %v", g[0], g[4])
	}
	for i := 1; i < len(g); i++ {
		if g[i].R < g[i-1].R {
			t.Errorf("gradient from black to white should brighten monotonically: %v", g)
		}
	}
	if got := Gradient(black, white, 1); len(got) != 1 || got[0] != black {
		t.Errorf("single-step gradient: %v", got)
	}
}

func TestShade(t *testing.T) {
	c := color.RGBA{R: 100, G: 150, B: 200, A: 255}
	if d := Shade(c, -0.2); d.B >= c.B {
		t.Errorf("expected darker, got %v", d)
	}
	if l := Shade(c, 0.2); l.B <= c.B {
		t.Errorf("expected lighter, got %v", l)
	}
}

func TestHex(t *testing.T) {
	if got := Hex(color.RGBA{R: 255, G: 0, B: 128, A: 255}); got != "#ff0080" {
		t.Errorf("got %s", got)
	}
}
