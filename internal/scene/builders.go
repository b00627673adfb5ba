package scene

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/irfansharif/zooming/internal/geom"
	"github.com/irfansharif/zooming/internal/palette"
)

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.RGBA{A: 255}
)

// buildPhoto paints a landscape: sky bands, a sun, two mountain ranges and
// the ground.
func buildPhoto(seed int64, size geom.Size) *Scene {
	r := rand.New(rand.NewSource(seed))
	w, h := size.W, size.H
	s := &Scene{Name: "photo", Size: size, Background: color.RGBA{R: 135, G: 190, B: 235, A: 255}}

	const bands = 8
	horizon := h * 0.6
	sky := palette.Gradient(color.RGBA{R: 60, G: 110, B: 200, A: 255}, color.RGBA{R: 250, G: 200, B: 150, A: 255}, bands)
	for i, c := range sky {
		s.add(rect(0, horizon*float64(i)/bands, w, horizon/bands+0.5), c)
	}
	s.add(circle(geom.MakePoint(w*(0.6+0.2*r.Float64()), h*0.25), h*0.08, 32), color.RGBA{R: 255, G: 220, B: 90, A: 255})

	ranges := []struct {
		base  float64
		peak  float64
		color color.RGBA
	}{
		{horizon, h * 0.25, color.RGBA{R: 110, G: 120, B: 150, A: 255}},
		{horizon + h*0.05, h * 0.15, color.RGBA{R: 70, G: 90, B: 80, A: 255}},
	}
	for _, m := range ranges {
		x := -w * 0.1
		for x < w {
			width := w * (0.2 + 0.2*r.Float64())
			peak := m.base - m.peak*(0.5+0.5*r.Float64())
			s.add([]geom.Point{{X: x, Y: m.base}, {X: x + width/2, Y: peak}, {X: x + width, Y: m.base}}, m.color)
			x += width * 0.7
		}
	}
	s.add(rect(0, horizon+h*0.05, w, h-horizon-h*0.05), color.RGBA{R: 90, G: 140, B: 70, A: 255})
	return s
}

// buildDocument paints a page with a heading and ragged text lines.
func buildDocument(seed int64, size geom.Size) *Scene {
	r := rand.New(rand.NewSource(seed))
	w, h := size.W, size.H
	s := &Scene{Name: "document", Size: size, Background: white}
	ink := color.RGBA{R: 40, G: 40, B: 48, A: 255}
	margin := w * 0.1

	s.add(rect(margin, h*0.06, w*0.6, h*0.035), ink)
	lineH, gap := h*0.012, h*0.03
	for y := h * 0.14; y+lineH < h-margin; y += gap {
		width := w - 2*margin
		if r.Float64() < 0.15 {
			width *= 0.3 + 0.5*r.Float64() // paragraph end
			y += gap / 2
		}
		s.add(rect(margin, y, width, lineH), palette.Shade(ink, 0.35))
	}
	return s
}

// buildArtwork scatters seeded, overlapping polygons from a random palette.
func buildArtwork(seed int64, size geom.Size) *Scene {
	r := rand.New(rand.NewSource(seed))
	pal := palette.RandomPalette(r)
	w, h := size.W, size.H
	s := &Scene{Name: "artwork", Size: size, Background: pal[palette.Paper]}

	for i := 0; i < 24; i++ {
		c := geom.MakePoint(w*r.Float64(), h*r.Float64())
		radius := math.Min(w, h) * (0.05 + 0.15*r.Float64())
		sides := 3 + r.Intn(5)
		s.add(polygon(c, radius, sides, r.Float64()*math.Pi), pal[palette.Accent1+r.Intn(3)])
	}
	s.add(rect(0, 0, w, h*0.02), pal[palette.Ink])
	s.add(rect(0, h*0.98, w, h*0.02), pal[palette.Ink])
	return s
}

// buildDiagram paints a row of boxes joined by connectors.
func buildDiagram(seed int64, size geom.Size) *Scene {
	r := rand.New(rand.NewSource(seed))
	pal := palette.RandomPalette(r)
	w, h := size.W, size.H
	s := &Scene{Name: "diagram", Size: size, Background: white}

	const boxes = 4
	bw, bh := w/(boxes*2), h*0.2
	var prev geom.Rect
	for i := 0; i < boxes; i++ {
		y := h*0.2 + (h*0.4)*r.Float64()
		box := geom.MakeRect(bw/2+float64(i)*bw*2, y, bw, bh)
		if i > 0 {
			from := geom.MakePoint(prev.X+prev.W, prev.Center().Y)
			to := geom.MakePoint(box.X, box.Center().Y)
			s.add(connector(from, to, 2), pal[palette.Ink])
		}
		s.add(rect(box.X, box.Y, box.W, box.H), pal[palette.Accent1+i%3])
		prev = box
	}
	return s
}

// connector is a thick segment from a to b.
func connector(a, b geom.Point, thickness float64) []geom.Point {
	d := b.Sub(a)
	n := geom.Dist(a, b)
	if n == 0 {
		return rect(a.X, a.Y, thickness, thickness)
	}
	off := geom.MakePoint(-d.Y/n, d.X/n).Scale(thickness / 2)
	return []geom.Point{a.Add(off), b.Add(off), b.Sub(off), a.Sub(off)}
}

// buildGradient paints vertical Lab-blended bands.
func buildGradient(seed int64, size geom.Size) *Scene {
	r := rand.New(rand.NewSource(seed))
	pal := palette.RandomPalette(r)
	w, h := size.W, size.H
	s := &Scene{Name: "gradient", Size: size, Background: pal[palette.Paper]}

	const bands = 32
	for i, c := range palette.Gradient(pal[palette.Accent1], pal[palette.Accent2], bands) {
		s.add(rect(0, h*float64(i)/bands, w, h/bands+0.5), c)
	}
	return s
}

// buildSquare paints concentric squares.
func buildSquare(seed int64, size geom.Size) *Scene {
	r := rand.New(rand.NewSource(seed))
	pal := palette.RandomPalette(r)
	w, h := size.W, size.H
	s := &Scene{Name: "square", Size: size, Background: pal[palette.Paper]}

	const rings = 6
	for i := 0; i < rings; i++ {
		inset := float64(i) * math.Min(w, h) / (2 * rings)
		s.add(rect(inset, inset, w-2*inset, h-2*inset), pal[palette.Accent1+i%3])
	}
	return s
}

// buildDebug paints a checkerboard with a crosshair through the center. It is
// laid out for the requested size instead of being stretched.
func buildDebug(_ int64, size geom.Size) *Scene {
	w, h := size.W, size.H
	s := &Scene{Name: "debug", Size: size, Background: white}
	cell := math.Max(math.Min(w, h)/10, 1)
	light := color.RGBA{R: 220, G: 220, B: 220, A: 255}

	for y, row := 0.0, 0; y < h; y, row = y+cell, row+1 {
		for x, col := 0.0, 0; x < w; x, col = x+cell, col+1 {
			if (row+col)%2 == 0 {
				continue
			}
			s.add(rect(x, y, math.Min(cell, w-x), math.Min(cell, h-y)), light)
		}
	}
	c := geom.MakeRect(0, 0, w, h).Center()
	s.add(rect(0, c.Y-1, w, 2), color.RGBA{R: 220, G: 40, B: 40, A: 255})
	s.add(rect(c.X-1, 0, 2, h), color.RGBA{R: 220, G: 40, B: 40, A: 255})
	s.add(rect(0, 0, w, 2), black)
	s.add(rect(0, h-2, w, 2), black)
	s.add(rect(0, 0, 2, h), black)
	s.add(rect(w-2, 0, 2, h), black)
	return s
}
