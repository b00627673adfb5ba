// Package scene builds the preview content shown inside the viewport. A scene
// is a flat list of filled polygons in content coordinates plus the intrinsic
// size the viewport fits and fills against.
//
// Scenes are deterministic for a given seed, so hosts and tests can rebuild
// the exact same picture.
package scene

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/irfansharif/zooming/internal/geom"
)

// Shape is one filled polygon.
type Shape struct {
	Path  []geom.Point
	Color color.RGBA
}

// Scene is zoomable content with a fixed intrinsic size.
type Scene struct {
	Name       string
	Size       geom.Size
	Background color.RGBA
	Shapes     []Shape // painted in order, last on top
}

// IntrinsicSize implements viewport.Content.
func (s *Scene) IntrinsicSize() geom.Size { return s.Size }

// ColorAt returns the color visible at content point p: the topmost shape
// containing it, else the background. ok is false outside the scene.
func (s *Scene) ColorAt(p geom.Point) (c color.RGBA, ok bool) {
	if !geom.MakeRect(0, 0, s.Size.W, s.Size.H).Contains(p) {
		return color.RGBA{}, false
	}
	for i := len(s.Shapes) - 1; i >= 0; i-- {
		if geom.ContainsPolygon(s.Shapes[i].Path, p) {
			return s.Shapes[i].Color, true
		}
	}
	return s.Background, true
}

// Bounds returns the bounding box of all shapes.
func (s *Scene) Bounds() (geom.Rect, error) {
	var pts []geom.Point
	for _, sh := range s.Shapes {
		pts = append(pts, sh.Path...)
	}
	return geom.Bounds(pts)
}

func (s *Scene) add(path []geom.Point, c color.RGBA) {
	s.Shapes = append(s.Shapes, Shape{Path: path, Color: c})
}

// transform maps every shape through t and sets the new size.
func (s *Scene) transform(t geom.Affine, size geom.Size) {
	for i := range s.Shapes {
		for j, p := range s.Shapes[i].Path {
			s.Shapes[i].Path[j] = t.MulPoint(p)
		}
	}
	s.Size = size
}

type builder struct {
	size  geom.Size // natural size the builder draws at
	build func(seed int64, size geom.Size) *Scene
}

var builders = map[string]builder{
	"photo":    {geom.MakeSize(400, 300), buildPhoto},
	"document": {geom.MakeSize(300, 420), buildDocument},
	"artwork":  {geom.MakeSize(350, 350), buildArtwork},
	"diagram":  {geom.MakeSize(450, 300), buildDiagram},
	"gradient": {geom.MakeSize(300, 400), buildGradient},
	"square":   {geom.MakeSize(350, 350), buildSquare},
	"debug":    {geom.MakeSize(400, 300), buildDebug},
}

// Names lists the available scenes.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultSize returns the natural size of the named scene.
func DefaultSize(name string) (geom.Size, bool) {
	b, ok := builders[name]
	return b.size, ok
}

// ByName builds the named scene. A positive size overrides the scene's natural
// size; the debug grid is laid out for it directly, other scenes are drawn at
// their natural size and stretched.
func ByName(name string, size geom.Size, seed int64) (*Scene, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (want one of %v)", name, Names())
	}
	if size == (geom.Size{}) {
		size = b.size
	}
	if !size.Positive() || math.IsInf(size.W, 0) || math.IsInf(size.H, 0) {
		return nil, fmt.Errorf("scene %q: invalid size %v", name, size)
	}

	if name == "debug" {
		return b.build(seed, size), nil
	}
	s := b.build(seed, b.size)
	if size != b.size {
		s.transform(geom.MakeAffine(size.W/b.size.W, 0, 0, 0, size.H/b.size.H, 0), size)
	}
	return s, nil
}

func rect(x, y, w, h float64) []geom.Point {
	return []geom.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
}

// circle approximates a circle with n segments.
func circle(c geom.Point, r float64, n int) []geom.Point {
	path := make([]geom.Point, n)
	for i := range path {
		a := 2 * math.Pi * float64(i) / float64(n)
		path[i] = geom.MakePoint(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
	}
	return path
}

// polygon returns a regular n-gon rotated by rot radians.
func polygon(c geom.Point, r float64, n int, rot float64) []geom.Point {
	path := make([]geom.Point, n)
	for i := range path {
		a := rot + 2*math.Pi*float64(i)/float64(n)
		path[i] = geom.MakePoint(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
	}
	return path
}
