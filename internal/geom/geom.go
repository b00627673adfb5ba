// Package geom provides the 2D value types shared by the viewport core, the
// scroll primitive and the hosts:
// - sizes, points and axis-aligned rectangles
// - per-edge insets
// - 2D affine transformations (translation, scaling) and their inversion
package geom

import (
	"fmt"
	"math"
)

// Point represents a 2D point or vector in Cartesian coordinates.
type Point struct {
	X float64
	Y float64
}

// Size represents the extent of a rectangular area. Hosts produce sizes from
// layout; the zero value means "not laid out yet".
type Size struct {
	W float64
	H float64
}

// Rect represents an axis-aligned rectangle.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Insets is per-edge padding around scrollable content.
type Insets struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// Affine represents a 2D affine transform in row-major form:
// [ a b c ]
// [ d e f ]
// where (x', y') = (a*x + b*y + c, d*x + e*y + f)
type Affine struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func MakePoint(x, y float64) Point               { return Point{X: x, Y: y} }
func MakeSize(w, h float64) Size                 { return Size{W: w, H: h} }
func MakeRect(x, y, w, h float64) Rect           { return Rect{X: x, Y: y, W: w, H: h} }
func MakeAffine(a, b, c, d, e, f float64) Affine { return Affine{A: a, B: b, C: c, D: d, E: e, F: f} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

func Dist(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Positive reports whether both dimensions are strictly positive. NaN
// dimensions are not positive.
func (s Size) Positive() bool { return s.W > 0 && s.H > 0 }

// Scale returns the size multiplied uniformly by f.
func (s Size) Scale(f float64) Size { return Size{s.W * f, s.H * f} }

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.W, s.H) }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{r.X + 0.5*r.W, r.Y + 0.5*r.H} }

// Contains reports whether p lies inside r (edges inclusive on the min side).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// RectAround returns the rectangle of the given size centered on p.
func RectAround(p Point, s Size) Rect {
	return Rect{X: p.X - s.W/2, Y: p.Y - s.H/2, W: s.W, H: s.H}
}

// MulPoint applies the affine transform to a point.
func (t Affine) MulPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Mul composes two affine transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return MakeAffine(
		t.A*u.A+t.B*u.D,
		t.A*u.B+t.B*u.E,
		t.A*u.C+t.B*u.F+t.C,
		t.D*u.A+t.E*u.D,
		t.D*u.B+t.E*u.E,
		t.D*u.C+t.E*u.F+t.F,
	)
}

// Inv returns the inverse of the affine transform.
// Returns an error if the transform is not invertible (determinant is zero).
func (t Affine) Inv() (Affine, error) {
	det := t.A*t.E - t.B*t.D
	if math.Abs(det) < 1e-10 {
		return Affine{}, fmt.Errorf("affine transform is not invertible (determinant ≈ 0)")
	}
	return MakeAffine(
		t.E/det, -t.B/det, (t.B*t.F-t.C*t.E)/det,
		-t.D/det, t.A/det, (t.C*t.D-t.A*t.F)/det,
	), nil
}

// Translate returns a pure translation.
func Translate(dx, dy float64) Affine { return MakeAffine(1, 0, dx, 0, 1, dy) }

// UniformScale returns a scaling about the origin.
func UniformScale(s float64) Affine { return MakeAffine(s, 0, 0, 0, s, 0) }

// Bounds returns the axis-aligned bounding box of the given points. Returns an
// error if there are no points or the box is degenerate.
func Bounds(points []Point) (Rect, error) {
	if len(points) == 0 {
		return Rect{}, fmt.Errorf("no points to bound")
	}
	xmin, xmax := math.MaxFloat64, -math.MaxFloat64
	ymin, ymax := math.MaxFloat64, -math.MaxFloat64
	for _, p := range points {
		xmin = math.Min(xmin, p.X)
		xmax = math.Max(xmax, p.X)
		ymin = math.Min(ymin, p.Y)
		ymax = math.Max(ymax, p.Y)
	}
	if xmin >= xmax || ymin >= ymax {
		return Rect{}, fmt.Errorf("bounds are degenerate: x[%f,%f] y[%f,%f]", xmin, xmax, ymin, ymax)
	}
	return MakeRect(xmin, ymin, xmax-xmin, ymax-ymin), nil
}

// ContainsPolygon reports whether p lies inside the closed polygon described
// by path, using the even-odd rule.
func ContainsPolygon(path []Point, p Point) bool {
	inside := false
	for i, j := 0, len(path)-1; i < len(path); j, i = i, i+1 {
		a, b := path[i], path[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}
