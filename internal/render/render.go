// Package render draws a scene through the viewport with OpenGL.
//
// Geometry is triangulated once per scene, in content coordinates, and kept in
// a single VBO. Panning and zooming only change the view uniform:
// 1. content → viewport, from the scroll view's zoom, offset and insets.
// 2. viewport → NDC, from the logical window size.
package render

import (
	"fmt"
	"log"
	"time"

	"github.com/irfansharif/zooming/internal/geom"
	"github.com/irfansharif/zooming/internal/scene"
)

type Renderer struct {
	w, h              float64     // logical viewport size
	contentToViewport geom.Affine // from the scroll view

	buffer        *Buffer
	shaderManager *ShaderManager
	stats         Stats
}

// Stats tracks rendering performance metrics.
type Stats struct {
	LastPrepareTimeMs float64 // time spent in last Prepare() call in milliseconds
	LastDrawTimeUs    float64 // time spent in last Draw() call in microseconds
	Triangles         int
	GPUBytes          int
}

// NewRenderer needs a current GL context.
func NewRenderer() (*Renderer, error) {
	sm, err := NewShaderManager()
	if err != nil {
		return nil, err
	}
	return &Renderer{
		contentToViewport: geom.UniformScale(1),
		shaderManager:     sm,
		buffer:            NewBuffer(),
	}, nil
}

// SetView records the logical viewport size and the content → viewport
// transform for the next Draw.
func (r *Renderer) SetView(w, h float64, contentToViewport geom.Affine) {
	r.w, r.h = w, h
	r.contentToViewport = contentToViewport
}

// Prepare triangulates the scene and uploads it.
func (r *Renderer) Prepare(s *scene.Scene) error {
	start := time.Now()
	vertices, err := SceneVertices(s)
	if err != nil {
		return err
	}
	if err := r.buffer.Upload(vertices); err != nil {
		return fmt.Errorf("uploading scene %q: %w", s.Name, err)
	}
	r.stats.Triangles = r.buffer.VertexCount() / 3
	r.stats.GPUBytes = r.buffer.GPUBytes()
	r.stats.LastPrepareTimeMs = float64(time.Since(start).Microseconds()) / 1000.0
	return nil
}

func (r *Renderer) Draw() {
	if r.w <= 0 || r.h <= 0 {
		return // not laid out yet
	}
	start := time.Now()
	r.shaderManager.SetView(ViewMatrix(r.w, r.h, r.contentToViewport))
	r.buffer.Draw()
	r.stats.LastDrawTimeUs = float64(time.Since(start).Microseconds())
}

func (r *Renderer) Stats() Stats { return r.stats }

func (r *Renderer) Cleanup() {
	r.buffer.Cleanup()
	r.shaderManager.Delete()
}

// SceneVertices triangulates the scene background and shapes into
// interleaved position/color vertex data in content coordinates. Shapes that
// fail to triangulate are skipped with a warning.
func SceneVertices(s *scene.Scene) ([]float32, error) {
	if !s.Size.Positive() {
		return nil, fmt.Errorf("scene %q has no area (%v)", s.Name, s.Size)
	}
	vertices := make([]float32, 0, (len(s.Shapes)+1)*6*floatsPerVertex)

	background := []geom.Point{{X: 0, Y: 0}, {X: s.Size.W, Y: 0}, {X: s.Size.W, Y: s.Size.H}, {X: 0, Y: s.Size.H}}
	shapes := append([]scene.Shape{{Path: background, Color: s.Background}}, s.Shapes...)
	for i, shape := range shapes {
		triangles, err := earClip(shape.Path)
		if err != nil {
			log.Printf("WARNING: scene %q shape %d: %v, skipping", s.Name, i, err)
			continue
		}
		c := shape.Color
		for _, tri := range triangles {
			for v := 0; v < 3; v++ {
				vertices = append(vertices,
					float32(tri[v].X), float32(tri[v].Y), // position
					float32(c.R)/255.0, float32(c.G)/255.0,
					float32(c.B)/255.0, float32(c.A)/255.0, // color
				)
			}
		}
	}
	return vertices, nil
}

// ViewMatrix composes content → viewport with viewport → NDC (y flipped) and
// returns it as a column-major 4x4 matrix.
func ViewMatrix(w, h float64, contentToViewport geom.Affine) [16]float32 {
	viewportToNDC := geom.MakeAffine(
		2.0/w, 0, -1,
		0, -2.0/h, 1,
	)
	return affineToMatrix4(viewportToNDC.Mul(contentToViewport))
}

func affineToMatrix4(t geom.Affine) [16]float32 {
	return [16]float32{
		float32(t.A), float32(t.D), 0, 0,
		float32(t.B), float32(t.E), 0, 0,
		0, 0, 1, 0,
		float32(t.C), float32(t.F), 0, 1,
	}
}
