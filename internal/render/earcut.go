package render

import (
	"fmt"

	"github.com/rclancey/earcut"

	"github.com/irfansharif/zooming/internal/geom"
)

// earClip triangulates a simple polygon with the earcut algorithm and returns
// one [3]geom.Point per triangle.
func earClip(path []geom.Point) ([][3]geom.Point, error) {
	if len(path) < 3 {
		return nil, fmt.Errorf("degenerate polygon (%d vertices < 3)", len(path))
	}

	// Flat [x0, y0, x1, y1, ...] as earcut wants it.
	coords := make([]float64, len(path)*2)
	for i, p := range path {
		coords[i*2], coords[i*2+1] = p.X, p.Y
	}

	indices, err := earcut.Earcut(coords, nil /* holeIndices */, 2 /* dim */)
	if err != nil {
		return nil, fmt.Errorf("triangulating %d-vertex polygon: %w", len(path), err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("invalid index count %d, not divisible by 3", len(indices))
	}

	at := func(i int) geom.Point { return geom.MakePoint(coords[i*2], coords[i*2+1]) }
	triangles := make([][3]geom.Point, len(indices)/3)
	for t := range triangles {
		triangles[t] = [3]geom.Point{at(indices[3*t]), at(indices[3*t+1]), at(indices[3*t+2])}
	}
	return triangles, nil
}
