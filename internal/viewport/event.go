package viewport

import (
	"fmt"

	"github.com/irfansharif/zooming/internal/geom"
)

// Phase identifies a gesture-phase event reported by the scroll primitive.
type Phase int

const (
	BeginZoom       Phase = iota // pinch/wheel zoom started
	ZoomChanged                  // live scale changed (continuous)
	EndZoom                      // zoom settled
	BeginDrag                    // pan started
	ScrollChanged                // live offset changed (continuous)
	EndDrag                      // pan released; see Event.WillDecelerate
	EndDeceleration              // post-release momentum stopped
)

func (p Phase) String() string {
	switch p {
	case BeginZoom:
		return "begin-zoom"
	case ZoomChanged:
		return "zoom-changed"
	case EndZoom:
		return "end-zoom"
	case BeginDrag:
		return "begin-drag"
	case ScrollChanged:
		return "scroll-changed"
	case EndDrag:
		return "end-drag"
	case EndDeceleration:
		return "end-deceleration"
	default:
		return "unknown"
	}
}

// Event is a gesture-phase notification from the scroll primitive. Scale and
// Offset carry the live values at the time of the event.
type Event struct {
	Phase          Phase
	Scale          float64
	Offset         geom.Point
	WillDecelerate bool // EndDrag only
}

func (e Event) String() string {
	if e.Phase == EndDrag {
		return fmt.Sprintf("%s(decelerate=%t)", e.Phase, e.WillDecelerate)
	}
	return fmt.Sprintf("%s(scale=%.3f offset=(%.1f,%.1f))", e.Phase, e.Scale, e.Offset.X, e.Offset.Y)
}
