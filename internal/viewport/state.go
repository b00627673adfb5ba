// Package viewport is the platform-independent core of the zoom container.
//
// A Controller derives fit/fill scale bounds from the container and content
// sizes, classifies the live zoom scale into a Mode, computes double-tap
// targets, and forwards State snapshots to a subscriber through a Notifier
// that suppresses redundant updates and throttles continuous ones. Hosts plug
// in a Scrollable (the scroll/zoom primitive), a Content (anything with an
// intrinsic size) and a Scheduler (their event loop).
package viewport

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/irfansharif/zooming/internal/geom"
)

var viewportLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("ZOOMING_DEBUG_VIEWPORT") == "1" {
		viewportLogger = log.New(os.Stdout, "[viewport] ", log.Ltime|log.Lmsgprefix)
	}
}

// Mode is the zoom mode the viewport is in (or was last classified into).
type Mode int

const (
	ModeFit  Mode = iota // whole content visible, may letterbox
	ModeFill             // content covers the container, may crop
)

func (m Mode) String() string {
	switch m {
	case ModeFit:
		return "fit"
	case ModeFill:
		return "fill"
	default:
		return "unknown"
	}
}

// ParseMode parses "fit" or "fill".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fit":
		return ModeFit, nil
	case "fill":
		return ModeFill, nil
	default:
		return ModeFit, fmt.Errorf("unknown zoom mode %q (want fit or fill)", s)
	}
}

// State is an immutable snapshot of the viewport handed to subscribers.
type State struct {
	Scale             float64    // live scale normalized so that 1.0 is the fit scale
	Offset            geom.Point // content offset reported by the scroll primitive
	Mode              Mode
	IsZooming         bool
	IsUserInteracting bool
}

// Differs reports whether s and o differ meaningfully: scale or either offset
// axis by more than eps, or any of the discrete fields.
func (s State) Differs(o State, eps float64) bool {
	return math.Abs(s.Scale-o.Scale) > eps ||
		math.Abs(s.Offset.X-o.Offset.X) > eps ||
		math.Abs(s.Offset.Y-o.Offset.Y) > eps ||
		s.Mode != o.Mode ||
		s.IsZooming != o.IsZooming ||
		s.IsUserInteracting != o.IsUserInteracting
}

func (s State) String() string {
	return fmt.Sprintf("scale=%.3f offset=(%.1f,%.1f) mode=%s zooming=%t interacting=%t",
		s.Scale, s.Offset.X, s.Offset.Y, s.Mode, s.IsZooming, s.IsUserInteracting)
}
