// Package scroll is a reference scroll/zoom primitive for hosts without one.
//
// View owns the zoom scale, the content offset and the content insets. Hosts
// feed it raw gestures (BeginZoom/ZoomBy/EndZoom, BeginDrag/DragBy/EndDrag)
// and call Tick once per frame to advance momentum and zoom transitions; the
// View reports every phase change as a viewport.Event.
//
// Coordinates: the content offset is the top-left corner of the visible area
// in zoomed-content coordinates, so a viewport point p maps to the content
// point (p + offset) / zoom. Insets allow the offset to go negative so small
// content can be centered.
package scroll

import (
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/irfansharif/zooming/internal/geom"
	"github.com/irfansharif/zooming/internal/viewport"
)

var scrollLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("ZOOMING_DEBUG_SCROLL") == "1" {
		scrollLogger = log.New(os.Stdout, "[scroll] ", log.Ltime|log.Lmsgprefix)
	}
}

const (
	defaultMinZoom = 0.1
	defaultMaxZoom = 5.0

	transitionDuration = 250 * time.Millisecond // animated zoom-to-rect
	decelerationRate   = 0.998                  // velocity multiplier per millisecond
	minVelocity        = 10.0                   // points/sec below which momentum stops
)

// View is the zoom/pan state of one scroll container.
type View struct {
	bounds      geom.Size // viewport size
	contentSize geom.Size // unscaled
	zoom        float64
	minZoom     float64
	maxZoom     float64
	offset      geom.Point
	inset       geom.Insets

	zooming    bool
	dragging   bool
	decelerate bool
	velocity   geom.Point // points/sec, in viewport space
	transition *transition
	onEvent    func(viewport.Event)
}

// transition interpolates zoom and offset for an animated zoom-to-rect.
type transition struct {
	fromZoom, toZoom     float64
	fromOffset, toOffset geom.Point
	elapsed              time.Duration
}

// NewView creates a view with the given viewport size.
func NewView(width, height float64) *View {
	return &View{
		bounds:  geom.MakeSize(width, height),
		zoom:    1.0,
		minZoom: defaultMinZoom,
		maxZoom: defaultMaxZoom,
	}
}

// SetOnEvent sets the receiver of gesture-phase events (typically
// viewport.Controller.HandleEvent).
func (v *View) SetOnEvent(fn func(viewport.Event)) { v.onEvent = fn }

func (v *View) emit(phase viewport.Phase, decelerate bool) {
	ev := viewport.Event{Phase: phase, Scale: v.zoom, Offset: v.offset, WillDecelerate: decelerate}
	scrollLogger.Printf("%v", ev)
	if v.onEvent != nil {
		v.onEvent(ev)
	}
}

// SetBounds updates the viewport dimensions, e.g. on window resize.
func (v *View) SetBounds(width, height float64) {
	v.bounds = geom.MakeSize(width, height)
	v.clampOffset()
}

func (v *View) Bounds() geom.Size { return v.bounds }

// SetZoomBounds sets the allowed zoom range and clamps the current zoom to it.
func (v *View) SetZoomBounds(min, max float64) {
	v.minZoom, v.maxZoom = min, max
	if z := v.clampZoom(v.zoom); z != v.zoom {
		v.zoomAround(z, v.viewportCenter())
	}
}

func (v *View) ZoomBounds() (min, max float64) { return v.minZoom, v.maxZoom }

// SetContentSize sets the unscaled content size.
func (v *View) SetContentSize(size geom.Size) {
	v.contentSize = size
	v.clampOffset()
}

// ContentSize returns the content size at the current zoom.
func (v *View) ContentSize() geom.Size { return v.contentSize.Scale(v.zoom) }

func (v *View) ZoomScale() float64        { return v.zoom }
func (v *View) ContentOffset() geom.Point { return v.offset }
func (v *View) ContentInset() geom.Insets { return v.inset }
func (v *View) IsZooming() bool           { return v.zooming }
func (v *View) IsDragging() bool          { return v.dragging }
func (v *View) IsDecelerating() bool      { return v.decelerate }
func (v *View) IsAnimating() bool         { return v.transition != nil }

// SetContentInset sets the padding around the content and re-clamps the
// offset. A content smaller than the viewport is pinned to the inset, which
// is what centers it.
func (v *View) SetContentInset(insets geom.Insets) {
	v.inset = insets
	v.clampOffset()
}

// SetContentOffset moves the visible area, reporting a scroll change.
func (v *View) SetContentOffset(offset geom.Point) {
	v.offset = offset
	v.clampOffset()
	v.emit(viewport.ScrollChanged, false)
}

// SetZoomScale zooms about the viewport center. Animated changes run as a
// transition advanced by Tick.
func (v *View) SetZoomScale(scale float64, animated bool) {
	scale = v.clampZoom(scale)
	if !animated {
		v.transition = nil
		v.zoomAround(scale, v.viewportCenter())
		v.emit(viewport.ZoomChanged, false)
		return
	}
	anchor := v.ContentPoint(v.viewportCenter())
	v.startTransition(scale, v.offsetCentering(anchor, scale))
}

// ZoomToRect zooms so rect (in unscaled content coordinates) fills the
// viewport as closely as the zoom bounds allow, centered on the rect's
// center.
func (v *View) ZoomToRect(rect geom.Rect, animated bool) {
	if rect.W <= 0 || rect.H <= 0 || !v.bounds.Positive() {
		scrollLogger.Printf("WARNING: ignoring zoom to degenerate rect %+v", rect)
		return
	}
	scale := v.clampZoom(math.Min(v.bounds.W/rect.W, v.bounds.H/rect.H))
	offset := v.offsetCentering(rect.Center(), scale)
	if !animated {
		v.transition = nil
		v.zoom, v.offset = scale, offset
		v.clampOffset()
		v.emit(viewport.ZoomChanged, false)
		v.emit(viewport.EndZoom, false)
		return
	}
	v.startTransition(scale, offset)
}

func (v *View) startTransition(scale float64, offset geom.Point) {
	v.decelerate, v.velocity = false, geom.Point{}
	v.transition = &transition{
		fromZoom:   v.zoom,
		toZoom:     scale,
		fromOffset: v.offset,
		toOffset:   offset,
	}
}

// BeginZoom starts a user zoom gesture (pinch or wheel).
func (v *View) BeginZoom() {
	if v.zooming {
		return
	}
	v.transition = nil
	v.decelerate, v.velocity = false, geom.Point{}
	v.zooming = true
	v.emit(viewport.BeginZoom, false)
}

// ZoomBy multiplies the zoom by factor keeping the content point under anchor
// (in viewport coordinates) fixed on screen.
func (v *View) ZoomBy(factor float64, anchor geom.Point) {
	if !v.zooming {
		v.BeginZoom()
	}
	v.zoomAround(v.clampZoom(v.zoom*factor), anchor)
	v.emit(viewport.ZoomChanged, false)
}

// EndZoom ends the user zoom gesture.
func (v *View) EndZoom() {
	if !v.zooming {
		return
	}
	v.zooming = false
	v.emit(viewport.EndZoom, false)
}

// BeginDrag starts a pan gesture.
func (v *View) BeginDrag() {
	v.transition = nil
	v.decelerate, v.velocity = false, geom.Point{}
	v.dragging = true
	v.emit(viewport.BeginDrag, false)
}

// DragBy moves the content with the pointer: a pointer moving right by delta
// reveals content further left.
func (v *View) DragBy(delta geom.Point) {
	if !v.dragging {
		return
	}
	v.offset = v.offset.Sub(delta)
	v.clampOffset()
	v.emit(viewport.ScrollChanged, false)
}

// EndDrag releases the pan gesture with the pointer's velocity (points/sec).
// Fast releases keep scrolling until Tick decays the momentum.
func (v *View) EndDrag(velocity geom.Point) {
	if !v.dragging {
		return
	}
	v.dragging = false
	v.velocity = velocity
	v.decelerate = math.Hypot(velocity.X, velocity.Y) >= minVelocity
	v.emit(viewport.EndDrag, v.decelerate)
}

// Tick advances momentum and zoom transitions by dt.
func (v *View) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if v.transition != nil {
		v.stepTransition(dt)
	}
	if v.decelerate {
		v.stepDeceleration(dt)
	}
}

func (v *View) stepTransition(dt time.Duration) {
	tr := v.transition
	tr.elapsed += dt
	t := math.Min(1, float64(tr.elapsed)/float64(transitionDuration))
	t = t * t * (3 - 2*t) // smoothstep

	v.zoom = tr.fromZoom + (tr.toZoom-tr.fromZoom)*t
	v.offset = tr.fromOffset.Add(tr.toOffset.Sub(tr.fromOffset).Scale(t))
	if t >= 1 {
		v.transition = nil
		v.zoom, v.offset = tr.toZoom, tr.toOffset
		v.clampOffset()
		v.emit(viewport.ZoomChanged, false)
		v.emit(viewport.EndZoom, false)
		return
	}
	v.emit(viewport.ZoomChanged, false)
}

func (v *View) stepDeceleration(dt time.Duration) {
	secs := dt.Seconds()
	before := v.offset
	v.offset = v.offset.Sub(v.velocity.Scale(secs))
	v.clampOffset()
	if v.offset.X == before.X {
		v.velocity.X = 0 // hit an edge
	}
	if v.offset.Y == before.Y {
		v.velocity.Y = 0
	}
	v.velocity = v.velocity.Scale(math.Pow(decelerationRate, float64(dt.Milliseconds())))
	if v.offset != before {
		v.emit(viewport.ScrollChanged, false)
	}
	if math.Hypot(v.velocity.X, v.velocity.Y) < minVelocity {
		v.decelerate, v.velocity = false, geom.Point{}
		v.emit(viewport.EndDeceleration, false)
	}
}

// ContentPoint converts a viewport point to unscaled content coordinates.
func (v *View) ContentPoint(p geom.Point) geom.Point {
	return p.Add(v.offset).Scale(1 / v.zoom)
}

// ViewportPoint converts an unscaled content point to viewport coordinates.
func (v *View) ViewportPoint(p geom.Point) geom.Point {
	return p.Scale(v.zoom).Sub(v.offset)
}

// ContentToViewport is the affine transform from unscaled content
// coordinates to viewport coordinates.
func (v *View) ContentToViewport() geom.Affine {
	return geom.Translate(-v.offset.X, -v.offset.Y).Mul(geom.UniformScale(v.zoom))
}

func (v *View) viewportCenter() geom.Point {
	return geom.MakePoint(v.bounds.W/2, v.bounds.H/2)
}

func (v *View) clampZoom(zoom float64) float64 {
	return math.Max(v.minZoom, math.Min(v.maxZoom, zoom))
}

// zoomAround sets the zoom keeping the content point under anchor fixed.
func (v *View) zoomAround(zoom float64, anchor geom.Point) {
	content := v.ContentPoint(anchor)
	v.zoom = zoom
	v.offset = content.Scale(zoom).Sub(anchor)
	v.clampOffset()
}

// offsetCentering returns the offset that puts content point c at the
// viewport center at the given zoom.
func (v *View) offsetCentering(c geom.Point, zoom float64) geom.Point {
	return c.Scale(zoom).Sub(v.viewportCenter())
}

// clampOffset keeps the offset within the zoomed content plus insets.
func (v *View) clampOffset() {
	scaled := v.ContentSize()
	v.offset.X = clampAxis(v.offset.X, -v.inset.Left, scaled.W+v.inset.Right-v.bounds.W)
	v.offset.Y = clampAxis(v.offset.Y, -v.inset.Top, scaled.H+v.inset.Bottom-v.bounds.H)
}

// clampAxis clamps x to [lo, max(lo, hi)].
func clampAxis(x, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
