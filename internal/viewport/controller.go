package viewport

import (
	"math"

	"github.com/irfansharif/zooming/internal/geom"
)

const (
	modeTolerance           = 0.01 // in normalized-scale units
	maxZoomOverFit          = 5.0  // always allow zooming 5x past fit
	fillHeadroom            = 1.1  // and 10% past fill
	defaultMaxLayoutRetries = 120  // ~2s of frames waiting for a positive layout
)

// Content is anything that can be placed inside the viewport.
type Content interface {
	// IntrinsicSize is the content's natural, unscaled size.
	IntrinsicSize() geom.Size
}

// Scrollable is the scroll/zoom primitive the controller drives. It owns the
// zoom/pan physics; the controller only sets bounds and targets and reads the
// live values back.
type Scrollable interface {
	Bounds() geom.Size
	SetZoomBounds(min, max float64)
	SetContentSize(size geom.Size)
	SetZoomScale(scale float64, animated bool)
	ZoomToRect(rect geom.Rect, animated bool)
	SetContentInset(insets geom.Insets)
	ZoomScale() float64
	ContentOffset() geom.Point
	// ContentSize is the content size at the current zoom scale.
	ContentSize() geom.Size
}

// Scheduler posts a task to run on a later iteration of the host's
// (single-threaded) event loop.
type Scheduler interface {
	Post(task func())
}

// Scales are the zoom bounds derived from one layout pass.
type Scales struct {
	Fit  float64 // smallest scale showing all the content
	Fill float64 // largest scale covering the container
	Min  float64
	Max  float64
}

// ComputeScales derives the fit/fill scales and zoom bounds for the given
// sizes. It returns false if either size is not strictly positive.
func ComputeScales(container, content geom.Size) (Scales, bool) {
	if !container.Positive() || !content.Positive() {
		return Scales{}, false
	}
	widthScale := container.W / content.W
	heightScale := container.H / content.H
	if math.IsInf(widthScale, 0) || math.IsInf(heightScale, 0) {
		return Scales{}, false
	}

	fit := math.Min(widthScale, heightScale)
	fill := math.Max(widthScale, heightScale)
	return Scales{
		Fit:  fit,
		Fill: fill,
		Min:  fit,
		Max:  math.Max(fit*maxZoomOverFit, fill*fillHeadroom),
	}, true
}

// CenteringInsets returns the symmetric insets that center content smaller
// than the viewport along either axis.
func CenteringInsets(viewport, content geom.Size) geom.Insets {
	h := math.Max(0, (viewport.W-content.W)/2)
	v := math.Max(0, (viewport.H-content.H)/2)
	return geom.Insets{Top: v, Left: h, Bottom: v, Right: h}
}

// Toggle describes the target of a double tap.
type Toggle struct {
	Mode  Mode
	Scale float64
	Rect  geom.Rect // in content coordinates, handed to Scrollable.ZoomToRect
}

// Option configures a Controller.
type Option func(*Controller)

// WithInitialMode sets the mode applied after each successful recompute.
func WithInitialMode(m Mode) Option {
	return func(c *Controller) { c.initialMode = m }
}

// WithOnStateChange sets the state subscriber.
func WithOnStateChange(fn func(State)) Option {
	return func(c *Controller) { c.notifier.SetOnChange(fn) }
}

// WithClock overrides the clock used for throttling.
func WithClock(clock Clock) Option {
	return func(c *Controller) { c.notifier.clock = clock }
}

// WithMaxLayoutRetries bounds how many event-loop ticks the controller waits
// for positive sizes before giving up until the next host layout call.
func WithMaxLayoutRetries(n int) Option {
	return func(c *Controller) { c.maxRetries = n }
}

// Controller is the viewport state machine. It is not safe for concurrent
// use; every method must run on the host's event loop.
type Controller struct {
	scroller Scrollable
	sched    Scheduler
	content  Content
	notifier *Notifier
	cache    LayoutCache

	fitScale, fillScale      float64
	currentMode, initialMode Mode

	isZooming         bool
	isUserInteracting bool

	maxRetries   int
	retries      int
	retryPending bool
	applying     bool // inside applyInitialScale; primitive events don't notify
}

// New creates a controller driving scroller and posting deferred work to
// sched.
func New(scroller Scrollable, sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		scroller:   scroller,
		sched:      sched,
		notifier:   NewNotifier(nil, nil),
		fitScale:   1.0,
		fillScale:  1.0,
		maxRetries: defaultMaxLayoutRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.currentMode = c.initialMode
	return c
}

// SetOnStateChange replaces the state subscriber.
func (c *Controller) SetOnStateChange(fn func(State)) { c.notifier.SetOnChange(fn) }

// SetInitialMode sets the mode applied by the next successful recompute
// (the next content attach or container resize).
func (c *Controller) SetInitialMode(m Mode) { c.initialMode = m }

// SetContent attaches content to the viewport, replacing any previous one.
func (c *Controller) SetContent(content Content) {
	c.content = content
	c.cache.Invalidate()
	c.notifier.Reset()
	c.retries = 0
	viewportLogger.Printf("content attached (intrinsic %s)", content.IntrinsicSize())
	c.layout()
}

// LayoutSubviews is called by the host whenever the container's bounds may
// have changed.
func (c *Controller) LayoutSubviews() {
	if c.content == nil {
		return // nothing to do
	}
	if c.scroller.Bounds() != c.cache.Container() {
		c.cache.Invalidate()
	}
	c.retries = 0
	c.layout()
}

// layout recomputes the scale bounds, or re-posts itself to the next
// event-loop tick if the sizes aren't known yet.
func (c *Controller) layout() {
	if c.content == nil {
		return
	}
	container, content := c.scroller.Bounds(), c.content.IntrinsicSize()
	if _, ok := c.Recompute(container, content); ok {
		return
	}

	if c.retryPending {
		return // already waiting on the next tick
	}
	if c.retries >= c.maxRetries {
		viewportLogger.Printf("WARNING: giving up on layout after %d retries (container %s, content %s)",
			c.retries, container, content)
		return
	}
	c.retries++
	c.retryPending = true
	c.sched.Post(func() {
		c.retryPending = false
		c.layout()
	})
}

// Recompute derives the fit/fill scales for the given sizes and pushes the
// resulting zoom bounds to the scroll primitive. When the sizes differ from
// the last successful pass it also posts the application of the initial
// mode's scale, centering and a forced notification. It returns false, doing
// nothing, if either size isn't strictly positive.
func (c *Controller) Recompute(container, content geom.Size) (Scales, bool) {
	if c.cache.Matches(container, content) {
		return c.scales(), true
	}
	scales, ok := ComputeScales(container, content)
	if !ok {
		return Scales{}, false
	}

	c.cache.Store(container, content)
	c.fitScale, c.fillScale = scales.Fit, scales.Fill

	c.scroller.SetZoomBounds(scales.Min, scales.Max)
	c.scroller.SetContentSize(content)
	viewportLogger.Printf("recomputed: container %s, content %s, fit=%.4f fill=%.4f max=%.4f",
		container, content, scales.Fit, scales.Fill, scales.Max)

	c.sched.Post(c.applyInitialScale)
	return scales, true
}

func (c *Controller) scales() Scales {
	return Scales{
		Fit:  c.fitScale,
		Fill: c.fillScale,
		Min:  c.fitScale,
		Max:  math.Max(c.fitScale*maxZoomOverFit, c.fillScale*fillHeadroom),
	}
}

func (c *Controller) applyInitialScale() {
	target := c.fitScale
	if c.initialMode == ModeFill {
		target = c.fillScale
	}
	c.applying = true
	c.scroller.SetZoomScale(target, false /* animated */)
	c.currentMode = c.initialMode
	c.center()
	c.applying = false
	c.notify(true /* forced */)
}

func (c *Controller) center() {
	c.scroller.SetContentInset(CenteringInsets(c.scroller.Bounds(), c.scroller.ContentSize()))
}

// NormalizedScale is the live scale relative to the fit scale.
func (c *Controller) NormalizedScale() float64 {
	return c.scroller.ZoomScale() / c.fitScale
}

// ClassifyMode updates the current mode from a live scale: within tolerance
// of fit it becomes ModeFit, within tolerance of fill ModeFill, and anywhere
// else it keeps whatever it was.
func (c *Controller) ClassifyMode(liveScale float64) Mode {
	normalized := liveScale / c.fitScale
	normalizedFill := c.fillScale / c.fitScale

	if math.Abs(normalized-1.0) < modeTolerance {
		c.currentMode = ModeFit
	} else if math.Abs(normalized-normalizedFill) < modeTolerance {
		c.currentMode = ModeFill
	}
	return c.currentMode
}

// ToggleTarget computes where a double tap at tap (in content coordinates)
// should zoom to, without changing any state. Taps while at fit go to fill;
// taps at any other scale go back to fit.
func (c *Controller) ToggleTarget(tap geom.Point) Toggle {
	target := Toggle{Mode: ModeFit, Scale: c.fitScale}
	if math.Abs(c.NormalizedScale()-1.0) < modeTolerance {
		target = Toggle{Mode: ModeFill, Scale: c.fillScale}
	}

	bounds := c.scroller.Bounds()
	target.Rect = geom.RectAround(tap, geom.MakeSize(bounds.W/target.Scale, bounds.H/target.Scale))
	return target
}

// DoubleTap toggles between fit and fill, zooming (animated) to a rectangle
// centered on tap.
func (c *Controller) DoubleTap(tap geom.Point) Toggle {
	target := c.ToggleTarget(tap)
	c.currentMode = target.Mode
	viewportLogger.Printf("double tap at (%.1f,%.1f): %s at %.4f", tap.X, tap.Y, target.Mode, target.Scale)
	c.scroller.ZoomToRect(target.Rect, true /* animated */)
	return target
}

// HandleEvent consumes a gesture-phase event from the scroll primitive.
// Phase boundaries notify immediately; continuous changes are throttled.
func (c *Controller) HandleEvent(ev Event) {
	switch ev.Phase {
	case BeginZoom:
		c.isZooming = true
		c.isUserInteracting = true
		c.notify(true)
	case ZoomChanged:
		c.center()
		c.ClassifyMode(c.scroller.ZoomScale())
		c.notify(false)
	case EndZoom:
		c.isZooming = false
		c.isUserInteracting = false
		c.notify(true)
	case BeginDrag:
		c.isUserInteracting = true
		c.notify(true)
	case ScrollChanged:
		c.notify(false)
	case EndDrag:
		if ev.WillDecelerate {
			return // EndDeceleration follows
		}
		c.isUserInteracting = false
		c.notify(true)
	case EndDeceleration:
		c.isUserInteracting = false
		c.notify(true)
	default:
		viewportLogger.Printf("WARNING: ignoring unknown event %v", ev)
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	return State{
		Scale:             c.NormalizedScale(),
		Offset:            c.scroller.ContentOffset(),
		Mode:              c.currentMode,
		IsZooming:         c.isZooming,
		IsUserInteracting: c.isUserInteracting,
	}
}

func (c *Controller) notify(forced bool) {
	if !c.cache.Valid() || c.applying {
		return // scales aren't meaningful yet, or a forced notification follows
	}
	c.notifier.Consider(c.State(), forced)
}

func (c *Controller) Mode() Mode                   { return c.currentMode }
func (c *Controller) InitialMode() Mode            { return c.initialMode }
func (c *Controller) FitScale() float64            { return c.fitScale }
func (c *Controller) FillScale() float64           { return c.fillScale }
func (c *Controller) LayoutValid() bool            { return c.cache.Valid() }
func (c *Controller) NotifierStats() NotifierStats { return c.notifier.Stats() }
func (c *Controller) LastNotified() (State, bool)  { return c.notifier.Last() }
