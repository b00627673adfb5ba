package viewport

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/irfansharif/zooming/internal/geom"
	"github.com/irfansharif/zooming/internal/loop"
)

const floatEps = 1e-9

// fakeScroller is an in-memory Scrollable. Programmatic zoom changes are
// reported back through onEvent when set, the way a real primitive would.
type fakeScroller struct {
	bounds   geom.Size
	content  geom.Size
	zoom     float64
	min, max float64
	offset   geom.Point
	inset    geom.Insets
	zoomedTo []geom.Rect
	onEvent  func(Event)
}

func newFakeScroller(w, h float64) *fakeScroller {
	return &fakeScroller{bounds: geom.MakeSize(w, h), zoom: 1}
}

func (f *fakeScroller) Bounds() geom.Size                { return f.bounds }
func (f *fakeScroller) SetZoomBounds(min, max float64)   { f.min, f.max = min, max }
func (f *fakeScroller) SetContentSize(size geom.Size)    { f.content = size }
func (f *fakeScroller) SetContentInset(ins geom.Insets)  { f.inset = ins }
func (f *fakeScroller) ZoomScale() float64               { return f.zoom }
func (f *fakeScroller) ContentOffset() geom.Point        { return f.offset }
func (f *fakeScroller) ContentSize() geom.Size           { return f.content.Scale(f.zoom) }
func (f *fakeScroller) SetZoomScale(s float64, _ bool)   { f.setZoom(s) }
func (f *fakeScroller) ZoomToRect(r geom.Rect, _ bool)   { f.zoomToRect(r) }

func (f *fakeScroller) setZoom(s float64) {
	f.zoom = s
	if f.onEvent != nil {
		f.onEvent(Event{Phase: ZoomChanged, Scale: f.zoom, Offset: f.offset})
	}
}

func (f *fakeScroller) zoomToRect(r geom.Rect) {
	f.zoomedTo = append(f.zoomedTo, r)
	f.setZoom(math.Min(f.bounds.W/r.W, f.bounds.H/r.H))
	if f.onEvent != nil {
		f.onEvent(Event{Phase: EndZoom, Scale: f.zoom, Offset: f.offset})
	}
}

// fakeClock is a controllable Clock.
type fakeClock struct{ now time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type intrinsic geom.Size

func (s intrinsic) IntrinsicSize() geom.Size { return geom.Size(s) }

type recorder struct{ states []State }

func (r *recorder) record(s State) { r.states = append(r.states, s) }

func (r *recorder) last(t *testing.T) State {
	t.Helper()
	if len(r.states) == 0 {
		t.Fatal("expected at least one notification")
	}
	return r.states[len(r.states)-1]
}

func approx(a, b float64) bool { return math.Abs(a-b) < floatEps }

func TestComputeScales(t *testing.T) {
	for _, tc := range []struct {
		container, content geom.Size
		want               Scales
	}{
		{geom.MakeSize(300, 300), geom.MakeSize(400, 200), Scales{Fit: 0.75, Fill: 1.5, Min: 0.75, Max: 3.75}},
		{geom.MakeSize(100, 100), geom.MakeSize(100, 100), Scales{Fit: 1, Fill: 1, Min: 1, Max: 5}},
		// A very wide container: fill dominates the upper bound.
		{geom.MakeSize(1000, 100), geom.MakeSize(100, 100), Scales{Fit: 1, Fill: 10, Min: 1, Max: 11}},
	} {
		got, ok := ComputeScales(tc.container, tc.content)
		if !ok {
			t.Fatalf("ComputeScales(%s, %s) unexpectedly not ok", tc.container, tc.content)
		}
		if !approx(got.Fit, tc.want.Fit) || !approx(got.Fill, tc.want.Fill) ||
			!approx(got.Min, tc.want.Min) || !approx(got.Max, tc.want.Max) {
			t.Errorf("ComputeScales(%s, %s) = %+v, want %+v", tc.container, tc.content, got, tc.want)
		}
	}
}

func TestComputeScalesProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		container := geom.MakeSize(1+r.Float64()*2000, 1+r.Float64()*2000)
		content := geom.MakeSize(1+r.Float64()*2000, 1+r.Float64()*2000)
		s, ok := ComputeScales(container, content)
		if !ok {
			t.Fatalf("unexpected failure for %s, %s", container, content)
		}
		ws, hs := container.W/content.W, container.H/content.H
		if s.Fit != math.Min(ws, hs) || s.Fill != math.Max(ws, hs) {
			t.Fatalf("fit/fill mismatch for %s, %s: %+v", container, content, s)
		}
		if s.Fill < s.Fit {
			t.Fatalf("fill < fit for %s, %s: %+v", container, content, s)
		}
		if s.Min != s.Fit || s.Max != math.Max(s.Fit*5, s.Fill*1.1) {
			t.Fatalf("bad zoom bounds for %s, %s: %+v", container, content, s)
		}
	}
}

func TestComputeScalesRejectsNonPositive(t *testing.T) {
	for _, tc := range []struct{ container, content geom.Size }{
		{geom.Size{}, geom.MakeSize(10, 10)},
		{geom.MakeSize(10, 10), geom.Size{}},
		{geom.MakeSize(10, 0), geom.MakeSize(10, 10)},
		{geom.MakeSize(10, 10), geom.MakeSize(-1, 10)},
		{geom.MakeSize(math.NaN(), 10), geom.MakeSize(10, 10)},
		{geom.MakeSize(10, 10), geom.MakeSize(1e-320, 10)}, // overflows to +Inf
	} {
		if s, ok := ComputeScales(tc.container, tc.content); ok {
			t.Errorf("ComputeScales(%s, %s) = %+v, expected rejection", tc.container, tc.content, s)
		}
	}
}

func TestCenteringInsets(t *testing.T) {
	got := CenteringInsets(geom.MakeSize(300, 300), geom.MakeSize(300, 150))
	if got != (geom.Insets{Top: 75, Bottom: 75}) {
		t.Errorf("got %+v", got)
	}
	got = CenteringInsets(geom.MakeSize(300, 300), geom.MakeSize(600, 400))
	if got != (geom.Insets{}) {
		t.Errorf("content larger than viewport should get no insets, got %+v", got)
	}
}

// setup attaches 400x200 content to a 300x300 container, with the scroller
// reporting zoom changes back to the controller.
func setup(t *testing.T, opts ...Option) (*Controller, *fakeScroller, *loop.Queue, *recorder, *fakeClock) {
	t.Helper()
	fs := newFakeScroller(300, 300)
	q := loop.NewQueue()
	rec := &recorder{}
	clock := newFakeClock()
	opts = append([]Option{WithOnStateChange(rec.record), WithClock(clock)}, opts...)
	c := New(fs, q, opts...)
	fs.onEvent = c.HandleEvent
	c.SetContent(intrinsic(geom.MakeSize(400, 200)))
	return c, fs, q, rec, clock
}

func TestEndToEndFitThenDoubleTap(t *testing.T) {
	c, fs, q, rec, _ := setup(t)

	if !c.LayoutValid() {
		t.Fatal("expected layout to be valid after attaching to a sized container")
	}
	if !approx(c.FitScale(), 0.75) || !approx(c.FillScale(), 1.5) {
		t.Fatalf("fit=%v fill=%v", c.FitScale(), c.FillScale())
	}
	if !approx(fs.min, 0.75) || !approx(fs.max, 3.75) {
		t.Fatalf("zoom bounds: min=%v max=%v", fs.min, fs.max)
	}
	if len(rec.states) != 0 {
		t.Fatal("initial scale must be applied on the next tick, not synchronously")
	}

	q.Drain()
	if len(rec.states) != 1 {
		t.Fatalf("expected exactly one notification after layout settles, got %d", len(rec.states))
	}
	st := rec.last(t)
	if !approx(st.Scale, 1.0) || st.Mode != ModeFit || st.IsZooming || st.IsUserInteracting {
		t.Fatalf("unexpected initial state: %v", st)
	}
	if !approx(fs.zoom, 0.75) {
		t.Fatalf("expected primitive at fit scale, got %v", fs.zoom)
	}
	if fs.inset != (geom.Insets{Top: 75, Bottom: 75}) {
		t.Fatalf("expected content centered vertically, got %+v", fs.inset)
	}

	toggle := c.DoubleTap(geom.MakePoint(200, 100))
	if toggle.Mode != ModeFill || !approx(toggle.Scale, 1.5) {
		t.Fatalf("expected fill at 1.5, got %+v", toggle)
	}
	if toggle.Rect != geom.MakeRect(100, 0, 200, 200) {
		t.Fatalf("unexpected zoom rect %+v", toggle.Rect)
	}
	if len(fs.zoomedTo) != 1 || fs.zoomedTo[0] != toggle.Rect {
		t.Fatalf("expected the rect to be handed to the primitive, got %v", fs.zoomedTo)
	}
	if c.Mode() != ModeFill {
		t.Fatalf("expected fill mode, got %s", c.Mode())
	}
	if st := rec.last(t); st.Mode != ModeFill || !approx(st.Scale, 2.0) {
		t.Fatalf("unexpected state after toggle: %v", st)
	}
}

func TestDoubleTapFromNonFitReturnsToFit(t *testing.T) {
	c, fs, q, _, _ := setup(t)
	q.Drain()

	for _, zoom := range []float64{1.5 /* fill */, 1.1, 3.0} {
		fs.zoom = zoom
		target := c.ToggleTarget(geom.MakePoint(0, 0))
		if target.Mode != ModeFit || !approx(target.Scale, 0.75) {
			t.Errorf("zoom %v: expected fit at 0.75, got %+v", zoom, target)
		}
		if !approx(target.Rect.W, 400) || !approx(target.Rect.H, 400) {
			t.Errorf("zoom %v: unexpected rect %+v", zoom, target.Rect)
		}
	}

	fs.zoom = 0.75 * 1.005 // within tolerance of fit
	if target := c.ToggleTarget(geom.MakePoint(0, 0)); target.Mode != ModeFill {
		t.Errorf("expected near-fit scale to toggle to fill, got %+v", target)
	}
}

func TestClassifyModeHysteresis(t *testing.T) {
	c, _, q, _, _ := setup(t)
	q.Drain()

	if m := c.ClassifyMode(0.75); m != ModeFit {
		t.Errorf("at fit scale: got %s", m)
	}
	mid := (0.75 + 1.5) / 2
	if m := c.ClassifyMode(mid); m != ModeFit {
		t.Errorf("midpoint after fit should stay fit, got %s", m)
	}
	if m := c.ClassifyMode(1.5); m != ModeFill {
		t.Errorf("at fill scale: got %s", m)
	}
	if m := c.ClassifyMode(mid); m != ModeFill {
		t.Errorf("midpoint after fill should stay fill, got %s", m)
	}
	if m := c.ClassifyMode(0.75 * 1.009); m != ModeFit {
		t.Errorf("within tolerance of fit: got %s", m)
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	c, _, q, rec, _ := setup(t)
	q.Drain()

	first, ok := c.Recompute(geom.MakeSize(300, 300), geom.MakeSize(400, 200))
	if !ok {
		t.Fatal("expected recompute to succeed")
	}
	second, _ := c.Recompute(geom.MakeSize(300, 300), geom.MakeSize(400, 200))
	if first != second {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}
	want, _ := ComputeScales(geom.MakeSize(300, 300), geom.MakeSize(400, 200))
	if first != want {
		t.Errorf("cached result %+v differs from a fresh computation %+v", first, want)
	}

	c.LayoutSubviews()
	if q.Len() != 0 {
		t.Errorf("cache hit should not schedule work, %d tasks pending", q.Len())
	}
	q.Drain()
	if len(rec.states) != 1 {
		t.Errorf("expected no duplicate notification, got %d", len(rec.states))
	}
}

func TestResizeReappliesInitialMode(t *testing.T) {
	c, fs, q, rec, _ := setup(t)
	q.Drain()
	c.SetInitialMode(ModeFill)

	fs.bounds = geom.MakeSize(600, 300)
	c.LayoutSubviews()
	q.Drain()

	// 600/400 = 1.5, 300/200 = 1.5: fit and fill coincide.
	if !approx(c.FitScale(), 1.5) || !approx(c.FillScale(), 1.5) {
		t.Fatalf("fit=%v fill=%v", c.FitScale(), c.FillScale())
	}
	if c.Mode() != ModeFill || !approx(fs.zoom, 1.5) {
		t.Errorf("expected fill applied at 1.5, got %s at %v", c.Mode(), fs.zoom)
	}
	if len(rec.states) != 2 {
		t.Errorf("expected one notification per settled layout, got %d", len(rec.states))
	}
}

func TestInitialModeFill(t *testing.T) {
	c, fs, q, rec, _ := setup(t, WithInitialMode(ModeFill))
	q.Drain()
	if !approx(fs.zoom, 1.5) || c.Mode() != ModeFill {
		t.Fatalf("expected fill at 1.5, got %s at %v", c.Mode(), fs.zoom)
	}
	if st := rec.last(t); !approx(st.Scale, 2.0) || st.Mode != ModeFill {
		t.Errorf("unexpected state %v", st)
	}
}

func TestDeferredLayoutRetries(t *testing.T) {
	fs := newFakeScroller(0, 0)
	q := loop.NewQueue()
	rec := &recorder{}
	c := New(fs, q, WithOnStateChange(rec.record))
	c.SetContent(intrinsic(geom.MakeSize(400, 200)))

	if c.LayoutValid() {
		t.Fatal("layout can't be valid with an empty container")
	}
	if q.Len() != 1 {
		t.Fatalf("expected a retry to be posted, %d pending", q.Len())
	}
	c.LayoutSubviews() // a second layout pass doesn't stack another retry
	if q.Len() != 1 {
		t.Fatalf("expected a single pending retry, %d pending", q.Len())
	}

	q.Drain()
	q.Drain()
	if c.LayoutValid() || len(rec.states) != 0 {
		t.Fatal("nothing should happen while the container has no size")
	}

	fs.bounds = geom.MakeSize(300, 300)
	q.Drain() // retry succeeds and posts the initial apply
	if !c.LayoutValid() {
		t.Fatal("expected layout after the container was sized")
	}
	q.Drain()
	if len(rec.states) != 1 {
		t.Fatalf("expected one notification, got %d", len(rec.states))
	}
	for _, st := range rec.states {
		if math.IsNaN(st.Scale) || math.IsInf(st.Scale, 0) {
			t.Errorf("notification with invalid scale: %v", st)
		}
	}
}

func TestDeferredLayoutRetryCap(t *testing.T) {
	fs := newFakeScroller(0, 0)
	q := loop.NewQueue()
	c := New(fs, q, WithMaxLayoutRetries(3))
	c.SetContent(intrinsic(geom.MakeSize(400, 200)))

	ticks := 0
	for i := 0; i < 10; i++ {
		if q.Drain() > 0 {
			ticks++
		}
	}
	if ticks != 3 {
		t.Errorf("expected 3 retries before giving up, got %d", ticks)
	}

	// A fresh host layout pass restores the retry budget.
	fs.bounds = geom.MakeSize(300, 300)
	c.LayoutSubviews()
	if !c.LayoutValid() {
		t.Error("expected layout once the host lays out with a real size")
	}
}

func TestSetContentResetsNotifier(t *testing.T) {
	c, _, q, rec, _ := setup(t)
	q.Drain()
	c.SetContent(intrinsic(geom.MakeSize(400, 200)))
	q.Drain()
	if len(rec.states) != 2 {
		t.Fatalf("re-attaching should notify again even with an identical state, got %d", len(rec.states))
	}
	if rec.states[0] != rec.states[1] {
		t.Errorf("expected identical states, got %v and %v", rec.states[0], rec.states[1])
	}
}

func TestGesturePhases(t *testing.T) {
	c, fs, q, rec, clock := setup(t)
	q.Drain()
	fs.onEvent = nil // drive events by hand
	n := len(rec.states)

	c.HandleEvent(Event{Phase: BeginZoom})
	if len(rec.states) != n+1 || !rec.last(t).IsZooming || !rec.last(t).IsUserInteracting {
		t.Fatalf("begin-zoom must notify immediately: %v", rec.states)
	}

	clock.Advance(5 * time.Millisecond)
	fs.zoom = 0.9
	c.HandleEvent(Event{Phase: ZoomChanged})
	if len(rec.states) != n+1 {
		t.Fatal("zoom-changed 5ms after a notification must be throttled")
	}

	clock.Advance(15 * time.Millisecond)
	fs.zoom = 1.0
	c.HandleEvent(Event{Phase: ZoomChanged})
	if len(rec.states) != n+2 || !approx(rec.last(t).Scale, 1.0/0.75) {
		t.Fatalf("zoom-changed after the throttle interval must carry the latest scale: %v", rec.states)
	}

	clock.Advance(time.Millisecond)
	c.HandleEvent(Event{Phase: EndZoom})
	if len(rec.states) != n+3 || rec.last(t).IsZooming || rec.last(t).IsUserInteracting {
		t.Fatalf("end-zoom must notify immediately: %v", rec.states)
	}

	c.HandleEvent(Event{Phase: BeginDrag})
	if len(rec.states) != n+4 || !rec.last(t).IsUserInteracting || rec.last(t).IsZooming {
		t.Fatalf("begin-drag must notify immediately: %v", rec.states)
	}

	c.HandleEvent(Event{Phase: EndDrag, WillDecelerate: true})
	if len(rec.states) != n+4 {
		t.Fatal("end-drag with deceleration must wait for end-deceleration")
	}

	clock.Advance(20 * time.Millisecond)
	fs.offset = geom.MakePoint(12, 0)
	c.HandleEvent(Event{Phase: ScrollChanged})
	if len(rec.states) != n+5 || rec.last(t).Offset.X != 12 {
		t.Fatalf("scroll-changed past the throttle interval must notify: %v", rec.states)
	}

	c.HandleEvent(Event{Phase: EndDeceleration})
	if len(rec.states) != n+6 || rec.last(t).IsUserInteracting {
		t.Fatalf("end-deceleration must notify immediately: %v", rec.states)
	}

	c.HandleEvent(Event{Phase: BeginDrag})
	c.HandleEvent(Event{Phase: EndDrag, WillDecelerate: false})
	if len(rec.states) != n+8 || rec.last(t).IsUserInteracting {
		t.Fatalf("end-drag without deceleration must notify immediately: %v", rec.states)
	}
}

func TestZoomChangedCentersAndClassifies(t *testing.T) {
	c, fs, q, _, _ := setup(t)
	q.Drain()
	fs.onEvent = nil

	fs.zoom = 1.5
	c.HandleEvent(Event{Phase: ZoomChanged})
	if c.Mode() != ModeFill {
		t.Errorf("expected fill after zooming to the fill scale, got %s", c.Mode())
	}
	// 400x200 at 1.5 is 600x300: no room left to center.
	if fs.inset != (geom.Insets{}) {
		t.Errorf("expected no insets at fill, got %+v", fs.inset)
	}
}
