// Package gesture turns raw pointer input from a host (mouse buttons, wheel
// ticks, cursor motion) into the discrete gestures the scroll primitive
// understands: double taps, wheel zoom sessions and drags with a release
// velocity.
package gesture

import (
	"time"

	"github.com/irfansharif/zooming/internal/geom"
)

const (
	DoubleTapInterval = 300 * time.Millisecond // max time between the two presses
	DoubleTapSlop     = 8.0                    // max distance between the two presses
	WheelIdleTimeout  = 150 * time.Millisecond // wheel zoom ends after this much quiet
	velocityWindow    = 100 * time.Millisecond // samples considered for release velocity
)

// TapRecognizer recognizes exactly two presses close in time and space. A
// third press starts a new sequence.
type TapRecognizer struct {
	Interval time.Duration
	Slop     float64

	count    int
	lastTime time.Time
	lastPos  geom.Point
}

func NewTapRecognizer() *TapRecognizer {
	return &TapRecognizer{Interval: DoubleTapInterval, Slop: DoubleTapSlop}
}

// Press records a press at pos and reports whether it completes a double tap.
func (r *TapRecognizer) Press(now time.Time, pos geom.Point) bool {
	if r.count == 1 && now.Sub(r.lastTime) <= r.Interval && geom.Dist(pos, r.lastPos) <= r.Slop {
		r.count = 0
		return true
	}
	r.count = 1
	r.lastTime, r.lastPos = now, pos
	return false
}

// Cancel forgets any pending first tap (e.g. once the press turned into a
// drag).
func (r *TapRecognizer) Cancel() { r.count = 0 }

// WheelSession groups discrete wheel ticks into one zoom gesture: the first
// tick begins it, and it ends once no tick arrived for Timeout.
type WheelSession struct {
	Timeout time.Duration

	active   bool
	lastTick time.Time
}

func NewWheelSession() *WheelSession {
	return &WheelSession{Timeout: WheelIdleTimeout}
}

// Tick records a wheel tick and reports whether it began a new session.
func (w *WheelSession) Tick(now time.Time) (began bool) {
	began = !w.active
	w.active = true
	w.lastTick = now
	return began
}

// Expired reports (once) whether an active session has gone quiet and should
// end.
func (w *WheelSession) Expired(now time.Time) bool {
	if !w.active || now.Sub(w.lastTick) < w.Timeout {
		return false
	}
	w.active = false
	return true
}

func (w *WheelSession) Active() bool { return w.active }

// Drag tracks one pointer drag: per-move deltas and the release velocity.
type Drag struct {
	active  bool
	moved   bool
	last    geom.Point
	samples []sample
}

type sample struct {
	at  time.Time
	pos geom.Point
}

// Start begins a drag at pos.
func (d *Drag) Start(now time.Time, pos geom.Point) {
	d.active, d.moved = true, false
	d.last = pos
	d.samples = append(d.samples[:0], sample{now, pos})
}

func (d *Drag) Active() bool { return d.active }

// Moved reports whether the pointer moved since Start.
func (d *Drag) Moved() bool { return d.moved }

// Move returns the delta since the previous position. ok is false if no drag
// is active or the pointer didn't move.
func (d *Drag) Move(now time.Time, pos geom.Point) (delta geom.Point, ok bool) {
	if !d.active {
		return geom.Point{}, false
	}
	delta = pos.Sub(d.last)
	if delta == (geom.Point{}) {
		return delta, false
	}
	d.moved = true
	d.last = pos
	d.samples = append(d.samples, sample{now, pos})
	return delta, true
}

// End finishes the drag and returns the pointer velocity (points/sec) over
// the last velocityWindow.
func (d *Drag) End(now time.Time) geom.Point {
	if !d.active {
		return geom.Point{}
	}
	d.active = false

	first := -1
	for i, s := range d.samples {
		if now.Sub(s.at) <= velocityWindow {
			first = i
			break
		}
	}
	if first == -1 || first == len(d.samples)-1 {
		return geom.Point{} // pointer was at rest before release
	}
	a, b := d.samples[first], d.samples[len(d.samples)-1]
	dt := b.at.Sub(a.at).Seconds()
	if dt <= 0 {
		return geom.Point{}
	}
	return b.pos.Sub(a.pos).Scale(1 / dt)
}
