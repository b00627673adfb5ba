package app

import (
	"time"

	"github.com/irfansharif/zooming/internal/geom"
)

const (
	wheelZoomStep = 0.15 // zoom factor change per wheel notch
	minWheelZoom  = 0.5  // floor for a single wheel event's factor
	keyPanStep    = 100.0
)

// Action is a host-independent command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionReset
	ActionToggleMode
	ActionNextScene
	ActionPrevScene
	ActionZoomIn
	ActionZoomOut
	ActionPanLeft
	ActionPanRight
	ActionPanUp
	ActionPanDown
	ActionToggleCenter // double tap at the viewport center
)

// Press handles a primary button press at viewport point p. The second press
// of a double tap toggles fit/fill around the tapped content point; any other
// press may start a drag.
func (v *Viewer) Press(now time.Time, p geom.Point) {
	if v.taps.Press(now, p) {
		v.drag.End(now)
		v.Controller.DoubleTap(v.Scroll.ContentPoint(p))
		return
	}
	v.drag.Start(now, p)
}

// Move handles pointer motion while the primary button is held.
func (v *Viewer) Move(now time.Time, p geom.Point) {
	delta, ok := v.drag.Move(now, p)
	if !ok {
		return
	}
	if !v.Scroll.IsDragging() {
		v.taps.Cancel() // a drag is not a tap
		v.Scroll.BeginDrag()
	}
	v.Scroll.DragBy(delta)
}

// Release handles the primary button release.
func (v *Viewer) Release(now time.Time, p geom.Point) {
	if !v.drag.Active() {
		return
	}
	v.Move(now, p)
	velocity := v.drag.End(now)
	if v.Scroll.IsDragging() {
		v.Scroll.EndDrag(velocity)
	}
}

// Wheel zooms around viewport point p by notches (positive zooms in).
// Consecutive wheel events form one zoom gesture that Step ends once the
// wheel goes quiet.
func (v *Viewer) Wheel(now time.Time, p geom.Point, notches float64) {
	factor := 1 + notches*wheelZoomStep
	if factor < minWheelZoom {
		factor = minWheelZoom
	}
	if v.wheel.Tick(now) {
		v.Scroll.BeginZoom()
	}
	v.Scroll.ZoomBy(factor, p)
}

// Perform runs a key action.
func (v *Viewer) Perform(now time.Time, a Action) error {
	center := geom.MakeRect(0, 0, v.Scroll.Bounds().W, v.Scroll.Bounds().H).Center()
	switch a {
	case ActionReset:
		v.Reset()
	case ActionToggleMode:
		v.ToggleInitialMode()
	case ActionNextScene:
		return v.CycleScene(1)
	case ActionPrevScene:
		return v.CycleScene(-1)
	case ActionZoomIn:
		v.Wheel(now, center, 1)
	case ActionZoomOut:
		v.Wheel(now, center, -1)
	case ActionPanLeft:
		v.pan(geom.MakePoint(keyPanStep, 0))
	case ActionPanRight:
		v.pan(geom.MakePoint(-keyPanStep, 0))
	case ActionPanUp:
		v.pan(geom.MakePoint(0, keyPanStep))
	case ActionPanDown:
		v.pan(geom.MakePoint(0, -keyPanStep))
	case ActionToggleCenter:
		v.Controller.DoubleTap(v.Scroll.ContentPoint(center))
	}
	return nil
}

// pan performs a complete drag by delta with no release velocity.
func (v *Viewer) pan(delta geom.Point) {
	v.Scroll.BeginDrag()
	v.Scroll.DragBy(delta)
	v.Scroll.EndDrag(geom.Point{})
}
