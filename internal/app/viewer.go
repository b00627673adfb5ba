package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/irfansharif/zooming/internal/config"
	"github.com/irfansharif/zooming/internal/gesture"
	"github.com/irfansharif/zooming/internal/loop"
	"github.com/irfansharif/zooming/internal/scene"
	"github.com/irfansharif/zooming/internal/scroll"
	"github.com/irfansharif/zooming/internal/viewport"
)

var appLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("ZOOMING_DEBUG_APP") == "1" {
		appLogger = log.New(os.Stdout, "[app] ", log.Ltime|log.Lmsgprefix)
	}
}

// Viewer wires one scene into the viewport: the scroll primitive, the
// controller driving it and the event-loop queue the controller defers work
// to. It knows nothing about windows or terminals; hosts feed it sizes, input
// and frame ticks.
type Viewer struct {
	Scroll     *scroll.View
	Queue      *loop.Queue
	Controller *viewport.Controller
	Scene      *scene.Scene

	cfg           config.Config
	state         viewport.State
	hasState      bool
	notifications int
	onState       func(viewport.State)

	taps  *gesture.TapRecognizer
	wheel *gesture.WheelSession
	drag  gesture.Drag
}

// NewViewer creates a viewer for a width×height viewport and loads the
// configured scene. Extra options go to the controller; state changes are
// delivered through SetOnState.
func NewViewer(cfg config.Config, width, height float64, opts ...viewport.Option) (*Viewer, error) {
	v := &Viewer{
		Scroll: scroll.NewView(width, height),
		Queue:  loop.NewQueue(),
		cfg:    cfg,
		taps:   gesture.NewTapRecognizer(),
		wheel:  gesture.NewWheelSession(),
	}
	opts = append([]viewport.Option{
		viewport.WithInitialMode(cfg.InitialMode),
		viewport.WithMaxLayoutRetries(cfg.MaxLayoutRetries),
	}, opts...)
	opts = append(opts, viewport.WithOnStateChange(v.record))
	v.Controller = viewport.New(v.Scroll, v.Queue, opts...)
	v.Scroll.SetOnEvent(v.Controller.HandleEvent)

	if err := v.LoadScene(cfg.Scene); err != nil {
		return nil, err
	}
	return v, nil
}

// SetOnState sets the subscriber for delivered state changes.
func (v *Viewer) SetOnState(fn func(viewport.State)) { v.onState = fn }

func (v *Viewer) record(s viewport.State) {
	v.state, v.hasState = s, true
	v.notifications++
	appLogger.Printf("state: %s", s)
	if v.onState != nil {
		v.onState(s)
	}
}

// LoadScene builds the named scene from the configured size and seed and
// attaches it.
func (v *Viewer) LoadScene(name string) error {
	s, err := scene.ByName(name, v.cfg.ContentSize(), v.cfg.Seed)
	if err != nil {
		return fmt.Errorf("loading scene: %w", err)
	}
	v.cfg.Scene = name
	v.SetScene(s)
	return nil
}

// SetScene attaches s, replacing the current scene.
func (v *Viewer) SetScene(s *scene.Scene) {
	v.Scene = s
	v.Controller.SetContent(s)
}

// CycleScene loads the scene delta positions away in scene.Names order.
func (v *Viewer) CycleScene(delta int) error {
	names := scene.Names()
	i := 0
	for j, name := range names {
		if name == v.cfg.Scene {
			i = j
			break
		}
	}
	n := len(names)
	return v.LoadScene(names[((i+delta)%n+n)%n])
}

// Resize updates the viewport size and lets the controller lay out again.
func (v *Viewer) Resize(width, height float64) {
	v.Scroll.SetBounds(width, height)
	v.Controller.LayoutSubviews()
}

// Reset re-attaches the current scene, re-applying the initial mode.
func (v *Viewer) Reset() {
	if v.Scene != nil {
		v.Controller.SetContent(v.Scene)
	}
}

// ToggleInitialMode switches the initial mode between fit and fill and
// re-applies it.
func (v *Viewer) ToggleInitialMode() viewport.Mode {
	m := viewport.ModeFill
	if v.Controller.InitialMode() == viewport.ModeFill {
		m = viewport.ModeFit
	}
	v.Controller.SetInitialMode(m)
	v.Reset()
	return m
}

// Step runs one event-loop iteration: ends idle wheel zooms, runs the tasks
// posted since the last step and advances momentum and zoom transitions.
func (v *Viewer) Step(now time.Time, dt time.Duration) {
	if v.wheel.Expired(now) {
		v.Scroll.EndZoom()
	}
	v.Queue.Drain()
	v.Scroll.Tick(dt)
}

// State returns the most recently delivered state, if any.
func (v *Viewer) State() (viewport.State, bool) { return v.state, v.hasState }

// Notifications is the number of states delivered so far.
func (v *Viewer) Notifications() int { return v.notifications }

// StatusLine summarizes the viewer for a window title or status bar.
func (v *Viewer) StatusLine() string {
	name := "-"
	if v.Scene != nil {
		name = fmt.Sprintf("%s %s", v.Scene.Name, v.Scene.Size)
	}
	s, ok := v.State()
	if !ok {
		return fmt.Sprintf("%s | waiting for layout", name)
	}
	badges := ""
	if s.IsZooming {
		badges += " [zooming]"
	}
	if s.IsUserInteracting {
		badges += " [interacting]"
	}
	return fmt.Sprintf("%s | %s %.2fx (zoom %.3f) | offset %.0f,%.0f | initial %s%s",
		name, s.Mode, s.Scale, v.Scroll.ZoomScale(), s.Offset.X, s.Offset.Y, v.Controller.InitialMode(), badges)
}
