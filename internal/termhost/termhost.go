// Package termhost shows a Viewer in a terminal using tcell. Each cell samples
// the scene at its center, the mouse wheel zooms around the pointer, dragging
// pans, a double click toggles fit/fill and the bottom row is a status line.
package termhost

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/irfansharif/zooming/internal/app"
	"github.com/irfansharif/zooming/internal/geom"
	"github.com/irfansharif/zooming/internal/viewport"
)

const (
	// Terminal cells are about twice as tall as wide; a cell covers
	// CellW×CellH viewport points.
	CellW = 4.0
	CellH = 8.0

	frameInterval = 16 * time.Millisecond // ~60 FPS
)

var (
	letterbox   = tcell.StyleDefault.Background(tcell.NewRGBColor(24, 24, 28))
	statusStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(200, 200, 200)).Background(tcell.NewRGBColor(40, 40, 60))
)

// Host drives a Viewer from a tcell screen.
type Host struct {
	screen tcell.Screen
	viewer *app.Viewer
	meter  *app.Meter

	buttonDown bool
	lastFrame  time.Time
	lastErr    error // from the last key action, shown in the status line
}

// New creates a host for an initialized screen and sizes the viewer to it.
func New(screen tcell.Screen, viewer *app.Viewer, now time.Time) *Host {
	h := &Host{screen: screen, viewer: viewer, meter: app.NewMeter(now), lastFrame: now}
	viewer.SetOnState(func(viewport.State) { h.meter.Notified() })
	h.resize()
	return h
}

// ViewportSize is the viewport (in points) for a cols×rows terminal; the last
// row is reserved for the status line.
func ViewportSize(cols, rows int) geom.Size {
	if rows > 0 {
		rows--
	}
	return geom.MakeSize(float64(cols)*CellW, float64(rows)*CellH)
}

// CellCenter is the viewport point at the center of cell (x, y).
func CellCenter(x, y int) geom.Point {
	return geom.MakePoint((float64(x)+0.5)*CellW, (float64(y)+0.5)*CellH)
}

func (h *Host) resize() {
	size := ViewportSize(h.screen.Size())
	h.viewer.Resize(size.W, size.H)
}

// HandleEvent applies one terminal event. It returns false once the user asked
// to quit.
func (h *Host) HandleEvent(now time.Time, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuit(ev) {
			return false
		}
		if a := KeyAction(ev); a != app.ActionNone {
			h.lastErr = h.viewer.Perform(now, a)
		}
	case *tcell.EventMouse:
		h.handleMouse(now, ev)
	case *tcell.EventResize:
		h.screen.Sync()
		h.resize()
	}
	return true
}

func (h *Host) handleMouse(now time.Time, ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := CellCenter(x, y)
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		h.viewer.Wheel(now, p, 1)
	case buttons&tcell.WheelDown != 0:
		h.viewer.Wheel(now, p, -1)
	case buttons&tcell.Button1 != 0:
		if !h.buttonDown {
			h.buttonDown = true
			h.viewer.Press(now, p)
		} else {
			h.viewer.Move(now, p)
		}
	case h.buttonDown:
		h.buttonDown = false
		h.viewer.Release(now, p)
	}
}

func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
		(ev.Key() == tcell.KeyRune && ev.Rune() == 'q')
}

// KeyAction maps a key to a viewer action.
func KeyAction(ev *tcell.EventKey) app.Action {
	switch ev.Key() {
	case tcell.KeyLeft:
		return app.ActionPanLeft
	case tcell.KeyRight:
		return app.ActionPanRight
	case tcell.KeyUp:
		return app.ActionPanUp
	case tcell.KeyDown:
		return app.ActionPanDown
	case tcell.KeyEnter:
		return app.ActionToggleCenter
	case tcell.KeyTab:
		return app.ActionNextScene
	case tcell.KeyBacktab:
		return app.ActionPrevScene
	case tcell.KeyRune:
	default:
		return app.ActionNone
	}

	switch ev.Rune() {
	case 'r':
		return app.ActionReset
	case 'm':
		return app.ActionToggleMode
	case 'n':
		return app.ActionNextScene
	case 'p':
		return app.ActionPrevScene
	case '+', '=':
		return app.ActionZoomIn
	case '-':
		return app.ActionZoomOut
	case 'h':
		return app.ActionPanLeft
	case 'l':
		return app.ActionPanRight
	case 'k':
		return app.ActionPanUp
	case 'j':
		return app.ActionPanDown
	case ' ', 'f':
		return app.ActionToggleCenter
	}
	return app.ActionNone
}

// Frame advances the viewer to now and redraws.
func (h *Host) Frame(now time.Time) {
	start := time.Now()
	dt := now.Sub(h.lastFrame)
	h.lastFrame = now
	h.viewer.Step(now, dt)
	h.Draw()
	h.meter.Frame(time.Since(start))
	h.meter.Sample(now)
}

// Draw rasterizes the scene through the viewport and writes the status line.
func (h *Host) Draw() {
	cols, rows := h.screen.Size()
	scroll, s := h.viewer.Scroll, h.viewer.Scene
	for y := 0; y < rows-1; y++ {
		for x := 0; x < cols; x++ {
			style := letterbox
			if s != nil {
				if c, ok := s.ColorAt(scroll.ContentPoint(CellCenter(x, y))); ok {
					style = tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
				}
			}
			h.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	if rows > 0 {
		h.drawStatus(rows-1, cols)
	}
	h.screen.Show()
}

func (h *Host) drawStatus(y, cols int) {
	text := fmt.Sprintf(" %s | %.1f notifications/sec", h.viewer.StatusLine(), h.meter.NotificationRate())
	if h.lastErr != nil {
		text = fmt.Sprintf(" error: %v", h.lastErr)
	}
	line := []rune(text)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		h.screen.SetContent(x, y, r, nil, statusStyle)
	}
}

// Run polls events and draws frames until the user quits.
func (h *Host) Run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			events <- ev
		}
	}()

	h.Frame(time.Now())
	for {
		select {
		case ev := <-events:
			if !h.HandleEvent(time.Now(), ev) {
				return
			}
		case now := <-ticker.C:
			h.Frame(now)
		}
	}
}
