package main

import (
	"log"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/zooming/internal/app"
	"github.com/irfansharif/zooming/internal/geom"
)

// EventHandlers translates GLFW callbacks into viewer input.
type EventHandlers struct {
	application *App

	leftHeld bool
}

// NewEventHandlers creates a new event handlers manager.
func NewEventHandlers(application *App) *EventHandlers {
	eh := &EventHandlers{application: application}
	eh.SetupCallbacks(application.Window)
	return eh
}

// SetupCallbacks configures all GLFW event callbacks.
func (eh *EventHandlers) SetupCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(wnd *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleKey(wnd, key, action, mods)
	})
	window.SetMouseButtonCallback(func(wnd *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleMouseButton(button, action) // press/release: taps and drags
	})
	window.SetCursorPosCallback(func(wnd *glfw.Window, xpos, ypos float64) {
		eh.handleCursorPos(xpos, ypos) // for dragging
	})
	window.SetScrollCallback(func(wnd *glfw.Window, _, zoomDelta float64) {
		eh.application.Viewer.Wheel(time.Now(), eh.cursor(), zoomDelta) // for zooming
	})
	window.SetSizeCallback(func(wnd *glfw.Window, newW, newH int) {
		eh.application.Viewer.Resize(float64(newW), float64(newH)) // for window resize
	})
}

// cursor returns the cursor position in viewport points (window coordinates,
// not framebuffer pixels).
func (eh *EventHandlers) cursor() geom.Point {
	x, y := eh.application.Window.GetCursorPos()
	return geom.MakePoint(x, y)
}

// handleKey handles keyboard input events. Held keys repeat their action.
func (eh *EventHandlers) handleKey(wnd *glfw.Window, key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Release {
		return // nothing to do
	}
	if key == glfw.KeyEscape || key == glfw.KeyQ {
		wnd.SetShouldClose(true)
		return
	}

	a := keyAction(key, mods)
	if a == app.ActionNone {
		return
	}
	if err := eh.application.Viewer.Perform(time.Now(), a); err != nil {
		log.Printf("WARNING: %v", err)
	}
}

func keyAction(key glfw.Key, mods glfw.ModifierKey) app.Action {
	switch key {
	case glfw.KeyR:
		return app.ActionReset
	case glfw.KeyM:
		return app.ActionToggleMode
	case glfw.KeyTab:
		if (mods & glfw.ModShift) != 0 {
			return app.ActionPrevScene
		}
		return app.ActionNextScene
	case glfw.KeyN:
		return app.ActionNextScene
	case glfw.KeyP:
		return app.ActionPrevScene
	case glfw.KeyEqual:
		return app.ActionZoomIn
	case glfw.KeyMinus:
		return app.ActionZoomOut
	case glfw.KeyH, glfw.KeyLeft:
		return app.ActionPanLeft
	case glfw.KeyL, glfw.KeyRight:
		return app.ActionPanRight
	case glfw.KeyK, glfw.KeyUp:
		return app.ActionPanUp
	case glfw.KeyJ, glfw.KeyDown:
		return app.ActionPanDown
	case glfw.KeySpace, glfw.KeyF:
		return app.ActionToggleCenter
	}
	return app.ActionNone
}

// handleMouseButton handles left button presses and releases.
func (eh *EventHandlers) handleMouseButton(button glfw.MouseButton, action glfw.Action) {
	if button != glfw.MouseButtonLeft {
		return // nothing to do
	}

	viewer := eh.application.Viewer
	switch action {
	case glfw.Press:
		eh.leftHeld = true
		viewer.Press(time.Now(), eh.cursor())
	case glfw.Release:
		eh.leftHeld = false
		viewer.Release(time.Now(), eh.cursor())
	}
}

// handleCursorPos drags the content while the left button is held.
func (eh *EventHandlers) handleCursorPos(xpos, ypos float64) {
	if !eh.leftHeld {
		return
	}
	eh.application.Viewer.Move(time.Now(), geom.MakePoint(xpos, ypos))
}
