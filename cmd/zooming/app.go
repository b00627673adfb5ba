package main

import (
	"fmt"
	"log"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/zooming/internal/app"
	"github.com/irfansharif/zooming/internal/render"
	"github.com/irfansharif/zooming/internal/scene"
	"github.com/irfansharif/zooming/internal/viewport"
)

// App is the GLFW host: one window showing the Viewer's scene through the
// OpenGL renderer.
type App struct {
	Window   *glfw.Window
	Renderer *render.Renderer
	Viewer   *app.Viewer
	Meter    *app.Meter

	prepared *scene.Scene // scene currently uploaded to the renderer
}

// NewApp creates the renderer (the window's GL context must be current) and
// uploads the viewer's scene.
func NewApp(window *glfw.Window, viewer *app.Viewer) (*App, error) {
	renderer, err := render.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	a := &App{
		Window:   window,
		Renderer: renderer,
		Viewer:   viewer,
		Meter:    app.NewMeter(time.Now()),
	}
	viewer.SetOnState(func(viewport.State) { a.Meter.Notified() })
	if err := a.PrepareRenderer(); err != nil {
		return nil, err
	}
	return a, nil
}

// PrepareRenderer uploads the viewer's scene if it changed since the last
// upload.
func (a *App) PrepareRenderer() error {
	if a.Viewer.Scene == a.prepared {
		return nil // nothing to do
	}
	if err := a.Renderer.Prepare(a.Viewer.Scene); err != nil {
		return fmt.Errorf("preparing scene %q: %w", a.Viewer.Scene.Name, err)
	}
	a.prepared = a.Viewer.Scene
	return nil
}

// Frame advances the viewer by dt and draws it. The caller owns clearing and
// swapping buffers.
func (a *App) Frame(now time.Time, dt time.Duration) {
	a.Viewer.Step(now, dt)
	if err := a.PrepareRenderer(); err != nil {
		log.Printf("WARNING: %v", err)
	}
	w, h := a.Window.GetSize()
	a.Renderer.SetView(float64(w), float64(h), a.Viewer.Scroll.ContentToViewport())
	a.Renderer.Draw()
}

// Title is the window title: the viewer's status plus frame statistics.
func (a *App) Title() string {
	return fmt.Sprintf("Zooming | %s | %.1f FPS, %.2fms/frame, %d triangles, %.1f notifications/sec",
		a.Viewer.StatusLine(),
		a.Meter.FPS(),
		a.Meter.FrameMs(),
		a.Renderer.Stats().Triangles,
		a.Meter.NotificationRate(),
	)
}

func (a *App) Cleanup() { a.Renderer.Cleanup() }
