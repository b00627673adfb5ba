package main

import (
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/zooming/internal/app"
	"github.com/irfansharif/zooming/internal/config"
)

const logFlags = log.Ltime | log.Lshortfile

var runtimeLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	// OpenGL contexts are tied to specific OS threads - let's pin to just one.
	runtime.LockOSThread()
	log.SetFlags(logFlags)

	if os.Getenv("ZOOMING_DEBUG_RUNTIME") == "1" {
		runtimeLogger = log.New(os.Stdout, "[runtime] ", log.Ltime|log.Lmsgprefix)
	}
}

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfw.Terminate()

	// Configure GLFW window hints - use OpenGL 4.1.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, "Zooming", nil, nil)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}

	w, h := window.GetSize()
	viewer, err := app.NewViewer(cfg, float64(w), float64(h))
	if err != nil {
		log.Fatalf("Failed to create viewer: %v", err)
	}
	application, err := NewApp(window, viewer)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}
	defer application.Cleanup()

	NewEventHandlers(application)

	lastFrame, lastTitle := time.Now(), time.Now()

	// Main loop.
	for !application.Window.ShouldClose() {
		frameStart := time.Now()

		fw, fh := application.Window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fw), int32(fh))
		gl.ClearColor(0.1, 0.1, 0.11, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		application.Frame(frameStart, frameStart.Sub(lastFrame))
		lastFrame = frameStart

		application.Window.SwapBuffers()
		glfw.PollEvents()

		application.Meter.Frame(time.Since(frameStart))
		if frameStart.Sub(lastTitle) >= time.Second/4 {
			application.Window.SetTitle(application.Title())
			lastTitle = frameStart
		}

		if application.Meter.Sample(frameStart) {
			stats := application.Renderer.Stats()
			state, _ := application.Viewer.State()
			runtimeLogger.Println("=== Viewport statistics ===")
			runtimeLogger.Printf("Frame rate:     %.1f FPS (%.2f ms/frame)", application.Meter.FPS(), application.Meter.FrameMs())
			runtimeLogger.Printf("Scene:          %d triangles, %.2f MiB GPU", stats.Triangles, float64(stats.GPUBytes)/(1024.0*1024.0))
			runtimeLogger.Printf("Render time:    %.2f µs (last draw), %.2f ms (last prepare)", stats.LastDrawTimeUs, stats.LastPrepareTimeMs)
			runtimeLogger.Printf("State:          %s", state)
			runtimeLogger.Printf("Notifications:  %d delivered, %.1f/sec", application.Viewer.Notifications(), application.Meter.NotificationRate())
			runtimeLogger.Println("===========================")
		}
	}
}
