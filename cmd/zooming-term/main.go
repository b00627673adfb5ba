package main

import (
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/irfansharif/zooming/internal/app"
	"github.com/irfansharif/zooming/internal/config"
	"github.com/irfansharif/zooming/internal/termhost"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	cfg, err := config.Parse(os.Args[0], os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}
	screen.EnableMouse()

	viewer, err := app.NewViewer(cfg, 0, 0) // sized by the host
	if err != nil {
		screen.Fini()
		log.Fatalf("Failed to create viewer: %v", err)
	}

	termhost.New(screen, viewer, time.Now()).Run()
	screen.Fini()
}
