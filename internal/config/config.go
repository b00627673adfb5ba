// Package config gathers the settings shared by the zooming hosts from
// command-line flags and ZOOMING_* environment variables. Environment
// variables win over flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/irfansharif/zooming/internal/geom"
	"github.com/irfansharif/zooming/internal/scene"
	"github.com/irfansharif/zooming/internal/viewport"
)

type Config struct {
	Scene            string
	ContentW         float64 // 0 means the scene's natural size
	ContentH         float64
	InitialMode      viewport.Mode
	Seed             int64
	MaxLayoutRetries int
	Width, Height    int // initial window size (GLFW host only)
}

func Default() Config {
	return Config{
		Scene:            "photo",
		InitialMode:      viewport.ModeFit,
		Seed:             time.Now().Unix(),
		MaxLayoutRetries: 120,
		Width:            1280,
		Height:           960,
	}
}

// ContentSize is the requested content size, zero if unset.
func (c Config) ContentSize() geom.Size { return geom.MakeSize(c.ContentW, c.ContentH) }

// Register binds the config to flags on fs.
func (c *Config) Register(fs *flag.FlagSet) {
	fs.StringVar(&c.Scene, "scene", c.Scene, fmt.Sprintf("scene to show (%s)", strings.Join(scene.Names(), ", ")))
	fs.Func("content", "content size as WxH (default: the scene's natural size)", func(s string) error {
		w, h, err := ParseSize(s)
		if err != nil {
			return err
		}
		c.ContentW, c.ContentH = w, h
		return nil
	})
	fs.Func("mode", "initial mode, fit or fill (default fit)", func(s string) error {
		m, err := viewport.ParseMode(s)
		if err != nil {
			return err
		}
		c.InitialMode = m
		return nil
	})
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for generated scenes")
	fs.IntVar(&c.MaxLayoutRetries, "layout-retries", c.MaxLayoutRetries, "event-loop ticks to wait for a positive layout")
	fs.IntVar(&c.Width, "width", c.Width, "initial window width")
	fs.IntVar(&c.Height, "height", c.Height, "initial window height")
}

// Parse registers the flags on a fresh FlagSet, parses args and then applies
// the environment.
func Parse(name string, args []string, getenv func(string) string) (Config, error) {
	c := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c.Register(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := c.ApplyEnv(getenv); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

// ApplyEnv overrides fields from ZOOMING_SCENE, ZOOMING_MODE, ZOOMING_SEED and
// ZOOMING_CONTENT. A nil getenv means os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv("ZOOMING_SCENE"); v != "" {
		c.Scene = v
	}
	if v := getenv("ZOOMING_MODE"); v != "" {
		m, err := viewport.ParseMode(v)
		if err != nil {
			return fmt.Errorf("invalid ZOOMING_MODE value '%s': %w", v, err)
		}
		c.InitialMode = m
	}
	if v := getenv("ZOOMING_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ZOOMING_SEED value '%s': %w", v, err)
		}
		c.Seed = seed
	}
	if v := getenv("ZOOMING_CONTENT"); v != "" {
		w, h, err := ParseSize(v)
		if err != nil {
			return fmt.Errorf("invalid ZOOMING_CONTENT value '%s': %w", v, err)
		}
		c.ContentW, c.ContentH = w, h
	}
	return nil
}

// ParseSize parses "WxH", e.g. "400x300".
func ParseSize(s string) (w, h float64, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q is not of the form WxH", s)
	}
	if w, err = strconv.ParseFloat(ws, 64); err != nil {
		return 0, 0, fmt.Errorf("width: %w", err)
	}
	if h, err = strconv.ParseFloat(hs, 64); err != nil {
		return 0, 0, fmt.Errorf("height: %w", err)
	}
	if !geom.MakeSize(w, h).Positive() {
		return 0, 0, fmt.Errorf("size %q must be positive", s)
	}
	return w, h, nil
}

func (c Config) Validate() error {
	if _, ok := scene.DefaultSize(c.Scene); !ok {
		return fmt.Errorf("unknown scene %q (want one of %s)", c.Scene, strings.Join(scene.Names(), ", "))
	}
	if (c.ContentW == 0) != (c.ContentH == 0) || c.ContentW < 0 || c.ContentH < 0 {
		return fmt.Errorf("content size %gx%g must be both positive or both unset", c.ContentW, c.ContentH)
	}
	if c.MaxLayoutRetries < 0 {
		return fmt.Errorf("layout retries must be non-negative, got %d", c.MaxLayoutRetries)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	}
	return nil
}
