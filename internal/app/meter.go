package app

import (
	"time"

	"github.com/VividCortex/ewma"
)

// Meter smooths per-frame timings and the state notification rate for
// display.
type Meter struct {
	frameMs ewma.MovingAverage
	rate    ewma.MovingAverage

	windowStart time.Time
	windowCount int
}

func NewMeter(now time.Time) *Meter {
	return &Meter{
		frameMs:     ewma.NewMovingAverage(),
		rate:        ewma.NewMovingAverage(),
		windowStart: now,
	}
}

// Frame records the duration of one frame.
func (m *Meter) Frame(d time.Duration) { m.frameMs.Add(float64(d.Microseconds()) / 1000.0) }

// Notified records one delivered state change.
func (m *Meter) Notified() { m.windowCount++ }

// Sample folds the notifications counted since the last sample into the
// rate once at least a second has passed. It reports whether it did.
func (m *Meter) Sample(now time.Time) bool {
	elapsed := now.Sub(m.windowStart)
	if elapsed < time.Second {
		return false
	}
	m.rate.Add(float64(m.windowCount) / elapsed.Seconds())
	m.windowStart, m.windowCount = now, 0
	return true
}

func (m *Meter) FrameMs() float64 { return m.frameMs.Value() }

func (m *Meter) FPS() float64 {
	ms := m.frameMs.Value()
	if ms <= 0 {
		return 0
	}
	return 1000.0 / ms
}

// NotificationRate is the smoothed number of state notifications per second.
func (m *Meter) NotificationRate() float64 { return m.rate.Value() }
