package viewport

import (
	"testing"
	"time"

	"github.com/irfansharif/zooming/internal/geom"
)

func newTestNotifier() (*Notifier, *fakeClock, *recorder) {
	clock := newFakeClock()
	rec := &recorder{}
	return NewNotifier(clock, rec.record), clock, rec
}

func TestNotifierFirstAlwaysFires(t *testing.T) {
	n, _, rec := newTestNotifier()
	if !n.Consider(State{Scale: 1, IsUserInteracting: true}, false) {
		t.Fatal("the first candidate must always be delivered")
	}
	if len(rec.states) != 1 {
		t.Fatalf("expected one delivery, got %d", len(rec.states))
	}
}

func TestNotifierDedup(t *testing.T) {
	base := State{Scale: 1, Offset: geom.MakePoint(10, 10)}
	for _, tc := range []struct {
		name   string
		mutate func(State) State
		want   bool
	}{
		{"identical", func(s State) State { return s }, false},
		{"offset below threshold", func(s State) State { s.Offset.X += 0.0005; return s }, false},
		{"offset above threshold", func(s State) State { s.Offset.X += 0.002; return s }, true},
		{"offset y above threshold", func(s State) State { s.Offset.Y -= 0.002; return s }, true},
		{"scale below threshold", func(s State) State { s.Scale += 0.0009; return s }, false},
		{"scale above threshold", func(s State) State { s.Scale += 0.0011; return s }, true},
		{"mode", func(s State) State { s.Mode = ModeFill; return s }, true},
		{"zooming", func(s State) State { s.IsZooming = true; return s }, true},
		{"interacting", func(s State) State { s.IsUserInteracting = true; return s }, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			n, clock, rec := newTestNotifier()
			n.Consider(base, false)
			clock.Advance(time.Second)
			if got := n.Consider(tc.mutate(base), false); got != tc.want {
				t.Errorf("Consider = %t, want %t", got, tc.want)
			}
			// Forcing doesn't bypass the dedup filter.
			if !tc.want && n.Consider(tc.mutate(base), true) {
				t.Error("forced duplicate must still be suppressed")
			}
			if wantLen := map[bool]int{true: 2, false: 1}[tc.want]; len(rec.states) != wantLen {
				t.Errorf("expected %d deliveries, got %d", wantLen, len(rec.states))
			}
		})
	}
}

func TestNotifierThrottle(t *testing.T) {
	n, clock, rec := newTestNotifier()
	s := State{Scale: 1, IsUserInteracting: true}

	n.Consider(s, false)
	clock.Advance(5 * time.Millisecond)
	s.Scale = 1.1
	if n.Consider(s, false) {
		t.Error("a non-forced candidate 5ms after the last delivery must be throttled")
	}

	clock.Advance(time.Millisecond)
	s.Scale = 1.2
	if !n.Consider(s, true) {
		t.Error("a forced candidate must be delivered regardless of timing")
	}

	clock.Advance(time.Second / 60)
	s.Scale = 1.3
	if !n.Consider(s, false) {
		t.Error("a candidate one refresh interval later must be delivered")
	}

	if len(rec.states) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(rec.states))
	}
	if st := n.Stats(); st.Throttled != 1 || st.Delivered != 3 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestNotifierForcedAfterNonForced(t *testing.T) {
	n, clock, _ := newTestNotifier()
	n.Consider(State{Scale: 1, IsUserInteracting: true}, false)
	clock.Advance(time.Millisecond)
	if !n.Consider(State{Scale: 1, IsUserInteracting: false}, true) {
		t.Error("forced candidate 1ms after a non-forced delivery must be delivered")
	}
}

func TestNotifierNonInteractiveBypassesThrottle(t *testing.T) {
	n, clock, _ := newTestNotifier()
	n.Consider(State{Scale: 1}, false)
	clock.Advance(time.Millisecond)
	if !n.Consider(State{Scale: 2}, false) {
		t.Error("candidates outside of an interaction are never throttled")
	}
}

func TestNotifierThrottledDropsRatherThanQueues(t *testing.T) {
	n, clock, rec := newTestNotifier()
	s := State{Scale: 1, IsUserInteracting: true}
	n.Consider(s, false)
	for i := 1; i <= 3; i++ {
		clock.Advance(time.Millisecond)
		s.Scale = 1 + float64(i)/10
		n.Consider(s, false)
	}
	clock.Advance(20 * time.Millisecond)
	s.Scale = 2
	n.Consider(s, false)

	if len(rec.states) != 2 {
		t.Fatalf("expected the throttled candidates to be dropped, got %v", rec.states)
	}
	if rec.states[1].Scale != 2 {
		t.Errorf("expected the latest value to be delivered, got %v", rec.states[1])
	}
}

func TestNotifierReset(t *testing.T) {
	n, _, rec := newTestNotifier()
	s := State{Scale: 1}
	n.Consider(s, true)
	n.Reset()
	if _, ok := n.Last(); ok {
		t.Fatal("expected no last state after reset")
	}
	if !n.Consider(s, true) {
		t.Error("identical state must be delivered after reset")
	}
	if len(rec.states) != 2 {
		t.Errorf("expected 2 deliveries, got %d", len(rec.states))
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeFit, ModeFill} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("cover"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
