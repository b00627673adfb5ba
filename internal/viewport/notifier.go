package viewport

import "time"

const (
	stateDiffThreshold = 0.001            // smallest scale/offset change worth reporting
	throttleInterval   = time.Second / 60 // one continuous update per display refresh
)

// Clock abstracts time so throttling can be tested deterministically.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Notifier decides whether and when a State is forwarded to the subscriber.
//
// Snapshots that don't differ meaningfully from the last delivered one are
// dropped. Forced snapshots (gesture boundaries) and snapshots taken while the
// user isn't interacting are delivered immediately; continuous interactive
// snapshots are rate limited to throttleInterval and dropped (not queued) when
// they arrive too early.
type Notifier struct {
	clock    Clock
	interval time.Duration
	onChange func(State)

	last     State
	hasLast  bool
	lastTime time.Time

	delivered, suppressed, throttled int
}

// NewNotifier returns a notifier delivering to onChange (which may be nil).
func NewNotifier(clock Clock, onChange func(State)) *Notifier {
	if clock == nil {
		clock = realClock{}
	}
	return &Notifier{
		clock:    clock,
		interval: throttleInterval,
		onChange: onChange,
	}
}

// SetOnChange replaces the subscriber.
func (n *Notifier) SetOnChange(fn func(State)) { n.onChange = fn }

// Reset forgets the last delivered state so the next candidate always fires.
func (n *Notifier) Reset() {
	n.last, n.hasLast = State{}, false
}

// Last returns the last delivered state, if any.
func (n *Notifier) Last() (State, bool) { return n.last, n.hasLast }

// Consider forwards candidate to the subscriber if the dedup and throttle
// policy allows it, returning whether it was delivered.
func (n *Notifier) Consider(candidate State, forced bool) bool {
	if n.hasLast && !candidate.Differs(n.last, stateDiffThreshold) {
		n.suppressed++
		return false
	}

	now := n.clock.Now()
	if !forced && candidate.IsUserInteracting {
		if now.Sub(n.lastTime) < n.interval {
			n.throttled++
			return false // dropped; the next qualifying update carries the latest value
		}
	}

	n.lastTime = now
	n.last, n.hasLast = candidate, true
	n.delivered++
	if n.onChange != nil {
		n.onChange(candidate)
	}
	return true
}

// NotifierStats counts what happened to considered candidates.
type NotifierStats struct {
	Delivered  int
	Suppressed int // identical to the last delivered state
	Throttled  int // arrived within the throttle interval
}

func (n *Notifier) Stats() NotifierStats {
	return NotifierStats{Delivered: n.delivered, Suppressed: n.suppressed, Throttled: n.throttled}
}
