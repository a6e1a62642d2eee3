package thumbstick

import "time"

// throttleGate admits at most one event per interval. It only compares
// timestamps; nothing is scheduled and dropped events are never replayed.
type throttleGate struct {
	interval time.Duration
	last     time.Time
}

// allow reports whether an event at now passes the gate and, if so, stamps it.
func (g *throttleGate) allow(now time.Time) bool {
	if !g.last.IsZero() && now.Sub(g.last) < g.interval {
		return false
	}
	g.last = now
	return true
}

// stamp records now as the last admitted event without checking the gate.
func (g *throttleGate) stamp(now time.Time) {
	g.last = now
}
