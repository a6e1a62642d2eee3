package ebitenstick

import "github.com/phanxgames/thumbstick"

// injectedPointer is one queued synthetic mouse sample, in screen
// coordinates. It goes through the same path as a real cursor sample.
type injectedPointer struct {
	at   thumbstick.Vec2
	held bool
}

func (s *Source) inject(x, y float64, held bool) {
	s.injectQueue = append(s.injectQueue, injectedPointer{at: thumbstick.Vec2{X: x, Y: y}, held: held})
}

// InjectPress queues a left-button press at (x, y). Each queued sample
// replaces the real mouse for one Update.
func (s *Source) InjectPress(x, y float64) { s.inject(x, y, true) }

// InjectMove queues a cursor sample with the button still held.
func (s *Source) InjectMove(x, y float64) { s.inject(x, y, true) }

// InjectRelease queues a button release at (x, y).
func (s *Source) InjectRelease(x, y float64) { s.inject(x, y, false) }

// InjectDrag queues a press at from, evenly spaced moves and a release at
// to, one sample per frame. frames is clamped to at least 2.
func (s *Source) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 2)
	from := thumbstick.Vec2{X: fromX, Y: fromY}
	step := thumbstick.Vec2{X: toX - fromX, Y: toY - fromY}
	s.InjectPress(fromX, fromY)
	for i := 1; i < frames-1; i++ {
		t := float64(i) / float64(frames-1)
		p := from.Add(thumbstick.Vec2{X: step.X * t, Y: step.Y * t})
		s.InjectMove(p.X, p.Y)
	}
	s.InjectRelease(toX, toY)
}

// Pending returns the number of queued samples not yet replayed.
func (s *Source) Pending() int {
	return len(s.injectQueue)
}

// replayInjected feeds the oldest queued sample to the mouse state machine
// and reports whether there was one.
func (s *Source) replayInjected() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	p := s.injectQueue[0]
	s.injectQueue = s.injectQueue[1:]
	if len(s.injectQueue) == 0 {
		s.injectQueue = nil
	}
	s.processMouse(p.at.X, p.at.Y, p.held)
	return true
}
