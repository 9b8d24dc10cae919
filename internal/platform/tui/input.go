package tui

import (
	"time"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// DefaultRepeatHold is how long an action stays held after an auto-repeat event.
const DefaultRepeatHold = 120 * time.Millisecond

// duckFirstHold is long enough to bridge a typical keyboard repeat delay.
const duckFirstHold = 500 * time.Millisecond

// Hold sets how long an action stays held after a key event.
type Hold struct {
	First  time.Duration // after a fresh press
	Repeat time.Duration // after a press that arrives while still held
}

// InputState emulates held keys. Terminals report presses and auto-repeats
// but never releases, so an action is held until its hold window passes
// without another press.
type InputState struct {
	holds    map[core.Action]Hold
	fallback Hold
	until    map[core.Action]time.Time
}

// NewInputState creates an input state. Duck gets a longer first hold so a
// held key does not flicker before the keyboard starts repeating; jump does
// not, so a single tap never turns into a second jump after landing.
func NewInputState(repeat time.Duration) *InputState {
	if repeat <= 0 {
		repeat = DefaultRepeatHold
	}
	return &InputState{
		holds: map[core.Action]Hold{
			core.ActionDuck: {First: max(duckFirstHold, repeat), Repeat: repeat},
		},
		fallback: Hold{First: repeat, Repeat: repeat},
		until:    make(map[core.Action]time.Time),
	}
}

// SetHold overrides the hold window for one action.
func (s *InputState) SetHold(a core.Action, h Hold) {
	s.holds[a] = h
}

func (s *InputState) hold(a core.Action) Hold {
	if h, ok := s.holds[a]; ok {
		return h
	}
	return s.fallback
}

// Press records a key event for a.
func (s *InputState) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	h := s.hold(a)
	window := h.First
	if s.Held(a, now) {
		window = h.Repeat
	}
	s.until[a] = now.Add(window)
}

// Release drops a immediately.
func (s *InputState) Release(a core.Action) {
	delete(s.until, a)
}

// Held reports whether a is held at now.
func (s *InputState) Held(a core.Action, now time.Time) bool {
	until, ok := s.until[a]
	return ok && now.Before(until)
}

// Snapshot returns the actions held at now. The frame is a value, so later
// key events never change a snapshot already handed to the engine.
func (s *InputState) Snapshot(now time.Time) core.InputFrame {
	frame := core.NewInputFrame()
	for a := range s.until {
		if s.Held(a, now) {
			frame.Set(a)
		}
	}
	return frame
}

// Reset releases everything.
func (s *InputState) Reset() {
	clear(s.until)
}
