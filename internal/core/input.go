package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, Up - jump over ground obstacles
	ActionDuck           // Down - duck under flying obstacles
	ActionRestart        // R key - start a fresh session after game over
	ActionQuit           // Q, Ctrl+C - exit
	actionCount
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionDuck:
		return "Duck"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame is the input snapshot for one simulation tick.
// It is a plain value: the platform builds one per tick and the game only reads it,
// so changes to the live key state never leak into a tick in progress.
type InputFrame struct {
	held uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// InputOf creates a frame with the given actions held.
func InputOf(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a >= actionCount {
		return
	}
	f.held |= 1 << uint(a)
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	if a <= ActionNone || a >= actionCount {
		return false
	}
	return f.held&(1<<uint(a)) != 0
}

// Empty reports whether no action is held.
func (f InputFrame) Empty() bool {
	return f.held == 0
}

// Clear resets all actions.
func (f *InputFrame) Clear() {
	f.held = 0
}

// Actions lists the held actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}
