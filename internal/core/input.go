package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone          Action = iota
	ActionJump                 // Space, Up, W - start, jump, or restart after game over
	ActionDuck                 // Down, S - crouch
	ActionConfirm              // Enter - same as jump on the game screen
	ActionBack                 // B, Escape - go back to menu
	ActionRestart              // R - return to the ready screen
	ActionQuit                 // Q, Ctrl+C - exit game/session
	ActionPause                // P, Escape - pause/unpause
	ActionNextCharacter        // Right, L - next skin (ready/over only)
	ActionPrevCharacter        // Left, H - previous skin (ready/over only)
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
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionNextCharacter:
		return "NextCharacter"
	case ActionPrevCharacter:
		return "PrevCharacter"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered between two host frames.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
