package core

// Action represents a semantic game action, abstracted from physical key presses
// and pointer events.
type Action int

const (
	ActionNone    Action = iota
	ActionFlap           // Space, Up, click on the playfield
	ActionRestart        // R - play again after game over
	ActionMenu           // M - quit to the main menu
	ActionStore          // S - open the store from the main menu
	ActionTip            // T - tip the developer from the main menu
	ActionLogin          // L - sign in to the commerce service
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionRestart:
		return "Restart"
	case ActionMenu:
		return "Menu"
	case ActionStore:
		return "Store"
	case ActionTip:
		return "Tip"
	case ActionLogin:
		return "Login"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
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

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
