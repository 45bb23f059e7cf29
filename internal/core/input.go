package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionRotateLeft         // Left, A - counter-clockwise torque
	ActionRotateRight        // Right, D - clockwise torque
	ActionFire               // Space, Up, W - main engine
	ActionConfirm            // Enter - continue from a terminal screen
	ActionEscape             // Esc, B - leave the level
	ActionPause              // P - pause/unpause
	ActionQuit               // Q, Ctrl+C - exit the program
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRotateLeft:
		return "RotateLeft"
	case ActionRotateRight:
		return "RotateRight"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionEscape:
		return "Escape"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// recordedActions are the actions that fit in a replay frame bitmask.
var recordedActions = []Action{
	ActionRotateLeft,
	ActionRotateRight,
	ActionFire,
	ActionConfirm,
	ActionEscape,
	ActionPause,
}

// InputFrame is the held state of every action for one simulation tick.
// Edges (just pressed / just released) are derived by the consumer by
// comparing consecutive frames.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held in this frame.
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

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		if v {
			clone.Actions[k] = true
		}
	}
	return clone
}

// Bits packs the frame into a bitmask for compact recording.
func (f InputFrame) Bits() uint8 {
	var b uint8
	for i, a := range recordedActions {
		if f.Has(a) {
			b |= 1 << uint(i)
		}
	}
	return b
}

// FrameFromBits rebuilds a frame from a Bits() mask.
func FrameFromBits(b uint8) InputFrame {
	f := NewInputFrame()
	for i, a := range recordedActions {
		if b&(1<<uint(i)) != 0 {
			f.Set(a)
		}
	}
	return f
}

// ButtonEdges describes one action's state transition between two frames.
type ButtonEdges struct {
	Held         bool
	JustPressed  bool
	JustReleased bool
}

// Edges compares the previous and current frame for an action.
func Edges(prev, cur InputFrame, a Action) ButtonEdges {
	was, is := prev.Has(a), cur.Has(a)
	return ButtonEdges{
		Held:         is,
		JustPressed:  is && !was,
		JustReleased: was && !is,
	}
}
