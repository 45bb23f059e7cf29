package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Hold windows for terminals that only report key presses.
// InitialHold covers the OS delay before auto-repeat starts, RepeatHold
// the gap between repeats.
const (
	DefaultInitialHold = 550 * time.Millisecond
	DefaultRepeatHold  = 120 * time.Millisecond
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a lander action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "left", "a":
		return core.ActionRotateLeft, false
	case "right", "d":
		return core.ActionRotateRight, false
	case " ", "up", "w":
		return core.ActionFire, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionEscape, false
	case "p":
		return core.ActionPause, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// HoldTracker emulates held keys from a stream of presses.
// Continuous actions stay held until their hold window expires; a press
// inside the window is an auto-repeat and extends it by RepeatHold.
// Momentary actions are held for exactly one frame.
type HoldTracker struct {
	InitialHold time.Duration
	RepeatHold  time.Duration

	until  map[core.Action]time.Time
	pulses map[core.Action]bool
}

// NewHoldTracker creates a tracker with the given hold windows.
func NewHoldTracker(initial, repeat time.Duration) *HoldTracker {
	if initial <= 0 {
		initial = DefaultInitialHold
	}
	if repeat <= 0 {
		repeat = DefaultRepeatHold
	}
	return &HoldTracker{
		InitialHold: initial,
		RepeatHold:  repeat,
		until:       make(map[core.Action]time.Time),
		pulses:      make(map[core.Action]bool),
	}
}

// continuous reports whether an action is meant to be held down.
func continuous(a core.Action) bool {
	switch a {
	case core.ActionRotateLeft, core.ActionRotateRight, core.ActionFire:
		return true
	}
	return false
}

// Press registers a key press at now.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	if a == core.ActionNone || a == core.ActionQuit {
		return
	}
	if !continuous(a) {
		h.pulses[a] = true
		return
	}
	if until, ok := h.until[a]; ok && now.Before(until) {
		h.until[a] = now.Add(h.RepeatHold)
		return
	}
	h.until[a] = now.Add(h.InitialHold)
}

// Frame returns the actions held at now and consumes momentary presses.
func (h *HoldTracker) Frame(now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	for a, until := range h.until {
		if now.Before(until) {
			f.Set(a)
		} else {
			delete(h.until, a)
		}
	}
	for a := range h.pulses {
		f.Set(a)
		delete(h.pulses, a)
	}
	return f
}

// Release drops every held action.
func (h *HoldTracker) Release() {
	clear(h.until)
	clear(h.pulses)
}
