package lander

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-lander/internal/config"
)

// Phase is the level phase. Win and Lose are terminal.
type Phase int

const (
	PhaseRunning Phase = iota
	PhaseWin
	PhaseLose
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseWin:
		return "win"
	case PhaseLose:
		return "lose"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the level.
func (p Phase) Terminal() bool {
	return p == PhaseWin || p == PhaseLose
}

// WinTimer debounces a landing. It starts paused.
type WinTimer struct {
	Elapsed time.Duration
	Paused  bool
}

// NewWinTimer returns a paused timer.
func NewWinTimer() WinTimer {
	return WinTimer{Paused: true}
}

// Update advances the timer by dt. ok says whether every landing condition
// holds this tick. It returns true once the timer reaches target.
func (t *WinTimer) Update(ok bool, dt, target time.Duration) bool {
	if t.Paused && ok {
		t.Elapsed = 0
		t.Paused = false
	}
	if !t.Paused && !ok {
		t.Paused = true
	}
	if t.Paused {
		return false
	}
	t.Elapsed += dt
	return t.Elapsed >= target
}

// LandingConditions checks the four landing conditions against a player.
type LandingConditions struct {
	MaxSpeed        float64
	MaxAngularSpeed float64
	MaxTilt         float64
}

// NewLandingConditions copies the thresholds from the landing settings.
func NewLandingConditions(cfg config.LandingConfig) LandingConditions {
	return LandingConditions{
		MaxSpeed:        cfg.MaxSpeed,
		MaxAngularSpeed: cfg.MaxAngularSpeed,
		MaxTilt:         cfg.MaxTilt,
	}
}

// Met reports whether the player is grounded, slow, steady and upright.
func (c LandingConditions) Met(p *Player) bool {
	return p.Grounded &&
		p.Speed() < c.MaxSpeed &&
		math.Abs(p.Motion.AngularVelocity) < c.MaxAngularSpeed &&
		math.Abs(p.Tilt()) < c.MaxTilt
}

// PhaseMachine owns the level phase and its win timer.
type PhaseMachine struct {
	phase      Phase
	timer      WinTimer
	conditions LandingConditions
	winAfter   time.Duration
}

// NewPhaseMachine creates a running machine.
func NewPhaseMachine(cfg config.LandingConfig) *PhaseMachine {
	m := &PhaseMachine{
		conditions: NewLandingConditions(cfg),
		winAfter:   time.Duration(cfg.WinSeconds * float64(time.Second)),
	}
	m.Reset()
	return m
}

// Reset puts the machine back into Running with a paused timer.
func (m *PhaseMachine) Reset() {
	m.phase = PhaseRunning
	m.timer = NewWinTimer()
}

// Phase returns the current phase.
func (m *PhaseMachine) Phase() Phase {
	return m.phase
}

// Timer returns a copy of the win timer.
func (m *PhaseMachine) Timer() WinTimer {
	return m.timer
}

// Lose moves Running to Lose. It reports whether the phase changed.
func (m *PhaseMachine) Lose() bool {
	if m.phase != PhaseRunning {
		return false
	}
	m.phase = PhaseLose
	return true
}

// Tick runs the win timer for one step. It reports whether the phase became Win.
func (m *PhaseMachine) Tick(p *Player, dt time.Duration) bool {
	if m.phase != PhaseRunning {
		return false
	}
	if m.timer.Update(m.conditions.Met(p), dt, m.winAfter) {
		m.phase = PhaseWin
		return true
	}
	return false
}
