package lander

import (
	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/physics"
)

// FlightState is the lander's engine/crash state.
type FlightState int

const (
	FlightIdle FlightState = iota
	FlightFiring
	FlightCrashed
)

// String returns the state name.
func (s FlightState) String() string {
	switch s {
	case FlightIdle:
		return "idle"
	case FlightFiring:
		return "firing"
	case FlightCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Player is the single lander of a level.
// Motion is read back from the physics world after every step.
type Player struct {
	Body            physics.BodyID
	Motion          physics.BodyState
	Fuel            uint32
	Mass            float64
	Flight          FlightState
	Grounded        bool
	ScoreMultiplier float64

	groundContacts int
}

func newPlayer(cfg config.FlightConfig) *Player {
	p := &Player{
		Flight:          FlightIdle,
		ScoreMultiplier: 1.0,
	}
	p.setFuel(cfg.MaxFuel, cfg)
	return p
}

// setFuel updates fuel and the derived mass together.
func (p *Player) setFuel(fuel uint32, cfg config.FlightConfig) {
	p.Fuel = fuel
	p.Mass = MassFor(fuel, cfg)
}

// MassFor returns dry mass plus the mass of the remaining fuel.
func MassFor(fuel uint32, cfg config.FlightConfig) float64 {
	return cfg.DryMass + float64(fuel)*cfg.FuelMassFactor
}

// Tilt returns the body angle from upright in (-π, π].
func (p *Player) Tilt() float64 {
	return core.NormalizeAngle(p.Motion.Angle)
}

// Speed returns the linear speed.
func (p *Player) Speed() float64 {
	return p.Motion.Velocity.Length()
}

// PlayerView is the read-only player state handed to collaborators each tick.
type PlayerView struct {
	Position        core.Vec2
	Velocity        core.Vec2
	Angle           float64
	Tilt            float64
	AngularVelocity float64
	Fuel            uint32
	Mass            float64
	Flight          FlightState
	Grounded        bool
	ScoreMultiplier float64
}

// View copies the player state.
func (p *Player) View() PlayerView {
	return PlayerView{
		Position:        p.Motion.Position,
		Velocity:        p.Motion.Velocity,
		Angle:           p.Motion.Angle,
		Tilt:            p.Tilt(),
		AngularVelocity: p.Motion.AngularVelocity,
		Fuel:            p.Fuel,
		Mass:            p.Mass,
		Flight:          p.Flight,
		Grounded:        p.Grounded,
		ScoreMultiplier: p.ScoreMultiplier,
	}
}
