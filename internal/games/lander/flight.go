package lander

import (
	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/physics"
)

// Controls holds the per-tick edges of every action the level reads.
type Controls struct {
	RotateLeft  core.ButtonEdges
	RotateRight core.ButtonEdges
	Fire        core.ButtonEdges
	Confirm     core.ButtonEdges
	Escape      core.ButtonEdges
}

// ControlsFrom derives edges from two consecutive input frames.
func ControlsFrom(prev, cur core.InputFrame) Controls {
	return Controls{
		RotateLeft:  core.Edges(prev, cur, core.ActionRotateLeft),
		RotateRight: core.Edges(prev, cur, core.ActionRotateRight),
		Fire:        core.Edges(prev, cur, core.ActionFire),
		Confirm:     core.Edges(prev, cur, core.ActionConfirm),
		Escape:      core.Edges(prev, cur, core.ActionEscape),
	}
}

// FlightDynamics turns input into torque, thrust and fuel burn.
type FlightDynamics struct {
	cfg config.FlightConfig
}

// NewFlightDynamics creates the dynamics for a flight configuration.
func NewFlightDynamics(cfg config.FlightConfig) FlightDynamics {
	return FlightDynamics{cfg: cfg}
}

// Apply runs one tick of input on the player. It must only be called while
// the level is running. The return value is true when escape was pressed.
func (d FlightDynamics) Apply(p *Player, w physics.World, c Controls) (exitRequested bool) {
	if c.RotateLeft.Held {
		w.ApplyAngularAcceleration(p.Body, d.cfg.AngularAcceleration)
	}
	if c.RotateRight.Held {
		w.ApplyAngularAcceleration(p.Body, -d.cfg.AngularAcceleration)
	}

	if p.Fuel > 0 {
		if c.Fire.JustPressed {
			p.Flight = FlightFiring
		}
		if c.Fire.Held {
			thrust := core.Up.Rotate(p.Motion.Angle).Scale(d.cfg.MainEngineForce)
			w.ApplyForce(p.Body, thrust)

			p.setFuel(saturatingSub(p.Fuel, d.cfg.FuelPerTick), d.cfg)
			w.SetMass(p.Body, p.Mass)
		}
	}

	if (c.Fire.JustReleased && p.Flight == FlightFiring) || p.Fuel == 0 {
		p.Flight = FlightIdle
	}

	return c.Escape.JustPressed
}

func saturatingSub(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}
