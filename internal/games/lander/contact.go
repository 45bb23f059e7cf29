package lander

import (
	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/physics"
)

// PadIndex resolves a pad sensor to its score multiplier.
type PadIndex interface {
	PadMultiplier(sensor physics.BodyID) (float64, bool)
}

// ContactOutcome summarises what one tick of contacts did to the player.
type ContactOutcome struct {
	Crash     bool    // A terrain contact started with an impulse above the crash threshold
	Impulse   float64 // Largest impulse sum sampled on a terrain start this tick
	Touchdown bool    // The player went from airborne to grounded
}

// ContactClassifier turns collision events into player state.
type ContactClassifier struct {
	mode         string
	crashImpulse float64
}

// NewContactClassifier creates a classifier for the physics and landing settings.
func NewContactClassifier(physicsCfg config.PhysicsConfig, landing config.LandingConfig) ContactClassifier {
	mode := physicsCfg.GroundedMode
	if mode == "" {
		mode = config.GroundedFlag
	}
	return ContactClassifier{mode: mode, crashImpulse: landing.CrashImpulse}
}

// Classify applies a drained batch to the player. End events are applied
// before start events. Pairs that do not involve the player are ignored.
func (c ContactClassifier) Classify(p *Player, batch physics.ContactBatch, w physics.World, pads PadIndex) ContactOutcome {
	var out ContactOutcome
	wasGrounded := p.Grounded

	for _, pair := range batch.Ended {
		other, tag, ok := pair.Other(p.Body)
		if !ok {
			continue
		}
		switch tag {
		case physics.TagTerrain:
			c.leaveGround(p)
		case physics.TagPad:
			if _, known := pads.PadMultiplier(other); known {
				p.ScoreMultiplier = 1.0
			}
		}
	}

	for _, pair := range batch.Started {
		other, tag, ok := pair.Other(p.Body)
		if !ok {
			continue
		}
		switch tag {
		case physics.TagTerrain:
			c.touchGround(p)
			impulse := w.TotalNormalImpulse(p.Body)
			if impulse > out.Impulse {
				out.Impulse = impulse
			}
			if impulse > c.crashImpulse {
				out.Crash = true
			}
		case physics.TagPad:
			if mult, known := pads.PadMultiplier(other); known {
				p.ScoreMultiplier = mult
			}
		}
	}

	out.Touchdown = !wasGrounded && p.Grounded
	return out
}

func (c ContactClassifier) touchGround(p *Player) {
	if c.mode == config.GroundedCounted {
		p.groundContacts++
		p.Grounded = p.groundContacts > 0
		return
	}
	p.Grounded = true
}

func (c ContactClassifier) leaveGround(p *Player) {
	if c.mode == config.GroundedCounted {
		if p.groundContacts > 0 {
			p.groundContacts--
		}
		p.Grounded = p.groundContacts > 0
		return
	}
	p.Grounded = false
}
