// Package physics defines the rigid-body collaborator the lander simulation
// drives, and a Chipmunk2D-backed implementation of it.
package physics

import (
	"github.com/vovakirdan/tui-lander/internal/core"
)

// BodyID identifies a body owned by a World. The zero value is never issued.
type BodyID uint64

// NoBody is the zero BodyID.
const NoBody BodyID = 0

// Tag classifies a body for contact handling.
type Tag uint8

const (
	TagNone Tag = iota
	TagPlayer
	TagTerrain
	TagPad
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case TagPlayer:
		return "player"
	case TagTerrain:
		return "terrain"
	case TagPad:
		return "pad"
	default:
		return "none"
	}
}

// ContactPair names the two bodies of a collision event.
type ContactPair struct {
	A, B       BodyID
	TagA, TagB Tag
}

// Other returns the body paired with id and its tag.
// ok is false when id is not part of the pair.
func (p ContactPair) Other(id BodyID) (other BodyID, tag Tag, ok bool) {
	switch id {
	case p.A:
		return p.B, p.TagB, true
	case p.B:
		return p.A, p.TagA, true
	default:
		return NoBody, TagNone, false
	}
}

// ContactBatch holds one tick of collision events in the order they occurred.
type ContactBatch struct {
	Started []ContactPair
	Ended   []ContactPair
}

// Empty reports whether the batch holds no events.
func (b ContactBatch) Empty() bool {
	return len(b.Started) == 0 && len(b.Ended) == 0
}

// BodyState is the kinematic state of a body after the last step.
type BodyState struct {
	Position        core.Vec2
	Angle           float64
	Velocity        core.Vec2
	AngularVelocity float64
}

// BodySpec describes a dynamic box body.
type BodySpec struct {
	Position core.Vec2
	Velocity core.Vec2
	Angle    float64
	Width    float64
	Height   float64
	Mass     float64
	Friction float64
}

// World is the physics engine as seen by the simulation. Implementations
// buffer collision events during Step; Drain hands them over exactly once.
type World interface {
	SetGravity(g core.Vec2)

	SpawnPlayer(spec BodySpec) BodyID
	// SpawnTerrain creates a static polyline collider tagged TagTerrain.
	SpawnTerrain(points []core.Vec2, friction float64) BodyID
	// SpawnPad creates a static sensor box tagged TagPad.
	SpawnPad(center core.Vec2, width, height float64) BodyID
	Despawn(id BodyID)

	State(id BodyID) BodyState
	SetMass(id BodyID, mass float64)
	// ApplyForce applies a world-space force at the centre of mass for the next step.
	ApplyForce(id BodyID, force core.Vec2)
	// ApplyAngularAcceleration applies an angular acceleration (rad/s²) for the next step.
	ApplyAngularAcceleration(id BodyID, alpha float64)
	// Freeze zeroes the body's velocities and locks it in place.
	Freeze(id BodyID)

	Step(dt float64)
	Drain() ContactBatch
	// TotalNormalImpulse sums normal impulse magnitudes over every current
	// contact of the body, as resolved by the last step.
	TotalNormalImpulse(id BodyID) float64
}
