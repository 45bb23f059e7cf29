package lander

import (
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/physics"
)

type fakeBody struct {
	tag    physics.Tag
	state  physics.BodyState
	mass   float64
	force  core.Vec2
	alpha  float64
	frozen bool
	points []core.Vec2
}

// fakeWorld is a scripted physics.World. Events queued with start/end are
// delivered by the next Step. With integrate set, Step runs explicit Euler
// on dynamic bodies.
type fakeWorld struct {
	gravity   core.Vec2
	bodies    map[physics.BodyID]*fakeBody
	nextID    physics.BodyID
	integrate bool

	pending physics.ContactBatch
	batch   physics.ContactBatch
	impulse float64
	steps   int

	forces []core.Vec2
	alphas []float64
	masses []float64
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{bodies: make(map[physics.BodyID]*fakeBody)}
}

func (w *fakeWorld) add(b *fakeBody) physics.BodyID {
	w.nextID++
	w.bodies[w.nextID] = b
	return w.nextID
}

func (w *fakeWorld) SetGravity(g core.Vec2) { w.gravity = g }

func (w *fakeWorld) SpawnPlayer(spec physics.BodySpec) physics.BodyID {
	return w.add(&fakeBody{
		tag:  physics.TagPlayer,
		mass: spec.Mass,
		state: physics.BodyState{
			Position: spec.Position,
			Velocity: spec.Velocity,
			Angle:    spec.Angle,
		},
	})
}

func (w *fakeWorld) SpawnTerrain(points []core.Vec2, _ float64) physics.BodyID {
	return w.add(&fakeBody{tag: physics.TagTerrain, points: points})
}

func (w *fakeWorld) SpawnPad(center core.Vec2, _, _ float64) physics.BodyID {
	return w.add(&fakeBody{tag: physics.TagPad, state: physics.BodyState{Position: center}})
}

func (w *fakeWorld) Despawn(id physics.BodyID) { delete(w.bodies, id) }

func (w *fakeWorld) State(id physics.BodyID) physics.BodyState {
	if b, ok := w.bodies[id]; ok {
		return b.state
	}
	return physics.BodyState{}
}

func (w *fakeWorld) SetMass(id physics.BodyID, mass float64) {
	if b, ok := w.bodies[id]; ok && !b.frozen {
		b.mass = mass
		w.masses = append(w.masses, mass)
	}
}

func (w *fakeWorld) ApplyForce(id physics.BodyID, f core.Vec2) {
	if b, ok := w.bodies[id]; ok && !b.frozen {
		b.force = b.force.Add(f)
		w.forces = append(w.forces, f)
	}
}

func (w *fakeWorld) ApplyAngularAcceleration(id physics.BodyID, alpha float64) {
	if b, ok := w.bodies[id]; ok && !b.frozen {
		b.alpha += alpha
		w.alphas = append(w.alphas, alpha)
	}
}

func (w *fakeWorld) Freeze(id physics.BodyID) {
	if b, ok := w.bodies[id]; ok {
		b.frozen = true
		b.state.Velocity = core.Vec2{}
		b.state.AngularVelocity = 0
		b.force = core.Vec2{}
		b.alpha = 0
	}
}

func (w *fakeWorld) Step(dt float64) {
	w.steps++
	w.batch = w.pending
	w.pending = physics.ContactBatch{}

	for _, b := range w.bodies {
		if b.tag != physics.TagPlayer || b.frozen {
			continue
		}
		if w.integrate {
			acc := w.gravity.Add(b.force.Scale(1 / b.mass))
			b.state.Velocity = b.state.Velocity.Add(acc.Scale(dt))
			b.state.Position = b.state.Position.Add(b.state.Velocity.Scale(dt))
			b.state.AngularVelocity += b.alpha * dt
			b.state.Angle += b.state.AngularVelocity * dt
		}
		b.force = core.Vec2{}
		b.alpha = 0
	}
}

func (w *fakeWorld) Drain() physics.ContactBatch {
	b := w.batch
	w.batch = physics.ContactBatch{}
	return b
}

func (w *fakeWorld) TotalNormalImpulse(physics.BodyID) float64 { return w.impulse }

// start queues a contact start between a and b for the next Step.
func (w *fakeWorld) start(a, b physics.BodyID) {
	w.pending.Started = append(w.pending.Started, w.pair(a, b))
}

// end queues a contact end between a and b for the next Step.
func (w *fakeWorld) end(a, b physics.BodyID) {
	w.pending.Ended = append(w.pending.Ended, w.pair(a, b))
}

func (w *fakeWorld) pair(a, b physics.BodyID) physics.ContactPair {
	p := physics.ContactPair{A: a, B: b}
	if ba, ok := w.bodies[a]; ok {
		p.TagA = ba.tag
	}
	if bb, ok := w.bodies[b]; ok {
		p.TagB = bb.tag
	}
	return p
}

// set overwrites a body's kinematic state.
func (w *fakeWorld) set(id physics.BodyID, st physics.BodyState) {
	w.bodies[id].state = st
}

// count returns the number of live bodies with a tag.
func (w *fakeWorld) count(tag physics.Tag) int {
	n := 0
	for _, b := range w.bodies {
		if b.tag == tag {
			n++
		}
	}
	return n
}
