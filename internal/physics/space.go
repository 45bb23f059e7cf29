package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Collision types registered with the cp space.
const (
	collisionPlayer cp.CollisionType = iota + 1
	collisionTerrain
	collisionPad
)

const terrainRadius = 0.5

// shapeRef is stored in cp.Shape.UserData so callbacks can name bodies
// even after the owning record has been despawned.
type shapeRef struct {
	id  BodyID
	tag Tag
}

// pairKey identifies a body pair independent of order.
type pairKey struct{ lo, hi BodyID }

func keyOf(p ContactPair) pairKey {
	if p.A < p.B {
		return pairKey{p.A, p.B}
	}
	return pairKey{p.B, p.A}
}

type entry struct {
	body   *cp.Body
	shapes []*cp.Shape
	tag    Tag
	w, h   float64
	frozen bool
	// Pose captured by Freeze and restored after every step.
	frozenAt    cp.Vector
	frozenAngle float64
}

// Space is a World backed by github.com/jakecoffman/cp.
// cp reports contacts per shape; Space folds them into per-body events so a
// terrain polyline behaves as a single collider.
type Space struct {
	space    *cp.Space
	bodies   map[BodyID]*entry
	nextID   BodyID
	touching map[pairKey]int
	started  []ContactPair
	ended    []ContactPair
}

var _ World = (*Space)(nil)

// NewSpace creates an empty physics space with the given solver iterations.
func NewSpace(iterations int) *Space {
	s := &Space{
		space:    cp.NewSpace(),
		bodies:   make(map[BodyID]*entry),
		touching: make(map[pairKey]int),
	}
	if iterations > 0 {
		s.space.Iterations = uint(iterations)
	}

	for _, other := range []cp.CollisionType{collisionTerrain, collisionPad} {
		h := s.space.NewCollisionHandler(collisionPlayer, other)
		h.BeginFunc = s.begin
		h.SeparateFunc = s.separate
	}
	return s
}

func (s *Space) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	p := pairOf(arb)
	k := keyOf(p)
	s.touching[k]++
	if s.touching[k] == 1 {
		s.started = append(s.started, p)
	}
	return true
}

func (s *Space) separate(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	p := pairOf(arb)
	k := keyOf(p)
	n, ok := s.touching[k]
	if !ok {
		return
	}
	if n <= 1 {
		delete(s.touching, k)
		s.ended = append(s.ended, p)
		return
	}
	s.touching[k] = n - 1
}

func pairOf(arb *cp.Arbiter) ContactPair {
	a, b := arb.Shapes()
	ra, _ := a.UserData.(shapeRef)
	rb, _ := b.UserData.(shapeRef)
	return ContactPair{A: ra.id, B: rb.id, TagA: ra.tag, TagB: rb.tag}
}

func (s *Space) add(body *cp.Body, tag Tag, w, h float64, shapes ...*cp.Shape) BodyID {
	s.nextID++
	id := s.nextID
	ref := shapeRef{id: id, tag: tag}

	s.space.AddBody(body)
	for _, sh := range shapes {
		sh.UserData = ref
		s.space.AddShape(sh)
	}
	s.bodies[id] = &entry{body: body, shapes: shapes, tag: tag, w: w, h: h}
	return id
}

// SetGravity sets the global gravity vector.
func (s *Space) SetGravity(g core.Vec2) {
	s.space.SetGravity(vec(g))
}

// SpawnPlayer creates the dynamic lander body.
func (s *Space) SpawnPlayer(spec BodySpec) BodyID {
	body := cp.NewBody(spec.Mass, cp.MomentForBox(spec.Mass, spec.Width, spec.Height))
	body.SetPosition(vec(spec.Position))
	body.SetVelocityVector(vec(spec.Velocity))
	body.SetAngle(spec.Angle)

	box := cp.NewBox(body, spec.Width, spec.Height, 0)
	box.SetCollisionType(collisionPlayer)
	box.SetFriction(spec.Friction)
	box.SetElasticity(0)

	return s.add(body, TagPlayer, spec.Width, spec.Height, box)
}

// SpawnTerrain creates a static chain of segments through points.
func (s *Space) SpawnTerrain(points []core.Vec2, friction float64) BodyID {
	body := cp.NewStaticBody()
	shapes := make([]*cp.Shape, 0, len(points))
	for i := 1; i < len(points); i++ {
		seg := cp.NewSegment(body, vec(points[i-1]), vec(points[i]), terrainRadius)
		seg.SetCollisionType(collisionTerrain)
		seg.SetFriction(friction)
		seg.SetElasticity(0)
		shapes = append(shapes, seg)
	}
	return s.add(body, TagTerrain, 0, 0, shapes...)
}

// SpawnPad creates a static sensor box centred on center.
func (s *Space) SpawnPad(center core.Vec2, width, height float64) BodyID {
	body := cp.NewStaticBody()
	body.SetPosition(vec(center))

	box := cp.NewBox(body, width, height, 0)
	box.SetCollisionType(collisionPad)
	box.SetSensor(true)

	return s.add(body, TagPad, width, height, box)
}

// Despawn removes a body and its shapes. Contacts it had are reported as
// ended events in the current batch. Unknown ids are ignored.
func (s *Space) Despawn(id BodyID) {
	e, ok := s.bodies[id]
	if !ok {
		return
	}
	for _, sh := range e.shapes {
		s.space.RemoveShape(sh)
	}
	s.space.RemoveBody(e.body)
	delete(s.bodies, id)

	for k := range s.touching {
		if k.lo == id || k.hi == id {
			delete(s.touching, k)
		}
	}
}

// State returns the body's position, angle and velocities.
func (s *Space) State(id BodyID) BodyState {
	e, ok := s.bodies[id]
	if !ok {
		return BodyState{}
	}
	p := e.body.Position()
	v := e.body.Velocity()
	return BodyState{
		Position:        core.V2(p.X, p.Y),
		Angle:           e.body.Angle(),
		Velocity:        core.V2(v.X, v.Y),
		AngularVelocity: e.body.AngularVelocity(),
	}
}

// SetMass updates the body mass and its box moment of inertia.
func (s *Space) SetMass(id BodyID, mass float64) {
	e, ok := s.bodies[id]
	if !ok || e.frozen || e.tag != TagPlayer || mass <= 0 {
		return
	}
	e.body.SetMass(mass)
	e.body.SetMoment(cp.MomentForBox(mass, e.w, e.h))
}

// ApplyForce applies force at the body's centre of mass.
func (s *Space) ApplyForce(id BodyID, force core.Vec2) {
	e, ok := s.bodies[id]
	if !ok || e.frozen || e.tag != TagPlayer {
		return
	}
	e.body.ApplyForceAtWorldPoint(vec(force), e.body.Position())
}

// ApplyAngularAcceleration converts alpha into torque for the next step.
func (s *Space) ApplyAngularAcceleration(id BodyID, alpha float64) {
	e, ok := s.bodies[id]
	if !ok || e.frozen || e.tag != TagPlayer {
		return
	}
	e.body.SetTorque(e.body.Torque() + alpha*e.body.Moment())
}

// Freeze zeroes velocities and turns the body kinematic so forces no longer move it.
func (s *Space) Freeze(id BodyID) {
	e, ok := s.bodies[id]
	if !ok || e.frozen {
		return
	}
	e.frozen = true
	e.body.SetVelocity(0, 0)
	e.body.SetAngularVelocity(0)
	e.body.SetForce(cp.Vector{})
	e.body.SetTorque(0)
	e.body.SetType(cp.BODY_KINEMATIC)
	e.frozenAt = e.body.Position()
	e.frozenAngle = e.body.Angle()
}

// Frozen reports whether Freeze was called on the body.
func (s *Space) Frozen(id BodyID) bool {
	e, ok := s.bodies[id]
	return ok && e.frozen
}

// Step advances the simulation. Events left undrained from the previous
// step are discarded.
func (s *Space) Step(dt float64) {
	s.started = s.started[:0]
	s.ended = s.ended[:0]
	s.space.Step(dt)

	// cp still integrates the position-correction bias left from the freezing step
	// even for kinematic bodies, so frozen bodies are pinned back in place.
	for _, e := range s.bodies {
		if !e.frozen {
			continue
		}
		e.body.SetVelocity(0, 0)
		e.body.SetAngularVelocity(0)
		e.body.SetPosition(e.frozenAt)
		e.body.SetAngle(e.frozenAngle)
	}
}

// Drain returns the buffered collision events and empties the buffers.
func (s *Space) Drain() ContactBatch {
	batch := ContactBatch{
		Started: append([]ContactPair(nil), s.started...),
		Ended:   append([]ContactPair(nil), s.ended...),
	}
	s.started = s.started[:0]
	s.ended = s.ended[:0]
	return batch
}

// TotalNormalImpulse sums |impulse · normal| over every arbiter on the body.
func (s *Space) TotalNormalImpulse(id BodyID) float64 {
	e, ok := s.bodies[id]
	if !ok {
		return 0
	}
	var sum float64
	e.body.EachArbiter(func(arb *cp.Arbiter) {
		sum += math.Abs(arb.TotalImpulse().Dot(arb.Normal()))
	})
	if math.IsInf(sum, 1) || math.IsNaN(sum) {
		return math.MaxFloat64
	}
	return sum
}

// Bodies returns the number of live bodies.
func (s *Space) Bodies() int {
	return len(s.bodies)
}

func vec(v core.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}
