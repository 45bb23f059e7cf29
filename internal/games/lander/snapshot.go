package lander

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Snapshot contains the observable level state for telemetry and determinism tests.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick            uint64  `json:"tick"`
	Phase           string  `json:"phase"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	VX              float64 `json:"vx"`
	VY              float64 `json:"vy"`
	Angle           float64 `json:"angle"`
	AngularVelocity float64 `json:"angular_velocity"`
	Fuel            uint32  `json:"fuel"`
	Mass            float64 `json:"mass"`
	Flight          string  `json:"flight"`
	Grounded        bool    `json:"grounded"`
	Multiplier      float64 `json:"multiplier"`
	Score           int     `json:"score"`
	WinElapsed      float64 `json:"win_elapsed"` // Seconds, 0 while the timer is paused
	Chunks          []int   `json:"chunks"`
	Pads            int     `json:"pads"`
	Seed            int64   `json:"seed"`
}

// Snapshot returns the current level state.
func (s *Sim) Snapshot() Snapshot {
	p := s.player
	var elapsed float64
	if t := s.phases.Timer(); !t.Paused {
		elapsed = t.Elapsed.Seconds()
	}
	return Snapshot{
		Tick:            s.tick,
		Phase:           s.phases.Phase().String(),
		X:               p.Motion.Position.X,
		Y:               p.Motion.Position.Y,
		VX:              p.Motion.Velocity.X,
		VY:              p.Motion.Velocity.Y,
		Angle:           p.Motion.Angle,
		AngularVelocity: p.Motion.AngularVelocity,
		Fuel:            p.Fuel,
		Mass:            p.Mass,
		Flight:          p.Flight.String(),
		Grounded:        p.Grounded,
		Multiplier:      p.ScoreMultiplier,
		Score:           s.score,
		WinElapsed:      elapsed,
		Chunks:          s.terrain.Indices(),
		Pads:            len(s.terrain.Pads()),
		Seed:            s.seed,
	}
}

// Snapshot returns the current level state.
func (g *Game) Snapshot() Snapshot {
	return g.sim.Snapshot()
}

// Hash returns an FNV-1a hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	putF := func(f float64) { put(math.Float64bits(f)) }
	putB := func(b bool) {
		if b {
			put(1)
		} else {
			put(0)
		}
	}

	put(snap.Tick)
	h.Write([]byte(snap.Phase))
	putF(snap.X)
	putF(snap.Y)
	putF(snap.VX)
	putF(snap.VY)
	putF(snap.Angle)
	putF(snap.AngularVelocity)
	put(uint64(snap.Fuel))
	putF(snap.Mass)
	h.Write([]byte(snap.Flight))
	putB(snap.Grounded)
	putF(snap.Multiplier)
	put(uint64(snap.Score)) //#nosec G115 -- hash computation
	putF(snap.WinElapsed)
	for _, c := range snap.Chunks {
		put(uint64(c)) //#nosec G115 -- hash computation
	}
	put(uint64(snap.Pads)) //#nosec G115 -- hash computation
	put(uint64(snap.Seed)) //#nosec G115 -- hash computation

	return h.Sum64()
}
