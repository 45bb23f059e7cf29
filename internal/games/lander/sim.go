package lander

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/physics"
)

// Cue is a fire-once audio trigger.
type Cue int

const (
	CueTouchdown Cue = iota
	CueCrash
	CueLanded
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueTouchdown:
		return "touchdown"
	case CueCrash:
		return "crash"
	case CueLanded:
		return "landed"
	default:
		return "unknown"
	}
}

// Report is everything a tick produced for the outer collaborators.
type Report struct {
	Tick          uint64
	Phase         Phase
	PhaseChanged  bool
	Cues          []Cue
	Spawned       []int
	Despawned     []int
	Camera        core.Vec2
	Player        PlayerView
	Impulse       float64
	ExitRequested bool
}

// Sim runs one level: the player, its terrain and the phase machine.
// It is single threaded and never blocks.
type Sim struct {
	cfg   config.LanderConfig
	world physics.World
	seed  int64

	dynamics   FlightDynamics
	classifier ContactClassifier
	phases     *PhaseMachine
	camera     CameraFollow

	player  *Player
	terrain *TerrainStreamer
	prev    core.InputFrame
	tick    uint64
	score   int
	entered bool
}

// NewSim creates a simulation for one level. Call Enter before Step.
func NewSim(cfg config.LanderConfig, world physics.World, seed int64) *Sim {
	return &Sim{
		cfg:        cfg,
		world:      world,
		seed:       seed,
		dynamics:   NewFlightDynamics(cfg.Flight),
		classifier: NewContactClassifier(cfg.Physics, cfg.Landing),
		phases:     NewPhaseMachine(cfg.Landing),
		camera:     NewCameraFollow(cfg.Camera),
	}
}

// Enter sets level gravity, spawns the player and primes the terrain window.
// The returned report lists the initial chunks.
func (s *Sim) Enter() Report {
	if s.entered {
		s.Exit()
	}
	f := s.cfg.Flight

	s.world.SetGravity(core.V2(0, s.cfg.Physics.GameGravity))
	s.player = newPlayer(f)
	s.player.Body = s.world.SpawnPlayer(physics.BodySpec{
		Position: core.V2(f.SpawnX, f.SpawnY),
		Velocity: core.V2(f.InitialVX, f.InitialVY),
		Width:    f.Width,
		Height:   f.Height,
		Mass:     s.player.Mass,
		Friction: f.Friction,
	})
	s.player.Motion = s.world.State(s.player.Body)

	s.phases.Reset()
	s.prev = core.NewInputFrame()
	s.tick = 0
	s.score = 0
	s.entered = true

	s.terrain = NewTerrainStreamer(s.cfg, s.world, s.seed, f.SpawnX)
	diff := s.terrain.Update(f.SpawnX)

	return Report{
		Phase:   PhaseRunning,
		Spawned: diff.Spawned,
		Camera:  s.camera.Target(s.player.Motion.Position),
		Player:  s.player.View(),
	}
}

// Step runs one tick. In a terminal phase the world still steps but only
// confirm and escape are read.
func (s *Sim) Step(in core.InputFrame, dt float64) Report {
	c := ControlsFrom(s.prev, in)
	s.prev = in.Clone()
	s.tick++

	r := Report{Tick: s.tick}
	p := s.player

	if s.phases.Phase() == PhaseRunning {
		r.ExitRequested = s.dynamics.Apply(p, s.world, c)
	} else {
		r.ExitRequested = c.Confirm.JustPressed || c.Escape.JustPressed
	}

	s.world.Step(dt)
	p.Motion = s.world.State(p.Body)

	if s.phases.Phase() == PhaseRunning {
		out := s.classifier.Classify(p, s.world.Drain(), s.world, s.terrain)
		r.Impulse = out.Impulse
		if out.Touchdown {
			r.Cues = append(r.Cues, CueTouchdown)
		}
		switch {
		case out.Crash:
			s.lose()
			r.PhaseChanged = true
			r.Cues = append(r.Cues, CueCrash)
		case s.phases.Tick(p, secondsToDuration(dt)):
			s.score = Score(PhaseWin, p.Fuel, s.cfg.Scoring.LandingBonus, p.ScoreMultiplier)
			r.PhaseChanged = true
			r.Cues = append(r.Cues, CueLanded)
		}
	} else {
		s.world.Drain()
	}

	diff := s.terrain.Update(p.Motion.Position.X)
	r.Spawned = diff.Spawned
	r.Despawned = diff.Despawned

	r.Phase = s.phases.Phase()
	r.Camera = s.camera.Target(p.Motion.Position)
	r.Player = p.View()
	return r
}

func (s *Sim) lose() {
	s.phases.Lose()
	s.world.Freeze(s.player.Body)
	s.player.Motion = s.world.State(s.player.Body)
	s.player.Flight = FlightCrashed
	s.score = 0
}

// Exit despawns the level and restores default gravity.
func (s *Sim) Exit() []int {
	if !s.entered {
		return nil
	}
	despawned := s.terrain.Clear()
	s.world.Despawn(s.player.Body)
	s.world.SetGravity(core.V2(0, s.cfg.Physics.DefaultGravity))
	s.entered = false
	return despawned
}

// Phase returns the current phase.
func (s *Sim) Phase() Phase {
	return s.phases.Phase()
}

// Player returns the live player. It is nil before Enter.
func (s *Sim) Player() *Player {
	return s.player
}

// Terrain returns the chunk streamer. It is nil before Enter.
func (s *Sim) Terrain() *TerrainStreamer {
	return s.terrain
}

// Timer returns a copy of the win timer.
func (s *Sim) Timer() WinTimer {
	return s.phases.Timer()
}

// Tick returns the number of steps since Enter.
func (s *Sim) Tick() uint64 {
	return s.tick
}

// Score returns the level score; it is non-zero only after a win.
func (s *Sim) Score() int {
	return s.score
}

// Camera returns the current camera target.
func (s *Sim) Camera() core.Vec2 {
	return s.camera.Target(s.player.Motion.Position)
}

// Config returns the level configuration.
func (s *Sim) Config() config.LanderConfig {
	return s.cfg
}

// Seed returns the terrain seed.
func (s *Sim) Seed() int64 {
	return s.seed
}

// Outcome summarises the level so far.
func (s *Sim) Outcome() Outcome {
	p := s.player
	return Outcome{
		Phase:      s.phases.Phase(),
		Score:      s.score,
		Fuel:       p.Fuel,
		Multiplier: p.ScoreMultiplier,
		Distance:   math.Abs(p.Motion.Position.X - s.cfg.Flight.SpawnX),
		Ticks:      s.tick,
	}
}

func secondsToDuration(dt float64) time.Duration {
	return time.Duration(math.Round(dt * float64(time.Second)))
}
