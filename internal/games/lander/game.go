// Package lander implements a physics-driven lunar lander over endless,
// procedurally generated terrain.
//
// Sim owns the level rules and talks to rigid-body physics only through
// physics.World. Game adapts a Sim to the registry and the terminal platform.
package lander

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/physics"
	"github.com/vovakirdan/tui-lander/internal/registry"
)

// Registry identity of the game.
const (
	ID    = "lander"
	Title = "Lunar Lander"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger sets the logger used for level lifecycle messages.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements registry.Game for the lander.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.LanderConfig
	space   *physics.Space
	sim     *Sim
	last    Report
	seed    int64

	opts   *Options
	preset config.DifficultyPreset

	paused    bool
	prevPause bool
	exit      bool
	loadErr   error
}

// Options pins the config source of one game instance.
// Games built with New follow the CLI-wide SetConfigPath and SetDifficultyPreset.
type Options struct {
	ConfigPath string
	Preset     string
}

// New creates a new lander game instance.
func New() *Game {
	return &Game{}
}

// NewWithOptions creates a game that ignores the package-wide settings.
func NewWithOptions(opts Options) *Game {
	return &Game{opts: &opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return Title
}

// Reset leaves the previous level and enters a fresh one.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if g.sim != nil {
		g.sim.Exit()
	}
	g.runtime = runtime

	path, preset := configPath, difficultyPreset
	if g.opts != nil {
		path = g.opts.ConfigPath
		preset, _ = config.ParsePreset(g.opts.Preset)
	}

	cfg, err := config.LoadLander(path)
	if err != nil {
		logger.Warn("falling back to default lander config", "path", path, "err", err)
		cfg = config.DefaultLanderConfig()
	}
	g.loadErr = err
	if preset != "" {
		config.ApplyLanderPreset(&cfg, preset)
	}
	g.cfg = cfg
	g.preset = preset

	g.seed = runtime.Seed
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}

	g.space = physics.NewSpace(cfg.Physics.Iterations)
	g.sim = NewSim(cfg, g.space, g.seed)
	g.last = g.sim.Enter()
	g.paused = false
	g.prevPause = false
	g.exit = false

	logger.Debug("level entered",
		"seed", g.seed,
		"preset", string(preset),
		"chunks", len(g.last.Spawned),
	)
}

// Step advances the level by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	pause := in.Has(core.ActionPause)
	if pause && !g.prevPause && !g.sim.Phase().Terminal() {
		g.paused = !g.paused
	}
	g.prevPause = pause

	if g.paused || g.exit {
		return core.StepResult{State: g.State()}
	}

	g.last = g.sim.Step(in, g.runtime.Dt())
	if g.last.PhaseChanged {
		logger.Debug("phase changed",
			"phase", g.last.Phase.String(),
			"tick", g.last.Tick,
			"score", g.sim.Score(),
			"impulse", g.last.Impulse,
			"fuel", g.last.Player.Fuel,
		)
	}
	if g.last.ExitRequested {
		g.exit = true
	}
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.sim.Score(),
		GameOver: g.sim.Phase().Terminal(),
		Paused:   g.paused,
		Exit:     g.exit,
	}
}

// Sim returns the running simulation.
func (g *Game) Sim() *Sim {
	return g.sim
}

// Seed returns the seed of the current level.
func (g *Game) Seed() int64 {
	return g.seed
}

// Config returns the configuration the level was built from.
func (g *Game) Config() config.LanderConfig {
	return g.cfg
}

// ConfigError returns the error that made Reset fall back to defaults, if any.
func (g *Game) ConfigError() error {
	return g.loadErr
}

// LastReport returns the report of the most recent tick.
func (g *Game) LastReport() Report {
	return g.last
}

// Outcome summarises the current level.
func (g *Game) Outcome() Outcome {
	return g.sim.Outcome()
}

// Preset returns the active difficulty preset name.
func (g *Game) Preset() string {
	return string(g.preset)
}

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: Title}, func() registry.Game {
		return New()
	})
}
