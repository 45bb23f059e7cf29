// Package config provides YAML-based lander configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
)

// Grounded tracking modes.
const (
	// GroundedFlag clears grounded on the first terrain end event.
	GroundedFlag = "flag"
	// GroundedCounted keeps a per-body contact count.
	GroundedCounted = "counted"
)

// LanderConfig contains all configuration for a lander level.
type LanderConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Flight     FlightConfig     `yaml:"flight"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Pads       PadConfig        `yaml:"pads"`
	Landing    LandingConfig    `yaml:"landing"`
	Camera     CameraConfig     `yaml:"camera"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig defines world-level physics parameters.
// Gravity values are the vertical component, negative pulls down.
type PhysicsConfig struct {
	GameGravity    float64 `yaml:"game_gravity"`    // Active while a level runs
	DefaultGravity float64 `yaml:"default_gravity"` // Restored on level exit
	Iterations     int     `yaml:"iterations"`      // Solver iterations
	GroundedMode   string  `yaml:"grounded_mode"`   // "flag" or "counted"
}

// FlightConfig defines the lander body and engine.
type FlightConfig struct {
	SpawnX              float64 `yaml:"spawn_x"`
	SpawnY              float64 `yaml:"spawn_y"`
	InitialVX           float64 `yaml:"initial_vx"`
	InitialVY           float64 `yaml:"initial_vy"`
	Width               float64 `yaml:"width"`
	Height              float64 `yaml:"height"`
	DryMass             float64 `yaml:"dry_mass"`
	FuelMassFactor      float64 `yaml:"fuel_mass_factor"`
	MaxFuel             uint32  `yaml:"max_fuel"`
	FuelPerTick         uint32  `yaml:"fuel_per_tick"`
	MainEngineForce     float64 `yaml:"main_engine_force"`
	AngularAcceleration float64 `yaml:"angular_acceleration"` // rad/s² while a rotate key is held
	Friction            float64 `yaml:"friction"`
}

// TerrainConfig defines chunk streaming and height generation.
type TerrainConfig struct {
	ViewportWidth float64     `yaml:"viewport_width"`
	ChunkWidth    float64     `yaml:"chunk_width"`
	Granularity   float64     `yaml:"granularity"` // Sample spacing inside a chunk
	BufferChunks  int         `yaml:"buffer_chunks"`
	Amplitude     float64     `yaml:"amplitude"`
	BaseHeight    float64     `yaml:"base_height"`
	Friction      float64     `yaml:"friction"`
	Noise         NoiseConfig `yaml:"noise"`
}

// NoiseConfig defines the fractal noise used for terrain heights.
type NoiseConfig struct {
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
	Period      float64 `yaml:"period"`
}

// PadConfig defines landing pad placement.
type PadConfig struct {
	Probability       float64   `yaml:"probability"`
	Width             float64   `yaml:"width"`
	SensorHeight      float64   `yaml:"sensor_height"`
	FlatnessTolerance float64   `yaml:"flatness_tolerance"`
	Multipliers       []float64 `yaml:"multipliers"`
}

// LandingConfig defines win and crash thresholds.
type LandingConfig struct {
	MaxSpeed        float64 `yaml:"max_speed"`
	MaxAngularSpeed float64 `yaml:"max_angular_speed"`
	MaxTilt         float64 `yaml:"max_tilt"`
	WinSeconds      float64 `yaml:"win_seconds"`
	CrashImpulse    float64 `yaml:"crash_impulse"`
}

// CameraConfig bounds the vertical camera follow.
type CameraConfig struct {
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

// ScoringConfig defines end-of-level scoring.
type ScoringConfig struct {
	LandingBonus int `yaml:"landing_bonus"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases with distance.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "distance" or "none"
	MaxAt int    `yaml:"max_at"` // Chunks from spawn at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	AmplitudeMultiplier     float64 `yaml:"amplitude_multiplier"`      // Added to amplitude scale at max difficulty
	PadProbabilityReduction float64 `yaml:"pad_probability_reduction"` // Fraction of pad probability removed at max difficulty
}

// Validate rejects configurations the simulation cannot run with.
func (c LanderConfig) Validate() error {
	var errs []error
	if c.Terrain.ChunkWidth <= 0 {
		errs = append(errs, errors.New("terrain.chunk_width must be positive"))
	}
	if c.Terrain.Granularity <= 0 {
		errs = append(errs, errors.New("terrain.granularity must be positive"))
	} else if c.Terrain.ChunkWidth > 0 && c.Terrain.Granularity > c.Terrain.ChunkWidth {
		errs = append(errs, errors.New("terrain.granularity must not exceed chunk_width"))
	}
	if c.Terrain.ViewportWidth <= 0 {
		errs = append(errs, errors.New("terrain.viewport_width must be positive"))
	}
	if c.Terrain.BufferChunks < 0 {
		errs = append(errs, errors.New("terrain.buffer_chunks must not be negative"))
	}
	if c.Terrain.Noise.Octaves < 1 {
		errs = append(errs, errors.New("terrain.noise.octaves must be at least 1"))
	}
	if c.Terrain.Noise.Period <= 0 {
		errs = append(errs, errors.New("terrain.noise.period must be positive"))
	}
	if c.Pads.Width <= 0 {
		errs = append(errs, errors.New("pads.width must be positive"))
	}
	if len(c.Pads.Multipliers) == 0 {
		errs = append(errs, errors.New("pads.multipliers must not be empty"))
	}
	for _, m := range c.Pads.Multipliers {
		if m < 1 {
			errs = append(errs, fmt.Errorf("pads.multipliers: %v is below 1.0", m))
		}
	}
	if c.Flight.Width <= 0 || c.Flight.Height <= 0 {
		errs = append(errs, errors.New("flight.width and flight.height must be positive"))
	}
	if c.Flight.DryMass <= 0 {
		errs = append(errs, errors.New("flight.dry_mass must be positive"))
	}
	if c.Landing.WinSeconds <= 0 {
		errs = append(errs, errors.New("landing.win_seconds must be positive"))
	}
	if c.Camera.MinY > c.Camera.MaxY {
		errs = append(errs, errors.New("camera.min_y must not exceed camera.max_y"))
	}
	switch c.Physics.GroundedMode {
	case GroundedFlag, GroundedCounted:
	default:
		errs = append(errs, fmt.Errorf("physics.grounded_mode %q is not flag or counted", c.Physics.GroundedMode))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid lander config: %w", err)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every known preset in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a flag value to a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
