package config

import "math"

// DifficultyManager calculates terrain parameters from the distance to the spawn chunk.
// Level depends only on distance, so chunk generation stays a pure function of
// seed and chunk index.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) for a chunk that is
// distance chunks away from the spawn chunk.
func (d *DifficultyManager) Level(distance int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}
	if distance < 0 {
		distance = -distance
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "distance":
		progress = float64(distance) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Amplitude returns the terrain amplitude for a chunk at the given distance.
func (d *DifficultyManager) Amplitude(base float64, distance int) float64 {
	level := d.Level(distance)
	// Amplitude grows from base to base * (1 + amplitudeMultiplier)
	return base * (1.0 + level*d.cfg.Scaling.AmplitudeMultiplier)
}

// PadProbability returns the pad placement probability for a chunk at the given distance.
func (d *DifficultyManager) PadProbability(base float64, distance int) float64 {
	level := d.Level(distance)
	// Pads get rarer as difficulty increases
	return clampF(base*(1.0-level*d.cfg.Scaling.PadProbabilityReduction), 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
