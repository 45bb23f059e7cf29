package config

import (
	_ "embed"
)

//go:embed defaults/lander.yaml
var defaultLanderYAML []byte

// DefaultLanderConfig returns the default lander configuration.
// It mirrors defaults/lander.yaml and is used when the embedded file cannot be parsed.
func DefaultLanderConfig() LanderConfig {
	return LanderConfig{
		Physics: PhysicsConfig{
			GameGravity:    -20.0,
			DefaultGravity: -9.81,
			Iterations:     10,
			GroundedMode:   GroundedFlag,
		},
		Flight: FlightConfig{
			SpawnX:              400,
			SpawnY:              500,
			InitialVX:           12,
			InitialVY:           0,
			Width:               16,
			Height:              16,
			DryMass:             1.0,
			FuelMassFactor:      0.001,
			MaxFuel:             1000,
			FuelPerTick:         1,
			MainEngineForce:     100,
			AngularAcceleration: 2.0,
			Friction:            0.8,
		},
		Terrain: TerrainConfig{
			ViewportWidth: 1600,
			ChunkWidth:    400,
			Granularity:   8,
			BufferChunks:  1,
			Amplitude:     200,
			BaseHeight:    300,
			Friction:      0.9,
			Noise: NoiseConfig{
				Octaves:     3,
				Persistence: 0.5,
				Lacunarity:  2.0,
				Period:      1600,
			},
		},
		Pads: PadConfig{
			Probability:       0.5,
			Width:             64,
			SensorHeight:      16,
			FlatnessTolerance: 24,
			Multipliers:       []float64{2, 3, 5},
		},
		Landing: LandingConfig{
			MaxSpeed:        5.0,
			MaxAngularSpeed: 0.1,
			MaxTilt:         0.2,
			WinSeconds:      3.0,
			CrashImpulse:    40,
		},
		Camera: CameraConfig{
			MinY: 200,
			MaxY: 900,
		},
		Scoring: ScoringConfig{
			LandingBonus: 500,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "distance",
				MaxAt: 40,
			},
			Scaling: ScalingConfig{
				AmplitudeMultiplier:     0.75,
				PadProbabilityReduction: 0.6,
			},
		},
	}
}
