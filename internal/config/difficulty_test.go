package config

import (
	"math"
	"testing"
)

func testDifficulty() DifficultyConfig {
	return DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "distance", MaxAt: 10},
		Scaling:      ScalingConfig{AmplitudeMultiplier: 1.0, PadProbabilityReduction: 0.5},
	}
}

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(testDifficulty())

	tests := []struct {
		distance int
		expected float64
	}{
		{0, 0.0},
		{5, 0.5},
		{-5, 0.5},
		{10, 1.0},
		{25, 1.0},
	}

	for _, tc := range tests {
		if got := d.Level(tc.distance); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tc.distance, got, tc.expected)
		}
	}
}

func TestDifficultyInitialLevel(t *testing.T) {
	d := NewDifficultyManager(testDifficulty())
	d.SetInitialLevel(0.5)

	if got := d.Level(0); got != 0.5 {
		t.Errorf("Level(0) = %v, expected 0.5", got)
	}
	if got := d.Level(5); got != 0.75 {
		t.Errorf("Level(5) = %v, expected 0.75", got)
	}

	d.SetInitialLevel(3)
	if got := d.Level(0); got != 1.0 {
		t.Errorf("SetInitialLevel should clamp, Level(0) = %v", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	cfg := testDifficulty()
	cfg.InitialLevel = 0.3
	d := NewDifficultyManager(cfg)
	d.SetEnabled(false)

	if d.IsEnabled() {
		t.Error("IsEnabled() = true after SetEnabled(false)")
	}
	if got := d.Level(100); got != 0.3 {
		t.Errorf("Level(100) = %v, expected initial level 0.3", got)
	}

	cfg.Progression.Type = "none"
	if NewDifficultyManager(cfg).IsEnabled() {
		t.Error("progression type none should disable progression")
	}
}

func TestDifficultyScaling(t *testing.T) {
	d := NewDifficultyManager(testDifficulty())

	if got := d.Amplitude(200, 0); got != 200 {
		t.Errorf("Amplitude(200, 0) = %v, expected 200", got)
	}
	if got := d.Amplitude(200, 10); got != 400 {
		t.Errorf("Amplitude(200, 10) = %v, expected 400", got)
	}
	if got := d.PadProbability(0.5, 0); got != 0.5 {
		t.Errorf("PadProbability(0.5, 0) = %v, expected 0.5", got)
	}
	if got := d.PadProbability(0.5, 10); got != 0.25 {
		t.Errorf("PadProbability(0.5, 10) = %v, expected 0.25", got)
	}
	if got := d.PadProbability(3, 0); got != 1 {
		t.Errorf("PadProbability should clamp to 1, got %v", got)
	}
}
