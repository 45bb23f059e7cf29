package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const landerFile = "lander.yaml"

// LoadLander loads lander configuration.
// Search order: customPath -> ~/.lander/configs/lander.yaml -> ./configs/lander.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides the keys it names.
func LoadLander(customPath string) (LanderConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return LanderConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := decodeLander(data)
		if err != nil {
			return LanderConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return LanderConfig{}, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(landerFile), filepath.Join("configs", landerFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decodeLander(data); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decodeLander(defaultLanderYAML)
	if err != nil {
		return DefaultLanderConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func decodeLander(data []byte) (LanderConfig, error) {
	cfg := DefaultLanderConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LanderConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lander", "configs", filename)
}

// ApplyLanderPreset modifies the config based on a difficulty preset.
func ApplyLanderPreset(cfg *LanderConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust landing tolerances based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Landing.MaxSpeed *= 1.6
		cfg.Landing.MaxTilt *= 1.5
		cfg.Landing.CrashImpulse *= 1.5
		cfg.Pads.FlatnessTolerance *= 1.5
	case DifficultyHard:
		cfg.Landing.MaxSpeed *= 0.6
		cfg.Landing.MaxTilt *= 0.6
		cfg.Landing.CrashImpulse *= 0.75
		cfg.Flight.MaxFuel = cfg.Flight.MaxFuel * 3 / 4
	}
}
