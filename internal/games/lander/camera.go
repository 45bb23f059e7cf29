package lander

import (
	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
)

// CameraFollow tracks the player horizontally and clamps vertically.
type CameraFollow struct {
	MinY float64
	MaxY float64
}

// NewCameraFollow creates a camera from the camera settings.
func NewCameraFollow(cfg config.CameraConfig) CameraFollow {
	return CameraFollow{MinY: cfg.MinY, MaxY: cfg.MaxY}
}

// Target returns the camera position for a player position.
func (c CameraFollow) Target(player core.Vec2) core.Vec2 {
	return core.V2(player.X, core.ClampF(player.Y, c.MinY, c.MaxY))
}
