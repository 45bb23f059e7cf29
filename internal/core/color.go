package core

// Color represents a foreground color for a screen cell.
// The platform maps these to ANSI 256-color codes.
type Color uint8

// Palette used by the lander renderer and HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorOrange
	ColorGray
)

// Semantic aliases so game code reads by intent rather than hue.
const (
	ColorTerrain = ColorGray
	ColorPad     = ColorBrightGreen
	ColorLander  = ColorWhite
	ColorFlame   = ColorOrange
	ColorDebris  = ColorBrightRed
	ColorHUD     = ColorCyan
	ColorWarning = ColorBrightYellow
)
