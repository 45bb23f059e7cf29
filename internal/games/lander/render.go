package lander

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Visual characters for rendering
const (
	TerrainSurfaceChar = '▀'
	TerrainFillChar    = '░'
	PadChar            = '═'
	FlameChar          = '*'
	DebrisChar         = 'x'
	hudRows            = 1
)

// landerGlyphs are indexed by the heading octant, counter-clockwise from up.
var landerGlyphs = [8]rune{'↑', '↖', '←', '↙', '↓', '↘', '→', '↗'}

// viewport maps world coordinates to screen cells around the camera.
// Terminal cells are about twice as tall as wide, so a row covers twice the
// world height a column covers in width.
type viewport struct {
	camera core.Vec2
	scale  float64 // World units per column
	w, h   int
}

func newViewport(camera core.Vec2, worldWidth float64, w, h int) viewport {
	scale := 1.0
	if w > 0 && worldWidth > 0 {
		scale = worldWidth / float64(w)
	}
	return viewport{camera: camera, scale: scale, w: w, h: h}
}

// toScreen returns the cell for a world point.
func (v viewport) toScreen(p core.Vec2) (int, int) {
	x := (p.X-v.camera.X)/v.scale + float64(v.w)/2
	y := float64(v.h)/2 - (p.Y-v.camera.Y)/(v.scale*2)
	return int(math.Floor(x)), int(math.Floor(y))
}

// worldX returns the world x at the centre of a column.
func (v viewport) worldX(col int) float64 {
	return (float64(col)+0.5-float64(v.w)/2)*v.scale + v.camera.X
}

// Render draws the current level state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.sim == nil {
		return
	}

	s := g.sim
	view := newViewport(s.Camera(), s.Config().Terrain.ViewportWidth, dst.Width(), dst.Height())

	drawTerrain(dst, view, s.Terrain())
	drawPads(dst, view, s.Terrain())
	drawLander(dst, view, s.Player())
	g.drawHUD(dst)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	switch s.Phase() {
	case PhaseWin:
		drawCenteredMessage(dst, "You Landed Successfully!",
			fmt.Sprintf("Score: %d  |  Enter to return to menu", s.Score()))
	case PhaseLose:
		drawCenteredMessage(dst, "You Crashed!", "Enter to return to menu")
	}
}

func drawTerrain(dst *core.Screen, view viewport, t *TerrainStreamer) {
	for col := 0; col < dst.Width(); col++ {
		h, ok := t.HeightAt(view.worldX(col))
		if !ok {
			continue
		}
		_, row := view.toScreen(core.V2(0, h))
		row = core.Max(row, hudRows)
		if row >= dst.Height() {
			continue
		}
		dst.SetColored(col, row, TerrainSurfaceChar, core.ColorTerrain)
		dst.DrawVLine(col, row+1, dst.Height()-row-1, TerrainFillChar, core.ColorTerrain)
	}
}

func drawPads(dst *core.Screen, view viewport, t *TerrainStreamer) {
	for _, pad := range t.Pads() {
		left, row := view.toScreen(pad.Position.Sub(core.V2(pad.Width/2, 0)))
		right, _ := view.toScreen(pad.Position.Add(core.V2(pad.Width/2, 0)))
		if row < hudRows || row >= dst.Height() {
			continue
		}
		for x := left; x <= right; x++ {
			dst.SetColored(x, row, PadChar, core.ColorPad)
		}
		label := fmt.Sprintf("x%g", pad.ScoreMultiplier)
		dst.DrawTextColored((left+right-len(label))/2+1, row-1, label, core.ColorPad)
	}
}

func drawLander(dst *core.Screen, view viewport, p *Player) {
	x, y := view.toScreen(p.Motion.Position)

	if p.Flight == FlightCrashed {
		dst.SetColored(x-1, y, DebrisChar, core.ColorDebris)
		dst.SetColored(x, y, FlameChar, core.ColorDebris)
		dst.SetColored(x+1, y, DebrisChar, core.ColorDebris)
		return
	}

	dst.SetColored(x, y, headingGlyph(p.Motion.Angle), core.ColorLander)

	if p.Flight == FlightFiring {
		exhaust := core.Up.Rotate(p.Motion.Angle).Scale(-1)
		fx := x + int(math.Round(exhaust.X))
		fy := y - int(math.Round(exhaust.Y))
		dst.SetColored(fx, fy, FlameChar, core.ColorFlame)
	}
}

// headingGlyph picks the arrow closest to the body's up axis.
func headingGlyph(angle float64) rune {
	octant := int(math.Round(core.NormalizeAngle(angle) / (math.Pi / 4)))
	return landerGlyphs[((octant%8)+8)%8]
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.sim
	p := s.Player()
	cfg := s.Config()

	fuelColor := core.ColorHUD
	if p.Fuel < cfg.Flight.MaxFuel/5 {
		fuelColor = core.ColorWarning
	}
	fuel := fmt.Sprintf(" Fuel %4d ", p.Fuel)
	dst.DrawTextColored(0, 0, fuel, fuelColor)

	timer := s.Timer()
	var landing string
	if !timer.Paused {
		landing = fmt.Sprintf("  Landing %.1fs", timer.Elapsed.Seconds())
	}
	rest := fmt.Sprintf("VX %+6.1f  VY %+6.1f  x%g%s",
		p.Motion.Velocity.X, p.Motion.Velocity.Y, p.ScoreMultiplier, landing)
	dst.DrawTextColored(len([]rune(fuel)), 0, rest, core.ColorHUD)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
