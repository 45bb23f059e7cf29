package lander

import "math"

// Score returns the points for a finished level. Only a win scores.
func Score(phase Phase, fuel uint32, landingBonus int, multiplier float64) int {
	if phase != PhaseWin {
		return 0
	}
	return int(math.Round((float64(fuel) + float64(landingBonus)) * multiplier))
}

// Outcome summarises a finished or abandoned level for flight records.
type Outcome struct {
	Phase      Phase
	Score      int
	Fuel       uint32
	Multiplier float64
	Distance   float64
	Ticks      uint64
}

// Landed reports whether the level was won.
func (o Outcome) Landed() bool {
	return o.Phase == PhaseWin
}
