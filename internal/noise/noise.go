// Package noise provides a seeded, deterministic 1D fractal gradient noise
// used to generate terrain heights.
package noise

import "math"

// Params controls the fractal sum.
// Octave i contributes Persistence^i weight at Lacunarity^i / Period frequency.
type Params struct {
	Octaves     int
	Persistence float64
	Lacunarity  float64
	Period      float64
}

// Field binds a seed and parameters into a height source.
type Field struct {
	Seed   int64
	Params Params
}

// NewField creates a noise field.
func NewField(seed int64, p Params) Field {
	return Field{Seed: seed, Params: p}
}

// Sample returns the noise value at x.
func (f Field) Sample(x float64) float64 {
	return Sample(f.Seed, x, f.Params)
}

// Sample returns fractal noise at x in [-1, 1].
// The result depends only on its arguments and is continuous in x.
func Sample(seed int64, x float64, p Params) float64 {
	octaves := p.Octaves
	if octaves < 1 {
		octaves = 1
	}
	period := p.Period
	if period <= 0 {
		period = 1
	}

	var sum, total float64
	weight := 1.0
	freq := 1.0 / period
	for i := 0; i < octaves; i++ {
		sum += weight * gradient(seed, uint64(i), x*freq)
		total += weight
		weight *= p.Persistence
		freq *= p.Lacunarity
	}
	if total == 0 {
		return 0
	}
	return clamp(sum/total, -1, 1)
}

// gradient is 1D Perlin noise scaled to [-1, 1].
func gradient(seed int64, octave uint64, x float64) float64 {
	fl := math.Floor(x)
	i := int64(fl)
	t := x - fl

	g0 := slope(seed, octave, i)
	g1 := slope(seed, octave, i+1)
	n0 := g0 * t
	n1 := g1 * (t - 1)

	// A unit-slope ramp peaks at 0.5 halfway between lattice points.
	return 2 * lerp(n0, n1, fade(t))
}

// slope returns the lattice gradient in [-1, 1] for index i.
func slope(seed int64, octave uint64, i int64) float64 {
	h := mix(uint64(seed) ^ mix(uint64(i)+octave*0x9e3779b97f4a7c15))
	return float64(h>>11)/(1<<53)*2 - 1
}

// mix is the splitmix64 finalizer.
func mix(h uint64) uint64 {
	h += 0x9e3779b97f4a7c15
	h = (h ^ (h >> 30)) * 0xbf58476d1ce4e5b9
	h = (h ^ (h >> 27)) * 0x94d049bb133111eb
	return h ^ (h >> 31)
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
