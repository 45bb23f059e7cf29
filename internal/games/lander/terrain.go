package lander

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/noise"
	"github.com/vovakirdan/tui-lander/internal/physics"
)

// LandingPad is a flattened stretch of a chunk with a sensor on top.
type LandingPad struct {
	Position        core.Vec2 // Window midpoint at the flattened height
	Width           float64
	ScoreMultiplier float64
	Sensor          physics.BodyID
}

// TerrainChunk is one fixed-width slice of terrain.
// Heights are sampled at Xs offsets from OriginX; Xs spans [0, ChunkWidth]
// so neighbouring chunks share their boundary sample.
type TerrainChunk struct {
	Index   int
	OriginX float64
	Xs      []float64
	Heights []float64
	Pad     *LandingPad
	Body    physics.BodyID
}

// Points returns the chunk surface in world coordinates.
func (c *TerrainChunk) Points() []core.Vec2 {
	pts := make([]core.Vec2, len(c.Heights))
	for i, h := range c.Heights {
		pts[i] = core.V2(c.OriginX+c.Xs[i], h)
	}
	return pts
}

// HeightAt interpolates the surface at world x. ok is false outside the chunk.
func (c *TerrainChunk) HeightAt(x float64) (h float64, ok bool) {
	local := x - c.OriginX
	n := len(c.Xs)
	if n < 2 || local < 0 || local > c.Xs[n-1] {
		return 0, false
	}
	i := sort.SearchFloat64s(c.Xs, local)
	if i == 0 {
		return c.Heights[0], true
	}
	x0, x1 := c.Xs[i-1], c.Xs[i]
	t := (local - x0) / (x1 - x0)
	return c.Heights[i-1] + (c.Heights[i]-c.Heights[i-1])*t, true
}

// ChunkSpec is everything GenerateChunk needs for one index.
type ChunkSpec struct {
	Seed           int64
	Index          int
	Terrain        config.TerrainConfig
	Pads           config.PadConfig
	AmplitudeLeft  float64 // Amplitude at the chunk's left edge
	AmplitudeRight float64 // Amplitude at the chunk's right edge
	PadProbability float64
}

// GenerateChunk builds the heights and optional pad for one chunk.
// It is a pure function of spec and never fails; physics handles are left unset.
func GenerateChunk(spec ChunkSpec) TerrainChunk {
	cw := spec.Terrain.ChunkWidth
	g := spec.Terrain.Granularity
	origin := float64(spec.Index) * cw
	params := noiseParams(spec.Terrain.Noise)

	n := int(math.Ceil(cw / g))
	xs := make([]float64, n+1)
	heights := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		x := math.Min(float64(i)*g, cw)
		amp := spec.AmplitudeLeft + (spec.AmplitudeRight-spec.AmplitudeLeft)*(x/cw)
		xs[i] = x
		heights[i] = noise.Sample(spec.Seed, origin+x, params)*amp + spec.Terrain.BaseHeight
	}

	chunk := TerrainChunk{
		Index:   spec.Index,
		OriginX: origin,
		Xs:      xs,
		Heights: heights,
	}

	rng := rand.New(rand.NewSource(chunkSeed(spec.Seed, spec.Index)))
	if rng.Float64() >= spec.PadProbability {
		return chunk
	}

	start, ok := findPadWindow(heights, padSamples(spec.Pads.Width, g), spec.Pads.FlatnessTolerance)
	if !ok {
		return chunk
	}
	end := start + padSamples(spec.Pads.Width, g)

	var sum float64
	for i := start; i <= end; i++ {
		sum += heights[i]
	}
	avg := sum / float64(end-start+1)
	for i := start; i <= end; i++ {
		heights[i] = avg
	}

	mult := 1.0
	if len(spec.Pads.Multipliers) > 0 {
		mult = spec.Pads.Multipliers[rng.Intn(len(spec.Pads.Multipliers))]
	}
	chunk.Pad = &LandingPad{
		Position:        core.V2(origin+(xs[start]+xs[end])/2, avg),
		Width:           spec.Pads.Width,
		ScoreMultiplier: mult,
	}
	return chunk
}

// padSamples is the number of sample intervals a pad spans.
func padSamples(width, granularity float64) int {
	return max(1, int(math.Ceil(width/granularity)))
}

// findPadWindow returns the first window [i, i+span] whose endpoint heights
// differ by at most tolerance. The first and last samples are never part of
// a window so flattening cannot break the seam with neighbouring chunks.
func findPadWindow(heights []float64, span int, tolerance float64) (int, bool) {
	last := len(heights) - 1
	for i := 1; i+span < last; i++ {
		if math.Abs(heights[i]-heights[i+span]) <= tolerance {
			return i, true
		}
	}
	return 0, false
}

// chunkSeed hashes (seed, index) with FNV-1a.
func chunkSeed(seed int64, index int) int64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(index)))
	h := fnv.New64a()
	h.Write(buf[:])
	return int64(h.Sum64())
}

func noiseParams(c config.NoiseConfig) noise.Params {
	return noise.Params{
		Octaves:     c.Octaves,
		Persistence: c.Persistence,
		Lacunarity:  c.Lacunarity,
		Period:      c.Period,
	}
}

// ChunkDiff lists chunk indices created and destroyed by one Update, ascending.
type ChunkDiff struct {
	Spawned   []int
	Despawned []int
}

// TerrainStreamer keeps exactly the chunks around the player alive.
type TerrainStreamer struct {
	terrain    config.TerrainConfig
	pads       config.PadConfig
	difficulty *config.DifficultyManager
	world      physics.World
	seed       int64
	spawnIndex int

	chunks  map[int]*TerrainChunk
	sensors map[physics.BodyID]*LandingPad
}

// NewTerrainStreamer creates a streamer. Difficulty grows with the distance
// from the chunk containing spawnX.
func NewTerrainStreamer(cfg config.LanderConfig, world physics.World, seed int64, spawnX float64) *TerrainStreamer {
	return &TerrainStreamer{
		terrain:    cfg.Terrain,
		pads:       cfg.Pads,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		world:      world,
		seed:       seed,
		spawnIndex: core.FloorDiv(spawnX, cfg.Terrain.ChunkWidth),
		chunks:     make(map[int]*TerrainChunk),
		sensors:    make(map[physics.BodyID]*LandingPad),
	}
}

// Window returns the inclusive range of chunk indices needed around playerX.
func (s *TerrainStreamer) Window(playerX float64) (lo, hi int) {
	current := core.FloorDiv(playerX, s.terrain.ChunkWidth)
	span := int(math.Ceil(s.terrain.ViewportWidth/s.terrain.ChunkWidth)) + 2
	half := span/2 + s.terrain.BufferChunks
	return current - half, current + half
}

// Update despawns chunks outside the window around playerX and spawns the
// missing ones. The live set equals the window afterwards.
func (s *TerrainStreamer) Update(playerX float64) ChunkDiff {
	lo, hi := s.Window(playerX)
	var diff ChunkDiff

	for idx := range s.chunks {
		if idx < lo || idx > hi {
			diff.Despawned = append(diff.Despawned, idx)
		}
	}
	sort.Ints(diff.Despawned)
	for _, idx := range diff.Despawned {
		s.despawn(idx)
	}

	for idx := lo; idx <= hi; idx++ {
		if _, ok := s.chunks[idx]; ok {
			continue
		}
		s.spawn(idx)
		diff.Spawned = append(diff.Spawned, idx)
	}
	return diff
}

// Spec returns the generation parameters for a chunk index.
func (s *TerrainStreamer) Spec(index int) ChunkSpec {
	distance := index - s.spawnIndex
	// Amplitude is evaluated per edge so neighbouring chunks agree on their shared sample.
	edge := func(e int) int {
		if e > s.spawnIndex {
			return e - s.spawnIndex - 1
		}
		return s.spawnIndex - e
	}
	return ChunkSpec{
		Seed:           s.seed,
		Index:          index,
		Terrain:        s.terrain,
		Pads:           s.pads,
		AmplitudeLeft:  s.difficulty.Amplitude(s.terrain.Amplitude, edge(index)),
		AmplitudeRight: s.difficulty.Amplitude(s.terrain.Amplitude, edge(index+1)),
		PadProbability: s.difficulty.PadProbability(s.pads.Probability, distance),
	}
}

func (s *TerrainStreamer) spawn(index int) {
	chunk := GenerateChunk(s.Spec(index))
	chunk.Body = s.world.SpawnTerrain(chunk.Points(), s.terrain.Friction)
	if chunk.Pad != nil {
		center := chunk.Pad.Position.Add(core.V2(0, s.pads.SensorHeight/2))
		chunk.Pad.Sensor = s.world.SpawnPad(center, s.pads.Width, s.pads.SensorHeight)
		s.sensors[chunk.Pad.Sensor] = chunk.Pad
	}
	s.chunks[index] = &chunk
}

func (s *TerrainStreamer) despawn(index int) {
	chunk := s.chunks[index]
	if chunk.Pad != nil {
		s.world.Despawn(chunk.Pad.Sensor)
		delete(s.sensors, chunk.Pad.Sensor)
	}
	s.world.Despawn(chunk.Body)
	delete(s.chunks, index)
}

// Clear despawns every live chunk and returns their indices.
func (s *TerrainStreamer) Clear() []int {
	idx := s.Indices()
	for _, i := range idx {
		s.despawn(i)
	}
	return idx
}

// Indices returns the live chunk indices in ascending order.
func (s *TerrainStreamer) Indices() []int {
	idx := make([]int, 0, len(s.chunks))
	for i := range s.chunks {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// Chunk returns a live chunk.
func (s *TerrainStreamer) Chunk(index int) (*TerrainChunk, bool) {
	c, ok := s.chunks[index]
	return c, ok
}

// HeightAt returns the surface height at world x if its chunk is live.
func (s *TerrainStreamer) HeightAt(x float64) (float64, bool) {
	c, ok := s.chunks[core.FloorDiv(x, s.terrain.ChunkWidth)]
	if !ok {
		return 0, false
	}
	return c.HeightAt(x)
}

// Pads returns every live landing pad ordered by x.
func (s *TerrainStreamer) Pads() []*LandingPad {
	var pads []*LandingPad
	for _, i := range s.Indices() {
		if p := s.chunks[i].Pad; p != nil {
			pads = append(pads, p)
		}
	}
	return pads
}

// PadMultiplier looks up the multiplier of a live pad sensor.
func (s *TerrainStreamer) PadMultiplier(sensor physics.BodyID) (float64, bool) {
	p, ok := s.sensors[sensor]
	if !ok {
		return 0, false
	}
	return p.ScoreMultiplier, true
}
