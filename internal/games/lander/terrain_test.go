package lander

import (
	"math"
	"reflect"
	"slices"
	"testing"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/physics"
)

func chunkSpec(index int, amplitude, padProbability float64) ChunkSpec {
	cfg := config.DefaultLanderConfig()
	return ChunkSpec{
		Seed:           42,
		Index:          index,
		Terrain:        cfg.Terrain,
		Pads:           cfg.Pads,
		AmplitudeLeft:  amplitude,
		AmplitudeRight: amplitude,
		PadProbability: padProbability,
	}
}

func TestTerrainWindow(t *testing.T) {
	cfg := config.DefaultLanderConfig()
	s := NewTerrainStreamer(cfg, newFakeWorld(), 1, 0)

	tests := []struct {
		x      float64
		lo, hi int
	}{
		{0, -4, 4},
		{399.9, -4, 4},
		{400, -3, 5},
		{-0.1, -5, 3},
		{-400, -5, 3},
		{-400.1, -6, 2},
	}
	for _, tt := range tests {
		lo, hi := s.Window(tt.x)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("Window(%v) = [%d, %d], expected [%d, %d]", tt.x, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestTerrainUpdateMatchesWindow(t *testing.T) {
	cfg := config.DefaultLanderConfig()
	w := newFakeWorld()
	s := NewTerrainStreamer(cfg, w, 7, 0)

	xs := []float64{0, 150, 420, 1300, 1299, -2500, -2400, 10000, 0}
	for _, x := range xs {
		before := s.Indices()
		diff := s.Update(x)

		lo, hi := s.Window(x)
		var want []int
		for i := lo; i <= hi; i++ {
			want = append(want, i)
		}
		if got := s.Indices(); !slices.Equal(got, want) {
			t.Fatalf("Update(%v) live = %v, expected %v", x, got, want)
		}
		if !slices.IsSorted(diff.Spawned) || !slices.IsSorted(diff.Despawned) {
			t.Errorf("Update(%v) diff = %+v, expected ascending order", x, diff)
		}
		for _, i := range diff.Despawned {
			if !slices.Contains(before, i) {
				t.Errorf("Update(%v) despawned %d, which was not live", x, i)
			}
		}
		for _, i := range diff.Spawned {
			if slices.Contains(before, i) {
				t.Errorf("Update(%v) spawned %d, which was already live", x, i)
			}
		}
		if n := w.count(physics.TagTerrain); n != len(want) {
			t.Errorf("Update(%v) terrain bodies = %d, expected %d", x, n, len(want))
		}
		if n := w.count(physics.TagPad); n != len(s.Pads()) {
			t.Errorf("Update(%v) pad sensors = %d, expected %d", x, n, len(s.Pads()))
		}
	}
}

func TestTerrainUpdateIncremental(t *testing.T) {
	cfg := config.DefaultLanderConfig()
	s := NewTerrainStreamer(cfg, newFakeWorld(), 7, 0)

	first := s.Update(0)
	if !slices.Equal(first.Spawned, []int{-4, -3, -2, -1, 0, 1, 2, 3, 4}) || len(first.Despawned) != 0 {
		t.Errorf("first Update() = %+v, expected the full window spawned", first)
	}

	if diff := s.Update(200); len(diff.Spawned) != 0 || len(diff.Despawned) != 0 {
		t.Errorf("Update() within the same chunk = %+v, expected no changes", diff)
	}

	diff := s.Update(400)
	if !slices.Equal(diff.Spawned, []int{5}) || !slices.Equal(diff.Despawned, []int{-4}) {
		t.Errorf("Update() one chunk right = %+v, expected spawn [5] despawn [-4]", diff)
	}
}

func TestTerrainSeamsContinuous(t *testing.T) {
	cfg := config.DefaultLanderConfig()
	cfg.Pads.Probability = 1
	s := NewTerrainStreamer(cfg, newFakeWorld(), 99, 0)
	s.Update(0)

	idx := s.Indices()
	for i := 1; i < len(idx); i++ {
		left, _ := s.Chunk(idx[i-1])
		right, _ := s.Chunk(idx[i])
		lh := left.Heights[len(left.Heights)-1]
		rh := right.Heights[0]
		if math.Abs(lh-rh) > 1e-9 {
			t.Errorf("seam %d|%d: %v != %v", idx[i-1], idx[i], lh, rh)
		}
	}
}

func TestGenerateChunkSamples(t *testing.T) {
	spec := chunkSpec(3, 200, 0)
	c := GenerateChunk(spec)

	wantN := int(spec.Terrain.ChunkWidth/spec.Terrain.Granularity) + 1
	if len(c.Heights) != wantN || len(c.Xs) != wantN {
		t.Fatalf("samples = %d, expected %d", len(c.Heights), wantN)
	}
	if c.OriginX != 1200 {
		t.Errorf("OriginX = %v, expected 1200", c.OriginX)
	}
	if c.Xs[wantN-1] != spec.Terrain.ChunkWidth {
		t.Errorf("last x = %v, expected %v", c.Xs[wantN-1], spec.Terrain.ChunkWidth)
	}
	for i, h := range c.Heights {
		if h < spec.Terrain.BaseHeight-200 || h > spec.Terrain.BaseHeight+200 {
			t.Errorf("Heights[%d] = %v, expected within amplitude of base", i, h)
		}
	}
	if c.Pad != nil {
		t.Error("Pad should be nil with probability 0")
	}
}

func TestGenerateChunkDeterministic(t *testing.T) {
	for _, idx := range []int{-10, -1, 0, 1, 17} {
		a := GenerateChunk(chunkSpec(idx, 200, 0.5))
		b := GenerateChunk(chunkSpec(idx, 200, 0.5))
		if !reflect.DeepEqual(a, b) {
			t.Errorf("GenerateChunk(%d) differs between calls", idx)
		}
	}

	other := chunkSpec(0, 200, 0.5)
	other.Seed = 43
	if reflect.DeepEqual(GenerateChunk(chunkSpec(0, 200, 0.5)).Heights, GenerateChunk(other).Heights) {
		t.Error("different seeds should give different terrain")
	}
}

func TestGenerateChunkFlatPad(t *testing.T) {
	spec := chunkSpec(2, 0, 1)
	c := GenerateChunk(spec)

	if c.Pad == nil {
		t.Fatal("expected a pad on flat terrain with probability 1")
	}
	// The first window starts at sample 1.
	g := spec.Terrain.Granularity
	wantX := c.OriginX + (g+g+spec.Pads.Width)/2
	if c.Pad.Position.X != wantX || c.Pad.Position.Y != spec.Terrain.BaseHeight {
		t.Errorf("Pad.Position = %v, expected (%v, %v)", c.Pad.Position, wantX, spec.Terrain.BaseHeight)
	}
	if c.Pad.Width != spec.Pads.Width {
		t.Errorf("Pad.Width = %v, expected %v", c.Pad.Width, spec.Pads.Width)
	}
	if !slices.Contains(spec.Pads.Multipliers, c.Pad.ScoreMultiplier) {
		t.Errorf("ScoreMultiplier = %v, expected one of %v", c.Pad.ScoreMultiplier, spec.Pads.Multipliers)
	}
}

func TestGenerateChunkPadFlattening(t *testing.T) {
	padsSeen := 0
	for idx := -20; idx <= 20; idx++ {
		spec := chunkSpec(idx, 200, 1)
		raw := GenerateChunk(chunkSpec(idx, 200, 0))
		c := GenerateChunk(spec)

		span := padSamples(spec.Pads.Width, spec.Terrain.Granularity)
		start, ok := findPadWindow(raw.Heights, span, spec.Pads.FlatnessTolerance)
		if !ok {
			if c.Pad != nil {
				t.Errorf("chunk %d: pad placed without a qualifying window", idx)
			}
			continue
		}
		if c.Pad == nil {
			t.Errorf("chunk %d: qualifying window at %d but no pad", idx, start)
			continue
		}
		padsSeen++

		end := start + span
		var sum float64
		for i := start; i <= end; i++ {
			sum += raw.Heights[i]
		}
		avg := sum / float64(span+1)

		for i := range c.Heights {
			want := raw.Heights[i]
			if i >= start && i <= end {
				want = avg
			}
			if math.Abs(c.Heights[i]-want) > 1e-9 {
				t.Errorf("chunk %d: Heights[%d] = %v, expected %v", idx, i, c.Heights[i], want)
			}
		}
		if start < 1 || end >= len(c.Heights)-1 {
			t.Errorf("chunk %d: window [%d, %d] touches a chunk edge", idx, start, end)
		}
		if math.Abs(c.Pad.Position.Y-avg) > 1e-9 {
			t.Errorf("chunk %d: Pad.Position.Y = %v, expected %v", idx, c.Pad.Position.Y, avg)
		}
	}
	if padsSeen == 0 {
		t.Error("expected at least one pad across 41 chunks")
	}
}

func TestFindPadWindow(t *testing.T) {
	tests := []struct {
		name      string
		heights   []float64
		span      int
		tolerance float64
		want      int
		ok        bool
	}{
		{"leftmost interior window", []float64{0, 10, 50, 12, 11, 0}, 2, 3, 1, true},
		{"skips steep interior start", []float64{0, 0, 50, 20, 60, 21, 0}, 2, 2, 3, true},
		// The first and last samples are shared with neighbouring chunks and never flattened.
		{"window on first sample skipped", []float64{7, 0, 7, 50, 90, 0}, 2, 1, 0, false},
		{"window on last sample skipped", []float64{0, 40, 9, 30, 9}, 2, 1, 0, false},
		{"first-sample window skipped for interior one", []float64{5, 0, 5, 3, 5, 0, 5}, 2, 1, 2, true},
		{"four samples leave no interior window", []float64{5, 100, 200, 5}, 2, 1, 0, false},
		{"too short", []float64{1, 1, 1}, 2, 10, 0, false},
		{"none flat enough", []float64{0, 1, 20, 40, 60, 80, 0}, 2, 5, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := findPadWindow(tt.heights, tt.span, tt.tolerance)
			if got != tt.want || ok != tt.ok {
				t.Errorf("findPadWindow() = %d, %v, expected %d, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestChunkHeightAt(t *testing.T) {
	c := TerrainChunk{
		OriginX: 100,
		Xs:      []float64{0, 10, 20},
		Heights: []float64{0, 10, 30},
	}
	tests := []struct {
		x    float64
		want float64
		ok   bool
	}{
		{100, 0, true},
		{105, 5, true},
		{110, 10, true},
		{115, 20, true},
		{120, 30, true},
		{99, 0, false},
		{121, 0, false},
	}
	for _, tt := range tests {
		got, ok := c.HeightAt(tt.x)
		if got != tt.want || ok != tt.ok {
			t.Errorf("HeightAt(%v) = %v, %v, expected %v, %v", tt.x, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTerrainDefaultParamsConstant(t *testing.T) {
	cfg := config.DefaultLanderConfig()
	s := NewTerrainStreamer(cfg, newFakeWorld(), 5, 0)

	for _, idx := range []int{-41, -11, -1, 0, 1, 11, 41, 400} {
		spec := s.Spec(idx)
		if spec.PadProbability != cfg.Pads.Probability {
			t.Errorf("Spec(%d).PadProbability = %v, expected %v", idx, spec.PadProbability, cfg.Pads.Probability)
		}
		if spec.AmplitudeLeft != cfg.Terrain.Amplitude || spec.AmplitudeRight != cfg.Terrain.Amplitude {
			t.Errorf("Spec(%d) amplitude = %v..%v, expected %v", idx, spec.AmplitudeLeft, spec.AmplitudeRight, cfg.Terrain.Amplitude)
		}
	}

	hard := config.DefaultLanderConfig()
	config.ApplyLanderPreset(&hard, config.DifficultyHard)
	hs := NewTerrainStreamer(hard, newFakeWorld(), 5, 0)
	if near, far := hs.Spec(1), hs.Spec(41); far.PadProbability >= near.PadProbability || far.AmplitudeLeft <= near.AmplitudeLeft {
		t.Errorf("hard Spec(41) = %+v, expected rougher terrain and rarer pads than Spec(1) = %+v", far, near)
	}
}

func TestTerrainPadMultiplier(t *testing.T) {
	cfg := config.DefaultLanderConfig()
	cfg.Terrain.Amplitude = 0
	cfg.Pads.Probability = 1
	w := newFakeWorld()
	s := NewTerrainStreamer(cfg, w, 5, 0)
	s.Update(0)

	pads := s.Pads()
	if len(pads) != 9 {
		t.Fatalf("Pads() = %d, expected one per chunk", len(pads))
	}
	sensor := pads[0].Sensor
	if m, ok := s.PadMultiplier(sensor); !ok || m != pads[0].ScoreMultiplier {
		t.Errorf("PadMultiplier() = %v, %v, expected %v, true", m, ok, pads[0].ScoreMultiplier)
	}
	if _, ok := s.PadMultiplier(physics.BodyID(9999)); ok {
		t.Error("PadMultiplier() of an unknown body should be false")
	}

	// Pad sensor sits on top of the flattened segment.
	center := w.State(sensor).Position
	wantY := pads[0].Position.Y + cfg.Pads.SensorHeight/2
	if center.Y != wantY {
		t.Errorf("sensor centre Y = %v, expected %v", center.Y, wantY)
	}

	s.Update(100000)
	if _, ok := s.PadMultiplier(sensor); ok {
		t.Error("PadMultiplier() should be false after the chunk despawns")
	}

	cleared := s.Clear()
	if len(cleared) != 9 || len(s.Indices()) != 0 {
		t.Errorf("Clear() = %v, live %v, expected 9 cleared and none live", cleared, s.Indices())
	}
	if n := len(w.bodies); n != 0 {
		t.Errorf("bodies after Clear() = %d, expected 0", n)
	}
}
