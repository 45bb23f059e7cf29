// Package replay records per-tick lander input and re-simulates it headlessly.
//
// A recording stores the level seed and config source plus one action
// bitmask per tick. Terrain generation is seeded and the physics step is
// deterministic, so feeding the frames back reproduces the flight.
package replay

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Version is the current recording format version.
const Version = 1

// Recording is the on-disk replay format.
type Recording struct {
	Version    int     `msgpack:"version"`
	Seed       int64   `msgpack:"seed"`
	Difficulty string  `msgpack:"difficulty"`
	ConfigPath string  `msgpack:"config_path"`
	TickRate   int     `msgpack:"tick_rate"`
	Frames     []uint8 `msgpack:"frames"`
}

// Recorder captures the input frames fed to a running game.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a level entered with the given seed.
func NewRecorder(seed int64, difficulty, configPath string, tickRate int) *Recorder {
	return &Recorder{rec: Recording{
		Version:    Version,
		Seed:       seed,
		Difficulty: difficulty,
		ConfigPath: configPath,
		TickRate:   tickRate,
	}}
}

// Record appends the input of one tick.
func (r *Recorder) Record(in core.InputFrame) {
	r.rec.Frames = append(r.rec.Frames, in.Bits())
}

// Len returns the number of recorded ticks.
func (r *Recorder) Len() int {
	return len(r.rec.Frames)
}

// Recording returns a copy of what has been captured so far.
func (r *Recorder) Recording() Recording {
	out := r.rec
	out.Frames = append([]uint8(nil), r.rec.Frames...)
	return out
}

// Write encodes a recording to w.
func Write(w io.Writer, rec Recording) error {
	if err := msgpack.NewEncoder(w).Encode(&rec); err != nil {
		return fmt.Errorf("replay: cannot encode recording: %w", err)
	}
	return nil
}

// Read decodes a recording from r and checks its version.
func Read(r io.Reader) (Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return Recording{}, fmt.Errorf("replay: cannot decode recording: %w", err)
	}
	if rec.Version != Version {
		return Recording{}, fmt.Errorf("replay: unsupported version %d (expected %d)", rec.Version, Version)
	}
	return rec, nil
}

// Save writes a recording to path, creating parent directories.
func Save(path string, rec Recording) error {
	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("replay: cannot encode recording: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("replay: cannot create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("replay: cannot write %s: %w", path, err)
	}
	return nil
}

// Load reads a recording saved with Save.
func Load(path string) (Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return Recording{}, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
