package replay

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
)

// Result is the end state of a re-simulated recording.
type Result struct {
	Outcome  lander.Outcome
	Snapshot lander.Snapshot
	Hash     uint64
	Frames   int // Frames consumed before the level asked to exit
}

// Run replays a recording on a fresh level and returns where it ended.
// An explicit config path that cannot be loaded is an error, since the
// flight would not match the one recorded.
func Run(rec Recording) (Result, error) {
	if rec.Seed == 0 {
		return Result{}, errors.New("replay: recording has no seed")
	}

	g := lander.NewWithOptions(lander.Options{
		ConfigPath: rec.ConfigPath,
		Preset:     rec.Difficulty,
	})
	runtime := core.DefaultConfig()
	runtime.Seed = rec.Seed
	if rec.TickRate > 0 {
		runtime.TickRate = rec.TickRate
	}
	g.Reset(runtime)
	if err := g.ConfigError(); err != nil && rec.ConfigPath != "" {
		return Result{}, fmt.Errorf("replay: cannot load config: %w", err)
	}

	n := 0
	for _, bits := range rec.Frames {
		g.Step(core.FrameFromBits(bits))
		n++
		if g.State().Exit {
			break
		}
	}

	snap := g.Snapshot()
	return Result{
		Outcome:  g.Outcome(),
		Snapshot: snap,
		Hash:     snap.Hash(),
		Frames:   n,
	}, nil
}
