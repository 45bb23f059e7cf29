package replay

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
)

// isolate keeps config discovery away from the developer's real files.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// flightFrames burns, turns and coasts without reaching the ground.
func flightFrames() []core.InputFrame {
	var frames []core.InputFrame
	for i := 0; i < 40; i++ {
		frames = append(frames, frame(core.ActionFire))
	}
	for i := 0; i < 20; i++ {
		frames = append(frames, frame(core.ActionFire, core.ActionRotateLeft))
	}
	for i := 0; i < 30; i++ {
		frames = append(frames, frame())
	}
	for i := 0; i < 10; i++ {
		frames = append(frames, frame(core.ActionRotateRight))
	}
	return frames
}

func TestRecorderCapturesBits(t *testing.T) {
	r := NewRecorder(7, "hard", "cfg.yaml", 60)
	r.Record(frame(core.ActionFire))
	r.Record(frame())
	r.Record(frame(core.ActionRotateLeft, core.ActionEscape))

	if r.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", r.Len())
	}
	rec := r.Recording()
	if rec.Version != Version || rec.Seed != 7 || rec.Difficulty != "hard" || rec.ConfigPath != "cfg.yaml" || rec.TickRate != 60 {
		t.Errorf("Recording() header = %+v", rec)
	}
	for i, want := range []core.InputFrame{frame(core.ActionFire), frame(), frame(core.ActionRotateLeft, core.ActionEscape)} {
		if rec.Frames[i] != want.Bits() {
			t.Errorf("Frames[%d] = %08b, expected %08b", i, rec.Frames[i], want.Bits())
		}
	}

	rec.Frames[0] = 0
	if r.Recording().Frames[0] == 0 {
		t.Error("Recording() should return a copy of the frames")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replays", "flight.lrp")
	want := Recording{
		Version:    Version,
		Seed:       99,
		Difficulty: "easy",
		TickRate:   30,
		Frames:     []uint8{0, 4, 4, 1, 2, 0},
	}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.Seed != want.Seed || got.Difficulty != want.Difficulty || got.TickRate != want.TickRate ||
		!bytes.Equal(got.Frames, want.Frames) {
		t.Errorf("Load() = %+v, expected %+v", got, want)
	}
}

func TestReadRejectsBadInput(t *testing.T) {
	future, err := msgpack.Marshal(&Recording{Version: Version + 1, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("not a recording")},
		{"empty", nil},
		{"future version", future},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(bytes.NewReader(tt.data)); err == nil {
				t.Error("Read() error = nil, expected failure")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.lrp")); err == nil {
		t.Error("Load() error = nil, expected failure for a missing file")
	}
}

func TestRunMatchesLivePlay(t *testing.T) {
	isolate(t)

	live := lander.NewWithOptions(lander.Options{Preset: "normal"})
	runtime := core.DefaultConfig()
	runtime.Seed = 4242
	live.Reset(runtime)

	r := NewRecorder(live.Seed(), live.Preset(), "", runtime.TickRate)
	for _, in := range flightFrames() {
		r.Record(in)
		live.Step(in)
	}
	liveSnap := live.Snapshot()

	var buf bytes.Buffer
	if err := Write(&buf, r.Recording()); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	rec, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	res, err := Run(rec)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Frames != len(rec.Frames) {
		t.Errorf("Frames = %d, expected %d", res.Frames, len(rec.Frames))
	}
	if res.Hash != liveSnap.Hash() {
		t.Errorf("Run() hash = %x, expected live hash %x\nreplay: %+v\nlive:   %+v",
			res.Hash, liveSnap.Hash(), res.Snapshot, liveSnap)
	}

	again, err := Run(rec)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if again.Hash != res.Hash {
		t.Errorf("second Run() hash = %x, expected %x", again.Hash, res.Hash)
	}
}

func TestRunStopsOnExit(t *testing.T) {
	isolate(t)

	rec := Recording{
		Version: Version,
		Seed:    3,
		Frames: []uint8{
			frame().Bits(),
			frame(core.ActionEscape).Bits(),
			frame(core.ActionFire).Bits(),
			frame(core.ActionFire).Bits(),
		},
	}
	res, err := Run(rec)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Frames != 2 {
		t.Errorf("Frames = %d, expected 2 (stop at escape)", res.Frames)
	}
	if res.Outcome.Phase != lander.PhaseRunning {
		t.Errorf("Outcome.Phase = %v, expected an abandoned running level", res.Outcome.Phase)
	}
}

func TestRunErrors(t *testing.T) {
	isolate(t)

	if _, err := Run(Recording{Version: Version}); err == nil {
		t.Error("Run() error = nil, expected failure without a seed")
	}

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := Run(Recording{Version: Version, Seed: 1, ConfigPath: missing}); err == nil {
		t.Error("Run() error = nil, expected failure for an unreadable config")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("terrain: ["), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Run(Recording{Version: Version, Seed: 1, ConfigPath: bad}); err == nil {
		t.Error("Run() error = nil, expected failure for a malformed config")
	}
}
