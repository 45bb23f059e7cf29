package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/replay"
	"github.com/vovakirdan/tui-lander/internal/storage"
	"github.com/vovakirdan/tui-lander/internal/telemetry"
)

// isolate keeps config discovery and screenshots away from the developer's files.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, opts PlayOptions) Model {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 77
	return NewModel(lander.NewWithOptions(lander.Options{Preset: "normal"}), cfg, opts)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return nm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelEscapeRecordsFlightAndReplay(t *testing.T) {
	isolate(t)
	store := openStore(t)
	recordPath := filepath.Join(t.TempDir(), "flight.lrp")

	m := newTestModel(t, PlayOptions{Store: store, RecordPath: recordPath})
	now := time.Now()

	var cmd tea.Cmd
	for i := 0; i < 5; i++ {
		m, cmd = update(t, m, TickMsg(now))
		if cmd == nil {
			t.Fatalf("tick %d: expected the tick loop to continue", i)
		}
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	m, cmd = update(t, m, TickMsg(now))
	if !isQuit(cmd) {
		t.Fatal("escape should end a standalone level with tea.Quit")
	}
	if !m.IsQuitting() || !m.State().Exit {
		t.Errorf("IsQuitting() = %v, State().Exit = %v, expected both true", m.IsQuitting(), m.State().Exit)
	}

	flights, err := store.RecentFlights(5)
	if err != nil {
		t.Fatalf("RecentFlights() failed: %v", err)
	}
	if len(flights) != 1 {
		t.Fatalf("RecentFlights() = %d records, expected 1", len(flights))
	}
	f := flights[0]
	if f.Outcome != storage.OutcomeAbandoned || f.Seed != 77 || f.Difficulty != "normal" || f.Ticks != 6 {
		t.Errorf("flight = %+v, expected an abandoned normal flight of 6 ticks with seed 77", f)
	}

	rec, err := replay.Load(recordPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(rec.Frames) != 6 || rec.Seed != 77 || rec.Difficulty != "normal" {
		t.Errorf("recording = seed %d, %q, %d frames; expected seed 77, normal, 6 frames", rec.Seed, rec.Difficulty, len(rec.Frames))
	}
	if last := core.FrameFromBits(rec.Frames[5]); !last.Has(core.ActionEscape) {
		t.Error("last recorded frame should carry the escape press")
	}

	res, err := replay.Run(rec)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Frames != 6 || int64(res.Outcome.Ticks) != f.Ticks {
		t.Errorf("replay = %d frames, %d ticks; expected 6 and %d", res.Frames, res.Outcome.Ticks, f.Ticks)
	}

	// Ticks after the end are ignored.
	if _, cmd = update(t, m, TickMsg(now)); cmd != nil {
		t.Error("a finished model should stop ticking")
	}
}

func TestModelQuitKey(t *testing.T) {
	isolate(t)
	store := openStore(t)
	m := newTestModel(t, PlayOptions{Store: store})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !isQuit(cmd) || !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty while quitting")
	}

	st, err := store.FlightStats()
	if err != nil {
		t.Fatalf("FlightStats() failed: %v", err)
	}
	if st.Attempts != 1 || st.Landings != 0 || st.Crashes != 0 {
		t.Errorf("FlightStats() = %+v, expected one abandoned attempt", st)
	}
}

func TestModelHeldFireBurnsFuel(t *testing.T) {
	isolate(t)
	m := newTestModel(t, PlayOptions{})
	g := m.game.(*lander.Game)
	full := g.Sim().Player().Fuel

	now := time.Now()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	for i := 0; i < 3; i++ {
		m, _ = update(t, m, TickMsg(now.Add(time.Duration(i)*time.Millisecond)))
	}
	if fuel := g.Sim().Player().Fuel; fuel >= full {
		t.Errorf("Fuel = %d, expected a held burn to use fuel from %d", fuel, full)
	}

	// Past the hold window the engine is off again.
	burnt := g.Sim().Player().Fuel
	m, _ = update(t, m, TickMsg(now.Add(time.Second)))
	if fuel := g.Sim().Player().Fuel; fuel != burnt {
		t.Errorf("Fuel = %d, expected %d once the hold expired", fuel, burnt)
	}
}

func TestModelPublishesTelemetry(t *testing.T) {
	isolate(t)
	hub := telemetry.NewHub(1, nil) // not running: the buffer fills after one frame
	m := newTestModel(t, PlayOptions{Hub: hub})

	now := time.Now()
	m, _ = update(t, m, TickMsg(now))
	m, _ = update(t, m, TickMsg(now))
	if hub.Dropped() != 1 {
		t.Errorf("Dropped() = %d, expected one frame published per tick", hub.Dropped())
	}
}

func TestModelResizeKeepsLevel(t *testing.T) {
	isolate(t)
	m := newTestModel(t, PlayOptions{})
	g := m.game.(*lander.Game)

	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.Sim().Tick() != 1 {
		t.Errorf("Tick() = %d, expected resize to keep the running level", g.Sim().Tick())
	}

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 30 {
		t.Errorf("View() = %d lines, expected 30", len(lines))
	}
}

func TestOutcomeName(t *testing.T) {
	tests := []struct {
		phase lander.Phase
		want  string
	}{
		{lander.PhaseWin, storage.OutcomeLanded},
		{lander.PhaseLose, storage.OutcomeCrashed},
		{lander.PhaseRunning, storage.OutcomeAbandoned},
	}
	for _, tt := range tests {
		if got := outcomeName(lander.Outcome{Phase: tt.phase}); got != tt.want {
			t.Errorf("outcomeName(%v) = %q, expected %q", tt.phase, got, tt.want)
		}
	}
}
