package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/replay"
	"github.com/vovakirdan/tui-lander/internal/storage"
	"github.com/vovakirdan/tui-lander/internal/telemetry"
)

// PlayOptions wires the optional collaborators of a play session.
type PlayOptions struct {
	Store      *storage.Store // Scores and flight records; nil disables persistence
	Hub        *telemetry.Hub // Per-tick snapshots; nil disables telemetry
	RecordPath string         // Replay file written when the level ends
	ConfigPath string         // Stored in recordings so replays load the same config
	Logger     *log.Logger

	InitialHold time.Duration
	RepeatHold  time.Duration
}

// Model is the Bubble Tea model for running a level.
type Model struct {
	game     registry.Game
	flight   *lander.Game // Set when game is a lander; enables records and telemetry
	screen   *core.Screen
	config   core.RuntimeConfig
	opts     PlayOptions
	keys     *KeyMapper
	holds    *HoldTracker
	recorder *replay.Recorder

	gameState   core.GameState
	quitting    bool
	embedded    bool // Running inside a session: exit returns to the menu
	backToMenu  bool
	finished    bool
	flightSaved bool // Whether the flight has been recorded for this level
}

// NewModel creates a new Bubble Tea model and enters the first level.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts PlayOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	m := Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		opts:   opts,
		keys:   NewKeyMapper(),
		holds:  NewHoldTracker(opts.InitialHold, opts.RepeatHold),
	}
	m.flight, _ = game.(*lander.Game)
	m.startLevel()
	return m
}

func (m *Model) startLevel() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.flightSaved = false
	m.finished = false
	m.holds.Release()

	if m.flight != nil && m.opts.RecordPath != "" {
		m.recorder = replay.NewRecorder(m.flight.Seed(), m.flight.Preset(), m.opts.ConfigPath, m.config.TickRate)
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The renderer scales to the screen, so the level keeps running.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}
	m.holds.Press(action, time.Now())
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.finished {
		return m, nil
	}

	in := m.holds.Frame(now)
	if m.recorder != nil {
		m.recorder.Record(in)
	}

	result := m.game.Step(in)
	m.gameState = result.State

	if m.flight != nil && m.opts.Hub != nil {
		m.opts.Hub.Publish(m.flight.Snapshot())
	}

	if m.gameState.GameOver && !m.flightSaved {
		m.saveFlight()
	}

	if m.gameState.Exit {
		m.finish()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// finish records an abandoned flight and writes the replay, once per level.
func (m *Model) finish() {
	if m.finished {
		return
	}
	m.finished = true
	if !m.flightSaved {
		m.saveFlight()
	}
	if m.recorder != nil {
		rec := m.recorder.Recording()
		if err := replay.Save(m.opts.RecordPath, rec); err != nil {
			m.opts.Logger.Warn("could not save replay", "path", m.opts.RecordPath, "err", err)
		} else {
			m.opts.Logger.Info("replay saved", "path", m.opts.RecordPath, "frames", len(rec.Frames))
		}
	}
}

// saveFlight persists the score and, for a lander, the flight record.
func (m *Model) saveFlight() {
	m.flightSaved = true
	if m.opts.Store == nil {
		return
	}

	if m.gameState.Score > 0 {
		if _, err := m.opts.Store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			m.opts.Logger.Warn("could not save score", "err", err)
		}
	}

	if m.flight == nil {
		return
	}
	out := m.flight.Outcome()
	rec := storage.FlightRecord{
		Seed:       m.flight.Seed(),
		Difficulty: m.flight.Preset(),
		Outcome:    outcomeName(out),
		Score:      out.Score,
		FuelLeft:   int(out.Fuel),
		Multiplier: out.Multiplier,
		Distance:   out.Distance,
		Ticks:      int64(out.Ticks),
	}
	if _, err := m.opts.Store.SaveFlight(rec); err != nil {
		m.opts.Logger.Warn("could not save flight", "err", err)
		return
	}
	m.opts.Logger.Debug("flight recorded", "outcome", rec.Outcome, "score", rec.Score, "seed", rec.Seed)
}

func outcomeName(o lander.Outcome) string {
	switch o.Phase {
	case lander.PhaseWin:
		return storage.OutcomeLanded
	case lander.PhaseLose:
		return storage.OutcomeCrashed
	default:
		return storage.OutcomeAbandoned
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".lander", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user asked to leave the program.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the level ended inside a session.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single level.
func Run(game registry.Game, cfg core.RuntimeConfig, opts PlayOptions) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
