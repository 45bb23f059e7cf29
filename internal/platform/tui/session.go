package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/storage"
	"github.com/vovakirdan/tui-lander/internal/telemetry"
)

// SessionOptions configures a menu-driven session.
type SessionOptions struct {
	Store      *storage.Store
	Hub        *telemetry.Hub
	ConfigPath string
	Logger     *log.Logger
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow: menu -> level -> menu, plus the scoreboard.
// This is the top-level model used by the menu command and SSH sessions.
type SessionModel struct {
	opts     SessionOptions
	config   core.RuntimeConfig
	username string
	screen   sessionScreen
	menu     MenuModel
	game     *Model
	board    *ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions, cfg core.RuntimeConfig, username string) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		opts:     opts,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(opts.Store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		board := NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.board = &board
		m.screen = screenScores
		return m, board.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game := lander.NewWithOptions(lander.Options{
			ConfigPath: m.opts.ConfigPath,
			Preset:     string(selected.Preset),
		})

		cfg := m.menu.Config()
		cfg.Seed = time.Now().UnixNano()
		gm := NewModel(game, cfg, PlayOptions{
			Store:      m.opts.Store,
			Hub:        m.opts.Hub,
			ConfigPath: m.opts.ConfigPath,
			Logger:     m.opts.Logger,
		})
		gm.embedded = true
		m.game = &gm
		m.screen = screenGame

		m.opts.Logger.Info("level started",
			"user", m.username,
			"difficulty", string(selected.Preset),
			"seed", game.Seed(),
		)
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when a level is running.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.opts.Logger.Info("level ended", "user", m.username, "score", m.game.State().Score)
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.board = &board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board.IsGoingBack() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m *SessionModel) backToMenu() {
	m.game = nil
	m.board = nil
	m.screen = screenMenu
	m.menu = NewMenuModel(m.opts.Store, m.config)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.board.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs a local menu-driven session.
func RunSession(opts SessionOptions, cfg core.RuntimeConfig, username string) error {
	p := tea.NewProgram(
		NewSessionModel(opts, cfg, username),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
