// Package registry maps game IDs to factories so the CLI and the SSH server
// can build a level without importing a game package directly. The lander
// registers itself from init().
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Game is what the platform drives once per tick. Implementations stay free
// of Bubble Tea; input, timing and drawing belong to the front end.
type Game interface {
	// ID is the stable key used by the CLI and score storage.
	ID() string
	Title() string

	// Reset starts a fresh level for the given viewport and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick with the actions held this frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen buffer.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a new, not yet reset, game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory under info.ID. Registering an ID twice or an
// empty ID panics.
func Register(info GameInfo, f Factory) {
	if info.ID == "" || f == nil {
		panic("registry: game needs an ID and a factory")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[info.ID]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}
