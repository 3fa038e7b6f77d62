// Package registry keeps the playable levels by id. Game packages register
// a factory per level in init(), so the frontends can list and start levels
// without importing them directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Game is what the frontends drive. Implementations hold no terminal state;
// the platform maps keys to actions, paces the ticks and draws the screen.
type Game interface {
	// ID returns the level id used on the command line and in stored runs.
	ID() string

	// Title returns the display name.
	Title() string

	// Reset builds the level and starts a fresh attempt.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns score, game over and pause flags.
	State() core.GameState
}

// Finisher is implemented by games that end on their own, for example when
// the player confirms the results screen.
type Finisher interface {
	Done() bool
}

// Rated is implemented by games that carry a difficulty label.
type Rated interface {
	Difficulty() string
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID         string
	Title      string
	Difficulty string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a factory under id. It panics on duplicate ids.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if r, ok := g.(Rated); ok {
		info.Difficulty = r.Difficulty()
	}
	infos[id] = info
}

// List returns all registered games sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
