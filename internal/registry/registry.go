// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/engine"
)

// Game is a mini-game definition. The simulation itself lives in the rules
// it builds; the engine owns the loop, so a Game keeps no per-run state.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "nyanko").
	// Used for CLI commands and the replay journal.
	ID() string

	// Title returns a human-readable name for display (e.g., "Nyanko Jump").
	Title() string

	// Help returns a one-line summary of the controls.
	Help() string

	// Rules loads the game's tuning and returns fresh rules for one run.
	Rules(cfg core.RuntimeConfig) (engine.Rules, error)

	// Render draws a snapshot into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(s engine.Snapshot, dst *core.Screen)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
	Help  string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	g := f()
	infos[id] = GameInfo{ID: id, Title: g.Title(), Help: g.Help()}
}

// List returns information about all registered games, sorted by ID.
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

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
