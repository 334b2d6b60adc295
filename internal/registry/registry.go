// Package registry provides a global registry for hazard factories.
// Hazards register themselves in init() functions, allowing the engine
// to spawn them by kind without hardcoded dependencies.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/colosseum/internal/assets"
	"github.com/vovakirdan/colosseum/internal/config"
	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/entity"
	"github.com/vovakirdan/colosseum/internal/match"
	"github.com/vovakirdan/colosseum/internal/world"
)

// ErrUnknownKind is returned when no factory is registered for a kind.
var ErrUnknownKind = errors.New("registry: unknown hazard kind")

// Spawn carries everything a factory may need to build a hazard.
type Spawn struct {
	World     *world.World
	Match     *match.Context
	Config    *config.HazardsConfig
	Loader    assets.Loader
	Destroyer entity.Destroyer
	At        core.Vec // requested position; factories may ignore it
}

// Factory builds a hazard. It may load assets and must not add the hazard to
// the arena itself.
type Factory func(ctx context.Context, s Spawn) (entity.Entity, error)

// HazardInfo contains metadata about a registered hazard.
type HazardInfo struct {
	Kind  string
	Title string
}

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a hazard factory to the registry.
// Typically called from a hazard's init() function.
// Panics if a hazard with the same kind is already registered.
func Register(kind, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("registry: hazard %q already registered", kind))
	}

	factories[kind] = f
	titles[kind] = title
}

// List returns information about all registered hazards, sorted by kind.
func List() []HazardInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]HazardInfo, 0, len(factories))
	for kind := range factories {
		result = append(result, HazardInfo{
			Kind:  kind,
			Title: titles[kind],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Kind < result[j].Kind
	})

	return result
}

// Create builds a new hazard of the given kind.
// Returns ErrUnknownKind if the kind is not registered.
func Create(ctx context.Context, kind string, s Spawn) (entity.Entity, error) {
	mu.RLock()
	f, ok := factories[kind]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return f(ctx, s)
}

// Exists checks if a hazard with the given kind is registered.
func Exists(kind string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[kind]
	return ok
}
