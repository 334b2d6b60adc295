package assets

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownAsset is returned when an id has no animation source.
	ErrUnknownAsset = errors.New("assets: unknown asset")
	// ErrMissingAction is returned when a source lacks an action the caller requires.
	ErrMissingAction = errors.New("assets: missing action")
)

//go:embed data/animations.yaml
var defaultAnimationsYAML []byte

// Spec lists what a caller needs from an animation set.
type Spec struct {
	Actions []string // actions that must be present
}

// Loader loads animation sets by id. Implementations must be safe for concurrent use.
type Loader interface {
	Load(ctx context.Context, id string, spec Spec) (*AnimationSet, error)
}

// Library is a Loader backed by YAML animation sources.
// Loads are cached by id and concurrent loads of the same id are collapsed.
type Library struct {
	sources map[string][]AnimationDef

	mu    sync.RWMutex
	cache map[string]*AnimationSet
	group singleflight.Group
	built atomic.Int64
}

// NewLibrary creates a library from the embedded animation data.
func NewLibrary() (*Library, error) {
	return NewLibraryFromYAML(defaultAnimationsYAML)
}

// NewLibraryFromYAML creates a library from a YAML document mapping ids to definitions.
func NewLibraryFromYAML(data []byte) (*Library, error) {
	var sources map[string][]AnimationDef
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("assets: parse animations: %w", err)
	}
	return &Library{
		sources: sources,
		cache:   make(map[string]*AnimationSet),
	}, nil
}

// MustLibrary is like NewLibrary but panics on error. The embedded data is
// parsed by the package tests, so a failure here is a build defect.
func MustLibrary() *Library {
	lib, err := NewLibrary()
	if err != nil {
		panic(err)
	}
	return lib
}

// Load returns the animation set for id, building it on first use.
func (l *Library) Load(ctx context.Context, id string, spec Spec) (*AnimationSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	set, ok := l.cache[id]
	l.mu.RUnlock()
	if !ok {
		v, err, _ := l.group.Do(id, func() (any, error) {
			return l.build(id)
		})
		if err != nil {
			return nil, err
		}
		set = v.(*AnimationSet)
	}

	for _, a := range spec.Actions {
		if _, ok := set.Lookup(a); !ok {
			return nil, fmt.Errorf("%w: %s/%s", ErrMissingAction, id, a)
		}
	}
	return set, nil
}

func (l *Library) build(id string) (*AnimationSet, error) {
	l.mu.RLock()
	set, ok := l.cache[id]
	l.mu.RUnlock()
	if ok {
		return set, nil
	}

	defs, ok := l.sources[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAsset, id)
	}
	set = NewAnimationSet(id, defs)
	l.built.Add(1)

	l.mu.Lock()
	l.cache[id] = set
	l.mu.Unlock()
	return set, nil
}

// IDs returns the ids this library can load, sorted.
func (l *Library) IDs() []string {
	out := make([]string, 0, len(l.sources))
	for id := range l.sources {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Builds returns how many sets have been constructed. Cache hits do not count.
func (l *Library) Builds() int64 {
	return l.built.Load()
}
