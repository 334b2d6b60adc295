// Package engine runs the arena: it owns the roster, hazards and world,
// advances them tick by tick, resolves contact between players and drives
// the match lifecycle from registration to the final table.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/colosseum/internal/assets"
	"github.com/vovakirdan/colosseum/internal/config"
	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/entity"
	"github.com/vovakirdan/colosseum/internal/eventlog"
	"github.com/vovakirdan/colosseum/internal/hazard"
	"github.com/vovakirdan/colosseum/internal/match"
	"github.com/vovakirdan/colosseum/internal/player"
	"github.com/vovakirdan/colosseum/internal/world"
)

var (
	// ErrNoPlayers is returned when a match is requested without a roster.
	ErrNoPlayers = errors.New("engine: no players")
	// ErrArenaNotSized is returned when the arena has no positive size yet.
	ErrArenaNotSized = errors.New("engine: arena not sized")
)

// PlayerOptions customize a registered roster.
type PlayerOptions struct {
	Weights   *config.WeightsConfig // overrides the configured AI weights
	Colors    []core.Color          // per-player colors, signature palette when short
	DisableAI bool                  // players only move when told to
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithLoader sets the asset loader. The default is the embedded library.
func WithLoader(l assets.Loader) Option {
	return func(e *Engine) { e.loader = l }
}

// WithSeed seeds the match random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithClock sets the simulated clock. The default starts at match.Epoch.
func WithClock(c *match.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithMatchEnd registers a hook run once for every finished match.
func WithMatchEnd(fn func(Ended)) Option {
	return func(e *Engine) { e.onEnd = append(e.onEnd, fn) }
}

// Engine is the simulation core. It is not safe for concurrent use; drivers
// call Tick and Render from one goroutine.
type Engine struct {
	cfg    config.Config
	logger *log.Logger
	loader assets.Loader
	seed   int64
	clock  *match.Clock
	onEnd  []func(Ended)

	mc       *match.Context
	world    *world.World
	roster   *player.Roster
	entities []entity.Entity
	doomed   []entity.Entity
	state    MatchState

	startHP int
	debug   bool

	pacing    *config.PacingManager
	rockTimer float64
	carTimer  float64
}

// New creates an engine in the Waiting state.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:     cfg,
		world:   world.New(),
		roster:  player.NewRoster(),
		state:   Waiting{},
		startHP: cfg.Player.DefaultHP,
		pacing:  config.NewPacingManager(cfg.Pacing),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.loader == nil {
		lib, err := assets.NewLibrary()
		if err != nil {
			return nil, err
		}
		e.loader = lib
	}
	e.mc = match.New(match.Options{
		Seed:        e.seed,
		Clock:       e.clock,
		LogCapacity: cfg.Match.LogCapacity,
		Logger:      e.logger,
	})
	return e, nil
}

// SetArenaSize rebuilds the platform layout. Players are kept inside the new bounds.
func (e *Engine) SetArenaSize(width, height float64) {
	e.world.BuildMap(width, height)
	e.logger.Debug("arena resized", "width", width, "height", height)
	if !e.world.Sized() {
		return
	}
	ground := e.ground()
	for _, p := range e.roster.All() {
		p.ClampToArena(e.world)
		if p.BottomEdge() > ground {
			p.Y = ground - p.Height/2
		}
	}
}

// RegisterPlayers builds a roster and starts a match. startHP is clamped to the
// configured bounds.
func (e *Engine) RegisterPlayers(ctx context.Context, names []string, startHP int, opts PlayerOptions) error {
	if len(names) == 0 {
		e.logger.Warn("rejected roster", "err", ErrNoPlayers)
		return ErrNoPlayers
	}
	if !e.world.Sized() {
		e.logger.Warn("rejected roster", "err", ErrArenaNotSized)
		return ErrArenaNotSized
	}

	if err := e.warmAssets(ctx); err != nil {
		return err
	}

	hp := e.cfg.ClampHP(startHP)
	roster := player.NewRoster()
	for i, name := range names {
		color := core.SignatureColor(i)
		if i < len(opts.Colors) {
			color = opts.Colors[i]
		}
		p, err := player.New(ctx, e.loader, e.mc, &e.cfg, name, color, hp)
		if err != nil {
			return err
		}
		if opts.Weights != nil {
			if err := applyWeights(p, *opts.Weights); err != nil {
				e.logger.Warn("rejected roster", "player", name, "err", err)
				return err
			}
		}
		p.SetAI(!opts.DisableAI)
		roster.Add(p)
	}

	e.startHP = hp
	e.roster = roster
	e.begin()
	return nil
}

// Restart replays the match with the same roster at full hp.
func (e *Engine) Restart(ctx context.Context) error {
	if e.roster.Len() == 0 {
		return ErrNoPlayers
	}
	if !e.world.Sized() {
		return ErrArenaNotSized
	}
	if err := e.warmAssets(ctx); err != nil {
		return err
	}
	for _, p := range e.roster.All() {
		p.Restart(e.startHP)
	}
	e.logger.Debug("match restarted", "players", e.roster.Len())
	e.begin()
	return nil
}

// Reset clears roster, arena and log and returns to Waiting.
func (e *Engine) Reset() {
	e.roster = player.NewRoster()
	e.entities = nil
	e.doomed = nil
	e.startHP = e.cfg.Player.DefaultHP
	e.world.Clear()
	e.mc.Log.Clear()
	e.state = Waiting{}
	e.logger.Info("match reset")
}

// begin places the roster, drops hazards and enters Playing.
func (e *Engine) begin() {
	e.mc.Begin()
	e.entities = make([]entity.Entity, 0, e.roster.Len())
	e.doomed = nil
	e.rockTimer, e.carTimer = 0, 0

	players := e.roster.All()
	n := float64(len(players))
	ground := e.ground()
	for i, p := range players {
		x := e.world.Width() * float64(i+1) / (n + 1)
		p.Place(x, ground-p.Height/2, entity.DirectionOf(e.world.Width()/2-x))
		p.ClampToArena(e.world)
		entity.SetDebug(p, e.debug)
		e.entities = append(e.entities, p)
	}

	e.state = Playing{ID: e.mc.ID, Start: e.mc.StartTime()}
	e.logger.Info("match started", "id", e.mc.ID, "players", len(players), "hp", e.startHP)
}

// warmAssets loads every animation set the arena may need before any entity is built.
func (e *Engine) warmAssets(ctx context.Context) error {
	reqs := append([]assets.Request{{ID: player.AssetID, Spec: player.AssetSpec}}, hazard.Requests()...)
	if _, err := assets.LoadAll(ctx, e.loader, reqs...); err != nil {
		return fmt.Errorf("engine: load assets: %w", err)
	}
	return nil
}

func applyWeights(p *player.Player, w config.WeightsConfig) error {
	for act, v := range map[player.Act]float64{
		player.ActMove:     w.Move,
		player.ActJump:     w.Jump,
		player.ActAttack:   w.Attack,
		player.ActMoveJump: w.MoveJump,
		player.ActSpeech:   w.Speech,
	} {
		if err := p.SetWeight(act, v); err != nil {
			return err
		}
	}
	return nil
}

// ground is the y-coordinate players stand on.
func (e *Engine) ground() float64 {
	if y, ok := e.world.Floor(); ok {
		return y
	}
	return e.world.Height()
}

// State returns the current match state.
func (e *Engine) State() MatchState {
	return e.state
}

// LogEntries returns the narrative log, newest first.
func (e *Engine) LogEntries() []eventlog.Entry {
	return e.mc.Log.Entries()
}

// Players returns the roster in registration order.
func (e *Engine) Players() []*player.Player {
	return e.roster.All()
}

// Entities returns the live entities in update order.
func (e *Engine) Entities() []entity.Entity {
	return e.entities
}

// World returns the arena.
func (e *Engine) World() *world.World {
	return e.world
}

// Config returns the configuration the engine runs with.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// MatchID returns the id of the current or last match.
func (e *Engine) MatchID() uuid.UUID {
	return e.mc.ID
}

// Match returns the match context shared with the entities.
func (e *Engine) Match() *match.Context {
	return e.mc
}

// SetDebug toggles collider overlays on every entity, including later spawns.
func (e *Engine) SetDebug(on bool) {
	e.debug = on
	for _, en := range e.entities {
		entity.SetDebug(en, on)
	}
}

// Debug reports whether collider overlays are on.
func (e *Engine) Debug() bool {
	return e.debug
}
