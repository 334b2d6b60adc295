// Package spectate runs one shared arena and fans its frames out to any number
// of viewers. The engine lives on the hub goroutine; viewers only ever see
// immutable frames and talk back through commands.
package spectate

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/engine"
	"github.com/vovakirdan/colosseum/internal/platform/canvas"
)

// ErrClosed is returned when subscribing to a stopped hub.
var ErrClosed = errors.New("spectate: hub closed")

// Config holds configuration for the hub.
type Config struct {
	TickRate     int           // simulation ticks per second
	RestartDelay time.Duration // pause between a finished match and the next one
	Cols, Rows   int           // size of the rendered screen in cells
	LogLines     int           // log entries carried by each frame
	Buffer       int           // frames buffered per subscriber
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		TickRate:     30,
		RestartDelay: 5 * time.Second,
		Cols:         80,
		Rows:         22,
		LogLines:     6,
		Buffer:       4,
	}
}

// Hub owns an engine and publishes a frame after every step.
type Hub struct {
	cfg    Config
	eng    *engine.Engine
	logger *log.Logger

	cmds chan Command

	mu     sync.RWMutex
	subs   map[*Subscriber]struct{}
	last   Frame
	closed bool

	armed     bool // a finished match is waiting for its restart
	restartIn float64

	done     chan struct{}
	doneOnce sync.Once
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the structured logger.
func WithLogger(l *log.Logger) Option {
	return func(h *Hub) { h.logger = l }
}

// NewHub creates a hub around an engine that already has a roster.
func NewHub(eng *engine.Engine, cfg Config, opts ...Option) *Hub {
	def := DefaultConfig()
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	if cfg.Cols <= 0 || cfg.Rows <= 0 {
		cfg.Cols, cfg.Rows = def.Cols, def.Rows
	}
	if cfg.LogLines < 0 {
		cfg.LogLines = 0
	}
	h := &Hub{
		cfg:  cfg,
		eng:  eng,
		cmds: make(chan Command, 64),
		subs: make(map[*Subscriber]struct{}),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = log.New(io.Discard)
	}
	h.last = h.render()
	return h
}

// Subscribe registers a new viewer. The latest frame is delivered immediately.
func (h *Hub) Subscribe() (*Subscriber, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrClosed
	}
	s := newSubscriber(h.cfg.Buffer)
	h.subs[s] = struct{}{}
	s.send(h.last)
	h.logger.Debug("spectator joined", "id", s.ID(), "viewers", len(h.subs))
	return s, nil
}

// Unsubscribe removes a viewer. Safe to call more than once.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; !ok {
		return
	}
	delete(h.subs, s)
	s.close()
	h.logger.Debug("spectator left", "id", s.ID(), "viewers", len(h.subs))
}

// Viewers returns the number of subscribers.
func (h *Hub) Viewers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Last returns the most recently published frame.
func (h *Hub) Last() Frame {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}

// Send queues a command for the next step. Commands are dropped while the
// queue is full or the hub is stopped.
func (h *Hub) Send(cmd Command) {
	select {
	case <-h.done:
		return
	default:
	}
	select {
	case h.cmds <- cmd:
	default:
		h.logger.Warn("spectator command dropped", "cmd", cmd)
	}
}

// Run steps the arena at the tick rate until ctx is cancelled or Stop is called.
func (h *Hub) Run(ctx context.Context) error {
	defer h.Stop()

	interval := time.Second / time.Duration(h.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.logger.Info("hub running", "tick_rate", h.cfg.TickRate, "match", h.eng.MatchID())
	for {
		select {
		case <-ticker.C:
			h.Step(interval.Seconds())
		case <-ctx.Done():
			return ctx.Err()
		case <-h.done:
			return nil
		}
	}
}

// Stop ends the hub and every subscription.
func (h *Hub) Stop() {
	h.doneOnce.Do(func() {
		close(h.done)
		h.mu.Lock()
		defer h.mu.Unlock()
		h.closed = true
		for s := range h.subs {
			s.close()
		}
		clear(h.subs)
		h.logger.Info("hub stopped")
	})
}

// Step applies queued commands, advances the arena by dt seconds and publishes
// a frame. Run calls it on every tick.
func (h *Hub) Step(dt float64) {
	h.drain()

	if h.armed {
		h.restartIn -= dt
		if h.restartIn <= 0 {
			h.restart()
		}
	}
	h.eng.Tick(dt)
	if _, ended := h.eng.State().(engine.Ended); ended && !h.armed {
		h.armed = true
		h.restartIn = h.cfg.RestartDelay.Seconds()
	}

	h.publish(h.render())
}

func (h *Hub) drain() {
	for {
		select {
		case cmd := <-h.cmds:
			h.apply(cmd)
		default:
			return
		}
	}
}

func (h *Hub) apply(cmd Command) {
	switch c := cmd.(type) {
	case SpawnCmd:
		if _, err := h.eng.SpawnHazard(context.Background(), c.Kind); err != nil {
			h.logger.Warn("spawn command rejected", "kind", c.Kind, "err", err)
		}
	case TouchCmd:
		h.eng.Touch(c.At.X, c.At.Y)
	case RestartCmd:
		h.restart()
	}
}

func (h *Hub) restart() {
	if err := h.eng.Restart(context.Background()); err != nil {
		h.logger.Error("restart failed", "err", err)
		return
	}
	h.armed, h.restartIn = false, 0
}

// render draws the arena into a fresh screen.
func (h *Hub) render() Frame {
	w := h.eng.World()
	screen := core.NewScreen(h.cfg.Cols, h.cfg.Rows)
	c := canvas.New(screen, w.Width(), w.Height())
	h.eng.Render(c, c, "")

	mc := h.eng.Match()
	entries := h.eng.LogEntries()
	if len(entries) > h.cfg.LogLines {
		entries = entries[:h.cfg.LogLines]
	}
	f := Frame{
		MatchID: h.eng.MatchID(),
		Tick:    mc.Tick(),
		State:   h.eng.State().Name(),
		Elapsed: mc.Elapsed().Seconds(),
		ArenaW:  w.Width(),
		ArenaH:  w.Height(),
		Screen:  screen,
		Log:     entries,
	}
	if ended, ok := h.eng.State().(engine.Ended); ok {
		res := ended.Result
		f.Result = &res
		f.Restart = max(h.restartIn, 0)
	}
	return f
}

func (h *Hub) publish(f Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = f
	for s := range h.subs {
		s.send(f)
	}
}
