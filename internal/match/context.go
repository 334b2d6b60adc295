// Package match provides the per-match handle shared by the engine and the
// entities it updates: simulated clock, random source, event log and
// elimination bookkeeping.
package match

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/colosseum/internal/eventlog"
)

// Context is owned by one engine and lives for as long as its roster.
// It is not safe for concurrent mutation; only the tick goroutine writes.
type Context struct {
	ID     uuid.UUID
	Clock  *Clock
	Rand   *rand.Rand
	Log    *eventlog.Log
	Logger *log.Logger

	start      time.Time
	tick       uint64
	deaths     int
	firstBlood bool
}

// Options configure a new Context. Zero values select defaults.
type Options struct {
	Seed        int64
	Clock       *Clock
	LogCapacity int
	Logger      *log.Logger
}

// New creates a context. The clock starts at Epoch unless one is supplied.
func New(opts Options) *Context {
	clock := opts.Clock
	if clock == nil {
		clock = NewClock(Epoch)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Context{
		ID:     uuid.New(),
		Clock:  clock,
		Rand:   rand.New(rand.NewSource(opts.Seed)),
		Logger: logger,
		Log:    eventlog.New(opts.LogCapacity, eventlog.LoggerSink(logger)),
	}
	c.start = clock.Now()
	return c
}

// Begin starts a new match on this context: fresh id, start time at the
// current clock, elimination bookkeeping and the log cleared.
func (c *Context) Begin() {
	c.ID = uuid.New()
	c.start = c.Clock.Now()
	c.tick = 0
	c.deaths = 0
	c.firstBlood = false
	c.Log.Clear()
}

// Now returns the simulated time.
func (c *Context) Now() time.Time {
	return c.Clock.Now()
}

// StartTime returns when the current match began.
func (c *Context) StartTime() time.Time {
	return c.start
}

// Elapsed returns the simulated time since the match began.
func (c *Context) Elapsed() time.Duration {
	return c.Clock.Now().Sub(c.start)
}

// Advance moves simulated time forward and counts a tick.
func (c *Context) Advance(dt float64) {
	c.Clock.Advance(Seconds(dt))
	c.tick++
}

// Tick returns the number of ticks since Begin.
func (c *Context) Tick() uint64 {
	return c.tick
}

// Deaths returns the number of eliminations this match.
func (c *Context) Deaths() int {
	return c.deaths
}

// RecordDeath counts an elimination and reports whether it claims first blood.
// Only one elimination per match can ever claim it, including two in the same tick.
func (c *Context) RecordDeath() (firstBlood bool) {
	c.deaths++
	if c.firstBlood {
		return false
	}
	c.firstBlood = true
	return true
}

// System appends a System entry stamped with the current time.
func (c *Context) System(message string) {
	c.Log.System(c.Now(), message)
}

// Solo appends a Solo entry stamped with the current time.
func (c *Context) Solo(actor eventlog.Ref, message string) {
	c.Log.Solo(c.Now(), actor, message)
}

// Duo appends a Duo entry stamped with the current time.
func (c *Context) Duo(perpetrator, victim eventlog.Ref, interaction, extra string) {
	c.Log.Duo(c.Now(), perpetrator, victim, interaction, extra)
}
