package spectate

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/eventlog"
	"github.com/vovakirdan/colosseum/internal/score"
)

// Frame is one published view of the arena. Frames are never modified after
// they are sent, so subscribers may keep them.
type Frame struct {
	MatchID uuid.UUID
	Tick    uint64
	State   string
	Elapsed float64 // seconds
	ArenaW  float64 // arena size in pixels, for mapping cells back
	ArenaH  float64

	Screen  *core.Screen
	Log     []eventlog.Entry // newest first
	Result  *score.Result    // set once the match has ended
	Restart float64          // seconds until the next match, while ended
}

// Command is a spectator request applied on the hub goroutine.
type Command interface {
	command()
}

// SpawnCmd drops a registered hazard into the arena.
type SpawnCmd struct {
	Kind string
}

func (SpawnCmd) command() {}

// TouchCmd starts a ring effect at an arena point.
type TouchCmd struct {
	At core.Vec
}

func (TouchCmd) command() {}

// RestartCmd starts a new match with the same roster right away.
type RestartCmd struct{}

func (RestartCmd) command() {}
