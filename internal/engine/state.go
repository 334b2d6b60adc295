package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/colosseum/internal/score"
)

// MatchState is the engine's position in the match lifecycle.
// The set of implementations is closed: Waiting, Playing and Ended.
type MatchState interface {
	Name() string
	matchState()
}

// Waiting means no roster is registered.
type Waiting struct{}

// Playing means a match is running.
type Playing struct {
	ID    uuid.UUID
	Start time.Time
}

// Ended holds the final table of a finished match. It persists until Restart or Reset.
type Ended struct {
	ID     uuid.UUID
	Start  time.Time
	End    time.Time
	Reason string // the closing log message
	score.Result
}

func (Waiting) Name() string { return "waiting" }
func (Playing) Name() string { return "playing" }
func (Ended) Name() string   { return "ended" }

func (Waiting) matchState() {}
func (Playing) matchState() {}
func (Ended) matchState()   {}
