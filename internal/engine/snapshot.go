package engine

import (
	"math"
	"time"

	"github.com/vovakirdan/colosseum/internal/player"
)

// PlayerSnapshot captures one player's state.
type PlayerSnapshot struct {
	Name        string
	X, Y        float64
	VX, VY      float64
	HP          int
	Attack      player.AttackState
	AttackPoint int
	KillPoint   int
	Alive       bool
}

// Snapshot captures the complete simulation state for determinism testing.
type Snapshot struct {
	Tick     uint64
	State    string
	Elapsed  time.Duration
	Entities int
	LogLen   int
	Players  []PlayerSnapshot
}

// Snapshot returns the current simulation snapshot.
func (e *Engine) Snapshot() Snapshot {
	players := e.roster.All()
	snap := Snapshot{
		Tick:     e.mc.Tick(),
		State:    e.state.Name(),
		Elapsed:  e.mc.Elapsed(),
		Entities: len(e.entities),
		LogLen:   e.mc.Log.Len(),
		Players:  make([]PlayerSnapshot, len(players)),
	}
	for i, p := range players {
		vx, vy := p.Velocity()
		snap.Players[i] = PlayerSnapshot{
			Name:        p.Name,
			X:           p.X,
			Y:           p.Y,
			VX:          vx,
			VY:          vy,
			HP:          p.HP(),
			Attack:      p.Attack(),
			AttackPoint: p.AttackPoint(),
			KillPoint:   p.KillPoint(),
			Alive:       p.Alive(),
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s Snapshot) Hash() uint64 {
	h := s.Tick
	h = h*31 + uint64(s.Elapsed)  //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Entities) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.LogLen)   //#nosec G115 -- hash computation
	h = h*31 + hashString(s.State)
	for _, p := range s.Players {
		h = h*31 + hashString(p.Name)
		h = h*31 + math.Float64bits(p.X)
		h = h*31 + math.Float64bits(p.Y)
		h = h*31 + math.Float64bits(p.VX)
		h = h*31 + math.Float64bits(p.VY)
		h = h*31 + uint64(p.HP)          //#nosec G115 -- hash computation
		h = h*31 + uint64(p.Attack)      //#nosec G115 -- hash computation
		h = h*31 + uint64(p.AttackPoint) //#nosec G115 -- hash computation
		h = h*31 + uint64(p.KillPoint)   //#nosec G115 -- hash computation
		if p.Alive {
			h = h*31 + 1
		}
	}
	return h
}

func hashString(s string) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = h*31 + uint64(s[i])
	}
	return h
}
