package engine

import (
	"fmt"
	"math"

	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/match"
	"github.com/vovakirdan/colosseum/internal/player"
	"github.com/vovakirdan/colosseum/internal/score"
)

// TimeUp is the reason drivers pass to Conclude when they stop a match on a
// time or tick limit.
const TimeUp = "Time is up."

// Tick advances the match by dt seconds. It does nothing unless a match is
// playing in a sized arena. The clock moves by the full dt while each entity
// bounds its own physics step.
func (e *Engine) Tick(dt float64) {
	if _, ok := e.state.(Playing); !ok || !e.world.Sized() || dt <= 0 {
		return
	}
	e.mc.Advance(dt)
	e.autoSpawn(dt)

	for _, en := range e.entities {
		en.Update(dt, e.world)
	}
	e.flushDestroyed()

	for _, p := range e.roster.All() {
		for _, line := range p.DrainSpokenLines() {
			e.mc.Solo(p.Ref(), line)
		}
	}

	if e.checkEnd() {
		return
	}
	e.resolveOverlaps()
	e.detectHits()
}

// checkEnd finishes the match when at most one player is left standing.
func (e *Engine) checkEnd() bool {
	if _, ok := e.state.(Playing); !ok {
		return false
	}
	alive := e.roster.Alive()
	switch {
	case len(alive) == 0:
		e.finish("No one is left standing.")
	case len(alive) == 1:
		e.finish(fmt.Sprintf("%s is the last one standing!", alive[0].Name))
	default:
		return false
	}
	return true
}

// Conclude ends a running match early, ranking players as they stand.
// It reports whether a match was running.
func (e *Engine) Conclude(reason string) bool {
	if _, ok := e.state.(Playing); !ok {
		return false
	}
	e.finish(reason)
	return true
}

func (e *Engine) finish(message string) {
	e.mc.System(message)

	players := e.roster.All()
	records := make([]score.Record, len(players))
	for i, p := range players {
		death, _ := p.DeathTime()
		records[i] = score.Record{
			Name:        p.Name,
			Color:       p.Color,
			AttackPoint: p.AttackPoint(),
			KillPoint:   p.KillPoint(),
			DeathTime:   death,
		}
	}

	start, end := e.mc.StartTime(), e.mc.Now()
	result := score.Calculate(records, start, end, score.Options{
		SurvivorBonus: match.Seconds(e.cfg.Match.SurvivorBonus),
		QuickExit:     match.Seconds(e.cfg.Match.QuickExit),
	})
	ended := Ended{ID: e.mc.ID, Start: start, End: end, Reason: message, Result: result}
	e.state = ended

	winner := ""
	if w, ok := result.Winner(); ok {
		winner = w.Name
	}
	e.logger.Info("match ended", "id", ended.ID, "duration", result.Duration, "winner", winner)

	for _, fn := range e.onEnd {
		fn(ended)
	}
}

// maxOverlapPasses bounds the pairwise passes of one tick. A crowd pinned
// against a wall may need more and keeps settling on the next tick.
const maxOverlapPasses = 32

// overlapSlack is the gap shortfall, in arena units, treated as touching.
const overlapSlack = 1e-6

// resolveOverlaps pushes every pair of overlapping living players apart along X.
// When a wall stops one of them, the other takes the rest of the push. Pushing
// one pair apart can close another, so passes repeat until none moves anyone.
func (e *Engine) resolveOverlaps() {
	alive := e.roster.Alive()
	for pass := 0; pass < maxOverlapPasses; pass++ {
		moved := false
		for i := 0; i < len(alive); i++ {
			for j := i + 1; j < len(alive); j++ {
				if separate(alive[i], alive[j], e) {
					moved = true
				}
			}
		}
		if !moved {
			return
		}
	}
}

// separate reports whether it had to move a or b.
func separate(a, b *player.Player, e *Engine) bool {
	if a.Top() >= b.BottomEdge() || b.Top() >= a.BottomEdge() {
		return false
	}
	dx := b.X - a.X
	minDist := a.Width/2 + b.Width/2
	if math.Abs(dx) >= minDist-overlapSlack {
		return false
	}

	dir := core.SignF(dx)
	half := (minDist - math.Abs(dx)) / 2
	ax, bx := a.X-dir*half, b.X+dir*half
	a.X, b.X = ax, bx
	a.ClampToArena(e.world)
	b.ClampToArena(e.world)

	rest := minDist - math.Abs(b.X-a.X)
	if rest <= 0 {
		return true
	}
	switch {
	case a.X != ax:
		b.X += dir * rest
		b.ClampToArena(e.world)
	case b.X != bx:
		a.X -= dir * rest
		a.ClampToArena(e.world)
	}
	return true
}

type hitPair struct {
	attacker, target int
}

// detectHits lands every executing attack on the players in front of and within
// reach of the attacker. A pair connects at most once per tick.
func (e *Engine) detectHits() {
	players := e.roster.All()
	seen := make(map[hitPair]struct{})
	power := e.cfg.Player.AttackPower

	for i, a := range players {
		if !a.Alive() || a.Attack() != player.AttackExecuting {
			continue
		}
		for j, t := range players {
			if i == j || !a.Alive() || !t.Alive() {
				continue
			}
			key := hitPair{i, j}
			if _, ok := seen[key]; ok {
				continue
			}
			if !a.InFront(t) || math.Abs(t.X-a.X) > a.Reach() || math.Abs(t.Y-a.Y) > a.Height {
				continue
			}
			seen[key] = struct{}{}
			t.ReceiveDamage(a, power)
		}
	}
}
