package engine

import (
	"bytes"
	"context"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/colosseum/internal/config"
	"github.com/vovakirdan/colosseum/internal/entity"
	"github.com/vovakirdan/colosseum/internal/eventlog"
	"github.com/vovakirdan/colosseum/internal/hazard"
	"github.com/vovakirdan/colosseum/internal/player"
	"github.com/vovakirdan/colosseum/internal/registry"
)

const tickDt = 1.0 / 64

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(config.Default(), append([]Option{WithSeed(1)}, opts...)...)
	require.NoError(t, err)
	e.SetArenaSize(1920, 1080)
	return e
}

// duel starts a match between two idle players on an arena without ledges.
func duel(t *testing.T, e *Engine) (*player.Player, *player.Player) {
	t.Helper()
	e.World().SetPlatforms(nil)
	require.NoError(t, e.RegisterPlayers(context.Background(), []string{"P1", "P2"}, 3, PlayerOptions{DisableAI: true}))
	ps := e.Players()
	return ps[0], ps[1]
}

// standInFront puts target just ahead of attacker, at rest on the ground.
func standInFront(attacker, target *player.Player) {
	attacker.Place(800, attacker.Y, entity.Right)
	attacker.SetVelocity(0, 0)
	target.Place(850, attacker.Y, entity.Left)
	target.SetVelocity(0, 0)
}

// strike runs one full attack from attacker that lands on target.
func strike(t *testing.T, e *Engine, attacker, target *player.Player) {
	t.Helper()
	standInFront(attacker, target)
	hp := target.HP()
	attacker.Perform(player.ActAttack)
	for i := 0; i < 256 && target.HP() == hp; i++ {
		e.Tick(tickDt)
	}
	require.Equal(t, hp-1, target.HP())
	for i := 0; i < 256 && attacker.Attack() != player.AttackNone; i++ {
		e.Tick(tickDt)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Physics.MaxDelta = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRegisterPlayersPreconditions(t *testing.T) {
	e, err := New(config.Default())
	require.NoError(t, err)

	err = e.RegisterPlayers(context.Background(), []string{"P1"}, 3, PlayerOptions{})
	assert.ErrorIs(t, err, ErrArenaNotSized)

	e.SetArenaSize(1920, 1080)
	err = e.RegisterPlayers(context.Background(), nil, 3, PlayerOptions{})
	assert.ErrorIs(t, err, ErrNoPlayers)
	assert.Equal(t, "waiting", e.State().Name())
}

func TestRegisterPlayersClampsHP(t *testing.T) {
	tests := []struct {
		name string
		hp   int
		want int
	}{
		{"below", 0, 1},
		{"within", 5, 5},
		{"above", 99, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t)
			require.NoError(t, e.RegisterPlayers(context.Background(), []string{"A", "B"}, tt.hp, PlayerOptions{}))
			for _, p := range e.Players() {
				assert.Equal(t, tt.want, p.HP())
			}
		})
	}
}

func TestRegisterPlayersRejectsNegativeWeights(t *testing.T) {
	e := newEngine(t)
	w := e.Config().AI.Weights
	w.Attack = -1
	err := e.RegisterPlayers(context.Background(), []string{"A", "B"}, 3, PlayerOptions{Weights: &w})
	assert.ErrorIs(t, err, player.ErrNegativeWeight)
	assert.Equal(t, "waiting", e.State().Name())
}

func TestPlayersStartSpreadOnTheGround(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.RegisterPlayers(context.Background(), []string{"A", "B", "C"}, 3, PlayerOptions{}))

	floor, ok := e.World().Floor()
	require.True(t, ok)
	ps := e.Players()
	require.Len(t, ps, 3)
	for i, p := range ps {
		assert.InDelta(t, 1920*float64(i+1)/4, p.X, 1e-9)
		assert.InDelta(t, floor, p.BottomEdge(), 1e-9)
	}
	assert.Equal(t, entity.Right, ps[0].Facing)
	assert.Equal(t, entity.Left, ps[2].Facing)

	playing, ok := e.State().(Playing)
	require.True(t, ok)
	assert.Equal(t, e.MatchID(), playing.ID)
}

func TestDuelToTheEnd(t *testing.T) {
	var ends []Ended
	e := newEngine(t, WithMatchEnd(func(x Ended) { ends = append(ends, x) }))
	p1, p2 := duel(t, e)

	strike(t, e, p1, p2)
	assert.Equal(t, 2, p2.HP())
	strike(t, e, p1, p2)
	assert.Equal(t, 1, p2.HP())

	standInFront(p1, p2)
	p1.Perform(player.ActAttack)
	for i := 0; i < 256 && p2.Alive(); i++ {
		e.Tick(tickDt)
	}
	require.False(t, p2.Alive())
	assert.Equal(t, "playing", e.State().Name())

	e.Tick(tickDt)
	ended, ok := e.State().(Ended)
	require.True(t, ok)
	require.Len(t, ends, 1)

	entries := e.LogEntries()
	require.NotEmpty(t, entries)
	last, ok := entries[0].(eventlog.System)
	require.True(t, ok)
	assert.Equal(t, "P1 is the last one standing!", last.Message)

	var firstBlood bool
	for _, en := range entries {
		if d, ok := en.(eventlog.Duo); ok && d.Interaction == player.InteractionFirstBlood {
			firstBlood = true
			assert.Equal(t, "P1", d.Perpetrator.Name)
			assert.Equal(t, "P2", d.Victim.Name)
		}
	}
	assert.True(t, firstBlood)

	winner, ok := ended.Winner()
	require.True(t, ok)
	assert.Equal(t, "P1", winner.Name)
	assert.Equal(t, 3, winner.AttackPoint)
	assert.Equal(t, 1, winner.KillPoint)
	assert.Equal(t, ended.Duration+60*time.Second, winner.Survive)
	assert.Equal(t, ended.End.Sub(ended.Start), ended.Duration)
}

func TestEndedMatchIsFrozen(t *testing.T) {
	calls := 0
	e := newEngine(t, WithMatchEnd(func(Ended) { calls++ }))
	p1, _ := duel(t, e)

	require.True(t, e.Conclude("Time is up."))
	assert.False(t, e.Conclude("again"))

	x, tick := p1.X, e.Match().Tick()
	p1.SetVelocity(500, 0)
	for i := 0; i < 10; i++ {
		e.Tick(tickDt)
	}
	assert.Equal(t, x, p1.X)
	assert.Equal(t, tick, e.Match().Tick())
	assert.Equal(t, 1, calls)
}

func TestConcludeRanksStandingPlayers(t *testing.T) {
	e := newEngine(t)
	_, _ = duel(t, e)
	for i := 0; i < 64; i++ {
		e.Tick(tickDt)
	}
	require.True(t, e.Conclude("Time is up."))
	ended := e.State().(Ended)
	require.Len(t, ended.Stats, 2)
	for _, s := range ended.Stats {
		assert.True(t, s.Alive)
		assert.Equal(t, time.Second+60*time.Second, s.Survive)
	}
}

func TestRestart(t *testing.T) {
	e := newEngine(t)
	p1, p2 := duel(t, e)
	strike(t, e, p1, p2)
	first := e.MatchID()
	require.True(t, e.Conclude("Time is up."))

	require.NoError(t, e.Restart(context.Background()))
	assert.Equal(t, "playing", e.State().Name())
	assert.NotEqual(t, first, e.MatchID())
	assert.Equal(t, 3, p2.HP())
	assert.Zero(t, p1.AttackPoint())
	assert.Zero(t, e.Match().Elapsed())
	assert.Equal(t, 2, len(e.Entities()))
	assert.Zero(t, e.Match().Log.Len())
}

func TestReset(t *testing.T) {
	e := newEngine(t)
	_, _ = duel(t, e)
	e.Reset()

	assert.Equal(t, "waiting", e.State().Name())
	assert.Empty(t, e.Players())
	assert.Empty(t, e.Entities())
	assert.Empty(t, e.LogEntries())
	assert.False(t, e.World().Sized())
	assert.ErrorIs(t, e.Restart(context.Background()), ErrNoPlayers)

	e.Tick(tickDt)
	assert.Zero(t, e.Match().Tick())
}

func TestOverlapsAreSeparated(t *testing.T) {
	e := newEngine(t)
	p1, p2 := duel(t, e)
	p1.Place(900, p1.Y, entity.Right)
	p2.Place(910, p1.Y, entity.Left)

	e.Tick(tickDt)
	minDist := p1.Width/2 + p2.Width/2
	assert.GreaterOrEqual(t, p2.X-p1.X, minDist-1e-9)
	assert.InDelta(t, 905, (p1.X+p2.X)/2, 1e-9)
}

func TestOverlapAgainstWall(t *testing.T) {
	e := newEngine(t)
	p1, p2 := duel(t, e)
	half := p1.Width / 2
	p1.Place(half, p1.Y, entity.Right)
	p2.Place(half+5, p1.Y, entity.Left)

	e.Tick(tickDt)
	assert.InDelta(t, half, p1.X, 1e-9)
	assert.InDelta(t, half+p1.Width, p2.X, 1e-9)
}

func TestTiedOverlapPushesSecondRight(t *testing.T) {
	e := newEngine(t)
	p1, p2 := duel(t, e)
	p1.Place(900, p1.Y, entity.Right)
	p2.Place(900, p1.Y, entity.Left)

	e.Tick(tickDt)
	assert.Less(t, p1.X, p2.X)
}

// assertApart checks that no two players on the same band overlap along X.
func assertApart(t *testing.T, ps []*player.Player) {
	t.Helper()
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			minDist := ps[i].Width/2 + ps[j].Width/2
			assert.GreaterOrEqual(t, math.Abs(ps[j].X-ps[i].X), minDist-1e-5,
				"%s and %s overlap", ps[i].Name, ps[j].Name)
		}
	}
}

// crowd stacks three idle players at x on an arena without ledges.
func crowd(t *testing.T, e *Engine, x float64) []*player.Player {
	t.Helper()
	e.World().SetPlatforms(nil)
	require.NoError(t, e.RegisterPlayers(context.Background(), []string{"A", "B", "C"}, 3, PlayerOptions{DisableAI: true}))
	ps := e.Players()
	for _, p := range ps {
		p.Place(x, ps[0].Y, entity.Right)
		p.SetVelocity(0, 0)
	}
	return ps
}

func TestThreeWayOverlapIsSeparated(t *testing.T) {
	e := newEngine(t)
	ps := crowd(t, e, 900)

	e.resolveOverlaps()
	assertApart(t, ps)
}

func TestThreeWayOverlapAgainstWall(t *testing.T) {
	e := newEngine(t)
	ps := crowd(t, e, 20)

	e.resolveOverlaps()
	assertApart(t, ps)
	for _, p := range ps {
		assert.GreaterOrEqual(t, p.X, p.Width/2-1e-9)
	}
}

func TestHitInterruptsVictimAttack(t *testing.T) {
	e := newEngine(t)
	p1, p2 := duel(t, e)
	standInFront(p1, p2)
	p1.Perform(player.ActAttack)
	p2.Perform(player.ActAttack)

	for i := 0; i < 256 && p2.HP() == 3; i++ {
		e.Tick(tickDt)
	}
	assert.Equal(t, 2, p2.HP())
	assert.Equal(t, 3, p1.HP())
	assert.Equal(t, player.AttackNone, p2.Attack())
}

func TestOneHitPerAttack(t *testing.T) {
	e := newEngine(t)
	p1, p2 := duel(t, e)
	standInFront(p1, p2)
	p1.Perform(player.ActAttack)

	for i := 0; i < 256 && p1.Attack() != player.AttackExecuting; i++ {
		e.Tick(tickDt)
	}
	for p1.Attack() == player.AttackExecuting {
		// Keep the victim pinned in reach for the whole swing.
		p2.Place(850, p2.Y, entity.Left)
		p2.SetVelocity(0, 0)
		e.Tick(tickDt)
	}
	assert.Equal(t, 2, p2.HP())
	assert.Equal(t, 1, p1.AttackPoint())
}

func TestAttackMissesBehind(t *testing.T) {
	e := newEngine(t)
	p1, p2 := duel(t, e)
	p1.Place(800, p1.Y, entity.Left)
	p2.Place(850, p1.Y, entity.Left)
	p1.Perform(player.ActAttack)

	for i := 0; i < 128; i++ {
		e.Tick(tickDt)
	}
	assert.Equal(t, 3, p2.HP())
}

func TestSpeechIsLogged(t *testing.T) {
	e := newEngine(t)
	p1, _ := duel(t, e)
	p1.Perform(player.ActSpeech)

	for i := 0; i < 200; i++ {
		e.Tick(tickDt)
	}
	var said bool
	for _, en := range e.LogEntries() {
		if s, ok := en.(eventlog.Solo); ok && s.Actor.Name == "P1" {
			said = true
		}
	}
	assert.True(t, said)
}

func TestSpawnHazard(t *testing.T) {
	e, err := New(config.Default())
	require.NoError(t, err)

	_, err = e.SpawnHazard(context.Background(), hazard.KindRock)
	assert.ErrorIs(t, err, ErrArenaNotSized)

	e.SetArenaSize(1920, 1080)
	_, err = e.SpawnHazard(context.Background(), "meteor")
	assert.ErrorIs(t, err, registry.ErrUnknownKind)

	rock, err := e.SpawnHazard(context.Background(), hazard.KindRock)
	require.NoError(t, err)
	assert.Contains(t, e.Entities(), rock)
}

func TestRockLeavesArena(t *testing.T) {
	e := newEngine(t)
	_, _ = duel(t, e)
	_, err := e.SpawnHazard(context.Background(), hazard.KindRock)
	require.NoError(t, err)
	require.Len(t, e.Entities(), 3)

	for i := 0; i < 64*10 && len(e.Entities()) > 2; i++ {
		e.Tick(tickDt)
	}
	assert.Len(t, e.Entities(), 2)
}

func TestTouchFadesAway(t *testing.T) {
	e := newEngine(t)
	_, _ = duel(t, e)
	e.Touch(300, 300)
	require.Len(t, e.Entities(), 3)

	for i := 0; i < 64; i++ {
		e.Tick(tickDt)
	}
	assert.Len(t, e.Entities(), 2)
}

func TestAutoSpawn(t *testing.T) {
	cfg := config.Default()
	cfg.Hazards.Rock.Interval = 1
	e, err := New(cfg, WithSeed(3))
	require.NoError(t, err)
	e.SetArenaSize(1920, 1080)
	require.NoError(t, e.RegisterPlayers(context.Background(), []string{"A", "B"}, 3, PlayerOptions{DisableAI: true}))

	for i := 0; i < 63; i++ {
		e.Tick(tickDt)
	}
	assert.Len(t, e.Entities(), 2)
	e.Tick(tickDt)
	assert.Len(t, e.Entities(), 3)
}

func TestFailedAutoSpawnRestartsTimer(t *testing.T) {
	var buf bytes.Buffer
	e := newEngine(t, WithLogger(log.New(&buf)))
	_, _ = duel(t, e)

	assert.Zero(t, e.tickSpawn("meteor", 1.5, 1))
	assert.Len(t, e.Entities(), 2)
	assert.Contains(t, buf.String(), "auto spawn failed")
	assert.Contains(t, buf.String(), "meteor")
}

func TestDebugAppliesToSpawns(t *testing.T) {
	e := newEngine(t)
	_, _ = duel(t, e)
	e.SetDebug(true)
	rock, err := e.SpawnHazard(context.Background(), hazard.KindRock)
	require.NoError(t, err)

	var rec entity.Recorder
	rock.Render(&rec, entity.NoMeasurer{}, "")
	assert.Positive(t, rec.Count("rect"))
}

func TestRender(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.RegisterPlayers(context.Background(), []string{"A", "B"}, 3, PlayerOptions{}))

	var rec entity.Recorder
	e.Render(&rec, nil, "mono")
	platforms := e.World().Platforms()
	require.Greater(t, len(rec.Ops), len(platforms))
	for i, pl := range platforms {
		assert.Equal(t, "rect", rec.Ops[i].Kind)
		assert.Equal(t, pl, rec.Ops[i].Box)
	}

	var labels []string
	for _, op := range rec.Ops[len(platforms):] {
		if op.Kind == "text" && (op.Text == "A" || op.Text == "B") {
			labels = append(labels, op.Text)
		}
	}
	assert.Equal(t, []string{"A", "B"}, labels)
}

func TestSetArenaSizeKeepsPlayersInside(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.RegisterPlayers(context.Background(), []string{"A", "B", "C"}, 3, PlayerOptions{}))

	e.SetArenaSize(640, 360)
	for _, p := range e.Players() {
		b := p.Bounds()
		assert.GreaterOrEqual(t, b.X, 0.0)
		assert.LessOrEqual(t, b.Right(), 640.0)
		assert.LessOrEqual(t, b.Bottom(), 360.0+1e-9)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []uint64 {
		cfg := config.Default()
		cfg.Hazards.Rock.Interval = 2
		cfg.Hazards.Car.Interval = 7
		e, err := New(cfg, WithSeed(42))
		require.NoError(t, err)
		e.SetArenaSize(1920, 1080)
		require.NoError(t, e.RegisterPlayers(context.Background(), []string{"A", "B", "C", "D"}, 3, PlayerOptions{}))

		var hashes []uint64
		for i := 0; i < 64*30; i++ {
			e.Tick(tickDt)
			if i%64 == 0 {
				hashes = append(hashes, e.Snapshot().Hash())
			}
		}
		return hashes
	}

	assert.Equal(t, run(), run())
}

func TestSnapshot(t *testing.T) {
	e := newEngine(t)
	p1, _ := duel(t, e)
	before := e.Snapshot()
	require.Len(t, before.Players, 2)
	assert.Equal(t, "P1", before.Players[0].Name)
	assert.Equal(t, p1.X, before.Players[0].X)

	e.Tick(tickDt)
	p1.SetVelocity(100, 0)
	assert.NotEqual(t, before.Hash(), e.Snapshot().Hash())
}

func TestMatchOutlastsMaxDuration(t *testing.T) {
	cfg := config.Default()
	cfg.Match.MaxDuration = 2
	e, err := New(cfg, WithSeed(1))
	require.NoError(t, err)
	e.SetArenaSize(1920, 1080)
	e.World().SetPlatforms(nil)
	require.NoError(t, e.RegisterPlayers(context.Background(), []string{"A", "B"}, 3, PlayerOptions{DisableAI: true}))

	for i := 0; i < 4*64; i++ {
		e.Tick(tickDt)
	}
	assert.Equal(t, "playing", e.State().Name())
	assert.Equal(t, 2, e.roster.AliveCount())

	require.True(t, e.Conclude(TimeUp))
	ended, ok := e.State().(Ended)
	require.True(t, ok)
	assert.Equal(t, TimeUp, ended.Reason)
	assert.Equal(t, 4*time.Second, ended.Duration)
}
