// Package player implements the autonomous fighters: physics against the arena
// platforms, a weighted random decision model, attack and speech state
// machines, and per-match score bookkeeping.
package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/colosseum/internal/assets"
	"github.com/vovakirdan/colosseum/internal/config"
	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/entity"
	"github.com/vovakirdan/colosseum/internal/eventlog"
	"github.com/vovakirdan/colosseum/internal/match"
	"github.com/vovakirdan/colosseum/internal/world"
)

// AssetID is the animation set every player is drawn with.
const AssetID = "player"

// Animated actions.
const (
	AnimIdle          = "idle"
	AnimMove          = "move"
	AnimJump          = "jump"
	AnimAttackPrepare = "attack_prepare"
	AnimAttackExecute = "attack_execute"
	AnimSpeech        = "speech"
	AnimDead          = "dead"
)

// AssetSpec lists the animations a player cannot be built without.
var AssetSpec = assets.Spec{Actions: []string{
	AnimIdle, AnimMove, AnimJump, AnimAttackPrepare, AnimAttackExecute, AnimSpeech, AnimDead,
}}

// ErrNegativeWeight is returned when an action weight below zero is supplied.
var ErrNegativeWeight = errors.New("player: negative weight")

// AttackState is the phase of a player's attack.
type AttackState int

const (
	AttackNone AttackState = iota
	AttackPreparing
	AttackExecuting
)

func (s AttackState) String() string {
	switch s {
	case AttackPreparing:
		return "preparing"
	case AttackExecuting:
		return "executing"
	default:
		return "none"
	}
}

// Sensed holds what a player perceived about its enemies this tick.
type Sensed struct {
	HasEnemy         bool
	NearestDist      float64
	NearestDir       float64 // +1 right, -1 left
	NearestInFront   bool
	InRange          int // living enemies in front within effective range
	PreparingInRange int // of those, how many are preparing an attack
}

// Player is the dominant entity of the arena.
type Player struct {
	entity.Base

	cfg    *config.Config
	mc     *match.Context
	roster *Roster
	index  int

	dmg      *entity.Damageable
	collider *entity.Collider
	sprite   *entity.Sprite
	tint     *entity.Tint

	vx, vy     float64
	onPlatform bool

	attack      AttackState
	attackTimer float64

	lines       []string
	line        int
	speechTimer float64
	speaking    bool
	spoken      []string

	sensed Sensed

	ai           bool
	inAction     bool
	justFinished bool
	cooldown     float64
	last         Act

	base    [actCount]float64
	weights [actCount]float64

	attackPoint int
	killPoint   int
	deathTime   time.Time
}

// New loads the player's animations and builds a player with hp hit points.
// The player is not part of any roster until added to one.
func New(ctx context.Context, loader assets.Loader, mc *match.Context, cfg *config.Config, name string, color core.Color, hp int) (*Player, error) {
	set, err := loader.Load(ctx, AssetID, AssetSpec)
	if err != nil {
		return nil, fmt.Errorf("player: load %s: %w", name, err)
	}

	p := &Player{
		cfg:      cfg,
		mc:       mc,
		dmg:      entity.NewDamageable(hp, cfg.Player.Invincibility),
		collider: &entity.Collider{},
		sprite:   entity.NewSprite(set),
		tint:     &entity.Tint{Color: core.ColorBrightWhite, Alpha: 0.6},
		ai:       true,
	}
	p.Base = entity.NewBase(name, color, p.dmg, p.sprite, p.tint, p.collider)
	p.Width, p.Height = cfg.Player.Width, cfg.Player.Height
	p.ImageWidth, p.ImageHeight = cfg.Player.ImageWidth, cfg.Player.ImageHeight
	p.Action = AnimIdle

	w := cfg.AI.Weights
	for act, v := range map[Act]float64{
		ActMove: w.Move, ActJump: w.Jump, ActAttack: w.Attack, ActMoveJump: w.MoveJump, ActSpeech: w.Speech,
	} {
		if err := p.SetWeight(act, v); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Restart revives the player with hp hit points and clears all match state.
func (p *Player) Restart(hp int) {
	p.dmg.Reset(hp)
	p.vx, p.vy = 0, 0
	p.onPlatform = false
	p.attack, p.attackTimer = AttackNone, 0
	p.stopSpeech()
	p.spoken = nil
	p.sensed = Sensed{}
	p.inAction, p.justFinished, p.cooldown = false, false, 0
	p.last = ActNone
	p.attackPoint, p.killPoint = 0, 0
	p.deathTime = time.Time{}
	p.tint.Active = false
	p.Action = AnimIdle
}

// Place moves the player to (x, y) at rest.
func (p *Player) Place(x, y float64, facing entity.Direction) {
	p.X, p.Y = x, y
	p.vx, p.vy = 0, 0
	p.Facing = facing
}

// SetVelocity overrides the current velocity.
func (p *Player) SetVelocity(vx, vy float64) {
	p.vx, p.vy = vx, vy
}

// SetAI enables or disables autonomous decisions. Physics and state decay still run.
func (p *Player) SetAI(enabled bool) {
	p.ai = enabled
}

// Ref identifies the player in log entries.
func (p *Player) Ref() eventlog.Ref {
	return eventlog.Ref{Name: p.Name, Color: p.Color}
}

func (p *Player) Index() int                   { return p.index }
func (p *Player) HP() int                      { return p.dmg.HP }
func (p *Player) Alive() bool                  { return p.dmg.Alive() }
func (p *Player) Invincible() bool             { return p.dmg.Invincible() }
func (p *Player) Velocity() (float64, float64) { return p.vx, p.vy }
func (p *Player) OnPlatform() bool             { return p.onPlatform }
func (p *Player) Attack() AttackState          { return p.attack }
func (p *Player) InAction() bool               { return p.inAction }
func (p *Player) LastAction() Act              { return p.last }
func (p *Player) Sensed() Sensed               { return p.sensed }
func (p *Player) AttackPoint() int             { return p.attackPoint }
func (p *Player) KillPoint() int               { return p.killPoint }
func (p *Player) Reach() float64               { return p.cfg.Player.AttackReach }

// DeathTime returns when the player was eliminated, or false while alive.
func (p *Player) DeathTime() (time.Time, bool) {
	return p.deathTime, !p.deathTime.IsZero()
}

// Speech returns the line currently shown, or false when silent.
func (p *Player) Speech() (string, bool) {
	if !p.speaking || p.line >= len(p.lines) {
		return "", false
	}
	return p.lines[p.line], true
}

// DrainSpokenLines returns the lines finished since the last call.
func (p *Player) DrainSpokenLines() []string {
	out := p.spoken
	p.spoken = nil
	return out
}

// InFront reports whether other lies in the direction p faces. Equal X counts as right.
func (p *Player) InFront(other *Player) bool {
	return core.SignF(other.X-p.X) == p.Facing.Sign()
}

// Update advances the player by dt seconds.
func (p *Player) Update(dt float64, w *world.World) {
	if !p.Alive() {
		return
	}
	dt = core.ClampF(dt, 0, p.cfg.Physics.MaxDelta)

	p.UpdateComponents(dt)
	p.tint.Active = p.dmg.Invincible()

	p.sense()
	p.decayAttack(dt)
	p.updateSpeech(dt)
	p.integrateVertical(dt, w)
	p.integrateHorizontal(dt, w)
	p.settle()
	if p.ai {
		p.think(dt)
	}
	p.syncAction()
}

func (p *Player) decayAttack(dt float64) {
	switch p.attack {
	case AttackPreparing:
		p.attackTimer -= dt
		if p.attackTimer <= 0 {
			p.attack = AttackExecuting
			p.attackTimer = p.cfg.Player.ExecuteTime
		}
	case AttackExecuting:
		p.attackTimer -= dt
		if p.attackTimer <= 0 {
			p.attack = AttackNone
			p.attackTimer = 0
		}
	}
}

func (p *Player) updateSpeech(dt float64) {
	if !p.speaking {
		return
	}
	p.speechTimer -= dt
	if p.speechTimer > 0 {
		return
	}
	p.spoken = append(p.spoken, p.lines[p.line])
	p.line++
	if p.line < len(p.lines) {
		p.speechTimer = p.cfg.Player.SpeechLine
		return
	}
	p.stopSpeech()
}

func (p *Player) stopSpeech() {
	p.lines, p.line, p.speechTimer, p.speaking = nil, 0, 0, false
}

// settle clears the in-action flag once every effect of the last action is over.
func (p *Player) settle() {
	if !p.inAction {
		return
	}
	if p.attack == AttackNone && p.vx == 0 && p.onPlatform && p.vy == 0 && !p.speaking {
		p.inAction = false
		p.justFinished = true
	}
}

func (p *Player) syncAction() {
	switch {
	case p.attack == AttackPreparing:
		p.Action = AnimAttackPrepare
	case p.attack == AttackExecuting:
		p.Action = AnimAttackExecute
	case !p.onPlatform:
		p.Action = AnimJump
	case p.vx != 0:
		p.Action = AnimMove
	case p.speaking:
		p.Action = AnimSpeech
	default:
		p.Action = AnimIdle
	}
}
