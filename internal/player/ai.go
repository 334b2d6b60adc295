package player

import (
	"fmt"

	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/entity"
)

// Act is a decision the AI can take.
type Act int

const (
	ActMove Act = iota
	ActJump
	ActAttack
	ActMoveJump
	ActSpeech
	actCount

	ActNone Act = -1
)

func (a Act) String() string {
	switch a {
	case ActMove:
		return "MOVE"
	case ActJump:
		return "JUMP"
	case ActAttack:
		return "ATTACK"
	case ActMoveJump:
		return "MOVE_JUMP"
	case ActSpeech:
		return "SPEECH"
	default:
		return "NONE"
	}
}

var (
	validPool = []Act{ActMove, ActJump, ActAttack, ActMoveJump}
	idlePool  = []Act{ActSpeech}
)

// SetWeight sets the base weight of an action.
func (p *Player) SetWeight(a Act, w float64) error {
	if a < 0 || a >= actCount {
		return fmt.Errorf("player: unknown action %d", a)
	}
	if w < 0 {
		return fmt.Errorf("%w: %s = %v", ErrNegativeWeight, a, w)
	}
	p.base[a] = w
	return nil
}

// BaseWeight returns the configured weight of an action.
func (p *Player) BaseWeight(a Act) float64 {
	if a < 0 || a >= actCount {
		return 0
	}
	return p.base[a]
}

// Weight returns the weight of an action as of the last decision.
func (p *Player) Weight(a Act) float64 {
	if a < 0 || a >= actCount {
		return 0
	}
	return p.weights[a]
}

// think runs the idle cooldown and, once it has elapsed, picks the next action.
func (p *Player) think(dt float64) {
	if p.inAction {
		return
	}
	if p.justFinished {
		p.justFinished = false
		p.cooldown = p.mc.Rand.Float64() * p.cfg.AI.CooldownMax
	}
	if p.cooldown > 0 {
		p.cooldown -= dt
		if p.cooldown > 0 {
			return
		}
		p.cooldown = 0
	}

	p.computeWeights()
	pool := validPool
	if p.mc.Rand.Float64() < p.cfg.AI.IdleChance {
		pool = idlePool
	}
	p.Perform(p.pick(pool))
}

// computeWeights derives the current weights from the base ones and what was sensed.
func (p *Player) computeWeights() {
	p.weights = p.base
	m := p.cfg.AI.Modifiers
	s := p.sensed

	switch {
	case s.PreparingInRange > 0:
		p.weights[ActMove] *= m.EvadeBoost
		p.weights[ActJump] *= m.EvadeBoost
		p.weights[ActMoveJump] *= m.EvadeBoost
		p.weights[ActAttack] *= m.EvadeAttack
	case s.InRange > 0:
		p.weights[ActAttack] *= m.InFrontAttack * float64(s.InRange)
	case s.HasEnemy && s.NearestInFront && s.NearestDist <= p.cfg.Player.AttackReach*p.cfg.AI.NearbyFactor:
		p.weights[ActAttack] *= m.NearbyAttack
	default:
		p.weights[ActAttack] *= m.FarAttack
	}
}

// pick draws an action from pool in proportion to its weight.
func (p *Player) pick(pool []Act) Act {
	total := 0.0
	for _, a := range pool {
		total += p.weights[a]
	}
	if total <= 0 {
		return pool[p.mc.Rand.Intn(len(pool))]
	}

	r := p.mc.Rand.Float64() * total
	for _, a := range pool {
		r -= p.weights[a]
		if r < 0 {
			return a
		}
	}
	return pool[len(pool)-1]
}

// Perform applies an action's effects immediately.
func (p *Player) Perform(a Act) {
	if !p.Alive() {
		return
	}
	switch a {
	case ActMove:
		p.move()
	case ActJump:
		if !p.onPlatform {
			return
		}
		p.jump()
	case ActMoveJump:
		grounded := p.onPlatform
		p.move()
		if grounded {
			p.jump()
		}
	case ActAttack:
		if p.attack == AttackNone {
			p.attack = AttackPreparing
			p.attackTimer = p.cfg.Player.PrepareTime
		}
	case ActSpeech:
		if len(p.cfg.Dialogue) == 0 {
			return
		}
		lines := p.cfg.Dialogue[p.mc.Rand.Intn(len(p.cfg.Dialogue))]
		if len(lines) == 0 {
			return
		}
		p.lines = lines
		p.line = 0
		p.speechTimer = p.cfg.Player.SpeechLine
		p.speaking = true
	default:
		return
	}
	p.last = a
	p.inAction = true
}

func (p *Player) move() {
	ai := p.cfg.AI
	impulse := ai.MoveImpulseMin + p.mc.Rand.Float64()*(ai.MoveImpulseMax-ai.MoveImpulseMin)
	dir := p.sensed.NearestDir
	if !p.sensed.HasEnemy {
		dir = p.Facing.Sign()
	}
	max := p.cfg.Physics.MaxSpeed
	p.vx = core.ClampF(p.vx+dir*impulse, -max, max)
	p.Facing = entity.DirectionOf(dir)
}

func (p *Player) jump() {
	ai := p.cfg.AI
	p.vy = ai.JumpImpulseMin + p.mc.Rand.Float64()*(ai.JumpImpulseMax-ai.JumpImpulseMin)
	p.onPlatform = false
}
