package player

import (
	"fmt"

	"github.com/vovakirdan/colosseum/internal/core"
)

// Log interactions.
const (
	InteractionHit        = "hit"
	InteractionEliminated = "eliminated"
	InteractionFirstBlood = "First Blood!"
)

// ReceiveDamage applies one hit from attacker. Every hit removes exactly one hp;
// power only sets the knockback. It returns false when the hit was ignored
// because the player is dead or still invincible from a previous hit.
func (p *Player) ReceiveDamage(attacker *Player, power float64) bool {
	if !p.dmg.Hit() {
		return false
	}
	if attacker != nil {
		attacker.attackPoint++
	}

	if !p.dmg.Alive() {
		p.die(attacker)
		return true
	}

	dir := -p.Facing.Sign()
	if attacker != nil {
		dir = core.SignF(p.X - attacker.X)
	}
	max := p.cfg.Physics.MaxSpeed
	p.vx = core.ClampF(dir*power, -max, max)
	p.vy = -200 - power/10
	p.onPlatform = false
	p.attack, p.attackTimer = AttackNone, 0
	p.inAction = true
	p.tint.Active = true

	extra := fmt.Sprintf("hp %d", p.dmg.HP)
	if attacker != nil {
		p.mc.Duo(attacker.Ref(), p.Ref(), InteractionHit, extra)
	} else {
		p.mc.Solo(p.Ref(), "took a hit, "+extra)
	}
	return true
}

func (p *Player) die(attacker *Player) {
	if p.deathTime.IsZero() {
		p.deathTime = p.mc.Now()
	}
	p.vx, p.vy = 0, 0
	p.attack, p.attackTimer = AttackNone, 0
	p.stopSpeech()
	p.inAction = false
	p.tint.Active = false
	p.Action = AnimDead

	interaction := InteractionEliminated
	if p.mc.RecordDeath() {
		interaction = InteractionFirstBlood
	}
	if attacker == nil {
		p.mc.Solo(p.Ref(), interaction)
		return
	}
	attacker.killPoint++
	p.mc.Duo(attacker.Ref(), p.Ref(), interaction, "")
}
