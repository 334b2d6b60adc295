package player

import (
	"math"

	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/world"
)

// landingSlack absorbs rounding after a snap so a resting player stays landed.
const landingSlack = 1e-6

// sense refreshes the enemy metrics the decision model works from.
func (p *Player) sense() {
	s := Sensed{NearestDist: math.Inf(1), NearestDir: 1}
	if p.roster == nil {
		p.sensed = Sensed{}
		return
	}

	effective := p.cfg.Player.AttackReach * p.cfg.AI.RangeFactor
	for _, o := range p.roster.players {
		if o == p || !o.Alive() {
			continue
		}
		d := core.Dist(p.X, p.Y, o.X, o.Y)
		front := p.InFront(o)
		if d < s.NearestDist {
			s.HasEnemy = true
			s.NearestDist = d
			s.NearestDir = core.SignF(o.X - p.X)
			s.NearestInFront = front
		}
		if front && d <= effective {
			s.InRange++
			if o.attack == AttackPreparing {
				s.PreparingInRange++
			}
		}
	}
	if !s.HasEnemy {
		s.NearestDist = 0
	}
	p.sensed = s
}

// integrateVertical applies gravity and lands on the first platform whose top
// edge the player's bottom crossed this step.
func (p *Player) integrateVertical(dt float64, w *world.World) {
	prevBottom := p.BottomEdge()
	p.vy += p.cfg.Physics.Gravity * dt
	p.vy = core.ClampF(p.vy, -p.cfg.Physics.MaxSpeed, p.cfg.Physics.MaxSpeed)
	p.Y += p.vy * dt
	p.onPlatform = false

	if p.vy < 0 {
		return
	}
	bottom := p.BottomEdge()
	box := p.Bounds()

	platforms := w.Platforms()
	for _, pl := range platforms {
		if prevBottom <= pl.Y+landingSlack && bottom >= pl.Y && box.OverlapsX(pl) {
			p.land(pl.Y)
			return
		}
	}

	// An arena without platforms still has a ground at the viewport bottom.
	if len(platforms) == 0 && w.Sized() && bottom >= w.Height() {
		p.land(w.Height())
	}
}

func (p *Player) land(top float64) {
	p.Y = top - p.Height/2
	p.vy = 0
	p.onPlatform = true
}

// integrateHorizontal applies ground friction and keeps the player between the walls.
func (p *Player) integrateHorizontal(dt float64, w *world.World) {
	if p.onPlatform {
		p.vx *= p.cfg.Physics.Friction
		if math.Abs(p.vx) < p.cfg.Physics.StopThreshold {
			p.vx = 0
		}
	}
	p.X += p.vx * dt

	if !w.Sized() {
		return
	}
	half := p.Width / 2
	if p.X < half {
		p.X = half
		p.vx = 0
	} else if p.X > w.Width()-half {
		p.X = w.Width() - half
		p.vx = 0
	}
}

// ClampToArena keeps the player inside the arena walls without touching velocity.
func (p *Player) ClampToArena(w *world.World) {
	if !w.Sized() {
		return
	}
	p.X = core.ClampF(p.X, p.Width/2, w.Width()-p.Width/2)
}
