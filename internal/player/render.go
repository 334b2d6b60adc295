package player

import (
	"math"

	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/entity"
)

const (
	labelSize  = 12
	speechSize = 14
	hpPip      = 6
)

// Render draws the body, name, hp pips, attack telegraph and speech bubble,
// then the component overlays.
func (p *Player) Render(c entity.Canvas, m entity.TextMeasurer, font string) {
	body := p.tint.Apply(entity.Solid(p.Color))
	img := p.ImageBounds()

	if !p.Alive() {
		body.Alpha = 0.4
		if def, ok := p.sprite.Set.Lookup(AnimDead); ok {
			c.DrawText(p.X, p.Y, def.Frame(0), font, body)
		} else {
			c.DrawRect(img, body)
		}
		p.RenderComponents(c)
		return
	}

	if frame, ok := p.sprite.Frame(); ok {
		c.DrawText(p.X, p.Y, frame, font, body)
	} else {
		c.DrawRect(p.Bounds(), body)
	}

	label := entity.Style{Color: p.Color, Alpha: 1, Size: labelSize}
	c.DrawText(p.X, img.Y-labelSize, p.Name, font, label)

	hp := p.dmg.HP
	left := p.X - float64(hp)*hpPip
	for i := 0; i < hp; i++ {
		pip := core.NewBox(left+float64(2*i)*hpPip, img.Y-2*labelSize, hpPip, hpPip)
		c.DrawRect(pip, entity.Solid(core.ColorRed))
	}

	reach := p.cfg.Player.AttackReach
	switch p.attack {
	case AttackPreparing:
		start := 0.0
		if p.Facing == entity.Left {
			start = math.Pi
		}
		c.DrawArc(p.X, p.Y, reach, start-math.Pi/2, start+math.Pi/2, entity.Style{Color: p.Color, Alpha: 0.4, LineWidth: 1})
	case AttackExecuting:
		tip := core.Vec{X: p.X + p.Facing.Sign()*reach, Y: p.Y}
		c.DrawPath([]core.Vec{{X: p.X, Y: p.Y}, tip}, entity.Style{Color: core.ColorBrightWhite, Alpha: 1, LineWidth: 2})
	}

	if line, ok := p.Speech(); ok {
		p.renderSpeech(c, m, font, line, img)
	}

	p.RenderComponents(c)
}

func (p *Player) renderSpeech(c entity.Canvas, m entity.TextMeasurer, font, line string, img core.Box) {
	x, y := p.X, img.Y-3*labelSize-speechSize
	text := entity.Style{Color: core.ColorBrightWhite, Alpha: 1, Size: speechSize}
	if w, h, ok := m.MeasureText(line, font, speechSize); ok {
		bubble := core.BoxAround(x, y, w+speechSize, h+speechSize/2)
		c.DrawRect(bubble, entity.Style{Color: core.ColorGray, Alpha: 0.8, LineWidth: 1})
	}
	c.DrawText(x, y, line, font, text)
}
