package entity

import (
	"github.com/vovakirdan/colosseum/internal/assets"
	"github.com/vovakirdan/colosseum/internal/core"
)

// Component is a unit of behavior owned by exactly one entity.
type Component interface {
	Kind() string
}

// Updater is implemented by components with a per-tick hook.
type Updater interface {
	Update(dt float64, owner *Base)
}

// Renderer is implemented by components that draw after their owner.
type Renderer interface {
	Render(c Canvas, owner *Base)
}

// Collider is the collision box of its owner, optionally offset from the center.
type Collider struct {
	OffsetX, OffsetY float64
	Visible          bool // debug overlay
}

func (*Collider) Kind() string { return "collider" }

// Bounds returns the axis-aligned box of the owner at its current position.
func (c *Collider) Bounds(owner *Base) core.Box {
	return core.BoxAround(owner.X+c.OffsetX, owner.Y+c.OffsetY, owner.Width, owner.Height)
}

func (c *Collider) Render(cv Canvas, owner *Base) {
	if !c.Visible {
		return
	}
	cv.DrawRect(c.Bounds(owner), Outline(core.ColorGreen))
}

// Damageable tracks hit points and the invincibility window after a hit.
type Damageable struct {
	HP     int
	Window float64 // seconds of invincibility after a successful hit

	remaining float64
}

// NewDamageable creates a damageable with hp hit points.
func NewDamageable(hp int, window float64) *Damageable {
	return &Damageable{HP: hp, Window: window}
}

func (*Damageable) Kind() string { return "damageable" }

// Alive reports whether any hit points remain.
func (d *Damageable) Alive() bool { return d.HP > 0 }

// Invincible reports whether the post-hit window is still open.
func (d *Damageable) Invincible() bool { return d.remaining > 0 }

// Hit removes one hit point unless invincible or already dead.
// It returns false when the hit was ignored.
func (d *Damageable) Hit() bool {
	if !d.Alive() || d.Invincible() {
		return false
	}
	d.HP--
	d.remaining = d.Window
	return true
}

// Reset restores hp and closes the invincibility window.
func (d *Damageable) Reset(hp int) {
	d.HP = hp
	d.remaining = 0
}

func (d *Damageable) Update(dt float64, _ *Base) {
	if d.remaining > 0 {
		d.remaining -= dt
		if d.remaining < 0 {
			d.remaining = 0
		}
	}
}

// Sprite plays the animation matching its owner's action.
type Sprite struct {
	Set *assets.AnimationSet

	action  string
	elapsed float64
	frame   int
	done    bool
}

// NewSprite creates a sprite over an animation set.
func NewSprite(set *assets.AnimationSet) *Sprite {
	return &Sprite{Set: set}
}

func (*Sprite) Kind() string { return "sprite" }

// Frame returns the current frame, or false when the action has no animation.
func (s *Sprite) Frame() (string, bool) {
	def, ok := s.Set.Lookup(s.action)
	if !ok {
		return "", false
	}
	return def.Frame(s.frame), true
}

// FrameIndex returns the index of the current frame.
func (s *Sprite) FrameIndex() int { return s.frame }

// Action returns the action currently animated.
func (s *Sprite) Action() string { return s.action }

func (s *Sprite) Update(dt float64, owner *Base) {
	if owner.Action != s.action {
		s.action = owner.Action
		s.elapsed, s.frame, s.done = 0, 0, false
	}
	def, ok := s.Set.Lookup(s.action)
	if !ok || s.done || def.FrameTime <= 0 || len(def.Frames) == 0 {
		return
	}

	s.elapsed += dt
	for s.elapsed >= def.FrameTime {
		s.elapsed -= def.FrameTime
		s.frame++
		if s.frame < len(def.Frames) {
			continue
		}
		if def.Loop {
			s.frame = 0
			continue
		}
		s.frame = len(def.Frames) - 1
		s.done = true
		if def.Next != "" {
			owner.Action = def.Next
		}
		return
	}
}

// Tint overrides the owner's color while active.
type Tint struct {
	Color  core.Color
	Alpha  float64
	Active bool
}

func (*Tint) Kind() string { return "tint" }

// Apply returns the style adjusted by the tint.
func (t *Tint) Apply(s Style) Style {
	if !t.Active {
		return s
	}
	s.Color = t.Color
	s.Alpha = t.Alpha
	return s
}
