// Package assets provides glyph animation sets and the cached loader entities
// use to obtain them before they join the arena.
package assets

import "sort"

// AnimationDef describes how one action is animated.
type AnimationDef struct {
	Action    string   `yaml:"action"`
	Frames    []string `yaml:"frames"`
	FrameTime float64  `yaml:"frame_time"` // seconds per frame
	Loop      bool     `yaml:"loop"`
	Next      string   `yaml:"next"` // action to switch to when a non-looping animation completes
}

// Frame returns the frame at index i, clamped to the valid range.
func (d AnimationDef) Frame(i int) string {
	if len(d.Frames) == 0 {
		return ""
	}
	if i < 0 {
		i = 0
	}
	if i >= len(d.Frames) {
		i = len(d.Frames) - 1
	}
	return d.Frames[i]
}

// AnimationSet is an immutable collection of animations for one asset id.
type AnimationSet struct {
	id   string
	defs map[string]AnimationDef
}

// NewAnimationSet creates a set. Later definitions for the same action win.
func NewAnimationSet(id string, defs []AnimationDef) *AnimationSet {
	m := make(map[string]AnimationDef, len(defs))
	for _, d := range defs {
		d.Frames = append([]string(nil), d.Frames...)
		m[d.Action] = d
	}
	return &AnimationSet{id: id, defs: m}
}

// ID returns the asset id the set was loaded for.
func (s *AnimationSet) ID() string {
	return s.id
}

// Lookup returns the definition for an action, or false if the set has none.
func (s *AnimationSet) Lookup(action string) (AnimationDef, bool) {
	if s == nil {
		return AnimationDef{}, false
	}
	d, ok := s.defs[action]
	return d, ok
}

// Actions returns the animated actions in sorted order.
func (s *AnimationSet) Actions() []string {
	out := make([]string, 0, len(s.defs))
	for a := range s.defs {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
