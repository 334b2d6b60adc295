package entity

import "github.com/vovakirdan/colosseum/internal/core"

// Op is one recorded draw call.
type Op struct {
	Kind   string // circle, rect, arc, path, text
	Box    core.Box
	Points []core.Vec
	Text   string
	Style  Style
}

// Recorder is a Canvas that keeps every call, for headless runs and tests.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) DrawCircle(cx, cy, rad float64, s Style) {
	r.Ops = append(r.Ops, Op{Kind: "circle", Box: core.BoxAround(cx, cy, 2*rad, 2*rad), Style: s})
}

func (r *Recorder) DrawRect(b core.Box, s Style) {
	r.Ops = append(r.Ops, Op{Kind: "rect", Box: b, Style: s})
}

func (r *Recorder) DrawArc(cx, cy, rad, _, _ float64, s Style) {
	r.Ops = append(r.Ops, Op{Kind: "arc", Box: core.BoxAround(cx, cy, 2*rad, 2*rad), Style: s})
}

func (r *Recorder) DrawPath(points []core.Vec, s Style) {
	r.Ops = append(r.Ops, Op{Kind: "path", Points: append([]core.Vec(nil), points...), Style: s})
}

func (r *Recorder) DrawText(x, y float64, text, _ string, s Style) {
	r.Ops = append(r.Ops, Op{Kind: "text", Box: core.NewBox(x, y, 0, 0), Text: text, Style: s})
}

// Count returns the number of recorded calls of the given kind.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
