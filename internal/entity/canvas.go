package entity

import "github.com/vovakirdan/colosseum/internal/core"

// Style carries the presentation parameters of a draw call.
type Style struct {
	Color     core.Color
	Alpha     float64 // 0 transparent .. 1 opaque
	Fill      bool
	LineWidth float64
	Size      float64 // font size for text
}

// Solid returns an opaque filled style in color c.
func Solid(c core.Color) Style {
	return Style{Color: c, Alpha: 1, Fill: true}
}

// Outline returns an opaque stroked style in color c.
func Outline(c core.Color) Style {
	return Style{Color: c, Alpha: 1, LineWidth: 1}
}

// Canvas is the render sink entities draw into. Coordinates are arena pixels.
// Text is centered on (x, y) and split into rows on newlines.
// Entities never read back from it.
type Canvas interface {
	DrawCircle(cx, cy, r float64, s Style)
	DrawRect(b core.Box, s Style)
	DrawArc(cx, cy, r, start, end float64, s Style)
	DrawPath(points []core.Vec, s Style)
	DrawText(x, y float64, text, font string, s Style)
}

// TextMeasurer reports rendered text size. ok is false when no size is known yet.
type TextMeasurer interface {
	MeasureText(text, font string, size float64) (w, h float64, ok bool)
}

// NoMeasurer never knows a text size.
type NoMeasurer struct{}

func (NoMeasurer) MeasureText(string, string, float64) (float64, float64, bool) {
	return 0, 0, false
}
