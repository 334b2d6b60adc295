// Package canvas rasterises arena drawing into a character screen.
// Arena pixels are mapped onto cells so the simulation never needs to know
// the terminal size.
package canvas

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/colosseum/internal/core"
	"github.com/vovakirdan/colosseum/internal/entity"
)

// Canvas draws onto a core.Screen. It implements entity.Canvas and
// entity.TextMeasurer.
type Canvas struct {
	screen *core.Screen
	cellW  float64
	cellH  float64
}

var (
	_ entity.Canvas       = (*Canvas)(nil)
	_ entity.TextMeasurer = (*Canvas)(nil)
)

// New creates a canvas that maps an arenaW x arenaH arena onto screen.
func New(screen *core.Screen, arenaW, arenaH float64) *Canvas {
	c := &Canvas{screen: screen}
	c.SetArena(arenaW, arenaH)
	return c
}

// SetArena updates the arena size after a resize of either side.
func (c *Canvas) SetArena(arenaW, arenaH float64) {
	c.cellW = arenaW / float64(max(c.screen.Width(), 1))
	c.cellH = arenaH / float64(max(c.screen.Height(), 1))
	if c.cellW <= 0 {
		c.cellW = 1
	}
	if c.cellH <= 0 {
		c.cellH = 1
	}
}

// Screen returns the underlying buffer.
func (c *Canvas) Screen() *core.Screen {
	return c.screen
}

// CellSize returns the arena size of one cell.
func (c *Canvas) CellSize() (w, h float64) {
	return c.cellW, c.cellH
}

// ToArena converts a cell position to the arena point at the cell's center.
func (c *Canvas) ToArena(col, row int) core.Vec {
	return core.Vec{
		X: (float64(col) + 0.5) * c.cellW,
		Y: (float64(row) + 0.5) * c.cellH,
	}
}

func (c *Canvas) cell(x, y float64) (int, int) {
	return int(math.Floor(x / c.cellW)), int(math.Floor(y / c.cellH))
}

// shade picks a fill glyph for an alpha value.
func shade(alpha float64) rune {
	switch {
	case alpha >= 0.75:
		return '█'
	case alpha >= 0.5:
		return '▓'
	case alpha >= 0.25:
		return '▒'
	default:
		return '░'
	}
}

func (c *Canvas) DrawRect(b core.Box, s entity.Style) {
	if s.Alpha <= 0 || b.W <= 0 || b.H <= 0 {
		return
	}
	x0, y0 := c.cell(b.X, b.Y)
	x1, y1 := c.cell(b.Right()-1e-9, b.Bottom()-1e-9)
	r := core.NewRect(x0, y0, x1-x0+1, y1-y0+1)

	if s.Fill {
		c.screen.DrawRect(r, shade(s.Alpha), s.Color)
		return
	}
	if r.W < 2 || r.H < 2 {
		c.screen.DrawRect(r, '+', s.Color)
		return
	}
	c.screen.DrawBox(r, s.Color)
}

func (c *Canvas) DrawCircle(cx, cy, rad float64, s entity.Style) {
	if s.Alpha <= 0 || rad <= 0 {
		return
	}
	x0, y0 := c.cell(cx-rad, cy-rad)
	x1, y1 := c.cell(cx+rad, cy+rad)
	if x0 == x1 && y0 == y1 {
		c.screen.SetColored(x0, y0, 'o', s.Color)
		return
	}

	fill := shade(s.Alpha)
	ring := math.Max(c.cellW, c.cellH)
	for row := y0; row <= y1; row++ {
		for col := x0; col <= x1; col++ {
			p := c.ToArena(col, row)
			d := math.Hypot(p.X-cx, p.Y-cy)
			switch {
			case d > rad:
			case s.Fill:
				c.screen.SetColored(col, row, fill, s.Color)
			case d >= rad-ring:
				c.screen.SetColored(col, row, '·', s.Color)
			}
		}
	}
}

// DrawArc plots the arc from start to end radians, clockwise in screen space.
func (c *Canvas) DrawArc(cx, cy, rad, start, end float64, s entity.Style) {
	if s.Alpha <= 0 || rad <= 0 {
		return
	}
	if end < start {
		start, end = end, start
	}
	step := math.Min(c.cellW, c.cellH) / (2 * rad)
	for a := start; a <= end; a += step {
		col, row := c.cell(cx+rad*math.Cos(a), cy+rad*math.Sin(a))
		c.screen.SetColored(col, row, '*', s.Color)
	}
}

func (c *Canvas) DrawPath(points []core.Vec, s entity.Style) {
	if s.Alpha <= 0 {
		return
	}
	for i := 1; i < len(points); i++ {
		c.line(points[i-1], points[i], s.Color)
	}
	if len(points) == 1 {
		col, row := c.cell(points[0].X, points[0].Y)
		c.screen.SetColored(col, row, '•', s.Color)
	}
}

// line walks a segment cell by cell.
func (c *Canvas) line(a, b core.Vec, color core.Color) {
	x0, y0 := c.cell(a.X, a.Y)
	x1, y1 := c.cell(b.X, b.Y)
	dx, dy := core.Abs(x1-x0), -core.Abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	switch {
	case y0 == y1:
		c.screen.DrawHLine(min(x0, x1), y0, dx+1, '-', color)
		return
	case x0 == x1:
		c.screen.DrawVLine(x0, min(y0, y1), -dy+1, '|', color)
		return
	}
	glyph := '-'
	if -dy > dx {
		glyph = '|'
	}

	err := dx + dy
	for {
		c.screen.SetColored(x0, y0, glyph, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) DrawText(x, y float64, text, _ string, s entity.Style) {
	if s.Alpha <= 0 || text == "" {
		return
	}
	lines := strings.Split(text, "\n")
	col, row := c.cell(x, y)
	top := row - len(lines)/2
	for i, line := range lines {
		left := col - utf8.RuneCountInString(line)/2
		c.screen.DrawTextColored(left, top+i, line, s.Color)
	}
}

// MeasureText reports the arena size text occupies. A terminal always knows it.
func (c *Canvas) MeasureText(text, _ string, _ float64) (float64, float64, bool) {
	lines := strings.Split(text, "\n")
	widest := 0
	for _, line := range lines {
		widest = max(widest, utf8.RuneCountInString(line))
	}
	return float64(widest) * c.cellW, float64(len(lines)) * c.cellH, true
}
