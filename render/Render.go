// Package render implements drawing of simulation frames as images
package render

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/samuelfneumann/gridlearn/environment"
)

const (
	// CellSize is the width and height of a grid cell in pixels
	CellSize float64 = 50

	// Inset is the gap in pixels between an agent and its cell's edges
	Inset float64 = 5
)

// rgb is a colour with components in [0, 1]
type rgb struct{ r, g, b float64 }

var (
	background = rgb{1, 1, 1}
	gridLine   = rgb{0.8, 0.8, 0.8}
	obstacle   = rgb{0.25, 0.25, 0.25}
	visited    = rgb{0.85, 0.95, 0.85}
	heading    = rgb{0, 0, 0}

	palette = map[string]rgb{
		"red":   {1, 0, 0},
		"green": {0, 0.6, 0},
		"blue":  {0, 0, 1},
	}
)

// Draw paints a Frame: grid lines every cell, visited cells shaded,
// obstacles filled and agents as circles inset into their cells. The
// grid's y axis points up, so row 0 is drawn at the bottom.
func Draw(f environment.Frame) image.Image {
	return paint(f).Image()
}

func paint(f environment.Frame) *gg.Context {
	px := int(CellSize) * f.Size
	dc := gg.NewContext(px, px)

	setColour(dc, background)
	dc.Clear()

	for _, c := range f.Visited {
		fillCell(dc, f.Size, c, visited)
	}
	for _, c := range f.Obstacles {
		fillCell(dc, f.Size, c, obstacle)
	}

	// Grid lines
	setColour(dc, gridLine)
	dc.SetLineWidth(1.0)
	for i := 0; i <= f.Size; i++ {
		p := float64(i) * CellSize
		dc.DrawLine(p, 0, p, float64(px))
		dc.DrawLine(0, p, float64(px), p)
	}
	dc.Stroke()

	for _, a := range f.Agents {
		drawAgent(dc, f.Size, a)
	}
	return dc
}

// origin returns the pixel coordinates of the top left corner of c
func origin(size int, c environment.Cell) (float64, float64) {
	return float64(c.X) * CellSize, float64(size-1-c.Y) * CellSize
}

func fillCell(dc *gg.Context, size int, c environment.Cell, colour rgb) {
	x, y := origin(size, c)
	dc.DrawRectangle(x, y, CellSize, CellSize)
	setColour(dc, colour)
	dc.Fill()
}

func drawAgent(dc *gg.Context, size int, a environment.Agent) {
	x, y := origin(size, a.Cell)
	cx, cy := x+CellSize/2, y+CellSize/2
	radius := CellSize/2 - Inset

	colour, ok := palette[a.Colour]
	if !ok {
		colour = palette["red"]
	}
	dc.DrawCircle(cx, cy, radius)
	setColour(dc, colour)
	dc.Fill()

	if a.Heading == "" {
		return
	}
	dx, dy := headingDelta(a.Heading)
	dc.DrawLine(cx, cy, cx+dx*radius, cy-dy*radius)
	setColour(dc, heading)
	dc.SetLineWidth(3.0)
	dc.Stroke()
}

func headingDelta(h string) (float64, float64) {
	switch h {
	case "Up":
		return 0, 1
	case "Down":
		return 0, -1
	case "Right":
		return 1, 0
	case "Left":
		return -1, 0
	}
	return 0, 0
}

func setColour(dc *gg.Context, c rgb) {
	dc.SetRGB(c.r, c.g, c.b)
}
