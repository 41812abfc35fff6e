package entity

import "image/color"

// recordingSurface is a Surface that remembers what was drawn
type recordingSurface struct {
	points  []recordedPoint
	lines   []recordedLine
	scale   float64
	originX float64
	originY float64
	flips   int
	clears  int
	locked  bool
}

type recordedPoint struct {
	X, Y  float64
	Color color.RGBA
}

type recordedLine struct {
	X1, Y1, X2, Y2 float64
	Color          color.RGBA
}

func (r *recordingSurface) DrawScaledPoint(x, y float64, c color.RGBA) {
	r.points = append(r.points, recordedPoint{X: x, Y: y, Color: c})
}

func (r *recordingSurface) DrawScaledLine(x1, y1, x2, y2 float64, c color.RGBA) {
	r.lines = append(r.lines, recordedLine{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: c})
}

func (r *recordingSurface) SetScale(k float64) { r.scale = k }

func (r *recordingSurface) ShiftOrigin(x, y float64) { r.originX, r.originY = x, y }

func (r *recordingSurface) Lock() { r.locked = true }

func (r *recordingSurface) Unlock() { r.locked = false }

func (r *recordingSurface) Flip() { r.flips++ }

func (r *recordingSurface) Clear() {
	r.clears++
	r.points = r.points[:0]
	r.lines = r.lines[:0]
}

func (r *recordingSurface) pointsIn(c color.RGBA) int {
	n := 0
	for _, p := range r.points {
		if p.Color == c {
			n++
		}
	}
	return n
}

var _ Surface = (*recordingSurface)(nil)
