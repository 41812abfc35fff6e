// Package render provides entity.Surface implementations.
package render

// Viewport maps world coordinates onto a Width x Height grid of pixels or
// cells. World y grows upward and screen y grows downward; the shift point
// lands in the middle of the grid.
type Viewport struct {
	Width  int
	Height int
	Scale  float64
	ShiftX float64
	ShiftY float64
}

// NewViewport returns a viewport at unit scale centered on the origin.
func NewViewport(width, height int) Viewport {
	return Viewport{Width: width, Height: height, Scale: 1}
}

// ToScreenF converts a world position to fractional screen coordinates.
func (v Viewport) ToScreenF(x, y float64) (float64, float64) {
	sx := (x-v.ShiftX)*v.Scale + float64(v.Width/2)
	sy := (-y+v.ShiftY)*v.Scale + float64(v.Height/2)
	return sx, sy
}

// ToScreen converts a world position to screen coordinates, truncating
// toward zero.
func (v Viewport) ToScreen(x, y float64) (int, int) {
	sx, sy := v.ToScreenF(x, y)
	return int(sx), int(sy)
}

// Contains reports whether screen position (sx, sy) lies on the grid.
func (v Viewport) Contains(sx, sy int) bool {
	return sx >= 0 && sx < v.Width && sy >= 0 && sy < v.Height
}

// OffScreen reports whether the segment between two screen points lies
// entirely past one edge.
func (v Viewport) OffScreen(x1, y1, x2, y2 int) bool {
	return (x1 >= v.Width && x2 >= v.Width) ||
		(x1 < 0 && x2 < 0) ||
		(y1 >= v.Height && y2 >= v.Height) ||
		(y1 < 0 && y2 < 0)
}

// line calls plot for every grid position on the segment between two
// screen points, using Bresenham's algorithm. Segments entirely off one
// edge are skipped.
func (v Viewport) line(x1, y1, x2, y2 int, plot func(x, y int)) {
	if v.OffScreen(x1, y1, x2, y2) {
		return
	}

	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	e := dx + dy
	for {
		if v.Contains(x1, y1) {
			plot(x1, y1)
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
