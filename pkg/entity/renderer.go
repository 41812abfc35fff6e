package entity

import "image/color"

// Surface is the drawing collaborator ships and engines draw onto. Points
// and lines are in world coordinates; the surface applies the scale and
// origin set by SetScale and ShiftOrigin. Coordinates that fall off screen
// are clipped silently.
type Surface interface {
	DrawScaledPoint(x, y float64, c color.RGBA)
	DrawScaledLine(x1, y1, x2, y2 float64, c color.RGBA)
	SetScale(k float64)
	ShiftOrigin(x, y float64)
	Lock()
	Unlock()
	Flip()
	Clear()
}
