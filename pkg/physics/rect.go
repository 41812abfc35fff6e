// pkg/physics/rect.go
package physics

import (
	"fmt"
	"math"
)

// OrientedRect is a rigid rectangle with its own axes, placed at Offset from
// the center of the object that owns it. The object center itself is held by
// the owner (see Body) and passed in for world-space queries.
type OrientedRect struct {
	ExtentX float64 // half extent along AxisX
	ExtentY float64 // half extent along AxisY
	Mass    float64
	Offset  Vector2D
	AxisX   Vector2D // unit
	AxisY   Vector2D // unit
}

// NewOrientedRect creates an axis-aligned rect at zero offset.
func NewOrientedRect(extentX, extentY, mass float64) (OrientedRect, error) {
	if !(extentX > 0) || !(extentY > 0) {
		return OrientedRect{}, fmt.Errorf("extents (%g, %g): %w", extentX, extentY, ErrInvalidExtent)
	}
	if !(mass > 0) {
		return OrientedRect{}, fmt.Errorf("mass %g: %w", mass, ErrInvalidMass)
	}
	return OrientedRect{
		ExtentX: extentX,
		ExtentY: extentY,
		Mass:    mass,
		AxisX:   Vector2D{X: 1, Y: 0},
		AxisY:   Vector2D{X: 0, Y: 1},
	}, nil
}

// RotateObject rotates the rect as part of its object: the offset and both
// axes turn about the object center.
func (r *OrientedRect) RotateObject(theta float64) {
	r.Offset.RotateInPlace(theta)
	r.AxisX.RotateInPlace(theta)
	r.AxisY.RotateInPlace(theta)
}

// RotateSelf rotates the rect about its own center.
func (r *OrientedRect) RotateSelf(theta float64) {
	r.AxisX.RotateInPlace(theta)
	r.AxisY.RotateInPlace(theta)
}

// TranslateSelf moves the rect relative to its object center.
func (r *OrientedRect) TranslateSelf(dx, dy float64) {
	r.Offset.X += dx
	r.Offset.Y += dy
}

// Moment returns the rect's contribution to its object's moment of inertia.
// The offset term is linear in |offset|, not the parallel-axis m·d².
func (r OrientedRect) Moment() float64 {
	x, y := r.ExtentX, r.ExtentY
	moment := r.Mass * (x*x + y*y) / 3.0
	moment += r.Mass * r.Offset.Length()
	return moment
}

// WorldCenter returns the rect center given its object's center.
func (r OrientedRect) WorldCenter(objectCenter Vector2D) Vector2D {
	return objectCenter.Add(r.Offset)
}

// Corners returns the corners in drawing order: up-right, up-left,
// down-left, down-right.
func (r OrientedRect) Corners(objectCenter Vector2D) [4]Vector2D {
	center := r.WorldCenter(objectCenter)
	ax := r.AxisX.Scale(r.ExtentX)
	ay := r.AxisY.Scale(r.ExtentY)
	upper := ax.Add(ay)
	lower := ax.Sub(ay)
	return [4]Vector2D{
		center.Add(upper),
		center.Sub(lower),
		center.Sub(upper),
		center.Add(lower),
	}
}

// BoundingRadius is the distance from the object center to the farthest
// point of the rect.
func (r OrientedRect) BoundingRadius() float64 {
	return r.Offset.Length() + math.Hypot(r.ExtentX, r.ExtentY)
}

// Intersects reports whether r, owned by an object at center, overlaps
// other, owned by an object at otherCenter. It runs the separating axis test
// over the four edge normals of the two rects.
//
// Each candidate axis is scaled by the distance between the rect centers
// before projecting, and every absolute projection is truncated to a whole
// number before comparison. Both sides of each inequality are affected, so
// contact at game scale matches the exact test, but near-touching pairs can
// differ from it. Gameplay is tuned against this form.
func (r OrientedRect) Intersects(center Vector2D, other OrientedRect, otherCenter Vector2D) bool {
	t := other.WorldCenter(otherCenter).Sub(r.WorldCenter(center))

	scale := t.Length()
	axes := [4]Vector2D{r.AxisX, r.AxisY, other.AxisX, other.AxisY}
	for _, axis := range axes {
		l := axis.Scale(scale)
		r1 := r.ExtentX*truncAbs(r.AxisX.Dot(l)) + r.ExtentY*truncAbs(r.AxisY.Dot(l))
		r2 := other.ExtentX*truncAbs(other.AxisX.Dot(l)) + other.ExtentY*truncAbs(other.AxisY.Dot(l))
		if truncAbs(t.Dot(l)) > r1+r2 {
			return false
		}
	}
	return true
}

// truncAbs drops the fractional part and the sign.
func truncAbs(x float64) float64 {
	return math.Abs(math.Trunc(x))
}
