package physics

// Body is a composite rigid object: one center shared by an ordered set of
// rects. Only the Body holds the center, so moving the object is a single
// write and rects can never disagree about where their object is.
type Body struct {
	Center Vector2D
	Rects  []OrientedRect
}

// TranslateObject moves the whole object.
func (b *Body) TranslateObject(dx, dy float64) {
	b.Center.X += dx
	b.Center.Y += dy
}

// RotateObject rotates every rect about the object center.
func (b *Body) RotateObject(theta float64) {
	for i := range b.Rects {
		b.Rects[i].RotateObject(theta)
	}
}

// Mass returns the summed rect mass.
func (b *Body) Mass() float64 {
	mass := 0.0
	for _, r := range b.Rects {
		mass += r.Mass
	}
	return mass
}

// Moment returns the summed rect moments.
func (b *Body) Moment() float64 {
	moment := 0.0
	for _, r := range b.Rects {
		moment += r.Moment()
	}
	return moment
}

// Recenter shifts every rect offset so that the mass-weighted centroid of the
// offsets becomes the local origin.
func (b *Body) Recenter() error {
	var totMass, xMass, yMass float64
	for _, r := range b.Rects {
		totMass += r.Mass
		xMass += r.Mass * r.Offset.X
		yMass += r.Mass * r.Offset.Y
	}
	if totMass == 0 {
		return ErrZeroMass
	}

	dx := xMass / totMass
	dy := yMass / totMass
	for i := range b.Rects {
		b.Rects[i].Offset.X -= dx
		b.Rects[i].Offset.Y -= dy
	}
	return nil
}

// Intersects reports whether any rect of b overlaps any rect of other.
func (b *Body) Intersects(other *Body) bool {
	for i := range b.Rects {
		for j := range other.Rects {
			if b.Rects[i].Intersects(b.Center, other.Rects[j], other.Center) {
				return true
			}
		}
	}
	return false
}

// BoundingCircle returns a circle around the object enclosing every rect,
// grown by margin.
func (b *Body) BoundingCircle(margin float64) Circle {
	radius := 0.0
	for _, r := range b.Rects {
		radius = max(radius, r.BoundingRadius())
	}
	return Circle{Center: b.Center, Radius: radius + margin}
}
