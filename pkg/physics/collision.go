// pkg/physics/collision.go
package physics

// Circle is a circular bounding shape used for broad-phase rejection
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles are colliding
func (c Circle) Collides(other Circle) bool {
	return c.Center.Distance(other.Center) < c.Radius+other.Radius
}

// Bounds is an axis-aligned rectangular area given by its center and full size
type Bounds struct {
	Center Vector2D
	Width  float64
	Height float64
}

// Contains reports whether point lies inside the area
func (r Bounds) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}

// Overlaps reports whether two areas share any point
func (r Bounds) Overlaps(area Bounds) bool {
	return !(area.Center.X-area.Width/2 > r.Center.X+r.Width/2 ||
		area.Center.X+area.Width/2 < r.Center.X-r.Width/2 ||
		area.Center.Y-area.Height/2 > r.Center.Y+r.Height/2 ||
		area.Center.Y+area.Height/2 < r.Center.Y-r.Height/2)
}

// BoundsAround returns the square area enclosing the circle
func BoundsAround(c Circle) Bounds {
	return Bounds{Center: c.Center, Width: 2 * c.Radius, Height: 2 * c.Radius}
}

// QuadTree for spatial partitioning of object centers
type QuadTree struct {
	Boundary  Bounds
	Capacity  int
	Points    []Vector2D
	Objects   []interface{}
	Divided   bool
	NorthWest *QuadTree
	NorthEast *QuadTree
	SouthWest *QuadTree
	SouthEast *QuadTree
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree(boundary Bounds, capacity int) *QuadTree {
	return &QuadTree{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vector2D, 0, capacity),
		Objects:  make([]interface{}, 0, capacity),
		Divided:  false,
	}
}

// Insert stores object at point. Points outside the boundary are rejected.
func (qt *QuadTree) Insert(point Vector2D, object interface{}) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if len(qt.Points) < qt.Capacity && !qt.Divided {
		qt.Points = append(qt.Points, point)
		qt.Objects = append(qt.Objects, object)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	return qt.NorthWest.Insert(point, object) ||
		qt.NorthEast.Insert(point, object) ||
		qt.SouthWest.Insert(point, object) ||
		qt.SouthEast.Insert(point, object)
}

// Subdivide splits the quadtree into four quadrants
func (qt *QuadTree) Subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	nw := Bounds{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}
	ne := Bounds{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}
	sw := Bounds{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}
	se := Bounds{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}

	qt.NorthWest = NewQuadTree(nw, qt.Capacity)
	qt.NorthEast = NewQuadTree(ne, qt.Capacity)
	qt.SouthWest = NewQuadTree(sw, qt.Capacity)
	qt.SouthEast = NewQuadTree(se, qt.Capacity)
	qt.Divided = true
}

// Clear empties the tree while keeping its boundary and capacity
func (qt *QuadTree) Clear() {
	qt.Points = qt.Points[:0]
	qt.Objects = qt.Objects[:0]
	qt.Divided = false
	qt.NorthWest, qt.NorthEast, qt.SouthWest, qt.SouthEast = nil, nil, nil, nil
}

// Query returns all objects whose points fall inside area
func (qt *QuadTree) Query(area Bounds) []interface{} {
	found := make([]interface{}, 0)

	if !qt.Boundary.Overlaps(area) {
		return found
	}

	for i, point := range qt.Points {
		if area.Contains(point) {
			found = append(found, qt.Objects[i])
		}
	}

	if !qt.Divided {
		return found
	}

	found = append(found, qt.NorthWest.Query(area)...)
	found = append(found, qt.NorthEast.Query(area)...)
	found = append(found, qt.SouthWest.Query(area)...)
	found = append(found, qt.SouthEast.Query(area)...)

	return found
}
