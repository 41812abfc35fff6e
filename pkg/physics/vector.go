// pkg/physics/vector.go
package physics

import "math"

// Vector2D represents a 2D vector with x and y components
type Vector2D struct {
	X float64
	Y float64
}

// Add returns the sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2D) Scale(factor float64) Vector2D {
	return Vector2D{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Length returns the magnitude of the vector
func (v Vector2D) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func (v Vector2D) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction.
// A zero vector has no direction and yields ErrZeroLength.
func (v Vector2D) Normalize() (Vector2D, error) {
	length := v.Length()
	if length == 0 {
		return Vector2D{}, ErrZeroLength
	}
	return v.Scale(1 / length), nil
}

// Distance returns the distance between two vectors
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Length()
}

// Dot returns the dot product of two vectors
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the signed magnitude of the 2D cross product v × other.
// Positive when other lies counter-clockwise of v.
func (v Vector2D) Cross(other Vector2D) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Rotate rotates the vector by angle (in radians), counter-clockwise
func (v Vector2D) Rotate(angle float64) Vector2D {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.Y*cos + v.X*sin,
	}
}

// AddInPlace adds other to v.
func (v *Vector2D) AddInPlace(other Vector2D) {
	v.X += other.X
	v.Y += other.Y
}

// SubInPlace subtracts other from v.
func (v *Vector2D) SubInPlace(other Vector2D) {
	v.X -= other.X
	v.Y -= other.Y
}

// ScaleInPlace multiplies both components of v by factor.
func (v *Vector2D) ScaleInPlace(factor float64) {
	v.X *= factor
	v.Y *= factor
}

// RotateInPlace rotates v by angle radians.
func (v *Vector2D) RotateInPlace(angle float64) {
	*v = v.Rotate(angle)
}

// NormalizeInPlace scales v to unit length. v is left untouched on error.
func (v *Vector2D) NormalizeInPlace() error {
	n, err := v.Normalize()
	if err != nil {
		return err
	}
	*v = n
	return nil
}
