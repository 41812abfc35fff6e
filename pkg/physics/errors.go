package physics

import "errors"

var (
	// ErrZeroLength is returned when a direction is requested from a zero vector.
	ErrZeroLength = errors.New("physics: zero-length vector has no direction")
	// ErrZeroMass is returned when a body with no mass is recentered.
	ErrZeroMass = errors.New("physics: total mass is zero")
	// ErrInvalidExtent is returned for rects with non-positive half extents.
	ErrInvalidExtent = errors.New("physics: rect extents must be positive")
	// ErrInvalidMass is returned for rects with non-positive mass.
	ErrInvalidMass = errors.New("physics: rect mass must be positive")
)
