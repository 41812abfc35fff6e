package entity

import "errors"

var (
	// ErrZeroTimeStep is returned by controllers asked to act on a tick of
	// zero or negative length.
	ErrZeroTimeStep = errors.New("entity: zero time step")
	// ErrInvalidThrust reports an engine with non-positive thrust.
	ErrInvalidThrust = errors.New("entity: invalid thrust")
)
