// pkg/entity/entity.go
package entity

import (
	"github.com/google/uuid"

	"github.com/opd-ai/go-thrusters/pkg/physics"
)

// ID is a unique identifier for an entity
type ID = uuid.UUID

// GenerateID returns a new random ID.
func GenerateID() ID {
	return uuid.New()
}

// Entity is the base interface for all simulated objects
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	// GetCollider returns a circle enclosing the whole object, grown by
	// margin.
	GetCollider(margin float64) physics.Circle
}
