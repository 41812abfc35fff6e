// pkg/entity/entity_test.go
package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[ID]bool)
	for range 100 {
		id := GenerateID()
		assert.NotEqual(t, uuid.Nil, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestShip_ImplementsEntity(t *testing.T) {
	s := newTestShip(t)
	var e Entity = s

	assert.Equal(t, s.GetID(), e.GetID())
	assert.Equal(t, s.Position(), e.GetPosition())

	c := e.GetCollider(2)
	assert.Equal(t, s.Position(), c.Center)
	for _, r := range s.Rects() {
		for _, corner := range r.Corners(s.Position()) {
			assert.Less(t, corner.Distance(c.Center), c.Radius)
		}
	}
}

func TestWithID(t *testing.T) {
	id := uuid.MustParse("7f1c1a52-3c2e-4b61-9f53-0d6d0c0ffee1")
	s := newTestShip(t, WithID(id))
	assert.Equal(t, id, s.GetID())
}
