package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entity carries the identity and timestamps shared by every aggregate.
type Entity struct {
	ID        uuid.UUID  `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewEntity stamps a fresh identity. A nil id is replaced with a random one.
func NewEntity(id uuid.UUID) Entity {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return Entity{ID: id, CreatedAt: time.Now().UTC()}
}

// Touch records a modification time.
func (e *Entity) Touch(now time.Time) {
	t := now.UTC()
	e.UpdatedAt = &t
}
