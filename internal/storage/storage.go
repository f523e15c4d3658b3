// Package storage persists mapped creatures in SQLite: one creatures row per
// stat block plus one creature_list_items row per list element.
package storage

import (
	"context"
	"time"

	"github.com/jwebster45206/creature-barn/pkg/creature"
)

// Storage defines the creature persistence operations.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// SaveCreature inserts c, replacing any creature with the same ID.
	SaveCreature(ctx context.Context, c *creature.Creature) error
	// GetCreature returns a not_found error when id is unknown.
	GetCreature(ctx context.Context, id string) (*creature.Creature, error)
	ListCreatures(ctx context.Context) ([]Summary, error)
	// DeleteCreature returns a not_found error when id is unknown.
	DeleteCreature(ctx context.Context, id string) error
}

// Summary is one row of a creature listing.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CR        string    `json:"cr,omitempty"`
	Type      string    `json:"type,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
