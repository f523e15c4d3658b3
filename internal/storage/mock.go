package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	barnerr "github.com/jwebster45206/creature-barn/internal/errors"
	"github.com/jwebster45206/creature-barn/pkg/creature"
)

// MockStorage is an in-memory Storage for handler and command tests.
type MockStorage struct {
	mu        sync.RWMutex
	creatures map[string]*creature.Creature
	updated   map[string]time.Time
	pingError error
	saveError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		creatures: make(map[string]*creature.Creature),
		updated:   make(map[string]time.Time),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError makes every SaveCreature call fail with err.
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveCreature(ctx context.Context, c *creature.Creature) error {
	if c == nil {
		return barnerr.InvalidInput("creature cannot be nil")
	}
	if c.ID == "" {
		return barnerr.InvalidInput("creature id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.creatures[c.ID] = c
	m.updated[c.ID] = time.Now().UTC()
	return nil
}

func (m *MockStorage) GetCreature(ctx context.Context, id string) (*creature.Creature, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.creatures[id]
	if !ok {
		return nil, barnerr.NotFoundf("creature %s not found", id)
	}
	return c, nil
}

func (m *MockStorage) ListCreatures(ctx context.Context) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	summaries := make([]Summary, 0, len(m.creatures))
	for id, c := range m.creatures {
		summaries = append(summaries, Summary{
			ID:        id,
			Name:      c.Name,
			CR:        c.CR,
			Type:      c.Type,
			UpdatedAt: m.updated[id],
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Name != summaries[j].Name {
			return summaries[i].Name < summaries[j].Name
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries, nil
}

func (m *MockStorage) DeleteCreature(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.creatures[id]; !ok {
		return barnerr.NotFoundf("creature %s not found", id)
	}
	delete(m.creatures, id)
	delete(m.updated, id)
	return nil
}
