// Package store persists catalog groups. InMemory and PostgresStore are
// primary backends; RedisCache decorates either with read-through caching.
package store

import (
	"context"
	"fmt"
	"sync"

	"cayley/internal/groups/models"
	id "cayley/pkg/domain"
	"cayley/pkg/platform/sentinel"
)

// Backend is the persistence contract shared by every store.
type Backend interface {
	List(ctx context.Context) ([]*models.Group, error)
	Create(ctx context.Context, g *models.Group) error
	FindByID(ctx context.Context, groupID id.GroupID) (*models.Group, error)
	FindByName(ctx context.Context, name string) (*models.Group, error)
}

// InMemory keeps groups in insertion order.
type InMemory struct {
	mu     sync.RWMutex
	order  []id.GroupID
	groups map[id.GroupID]*models.Group
}

// NewInMemory returns an empty store.
func NewInMemory() *InMemory {
	return &InMemory{groups: make(map[id.GroupID]*models.Group)}
}

// List returns copies of every group in insertion order.
func (s *InMemory) List(_ context.Context) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Group, 0, len(s.order))
	for _, gid := range s.order {
		out = append(out, clone(s.groups[gid]))
	}
	return out, nil
}

// Create stores g. Names are not unique; ids are.
func (s *InMemory) Create(_ context.Context, g *models.Group) error {
	if g == nil {
		return fmt.Errorf("create group: nil group")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.groups[g.ID]; exists {
		return fmt.Errorf("create group %s: %w", g.ID, sentinel.ErrConflict)
	}
	s.groups[g.ID] = clone(g)
	s.order = append(s.order, g.ID)
	return nil
}

// FindByID returns sentinel.ErrNotFound for unknown ids.
func (s *InMemory) FindByID(_ context.Context, groupID id.GroupID) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[groupID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(g), nil
}

// FindByName returns the oldest group with name.
func (s *InMemory) FindByName(_ context.Context, name string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, gid := range s.order {
		if g := s.groups[gid]; g.Name == name {
			return clone(g), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func clone(g *models.Group) *models.Group {
	c := *g
	c.Members = append([]string(nil), g.Members...)
	c.CayleyTable = make([][]string, len(g.CayleyTable))
	for i, row := range g.CayleyTable {
		c.CayleyTable[i] = append([]string(nil), row...)
	}
	if g.CycleGroups != nil {
		c.CycleGroups = make(map[string][]string, len(g.CycleGroups))
		for sig, labels := range g.CycleGroups {
			c.CycleGroups[sig] = append([]string(nil), labels...)
		}
	}
	if c.Members == nil {
		c.Members = []string{}
	}
	return &c
}
