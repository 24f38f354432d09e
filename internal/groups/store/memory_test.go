package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"cayley/internal/algebra"
	"cayley/internal/groups/models"
	id "cayley/pkg/domain"
	"cayley/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) newGroup(f algebra.Family, n int) *models.Group {
	built, err := algebra.Build(f, n)
	s.Require().NoError(err)
	g, err := models.NewGroup(id.NewGroupID(), models.FromAlgebra(built), time.Now())
	s.Require().NoError(err)
	return g
}

func (s *InMemoryStoreSuite) TestCreationAndLookups() {
	s.Run("finds group by ID", func() {
		g := s.newGroup(algebra.Symmetric, 3)
		s.Require().NoError(s.store.Create(s.ctx, g))

		found, err := s.store.FindByID(s.ctx, g.ID)
		s.Require().NoError(err)
		s.Equal(g, found)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.NewGroupID())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("finds oldest group by name", func() {
		first := s.newGroup(algebra.Cyclic, 5)
		second := s.newGroup(algebra.Cyclic, 5)
		s.Require().NoError(s.store.Create(s.ctx, first))
		s.Require().NoError(s.store.Create(s.ctx, second))

		found, err := s.store.FindByName(s.ctx, "Z_5")
		s.Require().NoError(err)
		s.Equal(first.ID, found.ID)

		_, err = s.store.FindByName(s.ctx, "Z_99")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects a reused ID", func() {
		g := s.newGroup(algebra.Dihedral, 2)
		s.Require().NoError(s.store.Create(s.ctx, g))
		s.ErrorIs(s.store.Create(s.ctx, g), sentinel.ErrConflict)
	})
}

func (s *InMemoryStoreSuite) TestListPreservesInsertionOrder() {
	var want []string
	for n := 1; n <= 4; n++ {
		g := s.newGroup(algebra.Dihedral, n)
		s.Require().NoError(s.store.Create(s.ctx, g))
		want = append(want, g.Name)
	}

	list, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	var got []string
	for _, g := range list {
		got = append(got, g.Name)
	}
	s.Equal(want, got)
}

func (s *InMemoryStoreSuite) TestReturnsCopies() {
	g := s.newGroup(algebra.Symmetric, 3)
	s.Require().NoError(s.store.Create(s.ctx, g))

	g.Members[0] = "mutated"
	found, err := s.store.FindByID(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal("()", found.Members[0])

	found.CayleyTable[0][0] = "mutated"
	found.CycleGroups["2-cycle"][0] = "mutated"
	again, err := s.store.FindByID(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal("()", again.CayleyTable[0][0])
	s.NotEqual("mutated", again.CycleGroups["2-cycle"][0])
}

func (s *InMemoryStoreSuite) TestEmptyList() {
	list, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.NotNil(list)
	s.Empty(list)
}

func (s *InMemoryStoreSuite) TestConcurrentCreates() {
	const writers = 32
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			g, err := models.NewGroup(id.NewGroupID(), models.Definition{Name: fmt.Sprintf("G_%d", n)}, time.Now())
			s.NoError(err)
			s.NoError(s.store.Create(s.ctx, g))
		}(i)
	}
	wg.Wait()

	list, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Len(list, writers)
}
