package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cayley/internal/algebra"
	id "cayley/pkg/domain"
	dErrors "cayley/pkg/domain-errors"
)

func TestNewGroup(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	gid := id.NewGroupID()

	t.Run("requires a name", func(t *testing.T) {
		_, err := NewGroup(gid, Definition{Name: "   "}, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("accepts a bare document", func(t *testing.T) {
		g, err := NewGroup(gid, Definition{Name: " Klein four "}, now)
		require.NoError(t, err)
		assert.Equal(t, "Klein four", g.Name)
		assert.Equal(t, []string{}, g.Members)
		assert.Equal(t, [][]string{}, g.CayleyTable)
		assert.Equal(t, now, g.CreatedAt)
		assert.Equal(t, gid, g.ID)
	})
}

func TestFromAlgebra(t *testing.T) {
	built, err := algebra.Build(algebra.Symmetric, 3)
	require.NoError(t, err)

	g, err := NewGroup(id.NewGroupID(), FromAlgebra(built), time.Now())
	require.NoError(t, err)

	assert.Equal(t, "S_3", g.Name)
	assert.Equal(t, built.Members, g.Members)
	assert.Equal(t, built.Table, g.CayleyTable)
	assert.Equal(t, "()", g.Identity)
	assert.Equal(t, built.CycleGroups, g.CycleGroups)
}

func TestGroup_Table(t *testing.T) {
	built, err := algebra.Build(algebra.Dihedral, 3)
	require.NoError(t, err)
	g, err := NewGroup(id.NewGroupID(), FromAlgebra(built), time.Now())
	require.NoError(t, err)

	tbl := g.Table()
	assert.Equal(t, algebra.Dihedral, tbl.Family)
	assert.Equal(t, 3, tbl.Order)
	p, err := tbl.Product("r1", "s")
	require.NoError(t, err)
	assert.Equal(t, "sr2", p)
}

func TestGroup_Family(t *testing.T) {
	f, n, ok := (&Group{Name: "Z_6"}).Family()
	assert.True(t, ok)
	assert.Equal(t, algebra.Cyclic, f)
	assert.Equal(t, 6, n)

	_, _, ok = (&Group{Name: "Klein four"}).Family()
	assert.False(t, ok)
}
