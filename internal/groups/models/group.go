package models

import (
	"strings"
	"time"

	"cayley/internal/algebra"
	id "cayley/pkg/domain"
	dErrors "cayley/pkg/domain-errors"
)

// Group is a catalog entry: a Cayley table plus the metadata needed to
// render and step through it. Entries are immutable once stored.
type Group struct {
	ID          id.GroupID          `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Members     []string            `json:"members"`
	CayleyTable [][]string          `json:"cayleyTable"`
	Identity    string              `json:"identity,omitempty"`
	CycleGroups map[string][]string `json:"cycleGroups,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// Definition is the client-supplied part of a Group. Only Name is required;
// cross-field consistency is guaranteed by the generator, not checked here.
type Definition struct {
	Name        string
	Description string
	Members     []string
	CayleyTable [][]string
	Identity    string
	CycleGroups map[string][]string
}

// NewGroup stamps a Definition with an identifier and creation time.
func NewGroup(groupID id.GroupID, def Definition, now time.Time) (*Group, error) {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "group name cannot be empty")
	}
	members := def.Members
	if members == nil {
		members = []string{}
	}
	table := def.CayleyTable
	if table == nil {
		table = [][]string{}
	}
	return &Group{
		ID:          groupID,
		Name:        name,
		Description: def.Description,
		Members:     members,
		CayleyTable: table,
		Identity:    def.Identity,
		CycleGroups: def.CycleGroups,
		CreatedAt:   now,
	}, nil
}

// FromAlgebra converts a freshly built group into a Definition.
func FromAlgebra(g *algebra.Group) Definition {
	return Definition{
		Name:        g.Name,
		Description: g.Description,
		Members:     g.Members,
		CayleyTable: g.Table,
		Identity:    g.Identity,
		CycleGroups: g.CycleGroups,
	}
}

// Table rebuilds the lookup structure used for composition. Stored entries
// are trusted as-is; ragged rows surface as invalid operands when stepped.
func (g *Group) Table() *algebra.Group {
	t := algebra.NewTable(g.Members, g.CayleyTable, g.Identity)
	t.Name = g.Name
	t.Description = g.Description
	if f, n, err := algebra.ParseCanonicalName(g.Name); err == nil {
		t.Family = f
		t.Order = n
	}
	t.CycleGroups = g.CycleGroups
	return t
}

// Family reports the family and order encoded in a canonical name. ok is
// false for hand-submitted entries with free-form names.
func (g *Group) Family() (algebra.Family, int, bool) {
	f, n, err := algebra.ParseCanonicalName(g.Name)
	if err != nil {
		return "", 0, false
	}
	return f, n, true
}

// VertexAction is where each vertex of a regular polygon lands under one
// dihedral element: vertex v moves to Positions[v].
type VertexAction struct {
	Group     string `json:"group"`
	Element   string `json:"element"`
	Label     string `json:"label"`
	Sides     int    `json:"sides"`
	Positions []int  `json:"positions"`
}
