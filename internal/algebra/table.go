package algebra

import "fmt"

// Group is a fully built finite group. It is immutable once returned by Build
// or NewTable; callers share it freely.
type Group struct {
	Name        string
	Description string
	Family      Family
	Order       int
	Members     []string
	Table       [][]string
	Identity    string
	// CycleGroups is set for symmetric groups only.
	CycleGroups map[string][]string

	index map[string]int
}

// Build generates the Cayley table of (f, n).
//
// Row and column order is Enumerate's order. The identity is fixed analytically
// per family and verified against the table before returning.
func Build(f Family, n int) (*Group, error) {
	if err := CheckCapacity(f, n); err != nil {
		return nil, err
	}
	v := variants[f]

	members := v.elements(n)
	table := make([][]string, len(members))
	for i, a := range members {
		row := make([]string, len(members))
		for j, b := range members {
			p, err := v.compose(n, a, b)
			if err != nil {
				return nil, fmt.Errorf("build %s: %w", CanonicalName(f, n), err)
			}
			row[j] = p
		}
		table[i] = row
	}

	g := NewTable(members, table, v.identity())
	g.Name = CanonicalName(f, n)
	g.Description = v.describe(n)
	g.Family = f
	g.Order = n

	if err := g.VerifyIdentity(); err != nil {
		return nil, fmt.Errorf("build %s: %w", g.Name, err)
	}
	if f == Symmetric {
		cc, err := ClassifyCycles(members)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", g.Name, err)
		}
		g.CycleGroups = cc.Groups
	}
	return g, nil
}

// NewTable wraps an externally supplied table, such as one loaded from the
// catalog. No algebraic validation is performed.
func NewTable(members []string, table [][]string, identity string) *Group {
	index := make(map[string]int, len(members))
	for i, m := range members {
		if _, dup := index[m]; !dup {
			index[m] = i
		}
	}
	return &Group{
		Members:  members,
		Table:    table,
		Identity: identity,
		index:    index,
	}
}

// Index returns the row/column of label.
func (g *Group) Index(label string) (int, bool) {
	if g.index != nil {
		i, ok := g.index[label]
		return i, ok
	}
	for i, m := range g.Members {
		if m == label {
			return i, true
		}
	}
	return 0, false
}

// Product looks up a ∘ b in the table.
func (g *Group) Product(a, b string) (string, error) {
	i, ok := g.Index(a)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidOperand, a)
	}
	j, ok := g.Index(b)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidOperand, b)
	}
	if i >= len(g.Table) || j >= len(g.Table[i]) {
		return "", fmt.Errorf("%w: table has no cell for %q∘%q", ErrInvalidOperand, a, b)
	}
	return g.Table[i][j], nil
}

// Size returns the number of elements.
func (g *Group) Size() int { return len(g.Members) }

// VerifyIdentity checks e∘x = x∘e = x for every member x.
func (g *Group) VerifyIdentity() error {
	e, ok := g.Index(g.Identity)
	if !ok {
		return fmt.Errorf("%w: %q is not a member", ErrIdentityViolated, g.Identity)
	}
	if len(g.Table) != len(g.Members) {
		return fmt.Errorf("%w: table has %d rows for %d members", ErrIdentityViolated, len(g.Table), len(g.Members))
	}
	for i, x := range g.Members {
		if len(g.Table[i]) != len(g.Members) || len(g.Table[e]) != len(g.Members) {
			return fmt.Errorf("%w: table is not square", ErrIdentityViolated)
		}
		if g.Table[e][i] != x || g.Table[i][e] != x {
			return fmt.Errorf("%w: %q∘%q", ErrIdentityViolated, g.Identity, x)
		}
	}
	return nil
}

// Closed reports whether every table cell names a member.
func (g *Group) Closed() bool {
	for _, row := range g.Table {
		for _, cell := range row {
			if _, ok := g.Index(cell); !ok {
				return false
			}
		}
	}
	return true
}
