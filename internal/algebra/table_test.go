package algebra

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type buildCase struct {
	family Family
	n      int
}

func supportedCases() []buildCase {
	var cases []buildCase
	for n := 1; n <= 8; n++ {
		cases = append(cases, buildCase{Cyclic, n}, buildCase{Dihedral, n})
	}
	for n := 1; n <= MaxSymmetricOrder; n++ {
		cases = append(cases, buildCase{Symmetric, n})
	}
	return cases
}

func TestBuild_Closure(t *testing.T) {
	for _, tc := range supportedCases() {
		g, err := Build(tc.family, tc.n)
		require.NoError(t, err)
		assert.True(t, g.Closed(), "%s is not closed", g.Name)
		require.Len(t, g.Table, len(g.Members))
		for _, row := range g.Table {
			require.Len(t, row, len(g.Members))
		}
	}
}

func TestBuild_IdentityLaw(t *testing.T) {
	for _, tc := range supportedCases() {
		g, err := Build(tc.family, tc.n)
		require.NoError(t, err)
		for _, x := range g.Members {
			left, err := g.Product(g.Identity, x)
			require.NoError(t, err)
			right, err := g.Product(x, g.Identity)
			require.NoError(t, err)
			assert.Equal(t, x, left, "%s: e∘%s", g.Name, x)
			assert.Equal(t, x, right, "%s: %s∘e", g.Name, x)
		}
	}
}

func TestBuild_Associativity(t *testing.T) {
	for _, tc := range supportedCases() {
		g, err := Build(tc.family, tc.n)
		require.NoError(t, err)
		for _, a := range g.Members {
			for _, b := range g.Members {
				for _, c := range g.Members {
					ab, _ := g.Product(a, b)
					bc, _ := g.Product(b, c)
					l, _ := g.Product(ab, c)
					r, _ := g.Product(a, bc)
					if l != r {
						t.Fatalf("%s: (%s∘%s)∘%s = %s but %s∘(%s∘%s) = %s", g.Name, a, b, c, l, a, b, c, r)
					}
				}
			}
		}
	}
}

func TestBuild_AnalyticIdentity(t *testing.T) {
	want := map[Family]string{Cyclic: "0", Dihedral: "e", Symmetric: "()"}
	for f, id := range want {
		g, err := Build(f, 3)
		require.NoError(t, err)
		assert.Equal(t, id, g.Identity)
	}
}

func TestBuild_CyclicArithmetic(t *testing.T) {
	for n := 1; n <= 12; n++ {
		g, err := Build(Cyclic, n)
		require.NoError(t, err)
		for i := range g.Members {
			for j := range g.Members {
				assert.Equal(t, strconv.Itoa((i+j)%n), g.Table[i][j])
			}
		}
	}
}

func TestBuild_DihedralReflectionsAreInvolutions(t *testing.T) {
	for n := 1; n <= 8; n++ {
		g, err := Build(Dihedral, n)
		require.NoError(t, err)
		for _, x := range g.Members[n:] {
			sq, err := g.Product(x, x)
			require.NoError(t, err)
			assert.Equal(t, g.Identity, sq, "D_%d: %s∘%s", n, x, x)
		}
	}
}

func TestBuild_DihedralIsNotCommutative(t *testing.T) {
	g, err := Build(Dihedral, 4)
	require.NoError(t, err)

	rs, _ := g.Product("r1", "s")
	sr, _ := g.Product("s", "r1")
	assert.Equal(t, "sr3", rs)
	assert.Equal(t, "sr1", sr)
}

func TestBuild_SymmetricThree(t *testing.T) {
	g, err := Build(Symmetric, 3)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"()", "(12)", "(13)", "(23)", "(123)", "(132)"}, g.Members)

	p, err := g.Product("(123)", "(123)")
	require.NoError(t, err)
	assert.Equal(t, "(132)", p)

	assert.Equal(t, []string{"(23)", "(12)", "(13)"}, g.CycleGroups["2-cycle"])
	assert.Equal(t, []string{"(123)", "(132)"}, g.CycleGroups["3-cycle"])
	assert.Equal(t, []string{"()"}, g.CycleGroups[IdentitySignature])
}

func TestBuild_Metadata(t *testing.T) {
	g, err := Build(Dihedral, 4)
	require.NoError(t, err)
	assert.Equal(t, "D_4", g.Name)
	assert.Equal(t, "Dihedral group of order 8: symmetries of a regular 4-gon", g.Description)
	assert.Equal(t, Dihedral, g.Family)
	assert.Equal(t, 4, g.Order)
	assert.Nil(t, g.CycleGroups)
}

func TestBuild_RejectsOversizedSymmetric(t *testing.T) {
	g, err := Build(Symmetric, 5)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Nil(t, g, "no table, not even one holding the sentinel")
}

func TestBuild_IsDeterministic(t *testing.T) {
	for _, tc := range supportedCases() {
		a, err := Build(tc.family, tc.n)
		require.NoError(t, err)
		b, err := Build(tc.family, tc.n)
		require.NoError(t, err)
		assert.Equal(t, a.Members, b.Members)
		assert.Equal(t, a.Table, b.Table)
	}
}

func TestNewTable_VerifyIdentity(t *testing.T) {
	t.Run("accepts a valid table", func(t *testing.T) {
		g := NewTable([]string{"0", "1"}, [][]string{{"0", "1"}, {"1", "0"}}, "0")
		assert.NoError(t, g.VerifyIdentity())
	})

	t.Run("rejects a non-member identity", func(t *testing.T) {
		g := NewTable([]string{"0", "1"}, [][]string{{"0", "1"}, {"1", "0"}}, "x")
		assert.ErrorIs(t, g.VerifyIdentity(), ErrIdentityViolated)
	})

	t.Run("rejects a wrong identity", func(t *testing.T) {
		g := NewTable([]string{"0", "1"}, [][]string{{"0", "1"}, {"1", "0"}}, "1")
		assert.ErrorIs(t, g.VerifyIdentity(), ErrIdentityViolated)
	})

	t.Run("rejects a ragged table", func(t *testing.T) {
		g := NewTable([]string{"0", "1"}, [][]string{{"0", "1"}, {"1"}}, "0")
		assert.ErrorIs(t, g.VerifyIdentity(), ErrIdentityViolated)
	})
}

func TestCompose(t *testing.T) {
	t.Run("valid operands", func(t *testing.T) {
		p, err := Compose(Dihedral, 5, "sr2", "sr4")
		require.NoError(t, err)
		assert.Equal(t, "r2", p)
	})

	t.Run("invalid operands are rejected, not coerced", func(t *testing.T) {
		cases := []struct {
			family Family
			n      int
			a, b   string
		}{
			{Cyclic, 4, "4", "1"},
			{Cyclic, 4, "01", "1"},
			{Cyclic, 4, "-1", "1"},
			{Dihedral, 4, "r4", "e"},
			{Dihedral, 4, "r0", "e"},
			{Dihedral, 4, "e", "t"},
			{Symmetric, 3, "(21)", "()"},
			{Symmetric, 3, "()", "(14)"},
			{Symmetric, 3, "(12", "()"},
		}
		for _, c := range cases {
			_, err := Compose(c.family, c.n, c.a, c.b)
			assert.ErrorIs(t, err, ErrInvalidOperand, "%s_%d %s∘%s", c.family, c.n, c.a, c.b)
		}
	})
}
