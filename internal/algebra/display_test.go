package algebra

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLabel(t *testing.T) {
	tests := map[string]string{
		"e":     "e",
		"s":     "s",
		"r1":    "r¹",
		"sr3":   "sr³",
		"r10":   "r¹⁰",
		"(123)": "(123)",
		"7":     "7",
		"rx":    "rx",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatLabel(in), in)
	}
}

func TestSignatureColor(t *testing.T) {
	assert.Equal(t, IdentityColor, SignatureColor(IdentitySignature))

	hsl := regexp.MustCompile(`^hsl\(\d{1,3}, 30%, 30%\)$`)
	for _, sig := range []string{"2-cycle", "3-cycle", "2+2-cycle", "4-cycle"} {
		c := SignatureColor(sig)
		assert.Regexp(t, hsl, c, sig)
		assert.Equal(t, c, SignatureColor(sig), "stable across calls")
	}
	assert.NotEqual(t, SignatureColor("2-cycle"), SignatureColor("3-cycle"))
}

func TestPolygonAction(t *testing.T) {
	t.Run("rotation shifts every vertex", func(t *testing.T) {
		got, err := PolygonAction(4, "r1")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 0}, got)
	})

	t.Run("s fixes vertex zero", func(t *testing.T) {
		got, err := PolygonAction(5, "s")
		require.NoError(t, err)
		assert.Equal(t, []int{0, 4, 3, 2, 1}, got)
	})

	t.Run("rejects non-members", func(t *testing.T) {
		_, err := PolygonAction(4, "r4")
		assert.ErrorIs(t, err, ErrInvalidOperand)
	})

	t.Run("rejects polygons past the side limit", func(t *testing.T) {
		_, err := PolygonAction(MaxPolygonSides+1, "e")
		assert.ErrorIs(t, err, ErrCapacityExceeded)

		got, err := PolygonAction(MaxPolygonSides, "e")
		require.NoError(t, err)
		assert.Len(t, got, MaxPolygonSides)
	})

	t.Run("action agrees with the Cayley table", func(t *testing.T) {
		for n := 1; n <= 6; n++ {
			g, err := Build(Dihedral, n)
			require.NoError(t, err)
			for _, a := range g.Members {
				for _, b := range g.Members {
					ab, err := g.Product(a, b)
					require.NoError(t, err)
					pa, _ := PolygonAction(n, a)
					pb, _ := PolygonAction(n, b)
					pab, _ := PolygonAction(n, ab)
					for v := 0; v < n; v++ {
						assert.Equal(t, pa[pb[v]], pab[v], "D_%d %s∘%s at %d", n, a, b, v)
					}
				}
			}
		}
	})
}
