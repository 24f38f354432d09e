package algebra

import (
	"fmt"
	"strconv"
	"strings"
)

// Permutation is a bijection on {1..n} stored as a 0-based image array:
// p[i] is the image of point i+1, minus one.
type Permutation []int

// IdentityPermutation returns the identity on n points.
func IdentityPermutation(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Compose returns p∘q, the permutation x ↦ p(q(x)). Both operands must act on
// the same number of points.
func (p Permutation) Compose(q Permutation) Permutation {
	out := make(Permutation, len(p))
	for x := range q {
		out[x] = p[q[x]]
	}
	return out
}

// Inverse returns p⁻¹.
func (p Permutation) Inverse() Permutation {
	out := make(Permutation, len(p))
	for x, y := range p {
		out[y] = x
	}
	return out
}

// IsIdentity reports whether p fixes every point.
func (p Permutation) IsIdentity() bool {
	for i, v := range p {
		if i != v {
			return false
		}
	}
	return true
}

// Cycles returns the non-trivial cycles of p as 1-based points. Each cycle
// starts at its smallest point and cycles are ordered by that point.
func (p Permutation) Cycles() [][]int {
	seen := make([]bool, len(p))
	var cycles [][]int
	for start := range p {
		if seen[start] || p[start] == start {
			continue
		}
		var cycle []int
		for x := start; !seen[x]; x = p[x] {
			seen[x] = true
			cycle = append(cycle, x+1)
		}
		cycles = append(cycles, cycle)
	}
	return cycles
}

// CycleLengths returns the lengths of the non-trivial cycles in cycle order.
func (p Permutation) CycleLengths() []int {
	cycles := p.Cycles()
	out := make([]int, len(cycles))
	for i, c := range cycles {
		out[i] = len(c)
	}
	return out
}

// String encodes p in canonical disjoint-cycle notation, e.g. "(123)(45)".
// The identity renders as "()".
func (p Permutation) String() string {
	cycles := p.Cycles()
	if len(cycles) == 0 {
		return "()"
	}
	var b strings.Builder
	for _, c := range cycles {
		b.WriteByte('(')
		for _, x := range c {
			b.WriteString(strconv.Itoa(x))
		}
		b.WriteByte(')')
	}
	return b.String()
}

// ParseCycles decodes disjoint-cycle notation over n points. Points are single
// digits written contiguously inside each pair of parentheses; fixed points are
// implicit and "()" denotes the identity.
func ParseCycles(label string, n int) (Permutation, error) {
	if n < 1 || n > 9 {
		return nil, fmt.Errorf("%w: %d points not representable", ErrMalformedCycle, n)
	}
	p := IdentityPermutation(n)
	if label == "()" {
		return p, nil
	}
	if label == "" {
		return nil, fmt.Errorf("%w: empty label", ErrMalformedCycle)
	}

	used := make([]bool, n)
	rest := label
	for rest != "" {
		if rest[0] != '(' {
			return nil, fmt.Errorf("%w: %q", ErrMalformedCycle, label)
		}
		end := strings.IndexByte(rest, ')')
		if end < 2 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedCycle, label)
		}
		body := rest[1:end]
		rest = rest[end+1:]

		cycle := make([]int, len(body))
		for i := 0; i < len(body); i++ {
			c := body[i]
			if c < '1' || c > '9' {
				return nil, fmt.Errorf("%w: %q", ErrMalformedCycle, label)
			}
			x := int(c - '1')
			if x >= n || used[x] {
				return nil, fmt.Errorf("%w: %q", ErrMalformedCycle, label)
			}
			used[x] = true
			cycle[i] = x
		}
		for i, x := range cycle {
			p[x] = cycle[(i+1)%len(cycle)]
		}
	}
	return p, nil
}

// permutations lists every ordering of base by recursive insertion: each
// element in turn becomes the head, followed by the orderings of the rest.
// For a sorted base the output is lexicographic.
func permutations(base []int) [][]int {
	if len(base) <= 1 {
		return [][]int{append([]int(nil), base...)}
	}
	var out [][]int
	for i, head := range base {
		rest := make([]int, 0, len(base)-1)
		rest = append(rest, base[:i]...)
		rest = append(rest, base[i+1:]...)
		for _, tail := range permutations(rest) {
			out = append(out, append([]int{head}, tail...))
		}
	}
	return out
}
