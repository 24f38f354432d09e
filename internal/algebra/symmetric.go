package algebra

import (
	"errors"
	"fmt"
)

// symmetric is S_n: permutations of {1..n} composed as functions.
type symmetric struct{}

func (symmetric) elements(n int) []string {
	if n > MaxSymmetricOrder {
		return []string{CapacitySentinel}
	}
	base := IdentityPermutation(n)
	perms := permutations(base)
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = Permutation(p).String()
	}
	return out
}

func (symmetric) compose(n int, a, b string) (string, error) {
	p, err := parseMember(n, a)
	if err != nil {
		return "", err
	}
	q, err := parseMember(n, b)
	if err != nil {
		return "", err
	}
	return p.Compose(q).String(), nil
}

func (symmetric) identity() string { return "()" }

func (symmetric) describe(n int) string {
	return fmt.Sprintf("Symmetric group of order %d: all permutations of %d objects", factorial(n), n)
}

// parseMember decodes a label and insists it is written in canonical form, so
// "(21)" is rejected even though it names the same permutation as "(12)".
func parseMember(n int, label string) (Permutation, error) {
	p, err := ParseCycles(label, n)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %q in S_%d", ErrInvalidOperand, label, n), err)
	}
	if p.String() != label {
		return nil, fmt.Errorf("%w: %q is not canonical in S_%d", ErrInvalidOperand, label, n)
	}
	return p, nil
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}
