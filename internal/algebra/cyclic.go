package algebra

import (
	"fmt"
	"strconv"
)

// cyclic is Z_n: integers 0..n-1 under addition mod n.
type cyclic struct{}

func (cyclic) elements(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

func (cyclic) compose(n int, a, b string) (string, error) {
	x, err := parseResidue(n, a)
	if err != nil {
		return "", err
	}
	y, err := parseResidue(n, b)
	if err != nil {
		return "", err
	}
	return strconv.Itoa((x + y) % n), nil
}

func (cyclic) identity() string { return "0" }

func (cyclic) describe(n int) string {
	return fmt.Sprintf("Cyclic group of order %d: integers modulo %d under addition", n, n)
}

// parseResidue accepts only canonical labels: no sign, no leading zeros.
func parseResidue(n int, label string) (int, error) {
	v, err := strconv.Atoi(label)
	if err != nil || v < 0 || v >= n || strconv.Itoa(v) != label {
		return 0, fmt.Errorf("%w: %q in Z_%d", ErrInvalidOperand, label, n)
	}
	return v, nil
}
