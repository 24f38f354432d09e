package algebra

import "fmt"

// Enumerate returns the canonical, duplicate-free element list of (f, n).
//
// For a symmetric group above MaxSymmetricOrder it returns the single
// CapacitySentinel together with ErrCapacityExceeded; callers must treat that
// as a rejection, not a group.
func Enumerate(f Family, n int) ([]string, error) {
	v, err := lookup(f)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, n)
	}
	if f == Symmetric && n > MaxSymmetricOrder {
		return []string{CapacitySentinel}, fmt.Errorf("%w: S_%d (max S_%d)", ErrCapacityExceeded, n, MaxSymmetricOrder)
	}
	return v.elements(n), nil
}

// Compose returns a ∘ b in (f, n). Operands outside the member set fail with
// ErrInvalidOperand; they are never coerced.
func Compose(f Family, n int, a, b string) (string, error) {
	if err := CheckCapacity(f, n); err != nil {
		return "", err
	}
	return variants[f].compose(n, a, b)
}

// Size returns |G| for (f, n) without enumerating.
func Size(f Family, n int) (int, error) {
	if err := CheckCapacity(f, n); err != nil {
		return 0, err
	}
	switch f {
	case Dihedral:
		return 2 * n, nil
	case Symmetric:
		return factorial(n), nil
	default:
		return n, nil
	}
}
