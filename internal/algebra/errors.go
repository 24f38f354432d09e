package algebra

import "errors"

var (
	// ErrUnknownFamily is returned when a family tag is not Z, D or S.
	ErrUnknownFamily = errors.New("algebra: unknown group family")

	// ErrInvalidOrder is returned for orders below 1.
	ErrInvalidOrder = errors.New("algebra: order must be at least 1")

	// ErrCapacityExceeded is returned when a symmetric group larger than
	// MaxSymmetricOrder, or a polygon larger than MaxPolygonSides, is requested.
	ErrCapacityExceeded = errors.New("algebra: group exceeds supported capacity")

	// ErrInvalidOperand is returned when a label is not a member of the group.
	ErrInvalidOperand = errors.New("algebra: operand is not a group member")

	// ErrMalformedCycle is returned when disjoint-cycle notation cannot be decoded.
	ErrMalformedCycle = errors.New("algebra: malformed cycle notation")

	// ErrIdentityViolated is returned when the analytic identity fails to act
	// as a two-sided identity on the built table.
	ErrIdentityViolated = errors.New("algebra: identity law violated")

	// ErrNotDihedral is returned by polygon helpers for non-dihedral groups.
	ErrNotDihedral = errors.New("algebra: group is not dihedral")
)
