package algebra

import (
	"fmt"
	"strconv"
	"strings"
)

// Family tags one of the supported group families.
type Family string

const (
	Cyclic    Family = "Z"
	Dihedral  Family = "D"
	Symmetric Family = "S"
)

// MaxSymmetricOrder bounds S_n enumeration; 4! = 24 elements.
const MaxSymmetricOrder = 4

// CapacitySentinel is the lone element Enumerate reports for an oversized
// symmetric group. It is never a member of a built group.
const CapacitySentinel = "too_big"

// Families lists the supported families in display order.
var Families = []Family{Cyclic, Dihedral, Symmetric}

// variant implements enumeration and the binary operation for one family.
type variant interface {
	elements(n int) []string
	compose(n int, a, b string) (string, error)
	identity() string
	describe(n int) string
}

var variants = map[Family]variant{
	Cyclic:    cyclic{},
	Dihedral:  dihedral{},
	Symmetric: symmetric{},
}

// ParseFamily accepts a family code ("Z", "D", "S") or name ("cyclic",
// "dihedral", "symmetric"), case-insensitively.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "z", "cyclic":
		return Cyclic, nil
	case "d", "dihedral":
		return Dihedral, nil
	case "s", "symmetric":
		return Symmetric, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

// String returns the family code.
func (f Family) String() string { return string(f) }

// Title returns the human-readable family name.
func (f Family) Title() string {
	switch f {
	case Cyclic:
		return "Cyclic"
	case Dihedral:
		return "Dihedral"
	case Symmetric:
		return "Symmetric"
	}
	return string(f)
}

// Valid reports whether f is one of the supported families.
func (f Family) Valid() bool {
	_, ok := variants[f]
	return ok
}

func lookup(f Family) (variant, error) {
	v, ok := variants[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, string(f))
	}
	return v, nil
}

// Identity returns the analytic identity label of the family.
func Identity(f Family) (string, error) {
	v, err := lookup(f)
	if err != nil {
		return "", err
	}
	return v.identity(), nil
}

// CheckCapacity validates (f, n) without enumerating anything.
func CheckCapacity(f Family, n int) error {
	if _, err := lookup(f); err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidOrder, n)
	}
	if f == Symmetric && n > MaxSymmetricOrder {
		return fmt.Errorf("%w: S_%d (max S_%d)", ErrCapacityExceeded, n, MaxSymmetricOrder)
	}
	return nil
}

// CanonicalName renders the catalog name of a group, e.g. "D_4".
func CanonicalName(f Family, n int) string {
	return fmt.Sprintf("%s_%d", f, n)
}

// ParseCanonicalName splits a catalog name such as "S_3" into family and order.
func ParseCanonicalName(name string) (Family, int, error) {
	code, order, ok := strings.Cut(name, "_")
	if !ok {
		return "", 0, fmt.Errorf("%w: name %q", ErrUnknownFamily, name)
	}
	f := Family(code)
	if !f.Valid() {
		return "", 0, fmt.Errorf("%w: name %q", ErrUnknownFamily, name)
	}
	n, err := strconv.Atoi(order)
	if err != nil || n < 1 || strconv.Itoa(n) != order {
		return "", 0, fmt.Errorf("%w: name %q", ErrInvalidOrder, name)
	}
	return f, n, nil
}

// Describe returns the deterministic description of (f, n).
func Describe(f Family, n int) (string, error) {
	v, err := lookup(f)
	if err != nil {
		return "", err
	}
	return v.describe(n), nil
}
