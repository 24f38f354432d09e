package algebra

import (
	"fmt"
	"strconv"
	"strings"
)

// dihedral is D_n under the presentation r^n = e, s^2 = e, srs = r^-1.
// Element "sr<k>" denotes s composed with r^k.
type dihedral struct{}

type motionKind uint8

const (
	rotation motionKind = iota
	reflection
)

// motion is the decoded form of a dihedral label.
type motion struct {
	kind motionKind
	k    int
}

func (m motion) String() string {
	switch {
	case m.kind == rotation && m.k == 0:
		return "e"
	case m.kind == rotation:
		return "r" + strconv.Itoa(m.k)
	case m.k == 0:
		return "s"
	default:
		return "sr" + strconv.Itoa(m.k)
	}
}

func (dihedral) elements(n int) []string {
	out := make([]string, 0, 2*n)
	for k := 0; k < n; k++ {
		out = append(out, motion{kind: rotation, k: k}.String())
	}
	for k := 0; k < n; k++ {
		out = append(out, motion{kind: reflection, k: k}.String())
	}
	return out
}

func (dihedral) compose(n int, a, b string) (string, error) {
	x, err := parseMotion(n, a)
	if err != nil {
		return "", err
	}
	y, err := parseMotion(n, b)
	if err != nil {
		return "", err
	}
	return x.then(n, y).String(), nil
}

// then returns m ∘ o.
func (m motion) then(n int, o motion) motion {
	switch {
	case m.kind == rotation && o.kind == rotation:
		return motion{kind: rotation, k: (m.k + o.k) % n}
	case m.kind == rotation:
		return motion{kind: reflection, k: (o.k - m.k + n) % n}
	case o.kind == rotation:
		return motion{kind: reflection, k: (m.k + o.k) % n}
	default:
		return motion{kind: rotation, k: (o.k - m.k + n) % n}
	}
}

func (dihedral) identity() string { return "e" }

func (dihedral) describe(n int) string {
	return fmt.Sprintf("Dihedral group of order %d: symmetries of a regular %d-gon", 2*n, n)
}

func parseMotion(n int, label string) (motion, error) {
	switch label {
	case "e":
		return motion{kind: rotation}, nil
	case "s":
		return motion{kind: reflection}, nil
	}
	kind := rotation
	digits, ok := strings.CutPrefix(label, "sr")
	if ok {
		kind = reflection
	} else if digits, ok = strings.CutPrefix(label, "r"); !ok {
		return motion{}, fmt.Errorf("%w: %q in D_%d", ErrInvalidOperand, label, n)
	}
	k, err := strconv.Atoi(digits)
	if err != nil || k < 1 || k >= n || strconv.Itoa(k) != digits {
		return motion{}, fmt.Errorf("%w: %q in D_%d", ErrInvalidOperand, label, n)
	}
	return motion{kind: kind, k: k}, nil
}
