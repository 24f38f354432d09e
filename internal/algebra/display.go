package algebra

import (
	"fmt"
	"strings"
)

// IdentityColor is the swatch reserved for the identity cycle type.
const IdentityColor = "#2e7d32"

var superscripts = strings.NewReplacer(
	"0", "⁰", "1", "¹", "2", "²", "3", "³", "4", "⁴",
	"5", "⁵", "6", "⁶", "7", "⁷", "8", "⁸", "9", "⁹",
)

// FormatLabel renders dihedral exponents as superscripts ("sr3" -> "sr³").
// Other labels are returned unchanged.
func FormatLabel(label string) string {
	if exp, ok := strings.CutPrefix(label, "sr"); ok && isDigits(exp) {
		return "sr" + superscripts.Replace(exp)
	}
	if exp, ok := strings.CutPrefix(label, "r"); ok && isDigits(exp) {
		return "r" + superscripts.Replace(exp)
	}
	return label
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// SignatureColor derives a stable muted HSL colour for a cycle signature.
func SignatureColor(signature string) string {
	if signature == IdentitySignature {
		return IdentityColor
	}
	h := int32(5381)
	for _, c := range []byte(signature) {
		h = int32(int64(h)*33) ^ int32(c)
	}
	hue := h % 360
	if hue < 0 {
		hue = -hue
	}
	return fmt.Sprintf("hsl(%d, 30%%, 30%%)", hue)
}

// MaxPolygonSides bounds PolygonAction, which allocates one slot per vertex.
const MaxPolygonSides = 4096

// PolygonAction returns where a dihedral element sends each vertex of a regular
// n-gon: out[v] is the image of vertex v. Vertices are numbered 0..n-1 around
// the polygon and s reflects through the axis of vertex 0.
//
// The action respects composition: the action of a∘b is a applied after b.
func PolygonAction(n int, element string) ([]int, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, n)
	}
	if n > MaxPolygonSides {
		return nil, fmt.Errorf("%w: %d-gon (max %d sides)", ErrCapacityExceeded, n, MaxPolygonSides)
	}
	m, err := parseMotion(n, element)
	if err != nil {
		return nil, err
	}
	out := make([]int, n)
	for v := range out {
		w := (v + m.k) % n
		if m.kind == reflection {
			w = (n - w) % n
		}
		out[v] = w
	}
	return out, nil
}
