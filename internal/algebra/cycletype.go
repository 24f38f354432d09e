package algebra

import (
	"fmt"
	"strconv"
	"strings"
)

// IdentitySignature labels the cycle type of "()".
const IdentitySignature = "identity"

// CycleClassification buckets permutation labels by cycle type.
type CycleClassification struct {
	// Signatures in first-seen order.
	Signatures []string
	Groups     map[string][]string
	TypeOf     map[string]string
}

// CycleSignature renders the cycle type of a disjoint-cycle label: "identity",
// "3-cycle", or lengths joined with '+' in written order, e.g. "2+2-cycle".
func CycleSignature(label string) (string, error) {
	if label == "()" {
		return IdentitySignature, nil
	}
	if _, err := ParseCycles(label, 9); err != nil {
		return "", err
	}
	bodies := strings.Split(strings.TrimSuffix(label, ")"), ")")
	lengths := make([]string, len(bodies))
	for i, body := range bodies {
		lengths[i] = strconv.Itoa(len(body) - 1)
	}
	return strings.Join(lengths, "+") + "-cycle", nil
}

// ClassifyCycles groups members by cycle signature, preserving the relative
// order of labels within each group.
func ClassifyCycles(members []string) (*CycleClassification, error) {
	cc := &CycleClassification{
		Groups: make(map[string][]string),
		TypeOf: make(map[string]string, len(members)),
	}
	for _, m := range members {
		sig, err := CycleSignature(m)
		if err != nil {
			return nil, fmt.Errorf("classify %q: %w", m, err)
		}
		if _, ok := cc.Groups[sig]; !ok {
			cc.Signatures = append(cc.Signatures, sig)
		}
		cc.Groups[sig] = append(cc.Groups[sig], m)
		cc.TypeOf[m] = sig
	}
	return cc, nil
}

// Ordered flattens the classification into grouped display order.
func (cc *CycleClassification) Ordered() []string {
	var out []string
	for _, sig := range cc.Signatures {
		out = append(out, cc.Groups[sig]...)
	}
	return out
}
