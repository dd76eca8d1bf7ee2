package molecule

import (
	"sort"
	"strings"
)

// SignatureDepth is how far branch signatures look past the centre.
const SignatureDepth = 3

// IsChiral reports whether a is a carbon with exactly four bonded neighbors
// whose branch signatures are pairwise distinct.
func IsChiral(comp *Component, a *Atom) bool {
	if !a.Is(Carbon) || len(a.Connections) != 4 {
		return false
	}
	neighbors := comp.Neighbors(a)
	if len(neighbors) != 4 {
		return false
	}
	seen := make(map[string]bool, 4)
	for _, n := range neighbors {
		seen[BranchSignature(comp, n.Atom, a, SignatureDepth)] = true
	}
	return len(seen) == 4
}

// ChiralCenters lists the chiral carbons of comp in component order.
func ChiralCenters(comp *Component) []*Atom {
	var out []*Atom
	for _, a := range comp.Atoms {
		if IsChiral(comp, a) {
			out = append(out, a)
		}
	}
	return out
}

// BranchSignature canonically describes the branch rooted at a when reached
// from origin.  At depth 0 it is the element symbol; otherwise it is the
// symbol followed by the sorted, bond-prefixed signatures of a's other
// neighbors in parentheses, e.g. "C(-H-H-H)".
func BranchSignature(comp *Component, a, origin *Atom, depth int) string {
	if depth == 0 {
		return string(a.Element)
	}
	var children []string
	for _, conn := range a.Connections {
		if origin != nil && conn.TargetID == origin.ID {
			continue
		}
		n, ok := comp.Atom(conn.TargetID)
		if !ok {
			continue
		}
		children = append(children, BondSymbol(conn.Order)+BranchSignature(comp, n, a, depth-1))
	}
	sort.Strings(children)
	return string(a.Element) + "(" + strings.Join(children, "") + ")"
}
