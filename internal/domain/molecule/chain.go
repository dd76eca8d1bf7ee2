package molecule

// LongestCarbonChain returns the longest simple path through the carbons of
// comp.  Every carbon is tried as a root in component order and neighbors are
// followed in connection order; a path replaces the best only when strictly
// longer, so the first maximal path found wins.
func LongestCarbonChain(comp *Component) []*Atom {
	carbons := comp.Carbons()
	isCarbon := make(map[string]*Atom, len(carbons))
	for _, a := range carbons {
		isCarbon[a.ID] = a
	}

	var best []*Atom
	for _, root := range carbons {
		onPath := map[string]bool{}
		chain := longestFrom(root, isCarbon, onPath, nil)
		if len(chain) > len(best) {
			best = chain
		}
	}
	return best
}

func longestFrom(cur *Atom, carbons map[string]*Atom, onPath map[string]bool, path []*Atom) []*Atom {
	onPath[cur.ID] = true
	path = append(path[:len(path):len(path)], cur)
	best := path

	for _, conn := range cur.Connections {
		next, ok := carbons[conn.TargetID]
		if !ok || onPath[next.ID] {
			continue
		}
		chain := longestFrom(next, carbons, onPath, path)
		if len(chain) > len(best) {
			best = chain
		}
	}

	delete(onPath, cur.ID)
	return best
}

// ─────────────────────────────────────────────────────────────────────────────
// Substituents
// ─────────────────────────────────────────────────────────────────────────────

// SubstituentKind classifies a branch off the main chain.
type SubstituentKind string

const (
	SubstituentChloro SubstituentKind = "Cl"
	SubstituentBromo  SubstituentKind = "Br"
	SubstituentIodo   SubstituentKind = "I"
	SubstituentMethyl SubstituentKind = "CH3"
)

// Name is the substituent prefix in l.
func (k SubstituentKind) Name(l Language) string {
	switch k {
	case SubstituentChloro:
		return l.Pick("クロロ", "chloro")
	case SubstituentBromo:
		return l.Pick("ブロモ", "bromo")
	case SubstituentIodo:
		return l.Pick("ヨード", "iodo")
	case SubstituentMethyl:
		return l.Pick("メチル", "methyl")
	}
	return string(k)
}

// Substituent is a branch at a 1-indexed main-chain position.
type Substituent struct {
	Position int
	Kind     SubstituentKind
}

// Substituents lists halogen and carbon branches of chain.  Any carbon branch
// is reported as methyl; other elements are ignored.
func Substituents(comp *Component, chain []*Atom) []Substituent {
	inChain := make(map[string]bool, len(chain))
	for _, a := range chain {
		inChain[a.ID] = true
	}

	var out []Substituent
	for i, a := range chain {
		for _, n := range comp.Neighbors(a) {
			if inChain[n.Atom.ID] {
				continue
			}
			var kind SubstituentKind
			switch n.Atom.Element {
			case Chlorine:
				kind = SubstituentChloro
			case Bromine:
				kind = SubstituentBromo
			case Iodine:
				kind = SubstituentIodo
			case Carbon:
				kind = SubstituentMethyl
			default:
				continue
			}
			out = append(out, Substituent{Position: i + 1, Kind: kind})
		}
	}
	return out
}
