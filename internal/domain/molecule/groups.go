package molecule

// GroupType tags a recognized local topology.
type GroupType string

const (
	GroupCarboxyl GroupType = "COOH"
	GroupEster    GroupType = "COO"
	GroupFormyl   GroupType = "CHO"
	GroupCarbonyl GroupType = "CO"
	GroupHydroxyl GroupType = "OH"
	GroupEther    GroupType = "COC"
	GroupAmino    GroupType = "NH2"
	GroupEthyl    GroupType = "ethyl"
	GroupMethyl   GroupType = "CH3"
	GroupIodoform GroupType = "iodoform"
)

// GroupMatch is one recognized group and the ids of its member atoms.
type GroupMatch struct {
	Type GroupType
	// Ketone distinguishes a carbonyl carbon bonded to two carbons.
	Ketone  bool
	AtomIDs []string
}

// Name is the display name of the match in l.
func (g GroupMatch) Name(l Language) string {
	switch g.Type {
	case GroupCarboxyl:
		return l.Pick("カルボキシ", "carboxy")
	case GroupEster:
		return l.Pick("エステル", "ester")
	case GroupFormyl:
		return l.Pick("ホルミル", "formyl")
	case GroupCarbonyl:
		if g.Ketone {
			return l.Pick("ケトン基", "ketone")
		}
		return l.Pick("カルボニル", "carbonyl")
	case GroupHydroxyl:
		return l.Pick("ヒドロキシ", "hydroxy")
	case GroupEther:
		return l.Pick("エーテル", "ether")
	case GroupAmino:
		return l.Pick("アミノ", "amino")
	case GroupEthyl:
		return l.Pick("エチル基", "ethyl")
	case GroupMethyl:
		return l.Pick("メチル", "methyl")
	case GroupIodoform:
		return l.Pick("ヨードホルム反応陽性", "iodoform positive")
	}
	return string(g.Type)
}

// HasGroup reports whether any match has type t.
func HasGroup(groups []GroupMatch, t GroupType) bool {
	for _, g := range groups {
		if g.Type == t {
			return true
		}
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Matchers
// ─────────────────────────────────────────────────────────────────────────────

// groupScan carries the claimed-atom set across the ordered matchers.
type groupScan struct {
	comp   *Component
	used   map[string]bool
	groups []GroupMatch
}

func (s *groupScan) claim(t GroupType, ketone bool, atoms ...*Atom) {
	ids := make([]string, len(atoms))
	for i, a := range atoms {
		ids[i] = a.ID
		s.used[a.ID] = true
	}
	s.groups = append(s.groups, GroupMatch{Type: t, Ketone: ketone, AtomIDs: ids})
}

// first returns the first neighbor of a matching pred, in connection order.
func (s *groupScan) first(a *Atom, pred func(Neighbor) bool) *Atom {
	for _, n := range s.comp.Neighbors(a) {
		if pred(n) {
			return n.Atom
		}
	}
	return nil
}

// all returns every neighbor of a matching pred, in connection order.
func (s *groupScan) all(a *Atom, pred func(Neighbor) bool) []*Atom {
	var out []*Atom
	for _, n := range s.comp.Neighbors(a) {
		if pred(n) {
			out = append(out, n.Atom)
		}
	}
	return out
}

func elem(e Element) func(Neighbor) bool {
	return func(n Neighbor) bool { return n.Atom.Is(e) }
}

func bonded(e Element, order int) func(Neighbor) bool {
	return func(n Neighbor) bool { return n.Atom.Is(e) && n.Order == order }
}

// FunctionalGroups runs the ordered, claiming matchers over comp: carboxyl,
// ester, formyl, carbonyl, hydroxyl, ether, amino, ethyl, methyl.  Atoms
// claimed by an earlier matcher are skipped by later ones where the
// matcher checks for it.
func FunctionalGroups(comp *Component) []GroupMatch {
	s := &groupScan{comp: comp, used: make(map[string]bool)}

	// Carboxyl: C(=O)-O-H.
	for _, a := range comp.Atoms {
		if !a.Is(Carbon) {
			continue
		}
		dO := s.first(a, bonded(Oxygen, 2))
		sO := s.first(a, bonded(Oxygen, 1))
		if dO == nil || sO == nil {
			continue
		}
		if h := s.first(sO, elem(Hydrogen)); h != nil {
			s.claim(GroupCarboxyl, false, a, dO, sO, h)
		}
	}

	// Ester: C(=O)-O-C.
	for _, a := range comp.Atoms {
		if !a.Is(Carbon) || s.used[a.ID] {
			continue
		}
		dO := s.first(a, bonded(Oxygen, 2))
		sO := s.first(a, bonded(Oxygen, 1))
		if dO == nil || sO == nil || s.used[dO.ID] || s.used[sO.ID] {
			continue
		}
		other := s.first(sO, func(n Neighbor) bool { return n.Atom.Is(Carbon) && n.Atom != a })
		if other != nil {
			s.claim(GroupEster, false, a, dO, sO)
		}
	}

	// Formyl: C(=O)-H.
	for _, a := range comp.Atoms {
		if !a.Is(Carbon) || s.used[a.ID] {
			continue
		}
		dO := s.first(a, bonded(Oxygen, 2))
		h := s.first(a, elem(Hydrogen))
		if dO != nil && h != nil {
			s.claim(GroupFormyl, false, a, dO, h)
		}
	}

	// Carbonyl: C=O, a ketone when the carbon has two carbon neighbors.
	for _, a := range comp.Atoms {
		if !a.Is(Carbon) || s.used[a.ID] {
			continue
		}
		dO := s.first(a, bonded(Oxygen, 2))
		if dO == nil || s.used[dO.ID] {
			continue
		}
		ketone := len(s.all(a, elem(Carbon))) == 2
		s.claim(GroupCarbonyl, ketone, a, dO)
	}

	// Hydroxyl: O bearing an H and a C.
	for _, a := range comp.Atoms {
		if !a.Is(Oxygen) || s.used[a.ID] {
			continue
		}
		h := s.first(a, elem(Hydrogen))
		c := s.first(a, elem(Carbon))
		if h != nil && c != nil {
			s.claim(GroupHydroxyl, false, a, h)
		}
	}

	// Ether: O between two carbons.
	for _, a := range comp.Atoms {
		if !a.Is(Oxygen) || s.used[a.ID] {
			continue
		}
		if len(s.all(a, elem(Carbon))) == 2 {
			s.claim(GroupEther, false, a)
		}
	}

	// Amino: N with exactly two H.
	for _, a := range comp.Atoms {
		if !a.Is(Nitrogen) || s.used[a.ID] {
			continue
		}
		hs := s.all(a, elem(Hydrogen))
		if len(hs) == 2 {
			s.claim(GroupAmino, false, append([]*Atom{a}, hs...)...)
		}
	}

	// Ethyl: CH2 bonded to an unclaimed terminal CH3.
	for _, a := range comp.Atoms {
		if !a.Is(Carbon) || s.used[a.ID] {
			continue
		}
		hs := s.all(a, elem(Hydrogen))
		if len(hs) != 2 {
			continue
		}
		others := s.all(a, func(n Neighbor) bool { return n.Atom.Is(Carbon) && !s.used[n.Atom.ID] })
		for _, oc := range others {
			ohs := s.all(oc, elem(Hydrogen))
			if len(ohs) != 3 || len(s.all(oc, elem(Carbon))) != 1 {
				continue
			}
			members := []*Atom{a, oc}
			members = append(members, hs...)
			members = append(members, ohs...)
			s.claim(GroupEthyl, false, members...)
			break
		}
	}

	// Methyl: CH3 with a single heavy neighbor.
	for _, a := range comp.Atoms {
		if !a.Is(Carbon) || s.used[a.ID] {
			continue
		}
		hs := s.all(a, elem(Hydrogen))
		heavy := s.all(a, func(n Neighbor) bool { return !n.Atom.Is(Hydrogen) })
		if len(hs) == 3 && len(heavy) == 1 {
			s.claim(GroupMethyl, false, append([]*Atom{a}, hs...)...)
		}
	}

	return s.groups
}
