package molecule

// IodoformPositive scans comp for the two topologies that give a positive
// iodoform test: CH3-CO-R (acetyl) and CH3-CH(OH)-R, with R hydrogen or
// carbon.  The scan does not claim atoms; one carbon may yield both matches.
func IodoformPositive(comp *Component) []GroupMatch {
	var out []GroupMatch

	for _, a := range comp.Atoms {
		if !a.Is(Carbon) {
			continue
		}
		neighbors := comp.Neighbors(a)

		var methyls []*Atom
		for _, n := range neighbors {
			if n.Atom.Is(Carbon) && isTerminalMethyl(comp, n.Atom) {
				methyls = append(methyls, n.Atom)
			}
		}
		if len(methyls) == 0 {
			continue
		}
		main := methyls[0]

		// CH3-CO-R
		var dO *Atom
		for _, n := range neighbors {
			if n.Atom.Is(Oxygen) && n.Order == 2 {
				dO = n.Atom
				break
			}
		}
		if dO != nil {
			ok := true
			for _, n := range neighbors {
				if n.Atom == main || n.Atom == dO {
					continue
				}
				if !n.Atom.Is(Carbon) && !n.Atom.Is(Hydrogen) {
					ok = false
					break
				}
			}
			if ok {
				ids := []string{a.ID, dO.ID}
				ids = appendMethyls(comp, ids, methyls)
				out = append(out, GroupMatch{Type: GroupIodoform, AtomIDs: ids})
			}
		}

		// CH3-CH(OH)-R
		var ohO *Atom
		hasH := false
		for _, n := range neighbors {
			if ohO == nil && n.Atom.Is(Oxygen) && n.Order == 1 && hasNeighbor(comp, n.Atom, Hydrogen) {
				ohO = n.Atom
			}
			if n.Atom.Is(Hydrogen) {
				hasH = true
			}
		}
		if ohO == nil || !hasH {
			continue
		}
		ok := true
		for _, n := range neighbors {
			if n.Atom == main || n.Atom == ohO || n.Atom.Is(Hydrogen) {
				continue
			}
			if !n.Atom.Is(Carbon) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		ids := []string{a.ID, ohO.ID}
		for _, n := range neighbors {
			if n.Atom.Is(Hydrogen) {
				ids = append(ids, n.Atom.ID)
			}
		}
		for _, n := range comp.Neighbors(ohO) {
			if n.Atom.Is(Hydrogen) {
				ids = append(ids, n.Atom.ID)
			}
		}
		ids = appendMethyls(comp, ids, methyls)
		out = append(out, GroupMatch{Type: GroupIodoform, AtomIDs: ids})
	}
	return out
}

// isTerminalMethyl reports a carbon with three H and exactly one C neighbor.
func isTerminalMethyl(comp *Component, c *Atom) bool {
	var h, cc int
	for _, n := range comp.Neighbors(c) {
		switch n.Atom.Element {
		case Hydrogen:
			h++
		case Carbon:
			cc++
		}
	}
	return h == 3 && cc == 1
}

func hasNeighbor(comp *Component, a *Atom, e Element) bool {
	for _, n := range comp.Neighbors(a) {
		if n.Atom.Is(e) {
			return true
		}
	}
	return false
}

func appendMethyls(comp *Component, ids []string, methyls []*Atom) []string {
	for _, m := range methyls {
		ids = append(ids, m.ID)
		for _, n := range comp.Neighbors(m) {
			if n.Atom.Is(Hydrogen) {
				ids = append(ids, n.Atom.ID)
			}
		}
	}
	return ids
}
