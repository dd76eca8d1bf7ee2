package molecule

import (
	"sort"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/grid"
)

// Bonding distances in grid units.
const (
	BondRange       = 1.0
	CarbonBondRange = 2.0
)

// InferenceStats summarises one inference pass.
type InferenceStats struct {
	// Candidates is the number of geometrically eligible pairs.
	Candidates int
	// Formed is the number of bonds committed.
	Formed int
	// Declined counts candidates dropped because an endpoint had no valency left.
	Declined int
	// Suppressed counts candidates whose bond memory is an explicit 0.
	Suppressed int
}

type candidate struct {
	a, b      *Atom
	order     int
	hasMemory bool
}

// InferBonds rebuilds every atom's connections from positions and bond
// memory.  The result depends only on the atom set: prior connections are
// discarded first.
//
// A pair is a candidate when the atoms share a row or column, and are one
// cell apart (two for carbon-carbon pairs).  A two-cell pair is dropped when
// another atom sits on the cell between them.  Pairs with bond memory are
// committed first, then higher orders; each commit is checked against the
// valency already consumed in this pass.
func InferBonds(c *Canvas) InferenceStats {
	var stats InferenceStats
	for _, a := range c.atoms {
		a.Connections = nil
	}

	var pairs []candidate
	for i := 0; i < len(c.atoms); i++ {
		for j := i + 1; j < len(c.atoms); j++ {
			a, b := c.atoms[i], c.atoms[j]
			if !grid.AxisAligned(a.Pos, b.Pos) {
				continue
			}
			limit := BondRange
			if a.Is(Carbon) && b.Is(Carbon) {
				limit = CarbonBondRange
			}
			d := grid.Distance(a.Pos, b.Pos)
			if d <= 0 || d > limit {
				continue
			}
			if d > BondRange && c.obstructed(a, b) {
				continue
			}

			order, hasMemory := a.Memory(b.ID)
			if !hasMemory {
				order = 1
			}
			pairs = append(pairs, candidate{a: a, b: b, order: order, hasMemory: hasMemory})
		}
	}
	stats.Candidates = len(pairs)

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].hasMemory != pairs[j].hasMemory {
			return pairs[i].hasMemory
		}
		return pairs[i].order > pairs[j].order
	})

	for _, p := range pairs {
		if p.order <= 0 {
			stats.Suppressed++
			continue
		}
		if !canConnect(p.a, p.b, p.order) {
			stats.Declined++
			continue
		}
		p.a.Connections = append(p.a.Connections, Connection{TargetID: p.b.ID, Order: p.order})
		p.b.Connections = append(p.b.Connections, Connection{TargetID: p.a.ID, Order: p.order})
		stats.Formed++
	}
	return stats
}

// Infer is InferBonds on the receiver.
func (c *Canvas) Infer() InferenceStats { return InferBonds(c) }

// obstructed reports whether a third atom sits on the midpoint of a and b.
func (c *Canvas) obstructed(a, b *Atom) bool {
	mid, ok := grid.CellAt(grid.Midpoint(a.Pos, b.Pos))
	if !ok {
		return false
	}
	other, taken := c.At(mid)
	return taken && other.ID != a.ID && other.ID != b.ID
}

func canConnect(a, b *Atom, order int) bool {
	return a.UsedValency()+order <= a.Element.Valency() &&
		b.UsedValency()+order <= b.Element.Valency()
}
