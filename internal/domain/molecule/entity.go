// Package molecule provides the atom/bond graph of the drawing surface and the
// structural analysis run over it.
//
// Atoms are the only persistent state.  Bonds are derived: InferBonds
// recomputes every atom's Connections from positions and BondMemory, which
// records the order a user explicitly chose for a pair and survives every
// recomputation.  Analysis functions read the derived connections and never
// mutate the canvas.
package molecule

import (
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/grid"
)

// ─────────────────────────────────────────────────────────────────────────────
// Value Objects
// ─────────────────────────────────────────────────────────────────────────────

// Connection is one derived bond as seen from its owning atom.
type Connection struct {
	TargetID string
	Order    int
}

// Neighbor is a resolved Connection: the bonded atom plus the bond order.
type Neighbor struct {
	Atom  *Atom
	Order int
}

// ─────────────────────────────────────────────────────────────────────────────
// Atom entity
// ─────────────────────────────────────────────────────────────────────────────

// Atom is a typed node on the grid.  ID is immutable; Pos is unique across a
// canvas.
type Atom struct {
	ID      string
	Element Element
	Pos     grid.Point

	// Connections is rebuilt from scratch by InferBonds.
	Connections []Connection

	// BondMemory maps a partner atom id to the order the user set for that
	// pair.  0 is an explicit "no bond".  Writes go through Canvas so that
	// both endpoints stay consistent.
	BondMemory map[string]int

	// PreferredDir is the direction a functional-group junction atom faces.
	// It only orders empty valence arms for display.
	PreferredDir *grid.Direction
}

// Is reports whether the atom is of element e.
func (a *Atom) Is(e Element) bool { return a != nil && a.Element == e }

// UsedValency sums the orders of the atom's current connections.
func (a *Atom) UsedValency() int {
	used := 0
	for _, c := range a.Connections {
		used += c.Order
	}
	return used
}

// FreeValency is the element valency minus the used valency.
func (a *Atom) FreeValency() int { return a.Element.Valency() - a.UsedValency() }

// Memory returns the remembered order toward id, if any.
func (a *Atom) Memory(id string) (int, bool) {
	order, ok := a.BondMemory[id]
	return order, ok
}

// ConnectionTo returns the first connection targeting id.
func (a *Atom) ConnectionTo(id string) (Connection, bool) {
	for _, c := range a.Connections {
		if c.TargetID == id {
			return c, true
		}
	}
	return Connection{}, false
}

// OrderTo is the current bond order toward id, or 0 when unbonded.
func (a *Atom) OrderTo(id string) int {
	c, _ := a.ConnectionTo(id)
	return c.Order
}

func (a *Atom) clone() *Atom {
	cp := *a
	cp.Connections = append([]Connection(nil), a.Connections...)
	cp.BondMemory = make(map[string]int, len(a.BondMemory))
	for k, v := range a.BondMemory {
		cp.BondMemory[k] = v
	}
	if a.PreferredDir != nil {
		d := *a.PreferredDir
		cp.PreferredDir = &d
	}
	return &cp
}
