package molecule

import (
	"github.com/google/uuid"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/grid"
)

// IDGenerator produces atom ids.
type IDGenerator func() string

// Option configures a Canvas.
type Option func(*Canvas)

// WithIDGenerator replaces the default uuid generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *Canvas) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// Canvas is the in-memory atom store for one editing session.  Atom order is
// insertion order and is the iteration order every algorithm relies on.
//
// Canvas is not safe for concurrent use.
type Canvas struct {
	atoms []*Atom
	byID  map[string]*Atom
	newID IDGenerator
}

// NewCanvas returns an empty canvas.
func NewCanvas(opts ...Option) *Canvas {
	c := &Canvas{
		byID:  make(map[string]*Atom),
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Len is the number of atoms.
func (c *Canvas) Len() int { return len(c.atoms) }

// Atoms returns the atoms in canvas order.  The slice is a copy; the atoms
// are shared.
func (c *Canvas) Atoms() []*Atom {
	return append([]*Atom(nil), c.atoms...)
}

// Get looks up an atom by id.
func (c *Canvas) Get(id string) (*Atom, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// At returns the atom occupying p.
func (c *Canvas) At(p grid.Point) (*Atom, bool) {
	for _, a := range c.atoms {
		if a.Pos == p {
			return a, true
		}
	}
	return nil, false
}

// Occupied reports whether any atom sits on p.
func (c *Canvas) Occupied(p grid.Point) bool {
	_, ok := c.At(p)
	return ok
}

// Place creates an atom of element e at p.  Placing onto an occupied cell is
// a silent no-op and returns false.
func (c *Canvas) Place(e Element, p grid.Point) (*Atom, bool) {
	if c.Occupied(p) {
		return nil, false
	}
	a := &Atom{
		ID:         c.newID(),
		Element:    e,
		Pos:        p,
		BondMemory: make(map[string]int),
	}
	c.add(a)
	return a, true
}

func (c *Canvas) add(a *Atom) {
	if a.BondMemory == nil {
		a.BondMemory = make(map[string]int)
	}
	c.atoms = append(c.atoms, a)
	c.byID[a.ID] = a
}

// Remove deletes the atom and strips its id from every other atom's bond
// memory.  Connections pointing at it stay until the next inference pass;
// lookups skip them.
func (c *Canvas) Remove(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	kept := c.atoms[:0]
	for _, a := range c.atoms {
		if a.ID == id {
			continue
		}
		delete(a.BondMemory, id)
		kept = append(kept, a)
	}
	for i := len(kept); i < len(c.atoms); i++ {
		c.atoms[i] = nil
	}
	c.atoms = kept
	return true
}

// RemoveWhere deletes every atom matching pred and returns how many went.
func (c *Canvas) RemoveWhere(pred func(*Atom) bool) int {
	var ids []string
	for _, a := range c.atoms {
		if pred(a) {
			ids = append(ids, a.ID)
		}
	}
	for _, id := range ids {
		c.Remove(id)
	}
	return len(ids)
}

// Move relocates an atom.  It fails when the target cell holds another atom.
func (c *Canvas) Move(id string, p grid.Point) bool {
	a, ok := c.byID[id]
	if !ok {
		return false
	}
	if other, taken := c.At(p); taken && other.ID != id {
		return false
	}
	a.Pos = p
	return true
}

// Clear removes every atom.
func (c *Canvas) Clear() {
	c.atoms = nil
	c.byID = make(map[string]*Atom)
}

// ─────────────────────────────────────────────────────────────────────────────
// Bond memory
// ─────────────────────────────────────────────────────────────────────────────

// SetBondMemory records order for the pair on both endpoints.
func (c *Canvas) SetBondMemory(a, b *Atom, order int) {
	if a == nil || b == nil || a.ID == b.ID {
		return
	}
	if a.BondMemory == nil {
		a.BondMemory = make(map[string]int)
	}
	if b.BondMemory == nil {
		b.BondMemory = make(map[string]int)
	}
	a.BondMemory[b.ID] = order
	b.BondMemory[a.ID] = order
}

// CycleBond advances the remembered order of a pair 0→1→2→3→1 and returns
// the new order.  It never cycles back to 0.
func (c *Canvas) CycleBond(a, b *Atom) int {
	current, _ := a.Memory(b.ID)
	next := current + 1
	if current >= 3 || current < 0 {
		next = 1
	}
	c.SetBondMemory(a, b, next)
	return next
}

// ─────────────────────────────────────────────────────────────────────────────
// Neighborhood
// ─────────────────────────────────────────────────────────────────────────────

// Neighbors resolves a's connections in connection order, skipping ids that
// no longer exist.
func (c *Canvas) Neighbors(a *Atom) []Neighbor {
	out := make([]Neighbor, 0, len(a.Connections))
	for _, conn := range a.Connections {
		if n, ok := c.byID[conn.TargetID]; ok {
			out = append(out, Neighbor{Atom: n, Order: conn.Order})
		}
	}
	return out
}

// neighborPositions lists the positions of a's resolved neighbors.
func (c *Canvas) neighborPositions(a *Atom) []grid.Point {
	ns := c.Neighbors(a)
	pts := make([]grid.Point, len(ns))
	for i, n := range ns {
		pts[i] = n.Atom.Pos
	}
	return pts
}

// OpenDirections ranks placement directions around a, away from its bonds
// and excluding occupied cells.
func (c *Canvas) OpenDirections(a *Atom) []grid.Direction {
	return grid.OpenDirections(a.Pos, c.neighborPositions(a), c.Occupied)
}

// Arms returns the directions of a's empty valence arms for display.
func (c *Canvas) Arms(a *Atom) []grid.Direction {
	return grid.ArmDirections(a.Pos, c.neighborPositions(a), a.PreferredDir, a.FreeValency())
}

// AttachNew places an atom of element e in the best open direction around
// parent and remembers a single bond between them.  It returns false when
// every adjacent cell is occupied.
func (c *Canvas) AttachNew(parent *Atom, e Element) (*Atom, bool) {
	dirs := c.OpenDirections(parent)
	if len(dirs) == 0 {
		return nil, false
	}
	a, ok := c.Place(e, parent.Pos.Step(dirs[0], 1))
	if !ok {
		return nil, false
	}
	c.SetBondMemory(parent, a, 1)
	return a, true
}
