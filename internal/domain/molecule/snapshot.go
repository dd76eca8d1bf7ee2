package molecule

import (
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/grid"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/types/scene"
)

// Records serializes the canvas in canvas order.
func (c *Canvas) Records() []scene.AtomRecord {
	out := make([]scene.AtomRecord, len(c.atoms))
	for i, a := range c.atoms {
		rec := scene.AtomRecord{
			ID:      a.ID,
			Element: string(a.Element),
			X:       a.Pos.X,
			Y:       a.Pos.Y,
		}
		if len(a.Connections) > 0 {
			rec.Connections = make([]scene.ConnectionRecord, len(a.Connections))
			for j, conn := range a.Connections {
				rec.Connections[j] = scene.ConnectionRecord{TargetID: conn.TargetID, Order: conn.Order}
			}
		}
		if len(a.BondMemory) > 0 {
			rec.BondMemory = make(map[string]int, len(a.BondMemory))
			for k, v := range a.BondMemory {
				rec.BondMemory[k] = v
			}
		}
		if a.PreferredDir != nil {
			rec.PreferredDir = a.PreferredDir.String()
		}
		out[i] = rec
	}
	return out
}

// Load replaces the canvas contents with records.  Records with an unknown
// element, a duplicate id, a duplicate position or a bond order outside
// 0..3 are rejected and the canvas is left unchanged.  Memory entries naming
// absent atoms are dropped.  A memory entry recorded on one side only is
// mirrored onto its partner; when both sides disagree the atom listed first
// wins.
func (c *Canvas) Load(records []scene.AtomRecord) error {
	atoms := make([]*Atom, 0, len(records))
	ids := make(map[string]bool, len(records))
	cells := make(map[grid.Point]bool, len(records))

	for _, rec := range records {
		e, err := ParseElement(rec.Element)
		if err != nil {
			return err
		}
		if rec.ID == "" {
			return errors.New(errors.ErrCodeSceneFormat, "atom record without id")
		}
		if ids[rec.ID] {
			return errors.New(errors.ErrCodeSceneFormat, "duplicate atom id").WithDetail(rec.ID)
		}
		p := grid.Pt(rec.X, rec.Y)
		if cells[p] {
			return errors.New(errors.ErrCodeCellOccupied, "two atoms on one cell").WithDetail(p.String())
		}
		ids[rec.ID] = true
		cells[p] = true

		a := &Atom{ID: rec.ID, Element: e, Pos: p, BondMemory: make(map[string]int)}
		for _, cr := range rec.Connections {
			if cr.Order < 1 || cr.Order > 3 {
				return errors.New(errors.ErrCodeInvalidBondOrder, "connection order must be 1, 2 or 3").WithDetail(rec.ID)
			}
			a.Connections = append(a.Connections, Connection{TargetID: cr.TargetID, Order: cr.Order})
		}
		for k, v := range rec.BondMemory {
			if v < 0 || v > 3 {
				return errors.New(errors.ErrCodeInvalidBondOrder, "bond memory must be 0..3").WithDetail(rec.ID)
			}
			a.BondMemory[k] = v
		}
		if rec.PreferredDir != "" {
			d, err := grid.ParseDirection(rec.PreferredDir)
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeUnknownDirection, "bad preferred direction").WithDetail(rec.ID)
			}
			a.PreferredDir = &d
		}
		atoms = append(atoms, a)
	}

	byID := make(map[string]*Atom, len(atoms))
	for _, a := range atoms {
		byID[a.ID] = a
	}
	seen := make(map[string]bool, len(atoms))
	for _, a := range atoms {
		for k, v := range a.BondMemory {
			b, ok := byID[k]
			if !ok || k == a.ID {
				delete(a.BondMemory, k)
				continue
			}
			if _, mirrored := b.BondMemory[a.ID]; !seen[k] || !mirrored {
				b.BondMemory[a.ID] = v
			}
		}
		seen[a.ID] = true
	}

	c.Clear()
	for _, a := range atoms {
		c.add(a)
	}
	return nil
}

// Clone returns a deep copy sharing the id generator.
func (c *Canvas) Clone() *Canvas {
	cp := &Canvas{byID: make(map[string]*Atom, len(c.atoms)), newID: c.newID}
	for _, a := range c.atoms {
		cp.add(a.clone())
	}
	return cp
}
