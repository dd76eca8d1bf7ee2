package reaction

import (
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/grid"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

// oxidize turns an alcohol carbon into a carbonyl, or an aldehyde carbon
// into a carboxylic acid.
func (x *Context) oxidize(c *molecule.Canvas, m Mutator, carbon *molecule.Atom) (Result, error) {
	neighbors := c.Neighbors(carbon)
	ownH := firstNeighbor(neighbors, func(n molecule.Neighbor) bool {
		return n.Atom.Is(molecule.Hydrogen)
	})

	hydroxyl := firstNeighbor(neighbors, func(n molecule.Neighbor) bool {
		return n.Atom.Is(molecule.Oxygen) && n.Order == 1 && hasNeighbor(c, n.Atom, molecule.Hydrogen)
	})
	if hydroxyl != nil {
		if ownH == nil {
			return Result{}, x.notOxidizable(carbon)
		}
		return x.alcoholToCarbonyl(c, m, carbon, hydroxyl, ownH), nil
	}

	carbonyl := firstNeighbor(neighbors, func(n molecule.Neighbor) bool {
		return n.Atom.Is(molecule.Oxygen) && n.Order == 2
	})
	formylH := firstNeighbor(neighbors, func(n molecule.Neighbor) bool {
		return n.Atom.Is(molecule.Hydrogen) && n.Order == 1
	})
	if carbonyl != nil && formylH != nil {
		return x.aldehydeToAcid(c, m, carbon, formylH), nil
	}
	return Result{}, x.notOxidizable(carbon)
}

func (x *Context) notOxidizable(carbon *molecule.Atom) error {
	return x.userError(errors.ErrCodeNotOxidizable,
		"この炭素は酸化できません。",
		"This carbon cannot be oxidised.").WithDetail(carbon.ID)
}

func (x *Context) alcoholToCarbonyl(c *molecule.Canvas, m Mutator, carbon, oxygen, ownH *molecule.Atom) Result {
	m.Checkpoint()
	res := Result{Kind: KindOxidation}
	for _, n := range c.Neighbors(oxygen) {
		if n.Atom.Is(molecule.Hydrogen) {
			c.Remove(n.Atom.ID)
			res.Removed = append(res.Removed, n.Atom.ID)
			break
		}
	}
	c.Remove(ownH.ID)
	res.Removed = append(res.Removed, ownH.ID)
	c.SetBondMemory(carbon, oxygen, 2)
	m.Commit()
	return res
}

func (x *Context) aldehydeToAcid(c *molecule.Canvas, m Mutator, carbon, h *molecule.Atom) Result {
	m.Checkpoint()
	res := Result{Kind: KindOxidation, Removed: []string{h.ID}}
	pos := h.Pos
	c.Remove(h.ID)

	if o, ok := c.Place(molecule.Oxygen, pos); ok {
		res.Added = append(res.Added, o.ID)
		c.SetBondMemory(carbon, o, 1)
		dir := grid.Toward(carbon.Pos, o.Pos)
		if newH, ok := c.Place(molecule.Hydrogen, o.Pos.Step(dir, 1)); ok {
			res.Added = append(res.Added, newH.ID)
			c.SetBondMemory(o, newH, 1)
		}
	}
	m.Commit()
	return res
}

func firstNeighbor(ns []molecule.Neighbor, pred func(molecule.Neighbor) bool) *molecule.Atom {
	for _, n := range ns {
		if pred(n) {
			return n.Atom
		}
	}
	return nil
}

func hasNeighbor(c *molecule.Canvas, a *molecule.Atom, e molecule.Element) bool {
	for _, n := range c.Neighbors(a) {
		if n.Atom.Is(e) {
			return true
		}
	}
	return false
}
