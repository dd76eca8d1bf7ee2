package reaction

import (
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/grid"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

// DehydrationReach is the furthest two partner carbons may be apart to have
// their bond raised.
const DehydrationReach = 2.0

// toggleDehydration adds a to the selection, or removes it if already
// selected.  The third selected atom fires the reaction.
func (x *Context) toggleDehydration(c *molecule.Canvas, m Mutator, a *molecule.Atom) (Result, error) {
	for i, id := range x.selection {
		if id == a.ID {
			x.selection = append(x.selection[:i], x.selection[i+1:]...)
			return Result{}, nil
		}
	}
	x.selection = append(x.selection, a.ID)
	if len(x.selection) < 3 {
		return Result{}, nil
	}
	return x.dehydrate(c, m)
}

func (x *Context) dehydrate(c *molecule.Canvas, m Mutator) (Result, error) {
	ids := x.selection
	x.selection = nil

	selected := make([]*molecule.Atom, 0, len(ids))
	inSelection := make(map[string]bool, len(ids))
	for _, id := range ids {
		if a, ok := c.Get(id); ok {
			selected = append(selected, a)
			inSelection[id] = true
		}
	}
	if len(selected) != 3 {
		return Result{}, nil
	}

	var h, o int
	for _, a := range selected {
		switch a.Element {
		case molecule.Hydrogen:
			h++
		case molecule.Oxygen:
			o++
		}
	}
	if h != 2 || o != 1 {
		return Result{}, x.userError(errors.ErrCodeDehydrationSelection,
			"H原子2個とO原子1個（計3個）を選択してください。",
			"Select two H atoms and one O atom.")
	}

	first := selected[0]
	for _, a := range selected[1:] {
		if grid.Chebyshev(first.Pos, a.Pos) > 1 {
			return Result{}, x.userError(errors.ErrCodeDehydrationDistance,
				"選択した原子が互いに離れすぎています。最初に選んだ原子の周囲8マスの範囲内で選択してください。",
				"The selected atoms are too far apart. Pick them within the eight cells around the first one.")
		}
	}

	m.Checkpoint()

	var partners []*molecule.Atom
	seen := make(map[string]bool)
	for _, a := range selected {
		for _, n := range c.Neighbors(a) {
			if inSelection[n.Atom.ID] || seen[n.Atom.ID] {
				continue
			}
			seen[n.Atom.ID] = true
			if n.Atom.Is(molecule.Carbon) {
				partners = append(partners, n.Atom)
			}
		}
	}

	for i := 0; i < len(partners); i++ {
		for j := i + 1; j < len(partners); j++ {
			p, q := partners[i], partners[j]
			if grid.Distance(p.Pos, q.Pos) > DehydrationReach {
				continue
			}
			c.SetBondMemory(p, q, raisedOrder(p, q))
		}
	}

	res := Result{Kind: KindDehydration}
	for _, a := range selected {
		c.Remove(a.ID)
		res.Removed = append(res.Removed, a.ID)
	}
	x.SetTool(ToolMove)
	m.Commit()
	return res, nil
}

// raisedOrder is one more than the pair's current bond order, capped at a
// triple bond.  Unbonded pairs become single.
func raisedOrder(p, q *molecule.Atom) int {
	current := p.OrderTo(q.ID)
	if current == 0 {
		if mem, ok := p.Memory(q.ID); ok && mem > 0 {
			current = mem
		}
	}
	if current == 0 {
		return 1
	}
	if current >= 3 {
		return 3
	}
	return current + 1
}
