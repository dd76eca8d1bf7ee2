package molecule

import (
	"sort"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/grid"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

// TemplateAtom is one atom of a group template, offset from the junction.
type TemplateAtom struct {
	Element Element
	Offset  grid.Direction
}

// TemplateBond remembers an order between two template atoms by index.
type TemplateBond struct {
	From, To int
	Order    int
}

// GroupTemplate is a prefabricated fragment.  Atom 0 is the junction; the
// base orientation plugs in from the left.
type GroupTemplate struct {
	Name  string
	Label string
	Atoms []TemplateAtom
	Bonds []TemplateBond
}

func off(dx, dy int) grid.Direction { return grid.Direction{DX: dx, DY: dy} }

var groupTemplates = map[string]GroupTemplate{
	"methyl": {
		Label: "-CH₃",
		Atoms: []TemplateAtom{{Carbon, off(0, 0)}, {Hydrogen, off(1, 0)}, {Hydrogen, off(0, -1)}, {Hydrogen, off(0, 1)}},
		Bonds: []TemplateBond{{0, 1, 1}, {0, 2, 1}, {0, 3, 1}},
	},
	"hydroxyl": {
		Label: "-OH",
		Atoms: []TemplateAtom{{Oxygen, off(0, 0)}, {Hydrogen, off(1, 0)}},
		Bonds: []TemplateBond{{0, 1, 1}},
	},
	"carboxyl": {
		Label: "-COOH",
		Atoms: []TemplateAtom{{Carbon, off(0, 0)}, {Oxygen, off(0, 1)}, {Oxygen, off(1, 0)}, {Hydrogen, off(2, 0)}},
		Bonds: []TemplateBond{{0, 1, 2}, {0, 2, 1}, {2, 3, 1}},
	},
	"amino": {
		Label: "-NH₂",
		Atoms: []TemplateAtom{{Nitrogen, off(0, 0)}, {Hydrogen, off(0, -1)}, {Hydrogen, off(0, 1)}},
		Bonds: []TemplateBond{{0, 1, 1}, {0, 2, 1}},
	},
	"formyl": {
		Label: "-CHO",
		Atoms: []TemplateAtom{{Carbon, off(0, 0)}, {Oxygen, off(0, 1)}, {Hydrogen, off(1, 0)}},
		Bonds: []TemplateBond{{0, 1, 2}, {0, 2, 1}},
	},
	"ether": {
		Label: "-O-",
		Atoms: []TemplateAtom{{Oxygen, off(0, 0)}},
	},
	"ketone": {
		Label: "-CO-",
		Atoms: []TemplateAtom{{Carbon, off(0, 0)}, {Oxygen, off(0, 1)}},
		Bonds: []TemplateBond{{0, 1, 2}},
	},
	"ester": {
		Label: "-COO-",
		Atoms: []TemplateAtom{{Carbon, off(0, 0)}, {Oxygen, off(0, 1)}, {Oxygen, off(1, 0)}},
		Bonds: []TemplateBond{{0, 1, 2}, {0, 2, 1}},
	},
	"ethyl": {
		Label: "-C₂H₅",
		Atoms: []TemplateAtom{
			{Carbon, off(0, 0)}, {Hydrogen, off(0, -1)}, {Hydrogen, off(0, 1)},
			{Carbon, off(1, 0)}, {Hydrogen, off(1, -1)}, {Hydrogen, off(1, 1)}, {Hydrogen, off(2, 0)},
		},
		Bonds: []TemplateBond{{0, 1, 1}, {0, 2, 1}, {0, 3, 1}, {3, 4, 1}, {3, 5, 1}, {3, 6, 1}},
	},
}

// Template returns the named group template.
func Template(name string) (GroupTemplate, bool) {
	t, ok := groupTemplates[name]
	if ok {
		t.Name = name
	}
	return t, ok
}

// TemplateNames lists the known templates alphabetically.
func TemplateNames() []string {
	names := make([]string, 0, len(groupTemplates))
	for n := range groupTemplates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Oriented returns the template turned to face dir.  Left is the base
// orientation, up and down are quarter and three-quarter turns, and right
// mirrors the x axis.
func (t GroupTemplate) Oriented(dir grid.Direction) GroupTemplate {
	out := t
	out.Atoms = make([]TemplateAtom, len(t.Atoms))
	for i, ta := range t.Atoms {
		o := ta.Offset
		switch dir {
		case grid.Right:
			o = grid.Direction{DX: -o.DX, DY: o.DY}
		case grid.Up:
			o = o.Rotate(1)
		case grid.Down:
			o = o.Rotate(3)
		}
		out.Atoms[i] = TemplateAtom{Element: ta.Element, Offset: o}
	}
	return out
}

// PlaceGroup stamps the named template at anchor facing dir.  Cells that are
// already occupied reuse the existing atom.  Template bonds are written as
// bond memory and the junction atom records dir as its preferred direction.
// It returns the atoms of the placed group in template order.
func (c *Canvas) PlaceGroup(name string, anchor grid.Point, dir grid.Direction) ([]*Atom, error) {
	t, ok := Template(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownGroup, "unknown group template").WithDetail(name)
	}
	if !dir.IsUnit() {
		return nil, errors.New(errors.ErrCodeUnknownDirection, "group direction must be a unit step").WithDetail(dir.String())
	}
	t = t.Oriented(dir)

	placed := make([]*Atom, len(t.Atoms))
	for i, ta := range t.Atoms {
		p := anchor.Step(ta.Offset, 1)
		a, taken := c.At(p)
		if !taken {
			a, _ = c.Place(ta.Element, p)
		}
		if i == 0 {
			d := dir
			a.PreferredDir = &d
		}
		placed[i] = a
	}
	for _, b := range t.Bonds {
		c.SetBondMemory(placed[b.From], placed[b.To], b.Order)
	}
	return placed, nil
}
