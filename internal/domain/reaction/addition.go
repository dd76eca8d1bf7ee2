package reaction

import (
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

// startAddition handles a click on the a–b bond.  H2 and Cl2 add at once;
// HCl and H2O wait for the atom that receives the hydrogen.
func (x *Context) startAddition(c *molecule.Canvas, m Mutator, a, b *molecule.Atom) (Result, error) {
	order := a.OrderTo(b.ID)
	if order < 2 {
		return Result{}, x.userError(errors.ErrCodeBondNotEligible,
			"二重結合または三重結合をクリックしてください。",
			"Click a double or triple bond.").WithDetail(a.ID + "-" + b.ID)
	}

	if !x.reagent.Symmetric() {
		x.pending = &pendingAddition{a: a.ID, b: b.ID, order: order}
		x.selection = []string{a.ID, b.ID}
		return Result{Pending: true}, nil
	}

	e := molecule.Hydrogen
	if x.reagent == ReagentCl2 {
		e = molecule.Chlorine
	}

	m.Checkpoint()
	c.SetBondMemory(a, b, order-1)
	var res Result
	res.Kind = KindAddition
	for _, end := range []*molecule.Atom{a, b} {
		if n, ok := c.AttachNew(end, e); ok {
			res.Added = append(res.Added, n.ID)
		}
	}
	m.Commit()
	return res, nil
}

// finishAddition completes an HCl or H2O addition.  target gets the
// hydrogen, the other end gets Cl or an OH.  Clicks on other atoms are
// ignored.
func (x *Context) finishAddition(c *molecule.Canvas, m Mutator, target *molecule.Atom) (Result, error) {
	p := x.pending
	var otherID string
	switch target.ID {
	case p.a:
		otherID = p.b
	case p.b:
		otherID = p.a
	default:
		return Result{Pending: true}, nil
	}
	other, ok := c.Get(otherID)
	if !ok {
		x.reset()
		return Result{}, errors.New(errors.ErrCodeAtomNotFound, "bond partner vanished").WithDetail(otherID)
	}

	m.Checkpoint()
	c.SetBondMemory(target, other, p.order-1)

	res := Result{Kind: KindAddition}
	if h, ok := c.AttachNew(target, molecule.Hydrogen); ok {
		res.Added = append(res.Added, h.ID)
	}
	e := molecule.Chlorine
	if x.reagent == ReagentH2O {
		e = molecule.Oxygen
	}
	if n, ok := c.AttachNew(other, e); ok {
		res.Added = append(res.Added, n.ID)
		if e == molecule.Oxygen {
			if h, ok := c.AttachNew(n, molecule.Hydrogen); ok {
				res.Added = append(res.Added, h.ID)
			}
		}
	}
	x.reset()
	m.Commit()
	return res, nil
}
