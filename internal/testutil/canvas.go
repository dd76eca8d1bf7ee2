package testutil

import (
	"fmt"
	"testing"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/grid"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"
)

// AtomSpec describes one atom to draw.
type AtomSpec struct {
	Element molecule.Element
	X, Y    int
}

// At is shorthand for an AtomSpec.
func At(e molecule.Element, x, y int) AtomSpec { return AtomSpec{Element: e, X: x, Y: y} }

// SeqIDs yields "a001", "a002", ... so that id order follows creation order.
func SeqIDs() molecule.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("a%03d", n)
	}
}

// NewCanvas returns an empty canvas with sequential ids.
func NewCanvas() *molecule.Canvas {
	return molecule.NewCanvas(molecule.WithIDGenerator(SeqIDs()))
}

// Draw places atoms in order and fails the test on an occupied cell.
func Draw(t testing.TB, c *molecule.Canvas, specs ...AtomSpec) []*molecule.Atom {
	t.Helper()
	out := make([]*molecule.Atom, len(specs))
	for i, s := range specs {
		a, ok := c.Place(s.Element, grid.Pt(s.X, s.Y))
		if !ok {
			t.Fatalf("cell (%d,%d) already taken", s.X, s.Y)
		}
		out[i] = a
	}
	return out
}

// Saturate infers bonds, fills explicit hydrogens and infers again.
func Saturate(c *molecule.Canvas) {
	c.Infer()
	c.FillHydrogens()
	c.Infer()
}

// MustAt returns the atom on (x, y).
func MustAt(t testing.TB, c *molecule.Canvas, x, y int) *molecule.Atom {
	t.Helper()
	a, ok := c.At(grid.Pt(x, y))
	if !ok {
		t.Fatalf("no atom at (%d,%d)", x, y)
	}
	return a
}

// ─────────────────────────────────────────────────────────────────────────────
// Molecules
// ─────────────────────────────────────────────────────────────────────────────

// Methane is C at the origin with four hydrogens.
func Methane(t testing.TB) *molecule.Canvas {
	c := NewCanvas()
	Draw(t, c, At(molecule.Carbon, 0, 0),
		At(molecule.Hydrogen, 1, 0), At(molecule.Hydrogen, -1, 0),
		At(molecule.Hydrogen, 0, 1), At(molecule.Hydrogen, 0, -1))
	c.Infer()
	return c
}

// Ethene is C(0,0)=C(1,0) with explicit hydrogens at (-1,0), (0,1), (2,0)
// and (1,1).
func Ethene(t testing.TB) *molecule.Canvas {
	c := NewCanvas()
	atoms := Draw(t, c, At(molecule.Carbon, 0, 0), At(molecule.Carbon, 1, 0))
	c.SetBondMemory(atoms[0], atoms[1], 2)
	Saturate(c)
	return c
}

// Ethanol is C(0,0)-C(1,0)-O(2,0) with explicit hydrogens.  The hydroxyl H
// sits at (3,0); the methylene hydrogens at (1,1) and (1,-1); the methyl
// hydrogens at (-1,0), (0,1) and (0,-1).
func Ethanol(t testing.TB) *molecule.Canvas {
	c := NewCanvas()
	Draw(t, c, At(molecule.Carbon, 0, 0), At(molecule.Carbon, 1, 0), At(molecule.Oxygen, 2, 0))
	Saturate(c)
	return c
}

// Acetaldehyde is CH3-CHO with the carbonyl O at (1,1) and the formyl H at
// (2,0).
func Acetaldehyde(t testing.TB) *molecule.Canvas {
	c := NewCanvas()
	atoms := Draw(t, c, At(molecule.Carbon, 0, 0), At(molecule.Carbon, 1, 0), At(molecule.Oxygen, 1, 1))
	c.SetBondMemory(atoms[1], atoms[2], 2)
	Saturate(c)
	return c
}

// ButenedioicAcid draws HOOC-CH=CH-COOH around a two-cell C=C from (0,0) to
// (2,0), leaving the vinyl hydrogens implicit.  With trans the second
// carboxyl hangs below the bond, otherwise above it.
func ButenedioicAcid(t testing.TB, trans bool) *molecule.Canvas {
	c := NewCanvas()
	core := Draw(t, c,
		At(molecule.Carbon, 0, 0), At(molecule.Carbon, 2, 0),
		// First carboxyl, above the left carbon.  Its C=O oxygen also
		// blocks the two-cell gap between the carboxyl carbons.
		At(molecule.Carbon, 0, -1), At(molecule.Oxygen, 1, -1),
		At(molecule.Oxygen, -1, -1), At(molecule.Hydrogen, -2, -1))
	c.SetBondMemory(core[0], core[1], 2)
	c.SetBondMemory(core[2], core[3], 2)

	y, step := -1, -1
	if trans {
		y, step = 1, 1
	}
	second := Draw(t, c,
		At(molecule.Carbon, 2, y), At(molecule.Oxygen, 3, y),
		At(molecule.Oxygen, 2, y+step), At(molecule.Hydrogen, 2, y+2*step))
	c.SetBondMemory(second[0], second[1], 2)
	c.Infer()
	return c
}
