package molecule

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/grid"
)

// seqIDs yields zero-padded ids so that id order follows creation order.
func seqIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("a%03d", n)
	}
}

type placement struct {
	e    Element
	x, y int
}

func newTestCanvas() *Canvas { return NewCanvas(WithIDGenerator(seqIDs())) }

// draw places atoms in order and returns them.
func draw(t *testing.T, c *Canvas, ps ...placement) []*Atom {
	t.Helper()
	out := make([]*Atom, len(ps))
	for i, p := range ps {
		a, ok := c.Place(p.e, grid.Pt(p.x, p.y))
		require.True(t, ok, "cell %d,%d already taken", p.x, p.y)
		out[i] = a
	}
	return out
}

// saturate infers, fills hydrogens and infers again.
func saturate(c *Canvas) {
	c.Infer()
	c.FillHydrogens()
	c.Infer()
}

// only returns the single component of c.
func only(t *testing.T, c *Canvas) *Component {
	t.Helper()
	comps := Partition(c)
	require.Len(t, comps, 1)
	return comps[0]
}

func groupTypes(gs []GroupMatch) []GroupType {
	out := make([]GroupType, len(gs))
	for i, g := range gs {
		out[i] = g.Type
	}
	return out
}

func ethanol(t *testing.T) *Canvas {
	c := newTestCanvas()
	draw(t, c, placement{Carbon, 0, 0}, placement{Carbon, 1, 0}, placement{Oxygen, 2, 0})
	saturate(c)
	return c
}

func acetone(t *testing.T) *Canvas {
	c := newTestCanvas()
	atoms := draw(t, c,
		placement{Carbon, 0, 0}, placement{Carbon, 1, 0}, placement{Carbon, 2, 0},
		placement{Oxygen, 1, 1})
	c.SetBondMemory(atoms[1], atoms[3], 2)
	saturate(c)
	return c
}
