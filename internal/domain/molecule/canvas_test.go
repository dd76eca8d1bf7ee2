package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/grid"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/types/scene"
)

func TestElement_Valency(t *testing.T) {
	assert.Equal(t, 4, Carbon.Valency())
	assert.Equal(t, 2, Oxygen.Valency())
	assert.Equal(t, 3, Nitrogen.Valency())
	assert.Equal(t, 1, Iodine.Valency())
	assert.Equal(t, 0, Element("Xe").Valency())
	assert.True(t, Bromine.IsHalogen())
	assert.False(t, Oxygen.IsHalogen())
}

func TestParseElement(t *testing.T) {
	e, err := ParseElement("Cl")
	require.NoError(t, err)
	assert.Equal(t, Chlorine, e)

	_, err = ParseElement("Xe")
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownElement))
}

func TestCanvas_Place(t *testing.T) {
	c := newTestCanvas()
	a, ok := c.Place(Carbon, grid.Pt(0, 0))
	require.True(t, ok)
	assert.Equal(t, "a001", a.ID)

	_, ok = c.Place(Oxygen, grid.Pt(0, 0))
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	got, ok := c.At(grid.Pt(0, 0))
	require.True(t, ok)
	assert.Same(t, a, got)
}

func TestCanvas_Move(t *testing.T) {
	c := newTestCanvas()
	atoms := draw(t, c, placement{Carbon, 0, 0}, placement{Carbon, 1, 0})

	assert.False(t, c.Move(atoms[0].ID, grid.Pt(1, 0)))
	assert.Equal(t, grid.Pt(0, 0), atoms[0].Pos)

	assert.True(t, c.Move(atoms[0].ID, grid.Pt(5, 5)))
	assert.Equal(t, grid.Pt(5, 5), atoms[0].Pos)
	assert.False(t, c.Move("missing", grid.Pt(9, 9)))
}

func TestCanvas_RemoveStripsMemory(t *testing.T) {
	c := newTestCanvas()
	atoms := draw(t, c, placement{Carbon, 0, 0}, placement{Carbon, 1, 0})
	c.SetBondMemory(atoms[0], atoms[1], 2)

	assert.True(t, c.Remove(atoms[1].ID))
	assert.False(t, c.Remove(atoms[1].ID))
	assert.Empty(t, atoms[0].BondMemory)
	assert.Equal(t, 1, c.Len())
}

func TestCanvas_CycleBond(t *testing.T) {
	c := newTestCanvas()
	atoms := draw(t, c, placement{Carbon, 0, 0}, placement{Carbon, 1, 0})
	a, b := atoms[0], atoms[1]

	var seen []int
	for i := 0; i < 5; i++ {
		seen = append(seen, c.CycleBond(a, b))
	}
	assert.Equal(t, []int{1, 2, 3, 1, 2}, seen)

	m, _ := b.Memory(a.ID)
	assert.Equal(t, 2, m)

	c.SetBondMemory(a, b, 0)
	assert.Equal(t, 1, c.CycleBond(a, b))
}

func TestCanvas_AttachNew(t *testing.T) {
	c := newTestCanvas()
	atoms := draw(t, c, placement{Carbon, 0, 0}, placement{Carbon, 1, 0})
	c.Infer()

	h, ok := c.AttachNew(atoms[0], Hydrogen)
	require.True(t, ok)
	// Away from the bonded carbon on the right.
	assert.Equal(t, grid.Pt(-1, 0), h.Pos)
	m, ok := atoms[0].Memory(h.ID)
	require.True(t, ok)
	assert.Equal(t, 1, m)
}

func TestCanvas_Arms(t *testing.T) {
	c := newTestCanvas()
	atoms := draw(t, c, placement{Carbon, 0, 0}, placement{Carbon, 1, 0})
	c.Infer()

	arms := c.Arms(atoms[0])
	assert.Equal(t, []grid.Direction{grid.Left, grid.Down, grid.Up}, arms)

	pref := grid.Down
	atoms[0].PreferredDir = &pref
	arms = c.Arms(atoms[0])
	require.Len(t, arms, 3)
	assert.Equal(t, grid.Down, arms[0])
	assert.NotContains(t, arms, grid.Right)
}

func TestCanvas_RecordsRoundTrip(t *testing.T) {
	c := acetone(t)
	dir := grid.Up
	c.Atoms()[0].PreferredDir = &dir

	restored := NewCanvas()
	require.NoError(t, restored.Load(c.Records()))
	assert.Equal(t, c.Records(), restored.Records())

	restored.Infer()
	assert.Equal(t, NewFormula(c.Atoms(), false).Key(), NewFormula(restored.Atoms(), false).Key())
}

func TestCanvas_LoadRejects(t *testing.T) {
	c := acetone(t)
	before := c.Len()

	recs := c.Records()
	recs[1].ID = recs[0].ID
	err := c.Load(recs)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSceneFormat))
	assert.Equal(t, before, c.Len())

	recs = c.Records()
	recs[1].X, recs[1].Y = recs[0].X, recs[0].Y
	err = c.Load(recs)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCellOccupied))

	recs = c.Records()
	recs[0].Element = "Xe"
	err = c.Load(recs)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownElement))
}

func TestCanvas_LoadRejectsBadOrders(t *testing.T) {
	c := acetone(t)
	before := c.Len()

	recs := c.Records()
	recs[0].Connections[0].Order = 4
	err := c.Load(recs)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidBondOrder))
	assert.Equal(t, before, c.Len())

	recs = c.Records()
	recs[1].BondMemory = map[string]int{recs[3].ID: -1}
	err = c.Load(recs)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidBondOrder))
}

func TestCanvas_LoadMirrorsOneSidedMemory(t *testing.T) {
	carbon := scene.AtomRecord{ID: "c1", Element: "C", X: 0, Y: 0}
	oxygen := scene.AtomRecord{ID: "o1", Element: "O", X: 1, Y: 0, BondMemory: map[string]int{"c1": 2}}

	for _, recs := range [][]scene.AtomRecord{{carbon, oxygen}, {oxygen, carbon}} {
		c := NewCanvas()
		require.NoError(t, c.Load(recs))
		c1, ok := c.Get("c1")
		require.True(t, ok)
		o, ok := c.Get("o1")
		require.True(t, ok)

		order, ok := c1.Memory("o1")
		require.True(t, ok)
		assert.Equal(t, 2, order)

		c.Infer()
		assert.Equal(t, 2, c1.OrderTo("o1"))
		assert.Equal(t, 2, o.OrderTo("c1"))
	}
}

func TestCanvas_LoadConflictingMemoryFirstWins(t *testing.T) {
	recs := []scene.AtomRecord{
		{ID: "c1", Element: "C", X: 0, Y: 0, BondMemory: map[string]int{"c2": 3}},
		{ID: "c2", Element: "C", X: 1, Y: 0, BondMemory: map[string]int{"c1": 1}},
	}
	c := NewCanvas()
	require.NoError(t, c.Load(recs))
	b, _ := c.Get("c2")
	order, _ := b.Memory("c1")
	assert.Equal(t, 3, order)
}

func TestParseLanguage(t *testing.T) {
	l, err := ParseLanguage("")
	require.NoError(t, err)
	assert.Equal(t, Japanese, l)

	l, err = ParseLanguage("en")
	require.NoError(t, err)
	assert.Equal(t, English, l)

	_, err = ParseLanguage("fr")
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestCanvas_Clone(t *testing.T) {
	c := ethanol(t)
	cp := c.Clone()
	cp.RemoveHydrogens()

	assert.Equal(t, 9, c.Len())
	assert.Equal(t, 3, cp.Len())
}

func TestCanvas_HydrogenFill(t *testing.T) {
	c := newTestCanvas()
	draw(t, c, placement{Carbon, 0, 0})
	c.Infer()

	assert.Equal(t, 4, c.FillHydrogens())
	c.Infer()
	assert.Equal(t, "CH4", NewFormula(c.Atoms(), false).String())
	assert.Equal(t, 0, c.FillHydrogens())

	assert.Equal(t, 4, c.RemoveHydrogens())
	assert.Equal(t, 1, c.Len())
	assert.Empty(t, c.Atoms()[0].BondMemory)
}
