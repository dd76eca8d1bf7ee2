package reaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/grid"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/reaction"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/testutil"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

// mockMutator re-infers bonds on Commit so the canvas is observable after a
// reaction.
type mockMutator struct {
	mock.Mock
}

func (m *mockMutator) Checkpoint() { m.Called() }
func (m *mockMutator) Commit()     { m.Called() }

func expectEdit(c *molecule.Canvas) *mockMutator {
	m := new(mockMutator)
	m.On("Checkpoint").Return().Once()
	m.On("Commit").Run(func(mock.Arguments) { c.Infer() }).Return().Once()
	return m
}

func formulaKey(c *molecule.Canvas) string {
	return molecule.NewFormula(c.Atoms(), false).Key()
}

func bondIDs(t *testing.T, c *molecule.Canvas, ax, ay, bx, by int) (string, string) {
	t.Helper()
	return testutil.MustAt(t, c, ax, ay).ID, testutil.MustAt(t, c, bx, by).ID
}

// ─────────────────────────────────────────────────────────────────────────────
// Tool state
// ─────────────────────────────────────────────────────────────────────────────

func TestParseTool(t *testing.T) {
	tool, err := reaction.ParseTool("oxidation")
	require.NoError(t, err)
	assert.Equal(t, reaction.ToolOxidation, tool)

	_, err = reaction.ParseTool("hammer")
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownTool))
}

func TestParseReagent(t *testing.T) {
	r, err := reaction.ParseReagent("HCl")
	require.NoError(t, err)
	assert.False(t, r.Symmetric())
	assert.True(t, reaction.ReagentCl2.Symmetric())

	_, err = reaction.ParseReagent("HBr")
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownReagent))
}

func TestContext_SetToolResetsState(t *testing.T) {
	c := testutil.Ethene(t)
	x := reaction.NewContext(molecule.Japanese)
	x.SetTool(reaction.ToolAddition)
	x.SetReagent(reaction.ReagentHCl)

	a, b := bondIDs(t, c, 0, 0, 1, 0)
	res, err := x.ClickBond(c, new(mockMutator), a, b)
	require.NoError(t, err)
	assert.True(t, res.Pending)
	assert.True(t, x.Pending())
	assert.Len(t, x.Selection(), 2)

	x.SetTool(reaction.ToolAddition)
	assert.False(t, x.Pending())
	assert.Empty(t, x.Selection())
}

func TestContext_MoveToolIgnoresClicks(t *testing.T) {
	c := testutil.Methane(t)
	x := reaction.NewContext(molecule.Japanese)
	m := new(mockMutator)

	res, err := x.ClickAtom(c, m, testutil.MustAt(t, c, 0, 0).ID)
	require.NoError(t, err)
	assert.False(t, res.Applied())
	m.AssertNotCalled(t, "Checkpoint")
}

func TestContext_UnknownAtom(t *testing.T) {
	x := reaction.NewContext(molecule.Japanese)
	_, err := x.ClickAtom(testutil.NewCanvas(), new(mockMutator), "missing")
	assert.True(t, errors.IsCode(err, errors.ErrCodeAtomNotFound))
}

// ─────────────────────────────────────────────────────────────────────────────
// Addition
// ─────────────────────────────────────────────────────────────────────────────

func TestAddition_Hydrogen(t *testing.T) {
	c := testutil.Ethene(t)
	x := reaction.NewContext(molecule.Japanese)
	x.SetTool(reaction.ToolAddition)
	m := expectEdit(c)

	a, b := bondIDs(t, c, 0, 0, 1, 0)
	res, err := x.ClickBond(c, m, a, b)
	require.NoError(t, err)
	m.AssertExpectations(t)

	assert.Equal(t, reaction.KindAddition, res.Kind)
	assert.Len(t, res.Added, 2)
	assert.Equal(t, "C2H6", formulaKey(c))

	left := testutil.MustAt(t, c, 0, 0)
	assert.Equal(t, 1, left.OrderTo(b))
	mem, ok := left.Memory(b)
	assert.True(t, ok)
	assert.Equal(t, 1, mem)
}

func TestAddition_Chlorine(t *testing.T) {
	c := testutil.Ethene(t)
	x := reaction.NewContext(molecule.Japanese)
	x.SetTool(reaction.ToolAddition)
	x.SetReagent(reaction.ReagentCl2)

	a, b := bondIDs(t, c, 0, 0, 1, 0)
	_, err := x.ClickBond(c, expectEdit(c), a, b)
	require.NoError(t, err)

	f := molecule.NewFormula(c.Atoms(), false)
	assert.Equal(t, 2, f.Count(molecule.Chlorine))
	assert.Equal(t, 4, f.Count(molecule.Hydrogen))
	for _, id := range []string{a, b} {
		atom, _ := c.Get(id)
		assert.Zero(t, atom.FreeValency())
	}
}

func TestAddition_HydrogenChlorideTwoStep(t *testing.T) {
	c := testutil.Ethene(t)
	x := reaction.NewContext(molecule.English)
	x.SetTool(reaction.ToolAddition)
	x.SetReagent(reaction.ReagentHCl)

	a, b := bondIDs(t, c, 0, 0, 1, 0)
	res, err := x.ClickBond(c, new(mockMutator), a, b)
	require.NoError(t, err)
	assert.True(t, res.Pending)
	assert.False(t, res.Applied())

	// A click elsewhere keeps waiting.
	res, err = x.ClickAtom(c, new(mockMutator), testutil.MustAt(t, c, -1, 0).ID)
	require.NoError(t, err)
	assert.True(t, res.Pending)

	m := expectEdit(c)
	res, err = x.ClickAtom(c, m, b)
	require.NoError(t, err)
	m.AssertExpectations(t)
	assert.True(t, res.Applied())
	assert.False(t, x.Pending())

	right, _ := c.Get(b)
	left, _ := c.Get(a)
	var rightH, leftCl int
	for _, n := range c.Neighbors(right) {
		if n.Atom.Is(molecule.Hydrogen) {
			rightH++
		}
	}
	for _, n := range c.Neighbors(left) {
		if n.Atom.Is(molecule.Chlorine) {
			leftCl++
		}
	}
	assert.Equal(t, 3, rightH)
	assert.Equal(t, 1, leftCl)

	f := molecule.NewFormula(c.Atoms(), false)
	assert.Equal(t, 5, f.Count(molecule.Hydrogen))
	assert.Equal(t, 1, f.Count(molecule.Chlorine))
}

func TestAddition_Water(t *testing.T) {
	c := testutil.Ethene(t)
	x := reaction.NewContext(molecule.Japanese)
	x.SetTool(reaction.ToolAddition)
	x.SetReagent(reaction.ReagentH2O)

	a, b := bondIDs(t, c, 0, 0, 1, 0)
	_, err := x.ClickBond(c, new(mockMutator), a, b)
	require.NoError(t, err)
	res, err := x.ClickAtom(c, expectEdit(c), a)
	require.NoError(t, err)

	assert.Len(t, res.Added, 3)
	assert.Equal(t, "C2H6O1", formulaKey(c))
	comps := molecule.Partition(c)
	require.Len(t, comps, 1)
	assert.True(t, molecule.HasGroup(molecule.FunctionalGroups(comps[0]), molecule.GroupHydroxyl))
}

func TestAddition_SingleBondRejected(t *testing.T) {
	c := testutil.Ethanol(t)
	x := reaction.NewContext(molecule.English)
	x.SetTool(reaction.ToolAddition)
	m := new(mockMutator)

	a, b := bondIDs(t, c, 0, 0, 1, 0)
	_, err := x.ClickBond(c, m, a, b)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBondNotEligible))
	assert.True(t, errors.IsUserFacing(err))
	assert.Contains(t, err.Error(), "Click a double or triple bond.")
	m.AssertNotCalled(t, "Checkpoint")
}

func TestClickBond_WrongTool(t *testing.T) {
	c := testutil.Ethene(t)
	x := reaction.NewContext(molecule.Japanese)

	a, b := bondIDs(t, c, 0, 0, 1, 0)
	_, err := x.ClickBond(c, new(mockMutator), a, b)
	assert.True(t, errors.IsCode(err, errors.ErrCodeToolMismatch))
}

// ─────────────────────────────────────────────────────────────────────────────
// Dehydration
// ─────────────────────────────────────────────────────────────────────────────

// ethanolForElimination lays ethanol out so that the hydroxyl and one methyl
// hydrogen both sit next to the oxygen:
//
//	(0,-1)H   (1,-1)H
//	(-1,0)H C(0,0) C(1,0) H(2,0)
//	 (0,1)H   O(1,1)
//	          H(1,2)
func ethanolForElimination(t *testing.T) *molecule.Canvas {
	c := testutil.NewCanvas()
	atoms := testutil.Draw(t, c,
		testutil.At(molecule.Carbon, 0, 0), testutil.At(molecule.Carbon, 1, 0),
		testutil.At(molecule.Oxygen, 1, 1), testutil.At(molecule.Hydrogen, 1, 2),
		testutil.At(molecule.Hydrogen, 0, 1), testutil.At(molecule.Hydrogen, -1, 0),
		testutil.At(molecule.Hydrogen, 0, -1), testutil.At(molecule.Hydrogen, 2, 0),
		testutil.At(molecule.Hydrogen, 1, -1))
	c1, c2, o, ho := atoms[0], atoms[1], atoms[2], atoms[3]
	c.SetBondMemory(c1, c2, 1)
	c.SetBondMemory(c2, o, 1)
	c.SetBondMemory(o, ho, 1)
	for _, h := range atoms[4:7] {
		c.SetBondMemory(c1, h, 1)
	}
	for _, h := range atoms[7:] {
		c.SetBondMemory(c2, h, 1)
	}
	c.Infer()
	return c
}

func clickAll(t *testing.T, x *reaction.Context, c *molecule.Canvas, m reaction.Mutator, pts ...grid.Point) (reaction.Result, error) {
	t.Helper()
	var (
		res reaction.Result
		err error
	)
	for _, p := range pts {
		res, err = x.ClickAtom(c, m, testutil.MustAt(t, c, p.X, p.Y).ID)
	}
	return res, err
}

func TestDehydration_EthanolToEthene(t *testing.T) {
	c := ethanolForElimination(t)
	require.Equal(t, "C2H6O1", formulaKey(c))

	x := reaction.NewContext(molecule.Japanese)
	x.SetTool(reaction.ToolDehydration)
	m := expectEdit(c)

	res, err := clickAll(t, x, c, m, grid.Pt(1, 1), grid.Pt(1, 2), grid.Pt(0, 1))
	require.NoError(t, err)
	m.AssertExpectations(t)

	assert.Equal(t, reaction.KindDehydration, res.Kind)
	assert.Len(t, res.Removed, 3)
	assert.Equal(t, "C2H4", formulaKey(c))
	assert.Equal(t, reaction.ToolMove, x.Tool())

	c1 := testutil.MustAt(t, c, 0, 0)
	c2 := testutil.MustAt(t, c, 1, 0)
	assert.Equal(t, 2, c1.OrderTo(c2.ID))
}

func TestDehydration_Toggle(t *testing.T) {
	c := ethanolForElimination(t)
	x := reaction.NewContext(molecule.Japanese)
	x.SetTool(reaction.ToolDehydration)

	o := testutil.MustAt(t, c, 1, 1).ID
	_, err := x.ClickAtom(c, new(mockMutator), o)
	require.NoError(t, err)
	assert.Equal(t, []string{o}, x.Selection())

	_, err = x.ClickAtom(c, new(mockMutator), o)
	require.NoError(t, err)
	assert.Empty(t, x.Selection())
}

func TestDehydration_WrongSelection(t *testing.T) {
	c := ethanolForElimination(t)
	x := reaction.NewContext(molecule.Japanese)
	x.SetTool(reaction.ToolDehydration)
	m := new(mockMutator)

	_, err := clickAll(t, x, c, m, grid.Pt(0, 1), grid.Pt(1, 2), grid.Pt(0, -1))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDehydrationSelection))
	assert.Contains(t, err.Error(), "H原子2個とO原子1個")

	assert.Equal(t, 9, c.Len())
	assert.Empty(t, x.Selection())
	assert.Equal(t, reaction.ToolDehydration, x.Tool())
	m.AssertNotCalled(t, "Checkpoint")
}

func TestDehydration_TooFarApart(t *testing.T) {
	c := ethanolForElimination(t)
	x := reaction.NewContext(molecule.English)
	x.SetTool(reaction.ToolDehydration)
	m := new(mockMutator)

	_, err := clickAll(t, x, c, m, grid.Pt(-1, 0), grid.Pt(1, 1), grid.Pt(1, 2))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDehydrationDistance))
	assert.True(t, errors.IsUserFacing(err))
	assert.Contains(t, err.Error(), "too far apart")

	assert.Equal(t, 9, c.Len())
	assert.Equal(t, "C2H6O1", formulaKey(c))
	m.AssertNotCalled(t, "Checkpoint")
}

// ─────────────────────────────────────────────────────────────────────────────
// Oxidation
// ─────────────────────────────────────────────────────────────────────────────

func TestOxidation_EthanolToAceticAcid(t *testing.T) {
	c := testutil.Ethanol(t)
	x := reaction.NewContext(molecule.Japanese)
	x.SetTool(reaction.ToolOxidation)
	carbon := testutil.MustAt(t, c, 1, 0).ID

	m := expectEdit(c)
	res, err := x.ClickAtom(c, m, carbon)
	require.NoError(t, err)
	m.AssertExpectations(t)
	assert.Equal(t, reaction.KindOxidation, res.Kind)
	assert.Len(t, res.Removed, 2)
	assert.Equal(t, "C2H4O1", formulaKey(c))

	oxygen := testutil.MustAt(t, c, 2, 0)
	assert.Equal(t, 2, oxygen.OrderTo(carbon))

	m = expectEdit(c)
	res, err = x.ClickAtom(c, m, carbon)
	require.NoError(t, err)
	m.AssertExpectations(t)
	assert.Len(t, res.Added, 2)
	assert.Equal(t, "C2H4O2", formulaKey(c))

	comps := molecule.Partition(c)
	require.Len(t, comps, 1)
	assert.True(t, molecule.HasGroup(molecule.FunctionalGroups(comps[0]), molecule.GroupCarboxyl))
}

func TestOxidation_Aldehyde(t *testing.T) {
	c := testutil.Acetaldehyde(t)
	x := reaction.NewContext(molecule.Japanese)
	x.SetTool(reaction.ToolOxidation)

	_, err := x.ClickAtom(c, expectEdit(c), testutil.MustAt(t, c, 1, 0).ID)
	require.NoError(t, err)

	// The formyl H at (2,0) became an O with its H one step further out.
	o := testutil.MustAt(t, c, 2, 0)
	assert.True(t, o.Is(molecule.Oxygen))
	h := testutil.MustAt(t, c, 3, 0)
	assert.True(t, h.Is(molecule.Hydrogen))
	assert.Equal(t, 1, o.OrderTo(h.ID))
	assert.Equal(t, "C2H4O2", formulaKey(c))
}

func TestOxidation_TertiaryAlcoholRejected(t *testing.T) {
	c := testutil.NewCanvas()
	atoms := testutil.Draw(t, c,
		testutil.At(molecule.Carbon, 0, 0), testutil.At(molecule.Oxygen, 1, 0),
		testutil.At(molecule.Hydrogen, 2, 0), testutil.At(molecule.Carbon, -1, 0),
		testutil.At(molecule.Carbon, 0, 1), testutil.At(molecule.Carbon, 0, -1))
	center := atoms[0]
	c.SetBondMemory(center, atoms[1], 1)
	c.SetBondMemory(atoms[1], atoms[2], 1)
	for _, methyl := range atoms[3:] {
		c.SetBondMemory(center, methyl, 1)
	}
	c.Infer()
	before := c.Len()

	x := reaction.NewContext(molecule.English)
	x.SetTool(reaction.ToolOxidation)
	m := new(mockMutator)

	_, err := x.ClickAtom(c, m, center.ID)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotOxidizable))
	assert.True(t, errors.IsUserFacing(err))
	assert.Equal(t, before, c.Len())
	m.AssertNotCalled(t, "Checkpoint")
}

func TestOxidation_NonCarbonIgnored(t *testing.T) {
	c := testutil.Ethanol(t)
	x := reaction.NewContext(molecule.Japanese)
	x.SetTool(reaction.ToolOxidation)
	m := new(mockMutator)

	res, err := x.ClickAtom(c, m, testutil.MustAt(t, c, 2, 0).ID)
	require.NoError(t, err)
	assert.False(t, res.Applied())
	m.AssertNotCalled(t, "Checkpoint")
}

func TestOxidation_Methane(t *testing.T) {
	c := testutil.Methane(t)
	x := reaction.NewContext(molecule.Japanese)
	x.SetTool(reaction.ToolOxidation)

	_, err := x.ClickAtom(c, new(mockMutator), testutil.MustAt(t, c, 0, 0).ID)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotOxidizable))
}
