// Package reaction implements the reaction tools of the editor: addition
// across multiple bonds, dehydration of a selected H-O-H triple and
// oxidation of alcohol and aldehyde carbons.
//
// Tool state lives on an explicit Context, one per editing session.  Every
// reaction that changes the canvas calls Mutator.Checkpoint before its
// first edit and Mutator.Commit after its last one.
package reaction

import (
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

// Tool is the active editor mode.
type Tool string

const (
	ToolMove        Tool = "move"
	ToolAddition    Tool = "addition"
	ToolDehydration Tool = "dehydration"
	ToolOxidation   Tool = "oxidation"
)

// ParseTool maps a tool name to a Tool.
func ParseTool(s string) (Tool, error) {
	switch t := Tool(s); t {
	case ToolMove, ToolAddition, ToolDehydration, ToolOxidation:
		return t, nil
	}
	return "", errors.New(errors.ErrCodeUnknownTool, "unknown tool").WithDetail(s)
}

// Reagent is the molecule added across a multiple bond.
type Reagent string

const (
	ReagentH2  Reagent = "H2"
	ReagentCl2 Reagent = "Cl2"
	ReagentHCl Reagent = "HCl"
	ReagentH2O Reagent = "H2O"
)

// ParseReagent maps a reagent name to a Reagent.
func ParseReagent(s string) (Reagent, error) {
	switch r := Reagent(s); r {
	case ReagentH2, ReagentCl2, ReagentHCl, ReagentH2O:
		return r, nil
	}
	return "", errors.New(errors.ErrCodeUnknownReagent, "unknown reagent").WithDetail(s)
}

// Symmetric reports reagents that add the same atom to both bond ends.
func (r Reagent) Symmetric() bool { return r == ReagentH2 || r == ReagentCl2 }

// Mutator brackets a canvas edit.
type Mutator interface {
	// Checkpoint records the state before the first edit.
	Checkpoint()
	// Commit re-infers bonds after the last edit.
	Commit()
}

// Kind names an applied reaction.
type Kind string

const (
	KindAddition    Kind = "addition"
	KindDehydration Kind = "dehydration"
	KindOxidation   Kind = "oxidation"
)

// Result reports what a click did.
type Result struct {
	// Kind is set when a reaction was applied.
	Kind Kind
	// Pending is set while an addition waits for its second click.
	Pending bool
	// Added and Removed list the atom ids created and deleted.
	Added   []string
	Removed []string
}

// Applied reports whether the canvas changed.
func (r Result) Applied() bool { return r.Kind != "" }

type pendingAddition struct {
	a, b  string
	order int
}

// Context holds the tool state of one editing session.  It is not safe for
// concurrent use.
type Context struct {
	tool      Tool
	reagent   Reagent
	lang      molecule.Language
	selection []string
	pending   *pendingAddition
}

// NewContext starts in move mode with H2 selected.
func NewContext(lang molecule.Language) *Context {
	return &Context{tool: ToolMove, reagent: ReagentH2, lang: lang}
}

// SetLanguage switches the language of user-facing messages.
func (x *Context) SetLanguage(l molecule.Language) { x.lang = l }

// Tool is the active tool.
func (x *Context) Tool() Tool { return x.tool }

// SetTool switches tools and drops any selection or pending addition.
func (x *Context) SetTool(t Tool) {
	x.tool = t
	x.reset()
}

// Reagent is the active addition reagent.
func (x *Context) Reagent() Reagent { return x.reagent }

// SetReagent selects the addition reagent.  A pending addition is dropped.
func (x *Context) SetReagent(r Reagent) {
	x.reagent = r
	if x.pending != nil {
		x.reset()
	}
}

// Selection returns the ids currently selected for a reaction.
func (x *Context) Selection() []string { return append([]string(nil), x.selection...) }

// Pending reports whether an addition awaits its second click.
func (x *Context) Pending() bool { return x.pending != nil }

func (x *Context) reset() {
	x.selection = nil
	x.pending = nil
}

func (x *Context) userError(code errors.ErrorCode, ja, en string) *errors.AppError {
	return errors.New(code, x.lang.Pick(ja, en))
}

// ClickAtom routes an atom click to the active tool.
func (x *Context) ClickAtom(c *molecule.Canvas, m Mutator, id string) (Result, error) {
	a, ok := c.Get(id)
	if !ok {
		return Result{}, errors.New(errors.ErrCodeAtomNotFound, "atom not found").WithDetail(id)
	}
	switch x.tool {
	case ToolDehydration:
		return x.toggleDehydration(c, m, a)
	case ToolOxidation:
		if !a.Is(molecule.Carbon) {
			return Result{}, nil
		}
		return x.oxidize(c, m, a)
	case ToolAddition:
		if x.pending == nil {
			return Result{}, nil
		}
		return x.finishAddition(c, m, a)
	}
	return Result{}, nil
}

// ClickBond routes a bond click between a and b to the active tool.  Only
// addition acts on bonds.
func (x *Context) ClickBond(c *molecule.Canvas, m Mutator, aID, bID string) (Result, error) {
	if x.tool != ToolAddition {
		return Result{}, errors.New(errors.ErrCodeToolMismatch, "bond clicks need the addition tool").WithDetail(string(x.tool))
	}
	a, ok := c.Get(aID)
	if !ok {
		return Result{}, errors.New(errors.ErrCodeAtomNotFound, "atom not found").WithDetail(aID)
	}
	b, ok := c.Get(bID)
	if !ok {
		return Result{}, errors.New(errors.ErrCodeAtomNotFound, "atom not found").WithDetail(bID)
	}
	return x.startAddition(c, m, a, b)
}
