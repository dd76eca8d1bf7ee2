// Package scene defines the data transfer objects exchanged between the
// engine and its collaborators: serialized atom sets, view settings, replay
// scripts and analysis reports.  No domain logic lives here, only plain data
// types that are safe to import from any layer.
package scene

// ─────────────────────────────────────────────────────────────────────────────
// Atom set
// ─────────────────────────────────────────────────────────────────────────────

// ConnectionRecord is one derived bond as seen from its owning atom.
type ConnectionRecord struct {
	TargetID string `json:"target_id" yaml:"target_id"`
	Order    int    `json:"order" yaml:"order"`
}

// AtomRecord is the serialized form of one atom.  Connections are derived
// and may be omitted on input; BondMemory is authoritative user intent.
type AtomRecord struct {
	ID           string             `json:"id" yaml:"id"`
	Element      string             `json:"element" yaml:"element"`
	X            int                `json:"x" yaml:"x"`
	Y            int                `json:"y" yaml:"y"`
	Connections  []ConnectionRecord `json:"connections,omitempty" yaml:"connections,omitempty"`
	BondMemory   map[string]int     `json:"bond_memory,omitempty" yaml:"bond_memory,omitempty"`
	PreferredDir string             `json:"preferred_dir,omitempty" yaml:"preferred_dir,omitempty"`
}

// ViewSettings toggles derived display output.
type ViewSettings struct {
	ImplicitHydrogens bool `json:"implicit_hydrogens" yaml:"implicit_hydrogens"`
	ChiralMarkers     bool `json:"chiral_markers" yaml:"chiral_markers"`
	FunctionalGroups  bool `json:"functional_groups" yaml:"functional_groups"`
	Iodoform          bool `json:"iodoform" yaml:"iodoform"`
}

// Scene is a saved drawing: view settings plus the atom set.
type Scene struct {
	View  *ViewSettings `json:"view,omitempty" yaml:"view,omitempty"`
	Atoms []AtomRecord  `json:"atoms" yaml:"atoms"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Replay script
// ─────────────────────────────────────────────────────────────────────────────

// StepOp names a replayable editing operation.
type StepOp string

const (
	OpPlace     StepOp = "place"
	OpGroup     StepOp = "group"
	OpDelete    StepOp = "delete"
	OpMove      StepOp = "move"
	OpCycle     StepOp = "cycle"
	OpFillH     StepOp = "fill_h"
	OpRemoveH   StepOp = "remove_h"
	OpTool      StepOp = "tool"
	OpReagent   StepOp = "reagent"
	OpClickAtom StepOp = "click_atom"
	OpClickBond StepOp = "click_bond"
	OpUndo      StepOp = "undo"
	OpRedo      StepOp = "redo"
	OpClear     StepOp = "clear"
)

// Cell addresses an atom by grid position inside a script.
type Cell struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Step is one scripted operation.  Which fields are read depends on Op.
type Step struct {
	Op        StepOp `json:"op" yaml:"op"`
	Element   string `json:"element,omitempty" yaml:"element,omitempty"`
	Group     string `json:"group,omitempty" yaml:"group,omitempty"`
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"`
	Tool      string `json:"tool,omitempty" yaml:"tool,omitempty"`
	Reagent   string `json:"reagent,omitempty" yaml:"reagent,omitempty"`
	At        *Cell  `json:"at,omitempty" yaml:"at,omitempty"`
	To        *Cell  `json:"to,omitempty" yaml:"to,omitempty"`
}

// Script is an ordered list of steps replayed against a fresh session.
type Script struct {
	View  *ViewSettings `json:"view,omitempty" yaml:"view,omitempty"`
	Steps []Step        `json:"steps" yaml:"steps"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Analysis report
// ─────────────────────────────────────────────────────────────────────────────

// GroupReport is one functional-group match for visual annotation.
type GroupReport struct {
	Type    string   `json:"type" yaml:"type"`
	Name    string   `json:"name" yaml:"name"`
	AtomIDs []string `json:"atom_ids" yaml:"atom_ids"`
}

// MoleculeReport describes one connected component.
type MoleculeReport struct {
	Formula       string        `json:"formula" yaml:"formula"`
	Name          string        `json:"name" yaml:"name"`
	AtomIDs       []string      `json:"atom_ids" yaml:"atom_ids"`
	Groups        []GroupReport `json:"groups,omitempty" yaml:"groups,omitempty"`
	Iodoform      []GroupReport `json:"iodoform,omitempty" yaml:"iodoform,omitempty"`
	ChiralAtomIDs []string      `json:"chiral_atom_ids,omitempty" yaml:"chiral_atom_ids,omitempty"`
	Isomerism     string        `json:"isomerism,omitempty" yaml:"isomerism,omitempty"`
}

// Report is the full derived output for one atom set.
type Report struct {
	Molecules []MoleculeReport `json:"molecules" yaml:"molecules"`
	Atoms     []AtomRecord     `json:"atoms,omitempty" yaml:"atoms,omitempty"`
}

// Names returns the display names of all molecules, in report order.
func (r Report) Names() []string {
	names := make([]string, len(r.Molecules))
	for i, m := range r.Molecules {
		names[i] = m.Name
	}
	return names
}
