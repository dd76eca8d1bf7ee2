// Package editor provides the editing session that sits between a user
// interface and the molecule engine.  A Session owns the canvas, the undo
// history and the reaction tool state, and guarantees the ordering every
// edit relies on: snapshot, mutate, re-infer.
package editor

import (
	"encoding/json"
	"time"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/grid"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/nomenclature"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/reaction"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/infrastructure/monitoring/logging"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/types/scene"
)

// Metrics receives engine measurements.  The Prometheus engine metrics
// implement it; a nil Metrics disables collection.
type Metrics interface {
	ObserveInference(stats molecule.InferenceStats)
	ObserveReaction(kind string, outcome string)
	ObserveAnalysis(d time.Duration, molecules int)
	SetHistoryDepth(undo, redo int)
}

type nopMetrics struct{}

func (nopMetrics) ObserveInference(molecule.InferenceStats) {}
func (nopMetrics) ObserveReaction(string, string)           {}
func (nopMetrics) ObserveAnalysis(time.Duration, int)       {}
func (nopMetrics) SetHistoryDepth(int, int)                 {}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(s *Session) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithHistoryLimit bounds the undo stack.
func WithHistoryLimit(n int) Option {
	return func(s *Session) { s.history = NewHistory(n) }
}

// WithLanguage selects names and messages.
func WithLanguage(l molecule.Language) Option {
	return func(s *Session) { s.lang = l }
}

// WithStereoOptions sets the cis/trans projection parameters.
func WithStereoOptions(o molecule.StereoOptions) Option {
	return func(s *Session) { s.stereo = o }
}

// WithView sets the initial view settings.
func WithView(v scene.ViewSettings) Option {
	return func(s *Session) { s.view = v }
}

// WithIDGenerator replaces the uuid atom id generator.
func WithIDGenerator(gen molecule.IDGenerator) Option {
	return func(s *Session) { s.idGen = gen }
}

// Session is one editing session.  It is not safe for concurrent use.
type Session struct {
	catalog nomenclature.Catalog
	canvas  *molecule.Canvas
	history *History
	tools   *reaction.Context
	namer   *nomenclature.Namer

	lang   molecule.Language
	stereo molecule.StereoOptions
	view   scene.ViewSettings
	idGen  molecule.IDGenerator

	logger  logging.Logger
	metrics Metrics
}

// NewSession creates an empty session naming molecules against catalog.
func NewSession(catalog nomenclature.Catalog, opts ...Option) *Session {
	s := &Session{
		catalog: catalog,
		history: NewHistory(DefaultHistoryLimit),
		lang:    molecule.Japanese,
		stereo:  molecule.DefaultStereoOptions,
		logger:  logging.NewNopLogger(),
		metrics: nopMetrics{},
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = s.logger.Named("editor")

	var canvasOpts []molecule.Option
	if s.idGen != nil {
		canvasOpts = append(canvasOpts, molecule.WithIDGenerator(s.idGen))
	}
	s.canvas = molecule.NewCanvas(canvasOpts...)
	s.tools = reaction.NewContext(s.lang)
	s.rebuildNamer()
	return s
}

func (s *Session) rebuildNamer() {
	s.namer = nomenclature.NewNamer(s.catalog,
		nomenclature.WithLanguage(s.lang),
		nomenclature.WithStereoOptions(s.stereo))
}

// ─────────────────────────────────────────────────────────────────────────────
// Accessors
// ─────────────────────────────────────────────────────────────────────────────

// Canvas exposes the atom store for read access.  Mutating it directly
// bypasses history.
func (s *Session) Canvas() *molecule.Canvas { return s.canvas }

// Language is the session display language.
func (s *Session) Language() molecule.Language { return s.lang }

// SetLanguage switches names and messages to l.
func (s *Session) SetLanguage(l molecule.Language) {
	s.lang = l
	s.tools.SetLanguage(l)
	s.rebuildNamer()
}

// View returns the current view settings.
func (s *Session) View() scene.ViewSettings { return s.view }

// SetView replaces the view settings.  View settings are not part of the
// undo history.
func (s *Session) SetView(v scene.ViewSettings) { s.view = v }

// Tool is the active reaction tool.
func (s *Session) Tool() reaction.Tool { return s.tools.Tool() }

// Reagent is the active addition reagent.
func (s *Session) Reagent() reaction.Reagent { return s.tools.Reagent() }

// Selection is the current reaction selection.
func (s *Session) Selection() []string { return s.tools.Selection() }

// CanUndo reports whether Undo would succeed.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// ─────────────────────────────────────────────────────────────────────────────
// Mutation bracket
// ─────────────────────────────────────────────────────────────────────────────

func (s *Session) snapshot() []byte {
	data, err := json.Marshal(s.canvas.Records())
	if err != nil {
		// Records are plain data; marshalling cannot fail in practice.
		s.logger.Error("snapshot failed", logging.Err(err))
		return nil
	}
	return data
}

// Checkpoint records the current canvas for undo.  It is called before
// every edit.
func (s *Session) Checkpoint() {
	s.pushSnapshot(s.snapshot())
}

func (s *Session) pushSnapshot(snap []byte) {
	if snap != nil && !s.history.Push(snap) {
		s.logger.Debug("checkpoint unchanged")
	}
	s.reportDepth()
}

// Commit re-infers every bond after an edit.
func (s *Session) Commit() {
	stats := s.canvas.Infer()
	s.metrics.ObserveInference(stats)
	s.logger.Debug("bonds inferred",
		logging.Int("atoms", s.canvas.Len()),
		logging.Int("candidates", stats.Candidates),
		logging.Int("formed", stats.Formed),
		logging.Int("declined", stats.Declined),
		logging.Int("suppressed", stats.Suppressed))
}

func (s *Session) reportDepth() {
	u, r := s.history.Depth()
	s.metrics.SetHistoryDepth(u, r)
}

func (s *Session) restore(snap []byte) error {
	var records []scene.AtomRecord
	if err := json.Unmarshal(snap, &records); err != nil {
		return errors.Wrap(err, errors.ErrCodeSnapshotCorrupt, "cannot decode snapshot")
	}
	if err := s.canvas.Load(records); err != nil {
		return errors.Wrap(err, errors.ErrCodeSnapshotCorrupt, "cannot restore snapshot")
	}
	s.tools.SetTool(s.tools.Tool())
	s.Commit()
	s.reportDepth()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Editing
// ─────────────────────────────────────────────────────────────────────────────

// Place puts a new atom of element e on p.  An occupied cell is a silent
// no-op and returns false.
func (s *Session) Place(e molecule.Element, p grid.Point) (*molecule.Atom, bool) {
	if s.canvas.Occupied(p) {
		return nil, false
	}
	s.Checkpoint()
	a, ok := s.canvas.Place(e, p)
	s.Commit()
	if ok {
		s.logger.Debug("atom placed", logging.AtomID(a.ID), logging.String("element", e.String()), logging.String("at", p.String()))
	}
	return a, ok
}

// PlaceGroup places the named functional-group template with its junction
// on anchor, facing dir.
func (s *Session) PlaceGroup(name string, anchor grid.Point, dir grid.Direction) ([]*molecule.Atom, error) {
	if _, ok := molecule.Template(name); !ok {
		return nil, errors.New(errors.ErrCodeUnknownGroup, "unknown functional group").WithDetail(name)
	}
	s.Checkpoint()
	atoms, err := s.canvas.PlaceGroup(name, anchor, dir)
	s.Commit()
	if err != nil {
		return nil, err
	}
	s.logger.Debug("group placed", logging.String("group", name), logging.String("at", anchor.String()), logging.Int("atoms", len(atoms)))
	return atoms, nil
}

// Delete removes the atoms with the given ids and returns how many existed.
func (s *Session) Delete(ids ...string) int {
	var present []string
	for _, id := range ids {
		if _, ok := s.canvas.Get(id); ok {
			present = append(present, id)
		}
	}
	if len(present) == 0 {
		return 0
	}
	s.Checkpoint()
	for _, id := range present {
		s.canvas.Remove(id)
	}
	s.tools.SetTool(s.tools.Tool())
	s.Commit()
	s.logger.Debug("atoms deleted", logging.Strings("atom_ids", present))
	return len(present)
}

// Move drags atom id to p.  Dropping onto an empty cell moves the atom and
// returns 0.  Dropping onto another atom cycles the bond between the two,
// leaves the dragged atom where it was and returns the new order.
func (s *Session) Move(id string, p grid.Point) (int, error) {
	a, ok := s.canvas.Get(id)
	if !ok {
		return 0, errors.New(errors.ErrCodeAtomNotFound, "atom not found").WithDetail(id)
	}
	if a.Pos == p {
		return 0, nil
	}
	s.Checkpoint()
	defer s.Commit()
	if target, ok := s.canvas.At(p); ok {
		order := s.canvas.CycleBond(a, target)
		s.logger.Debug("bond cycled by drop", logging.AtomID(id), logging.String("target", target.ID), logging.Int("order", order))
		return order, nil
	}
	s.canvas.Move(id, p)
	return 0, nil
}

// CycleBond advances the remembered order between two atoms 1→2→3→1.
func (s *Session) CycleBond(aID, bID string) (int, error) {
	a, ok := s.canvas.Get(aID)
	if !ok {
		return 0, errors.New(errors.ErrCodeAtomNotFound, "atom not found").WithDetail(aID)
	}
	b, ok := s.canvas.Get(bID)
	if !ok {
		return 0, errors.New(errors.ErrCodeAtomNotFound, "atom not found").WithDetail(bID)
	}
	if a.ID == b.ID {
		return 0, errors.InvalidParam("cannot bond an atom to itself").WithDetail(aID)
	}
	s.Checkpoint()
	order := s.canvas.CycleBond(a, b)
	s.Commit()
	return order, nil
}

// FillHydrogens saturates every atom with explicit hydrogens.  A canvas
// that is already saturated leaves history untouched.
func (s *Session) FillHydrogens() int {
	before := s.snapshot()
	n := s.canvas.FillHydrogens()
	if n == 0 {
		return 0
	}
	s.pushSnapshot(before)
	s.Commit()
	s.logger.Debug("hydrogens filled", logging.Int("added", n))
	return n
}

// RemoveHydrogens deletes every hydrogen atom.  With no hydrogen on the
// canvas it is a no-op and leaves history untouched.
func (s *Session) RemoveHydrogens() int {
	before := s.snapshot()
	n := s.canvas.RemoveHydrogens()
	if n == 0 {
		return 0
	}
	s.pushSnapshot(before)
	s.tools.SetTool(s.tools.Tool())
	s.Commit()
	s.logger.Debug("hydrogens removed", logging.Int("removed", n))
	return n
}

// Clear empties the canvas.  It is undoable.
func (s *Session) Clear() {
	s.Checkpoint()
	s.canvas.Clear()
	s.tools.SetTool(s.tools.Tool())
	s.Commit()
}

// Undo restores the state before the last edit.
func (s *Session) Undo() error {
	snap, err := s.history.Undo(s.snapshot())
	if err != nil {
		return err
	}
	return s.restore(snap)
}

// Redo re-applies the last undone edit.
func (s *Session) Redo() error {
	snap, err := s.history.Redo(s.snapshot())
	if err != nil {
		return err
	}
	return s.restore(snap)
}

// Load replaces the canvas with a saved scene and drops the history.
func (s *Session) Load(sc scene.Scene) error {
	if err := s.canvas.Load(sc.Atoms); err != nil {
		return errors.Wrap(err, errors.CodeUnknown, "cannot load scene")
	}
	if sc.View != nil {
		s.view = *sc.View
	}
	s.history.Reset()
	s.tools.SetTool(reaction.ToolMove)
	s.Commit()
	s.reportDepth()
	s.logger.Info("scene loaded", logging.Int("atoms", s.canvas.Len()))
	return nil
}

// Scene returns the current canvas and view as a saveable scene.
func (s *Session) Scene() scene.Scene {
	v := s.view
	return scene.Scene{View: &v, Atoms: s.canvas.Records()}
}

// ─────────────────────────────────────────────────────────────────────────────
// Reactions
// ─────────────────────────────────────────────────────────────────────────────

// SetTool switches the reaction tool and clears any selection.
func (s *Session) SetTool(t reaction.Tool) { s.tools.SetTool(t) }

// SetReagent selects the addition reagent.
func (s *Session) SetReagent(r reaction.Reagent) { s.tools.SetReagent(r) }

// ClickAtom forwards an atom click to the active tool.
func (s *Session) ClickAtom(id string) (reaction.Result, error) {
	tool := s.tools.Tool()
	res, err := s.tools.ClickAtom(s.canvas, s, id)
	s.observeReaction(tool, res, err)
	return res, err
}

// ClickBond forwards a click on the bond between a and b.
func (s *Session) ClickBond(aID, bID string) (reaction.Result, error) {
	tool := s.tools.Tool()
	res, err := s.tools.ClickBond(s.canvas, s, aID, bID)
	s.observeReaction(tool, res, err)
	return res, err
}

func (s *Session) observeReaction(tool reaction.Tool, res reaction.Result, err error) {
	switch {
	case err != nil && errors.IsUserFacing(err):
		s.metrics.ObserveReaction(string(tool), "rejected")
		s.logger.Info("reaction rejected", logging.String("tool", string(tool)), logging.String("code", errors.GetCode(err).String()))
	case err != nil:
		s.metrics.ObserveReaction(string(tool), "error")
		s.logger.Warn("reaction failed", logging.String("tool", string(tool)), logging.Err(err))
	case res.Applied():
		s.metrics.ObserveReaction(string(res.Kind), "applied")
		s.logger.Debug("reaction applied",
			logging.String("kind", string(res.Kind)),
			logging.Strings("added", res.Added),
			logging.Strings("removed", res.Removed))
	}
}
