package editor

import (
	"fmt"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/grid"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/reaction"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/infrastructure/monitoring/logging"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/types/scene"
)

// ReplayOptions controls Replay.
type ReplayOptions struct {
	// ContinueOnReject keeps going after a reaction is refused with a
	// user-facing error.  Other errors always stop the replay.
	ContinueOnReject bool
}

// Replay applies every step of script in order.  The script's view
// settings, if any, replace the session's.  Steps address atoms by cell.
func (s *Session) Replay(script scene.Script, opts ReplayOptions) error {
	if script.View != nil {
		s.view = *script.View
	}
	for i, step := range script.Steps {
		err := s.Apply(step)
		if err == nil {
			continue
		}
		if opts.ContinueOnReject && errors.IsUserFacing(err) {
			s.logger.Info("step rejected", logging.Int("step", i), logging.String("op", string(step.Op)), logging.Err(err))
			continue
		}
		return errors.Wrap(err, errors.CodeUnknown, fmt.Sprintf("step %d (%s) failed", i, step.Op))
	}
	return nil
}

// Apply executes one scripted step.
func (s *Session) Apply(step scene.Step) error {
	switch step.Op {
	case scene.OpPlace:
		p, err := cell(step, step.At)
		if err != nil {
			return err
		}
		e, err := molecule.ParseElement(step.Element)
		if err != nil {
			return err
		}
		if _, ok := s.Place(e, p); !ok {
			return errors.New(errors.ErrCodeCellOccupied, "cell is occupied").WithDetail(p.String())
		}
		return nil

	case scene.OpGroup:
		p, err := cell(step, step.At)
		if err != nil {
			return err
		}
		dir := grid.Left
		if step.Direction != "" {
			if dir, err = grid.ParseDirection(step.Direction); err != nil {
				return errors.Wrap(err, errors.ErrCodeUnknownDirection, "bad group direction")
			}
		}
		_, err = s.PlaceGroup(step.Group, p, dir)
		return err

	case scene.OpDelete:
		a, err := s.atomAt(step, step.At)
		if err != nil {
			return err
		}
		s.Delete(a.ID)
		return nil

	case scene.OpMove:
		a, err := s.atomAt(step, step.At)
		if err != nil {
			return err
		}
		to, err := cell(step, step.To)
		if err != nil {
			return err
		}
		_, err = s.Move(a.ID, to)
		return err

	case scene.OpCycle:
		a, err := s.atomAt(step, step.At)
		if err != nil {
			return err
		}
		b, err := s.atomAt(step, step.To)
		if err != nil {
			return err
		}
		_, err = s.CycleBond(a.ID, b.ID)
		return err

	case scene.OpFillH:
		s.FillHydrogens()
		return nil

	case scene.OpRemoveH:
		s.RemoveHydrogens()
		return nil

	case scene.OpTool:
		t, err := reaction.ParseTool(step.Tool)
		if err != nil {
			return err
		}
		s.SetTool(t)
		return nil

	case scene.OpReagent:
		r, err := reaction.ParseReagent(step.Reagent)
		if err != nil {
			return err
		}
		s.SetReagent(r)
		return nil

	case scene.OpClickAtom:
		a, err := s.atomAt(step, step.At)
		if err != nil {
			return err
		}
		_, err = s.ClickAtom(a.ID)
		return err

	case scene.OpClickBond:
		a, err := s.atomAt(step, step.At)
		if err != nil {
			return err
		}
		b, err := s.atomAt(step, step.To)
		if err != nil {
			return err
		}
		_, err = s.ClickBond(a.ID, b.ID)
		return err

	case scene.OpUndo:
		return s.Undo()

	case scene.OpRedo:
		return s.Redo()

	case scene.OpClear:
		s.Clear()
		return nil
	}
	return errors.New(errors.ErrCodeScriptStep, "unknown step").WithDetail(string(step.Op))
}

func cell(step scene.Step, c *scene.Cell) (grid.Point, error) {
	if c == nil {
		return grid.Point{}, errors.New(errors.ErrCodeScriptStep, "step needs a cell").WithDetail(string(step.Op))
	}
	return grid.Pt(c.X, c.Y), nil
}

func (s *Session) atomAt(step scene.Step, c *scene.Cell) (*molecule.Atom, error) {
	p, err := cell(step, c)
	if err != nil {
		return nil, err
	}
	a, ok := s.canvas.At(p)
	if !ok {
		return nil, errors.New(errors.ErrCodeAtomNotFound, "no atom on cell").WithDetail(p.String())
	}
	return a, nil
}
