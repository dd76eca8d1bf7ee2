package editor

import (
	"time"

	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/nomenclature"
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/infrastructure/monitoring/logging"
	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/types/scene"
)

// Identify names every molecule on the canvas, in partition order.
func (s *Session) Identify() []nomenclature.Identification {
	comps := molecule.Partition(s.canvas)
	out := make([]nomenclature.Identification, len(comps))
	for i, comp := range comps {
		out[i] = s.namer.Identify(comp, molecule.NewFormula(comp.Atoms, s.view.ImplicitHydrogens))
	}
	return out
}

// Report analyses the canvas.  Group, iodoform and chirality annotations are
// included when the matching view setting is on.
func (s *Session) Report() scene.Report {
	start := time.Now()
	comps := molecule.Partition(s.canvas)

	rep := scene.Report{
		Molecules: make([]scene.MoleculeReport, 0, len(comps)),
		Atoms:     s.canvas.Records(),
	}
	for _, comp := range comps {
		rep.Molecules = append(rep.Molecules, s.describe(comp))
	}

	elapsed := time.Since(start)
	s.metrics.ObserveAnalysis(elapsed, len(comps))
	s.logger.Debug("canvas analysed", logging.Int("molecules", len(comps)), logging.Duration("elapsed", elapsed))
	return rep
}

func (s *Session) describe(comp *molecule.Component) scene.MoleculeReport {
	f := molecule.NewFormula(comp.Atoms, s.view.ImplicitHydrogens)
	id := s.namer.Identify(comp, f)

	m := scene.MoleculeReport{
		Formula: f.Subscript(),
		Name:    id.Name,
		AtomIDs: comp.IDs(),
	}

	if id.Structure != nil {
		m.Isomerism = id.Structure.Isomerism.String()
	} else {
		m.Isomerism = molecule.Stereo(comp, s.stereo).String()
	}

	if s.view.FunctionalGroups {
		m.Groups = s.groupReports(molecule.FunctionalGroups(comp))
	}
	if s.view.Iodoform {
		m.Iodoform = s.groupReports(molecule.IodoformPositive(comp))
	}
	if s.view.ChiralMarkers {
		for _, a := range molecule.ChiralCenters(comp) {
			m.ChiralAtomIDs = append(m.ChiralAtomIDs, a.ID)
		}
	}
	return m
}

func (s *Session) groupReports(matches []molecule.GroupMatch) []scene.GroupReport {
	if len(matches) == 0 {
		return nil
	}
	out := make([]scene.GroupReport, len(matches))
	for i, g := range matches {
		out[i] = scene.GroupReport{
			Type:    string(g.Type),
			Name:    g.Name(s.lang),
			AtomIDs: append([]string(nil), g.AtomIDs...),
		}
	}
	return out
}
