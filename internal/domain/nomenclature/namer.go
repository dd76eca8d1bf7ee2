package nomenclature

import (
	"github.com/OhtaniSchoolEngineering/organic-simulator/internal/domain/molecule"
)

// Method records how a name was chosen.
type Method string

const (
	// MethodFormula: no catalog entry, the formula is the name.
	MethodFormula Method = "formula"
	// MethodTag: an entry whose tags all held.
	MethodTag Method = "tag"
	// MethodSingle: the only candidate, accepted without tags.
	MethodSingle Method = "single"
	// MethodSystematic: a synthesised hydrocarbon name.
	MethodSystematic Method = "systematic"
	// MethodIsomer: fallback naming the first candidate's isomer.
	MethodIsomer Method = "isomer"
)

// Identification is the naming verdict for one molecule.
type Identification struct {
	Formula molecule.Formula
	Name    string
	Method  Method
	// Entry is the accepted catalog entry for MethodTag and MethodSingle.
	Entry *Entry
	// Structure is set whenever the catalog had candidates.
	Structure *molecule.Structure
}

// NamerOption configures a Namer.
type NamerOption func(*Namer)

// WithLanguage selects the display language.
func WithLanguage(l molecule.Language) NamerOption {
	return func(n *Namer) { n.lang = l }
}

// WithStereoOptions sets the cis/trans projection parameters.
func WithStereoOptions(o molecule.StereoOptions) NamerOption {
	return func(n *Namer) { n.stereo = o }
}

// Namer names molecules against a catalog.
type Namer struct {
	catalog Catalog
	lang    molecule.Language
	stereo  molecule.StereoOptions
}

// NewNamer creates a Namer.  The default language is Japanese.
func NewNamer(c Catalog, opts ...NamerOption) *Namer {
	n := &Namer{catalog: c, lang: molecule.Japanese, stereo: molecule.DefaultStereoOptions}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Language is the display language in use.
func (n *Namer) Language() molecule.Language { return n.lang }

// Identify names comp, whose formula f the caller has already tallied
// (with or without implicit hydrogens).
func (n *Namer) Identify(comp *molecule.Component, f molecule.Formula) Identification {
	id := Identification{Formula: f}

	candidates := n.catalog.Lookup(f.Key())
	if len(candidates) == 0 {
		id.Name = f.Subscript()
		id.Method = MethodFormula
		return id
	}

	s := molecule.Analyze(comp, n.stereo)
	id.Structure = &s

	for i := range candidates {
		if Matches(candidates[i], s) {
			return n.accept(id, candidates[i], MethodTag)
		}
	}
	if len(candidates) == 1 {
		return n.accept(id, candidates[0], MethodSingle)
	}

	if name := SystematicName(s, n.lang); name != "" && !isBareAlkane(s) {
		id.Name = name + " (" + f.Subscript() + ")"
		id.Method = MethodSystematic
		return id
	}

	first := candidates[0].DisplayName(n.lang)
	id.Name = n.lang.Pick(first+"の異性体", first+" isomer") + " (" + f.Subscript() + ")"
	id.Method = MethodIsomer
	return id
}

func (n *Namer) accept(id Identification, e Entry, m Method) Identification {
	id.Entry = &e
	id.Name = e.DisplayName(n.lang) + " (" + e.StructuralFormula + ")"
	id.Method = m
	return id
}
