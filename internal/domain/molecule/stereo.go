package molecule

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Isomerism is the cis/trans verdict for a molecule.
type Isomerism int

const (
	// Indeterminate covers molecules without exactly one C=C, double-bond
	// carbons without substituents, and substituents lying too close to the
	// bond axis.
	Indeterminate Isomerism = iota
	Cis
	Trans
)

func (i Isomerism) String() string {
	switch i {
	case Cis:
		return "cis"
	case Trans:
		return "trans"
	}
	return ""
}

// StereoOptions scales grid vectors into display units before the
// projection test.
type StereoOptions struct {
	CellSize  float64
	Threshold float64
}

// DefaultStereoOptions matches a 60px cell and a 1px threshold.
var DefaultStereoOptions = StereoOptions{CellSize: 60, Threshold: 1}

// CarbonDoubleBonds lists each C=C once, ordered by id so the lower id comes
// first in each pair.
func CarbonDoubleBonds(comp *Component) [][2]*Atom {
	var out [][2]*Atom
	for _, a := range comp.Atoms {
		if !a.Is(Carbon) {
			continue
		}
		for _, n := range comp.Neighbors(a) {
			if n.Order == 2 && n.Atom.Is(Carbon) && a.ID < n.Atom.ID {
				out = append(out, [2]*Atom{a, n.Atom})
			}
		}
	}
	return out
}

// Stereo decides cis/trans geometry.  It is evaluated only when comp has
// exactly one C=C.  On each double-bond carbon the substituent with the
// highest valency is the priority group; both priority vectors are projected
// onto the normal of the bond axis, and when both projections exceed the
// threshold their signs decide.
func Stereo(comp *Component, opts StereoOptions) Isomerism {
	doubles := CarbonDoubleBonds(comp)
	if len(doubles) != 1 {
		return Indeterminate
	}
	c1, c2 := doubles[0][0], doubles[0][1]

	v1, ok1 := priorityVector(comp, c1, c2, opts.CellSize)
	v2, ok2 := priorityVector(comp, c2, c1, opts.CellSize)
	if !ok1 || !ok2 {
		return Indeterminate
	}

	axis := r2.Scale(opts.CellSize, r2.Sub(c2.Pos.Vec(), c1.Pos.Vec()))
	normal := r2.Vec{X: -axis.Y, Y: axis.X}
	d1, d2 := r2.Dot(v1, normal), r2.Dot(v2, normal)

	if math.Abs(d1) <= opts.Threshold || math.Abs(d2) <= opts.Threshold {
		return Indeterminate
	}
	if d1*d2 > 0 {
		return Cis
	}
	return Trans
}

func priorityVector(comp *Component, c, other *Atom, scale float64) (r2.Vec, bool) {
	var subs []*Atom
	for _, n := range comp.Neighbors(c) {
		if n.Atom.ID != other.ID {
			subs = append(subs, n.Atom)
		}
	}
	if len(subs) == 0 {
		return r2.Vec{}, false
	}
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].Element.Valency() > subs[j].Element.Valency()
	})
	return r2.Scale(scale, r2.Sub(subs[0].Pos.Vec(), c.Pos.Vec())), true
}
