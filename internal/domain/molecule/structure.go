package molecule

// Structure is the descriptor naming and tag matching work from.
type Structure struct {
	MainChain    []*Atom
	ChainLength  int
	Substituents []Substituent
	Groups       []GroupMatch

	HasCarbon     bool
	HasDoubleBond bool
	HasTripleBond bool
	Isomerism     Isomerism

	// Hydrocarbon is set when carbon is present and every atom is carbon,
	// hydrogen or a halogen.
	Hydrocarbon bool
}

// IsCis reports cis geometry.
func (s Structure) IsCis() bool { return s.Isomerism == Cis }

// IsTrans reports trans geometry.
func (s Structure) IsTrans() bool { return s.Isomerism == Trans }

// HasGroup reports whether a functional group of type t was recognized.
func (s Structure) HasGroup(t GroupType) bool { return HasGroup(s.Groups, t) }

// MainChainHasOrder reports whether any bond touching a main-chain carbon
// has the given order.
func (s Structure) MainChainHasOrder(order int) bool {
	for _, a := range s.MainChain {
		for _, c := range a.Connections {
			if c.Order == order {
				return true
			}
		}
	}
	return false
}

// Analyze computes the structure descriptor of comp.
func Analyze(comp *Component, opts StereoOptions) Structure {
	s := Structure{Groups: FunctionalGroups(comp)}

	s.Hydrocarbon = true
	for _, a := range comp.Atoms {
		switch {
		case a.Is(Carbon):
			s.HasCarbon = true
		case a.Is(Hydrogen), a.Element.IsHalogen():
		default:
			s.Hydrocarbon = false
		}
		for _, c := range a.Connections {
			switch c.Order {
			case 2:
				s.HasDoubleBond = true
			case 3:
				s.HasTripleBond = true
			}
		}
	}
	if !s.HasCarbon {
		s.Hydrocarbon = false
		return s
	}

	s.MainChain = LongestCarbonChain(comp)
	s.ChainLength = len(s.MainChain)
	s.Substituents = Substituents(comp, s.MainChain)
	if s.HasDoubleBond {
		s.Isomerism = Stereo(comp, opts)
	}
	return s
}
