package molecule

// Component is one connected set of bonded atoms: a molecule.  Atom order is
// traversal order and is the iteration order every analysis uses.
type Component struct {
	Atoms []*Atom
	index map[string]*Atom
}

func newComponent(atoms []*Atom) *Component {
	comp := &Component{Atoms: atoms, index: make(map[string]*Atom, len(atoms))}
	for _, a := range atoms {
		comp.index[a.ID] = a
	}
	return comp
}

// NewComponent builds a component over an explicit atom list.  Lookups are
// restricted to those atoms.
func NewComponent(atoms []*Atom) *Component {
	return newComponent(append([]*Atom(nil), atoms...))
}

// Atom looks up a member atom.
func (m *Component) Atom(id string) (*Atom, bool) {
	a, ok := m.index[id]
	return a, ok
}

// Contains reports whether id is a member.
func (m *Component) Contains(id string) bool {
	_, ok := m.index[id]
	return ok
}

// IDs returns member ids in component order.
func (m *Component) IDs() []string {
	ids := make([]string, len(m.Atoms))
	for i, a := range m.Atoms {
		ids[i] = a.ID
	}
	return ids
}

// Neighbors resolves a's connections to member atoms in connection order.
func (m *Component) Neighbors(a *Atom) []Neighbor {
	out := make([]Neighbor, 0, len(a.Connections))
	for _, conn := range a.Connections {
		if n, ok := m.index[conn.TargetID]; ok {
			out = append(out, Neighbor{Atom: n, Order: conn.Order})
		}
	}
	return out
}

// Carbons returns member carbons in component order.
func (m *Component) Carbons() []*Atom {
	var out []*Atom
	for _, a := range m.Atoms {
		if a.Is(Carbon) {
			out = append(out, a)
		}
	}
	return out
}

// Partition splits the canvas into connected components.  Each unvisited
// atom, in canvas order, seeds a stack-based traversal over the current
// connections.
func Partition(c *Canvas) []*Component {
	visited := make(map[string]bool, len(c.atoms))
	var out []*Component

	for _, start := range c.atoms {
		if visited[start.ID] {
			continue
		}
		visited[start.ID] = true
		stack := []*Atom{start}
		var members []*Atom

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, cur)

			for _, conn := range cur.Connections {
				if visited[conn.TargetID] {
					continue
				}
				visited[conn.TargetID] = true
				if n, ok := c.byID[conn.TargetID]; ok {
					stack = append(stack, n)
				}
			}
		}
		out = append(out, newComponent(members))
	}
	return out
}
