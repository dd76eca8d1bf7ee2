package molecule

// FillHydrogens saturates every atom present when the call starts with
// explicit hydrogens.  Each atom gets up to min(free valency, open
// directions) new hydrogens, each remembered as a single bond.  Free valency
// is read from the current connections, so callers should infer first.  It
// returns the number of hydrogens added.
func (c *Canvas) FillHydrogens() int {
	added := 0
	for _, a := range c.Atoms() {
		free := a.FreeValency()
		if free <= 0 {
			continue
		}
		dirs := c.OpenDirections(a)
		for i := 0; i < free && i < len(dirs); i++ {
			h, ok := c.Place(Hydrogen, a.Pos.Step(dirs[i], 1))
			if !ok {
				continue
			}
			c.SetBondMemory(a, h, 1)
			added++
		}
	}
	return added
}

// RemoveHydrogens deletes every hydrogen and returns how many went.
func (c *Canvas) RemoveHydrogens() int {
	return c.RemoveWhere(func(a *Atom) bool { return a.Is(Hydrogen) })
}
