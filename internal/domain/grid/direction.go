package grid

import (
	"fmt"
	"sort"

	"github.com/OhtaniSchoolEngineering/organic-simulator/pkg/errors"
)

// Direction is an axis-aligned unit step.
type Direction struct {
	DX int `json:"dx" yaml:"dx"`
	DY int `json:"dy" yaml:"dy"`
}

var (
	Right = Direction{DX: 1, DY: 0}
	Left  = Direction{DX: -1, DY: 0}
	Down  = Direction{DX: 0, DY: 1}
	Up    = Direction{DX: 0, DY: -1}
)

// Directions lists the four unit steps in their base placement order.
var Directions = [4]Direction{Right, Left, Down, Up}

// Dot is the scalar product of two directions.
func (d Direction) Dot(e Direction) int { return d.DX*e.DX + d.DY*e.DY }

// Rotate turns d by quarterTurns multiples of 90°.  One turn maps (x, y) to
// (-y, x); negative counts turn the other way.
func (d Direction) Rotate(quarterTurns int) Direction {
	n := ((quarterTurns % 4) + 4) % 4
	for i := 0; i < n; i++ {
		d = Direction{DX: -d.DY, DY: d.DX}
	}
	return d
}

// IsUnit reports whether d is one of the four axis-aligned unit steps.
func (d Direction) IsUnit() bool {
	return abs(d.DX)+abs(d.DY) == 1
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Down:
		return "down"
	case Up:
		return "up"
	}
	return fmt.Sprintf("(%d,%d)", d.DX, d.DY)
}

// ParseDirection maps "right", "left", "down" or "up" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "right":
		return Right, nil
	case "left":
		return Left, nil
	case "down":
		return Down, nil
	case "up":
		return Up, nil
	}
	return Direction{}, errors.New(errors.ErrCodeUnknownDirection, "unknown direction").WithDetail(s)
}

// Toward returns the sign-reduced step from origin toward p.
func Toward(origin, p Point) Direction {
	return Direction{DX: sign(p.X - origin.X), DY: sign(p.Y - origin.Y)}
}

// ─────────────────────────────────────────────────────────────────────────────
// Placement ordering
// ─────────────────────────────────────────────────────────────────────────────

// EscapeVector is the negated sum of the sign-reduced steps from origin to
// each bonded neighbor: the direction pointing away from existing bonds.
func EscapeVector(origin Point, neighbors []Point) Direction {
	var sx, sy int
	for _, n := range neighbors {
		t := Toward(origin, n)
		sx += t.DX
		sy += t.DY
	}
	return Direction{DX: -sx, DY: -sy}
}

// RankDirections returns the four base directions stable-sorted by
// descending alignment with the escape vector of neighbors.
func RankDirections(origin Point, neighbors []Point) []Direction {
	dirs := make([]Direction, len(Directions))
	copy(dirs, Directions[:])
	if len(neighbors) == 0 {
		return dirs
	}
	escape := EscapeVector(origin, neighbors)
	sort.SliceStable(dirs, func(i, j int) bool {
		return dirs[i].Dot(escape) > dirs[j].Dot(escape)
	})
	return dirs
}

// OpenDirections ranks the base directions away from the bonded neighbors of
// origin and drops those whose target cell is occupied.  It is used to place
// explicit hydrogens and reagent atoms.
func OpenDirections(origin Point, neighbors []Point, occupied func(Point) bool) []Direction {
	ranked := RankDirections(origin, neighbors)
	open := ranked[:0]
	for _, d := range ranked {
		if occupied != nil && occupied(origin.Step(d, 1)) {
			continue
		}
		open = append(open, d)
	}
	return open
}

// ArmDirections returns at most remaining directions for drawing empty
// valence arms.  A preferred direction, when set, is tried first; otherwise
// directions are ranked away from the neighbors.  Directions already taken by
// a bond are skipped.
func ArmDirections(origin Point, neighbors []Point, preferred *Direction, remaining int) []Direction {
	if remaining <= 0 {
		return nil
	}
	var ranked []Direction
	if preferred != nil && preferred.IsUnit() {
		ranked = append(ranked, *preferred)
		for _, d := range Directions {
			if d != *preferred {
				ranked = append(ranked, d)
			}
		}
	} else {
		ranked = RankDirections(origin, neighbors)
	}

	taken := make(map[Direction]bool, len(neighbors))
	for _, n := range neighbors {
		taken[Toward(origin, n)] = true
	}

	arms := make([]Direction, 0, remaining)
	for _, d := range ranked {
		if len(arms) >= remaining {
			break
		}
		if taken[d] {
			continue
		}
		arms = append(arms, d)
	}
	return arms
}
