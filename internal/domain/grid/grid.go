// Package grid provides the integer drawing-surface geometry shared by the
// bond inference engine, the placement helpers and the reaction engine.
//
// Positions are grid cells, not pixels.  Continuous quantities (midpoints,
// distances, projections) are computed with gonum's r2 vectors.
package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ─────────────────────────────────────────────────────────────────────────────
// Point
// ─────────────────────────────────────────────────────────────────────────────

// Point is a grid cell.  X grows to the right, Y grows downwards.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Vec returns p as a continuous vector.
func (p Point) Vec() r2.Vec { return r2.Vec{X: float64(p.X), Y: float64(p.Y)} }

// Step returns the cell n steps from p along d.
func (p Point) Step(d Direction, n int) Point {
	return Point{X: p.X + d.DX*n, Y: p.Y + d.DY*n}
}

// Offset returns p translated by (dx, dy).
func (p Point) Offset(dx, dy int) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Distance is the Euclidean distance between a and b in grid units.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(a.Vec(), b.Vec()))
}

// Midpoint is the geometric midpoint of a and b.
func Midpoint(a, b Point) r2.Vec {
	return r2.Scale(0.5, r2.Add(a.Vec(), b.Vec()))
}

// CellAt reports the grid cell exactly at v, if v lies on integer coordinates.
func CellAt(v r2.Vec) (Point, bool) {
	x, y := math.Round(v.X), math.Round(v.Y)
	if x != v.X || y != v.Y {
		return Point{}, false
	}
	return Point{X: int(x), Y: int(y)}, true
}

// AxisAligned reports whether a and b share a row or a column.
func AxisAligned(a, b Point) bool { return a.X == b.X || a.Y == b.Y }

// Chebyshev is the king-move distance between a and b.
func Chebyshev(a, b Point) int {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
