package planner

import (
	"math"

	"github.com/paulmach/orb"
)

// Point is a real-valued position in grid units. Cell (x,y) covers the square
// [x,x+1)×[y,y+1).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Cell returns the cell containing p.
func (p Point) Cell() Cell {
	return Cell{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
}

// Orb converts p for use with the orb geometry packages.
func (p Point) Orb() orb.Point { return orb.Point{p.X, p.Y} }

// CellCenter returns the center of c.
func CellCenter(c Cell) Point {
	return Point{X: float64(c.X) + 0.5, Y: float64(c.Y) + 0.5}
}

// contains reports whether p lies inside the continuous extent of the grid.
func (g *Grid) contains(p Point) bool {
	return p.X >= 0 && p.X < float64(g.width) && p.Y >= 0 && p.Y < float64(g.height)
}

// IsSegmentClear checks if the straight segment from p1 to p2 avoids every
// obstacle. It samples max(1, ceil(2·length)) intervals, endpoints included,
// and tests the cell containing each sample. Samples outside the grid count
// as collisions.
func (g *Grid) IsSegmentClear(p1, p2 Point) bool {
	n := int(math.Ceil(2 * p1.Distance(p2)))
	if n < 1 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		q := Point{X: p1.X + t*(p2.X-p1.X), Y: p1.Y + t*(p2.Y-p1.Y)}
		if !g.contains(q) || g.blocked[g.index(q.Cell())] {
			return false
		}
	}
	return true
}

// steer moves from `from` toward `to` by at most step.
func steer(from, to Point, step float64) Point {
	d := from.Distance(to)
	if d <= step {
		return to
	}
	t := step / d
	return Point{X: from.X + t*(to.X-from.X), Y: from.Y + t*(to.Y-from.Y)}
}
