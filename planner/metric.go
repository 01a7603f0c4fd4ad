package planner

import "math"

// neighborOffsets lists the 8 directions clockwise starting north.
var neighborOffsets = [8][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}

// Neighbors8 returns the in-bounds 8-connected neighbors of c. A diagonal
// neighbor is dropped when either orthogonal cell it would cut past is an
// obstacle. Blocked neighbors themselves are returned; callers filter them.
func Neighbors8(g *Grid, c Cell) []Cell {
	out := make([]Cell, 0, 8)
	return appendNeighbors8(out, g, c)
}

func appendNeighbors8(dst []Cell, g *Grid, c Cell) []Cell {
	for _, d := range neighborOffsets {
		n := Cell{X: c.X + d[0], Y: c.Y + d[1]}
		if !g.InBounds(n) {
			continue
		}
		if d[0] != 0 && d[1] != 0 {
			if g.blockedAt(Cell{X: c.X + d[0], Y: c.Y}) || g.blockedAt(Cell{X: c.X, Y: c.Y + d[1]}) {
				continue
			}
		}
		dst = append(dst, n)
	}
	return dst
}

// Octile is the 8-connected distance with orthogonal cost 1 and diagonal
// cost √2. It is admissible and consistent for Neighbors8 moves.
func Octile(a, b Cell) float64 {
	dx, dy := absInt(a.X-b.X), absInt(a.Y-b.Y)
	hi, lo := dx, dy
	if lo > hi {
		hi, lo = lo, hi
	}
	return float64(hi) + (math.Sqrt2-1)*float64(lo)
}

// Euclidean is the straight-line distance between two cells. For neighbors
// it is the step cost: 1 orthogonally, √2 diagonally.
func Euclidean(a, b Cell) float64 {
	dx, dy := absInt(a.X-b.X), absInt(a.Y-b.Y)
	switch {
	case dx == 0:
		return float64(dy)
	case dy == 0:
		return float64(dx)
	case dx == 1 && dy == 1:
		return math.Sqrt2
	}
	return math.Hypot(float64(dx), float64(dy))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
