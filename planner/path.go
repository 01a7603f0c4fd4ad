package planner

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// reconstructCells walks parent links back from goal and returns the path
// start-first.
func reconstructCells(grid *Grid, parent []int, goal int) []Cell {
	var path []Cell
	for i := goal; i >= 0; i = parent[i] {
		path = append(path, grid.cell(i))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathCost sums the Euclidean step costs along a cell path.
func PathCost(path []Cell) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += Euclidean(path[i-1], path[i])
	}
	return total
}

// Waypoints converts a cell path to the centers of its cells.
func Waypoints(path []Cell) []Point {
	out := make([]Point, len(path))
	for i, c := range path {
		out[i] = CellCenter(c)
	}
	return out
}

// lineString converts points for use with orb.
func lineString(points []Point) orb.LineString {
	ls := make(orb.LineString, len(points))
	for i, p := range points {
		ls[i] = p.Orb()
	}
	return ls
}

// PolylineLength returns the planar length of a waypoint sequence.
func PolylineLength(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	return planar.Length(lineString(points))
}

// SimplifyPath reduces a waypoint sequence with Douglas-Peucker. The result
// is for display only; it is not checked against obstacles.
func SimplifyPath(points []Point, epsilon float64) []Point {
	if len(points) <= 2 || epsilon <= 0 {
		return append([]Point(nil), points...)
	}
	ls := simplify.DouglasPeucker(epsilon).LineString(lineString(points))
	out := make([]Point, len(ls))
	for i, p := range ls {
		out[i] = Point{X: p[0], Y: p[1]}
	}
	return out
}

// cellsOf maps waypoints to their containing cells, dropping consecutive
// duplicates.
func cellsOf(points []Point) []Cell {
	var out []Cell
	for _, p := range points {
		c := p.Cell()
		if len(out) > 0 && out[len(out)-1] == c {
			continue
		}
		out = append(out, c)
	}
	return out
}
