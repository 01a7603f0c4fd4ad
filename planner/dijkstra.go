package planner

import "container/heap"

// dijkstraSearch expands cells in order of g. Improvements push a duplicate
// entry instead of lowering a key; stale entries are skipped when popped.
// Equal-cost ties pop in insertion order, and relaxation only accepts strict
// improvements, so the first registered parent of a cell wins.
type dijkstraSearch struct {
	gridState
}

func newDijkstra(grid *Grid) *dijkstraSearch {
	s := &dijkstraSearch{gridState: newGridState(grid)}
	s.push(grid.index(grid.Start()), 0, 0)
	return s
}

func (s *dijkstraSearch) step() StepResult {
	for s.open.Len() > 0 {
		current := heap.Pop(&s.open).(*openItem)
		if s.closed[current.cell] {
			continue
		}
		if current.cell == s.goal {
			return s.found()
		}
		c := s.close(current.cell)
		res := StepResult{Status: Running, NewlyVisited: []Cell{c}}

		for _, n := range appendNeighbors8(s.scratch[:0], s.grid, c) {
			ni := s.grid.index(n)
			if s.closed[ni] || s.grid.blocked[ni] {
				continue
			}
			tentativeG := current.g + Euclidean(c, n)
			if s.seen[ni] && tentativeG >= s.g[ni] {
				continue
			}
			if !s.seen[ni] {
				res.NewFrontier = append(res.NewFrontier, n)
			}
			s.seen[ni] = true
			s.g[ni] = tentativeG
			s.parent[ni] = current.cell
			s.push(ni, tentativeG, 0)
		}
		if s.open.Len() == 0 {
			res.Status = Exhausted
		}
		return res
	}
	return StepResult{Status: Exhausted}
}
