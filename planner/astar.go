package planner

import "container/heap"

// astarSearch expands cells in order of f = g + Octile(cell, goal). A cell
// already in the open heap has its key lowered in place.
type astarSearch struct {
	gridState
	inOpen map[int]*openItem
}

func newAStar(grid *Grid) *astarSearch {
	s := &astarSearch{gridState: newGridState(grid), inOpen: make(map[int]*openItem)}
	start := grid.index(grid.Start())
	s.inOpen[start] = s.push(start, 0, Octile(grid.Start(), grid.Goal()))
	return s
}

func (s *astarSearch) step() StepResult {
	if s.open.Len() == 0 {
		return StepResult{Status: Exhausted}
	}
	current := heap.Pop(&s.open).(*openItem)
	delete(s.inOpen, current.cell)

	if current.cell == s.goal {
		return s.found()
	}
	c := s.close(current.cell)
	res := StepResult{Status: Running, NewlyVisited: []Cell{c}}

	goal := s.grid.Goal()
	for _, n := range appendNeighbors8(s.scratch[:0], s.grid, c) {
		ni := s.grid.index(n)
		if s.closed[ni] || s.grid.blocked[ni] {
			continue
		}
		tentativeG := current.g + Euclidean(c, n)
		if s.seen[ni] && tentativeG >= s.g[ni] {
			continue
		}
		s.seen[ni] = true
		s.g[ni] = tentativeG
		s.parent[ni] = current.cell
		if item, ok := s.inOpen[ni]; ok {
			item.g = tentativeG
			item.f = tentativeG + item.h
			heap.Fix(&s.open, item.index)
			continue
		}
		s.inOpen[ni] = s.push(ni, tentativeG, Octile(n, goal))
		res.NewFrontier = append(res.NewFrontier, n)
	}
	if s.open.Len() == 0 {
		res.Status = Exhausted
	}
	return res
}
