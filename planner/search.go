package planner

import "container/heap"

// openItem is an entry in the open heap of the grid searches.
type openItem struct {
	cell  int     // row-major cell index
	g     float64 // cost from start
	h     float64 // heuristic to goal, 0 for Dijkstra
	f     float64 // g + h
	seq   int     // insertion order
	index int     // index in the heap
}

// openQueue implements heap.Interface ordered by f, then h, then insertion
// order.
type openQueue []*openItem

func (pq openQueue) Len() int { return len(pq) }

func (pq openQueue) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (pq openQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *openQueue) Push(x interface{}) {
	item := x.(*openItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *openQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[0 : n-1]
	return item
}

// gridState is the state shared by A* and Dijkstra. Nodes live in arrays
// indexed by the row-major cell index; parent links are indices, -1 for none.
type gridState struct {
	grid    *Grid
	goal    int
	g       []float64
	parent  []int
	seen    []bool
	closed  []bool
	visited []Cell
	open    openQueue
	seq     int
	scratch []Cell
	done    bool
}

func newGridState(grid *Grid) gridState {
	n := grid.size()
	s := gridState{
		grid:    grid,
		goal:    grid.index(grid.Goal()),
		g:       make([]float64, n),
		parent:  make([]int, n),
		seen:    make([]bool, n),
		closed:  make([]bool, n),
		scratch: make([]Cell, 0, 8),
	}
	for i := range s.parent {
		s.parent[i] = -1
	}
	start := grid.index(grid.Start())
	s.seen[start] = true
	return s
}

func (s *gridState) push(cell int, g, h float64) *openItem {
	item := &openItem{cell: cell, g: g, h: h, f: g + h, seq: s.seq}
	s.seq++
	heap.Push(&s.open, item)
	return item
}

func (s *gridState) close(cell int) Cell {
	s.closed[cell] = true
	c := s.grid.cell(cell)
	s.visited = append(s.visited, c)
	return c
}

// found builds the Found result for the goal cell.
func (s *gridState) found() StepResult {
	s.done = true
	return StepResult{Status: Found, Path: reconstructCells(s.grid, s.parent, s.goal)}
}

// frontier lists seen but not yet closed cells in row-major order. The goal
// left the open set when it was popped.
func (s *gridState) frontier() []Cell {
	var out []Cell
	for i, seen := range s.seen {
		if seen && !s.closed[i] && !(s.done && i == s.goal) {
			out = append(out, s.grid.cell(i))
		}
	}
	return out
}

func (s *gridState) fill(snap *Snapshot) {
	snap.Visited = append([]Cell(nil), s.visited...)
	snap.Frontier = s.frontier()
	snap.ExploredCount = len(s.visited)
}
