package planner

import (
	"fmt"
	"math/rand"
)

// RRTConfig holds the tuning parameters of the RRT strategy.
type RRTConfig struct {
	MaxIterations int          `json:"maxIterations" yaml:"max_iterations"`
	StepLength    float64      `json:"stepLength" yaml:"step_length"`
	GoalBias      float64      `json:"goalBias" yaml:"goal_bias"`
	Seed          int64        `json:"seed" yaml:"seed"`
	Nearest       NearestIndex `json:"nearest" yaml:"nearest"`
}

// DefaultRRTConfig returns 2000 iterations, a step of 2 grid units and a 10% goal bias.
func DefaultRRTConfig() RRTConfig {
	return RRTConfig{
		MaxIterations: 2000,
		StepLength:    2,
		GoalBias:      0.1,
		Seed:          1,
		Nearest:       NearestRTree,
	}
}

// Validate checks the parameter ranges.
func (c RRTConfig) Validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations %d", ErrInvalidRRTConfig, c.MaxIterations)
	}
	if c.StepLength <= 0 {
		return fmt.Errorf("%w: step length %g", ErrInvalidRRTConfig, c.StepLength)
	}
	if c.GoalBias < 0 || c.GoalBias > 1 {
		return fmt.Errorf("%w: goal bias %g", ErrInvalidRRTConfig, c.GoalBias)
	}
	switch c.Nearest {
	case "", NearestRTree, NearestLinear:
	default:
		return fmt.Errorf("%w: nearest index %q", ErrInvalidRRTConfig, c.Nearest)
	}
	return nil
}

// rrtSearch grows a tree from the start cell center, one sample attempt per
// step. The first node that connects to the goal ends the search; the path
// is not optimized.
type rrtSearch struct {
	grid       *Grid
	cfg        RRTConfig
	rng        *rand.Rand
	tree       tree
	index      nodeIndex
	goal       Point
	iterations int
	path       []Point
}

func newRRT(grid *Grid, cfg RRTConfig) *rrtSearch {
	s := &rrtSearch{
		grid:  grid,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		index: newNodeIndex(cfg.Nearest),
		goal:  CellCenter(grid.Goal()),
	}
	root := CellCenter(grid.Start())
	s.index.insert(s.tree.add(root, -1), root)
	return s
}

func (s *rrtSearch) step() StepResult {
	if s.iterations >= s.cfg.MaxIterations {
		return StepResult{Status: Exhausted}
	}
	s.iterations++
	res := StepResult{Status: Running}
	if s.iterations == 1 && s.grid.Start() == s.grid.Goal() {
		return s.connect(0, res)
	}

	sample := s.goal
	if s.rng.Float64() >= s.cfg.GoalBias {
		sample = Point{
			X: s.rng.Float64() * float64(s.grid.Width()),
			Y: s.rng.Float64() * float64(s.grid.Height()),
		}
	}

	nearestID := s.index.nearest(sample)
	from := s.tree.nodes[nearestID].point
	next := steer(from, sample, s.cfg.StepLength)
	switch {
	case next == from, !s.grid.contains(next), !s.grid.IsSegmentClear(from, next):
		return s.exhaustedOr(res)
	}

	id := s.tree.add(next, nearestID)
	s.index.insert(id, next)
	res.NewNodes = []Point{next}

	if next.Distance(s.goal) <= s.cfg.StepLength && s.grid.IsSegmentClear(next, s.goal) {
		return s.connect(id, res)
	}
	return s.exhaustedOr(res)
}

// connect appends the goal under node id and finishes the search.
func (s *rrtSearch) connect(id int, res StepResult) StepResult {
	goalID := id
	if s.tree.nodes[id].point != s.goal {
		goalID = s.tree.add(s.goal, id)
		s.index.insert(goalID, s.goal)
		res.NewNodes = append(res.NewNodes, s.goal)
	}
	s.path = s.tree.pathTo(goalID)
	res.Status = Found
	res.Path = cellsOf(s.path)
	return res
}

func (s *rrtSearch) exhaustedOr(res StepResult) StepResult {
	if s.iterations >= s.cfg.MaxIterations {
		res.Status = Exhausted
	}
	return res
}

// fill reports every node, with Visited holding the containing cell of each
// one in insertion order.
func (s *rrtSearch) fill(snap *Snapshot) {
	snap.Nodes = s.tree.points()
	snap.Visited = make([]Cell, len(snap.Nodes))
	for i, p := range snap.Nodes {
		snap.Visited[i] = p.Cell()
	}
	snap.Tree = s.tree.edges()
	snap.ExploredCount = len(s.tree.nodes)
}
