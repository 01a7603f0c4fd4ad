package planner

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// strategy is one of astarSearch, dijkstraSearch or rrtSearch.
type strategy interface {
	step() StepResult
	fill(snap *Snapshot)
}

// session is the transient state of one run. It is never reused.
type session struct {
	id        string
	algorithm Algorithm
	strategy  strategy
	status    Status
	steps     int
	revision  uint64
	last      StepResult
	path      []Cell
	waypoints []Point
	cost      float64
}

// Controller drives at most one session over a grid. It is not safe for
// concurrent use; callers that tick from several goroutines must serialize.
type Controller struct {
	grid    *Grid
	layout  Layout
	rrt     RRTConfig
	logger  *slog.Logger
	session *session
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for session lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithRRTConfig overrides DefaultRRTConfig.
func WithRRTConfig(cfg RRTConfig) Option {
	return func(c *Controller) { c.rrt = cfg }
}

// NewController builds the grid from layout. Reset restores that layout.
func NewController(layout Layout, opts ...Option) (*Controller, error) {
	grid, err := NewGrid(layout)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		grid:   grid,
		layout: layout,
		rrt:    DefaultRRTConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.rrt.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Grid exposes the grid for queries. Writes made directly on it cancel the
// active session at the next tick; prefer the Controller's edit methods.
func (c *Controller) Grid() *Grid { return c.grid }

// Layout returns the layout Reset restores.
func (c *Controller) Layout() Layout { return c.layout }

// SetLayout replaces the reset layout and resets the grid to it.
func (c *Controller) SetLayout(layout Layout) error {
	if err := c.grid.Reset(layout); err != nil {
		return err
	}
	c.layout = layout
	c.Discard()
	return nil
}

// Start discards any previous session and begins a new one running alg.
func (c *Controller) Start(alg Algorithm) error {
	var st strategy
	switch alg {
	case AStar:
		st = newAStar(c.grid)
	case Dijkstra:
		st = newDijkstra(c.grid)
	case RRT:
		st = newRRT(c.grid, c.rrt)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(alg))
	}
	c.Discard()
	c.session = &session{
		id:        uuid.NewString(),
		algorithm: alg,
		strategy:  st,
		status:    Running,
		revision:  c.grid.Revision(),
	}
	c.logger.Debug("session started",
		"session", c.session.id,
		"algorithm", alg.String(),
		"start", c.grid.Start(),
		"goal", c.grid.Goal())
	return nil
}

// AdvanceOneStep performs one step of the running session and reports
// whether it did. It does nothing unless the status is Running. A grid that
// changed since Start cancels the session instead.
func (c *Controller) AdvanceOneStep() bool {
	s := c.session
	if s == nil || s.status != Running {
		return false
	}
	if s.revision != c.grid.Revision() {
		s.status = Canceled
		c.logger.Debug("session canceled by grid edit", "session", s.id, "steps", s.steps)
		return false
	}

	res := s.strategy.step()
	s.steps++
	s.last = res
	switch res.Status {
	case Found:
		s.status = Found
		s.path = res.Path
		if rrt, ok := s.strategy.(*rrtSearch); ok {
			s.waypoints = rrt.path
			s.cost = PolylineLength(rrt.path)
		} else {
			s.waypoints = Waypoints(res.Path)
			s.cost = PathCost(res.Path)
		}
	case Exhausted:
		s.status = Exhausted
	}
	if s.status.Terminal() {
		c.logger.Debug("session finished",
			"session", s.id,
			"algorithm", s.algorithm.String(),
			"status", s.status.String(),
			"steps", s.steps,
			"cost", s.cost)
	}
	return true
}

// Drain steps until the session stops running and returns the final snapshot.
func (c *Controller) Drain() Snapshot {
	for c.AdvanceOneStep() {
	}
	return c.Snapshot()
}

// Pause suspends a running session.
func (c *Controller) Pause() bool {
	return c.transition(Running, Paused)
}

// Resume continues a paused session.
func (c *Controller) Resume() bool {
	return c.transition(Paused, Running)
}

// Cancel aborts a running or paused session. Its partial state stays
// available through Snapshot.
func (c *Controller) Cancel() bool {
	if c.session == nil {
		return false
	}
	if c.transition(Running, Canceled) || c.transition(Paused, Canceled) {
		c.logger.Debug("session canceled", "session", c.session.id, "steps", c.session.steps)
		return true
	}
	return false
}

func (c *Controller) transition(from, to Status) bool {
	if c.session == nil || c.session.status != from {
		return false
	}
	c.session.status = to
	return true
}

// Discard drops the session, leaving the controller Idle.
func (c *Controller) Discard() {
	c.session = nil
}

// Reset restores the grid to the controller's layout and discards the session.
func (c *Controller) Reset() {
	// the layout was validated by NewController or SetLayout
	_ = c.grid.Reset(c.layout)
	c.Discard()
}

// SetObstacle forwards to Grid.SetObstacle and discards the session if the edit is accepted.
func (c *Controller) SetObstacle(cell Cell) bool { return c.edit(c.grid.SetObstacle(cell)) }

// ClearObstacle forwards to Grid.ClearObstacle and discards the session if the edit is accepted.
func (c *Controller) ClearObstacle(cell Cell) bool { return c.edit(c.grid.ClearObstacle(cell)) }

// SetStart forwards to Grid.SetStart and discards the session if the edit is accepted.
func (c *Controller) SetStart(cell Cell) bool { return c.edit(c.grid.SetStart(cell)) }

// SetGoal forwards to Grid.SetGoal and discards the session if the edit is accepted.
func (c *Controller) SetGoal(cell Cell) bool { return c.edit(c.grid.SetGoal(cell)) }

func (c *Controller) edit(accepted bool) bool {
	if accepted {
		c.Discard()
	}
	return accepted
}

// Status returns Idle when no session exists.
func (c *Controller) Status() Status {
	if c.session == nil {
		return Idle
	}
	return c.session.status
}

// LastStep returns the result of the most recent step of the session.
func (c *Controller) LastStep() StepResult {
	if c.session == nil {
		return StepResult{}
	}
	return c.session.last
}

// Snapshot copies the session state for rendering.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{Status: Idle}
	if s := c.session; s != nil {
		snap.SessionID = s.id
		snap.Algorithm = s.algorithm
		snap.Status = s.status
		snap.Steps = s.steps
		s.strategy.fill(&snap)
		snap.Path = append([]Cell(nil), s.path...)
		snap.Waypoints = append([]Point(nil), s.waypoints...)
		snap.Cost = s.cost
	}
	if snap.Visited == nil {
		snap.Visited = []Cell{}
	}
	if snap.Frontier == nil {
		snap.Frontier = []Cell{}
	}
	if snap.Nodes == nil {
		snap.Nodes = []Point{}
	}
	if snap.Tree == nil {
		snap.Tree = []Edge{}
	}
	if snap.Path == nil {
		snap.Path = []Cell{}
	}
	if snap.Waypoints == nil {
		snap.Waypoints = []Point{}
	}
	return snap
}
