package planner

// Layout describes a grid to build or reset to.
type Layout struct {
	Width     int    `json:"width" yaml:"width"`
	Height    int    `json:"height" yaml:"height"`
	Start     Cell   `json:"start" yaml:"start"`
	Goal      Cell   `json:"goal" yaml:"goal"`
	Obstacles []Cell `json:"obstacles,omitempty" yaml:"obstacles,omitempty"`
}

// DefaultLayout returns the 25x25 demo grid: start (2,12), goal (22,12) and
// two vertical walls, each leaving a gap at one end.
func DefaultLayout() Layout {
	l := Layout{Width: 25, Height: 25, Start: Cell{2, 12}, Goal: Cell{22, 12}}
	for y := 0; y < 19; y++ {
		l.Obstacles = append(l.Obstacles, Cell{8, y})
	}
	for y := 6; y < 25; y++ {
		l.Obstacles = append(l.Obstacles, Cell{16, y})
	}
	return l
}

// Grid is a rectangular occupancy matrix with a start and a goal cell.
// Start and goal are always empty. Every accepted write bumps the revision,
// which sessions use to notice edits made behind the controller's back.
type Grid struct {
	width, height int
	blocked       []bool
	start, goal   Cell
	revision      uint64
}

// NewGrid builds a grid from a layout. Listed obstacles that are out of
// bounds or cover the start or goal are ignored.
func NewGrid(l Layout) (*Grid, error) {
	g := &Grid{}
	if err := g.load(l); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) load(l Layout) error {
	inside := func(c Cell) bool { return c.X >= 0 && c.X < l.Width && c.Y >= 0 && c.Y < l.Height }
	if l.Width <= 0 || l.Height <= 0 || !inside(l.Start) || !inside(l.Goal) {
		return ErrInvalidGrid
	}
	g.width, g.height = l.Width, l.Height
	g.blocked = make([]bool, l.Width*l.Height)
	g.start, g.goal = l.Start, l.Goal
	for _, c := range l.Obstacles {
		if g.InBounds(c) && c != g.start && c != g.goal {
			g.blocked[g.index(c)] = true
		}
	}
	g.revision++
	return nil
}

// Reset restores the grid to the given layout.
func (g *Grid) Reset(l Layout) error {
	return g.load(l)
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Start() Cell { return g.start }
func (g *Grid) Goal() Cell  { return g.goal }

// Revision increases on every accepted write.
func (g *Grid) Revision() uint64 { return g.revision }

// InBounds reports whether c lies within the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// IsBlocked reports whether c is an obstacle. Out-of-range cells are a caller
// bug and yield a *CoordinateError.
func (g *Grid) IsBlocked(c Cell) (bool, error) {
	if !g.InBounds(c) {
		return false, &CoordinateError{Cell: c, Width: g.width, Height: g.height}
	}
	return g.blocked[g.index(c)], nil
}

// blockedAt treats out-of-range cells as blocked.
func (g *Grid) blockedAt(c Cell) bool {
	return !g.InBounds(c) || g.blocked[g.index(c)]
}

// SetObstacle marks c as an obstacle. It returns false, and changes nothing,
// for the start, the goal and out-of-range cells.
func (g *Grid) SetObstacle(c Cell) bool {
	return g.setBlocked(c, true)
}

// ClearObstacle marks c as empty. It returns false for the start, the goal and
// out-of-range cells.
func (g *Grid) ClearObstacle(c Cell) bool {
	return g.setBlocked(c, false)
}

func (g *Grid) setBlocked(c Cell, v bool) bool {
	if !g.InBounds(c) || c == g.start || c == g.goal {
		return false
	}
	g.blocked[g.index(c)] = v
	g.revision++
	return true
}

// SetStart moves the start marker. Obstacles and out-of-range cells are rejected.
func (g *Grid) SetStart(c Cell) bool {
	if g.blockedAt(c) {
		return false
	}
	g.start = c
	g.revision++
	return true
}

// SetGoal moves the goal marker. Obstacles and out-of-range cells are rejected.
func (g *Grid) SetGoal(c Cell) bool {
	if g.blockedAt(c) {
		return false
	}
	g.goal = c
	g.revision++
	return true
}

// Obstacles lists obstacle cells in row-major order.
func (g *Grid) Obstacles() []Cell {
	var out []Cell
	for i, b := range g.blocked {
		if b {
			out = append(out, g.cell(i))
		}
	}
	return out
}

// Layout captures the current grid so it can be rebuilt later.
func (g *Grid) Layout() Layout {
	return Layout{Width: g.width, Height: g.height, Start: g.start, Goal: g.goal, Obstacles: g.Obstacles()}
}

func (g *Grid) size() int { return g.width * g.height }

// index maps c to a row-major index: y*width + x.
func (g *Grid) index(c Cell) int { return c.Y*g.width + c.X }

func (g *Grid) cell(i int) Cell { return Cell{X: i % g.width, Y: i / g.width} }
