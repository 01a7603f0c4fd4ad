package planner_test

import (
	"io"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"grid-planner/planner"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func emptyLayout(w, h int, start, goal planner.Cell) planner.Layout {
	return planner.Layout{Width: w, Height: h, Start: start, Goal: goal}
}

// wallLayout is the 25x25 grid with a gapless wall at x=12.
func wallLayout() planner.Layout {
	l := emptyLayout(25, 25, planner.Cell{X: 2, Y: 12}, planner.Cell{X: 22, Y: 12})
	for y := 0; y < 25; y++ {
		l.Obstacles = append(l.Obstacles, planner.Cell{X: 12, Y: y})
	}
	return l
}

// randomLayout scatters obstacles with the given density and picks distinct
// start and goal cells.
func randomLayout(rng *rand.Rand, w, h int, density float64) planner.Layout {
	l := planner.Layout{Width: w, Height: h}
	l.Start = planner.Cell{X: rng.Intn(w), Y: rng.Intn(h)}
	for {
		l.Goal = planner.Cell{X: rng.Intn(w), Y: rng.Intn(h)}
		if l.Goal != l.Start {
			break
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rng.Float64() < density {
				l.Obstacles = append(l.Obstacles, planner.Cell{X: x, Y: y})
			}
		}
	}
	return l
}

func newController(t *testing.T, l planner.Layout, opts ...planner.Option) *planner.Controller {
	t.Helper()
	opts = append([]planner.Option{planner.WithLogger(quietLogger)}, opts...)
	c, err := planner.NewController(l, opts...)
	require.NoError(t, err)
	return c
}

func run(t *testing.T, c *planner.Controller, alg planner.Algorithm) planner.Snapshot {
	t.Helper()
	require.NoError(t, c.Start(alg))
	return c.Drain()
}

// referenceCosts relaxes every allowed move until nothing changes and
// returns the cost from start to each cell (+Inf when unreachable).
func referenceCosts(g *planner.Grid) map[planner.Cell]float64 {
	dist := make(map[planner.Cell]float64, g.Width()*g.Height())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			dist[planner.Cell{X: x, Y: y}] = math.Inf(1)
		}
	}
	dist[g.Start()] = 0
	for changed := true; changed; {
		changed = false
		for c, d := range dist {
			if math.IsInf(d, 1) {
				continue
			}
			for _, n := range planner.Neighbors8(g, c) {
				if blocked, _ := g.IsBlocked(n); blocked {
					continue
				}
				if nd := d + planner.Euclidean(c, n); nd < dist[n]-1e-12 {
					dist[n] = nd
					changed = true
				}
			}
		}
	}
	return dist
}

// requireValidPath checks endpoints, unit moves, free cells and the corner rule.
func requireValidPath(t *testing.T, g *planner.Grid, path []planner.Cell) {
	t.Helper()
	require.NotEmpty(t, path)
	require.Equal(t, g.Start(), path[0])
	require.Equal(t, g.Goal(), path[len(path)-1])
	for i, c := range path {
		blocked, err := g.IsBlocked(c)
		require.NoError(t, err)
		require.False(t, blocked, "path crosses obstacle at %v", c)
		if i == 0 {
			continue
		}
		p := path[i-1]
		dx, dy := c.X-p.X, c.Y-p.Y
		require.True(t, dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1 && (dx != 0 || dy != 0),
			"non-adjacent step %v -> %v", p, c)
		if dx != 0 && dy != 0 {
			b1, _ := g.IsBlocked(planner.Cell{X: p.X + dx, Y: p.Y})
			b2, _ := g.IsBlocked(planner.Cell{X: p.X, Y: p.Y + dy})
			require.False(t, b1 || b2, "diagonal step %v -> %v cuts a corner", p, c)
		}
	}
}
