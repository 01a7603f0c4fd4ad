package planner_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-planner/planner"
)

func TestAStar_StraightCorridor(t *testing.T) {
	c := newController(t, emptyLayout(25, 25, planner.Cell{X: 2, Y: 12}, planner.Cell{X: 22, Y: 12}))
	snap := run(t, c, planner.AStar)

	require.Equal(t, planner.Found, snap.Status)
	require.Len(t, snap.Path, 21)
	for i, cell := range snap.Path {
		assert.Equal(t, planner.Cell{X: 2 + i, Y: 12}, cell)
	}
	assert.Equal(t, 20.0, snap.Cost)
	// Only the corridor itself is expanded before the goal pops.
	assert.Len(t, snap.Visited, 20)
	for _, v := range snap.Visited {
		assert.Equal(t, 12, v.Y, "expanded off corridor: %v", v)
	}
	assert.Equal(t, 21, snap.Steps)
	assert.Equal(t, len(snap.Visited), snap.ExploredCount)
}

func TestFound_GoalLeavesFrontier(t *testing.T) {
	for _, alg := range []planner.Algorithm{planner.AStar, planner.Dijkstra} {
		c := newController(t, planner.DefaultLayout())
		snap := run(t, c, alg)

		require.Equal(t, planner.Found, snap.Status, alg.String())
		assert.NotContains(t, snap.Frontier, c.Grid().Goal(), alg.String())
		assert.NotEmpty(t, snap.Frontier, alg.String())
	}
}

func TestFullWall_AllStrategiesExhaust(t *testing.T) {
	rrtCfg := planner.DefaultRRTConfig()
	rrtCfg.MaxIterations = 400

	for _, alg := range []planner.Algorithm{planner.AStar, planner.Dijkstra, planner.RRT} {
		t.Run(alg.String(), func(t *testing.T) {
			c := newController(t, wallLayout(), planner.WithRRTConfig(rrtCfg))
			snap := run(t, c, alg)

			require.Equal(t, planner.Exhausted, snap.Status)
			assert.Empty(t, snap.Path)
			assert.Zero(t, snap.Cost)
			switch alg {
			case planner.RRT:
				assert.Equal(t, rrtCfg.MaxIterations, snap.Steps)
				for _, n := range snap.Nodes {
					assert.Less(t, n.X, 12.0, "node crossed the wall")
				}
			default:
				// Every cell left of the wall, and nothing else.
				assert.Len(t, snap.Visited, 12*25)
				assert.LessOrEqual(t, snap.Steps, 25*25)
				assert.Empty(t, snap.Frontier)
			}
		})
	}
}

func TestGridSearch_OptimalOnRandomGrids(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 40; i++ {
		l := randomLayout(rng, 14, 11, 0.3)
		c := newController(t, l)
		want := referenceCosts(c.Grid())[l.Goal]

		for _, alg := range []planner.Algorithm{planner.AStar, planner.Dijkstra} {
			snap := run(t, c, alg)
			limit := l.Width*l.Height + 1
			require.LessOrEqual(t, snap.Steps, limit, "%s did not terminate in time", alg)

			if math.IsInf(want, 1) {
				require.Equal(t, planner.Exhausted, snap.Status, "%s on %s", alg, spew.Sdump(l))
				continue
			}
			require.Equal(t, planner.Found, snap.Status, "%s on %s", alg, spew.Sdump(l))
			requireValidPath(t, c.Grid(), snap.Path)
			require.InDelta(t, want, snap.Cost, 1e-9, "%s on %s", alg, spew.Sdump(l))
			require.InDelta(t, snap.Cost, planner.PathCost(snap.Path), 1e-9)
		}
	}
}

func TestGridSearch_ClosedCellsExpandOnce(t *testing.T) {
	c := newController(t, planner.DefaultLayout())
	for _, alg := range []planner.Algorithm{planner.AStar, planner.Dijkstra} {
		snap := run(t, c, alg)
		require.Equal(t, planner.Found, snap.Status)
		seen := make(map[planner.Cell]bool, len(snap.Visited))
		for _, v := range snap.Visited {
			require.False(t, seen[v], "%s expanded %v twice", alg, v)
			seen[v] = true
		}
		for _, f := range snap.Frontier {
			require.False(t, seen[f], "%s frontier holds closed cell %v", alg, f)
		}
	}
}

func TestDijkstra_DeterministicUnderTies(t *testing.T) {
	// An open field has many equal-cost paths.
	l := emptyLayout(12, 12, planner.Cell{X: 1, Y: 1}, planner.Cell{X: 10, Y: 7})
	first := run(t, newController(t, l), planner.Dijkstra)
	for i := 0; i < 5; i++ {
		again := run(t, newController(t, l), planner.Dijkstra)
		require.Equal(t, first.Path, again.Path)
		require.Equal(t, first.Visited, again.Visited)
	}
	astar := run(t, newController(t, l), planner.AStar)
	assert.InDelta(t, first.Cost, astar.Cost, 1e-9)
	assert.LessOrEqual(t, len(astar.Visited), len(first.Visited))
}

func TestGridSearch_StartIsGoal(t *testing.T) {
	l := emptyLayout(3, 3, planner.Cell{X: 1, Y: 1}, planner.Cell{X: 1, Y: 1})
	for _, alg := range []planner.Algorithm{planner.AStar, planner.Dijkstra, planner.RRT} {
		snap := run(t, newController(t, l), alg)
		require.Equal(t, planner.Found, snap.Status, alg.String())
		assert.Equal(t, []planner.Cell{{X: 1, Y: 1}}, snap.Path)
		assert.Equal(t, 1, snap.Steps)
		assert.Zero(t, snap.Cost)
	}
}

func TestAStar_StepResultDeltas(t *testing.T) {
	c := newController(t, emptyLayout(5, 5, planner.Cell{X: 2, Y: 2}, planner.Cell{X: 4, Y: 2}))
	require.NoError(t, c.Start(planner.AStar))
	require.True(t, c.AdvanceOneStep())

	res := c.LastStep()
	assert.Equal(t, planner.Running, res.Status)
	assert.Equal(t, []planner.Cell{{X: 2, Y: 2}}, res.NewlyVisited)
	assert.Len(t, res.NewFrontier, 8)
	assert.Len(t, c.Snapshot().Frontier, 8)
}
