package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-planner/planner"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRenderASCII(t *testing.T) {
	l := planner.Layout{Width: 4, Height: 2, Start: planner.Cell{X: 0, Y: 0}, Goal: planner.Cell{X: 3, Y: 1},
		Obstacles: []planner.Cell{{X: 2, Y: 0}}}
	g, err := planner.NewGrid(l)
	require.NoError(t, err)

	snap := planner.Snapshot{
		Visited:  []planner.Cell{{X: 1, Y: 0}},
		Frontier: []planner.Cell{{X: 1, Y: 1}},
	}
	assert.Equal(t, "+----+\n|S.# |\n| o G|\n+----+\n", renderASCII(g, snap))

	snap.Path = []planner.Cell{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}}
	assert.Equal(t, "+----+\n|S.# |\n| **G|\n+----+\n", renderASCII(g, snap))
}

func TestRunAnimated_WithoutTicker(t *testing.T) {
	c, err := planner.NewController(planner.DefaultLayout(), planner.WithLogger(quietLogger))
	require.NoError(t, err)
	export := filepath.Join(t.TempDir(), "out.geojson")

	var out bytes.Buffer
	opts := &runOptions{tick: 0, stepsPerTick: 5, quiet: true, exportPath: export, simplify: 0.5}
	require.NoError(t, runAnimated(context.Background(), c, planner.AStar, opts, &out))

	assert.Equal(t, planner.Found, c.Status())
	assert.True(t, strings.Contains(out.String(), "astar: found after"), out.String())
	data, err := os.ReadFile(export)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"path"`)
}

func TestRunAnimated_CanceledContext(t *testing.T) {
	c, err := planner.NewController(planner.DefaultLayout(), planner.WithLogger(quietLogger))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, runAnimated(ctx, c, planner.Dijkstra, &runOptions{quiet: true}, &out))
	assert.Equal(t, planner.Canceled, c.Status())
	assert.Contains(t, out.String(), "canceled after 0 steps")
}

func TestRootCommand_RunSubcommand(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("grid:\n  width: 6\n  height: 3\n  start: {x: 0, y: 1}\n  goal: {x: 5, y: 1}\n  obstacles: []\nlog:\n  level: error\n"), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "run", "--algorithm", "dijkstra", "--tick", "0", "--quiet"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "dijkstra: found after")
	assert.Contains(t, out.String(), "|S****G|")
}
