// Package planner is an incremental path-planning engine for small 2-D
// occupancy grids.
//
// A Controller owns one Grid and at most one active session. A session runs
// one of three strategies (A*, Dijkstra or RRT) one logical step at a time:
// a caller-provided tick source calls AdvanceOneStep and reads a Snapshot
// after each tick to animate the visited set, the frontier and the RRT tree.
//
// The engine never sleeps, polls or spawns goroutines. Pausing, resuming and
// canceling take effect between ticks.
package planner
