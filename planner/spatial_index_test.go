package planner

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeIndex_RTreeAgreesWithLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	linear := newNodeIndex(NearestLinear)
	rtree := newNodeIndex(NearestRTree)
	var points []Point

	require.Equal(t, -1, linear.nearest(Point{}))
	require.Equal(t, -1, rtree.nearest(Point{}))

	for i := 0; i < 400; i++ {
		p := Point{X: rng.Float64() * 25, Y: rng.Float64() * 25}
		points = append(points, p)
		linear.insert(i, p)
		rtree.insert(i, p)

		q := Point{X: rng.Float64() * 25, Y: rng.Float64() * 25}
		li, ri := linear.nearest(q), rtree.nearest(q)
		require.InDelta(t, q.Distance(points[li]), q.Distance(points[ri]), 1e-6, "query %v", q)
	}
}

func TestSteer(t *testing.T) {
	from := Point{X: 1, Y: 1}
	require.Equal(t, Point{X: 2, Y: 1.5}, steer(from, Point{X: 2, Y: 1.5}, 2))
	got := steer(from, Point{X: 1, Y: 11}, 2)
	require.InDelta(t, 1.0, got.X, 1e-12)
	require.InDelta(t, 3.0, got.Y, 1e-12)
}

func TestTree_PathTo(t *testing.T) {
	var tr tree
	root := tr.add(Point{X: 0.5, Y: 0.5}, -1)
	a := tr.add(Point{X: 2, Y: 0.5}, root)
	tr.add(Point{X: 0.5, Y: 2}, root)
	b := tr.add(Point{X: 3.5, Y: 0.5}, a)

	require.Equal(t, []Point{{X: 0.5, Y: 0.5}, {X: 2, Y: 0.5}, {X: 3.5, Y: 0.5}}, tr.pathTo(b))
	require.Len(t, tr.edges(), 3)
	require.Equal(t, Edge{From: Point{X: 2, Y: 0.5}, To: Point{X: 3.5, Y: 0.5}}, tr.edges()[2])
}
