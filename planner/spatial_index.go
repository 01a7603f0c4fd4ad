package planner

import (
	"math"

	"github.com/dhconnelly/rtreego"
)

// NearestIndex selects how RRT finds the tree node closest to a sample.
type NearestIndex string

const (
	// NearestRTree keeps tree nodes in an R-tree.
	NearestRTree NearestIndex = "rtree"
	// NearestLinear scans every node.
	NearestLinear NearestIndex = "linear"
)

// pointTolerance is the half-size of the box each node occupies in the R-tree.
const pointTolerance = 1e-9

// nodeIndex answers nearest-node queries over the RRT arena.
type nodeIndex interface {
	insert(id int, p Point)
	nearest(p Point) int
}

func newNodeIndex(kind NearestIndex) nodeIndex {
	if kind == NearestLinear {
		return &linearIndex{}
	}
	return &rtreeIndex{tree: rtreego.NewTree(2, 25, 50)}
}

// linearIndex finds the nearest node by scanning in insertion order; the
// earliest node wins ties.
type linearIndex struct {
	points []Point
}

func (li *linearIndex) insert(_ int, p Point) { li.points = append(li.points, p) }

func (li *linearIndex) nearest(p Point) int {
	nearestID := -1
	minDist := math.MaxFloat64
	for i, q := range li.points {
		if d := p.Distance(q); d < minDist {
			minDist = d
			nearestID = i
		}
	}
	return nearestID
}

// nodeEntry wraps an RRT node for R-tree storage
type nodeEntry struct {
	id   int
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *nodeEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// rtreeIndex keeps RRT nodes in an R-tree.
type rtreeIndex struct {
	tree *rtreego.Rtree
}

func (ri *rtreeIndex) insert(id int, p Point) {
	ri.tree.Insert(&nodeEntry{id: id, bbox: rtreego.Point{p.X, p.Y}.ToRect(pointTolerance)})
}

func (ri *rtreeIndex) nearest(p Point) int {
	if ri.tree.Size() == 0 {
		return -1
	}
	item := ri.tree.NearestNeighbor(rtreego.Point{p.X, p.Y})
	if item == nil {
		return -1
	}
	return item.(*nodeEntry).id
}
