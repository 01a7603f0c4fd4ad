package planner

// Edge links an RRT node to its parent, both given as positions.
type Edge struct {
	From Point `json:"from"` // parent
	To   Point `json:"to"`   // child
}

// rrtNode is an entry of the append-only RRT arena. parent is an index into
// the arena, -1 for the root.
type rrtNode struct {
	point  Point
	parent int
}

// tree is the append-only RRT arena.
type tree struct {
	nodes []rrtNode
}

func (t *tree) add(p Point, parent int) int {
	t.nodes = append(t.nodes, rrtNode{point: p, parent: parent})
	return len(t.nodes) - 1
}

// edges lists one edge per non-root node, in insertion order.
func (t *tree) edges() []Edge {
	out := make([]Edge, 0, len(t.nodes))
	for _, n := range t.nodes {
		if n.parent >= 0 {
			out = append(out, Edge{From: t.nodes[n.parent].point, To: n.point})
		}
	}
	return out
}

func (t *tree) points() []Point {
	out := make([]Point, len(t.nodes))
	for i, n := range t.nodes {
		out[i] = n.point
	}
	return out
}

// pathTo walks parent links from node i and returns positions root-first.
func (t *tree) pathTo(i int) []Point {
	var path []Point
	for ; i >= 0; i = t.nodes[i].parent {
		path = append(path, t.nodes[i].point)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}
