package planner

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ObstaclesFromGeoJSON rasterizes a GeoJSON feature collection, in grid
// units, onto a width×height grid. Polygons mark the cells whose centers they
// contain, points mark their containing cell and line strings mark every
// cell they pass through. Cells outside the grid are dropped.
func ObstaclesFromGeoJSON(data []byte, width, height int) ([]Cell, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidGrid
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("planner: parse obstacle GeoJSON: %w", err)
	}

	r := rasterizer{width: width, height: height, marked: make([]bool, width*height)}
	for _, feature := range fc.Features {
		r.geometry(feature.Geometry)
	}

	var cells []Cell
	for i, m := range r.marked {
		if m {
			cells = append(cells, Cell{X: i % width, Y: i / width})
		}
	}
	return cells, nil
}

type rasterizer struct {
	width, height int
	marked        []bool
}

func (r *rasterizer) mark(p orb.Point) {
	x, y := int(math.Floor(p[0])), int(math.Floor(p[1]))
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.marked[y*r.width+x] = true
	}
}

func (r *rasterizer) geometry(g orb.Geometry) {
	switch geom := g.(type) {
	case orb.Point:
		r.mark(geom)
	case orb.MultiPoint:
		for _, p := range geom {
			r.mark(p)
		}
	case orb.LineString:
		r.line(geom)
	case orb.MultiLineString:
		for _, ls := range geom {
			r.line(ls)
		}
	case orb.Polygon:
		r.area(geom.Bound(), func(p orb.Point) bool { return planar.PolygonContains(geom, p) })
	case orb.MultiPolygon:
		r.area(geom.Bound(), func(p orb.Point) bool { return planar.MultiPolygonContains(geom, p) })
	case orb.Collection:
		for _, inner := range geom {
			r.geometry(inner)
		}
	}
}

// line marks cells along each segment, sampled every half unit.
func (r *rasterizer) line(ls orb.LineString) {
	for i := 1; i < len(ls); i++ {
		a, b := ls[i-1], ls[i]
		n := int(math.Ceil(2 * planar.Distance(a, b)))
		if n < 1 {
			n = 1
		}
		for j := 0; j <= n; j++ {
			t := float64(j) / float64(n)
			r.mark(orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])})
		}
	}
	if len(ls) == 1 {
		r.mark(ls[0])
	}
}

// area marks cells within bound whose centers satisfy contains.
func (r *rasterizer) area(bound orb.Bound, contains func(orb.Point) bool) {
	x0 := max(0, int(math.Floor(bound.Min[0])))
	y0 := max(0, int(math.Floor(bound.Min[1])))
	x1 := min(r.width-1, int(math.Floor(bound.Max[0])))
	y1 := min(r.height-1, int(math.Floor(bound.Max[1])))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if contains(orb.Point{float64(x) + 0.5, float64(y) + 0.5}) {
				r.marked[y*r.width+x] = true
			}
		}
	}
}

// Feature kinds written by ExportGeoJSON in the "kind" property.
const (
	KindObstacle       = "obstacle"
	KindStart          = "start"
	KindGoal           = "goal"
	KindVisited        = "visited"
	KindFrontier       = "frontier"
	KindTree           = "tree"
	KindPath           = "path"
	KindSimplifiedPath = "path_simplified"
)

// ExportGeoJSON renders the grid and a snapshot as a feature collection in
// grid units. A positive simplifyEpsilon adds a Douglas-Peucker reduced copy
// of the path.
func ExportGeoJSON(grid *Grid, snap Snapshot, simplifyEpsilon float64) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	add := func(kind string, g orb.Geometry) *geojson.Feature {
		f := geojson.NewFeature(g)
		f.Properties["kind"] = kind
		fc.Append(f)
		return f
	}

	for _, c := range grid.Obstacles() {
		f := add(KindObstacle, cellPolygon(c))
		f.Properties["x"] = c.X
		f.Properties["y"] = c.Y
	}
	add(KindStart, CellCenter(grid.Start()).Orb())
	add(KindGoal, CellCenter(grid.Goal()).Orb())

	if len(snap.Visited) > 0 {
		add(KindVisited, cellCenters(snap.Visited))
	}
	if len(snap.Frontier) > 0 {
		add(KindFrontier, cellCenters(snap.Frontier))
	}
	if len(snap.Tree) > 0 {
		mls := make(orb.MultiLineString, len(snap.Tree))
		for i, e := range snap.Tree {
			mls[i] = orb.LineString{e.From.Orb(), e.To.Orb()}
		}
		add(KindTree, mls)
	}
	if len(snap.Waypoints) > 1 {
		f := add(KindPath, lineString(snap.Waypoints))
		f.Properties["algorithm"] = snap.Algorithm.String()
		f.Properties["cost"] = snap.Cost
		f.Properties["cells"] = len(snap.Path)
		if simplifyEpsilon > 0 {
			add(KindSimplifiedPath, lineString(SimplifyPath(snap.Waypoints, simplifyEpsilon)))
		}
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("planner: marshal GeoJSON: %w", err)
	}
	return data, nil
}

func cellPolygon(c Cell) orb.Polygon {
	x, y := float64(c.X), float64(c.Y)
	return orb.Polygon{orb.Ring{{x, y}, {x + 1, y}, {x + 1, y + 1}, {x, y + 1}, {x, y}}}
}

func cellCenters(cells []Cell) orb.MultiPoint {
	mp := make(orb.MultiPoint, len(cells))
	for i, c := range cells {
		mp[i] = CellCenter(c).Orb()
	}
	return mp
}
