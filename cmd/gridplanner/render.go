package main

import (
	"strings"

	"grid-planner/planner"
)

// Glyphs used by renderASCII.
const (
	glyphEmpty    = ' '
	glyphObstacle = '#'
	glyphStart    = 'S'
	glyphGoal     = 'G'
	glyphVisited  = '.'
	glyphFrontier = 'o'
	glyphNode     = '+'
	glyphPath     = '*'
)

// renderASCII draws one character per cell, row by row. Later layers win:
// visited, frontier, RRT nodes, path, then start and goal.
func renderASCII(g *planner.Grid, snap planner.Snapshot) string {
	w, h := g.Width(), g.Height()
	canvas := make([][]byte, h)
	for y := range canvas {
		canvas[y] = []byte(strings.Repeat(string(glyphEmpty), w))
	}
	put := func(c planner.Cell, glyph byte) {
		if g.InBounds(c) {
			canvas[c.Y][c.X] = glyph
		}
	}
	for _, c := range g.Obstacles() {
		put(c, glyphObstacle)
	}
	for _, c := range snap.Visited {
		put(c, glyphVisited)
	}
	for _, c := range snap.Frontier {
		put(c, glyphFrontier)
	}
	for _, p := range snap.Nodes {
		put(p.Cell(), glyphNode)
	}
	for _, c := range snap.Path {
		put(c, glyphPath)
	}
	put(g.Start(), glyphStart)
	put(g.Goal(), glyphGoal)

	var b strings.Builder
	b.Grow((w + 3) * (h + 2))
	border := "+" + strings.Repeat("-", w) + "+\n"
	b.WriteString(border)
	for _, row := range canvas {
		b.WriteByte('|')
		b.Write(row)
		b.WriteString("|\n")
	}
	b.WriteString(border)
	return b.String()
}
