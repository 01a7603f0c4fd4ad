package planner

import (
	"errors"
	"fmt"
)

var (
	// ErrCoordinateOutOfBounds is returned by grid queries for cells outside the grid.
	ErrCoordinateOutOfBounds = errors.New("planner: coordinate out of bounds")
	// ErrInvalidGrid indicates a layout that cannot be turned into a grid.
	ErrInvalidGrid = errors.New("planner: invalid grid layout")
	// ErrUnknownAlgorithm indicates an algorithm outside AStar, Dijkstra and RRT.
	ErrUnknownAlgorithm = errors.New("planner: unknown algorithm")
	// ErrInvalidRRTConfig indicates non-positive iterations or step length, or a goal bias outside [0,1].
	ErrInvalidRRTConfig = errors.New("planner: invalid RRT configuration")
)

// CoordinateError reports a query for a cell outside a Width×Height grid.
type CoordinateError struct {
	Cell          Cell
	Width, Height int
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("planner: cell (%d,%d) outside %dx%d grid", e.Cell.X, e.Cell.Y, e.Width, e.Height)
}

func (e *CoordinateError) Unwrap() error { return ErrCoordinateOutOfBounds }
