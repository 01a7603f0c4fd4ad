package planner

import (
	"fmt"
	"strings"
)

// Cell is an integer grid coordinate.
type Cell struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Algorithm selects the search strategy of a session.
type Algorithm int

const (
	AStar Algorithm = iota
	Dijkstra
	RRT
)

func (a Algorithm) String() string {
	switch a {
	case AStar:
		return "astar"
	case Dijkstra:
		return "dijkstra"
	case RRT:
		return "rrt"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm accepts the names produced by Algorithm.String, case-insensitively.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "astar", "a*", "a-star":
		return AStar, nil
	case "dijkstra":
		return Dijkstra, nil
	case "rrt":
		return RRT, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Status is the lifecycle state of a session.
type Status int

const (
	Idle Status = iota
	Running
	Paused
	Found
	Exhausted
	Canceled
)

var statusNames = [...]string{"idle", "running", "paused", "found", "exhausted", "canceled"}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Terminal reports whether no further steps can happen in this status.
func (s Status) Terminal() bool {
	return s == Found || s == Exhausted || s == Canceled
}

// MarshalText lets Status appear as its name in JSON payloads.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// MarshalText lets Algorithm appear as its name in JSON payloads.
func (a Algorithm) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText parses names accepted by ParseAlgorithm.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// StepResult is what a strategy reports for one step. Status is Running,
// Found or Exhausted.
type StepResult struct {
	Status       Status
	NewlyVisited []Cell
	NewFrontier  []Cell
	NewNodes     []Point
	Path         []Cell
}

// Snapshot is the renderer-facing view of a session.
type Snapshot struct {
	SessionID string    `json:"sessionId,omitempty"`
	Algorithm Algorithm `json:"algorithm"`
	Status    Status    `json:"status"`
	Steps     int       `json:"steps"`
	// Visited lists closed cells in expansion order (A*, Dijkstra).
	Visited []Cell `json:"visited"`
	// Frontier lists open cells in row-major order (A*, Dijkstra).
	Frontier []Cell `json:"frontier"`
	// Nodes and Tree describe the RRT tree; Tree[i] links a node to its parent.
	Nodes []Point `json:"nodes"`
	Tree  []Edge  `json:"tree"`
	// Path is set once Status is Found. For RRT it lists the cells containing
	// the waypoints, with consecutive duplicates removed.
	Path          []Cell  `json:"path"`
	Waypoints     []Point `json:"waypoints"`
	Cost          float64 `json:"cost"`
	ExploredCount int     `json:"exploredCount"`
}
