package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/spf13/cobra"

	"grid-planner/planner"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner over a JSON HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			c, err := newController(cfg)
			if err != nil {
				return err
			}

			log.Println("========================================")
			log.Println("🚀 Grid Planner Server")
			log.Println("========================================")
			log.Printf("Server starting on %s\n", addr)
			log.Println("")
			log.Println("Endpoints:")
			log.Println("  GET  /health          - Check server status")
			log.Println("  GET  /state           - Grid and session snapshot")
			log.Println("  POST /grid            - Edit obstacles, start or goal")
			log.Println("  POST /run             - Start a session")
			log.Println("  POST /step            - Advance the session (one tick)")
			log.Println("  POST /pause | /resume | /cancel | /reset")
			log.Println("  GET  /export.geojson  - Grid and session as GeoJSON")
			log.Println("")
			log.Println("CORS enabled for all origins")
			log.Println("========================================")

			return http.ListenAndServe(addr, newServer(c).routes())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

// server serializes HTTP access to a single-threaded controller.
type server struct {
	mu sync.Mutex
	c  *planner.Controller
}

func newServer(c *planner.Controller) *server {
	return &server{c: c}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	mux.HandleFunc("/state", corsMiddleware(s.stateHandler))
	mux.HandleFunc("/grid", corsMiddleware(s.gridHandler))
	mux.HandleFunc("/run", corsMiddleware(s.runHandler))
	mux.HandleFunc("/step", corsMiddleware(s.stepHandler))
	mux.HandleFunc("/pause", corsMiddleware(s.controlHandler((*planner.Controller).Pause)))
	mux.HandleFunc("/resume", corsMiddleware(s.controlHandler((*planner.Controller).Resume)))
	mux.HandleFunc("/cancel", corsMiddleware(s.controlHandler((*planner.Controller).Cancel)))
	mux.HandleFunc("/reset", corsMiddleware(s.controlHandler(func(c *planner.Controller) bool {
		c.Reset()
		return true
	})))
	mux.HandleFunc("/export.geojson", corsMiddleware(s.exportHandler))
	return mux
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// GridState is the grid part of /state.
type GridState struct {
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Start     planner.Cell   `json:"start"`
	Goal      planner.Cell   `json:"goal"`
	Obstacles []planner.Cell `json:"obstacles"`
}

// StateResponse is returned by /state and every endpoint that changes state.
type StateResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Grid     GridState        `json:"grid"`
	Snapshot planner.Snapshot `json:"snapshot"`
}

// GridEditRequest is the body of POST /grid. Op is one of set_obstacle,
// clear_obstacle, set_start or set_goal.
type GridEditRequest struct {
	Op   string       `json:"op"`
	Cell planner.Cell `json:"cell"`
}

// RunRequest is the body of POST /run.
type RunRequest struct {
	Algorithm planner.Algorithm `json:"algorithm"`
}

// StepRequest is the optional body of POST /step.
type StepRequest struct {
	Steps int `json:"steps"`
}

const maxStepsPerRequest = 10000

// state must be called with s.mu held.
func (s *server) state(success bool, message string) StateResponse {
	g := s.c.Grid()
	obstacles := g.Obstacles()
	if obstacles == nil {
		obstacles = []planner.Cell{}
	}
	return StateResponse{
		Success: success,
		Message: message,
		Grid: GridState{
			Width: g.Width(), Height: g.Height(),
			Start: g.Start(), Goal: g.Goal(),
			Obstacles: obstacles,
		},
		Snapshot: s.c.Snapshot(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v\n", err)
	}
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		log.Printf("❌ Method not allowed: %s %s\n", r.Method, r.URL.Path)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status := s.c.Status()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ready",
		"session": status.String(),
	})
}

// GET /state - Grid and session snapshot
func (s *server) stateHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.state(true, ""))
}

// POST /grid - Edit the grid; an accepted edit discards the session
func (s *server) gridHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req GridEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var edit func(planner.Cell) bool
	switch req.Op {
	case "set_obstacle":
		edit = s.c.SetObstacle
	case "clear_obstacle":
		edit = s.c.ClearObstacle
	case "set_start":
		edit = s.c.SetStart
	case "set_goal":
		edit = s.c.SetGoal
	default:
		http.Error(w, "Unknown op", http.StatusBadRequest)
		return
	}
	accepted := edit(req.Cell)
	message := ""
	if !accepted {
		message = "edit ignored"
	}
	writeJSON(w, http.StatusOK, s.state(accepted, message))
}

// POST /run - Start a session with the requested algorithm
func (s *server) runHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.c.Start(req.Algorithm); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Printf("📍 Started %s session\n", req.Algorithm)
	writeJSON(w, http.StatusOK, s.state(true, ""))
}

// POST /step - Advance the session; the caller's timer is the tick source
func (s *server) stepHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	req := StepRequest{Steps: 1}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}
	if req.Steps < 1 || req.Steps > maxStepsPerRequest {
		http.Error(w, "steps out of range", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	advanced := 0
	for advanced < req.Steps && s.c.AdvanceOneStep() {
		advanced++
	}
	status := s.c.Status()
	if status.Terminal() && advanced > 0 {
		log.Printf("✅ Session %s after %d steps\n", status, s.c.Snapshot().Steps)
	}
	writeJSON(w, http.StatusOK, s.state(advanced > 0, ""))
}

// controlHandler wraps a lifecycle call (pause, resume, cancel, reset).
func (s *server) controlHandler(op func(*planner.Controller) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireMethod(w, r, http.MethodPost) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		ok := op(s.c)
		message := ""
		if !ok {
			message = "not applicable in status " + s.c.Status().String()
		}
		writeJSON(w, http.StatusOK, s.state(ok, message))
	}
}

// GET /export.geojson - Grid and session as a GeoJSON feature collection
func (s *server) exportHandler(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	s.mu.Lock()
	data, err := planner.ExportGeoJSON(s.c.Grid(), s.c.Snapshot(), 0.5)
	s.mu.Unlock()
	if err != nil {
		log.Printf("❌ Export failed: %v\n", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Write(data)
}
