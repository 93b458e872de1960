// Package server implements the HTTP API of the minimization service. It
// manages runs of the conjugate gradient engine and provides endpoints to
// start, monitor, and cancel them.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/copyleftdev/CGMIN/internal/config"
	"github.com/copyleftdev/CGMIN/internal/optimization"
	"github.com/copyleftdev/CGMIN/internal/optimization/conjgrad"
	"github.com/copyleftdev/CGMIN/internal/optimization/functions"
)

// runState tracks one minimization run. Access goes through Server.runsMu.
type runState struct {
	ID          string
	Status      string // "pending", "running", "completed", "cancelled", "failed"
	StartTime   time.Time
	EndTime     *time.Time
	LastUpdated time.Time

	Objective string
	X         []float64 // latest reported point
	F         float64
	Iteration int
	GradNorm  float64

	Result *optimization.Result
	cancel context.CancelFunc
}

// Server manages minimization runs behind the HTTP API.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger

	runs   map[string]*runState
	runsMu sync.RWMutex
	nextID int
}

// New creates a server instance with the given config and logger.
func New(cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		runs:   make(map[string]*runState),
	}
}

// RegisterRoutes mounts the API on the given router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/minimize", s.handleMinimize)
		r.Get("/status/{id}", s.handleStatus)
		r.Delete("/minimization/{id}", s.handleCancel)
	})
}

// minimizeRequest is the body of POST /api/v1/minimize. All config fields
// are optional and override the service defaults.
type minimizeRequest struct {
	Objective string    `json:"objective"`
	X0        []float64 `json:"x0"`
	Config    struct {
		Epsilon       *float64 `json:"epsilon"`
		Delta         *float64 `json:"delta"`
		Past          *int     `json:"past"`
		MaxIterations *int     `json:"max_iterations"`
		MaxLineSearch *int     `json:"max_linesearch"`
		MinStep       *float64 `json:"min_step"`
		MaxStep       *float64 `json:"max_step"`
	} `json:"config"`
}

func (s *Server) handleMinimize(w http.ResponseWriter, r *http.Request) {
	var req minimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	obj, ok := functions.ByName(req.Objective)
	if !ok {
		s.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("unknown objective %q, available: %v", req.Objective, functions.Names()))
		return
	}
	if len(req.X0) == 0 {
		s.respondError(w, http.StatusBadRequest, "x0 is required")
		return
	}

	cfg := s.cfg.SolverConfig()
	applyOverrides(&cfg, &req)
	if err := cfg.Validate(len(req.X0)); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	s.runsMu.Lock()
	s.nextID++
	id := fmt.Sprintf("run_%d", s.nextID)
	state := &runState{
		ID:          id,
		Status:      "pending",
		StartTime:   time.Now(),
		LastUpdated: time.Now(),
		Objective:   req.Objective,
		X:           append([]float64(nil), req.X0...),
		cancel:      cancel,
	}
	s.runs[id] = state
	s.runsMu.Unlock()

	go s.runMinimization(ctx, state, obj, req.X0, cfg)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{
		"run_id": id,
		"status": "pending",
	})
}

func applyOverrides(cfg *optimization.Config, req *minimizeRequest) {
	o := &req.Config
	if o.Epsilon != nil {
		cfg.Epsilon = *o.Epsilon
	}
	if o.Delta != nil {
		cfg.Delta = *o.Delta
	}
	if o.Past != nil {
		cfg.Past = *o.Past
	}
	if o.MaxIterations != nil {
		cfg.MaxIterations = *o.MaxIterations
	}
	if o.MaxLineSearch != nil {
		cfg.MaxLineSearch = *o.MaxLineSearch
	}
	if o.MinStep != nil {
		cfg.MinStep = *o.MinStep
	}
	if o.MaxStep != nil {
		cfg.MaxStep = *o.MaxStep
	}
}

// runMinimization executes one run on its own goroutine. Cancellation is
// cooperative: the monitor observes the context once per accepted iteration
// and asks the engine to stop, so the engine reports StoppedByCallback and
// the run lands in the "cancelled" state.
func (s *Server) runMinimization(ctx context.Context, state *runState, obj optimization.Objective, x0 []float64, cfg optimization.Config) {
	s.runsMu.Lock()
	state.Status = "running"
	state.LastUpdated = time.Now()
	s.runsMu.Unlock()

	mon := optimization.MonitorFunc(func(rec optimization.ProgressRecord) bool {
		s.runsMu.Lock()
		state.Iteration = rec.Iteration
		state.F = rec.F
		state.GradNorm = rec.GradNorm
		state.X = append(state.X[:0], rec.X...)
		state.LastUpdated = time.Now()
		s.runsMu.Unlock()
		return ctx.Err() == nil
	})

	x := append([]float64(nil), x0...)
	start := time.Now()
	res, err := conjgrad.Minimize(obj, x, &cfg, mon)

	runsTotal.WithLabelValues(res.Status.String()).Inc()
	runIterations.Observe(float64(res.Iterations))
	runDuration.Observe(time.Since(start).Seconds())

	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	state.Result = res
	state.X = x
	state.F = res.F
	state.Iteration = res.Iterations
	now := time.Now()
	state.EndTime = &now
	state.LastUpdated = now

	switch {
	case res.Status == optimization.StoppedByCallback:
		state.Status = "cancelled"
	case res.Status.Success():
		state.Status = "completed"
	default:
		state.Status = "failed"
	}
	// The run is terminal; release its context.
	state.cancel()

	logger := s.logger.With(
		zap.String("run_id", state.ID),
		zap.String("objective", state.Objective),
		zap.Stringer("termination", res.Status),
		zap.Int("iterations", res.Iterations),
		zap.Int("evaluations", res.FuncEvaluations),
	)
	if err != nil {
		logger.Warn("minimization run failed", zap.Error(err))
	} else {
		logger.Info("minimization run finished", zap.Float64("f", res.F))
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.runsMu.RLock()
	defer s.runsMu.RUnlock()

	state, ok := s.runs[id]
	if !ok {
		s.respondError(w, http.StatusNotFound, "run not found")
		return
	}

	resp := map[string]interface{}{
		"run_id":      state.ID,
		"status":      state.Status,
		"objective":   state.Objective,
		"start_time":  state.StartTime.Format(time.RFC3339),
		"last_update": state.LastUpdated.Format(time.RFC3339),
		"iteration":   state.Iteration,
		"x":           state.X,
		"f":           state.F,
		"grad_norm":   state.GradNorm,
	}
	if state.EndTime != nil {
		resp["end_time"] = state.EndTime.Format(time.RFC3339)
	}
	if state.Result != nil {
		resp["termination"] = state.Result.Status.String()
		resp["return_code"] = state.Result.Status.Code()
		resp["evaluations"] = state.Result.FuncEvaluations
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.runsMu.Lock()
	defer s.runsMu.Unlock()

	state, ok := s.runs[id]
	if !ok {
		s.respondError(w, http.StatusNotFound, "run not found")
		return
	}
	switch state.Status {
	case "completed", "failed", "cancelled":
		s.respondError(w, http.StatusConflict,
			fmt.Sprintf("cannot cancel run with status %q", state.Status))
		return
	}

	state.cancel()
	state.LastUpdated = time.Now()
	s.logger.Info("run cancellation requested", zap.String("run_id", id))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "cancellation requested"})
}

func (s *Server) respondError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Close cancels all running minimizations.
func (s *Server) Close() error {
	s.runsMu.Lock()
	defer s.runsMu.Unlock()
	for _, state := range s.runs {
		if state.cancel != nil {
			state.cancel()
		}
	}
	return nil
}
