package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/RosterIO/rosterd/internal/models"
	"github.com/RosterIO/rosterd/internal/solver"
)

// rosterd-solver is the standalone local optimizer: the same greedy
// kernel the API embeds, exposed on its own port so a dashboard can
// point at it directly. Protocol-compatible with the external solver
// service: GET /health and POST /solve.

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	addr := os.Getenv("ROSTERD_SOLVER_LISTEN_ADDR")
	if addr == "" {
		addr = ":8000"
	}

	s := solver.New(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsAllowAll)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "ok",
			"message":     "rosterd local solver is running",
			"solver_type": solver.SolverType,
			"capabilities": []string{
				"greedy constraint satisfaction",
				"multi-solution generation",
			},
		})
	})

	r.Post("/solve", func(w http.ResponseWriter, req *http.Request) {
		var c models.Case
		if err := json.NewDecoder(req.Body).Decode(&c); err != nil {
			writeJSON(w, http.StatusBadRequest, models.SolveResponse{
				Status:  "error",
				Message: fmt.Sprintf("invalid request body: %v", err),
			})
			return
		}
		runID := fmt.Sprintf("local_run_%d", time.Now().Unix())
		res, err := s.Solve(c)
		if err != nil {
			writeJSON(w, http.StatusOK, solver.ErrorEnvelope(runID, err, c))
			return
		}
		writeJSON(w, http.StatusOK, solver.CompletedEnvelope(runID, res, c))
	})

	logger.Info("rosterd-solver listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// corsAllowAll lets the browser-hosted dashboard call this service
// from any origin, matching the external solver's behavior.
func corsAllowAll(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
