package v1

import (
	"net/http"
	"time"
)

// health handles GET /healthz
func (a *api) health(w http.ResponseWriter, r *http.Request) {
	solverAvailable := false
	if a.SolverHealth != nil {
		solverAvailable = a.SolverHealth() == nil
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"message":          "rosterd scheduling service is running",
		"timestamp":        time.Now().UTC(),
		"solver_available": solverAvailable,
		"runs":             len(a.Runs.List()),
	})
}
