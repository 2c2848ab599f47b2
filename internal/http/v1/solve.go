package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/RosterIO/rosterd/internal/models"
	"github.com/RosterIO/rosterd/internal/solver"
)

// solve handles POST /solve: register a run, kick the optimization
// off in the background, and point the caller at the run resource.
func (a *api) solve(w http.ResponseWriter, r *http.Request) {
	var c models.Case
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	run := a.Runs.Enqueue()
	if err := a.Artifacts.SaveJSON(run.ID, "input_case.json", c); err != nil {
		a.Log.Warn("failed to save input case", zap.String("run_id", run.ID), zap.Error(err))
	}

	go a.runOptimization(c, run.ID)

	w.Header().Set("Location", fmt.Sprintf("/api/v1/runs/%s", run.ID))
	writeJSON(w, http.StatusAccepted, models.SolveResponse{
		Status:  "started",
		Message: "Optimization started in background",
		RunID:   run.ID,
	})
}

func (a *api) runOptimization(c models.Case, runID string) {
	a.Runs.SetRunning(runID)

	resp := a.Orchestrator.Run(context.Background(), c, runID, func(p float64, msg string) {
		a.Runs.SetProgress(runID, p, msg)
	})

	if err := a.Artifacts.SaveJSON(runID, "results.json", resp); err != nil {
		a.Log.Warn("failed to save results", zap.String("run_id", runID), zap.Error(err))
	}

	if resp.Status == "error" {
		a.Runs.SetFailed(runID, resp.Message)
		return
	}
	a.Runs.SetCompleted(runID, resp)
}

// solveLocal handles POST /solve/local: run the greedy heuristic
// synchronously and return the full envelope. This is the endpoint
// the dashboard hits when it wants an answer without an external
// solver round-trip.
func (a *api) solveLocal(w http.ResponseWriter, r *http.Request) {
	var c models.Case
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	runID := fmt.Sprintf("local_run_%d", time.Now().Unix())
	res, err := a.Local.Solve(c)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, solver.ErrorEnvelope(runID, err, c))
		return
	}
	writeJSON(w, http.StatusOK, solver.CompletedEnvelope(runID, res, c))
}
