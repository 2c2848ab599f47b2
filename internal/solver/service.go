package solver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RosterIO/rosterd/internal/models"
)

// Remote is the external optimizer boundary. Implemented by
// remote.Client; kept as an interface so tests can stub it.
type Remote interface {
	Solve(ctx context.Context, c models.Case) (*models.SolveResponse, error)
}

// Orchestrator tries the external high-performance solver first and
// falls back to the embedded greedy heuristic when it is unreachable
// or errors out.
type Orchestrator struct {
	remote Remote
	local  *Solver
	log    *zap.Logger
}

// NewOrchestrator builds an orchestrator. remote may be nil, in which
// case every case goes straight to the local heuristic.
func NewOrchestrator(remote Remote, local *Solver, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{remote: remote, local: local, log: log}
}

// Run solves one case, reporting coarse progress through the callback
// (which may be nil). It always returns an envelope; failures are
// expressed as Status "error".
func (o *Orchestrator) Run(ctx context.Context, c models.Case, runID string, progress func(float64, string)) *models.SolveResponse {
	report := func(p float64, msg string) {
		if progress != nil {
			progress(p, msg)
		}
	}

	report(10, "Initializing solver...")

	if o.remote != nil {
		report(30, "Submitting case to external solver...")
		resp, err := o.remote.Solve(ctx, c)
		if err == nil && resp.Status != "error" {
			resp.RunID = runID
			report(100, "External optimization completed")
			return resp
		}
		if err != nil {
			o.log.Warn("external solver unavailable, using greedy fallback",
				zap.String("run_id", runID),
				zap.Error(err))
		} else {
			o.log.Warn("external solver reported an error, using greedy fallback",
				zap.String("run_id", runID),
				zap.String("message", resp.Message))
		}
	}

	report(70, "Running local fallback solver...")
	res, err := o.local.Solve(c)
	if err != nil {
		report(-1, err.Error())
		return ErrorEnvelope(runID, err, c)
	}
	report(100, "Optimization completed")
	return CompletedEnvelope(runID, res, c)
}

// CompletedEnvelope wraps solver results in the response envelope the
// dashboard consumes.
func CompletedEnvelope(runID string, res *models.SolveResults, c models.Case) *models.SolveResponse {
	return &models.SolveResponse{
		Status:   "completed",
		Message:  fmt.Sprintf("Optimization completed - %d solutions found", len(res.Solutions)),
		RunID:    runID,
		Progress: 100,
		Results:  res,
		Statistics: &models.CaseStatistics{
			TotalShifts:     len(c.Shifts),
			TotalProviders:  len(c.Providers),
			ExecutionTimeMS: res.SolverStats.ExecutionTimeMS,
			SolverType:      res.SolverStats.SolverType,
			Feasible:        len(res.Solutions) > 0,
		},
	}
}

// ErrorEnvelope wraps a fatal solve failure. No partial output.
func ErrorEnvelope(runID string, err error, c models.Case) *models.SolveResponse {
	return &models.SolveResponse{
		Status:  "error",
		Message: err.Error(),
		RunID:   runID,
		Statistics: &models.CaseStatistics{
			TotalShifts:    len(c.Shifts),
			TotalProviders: len(c.Providers),
			SolverType:     SolverType,
			Feasible:       false,
		},
	}
}
