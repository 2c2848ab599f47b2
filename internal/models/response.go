package models

// CaseStatistics summarizes a solve attempt for the response
// envelope. Field names are camelCase because the web dashboard
// consumes them directly.
type CaseStatistics struct {
	TotalShifts     int     `json:"totalShifts"`
	TotalProviders  int     `json:"totalProviders"`
	ExecutionTimeMS float64 `json:"executionTimeMs"`
	SolverType      string  `json:"solverType"`
	Feasible        bool    `json:"feasible"`
}

// SolveResponse is the envelope returned by the solve endpoints and
// stored as a run's final result.
type SolveResponse struct {
	Status     string          `json:"status"` // completed, started, error
	Message    string          `json:"message"`
	RunID      string          `json:"run_id,omitempty"`
	Progress   float64         `json:"progress,omitempty"`
	Results    *SolveResults   `json:"results,omitempty"`
	Statistics *CaseStatistics `json:"statistics,omitempty"`
}
