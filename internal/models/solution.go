package models

// Solution is one full assignment pass over all shifts.
type Solution struct {
	Assignments    []Assignment `json:"assignments"`
	SolutionID     string       `json:"solution_id"`
	ObjectiveValue int          `json:"objective_value"`
	Feasible       bool         `json:"feasible"`
}

// SolverStats describes how a set of solutions was produced.
type SolverStats struct {
	TotalSolutions  int     `json:"total_solutions"`
	ExecutionTimeMS float64 `json:"execution_time_ms"`
	SolverType      string  `json:"solver_type"`
	Status          string  `json:"status"` // OPTIMAL or NO_SOLUTION
	Algorithm       string  `json:"algorithm"`
	FallbackUsed    bool    `json:"fallbackUsed,omitempty"`
}

// SolveResults pairs the solutions with the solver stats.
type SolveResults struct {
	Solutions   []Solution  `json:"solutions"`
	SolverStats SolverStats `json:"solver_stats"`
}
