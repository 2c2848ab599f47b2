package models

// RunConfig carries per-request solver knobs.
type RunConfig struct {
	// K is the number of alternative solutions requested. The local
	// heuristic clamps it to at most 5.
	K int `json:"k,omitempty"`
	// MaxTimeInSeconds is a hint for external solvers; the local
	// heuristic ignores it.
	MaxTimeInSeconds float64 `json:"max_time_in_seconds,omitempty"`
}

// Case is a complete scheduling problem as submitted to /solve.
type Case struct {
	Constants map[string]any `json:"constants,omitempty"`
	Calendar  CalendarInput  `json:"calendar"`
	Shifts    []Shift        `json:"shifts"`
	Providers []Provider     `json:"providers"`
	Run       RunConfig      `json:"run,omitempty"`
}
