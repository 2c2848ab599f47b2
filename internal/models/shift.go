package models

// Shift is a single slot on the schedule that needs a provider.
// Date is ISO YYYY-MM-DD and times are zero-padded HH:MM so that
// plain string ordering matches chronological ordering.
type Shift struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type,omitempty"`
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	// Duration in hours. Zero means "not set"; the solver derives it
	// from the start/end times instead.
	Duration float64 `json:"duration,omitempty"`
	// RequiredProviders is carried through for external solvers; the
	// local heuristic assigns one provider per shift regardless.
	RequiredProviders int `json:"required_providers,omitempty"`
}
