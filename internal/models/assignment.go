package models

// Assignment binds one shift to one provider within a solution.
// Records are never mutated after creation.
type Assignment struct {
	ShiftID       string `json:"shift_id"`
	ShiftName     string `json:"shift_name"`
	ProviderID    string `json:"provider_id"`
	ProviderName  string `json:"provider_name"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	SolutionIndex int    `json:"solution_index"`
}
