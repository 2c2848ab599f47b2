package models

// Provider is a staff member who can be assigned to shifts.
type Provider struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Specialties []string `json:"specialties,omitempty"`
	// Availability maps a lowercase English weekday name ("monday")
	// to whether the provider can work that day. A missing key means
	// available; only an explicit false blocks assignment.
	Availability map[string]bool `json:"availability,omitempty"`
	// MaxShiftsPerDay caps assignments per calendar day. Zero means
	// "not set" and defaults to 2.
	MaxShiftsPerDay int `json:"max_shifts_per_day,omitempty"`
	// MaxHoursPerWeek caps accumulated hours. Zero means "not set"
	// and defaults to 40.
	MaxHoursPerWeek float64 `json:"max_hours_per_week,omitempty"`
}
