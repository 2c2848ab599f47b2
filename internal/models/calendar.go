package models

import "time"

// Calendar is a named set of schedulable days managed through the
// admin API.
type Calendar struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Days      []string  `json:"days"` // ISO dates, YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CalendarInput is the calendar block of a solve case: just the days
// to schedule over.
type CalendarInput struct {
	Days []string `json:"days"`
}
