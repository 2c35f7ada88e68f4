package tasks

import "time"

// Task is a to-do entry.
type Task struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Notes    string     `json:"notes,omitempty"`
	Location string     `json:"location,omitempty"`
	Due      *time.Time `json:"due,omitempty"`
	// DurationMinutes is the planned length of the task, 0 for a point in time.
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	AllDay          bool      `json:"all_day,omitempty"`
	Completed       bool      `json:"completed,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ModifiedAt exposes the last write time to recency strategies.
func (t *Task) ModifiedAt() time.Time {
	return t.UpdatedAt
}
