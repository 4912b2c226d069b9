package domain

import "time"

// Routine is a recurring habit tracked by date-stamped completions.
// Peripheral to the timer core; persisted alongside timer records.
type Routine struct {
	Name        string      `json:"name"`
	CreatedAt   time.Time   `json:"created_at"`
	Completions []time.Time `json:"completions"`
}

// CompletedOn reports whether the routine was checked on the given calendar
// day (local time).
func (r *Routine) CompletedOn(day time.Time) bool {
	y, m, d := day.Date()
	for _, c := range r.Completions {
		cy, cm, cd := c.Date()
		if cy == y && cm == m && cd == d {
			return true
		}
	}
	return false
}
