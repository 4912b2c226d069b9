// Package domain holds the core timer types.
// A Timer is the single in-progress entity a user configures and runs:
// create → edit → run → complete or queue → persisted record, fresh entity.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimerStatus tracks the timer lifecycle.
type TimerStatus string

const (
	TimerPaused    TimerStatus = "PAUSED"
	TimerRunning   TimerStatus = "RUNNING"
	TimerCompleted TimerStatus = "COMPLETED"
	TimerQueued    TimerStatus = "QUEUED"
)

const (
	// DefaultDuration is the configured seconds for a fresh timer.
	DefaultDuration = 600

	// MaxDuration caps accumulated duration. AddTime calls that would reach
	// or exceed it are rejected.
	MaxDuration = 6000
)

// Timer is the current-timer entity and, once terminal, a historical record.
type Timer struct {
	ID            string      `json:"id"`
	Duration      int         `json:"duration"`       // total configured seconds
	RemainingTime int         `json:"remaining_time"` // seconds left to elapse
	Status        TimerStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	CompletedAt   time.Time   `json:"completed_at,omitempty"`
	Tags          []string    `json:"tags"`
	Task          string      `json:"task"`

	// Staging fields for in-progress input. Never persisted.
	NewTask string `json:"new_task,omitempty"`
	NewTag  string `json:"new_tag,omitempty"`
}

// NewTimer returns a fresh PAUSED entity with a new id and the given
// configured duration.
func NewTimer(duration int) *Timer {
	return &Timer{
		ID:            uuid.NewString(),
		Duration:      duration,
		RemainingTime: duration,
		Status:        TimerPaused,
		CreatedAt:     time.Now(),
		Tags:          []string{},
	}
}

// IsTerminal reports whether the timer reached a final state for this session.
func (t *Timer) IsTerminal() bool {
	return t.Status == TimerCompleted || t.Status == TimerQueued
}

// HasTag reports whether the tag is already present (exact match).
func (t *Timer) HasTag(name string) bool {
	for _, tag := range t.Tags {
		if tag == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Used when a terminal snapshot is persisted while
// the current slot keeps being replaced.
func (t *Timer) Clone() *Timer {
	c := *t
	c.Tags = append([]string(nil), t.Tags...)
	return &c
}

// Record returns the persistable snapshot of the timer under the given
// terminal status. A fresh id is minted so the historical record's identity
// is decoupled from the editing session; staging fields are stripped.
func (t *Timer) Record(status TimerStatus) *Timer {
	rec := t.Clone()
	rec.ID = uuid.NewString()
	rec.Status = status
	rec.NewTask = ""
	rec.NewTag = ""
	if status == TimerCompleted {
		rec.CompletedAt = time.Now()
	}
	return rec
}

// Elapsed returns seconds already counted down.
func (t *Timer) Elapsed() int {
	return t.Duration - t.RemainingTime
}
