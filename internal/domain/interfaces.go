package domain

import (
	"context"
	"time"
)

// ─── Service Interfaces ─────────────────────────────────────────────────────
// These interfaces define boundaries between layers.
// Infrastructure implements them; the session layer depends on them.

// TimerFilter scopes a ListTimers call. Zero value means "everything".
type TimerFilter struct {
	Status TimerStatus // filter by status when non-empty
	Since  time.Time   // only records created at or after this instant
	Limit  int         // 0 means no limit
}

// TimerStore abstracts persistent storage of historical timer records.
// Calls are fire-and-forget from the session's perspective: failures are
// logged and counted, never rolled back into the in-memory state.
type TimerStore interface {
	SaveTimer(ctx context.Context, rec *Timer) error
	GetTimer(ctx context.Context, id string) (*Timer, error)
	ListTimers(ctx context.Context, f TimerFilter) ([]*Timer, error)
	DeleteTimer(ctx context.Context, id string) error
}

// RoutineStore abstracts persistent storage of routines and their
// date-stamped completions.
type RoutineStore interface {
	SaveRoutine(ctx context.Context, name string) error
	ListRoutines(ctx context.Context) ([]*Routine, error)
	DeleteRoutine(ctx context.Context, name string) error
	CompleteRoutine(ctx context.Context, name string, at time.Time) error
	DeleteCompletion(ctx context.Context, name string, day time.Time) error
}

// Controller is the command surface the session uses to drive the countdown
// engine. Fire-and-forget: neither call blocks on the countdown itself.
type Controller interface {
	// Start begins a countdown from remaining seconds. Ignored by the
	// engine if one is already active.
	Start(id string, remaining int)

	// Stop halts the active countdown, if any. Idempotent.
	Stop()
}
