package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure, with no infrastructure dependency. All are validation
// failures the user recovers from by correcting input; none are fatal.

var (
	// Timer entity errors
	ErrNoCurrentTimer = errors.New("no current timer")
	ErrTimerNotFound  = errors.New("timer record not found")
	ErrTimerRunning   = errors.New("timer is running, pause it first")
	ErrTimerNotQueued = errors.New("timer record is not queued")

	// Edit errors
	ErrEmptyTag     = errors.New("tag is empty")
	ErrDuplicateTag = errors.New("tag already exists")
	ErrEmptyTask    = errors.New("cannot queue an empty task")
	ErrDurationCap  = errors.New("duration would exceed the maximum")
	ErrBadDelta     = errors.New("added time must be positive")

	// Routine errors
	ErrRoutineExists   = errors.New("routine already exists")
	ErrRoutineNotFound = errors.New("routine not found")
	ErrEmptyRoutine    = errors.New("routine name is empty")
)
