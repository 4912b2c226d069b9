// Package metrics provides Prometheus metrics for tempo.
// Counters, gauges and histograms for the countdown engine, session
// transitions, persistence, and routines.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Engine ─────────────────────────────────────────────────────────────────

// EngineTicks counts countdown ticks.
var EngineTicks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "engine_ticks_total",
	Help:      "Total countdown ticks emitted by the engine.",
})

// RemainingSeconds tracks the current timer's remaining time.
var RemainingSeconds = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "tempo",
	Name:      "timer_remaining_seconds",
	Help:      "Remaining seconds on the current timer.",
})

// ─── Sessions ───────────────────────────────────────────────────────────────

// SessionsCompleted counts timers persisted as COMPLETED, by trigger
// (engine or manual).
var SessionsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "sessions_completed_total",
	Help:      "Total timers completed.",
}, []string{"trigger"})

// SessionsQueued counts timers persisted as QUEUED.
var SessionsQueued = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "sessions_queued_total",
	Help:      "Total timers queued for later.",
})

// SessionDuration observes configured duration of completed sessions.
var SessionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "tempo",
	Name:      "session_duration_seconds",
	Help:      "Configured duration of completed sessions.",
	Buckets:   []float64{300, 600, 1200, 1800, 2400, 3600, 5400},
})

// RejectedActions counts user actions rejected by validation, by reason.
var RejectedActions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "rejected_actions_total",
	Help:      "User actions rejected by session validation.",
}, []string{"reason"})

// ─── Persistence ────────────────────────────────────────────────────────────

// StoreFailures counts fire-and-forget store calls that returned an error.
var StoreFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "store_failures_total",
	Help:      "Persistence calls that failed (state is not rolled back).",
}, []string{"op"})

// SyncPushes counts best-effort remote sync attempts by outcome.
var SyncPushes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "sync_pushes_total",
	Help:      "Remote sync push attempts.",
}, []string{"outcome"})

// ─── Routines ───────────────────────────────────────────────────────────────

// RoutineCompletions counts routine check-ins.
var RoutineCompletions = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "tempo",
	Name:      "routine_completions_total",
	Help:      "Total routine completions recorded.",
})
