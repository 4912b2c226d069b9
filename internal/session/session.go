// Package session owns the current timer and its lifecycle.
// It is the single writer of the entity: user commands and engine events both
// funnel through the mutex, turn into status transitions, and fan out as
// engine commands and fire-and-forget persistence calls.
package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tempo-sh/tempo/internal/domain"
	"github.com/tempo-sh/tempo/internal/engine"
	"github.com/tempo-sh/tempo/internal/infra/metrics"
)

// Config tunes session behavior.
type Config struct {
	DefaultDuration int // seconds for a fresh timer
	MaxDuration     int // AddTime rejects results at or above this
	PersistTimeout  time.Duration
}

// DefaultConfig returns production session defaults.
func DefaultConfig() Config {
	return Config{
		DefaultDuration: domain.DefaultDuration,
		MaxDuration:     domain.MaxDuration,
		PersistTimeout:  10 * time.Second,
	}
}

// Session is the timer state machine. All methods are safe for concurrent
// use; the entity itself is never shared outside a snapshot copy.
type Session struct {
	mu      sync.Mutex
	cfg     Config
	current *domain.Timer
	ctrl    domain.Controller
	store   domain.TimerStore

	// onPersist, when set, is called after a terminal record is durably
	// saved. The daemon wires the remote syncer here.
	onPersist func(*domain.Timer)

	wg sync.WaitGroup
}

// New creates a session with a fresh PAUSED current timer. The controller is
// an injected dependency, not a shared global, so tests swap in a fake.
func New(cfg Config, ctrl domain.Controller, store domain.TimerStore) *Session {
	if cfg.DefaultDuration <= 0 {
		cfg.DefaultDuration = domain.DefaultDuration
	}
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = domain.MaxDuration
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = 10 * time.Second
	}
	return &Session{
		cfg:     cfg,
		current: domain.NewTimer(cfg.DefaultDuration),
		ctrl:    ctrl,
		store:   store,
	}
}

// OnPersist registers a hook invoked after each successful terminal persist.
func (s *Session) OnPersist(fn func(*domain.Timer)) { s.onPersist = fn }

// Current returns a snapshot copy of the current timer.
func (s *Session) Current() *domain.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Flush waits for in-flight persistence calls. Tests and shutdown use it.
func (s *Session) Flush() { s.wg.Wait() }

// ─── Run loop (engine events) ───────────────────────────────────────────────

// Run consumes engine events until ctx is cancelled. Call in a goroutine.
func (s *Session) Run(ctx context.Context, events <-chan engine.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			s.handleEvent(ev)
		}
	}
}

func (s *Session) handleEvent(ev engine.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := ev.(type) {
	case engine.Started:
		log.Printf("[session] countdown started")

	case engine.Update:
		if s.current == nil {
			log.Printf("[session] update event with no current timer, dropped")
			return
		}
		// A stop racing an in-flight tick leaves stray updates behind;
		// they only ever target a stale id or a paused entity.
		if e.ID != s.current.ID || s.current.Status != domain.TimerRunning {
			return
		}
		s.current.RemainingTime = e.Remaining
		metrics.RemainingSeconds.Set(float64(e.Remaining))

	case engine.Completed:
		if s.current == nil {
			log.Printf("[session] completed event with no current timer, dropped")
			return
		}
		// The stale check runs before anything touches the engine: a
		// buffered Completed from a previous run must not stop a newly
		// started countdown.
		if e.ID != s.current.ID {
			log.Printf("[session] completed event for stale timer %s, dropped", e.ID)
			return
		}
		s.ctrl.Stop() // idempotent; the engine already halted itself
		s.current.RemainingTime = 0
		s.finishLocked(domain.TimerCompleted, "engine")

	default:
		log.Printf("[session] unknown engine event %T", ev)
	}
}

// ─── User commands ──────────────────────────────────────────────────────────

// Toggle starts a paused timer or pauses a running one.
func (s *Session) Toggle() *domain.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Status == domain.TimerRunning {
		s.current.Status = domain.TimerPaused
		s.ctrl.Stop()
	} else {
		s.commitStagedLocked()
		s.current.Status = domain.TimerRunning
		s.ctrl.Start(s.current.ID, s.current.RemainingTime)
	}
	return s.current.Clone()
}

// Pause stops the countdown and returns the timer to an editable state.
// No-op when already paused.
func (s *Session) Pause() *domain.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Status == domain.TimerRunning {
		s.current.Status = domain.TimerPaused
	}
	s.ctrl.Stop()
	return s.current.Clone()
}

// AddTime extends the configured duration and resets remaining time to the
// new total, discarding any prior partial countdown. Rejected while running
// and when the result would reach the cap.
func (s *Session) AddTime(seconds int) (*domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Status == domain.TimerRunning {
		return nil, s.rejectLocked("running", domain.ErrTimerRunning)
	}
	if seconds <= 0 {
		return nil, s.rejectLocked("bad_delta", domain.ErrBadDelta)
	}
	if s.current.Duration+seconds >= s.cfg.MaxDuration {
		return nil, s.rejectLocked("duration_cap", domain.ErrDurationCap)
	}
	s.current.Duration += seconds
	s.current.RemainingTime = s.current.Duration
	s.current.Status = domain.TimerPaused
	return s.current.Clone(), nil
}

// EditTask stages task text without committing it.
func (s *Session) EditTask(text string) (*domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Status == domain.TimerRunning {
		return nil, s.rejectLocked("running", domain.ErrTimerRunning)
	}
	s.current.NewTask = text
	return s.current.Clone(), nil
}

// CommitTask copies the staged task text into the entity and clears staging.
func (s *Session) CommitTask() (*domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Status == domain.TimerRunning {
		return nil, s.rejectLocked("running", domain.ErrTimerRunning)
	}
	s.current.Task = s.current.NewTask
	s.current.NewTask = ""
	return s.current.Clone(), nil
}

// AddTag appends a tag. An empty name commits the staged NewTag instead.
// Duplicates and empty tags are rejected; staging clears on success.
func (s *Session) AddTag(name string) (*domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Status == domain.TimerRunning {
		return nil, s.rejectLocked("running", domain.ErrTimerRunning)
	}
	if name == "" {
		name = s.current.NewTag
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, s.rejectLocked("empty_tag", domain.ErrEmptyTag)
	}
	if s.current.HasTag(name) {
		return nil, s.rejectLocked("duplicate_tag", domain.ErrDuplicateTag)
	}
	s.current.Tags = append(s.current.Tags, name)
	s.current.NewTag = ""
	return s.current.Clone(), nil
}

// RemoveTag removes a tag by exact match. No-op when absent. Like every
// other edit, rejected while running.
func (s *Session) RemoveTag(name string) (*domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Status == domain.TimerRunning {
		return nil, s.rejectLocked("running", domain.ErrTimerRunning)
	}
	tags := s.current.Tags[:0]
	for _, tag := range s.current.Tags {
		if tag != name {
			tags = append(tags, tag)
		}
	}
	s.current.Tags = tags
	return s.current.Clone(), nil
}

// Reset discards the current timer entirely, stopping any countdown, and
// installs a fresh entity at the default duration.
func (s *Session) Reset() *domain.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctrl.Stop()
	s.current = domain.NewTimer(s.cfg.DefaultDuration)
	return s.current.Clone()
}

// Complete finishes the session now, regardless of remaining time. The
// record is persisted as COMPLETED and a fresh entity takes the slot.
func (s *Session) Complete() *domain.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctrl.Stop()
	s.commitStagedLocked()
	s.finishLocked(domain.TimerCompleted, "manual")
	return s.current.Clone()
}

// Queue suspends the current timer as a resumable QUEUED record. Rejected
// while running and when no task text exists, staged or committed.
func (s *Session) Queue() (*domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Status == domain.TimerRunning {
		return nil, s.rejectLocked("running", domain.ErrTimerRunning)
	}
	if s.current.Task == "" && s.current.NewTask == "" {
		return nil, s.rejectLocked("empty_task", domain.ErrEmptyTask)
	}
	s.commitStagedLocked()
	s.ctrl.Stop()
	s.finishLocked(domain.TimerQueued, "")
	return s.current.Clone(), nil
}

// Resume loads a queued record into the current slot and starts its
// countdown where it left off. The record is removed from history and the
// new current entity gets a fresh id, keeping persisted records immutable.
func (s *Session) Resume(ctx context.Context, id string) (*domain.Timer, error) {
	rec, err := s.store.GetTimer(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrTimerNotFound
	}
	if rec.Status != domain.TimerQueued {
		return nil, domain.ErrTimerNotQueued
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctrl.Stop()
	cur := rec.Clone()
	cur.ID = uuid.NewString()
	cur.Status = domain.TimerRunning
	s.current = cur
	s.ctrl.Start(cur.ID, cur.RemainingTime)

	s.removeAsync(id)
	return s.current.Clone(), nil
}

// ─── Internals ──────────────────────────────────────────────────────────────

// commitStagedLocked folds staged edits into the entity. Staged task text is
// committed only when present so an implicit commit at start never wipes a
// committed title; a staged tag is folded in under the usual uniqueness rule.
func (s *Session) commitStagedLocked() {
	if s.current.NewTask != "" {
		s.current.Task = s.current.NewTask
		s.current.NewTask = ""
	}
	if tag := strings.TrimSpace(s.current.NewTag); tag != "" && !s.current.HasTag(tag) {
		s.current.Tags = append(s.current.Tags, tag)
	}
	s.current.NewTag = ""
}

// finishLocked persists the current timer as a terminal record and replaces
// the current slot with a fresh PAUSED entity.
func (s *Session) finishLocked(status domain.TimerStatus, trigger string) {
	rec := s.current.Record(status)
	switch status {
	case domain.TimerCompleted:
		metrics.SessionsCompleted.WithLabelValues(trigger).Inc()
		metrics.SessionDuration.Observe(float64(rec.Duration))
	case domain.TimerQueued:
		metrics.SessionsQueued.Inc()
	}
	s.persistAsync(rec)
	s.current = domain.NewTimer(s.cfg.DefaultDuration)
	metrics.RemainingSeconds.Set(float64(s.current.RemainingTime))
}

// persistAsync saves a record without blocking the transition. Failures are
// logged and counted; the optimistic in-memory state stands.
func (s *Session) persistAsync(rec *domain.Timer) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.PersistTimeout)
		defer cancel()
		if err := s.store.SaveTimer(ctx, rec); err != nil {
			metrics.StoreFailures.WithLabelValues("save").Inc()
			log.Printf("[session] persist %s record %s: %v", rec.Status, rec.ID, err)
			return
		}
		if s.onPersist != nil {
			s.onPersist(rec)
		}
	}()
}

func (s *Session) removeAsync(id string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.PersistTimeout)
		defer cancel()
		if err := s.store.DeleteTimer(ctx, id); err != nil && !errors.Is(err, domain.ErrTimerNotFound) {
			metrics.StoreFailures.WithLabelValues("delete").Inc()
			log.Printf("[session] remove resumed record %s: %v", id, err)
		}
	}()
}

func (s *Session) rejectLocked(reason string, err error) error {
	metrics.RejectedActions.WithLabelValues(reason).Inc()
	log.Printf("[session] rejected: %v", err)
	return err
}
