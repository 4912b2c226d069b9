package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tempo-sh/tempo/internal/domain"
	"github.com/tempo-sh/tempo/internal/infra/sqlite"
	"github.com/tempo-sh/tempo/internal/session"
)

type noopController struct{}

func (noopController) Start(string, int) {}
func (noopController) Stop()             {}

func newTestClient(t *testing.T) (*Client, *session.Session) {
	t.Helper()

	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sess := session.New(session.DefaultConfig(), noopController{}, db)
	srv := httptest.NewServer(NewServer(sess, db, db).Handler())
	t.Cleanup(srv.Close)

	return NewClient(srv.URL), sess
}

// ─── Current timer surface ──────────────────────────────────────────────────

func TestAPI_CurrentTimer(t *testing.T) {
	c, _ := newTestClient(t)

	cur, err := c.Current()
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if cur.Status != domain.TimerPaused {
		t.Errorf("Status = %q, want PAUSED", cur.Status)
	}
	if cur.Duration != 600 || cur.RemainingTime != 600 {
		t.Errorf("timer = %d/%d, want 600/600", cur.RemainingTime, cur.Duration)
	}
}

func TestAPI_ToggleAndPause(t *testing.T) {
	c, _ := newTestClient(t)

	cur, err := c.Toggle()
	if err != nil {
		t.Fatalf("Toggle() error: %v", err)
	}
	if cur.Status != domain.TimerRunning {
		t.Errorf("Status = %q, want RUNNING", cur.Status)
	}

	cur, err = c.Pause()
	if err != nil {
		t.Fatalf("Pause() error: %v", err)
	}
	if cur.Status != domain.TimerPaused {
		t.Errorf("Status = %q, want PAUSED", cur.Status)
	}
}

func TestAPI_AddTime(t *testing.T) {
	c, _ := newTestClient(t)

	cur, err := c.AddTime(1200)
	if err != nil {
		t.Fatalf("AddTime() error: %v", err)
	}
	if cur.Duration != 1800 {
		t.Errorf("Duration = %d, want 1800", cur.Duration)
	}

	if _, err := c.AddTime(5000); err == nil {
		t.Error("AddTime past the cap should fail")
	}
}

func TestAPI_TaskAndTags(t *testing.T) {
	c, _ := newTestClient(t)

	if _, err := c.EditTask("deep work"); err != nil {
		t.Fatalf("EditTask() error: %v", err)
	}
	cur, err := c.CommitTask()
	if err != nil {
		t.Fatalf("CommitTask() error: %v", err)
	}
	if cur.Task != "deep work" {
		t.Errorf("Task = %q, want deep work", cur.Task)
	}

	if _, err := c.AddTag("focus"); err != nil {
		t.Fatalf("AddTag() error: %v", err)
	}
	if _, err := c.AddTag("focus"); err == nil {
		t.Error("duplicate AddTag should fail")
	}

	cur, err = c.RemoveTag("focus")
	if err != nil {
		t.Fatalf("RemoveTag() error: %v", err)
	}
	if len(cur.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", cur.Tags)
	}
}

func TestAPI_RemoveTagWhileRunningRejected(t *testing.T) {
	c, _ := newTestClient(t)

	if _, err := c.AddTag("focus"); err != nil {
		t.Fatalf("AddTag() error: %v", err)
	}
	if _, err := c.Toggle(); err != nil {
		t.Fatalf("Toggle() error: %v", err)
	}

	if _, err := c.RemoveTag("focus"); err == nil {
		t.Error("RemoveTag on a running timer should fail")
	}
	if _, err := c.Pause(); err != nil {
		t.Fatal(err)
	}
	cur, err := c.Current()
	if err != nil {
		t.Fatal(err)
	}
	if len(cur.Tags) != 1 || cur.Tags[0] != "focus" {
		t.Errorf("Tags = %v, a rejected removal must not mutate", cur.Tags)
	}
}

func TestAPI_QueueEmptyTaskRejected(t *testing.T) {
	c, _ := newTestClient(t)
	if _, err := c.Queue(); err == nil {
		t.Error("Queue() with no task should fail")
	}
}

// ─── History ────────────────────────────────────────────────────────────────

func TestAPI_CompleteCreatesRecord(t *testing.T) {
	c, sess := newTestClient(t)

	if _, err := c.EditTask("finish me"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Complete(); err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	sess.Flush()

	records, err := c.ListTimers(string(domain.TimerCompleted), "", 0)
	if err != nil {
		t.Fatalf("ListTimers() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].Task != "finish me" {
		t.Errorf("Task = %q, want finish me", records[0].Task)
	}
}

func TestAPI_ListTimersSince(t *testing.T) {
	c, sess := newTestClient(t)

	c.EditTask("recent")
	c.Complete()
	sess.Flush()

	yesterday := time.Now().Add(-24 * time.Hour).Format(time.RFC3339)
	records, err := c.ListTimers("", yesterday, 0)
	if err != nil {
		t.Fatalf("ListTimers() error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records since yesterday = %d, want 1", len(records))
	}

	tomorrow := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
	records, err = c.ListTimers("", tomorrow, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("records since tomorrow = %d, want 0", len(records))
	}

	if _, err := c.ListTimers("", "not-a-date", 0); err == nil {
		t.Error("malformed since should fail")
	}
}

func TestAPI_DeleteTimer(t *testing.T) {
	c, sess := newTestClient(t)

	c.EditTask("gone")
	c.Complete()
	sess.Flush()

	records, _ := c.ListTimers("", "", 0)
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}

	if err := c.DeleteTimer(records[0].ID); err != nil {
		t.Fatalf("DeleteTimer() error: %v", err)
	}
	if err := c.DeleteTimer(records[0].ID); err == nil {
		t.Error("second delete should report not found")
	}
}

func TestAPI_QueueAndResume(t *testing.T) {
	c, sess := newTestClient(t)

	c.EditTask("later")
	if _, err := c.Queue(); err != nil {
		t.Fatalf("Queue() error: %v", err)
	}
	sess.Flush()

	queued, err := c.ListTimers(string(domain.TimerQueued), "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(queued) != 1 {
		t.Fatalf("queued records = %d, want 1", len(queued))
	}

	cur, err := c.Resume(queued[0].ID)
	if err != nil {
		t.Fatalf("Resume() error: %v", err)
	}
	if cur.Status != domain.TimerRunning {
		t.Errorf("Status = %q, want RUNNING", cur.Status)
	}
	if cur.Task != "later" {
		t.Errorf("Task = %q, want later", cur.Task)
	}
}

func TestAPI_ResumeUnknownIs404(t *testing.T) {
	c, _ := newTestClient(t)
	if _, err := c.Resume("nope"); err == nil {
		t.Error("Resume(unknown) should fail")
	}
}

// ─── Routines ───────────────────────────────────────────────────────────────

func TestAPI_Routines(t *testing.T) {
	c, _ := newTestClient(t)

	if err := c.AddRoutine("stretch"); err != nil {
		t.Fatalf("AddRoutine() error: %v", err)
	}
	if err := c.AddRoutine("stretch"); err == nil {
		t.Error("duplicate routine should fail")
	}

	if err := c.CompleteRoutine("stretch"); err != nil {
		t.Fatalf("CompleteRoutine() error: %v", err)
	}

	routines, err := c.ListRoutines()
	if err != nil {
		t.Fatalf("ListRoutines() error: %v", err)
	}
	if len(routines) != 1 || routines[0].Name != "stretch" {
		t.Fatalf("routines = %v, want [stretch]", routines)
	}
	if len(routines[0].Completions) != 1 {
		t.Errorf("completions = %d, want 1", len(routines[0].Completions))
	}

	if err := c.DeleteRoutine("stretch"); err != nil {
		t.Fatalf("DeleteRoutine() error: %v", err)
	}
	if err := c.CompleteRoutine("stretch"); err == nil {
		t.Error("completing a deleted routine should fail")
	}
}

func TestAPI_DeleteCompletion(t *testing.T) {
	c, _ := newTestClient(t)

	c.AddRoutine("stretch")
	c.CompleteRoutine("stretch")

	if err := c.DeleteCompletion("stretch", ""); err != nil {
		t.Fatalf("DeleteCompletion() error: %v", err)
	}
	routines, _ := c.ListRoutines()
	if len(routines[0].Completions) != 0 {
		t.Errorf("completions = %v, want none", routines[0].Completions)
	}
}
