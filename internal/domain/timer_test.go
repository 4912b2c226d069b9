package domain

import (
	"testing"
	"time"
)

func TestNewTimer(t *testing.T) {
	tm := NewTimer(DefaultDuration)

	if tm.ID == "" {
		t.Error("ID should be assigned at creation")
	}
	if tm.Duration != 600 {
		t.Errorf("Duration = %d, want 600", tm.Duration)
	}
	if tm.RemainingTime != tm.Duration {
		t.Errorf("RemainingTime = %d, want %d", tm.RemainingTime, tm.Duration)
	}
	if tm.Status != TimerPaused {
		t.Errorf("Status = %q, want %q", tm.Status, TimerPaused)
	}
	if tm.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if !tm.CompletedAt.IsZero() {
		t.Error("CompletedAt should be unset at creation")
	}
	if len(tm.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", tm.Tags)
	}
}

func TestTimer_IsTerminal(t *testing.T) {
	tests := []struct {
		status TimerStatus
		want   bool
	}{
		{TimerPaused, false},
		{TimerRunning, false},
		{TimerCompleted, true},
		{TimerQueued, true},
	}
	for _, tt := range tests {
		tm := &Timer{Status: tt.status}
		if got := tm.IsTerminal(); got != tt.want {
			t.Errorf("IsTerminal() with %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestTimer_Record_MintsFreshID(t *testing.T) {
	tm := NewTimer(DefaultDuration)
	tm.Task = "write report"
	tm.NewTask = "staged"
	tm.NewTag = "staged-tag"

	rec := tm.Record(TimerCompleted)

	if rec.ID == tm.ID {
		t.Error("record should not reuse the editing entity's id")
	}
	if rec.Status != TimerCompleted {
		t.Errorf("Status = %q, want COMPLETED", rec.Status)
	}
	if rec.CompletedAt.IsZero() {
		t.Error("CompletedAt should be set for a completed record")
	}
	if rec.NewTask != "" || rec.NewTag != "" {
		t.Error("staging fields must be stripped from records")
	}
	if tm.Status != TimerPaused {
		t.Error("Record() must not mutate the source entity")
	}
}

func TestTimer_Record_QueuedHasNoCompletedAt(t *testing.T) {
	tm := NewTimer(DefaultDuration)
	rec := tm.Record(TimerQueued)

	if rec.Status != TimerQueued {
		t.Errorf("Status = %q, want QUEUED", rec.Status)
	}
	if !rec.CompletedAt.IsZero() {
		t.Error("queued record should not carry a completion time")
	}
}

func TestTimer_Clone_IndependentTags(t *testing.T) {
	tm := NewTimer(DefaultDuration)
	tm.Tags = []string{"work"}

	c := tm.Clone()
	c.Tags = append(c.Tags, "deep")

	if len(tm.Tags) != 1 {
		t.Errorf("source Tags = %v, clone append must not leak", tm.Tags)
	}
}

func TestTimer_HasTag(t *testing.T) {
	tm := &Timer{Tags: []string{"work", "focus"}}
	if !tm.HasTag("work") {
		t.Error("HasTag(work) = false, want true")
	}
	if tm.HasTag("missing") {
		t.Error("HasTag(missing) = true, want false")
	}
}

func TestRoutine_CompletedOn(t *testing.T) {
	day := time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local)
	r := &Routine{Name: "stretch", Completions: []time.Time{day}}

	if !r.CompletedOn(time.Date(2025, 3, 14, 23, 0, 0, 0, time.Local)) {
		t.Error("same calendar day should count as completed")
	}
	if r.CompletedOn(day.AddDate(0, 0, 1)) {
		t.Error("next day should not count as completed")
	}
}
