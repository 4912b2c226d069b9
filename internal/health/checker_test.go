package health

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tempo-sh/tempo/internal/infra/sqlite"
	"github.com/tempo-sh/tempo/internal/session"
)

type noopController struct{}

func (noopController) Start(string, int) {}
func (noopController) Stop()             {}

func newTestDeps(t *testing.T) (*sqlite.DB, string, *session.Session) {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	sess := session.New(session.DefaultConfig(), noopController{}, db)
	return db, dir, sess
}

// ─── Checker Tests ──────────────────────────────────────────────────────────

func TestNewChecker(t *testing.T) {
	db, dir, sess := newTestDeps(t)

	c := NewChecker(db, dir, sess)
	if c == nil {
		t.Fatal("NewChecker() returned nil")
	}
	if len(c.checks) != 3 {
		t.Errorf("checks = %d, want 3", len(c.checks))
	}
}

func TestChecker_RunAllHealthy(t *testing.T) {
	db, dir, sess := newTestDeps(t)

	c := NewChecker(db, dir, sess)
	c.runAll(context.Background())

	for _, s := range c.Statuses() {
		if !s.Healthy {
			t.Errorf("check %q should be healthy, got error: %s", s.Name, s.Error)
		}
	}
	if !c.IsHealthy() {
		t.Error("IsHealthy() should be true when all checks pass")
	}
}

func TestChecker_IsHealthy_BeforeRun(t *testing.T) {
	db, dir, sess := newTestDeps(t)
	c := NewChecker(db, dir, sess)

	// Before any run there are no statuses, so vacuously healthy.
	if !c.IsHealthy() {
		t.Error("IsHealthy() should be true before first run")
	}
}

func TestChecker_DataDirMissingIsHealthy(t *testing.T) {
	db, _, sess := newTestDeps(t)
	c := NewChecker(db, filepath.Join(t.TempDir(), "nonexistent"), sess)
	c.runAll(context.Background())

	if !c.IsHealthy() {
		t.Error("a not-yet-created data dir should not fail health")
	}
}

func TestChecker_DataDirIsFile(t *testing.T) {
	db, _, sess := newTestDeps(t)
	path := filepath.Join(t.TempDir(), "data")
	os.WriteFile(path, []byte("not a dir"), 0644)

	c := NewChecker(db, path, sess)
	c.runAll(context.Background())

	for _, s := range c.Statuses() {
		if s.Name == "data_dir" && s.Healthy {
			t.Error("data_dir should fail when the path is a file")
		}
	}
}

func TestChecker_FailingCheck(t *testing.T) {
	c := &Checker{
		checks: []Check{
			{
				Name: "always_fail",
				CheckFn: func(ctx context.Context) error {
					return os.ErrPermission
				},
			},
		},
	}

	c.runAll(context.Background())

	statuses := c.Statuses()
	if statuses[0].Healthy {
		t.Error("always_fail check should not be healthy")
	}
	if statuses[0].Error == "" {
		t.Error("error message should be populated")
	}
}

func TestChecker_StatusesCopy(t *testing.T) {
	db, dir, sess := newTestDeps(t)
	c := NewChecker(db, dir, sess)
	c.runAll(context.Background())

	s1 := c.Statuses()
	s2 := c.Statuses()
	if len(s1) > 0 {
		s1[0].Healthy = false
		if !s2[0].Healthy {
			t.Error("Statuses() should return a copy, not a reference")
		}
	}
}
