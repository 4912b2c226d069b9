package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/tempo-sh/tempo/internal/domain"
)

// ─── Routines ───────────────────────────────────────────────────────────────

// SaveRoutine creates a routine. Duplicate names are rejected.
func (d *DB) SaveRoutine(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrEmptyRoutine
	}
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO routines (name, created_at) VALUES (?, ?)`,
		name, time.Now().Unix(),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return domain.ErrRoutineExists
	}
	return err
}

// ListRoutines returns all routines with their completions, oldest first.
func (d *DB) ListRoutines(ctx context.Context) ([]*domain.Routine, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT name, created_at FROM routines ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routines []*domain.Routine
	for rows.Next() {
		var r domain.Routine
		var createdAt int64
		if err := rows.Scan(&r.Name, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(createdAt, 0)
		routines = append(routines, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, r := range routines {
		if r.Completions, err = d.completions(ctx, r.Name); err != nil {
			return nil, err
		}
	}
	return routines, nil
}

// DeleteRoutine removes a routine; its completions cascade.
func (d *DB) DeleteRoutine(ctx context.Context, name string) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM routines WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrRoutineNotFound
	}
	return nil
}

// CompleteRoutine records a date-stamped completion.
func (d *DB) CompleteRoutine(ctx context.Context, name string, at time.Time) error {
	var exists int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM routines WHERE name = ?`, name).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return domain.ErrRoutineNotFound
	}

	_, err = d.db.ExecContext(ctx,
		`INSERT INTO routine_completions (routine, completed_at) VALUES (?, ?)`,
		name, at.Unix(),
	)
	return err
}

// DeleteCompletion removes any completions on the given calendar day.
func (d *DB) DeleteCompletion(ctx context.Context, name string, day time.Time) error {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	_, err := d.db.ExecContext(ctx,
		`DELETE FROM routine_completions WHERE routine = ? AND completed_at >= ? AND completed_at < ?`,
		name, start.Unix(), end.Unix(),
	)
	return err
}

func (d *DB) completions(ctx context.Context, name string) ([]time.Time, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT completed_at FROM routine_completions WHERE routine = ? ORDER BY completed_at ASC`,
		name,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var ts int64
		if err := rows.Scan(&ts); err != nil {
			return nil, err
		}
		out = append(out, time.Unix(ts, 0))
	}
	return out, rows.Err()
}
