package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tempo-sh/tempo/internal/domain"
)

// ─── Timer Records ──────────────────────────────────────────────────────────

// SaveTimer inserts or updates a historical timer record.
func (d *DB) SaveTimer(ctx context.Context, rec *domain.Timer) error {
	tags, err := json.Marshal(rec.Tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	_, err = d.db.ExecContext(ctx,
		`INSERT INTO timers (id, duration, remaining_time, status, created_at, completed_at, tags, task)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			duration=excluded.duration,
			remaining_time=excluded.remaining_time,
			status=excluded.status,
			completed_at=excluded.completed_at,
			tags=excluded.tags,
			task=excluded.task`,
		rec.ID, rec.Duration, rec.RemainingTime, string(rec.Status),
		rec.CreatedAt.Unix(), nullableUnix(rec.CompletedAt), string(tags), rec.Task,
	)
	return err
}

// GetTimer retrieves a single record by id. Returns (nil, nil) when absent.
func (d *DB) GetTimer(ctx context.Context, id string) (*domain.Timer, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, duration, remaining_time, status, created_at, completed_at, tags, task
		 FROM timers WHERE id = ?`, id,
	)
	return scanTimer(row)
}

// ListTimers returns records matching the filter, newest first. Completed
// records sort by completion time, queued ones by creation time.
func (d *DB) ListTimers(ctx context.Context, f domain.TimerFilter) ([]*domain.Timer, error) {
	q := `SELECT id, duration, remaining_time, status, created_at, completed_at, tags, task
	      FROM timers WHERE 1=1`
	var args []any

	if f.Status != "" {
		q += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if !f.Since.IsZero() {
		q += ` AND created_at >= ?`
		args = append(args, f.Since.Unix())
	}
	q += ` ORDER BY COALESCE(completed_at, created_at) DESC`
	if f.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := d.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Timer
	for rows.Next() {
		rec, err := scanTimer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteTimer removes a record.
func (d *DB) DeleteTimer(ctx context.Context, id string) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM timers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrTimerNotFound
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func scanTimer(s scanner) (*domain.Timer, error) {
	var (
		rec         domain.Timer
		status      string
		createdAt   int64
		completedAt sql.NullInt64
		tags        string
	)

	err := s.Scan(&rec.ID, &rec.Duration, &rec.RemainingTime, &status,
		&createdAt, &completedAt, &tags, &rec.Task)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	rec.Status = domain.TimerStatus(status)
	rec.CreatedAt = time.Unix(createdAt, 0)
	if completedAt.Valid {
		rec.CompletedAt = time.Unix(completedAt.Int64, 0)
	}
	if err := json.Unmarshal([]byte(tags), &rec.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return &rec, nil
}

func nullableUnix(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Unix()
}
