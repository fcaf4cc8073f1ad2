package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"worktrack/internal/apperror"
	"worktrack/internal/models"
)

const worklogColumns = "id, date, user_id, task_id, hours, comment, progress, is_done, created_at"

type worklogRepo struct {
	db dbtx
}

func scanWorklog(row interface{ Scan(...interface{}) error }) (*models.Worklog, error) {
	var w models.Worklog
	err := row.Scan(&w.ID, &w.Date, &w.UserID, &w.TaskID, &w.Hours, &w.Comment, &w.Progress, &w.IsDone, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	w.Date = models.DateOf(w.Date)
	return &w, nil
}

func (r *worklogRepo) Find(ctx context.Context, userID, taskID int, day time.Time) (*models.Worklog, error) {
	w, err := scanWorklog(r.db.QueryRowContext(ctx,
		"SELECT "+worklogColumns+" FROM worklogs WHERE user_id = $1 AND task_id = $2 AND date = $3",
		userID, taskID, models.DateOf(day)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("Worklog not found")
	}
	if err != nil {
		return nil, fmt.Errorf("select worklog: %w", err)
	}
	return w, nil
}

// Insert resolves a concurrent insert for the same (user, task, date) by
// overwriting the row that won the race.
func (r *worklogRepo) Insert(ctx context.Context, w *models.Worklog) error {
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO worklogs (date, user_id, task_id, hours, comment, progress, is_done, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, task_id, date) DO UPDATE
		SET hours = EXCLUDED.hours, comment = EXCLUDED.comment, progress = EXCLUDED.progress, is_done = EXCLUDED.is_done
		RETURNING id`,
		models.DateOf(w.Date), w.UserID, w.TaskID, w.Hours, w.Comment, w.Progress, w.IsDone, w.CreatedAt,
	).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("insert worklog: %w", err)
	}
	return nil
}

func (r *worklogRepo) Update(ctx context.Context, w *models.Worklog) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE worklogs SET hours = $1, comment = $2, progress = $3, is_done = $4 WHERE id = $5",
		w.Hours, w.Comment, w.Progress, w.IsDone, w.ID)
	if err != nil {
		return fmt.Errorf("update worklog: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("Worklog not found")
	}
	return nil
}

func (r *worklogRepo) list(ctx context.Context, query string, args ...interface{}) ([]models.Worklog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select worklogs: %w", err)
	}
	defer rows.Close()

	logs := []models.Worklog{}
	for rows.Next() {
		w, err := scanWorklog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan worklog: %w", err)
		}
		logs = append(logs, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate worklogs: %w", err)
	}
	return logs, nil
}

func (r *worklogRepo) ListByUserDay(ctx context.Context, userID int, day time.Time) ([]models.Worklog, error) {
	return r.list(ctx,
		"SELECT "+worklogColumns+" FROM worklogs WHERE user_id = $1 AND date = $2 ORDER BY created_at ASC, id ASC",
		userID, models.DateOf(day))
}

func (r *worklogRepo) ListByDay(ctx context.Context, day time.Time) ([]models.Worklog, error) {
	return r.list(ctx,
		"SELECT "+worklogColumns+" FROM worklogs WHERE date = $1 ORDER BY created_at ASC, id ASC",
		models.DateOf(day))
}

func (r *worklogRepo) sum(ctx context.Context, query string, args ...interface{}) (float64, error) {
	var total float64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum worklog hours: %w", err)
	}
	return total, nil
}

func (r *worklogRepo) SumHoursByTask(ctx context.Context, taskID int) (float64, error) {
	return r.sum(ctx, "SELECT COALESCE(SUM(hours), 0) FROM worklogs WHERE task_id = $1", taskID)
}

func (r *worklogRepo) SumHoursByUserDay(ctx context.Context, userID int, day time.Time) (float64, error) {
	return r.sum(ctx, "SELECT COALESCE(SUM(hours), 0) FROM worklogs WHERE user_id = $1 AND date = $2",
		userID, models.DateOf(day))
}
