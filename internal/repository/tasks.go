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

const taskColumns = "id, parent_id, title, assignee_id, start_date, end_date, planned_hours, priority, status, current_progress"

type taskRepo struct {
	db dbtx
}

func scanTask(row interface{ Scan(...interface{}) error }) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.ParentID, &t.Title, &t.AssigneeID, &t.StartDate, &t.EndDate,
		&t.PlannedHours, &t.Priority, &t.Status, &t.CurrentProgress)
	if err != nil {
		return nil, err
	}
	t.StartDate = models.DateOf(t.StartDate)
	t.EndDate = models.DateOf(t.EndDate)
	return &t, nil
}

func (r *taskRepo) Create(ctx context.Context, t *models.Task) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tasks (parent_id, title, assignee_id, start_date, end_date, planned_hours, priority, status, current_progress)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		t.ParentID, t.Title, t.AssigneeID, t.StartDate, t.EndDate,
		t.PlannedHours, t.Priority, t.Status, t.CurrentProgress,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *taskRepo) GetAssigned(ctx context.Context, id, assigneeID int) (*models.Task, error) {
	t, err := scanTask(r.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1 AND assignee_id = $2", id, assigneeID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("Task not found or not assigned to you")
	}
	if err != nil {
		return nil, fmt.Errorf("select task: %w", err)
	}
	return t, nil
}

func (r *taskRepo) list(ctx context.Context, query string, args ...interface{}) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepo) ListByDeadline(ctx context.Context) ([]models.Task, error) {
	return r.list(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY end_date ASC, priority DESC, id ASC")
}

func (r *taskRepo) ListByPriority(ctx context.Context) ([]models.Task, error) {
	return r.list(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY priority DESC, end_date ASC, id ASC")
}

func (r *taskRepo) ListAssignedOn(ctx context.Context, assigneeID int, day time.Time) ([]models.Task, error) {
	return r.list(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE assignee_id = $1 AND start_date <= $2 AND end_date >= $2
		ORDER BY priority DESC, end_date ASC, id ASC`,
		assigneeID, models.DateOf(day))
}

func (r *taskRepo) UpdateProgress(ctx context.Context, id int, status models.TaskStatus, progress int) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET status = $1, current_progress = $2 WHERE id = $3", status, progress, id)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("Task not found")
	}
	return nil
}
