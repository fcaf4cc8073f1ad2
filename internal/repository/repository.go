// Package repository persists users, tasks, worklogs and sessions and groups
// them into a per-request unit of work.
package repository

import (
	"context"
	"time"

	"worktrack/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	// GetActiveByLogin returns only users with is_active = true.
	GetActiveByLogin(ctx context.Context, login string) (*models.User, error)
	LoginExists(ctx context.Context, login string) (bool, error)
	// List orders by role, then name.
	List(ctx context.Context) ([]models.User, error)
	// ListActiveByRoles orders by name.
	ListActiveByRoles(ctx context.Context, roles ...models.Role) ([]models.User, error)
	SetActive(ctx context.Context, id int, active bool) error
}

type TaskRepository interface {
	Create(ctx context.Context, t *models.Task) error
	// GetAssigned finds a task by id only if assigneeID owns it.
	GetAssigned(ctx context.Context, id, assigneeID int) (*models.Task, error)
	// ListByDeadline orders by end_date asc, priority desc.
	ListByDeadline(ctx context.Context) ([]models.Task, error)
	// ListByPriority orders by priority desc, end_date asc.
	ListByPriority(ctx context.Context) ([]models.Task, error)
	// ListAssignedOn returns tasks of assigneeID whose date range contains day,
	// ordered by priority desc, end_date asc.
	ListAssignedOn(ctx context.Context, assigneeID int, day time.Time) ([]models.Task, error)
	UpdateProgress(ctx context.Context, id int, status models.TaskStatus, progress int) error
}

type WorklogRepository interface {
	Find(ctx context.Context, userID, taskID int, day time.Time) (*models.Worklog, error)
	Insert(ctx context.Context, w *models.Worklog) error
	Update(ctx context.Context, w *models.Worklog) error
	ListByUserDay(ctx context.Context, userID int, day time.Time) ([]models.Worklog, error)
	// ListByDay orders by created_at asc.
	ListByDay(ctx context.Context, day time.Time) ([]models.Worklog, error)
	SumHoursByTask(ctx context.Context, taskID int) (float64, error)
	SumHoursByUserDay(ctx context.Context, userID int, day time.Time) (float64, error)
}

type SessionRepository interface {
	Create(ctx context.Context, s *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	// DeleteByToken is a no-op when no session has token.
	DeleteByToken(ctx context.Context, token string) error
}

type Repositories struct {
	Users    UserRepository
	Tasks    TaskRepository
	Worklogs WorklogRepository
	Sessions SessionRepository
}
