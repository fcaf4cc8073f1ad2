package tracker

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"worktrack/internal/apperror"
	"worktrack/internal/models"
	"worktrack/internal/repository"
	"worktrack/pkg/crypto"
	"worktrack/pkg/logger"

	"go.uber.org/zap"
)

type NewUser struct {
	Name     string
	Login    string
	Password string
	Role     string
}

// CreateUser adds an active user. The role is case-insensitive; the login
// must be unused.
func CreateUser(ctx context.Context, uow *repository.UnitOfWork, actor *models.User, in NewUser) (*models.User, error) {
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, apperror.InvalidInput("Bad role")
	}
	name := strings.TrimSpace(in.Name)
	login := strings.TrimSpace(in.Login)
	if name == "" || login == "" || in.Password == "" {
		return nil, apperror.InvalidInput("Empty fields")
	}

	exists, err := uow.Users.LoginExists(ctx, login)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.InvalidInput("Login already exists")
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &models.User{Name: name, Login: login, Role: role, PasswordHash: hash, IsActive: true}
	if err := uow.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	logger.AuditLogger.Info("User created",
		zap.Int("actor_id", actor.ID), zap.Int("user_id", u.ID), zap.String("role", string(role)))
	return u, nil
}

// ToggleActive flips the target's is_active flag. Admins cannot deactivate
// themselves.
func ToggleActive(ctx context.Context, uow *repository.UnitOfWork, actor *models.User, targetID int) (*models.User, error) {
	target, err := uow.Users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target.ID == actor.ID {
		logger.SecurityLogger.Warn("Self deactivation attempt", zap.Int("user_id", actor.ID))
		return nil, apperror.InvalidInput("Cannot deactivate yourself")
	}

	target.IsActive = !target.IsActive
	if err := uow.Users.SetActive(ctx, target.ID, target.IsActive); err != nil {
		return nil, err
	}
	logger.AuditLogger.Info("User activation toggled",
		zap.Int("actor_id", actor.ID), zap.Int("user_id", target.ID), zap.Bool("is_active", target.IsActive))
	return target, nil
}

// NewTask carries raw form values; CreateTask parses them.
type NewTask struct {
	Title        string
	AssigneeID   string
	StartDate    string
	EndDate      string
	PlannedHours string
	Priority     string
}

const DefaultPriority = 3

func CreateTask(ctx context.Context, uow *repository.UnitOfWork, actor *models.User, in NewTask) (*models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperror.InvalidInput("Title is required")
	}
	start, err := models.ParseDate(in.StartDate)
	if err != nil {
		return nil, apperror.InvalidInput("Invalid start date")
	}
	end, err := models.ParseDate(in.EndDate)
	if err != nil {
		return nil, apperror.InvalidInput("Invalid end date")
	}

	planned := 0.0
	if s := strings.TrimSpace(in.PlannedHours); s != "" {
		planned, err = strconv.ParseFloat(s, 64)
		if err != nil || planned < 0 {
			return nil, apperror.InvalidInput("Invalid planned hours")
		}
	}
	priority := DefaultPriority
	if s := strings.TrimSpace(in.Priority); s != "" {
		priority, err = strconv.Atoi(s)
		if err != nil {
			return nil, apperror.InvalidInput("Invalid priority")
		}
	}

	var assignee sql.NullInt64
	if s := strings.TrimSpace(in.AssigneeID); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			return nil, apperror.InvalidInput("Invalid assignee")
		}
		if _, err := uow.Users.GetByID(ctx, id); err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return nil, apperror.InvalidInput("Unknown assignee")
			}
			return nil, err
		}
		assignee = sql.NullInt64{Int64: int64(id), Valid: true}
	}

	t := &models.Task{
		Title:           title,
		AssigneeID:      assignee,
		StartDate:       start,
		EndDate:         end,
		PlannedHours:    planned,
		Priority:        priority,
		Status:          models.StatusTodo,
		CurrentProgress: 0,
	}
	if err := uow.Tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	logger.AuditLogger.Info("Task created", zap.Int("actor_id", actor.ID), zap.Int("task_id", t.ID))
	return t, nil
}

// EnsureAdmin creates an admin account unless login is already taken.
// It reports whether a user was created.
func EnsureAdmin(ctx context.Context, uow *repository.UnitOfWork, name, login, password string) (bool, error) {
	exists, err := uow.Users.LoginExists(ctx, strings.TrimSpace(login))
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	system := &models.User{Name: "system"}
	if _, err := CreateUser(ctx, uow, system, NewUser{Name: name, Login: login, Password: password, Role: string(models.RoleAdmin)}); err != nil {
		return false, err
	}
	return true, nil
}
