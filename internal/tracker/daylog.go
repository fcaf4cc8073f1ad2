// Package tracker holds the state-changing operations: day logging by
// employees and user/task management by admins.
package tracker

import (
	"context"
	"errors"
	"strings"
	"time"

	"worktrack/internal/apperror"
	"worktrack/internal/models"
	"worktrack/internal/repository"
	"worktrack/pkg/logger"

	"go.uber.org/zap"
)

type DayLogInput struct {
	Date     time.Time
	TaskID   int
	Hours    float64
	Comment  string
	Progress int
	Done     bool
}

type Outcome string

const (
	OutcomeSkipped Outcome = "skipped"
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
)

func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Transition derives the final progress and task status from a submission.
// Done forces progress to 100.
func Transition(progress int, done bool) (int, models.TaskStatus) {
	if done {
		return 100, models.StatusDone
	}
	progress = ClampProgress(progress)
	if progress > 0 {
		return progress, models.StatusInProgress
	}
	return progress, models.StatusTodo
}

// LogDay records user's hours and progress on one task for one day, keeping a
// single worklog per (user, task, date). Empty submissions are skipped
// without touching storage. Tasks not assigned to user fail with NotFound.
//
// Negative hours fail with InvalidInput before the empty check, so a form with
// hours=-1 and nothing else is rejected rather than skipped.
func LogDay(ctx context.Context, uow *repository.UnitOfWork, user *models.User, in DayLogInput) (Outcome, error) {
	if in.Hours < 0 {
		return "", apperror.InvalidInput("Hours must not be negative")
	}
	comment := strings.TrimSpace(in.Comment)
	progress, status := Transition(in.Progress, in.Done)

	if in.Hours <= 0 && comment == "" && progress == 0 && !in.Done {
		return OutcomeSkipped, nil
	}

	task, err := uow.Tasks.GetAssigned(ctx, in.TaskID, user.ID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			logger.SecurityLogger.Warn("Day log against foreign or missing task",
				zap.Int("user_id", user.ID), zap.Int("task_id", in.TaskID))
		}
		return "", err
	}

	day := models.DateOf(in.Date)
	outcome := OutcomeUpdated
	existing, err := uow.Worklogs.Find(ctx, user.ID, task.ID, day)
	switch {
	case err == nil:
		existing.Hours = in.Hours
		existing.Comment = comment
		existing.Progress = progress
		existing.IsDone = in.Done
		if err := uow.Worklogs.Update(ctx, existing); err != nil {
			return "", err
		}
	case errors.Is(err, apperror.ErrNotFound):
		outcome = OutcomeCreated
		wl := &models.Worklog{
			Date:     day,
			UserID:   user.ID,
			TaskID:   task.ID,
			Hours:    in.Hours,
			Comment:  comment,
			Progress: progress,
			IsDone:   in.Done,
		}
		if err := uow.Worklogs.Insert(ctx, wl); err != nil {
			return "", err
		}
	default:
		return "", err
	}

	if err := uow.Tasks.UpdateProgress(ctx, task.ID, status, progress); err != nil {
		return "", err
	}

	logger.AuditLogger.Info("Worklog saved",
		zap.String("outcome", string(outcome)),
		zap.Int("user_id", user.ID),
		zap.Int("task_id", task.ID),
		zap.String("date", models.FormatDate(day)),
		zap.Float64("hours", in.Hours),
		zap.Int("progress", progress),
		zap.String("status", string(status)),
	)
	return outcome, nil
}
