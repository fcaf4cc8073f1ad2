package web

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"worktrack/internal/apperror"
	"worktrack/internal/config"
	"worktrack/internal/middleware"
	"worktrack/internal/models"
	"worktrack/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// parseForm binds the request body into req and runs the shared validator.
func parseForm(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		logFormRejected(c, "Bad request", err)
		return apperror.Wrap(apperror.KindInvalidInput, "Bad request", err)
	}
	if err := config.Validate.Struct(req); err != nil {
		logFormRejected(c, "Validation error", err)
		return apperror.Wrap(apperror.KindInvalidInput, "Validation error", err)
	}
	return nil
}

// logFormRejected mencatat konteks request di level debug. Isi form tidak
// dicatat karena bisa berisi password.
func logFormRejected(c *fiber.Ctx, reason string, err error) {
	logger.ContextLogger.Debug("Form rejected",
		zap.String("request_id", middleware.RequestID(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.String("content_type", c.Get(fiber.HeaderContentType)),
		zap.String("reason", reason),
		zap.Error(err),
	)
}

// dateParam reads an ISO date from query key, defaulting to today.
func dateParam(c *fiber.Ctx, key string, today time.Time) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return models.DateOf(today), nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperror.InvalidInput("Invalid date")
	}
	return d, nil
}

type loginForm struct {
	Login    string `form:"login" validate:"required,max=100"`
	Password string `form:"password" validate:"required"`
}

type createUserForm struct {
	Name     string `form:"name" validate:"max=200"`
	Login    string `form:"login" validate:"max=100"`
	Password string `form:"password"`
	Role     string `form:"role"`
}

type toggleActiveForm struct {
	UserID int `form:"user_id" validate:"required,gt=0"`
}

type createTaskForm struct {
	Title        string `form:"title" validate:"max=500"`
	AssigneeID   string `form:"assignee_id"`
	StartDate    string `form:"start_date" validate:"required"`
	EndDate      string `form:"end_date" validate:"required"`
	PlannedHours string `form:"planned_hours"`
	Priority     string `form:"priority"`
}

type dayLogForm struct {
	Date     string `form:"d" validate:"required"`
	TaskID   int    `form:"task_id" validate:"required,gt=0"`
	Hours    string `form:"hours"`
	Comment  string `form:"comment" validate:"max=10000"`
	Progress string `form:"progress"`
	IsDone   string `form:"is_done"`
}

func parseHours(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, apperror.InvalidInput("Invalid hours")
	}
	return h, nil
}

// parseProgress treats anything non-numeric as 0. Numbers too large for an
// int saturate so the tracker still clamps them to 0 or 100.
func parseProgress(s string) int {
	s = strings.TrimSpace(s)
	p, err := strconv.Atoi(s)
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
		if strings.HasPrefix(s, "-") {
			return 0
		}
		return 100
	}
	if err != nil {
		return 0
	}
	return p
}
