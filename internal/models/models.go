package models

import (
	"database/sql"
	"strings"
	"time"
)

// Role menentukan endpoint mana yang boleh diakses user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleViewer   Role = "viewer"
)

// ParseRole normalizes s (trim, lower-case) and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleEmployee, RoleViewer:
		return r, true
	default:
		return "", false
	}
}

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Login        string `json:"login"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"is_active"`
}

// Task dates are calendar dates at UTC midnight, EndDate inclusive.
type Task struct {
	ID              int           `json:"id"`
	ParentID        sql.NullInt64 `json:"parent_id"`
	Title           string        `json:"title"`
	AssigneeID      sql.NullInt64 `json:"assignee_id"`
	StartDate       time.Time     `json:"start_date"`
	EndDate         time.Time     `json:"end_date"`
	PlannedHours    float64       `json:"planned_hours"`
	Priority        int           `json:"priority"`
	Status          TaskStatus    `json:"status"`
	CurrentProgress int           `json:"current_progress"`
}

// AssignedTo reports whether the task belongs to userID.
func (t Task) AssignedTo(userID int) bool {
	return t.AssigneeID.Valid && int(t.AssigneeID.Int64) == userID
}

// Worklog is one user's entry for one task on one day.
type Worklog struct {
	ID        int       `json:"id"`
	Date      time.Time `json:"date"`
	UserID    int       `json:"user_id"`
	TaskID    int       `json:"task_id"`
	Hours     float64   `json:"hours"`
	Comment   string    `json:"comment"`
	Progress  int       `json:"progress"`
	IsDone    bool      `json:"is_done"`
	CreatedAt time.Time `json:"created_at"`
}

type Session struct {
	ID        int       `json:"id"`
	Token     string    `json:"-"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
