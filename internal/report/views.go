package report

import (
	"context"
	"time"

	"worktrack/internal/models"
	"worktrack/internal/repository"
)

type DayTask struct {
	Task    models.Task
	Log     *models.Worklog
	Actual  float64
	Planned float64
}

type DayView struct {
	Date  time.Time
	Prev  time.Time
	Next  time.Time
	Tasks []DayTask
	Total float64
}

// BuildDayView lists user's tasks active on day with that day's worklog and
// the all-time actual hours of each task.
func BuildDayView(ctx context.Context, uow *repository.UnitOfWork, user *models.User, day time.Time) (*DayView, error) {
	day = models.DateOf(day)
	tasks, err := uow.Tasks.ListAssignedOn(ctx, user.ID, day)
	if err != nil {
		return nil, err
	}
	logs, err := uow.Worklogs.ListByUserDay(ctx, user.ID, day)
	if err != nil {
		return nil, err
	}
	logByTask := make(map[int]models.Worklog, len(logs))
	for _, wl := range logs {
		logByTask[wl.TaskID] = wl
	}

	view := &DayView{Date: day, Prev: day.AddDate(0, 0, -1), Next: day.AddDate(0, 0, 1)}
	for _, t := range tasks {
		actual, err := ActualHoursForTask(ctx, uow.Worklogs, t.ID)
		if err != nil {
			return nil, err
		}
		row := DayTask{Task: t, Actual: actual, Planned: t.PlannedHours}
		if wl, ok := logByTask[t.ID]; ok {
			row.Log = &wl
		}
		view.Tasks = append(view.Tasks, row)
	}

	view.Total, err = ActualHoursForUserDay(ctx, uow.Worklogs, user.ID, day)
	if err != nil {
		return nil, err
	}
	return view, nil
}

type WeekRow struct {
	User  models.User
	Hours []float64 // aligned with WeekView.Days
	Total float64
}

type WeekTask struct {
	Task     models.Task
	Assignee *models.User
	Actual   float64
}

type WeekView struct {
	Date      time.Time
	WeekStart time.Time
	Prev      time.Time
	Next      time.Time
	Days      []time.Time
	Tasks     []WeekTask
	Rows      []WeekRow
}

// BuildWeekView covers the Monday-based week containing day: every task by
// priority and the daily load of each active admin or employee.
func BuildWeekView(ctx context.Context, uow *repository.UnitOfWork, day time.Time) (*WeekView, error) {
	day = models.DateOf(day)
	ws := WeekStart(day)
	view := &WeekView{
		Date:      day,
		WeekStart: ws,
		Prev:      ws.AddDate(0, 0, -7),
		Next:      ws.AddDate(0, 0, 7),
		Days:      DateRange(ws, 7),
	}

	all, err := uow.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	userMap := make(map[int]models.User, len(all))
	for _, u := range all {
		userMap[u.ID] = u
	}

	tasks, err := uow.Tasks.ListByPriority(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		actual, err := ActualHoursForTask(ctx, uow.Worklogs, t.ID)
		if err != nil {
			return nil, err
		}
		wt := WeekTask{Task: t, Actual: actual}
		if t.AssigneeID.Valid {
			if u, ok := userMap[int(t.AssigneeID.Int64)]; ok {
				wt.Assignee = &u
			}
		}
		view.Tasks = append(view.Tasks, wt)
	}

	workers, err := uow.Users.ListActiveByRoles(ctx, models.RoleAdmin, models.RoleEmployee)
	if err != nil {
		return nil, err
	}
	for _, u := range workers {
		row := WeekRow{User: u, Hours: make([]float64, len(view.Days))}
		for i, d := range view.Days {
			h, err := ActualHoursForUserDay(ctx, uow.Worklogs, u.ID, d)
			if err != nil {
				return nil, err
			}
			row.Hours[i] = h
			row.Total += h
		}
		view.Rows = append(view.Rows, row)
	}
	return view, nil
}

type ReportEntry struct {
	Log  models.Worklog
	Task *models.Task
}

type ReportSection struct {
	User    models.User
	Entries []ReportEntry
	Total   float64
}

type DailyReport struct {
	Date     time.Time
	Prev     time.Time
	Next     time.Time
	Sections []ReportSection
}

// BuildDailyReport groups the worklogs of day by active admin or employee,
// in created_at order. Logs of other users are left out.
func BuildDailyReport(ctx context.Context, uow *repository.UnitOfWork, day time.Time) (*DailyReport, error) {
	day = models.DateOf(day)
	users, err := uow.Users.ListActiveByRoles(ctx, models.RoleAdmin, models.RoleEmployee)
	if err != nil {
		return nil, err
	}
	tasks, err := uow.Tasks.ListByDeadline(ctx)
	if err != nil {
		return nil, err
	}
	taskMap := make(map[int]models.Task, len(tasks))
	for _, t := range tasks {
		taskMap[t.ID] = t
	}
	logs, err := uow.Worklogs.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}

	index := make(map[int]int, len(users))
	rep := &DailyReport{Date: day, Prev: day.AddDate(0, 0, -1), Next: day.AddDate(0, 0, 1)}
	for i, u := range users {
		index[u.ID] = i
		rep.Sections = append(rep.Sections, ReportSection{User: u})
	}
	for _, wl := range logs {
		i, ok := index[wl.UserID]
		if !ok {
			continue
		}
		entry := ReportEntry{Log: wl}
		if t, ok := taskMap[wl.TaskID]; ok {
			entry.Task = &t
		}
		rep.Sections[i].Entries = append(rep.Sections[i].Entries, entry)
		rep.Sections[i].Total += wl.Hours
	}
	return rep, nil
}
