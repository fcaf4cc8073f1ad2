package report

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"worktrack/internal/models"
	"worktrack/internal/repository"
	"worktrack/internal/repository/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store              *repotest.Store
	admin, ann, viewer models.User
	report, review     models.Task
}

func assignee(u models.User) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(u.ID), Valid: true}
}

func newFixture() *fixture {
	s := repotest.New()
	clock := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
	s.Now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	f := &fixture{store: s}
	f.admin = s.AddUser(models.User{Name: "Zed", Login: "admin", Role: models.RoleAdmin, IsActive: true})
	f.ann = s.AddUser(models.User{Name: "Ann", Login: "ann", Role: models.RoleEmployee, IsActive: true})
	f.viewer = s.AddUser(models.User{Name: "Vic", Login: "vic", Role: models.RoleViewer, IsActive: true})
	f.report = s.AddTask(models.Task{
		Title: "Report", AssigneeID: assignee(f.ann), Priority: 3, PlannedHours: 10,
		StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 5),
	})
	f.review = s.AddTask(models.Task{
		Title: "Review", AssigneeID: assignee(f.ann), Priority: 5, PlannedHours: 2,
		StartDate: date(2024, 1, 2), EndDate: date(2024, 1, 10),
	})
	return f
}

func (f *fixture) inTx(t *testing.T, fn func(*repository.UnitOfWork)) {
	t.Helper()
	require.NoError(t, repository.WithinTx(context.Background(), f.store, func(uow *repository.UnitOfWork) error {
		fn(uow)
		return nil
	}))
}

func TestActualHours(t *testing.T) {
	f := newFixture()
	f.store.AddWorklog(models.Worklog{Date: date(2024, 1, 2), UserID: f.ann.ID, TaskID: f.report.ID, Hours: 3.5})
	f.store.AddWorklog(models.Worklog{Date: date(2024, 1, 3), UserID: f.ann.ID, TaskID: f.report.ID, Hours: 1.25})
	f.store.AddWorklog(models.Worklog{Date: date(2024, 1, 2), UserID: f.ann.ID, TaskID: f.review.ID, Hours: 2})

	ctx := context.Background()
	f.inTx(t, func(uow *repository.UnitOfWork) {
		h, err := ActualHoursForTask(ctx, uow.Worklogs, f.report.ID)
		require.NoError(t, err)
		assert.Equal(t, 4.75, h)

		h, err = ActualHoursForUserDay(ctx, uow.Worklogs, f.ann.ID, date(2024, 1, 2))
		require.NoError(t, err)
		assert.Equal(t, 5.5, h)

		h, err = ActualHoursForTask(ctx, uow.Worklogs, 999)
		require.NoError(t, err)
		assert.Zero(t, h)

		h, err = ActualHoursForUserDay(ctx, uow.Worklogs, f.viewer.ID, date(2024, 1, 2))
		require.NoError(t, err)
		assert.Zero(t, h)
	})
}

func TestBuildDayView(t *testing.T) {
	f := newFixture()
	f.store.AddWorklog(models.Worklog{Date: date(2024, 1, 2), UserID: f.ann.ID, TaskID: f.report.ID, Hours: 3.5, Progress: 40})
	f.store.AddWorklog(models.Worklog{Date: date(2024, 1, 1), UserID: f.ann.ID, TaskID: f.report.ID, Hours: 2})

	f.inTx(t, func(uow *repository.UnitOfWork) {
		view, err := BuildDayView(context.Background(), uow, &f.ann, date(2024, 1, 2))
		require.NoError(t, err)

		require.Len(t, view.Tasks, 2)
		assert.Equal(t, "Review", view.Tasks[0].Task.Title, "higher priority first")
		assert.Nil(t, view.Tasks[0].Log)

		row := view.Tasks[1]
		require.NotNil(t, row.Log)
		assert.Equal(t, 40, row.Log.Progress)
		assert.Equal(t, 5.5, row.Actual)
		assert.Equal(t, 10.0, row.Planned)
		assert.Equal(t, 3.5, view.Total)
		assert.Equal(t, date(2024, 1, 1), view.Prev)
		assert.Equal(t, date(2024, 1, 3), view.Next)

		outside, err := BuildDayView(context.Background(), uow, &f.ann, date(2024, 1, 11))
		require.NoError(t, err)
		assert.Empty(t, outside.Tasks)
		assert.Zero(t, outside.Total)
	})
}

func TestBuildWeekView(t *testing.T) {
	f := newFixture()
	inactive := f.store.AddUser(models.User{Name: "Old", Login: "old", Role: models.RoleEmployee})
	f.store.AddWorklog(models.Worklog{Date: date(2024, 1, 2), UserID: f.ann.ID, TaskID: f.report.ID, Hours: 3})
	f.store.AddWorklog(models.Worklog{Date: date(2024, 1, 7), UserID: f.ann.ID, TaskID: f.review.ID, Hours: 1})
	f.store.AddWorklog(models.Worklog{Date: date(2024, 1, 8), UserID: f.ann.ID, TaskID: f.review.ID, Hours: 8})
	f.store.AddWorklog(models.Worklog{Date: date(2024, 1, 3), UserID: inactive.ID, TaskID: f.review.ID, Hours: 4})

	f.inTx(t, func(uow *repository.UnitOfWork) {
		view, err := BuildWeekView(context.Background(), uow, date(2024, 1, 4))
		require.NoError(t, err)

		assert.Equal(t, date(2024, 1, 1), view.WeekStart)
		require.Len(t, view.Days, 7)
		assert.Equal(t, date(2023, 12, 25), view.Prev)

		require.Len(t, view.Tasks, 2)
		assert.Equal(t, "Review", view.Tasks[0].Task.Title)
		require.NotNil(t, view.Tasks[0].Assignee)
		assert.Equal(t, "Ann", view.Tasks[0].Assignee.Name)
		assert.Equal(t, 13.0, view.Tasks[0].Actual)

		require.Len(t, view.Rows, 2, "active admins and employees only")
		assert.Equal(t, "Ann", view.Rows[0].User.Name)
		assert.Equal(t, []float64{0, 3, 0, 0, 0, 0, 1}, view.Rows[0].Hours)
		assert.Equal(t, 4.0, view.Rows[0].Total)
		assert.Equal(t, "Zed", view.Rows[1].User.Name)
		assert.Zero(t, view.Rows[1].Total)
	})
}

func TestBuildDailyReport(t *testing.T) {
	f := newFixture()
	second := f.store.AddWorklog(models.Worklog{Date: date(2024, 1, 2), UserID: f.ann.ID, TaskID: f.review.ID, Hours: 1, Comment: "later",
		CreatedAt: time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)})
	first := f.store.AddWorklog(models.Worklog{Date: date(2024, 1, 2), UserID: f.ann.ID, TaskID: f.report.ID, Hours: 2, Comment: "earlier",
		CreatedAt: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)})
	f.store.AddWorklog(models.Worklog{Date: date(2024, 1, 2), UserID: f.viewer.ID, TaskID: f.report.ID, Hours: 5})
	f.store.AddWorklog(models.Worklog{Date: date(2024, 1, 3), UserID: f.ann.ID, TaskID: f.report.ID, Hours: 7})

	f.inTx(t, func(uow *repository.UnitOfWork) {
		rep, err := BuildDailyReport(context.Background(), uow, date(2024, 1, 2))
		require.NoError(t, err)

		require.Len(t, rep.Sections, 2)
		ann := rep.Sections[0]
		assert.Equal(t, "Ann", ann.User.Name)
		require.Len(t, ann.Entries, 2)
		assert.Equal(t, first.ID, ann.Entries[0].Log.ID)
		assert.Equal(t, second.ID, ann.Entries[1].Log.ID)
		require.NotNil(t, ann.Entries[0].Task)
		assert.Equal(t, "Report", ann.Entries[0].Task.Title)
		assert.Equal(t, 3.0, ann.Total)

		assert.Equal(t, "Zed", rep.Sections[1].User.Name)
		assert.Empty(t, rep.Sections[1].Entries)
	})
}
