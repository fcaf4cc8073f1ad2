package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"worktrack/internal/apperror"
	"worktrack/internal/models"

	"github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDB is nil when Docker is not reachable; Postgres tests then skip.
var testDB *sql.DB

func TestMain(m *testing.M) {
	os.Exit(runWithPostgres(m))
}

func runWithPostgres(m *testing.M) int {
	if os.Getenv("SKIP_DOCKER_TESTS") != "" {
		return m.Run()
	}
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("docker unavailable, skipping postgres tests: %v", err)
		return m.Run()
	}
	if err := pool.Client.Ping(); err != nil {
		log.Printf("docker unavailable, skipping postgres tests: %v", err)
		return m.Run()
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_USER=worktrack",
		"POSTGRES_PASSWORD=secret",
		"POSTGRES_DB=worktrack_test",
	})
	if err != nil {
		log.Printf("could not start postgres, skipping postgres tests: %v", err)
		return m.Run()
	}
	defer pool.Purge(resource)
	_ = resource.Expire(300)

	dsn := fmt.Sprintf("host=localhost port=%s user=worktrack password=secret dbname=worktrack_test sslmode=disable",
		resource.GetPort("5432/tcp"))
	pool.MaxWait = 2 * time.Minute
	if err := pool.Retry(func() error {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return err
		}
		testDB = db
		return nil
	}); err != nil {
		log.Printf("postgres did not become ready, skipping postgres tests: %v", err)
		return m.Run()
	}
	defer testDB.Close()

	if err := CreateTableIfNotExists(testDB); err != nil {
		log.Printf("create tables: %v", err)
		return 1
	}
	return m.Run()
}

func freshStore(t *testing.T) *Store {
	t.Helper()
	if testDB == nil {
		t.Skip("postgres not available")
	}
	require.NoError(t, DeleteAllTable(testDB))
	require.NoError(t, CreateTableIfNotExists(testDB))
	return NewStore(testDB)
}

func day(s string) time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seed(t *testing.T, s *Store) (admin, emp models.User, task models.Task) {
	t.Helper()
	ctx := context.Background()
	err := WithinTx(ctx, s, func(uow *UnitOfWork) error {
		admin = models.User{Name: "Admin", Role: models.RoleAdmin, Login: "admin", PasswordHash: "x", IsActive: true}
		if err := uow.Users.Create(ctx, &admin); err != nil {
			return err
		}
		emp = models.User{Name: "Ann", Role: models.RoleEmployee, Login: "ann", PasswordHash: "x", IsActive: true}
		if err := uow.Users.Create(ctx, &emp); err != nil {
			return err
		}
		task = models.Task{
			Title:      "Report",
			AssigneeID: sql.NullInt64{Int64: int64(emp.ID), Valid: true},
			StartDate:  day("2024-01-01"),
			EndDate:    day("2024-01-05"),
			Priority:   3,
			Status:     models.StatusTodo,
		}
		return uow.Tasks.Create(ctx, &task)
	})
	require.NoError(t, err)
	return admin, emp, task
}

func TestPostgresUsers(t *testing.T) {
	s := freshStore(t)
	ctx := context.Background()
	admin, emp, _ := seed(t, s)

	err := WithinTx(ctx, s, func(uow *UnitOfWork) error {
		dup := models.User{Name: "Other", Role: models.RoleViewer, Login: "ann", PasswordHash: "x", IsActive: true}
		return uow.Users.Create(ctx, &dup)
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	err = WithinTx(ctx, s, func(uow *UnitOfWork) error {
		got, err := uow.Users.GetActiveByLogin(ctx, "ann")
		require.NoError(t, err)
		assert.Equal(t, emp.ID, got.ID)

		exists, err := uow.Users.LoginExists(ctx, "admin")
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, uow.Users.SetActive(ctx, emp.ID, false))
		_, err = uow.Users.GetActiveByLogin(ctx, "ann")
		assert.ErrorIs(t, err, apperror.ErrNotFound)

		active, err := uow.Users.ListActiveByRoles(ctx, models.RoleAdmin, models.RoleEmployee)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, admin.ID, active[0].ID)

		all, err := uow.Users.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		assert.ErrorIs(t, uow.Users.SetActive(ctx, 9999, true), apperror.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestPostgresTasksAndWorklogs(t *testing.T) {
	s := freshStore(t)
	ctx := context.Background()
	admin, emp, task := seed(t, s)

	err := WithinTx(ctx, s, func(uow *UnitOfWork) error {
		_, err := uow.Tasks.GetAssigned(ctx, task.ID, admin.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)

		onDay, err := uow.Tasks.ListAssignedOn(ctx, emp.ID, day("2024-01-05"))
		require.NoError(t, err)
		require.Len(t, onDay, 1)
		assert.Equal(t, day("2024-01-01"), onDay[0].StartDate)

		outside, err := uow.Tasks.ListAssignedOn(ctx, emp.ID, day("2024-01-06"))
		require.NoError(t, err)
		assert.Empty(t, outside)

		w := models.Worklog{Date: day("2024-01-02"), UserID: emp.ID, TaskID: task.ID, Hours: 3.5, Progress: 40}
		require.NoError(t, uow.Worklogs.Insert(ctx, &w))

		again := models.Worklog{Date: day("2024-01-02"), UserID: emp.ID, TaskID: task.ID, Hours: 1, Progress: 100, IsDone: true}
		require.NoError(t, uow.Worklogs.Insert(ctx, &again))
		assert.Equal(t, w.ID, again.ID)

		found, err := uow.Worklogs.Find(ctx, emp.ID, task.ID, day("2024-01-02"))
		require.NoError(t, err)
		assert.True(t, found.IsDone)
		assert.Equal(t, 1.0, found.Hours)

		found.Hours = 2.25
		require.NoError(t, uow.Worklogs.Update(ctx, found))

		other := models.Worklog{Date: day("2024-01-03"), UserID: emp.ID, TaskID: task.ID, Hours: 4}
		require.NoError(t, uow.Worklogs.Insert(ctx, &other))

		total, err := uow.Worklogs.SumHoursByTask(ctx, task.ID)
		require.NoError(t, err)
		assert.InDelta(t, 6.25, total, 1e-9)

		dayTotal, err := uow.Worklogs.SumHoursByUserDay(ctx, emp.ID, day("2024-01-02"))
		require.NoError(t, err)
		assert.InDelta(t, 2.25, dayTotal, 1e-9)

		none, err := uow.Worklogs.SumHoursByUserDay(ctx, emp.ID, day("2024-02-01"))
		require.NoError(t, err)
		assert.Zero(t, none)

		logs, err := uow.Worklogs.ListByDay(ctx, day("2024-01-03"))
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, other.ID, logs[0].ID)

		return uow.Tasks.UpdateProgress(ctx, task.ID, models.StatusDone, 100)
	})
	require.NoError(t, err)
}

func TestPostgresWorklogUniquePerDay(t *testing.T) {
	s := freshStore(t)
	ctx := context.Background()
	_, emp, task := seed(t, s)

	const insert = `INSERT INTO worklogs (date, user_id, task_id, hours) VALUES ($1, $2, $3, $4)`
	_, err := testDB.ExecContext(ctx, insert, day("2024-01-02"), emp.ID, task.ID, 1.0)
	require.NoError(t, err)

	_, err = testDB.ExecContext(ctx, insert, day("2024-01-02"), emp.ID, task.ID, 2.0)
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr), "duplicate insert must hit the unique constraint, got %v", err)
	assert.Equal(t, pq.ErrorCode("23505"), pqErr.Code)

	_, err = testDB.ExecContext(ctx, insert, day("2024-01-03"), emp.ID, task.ID, 2.0)
	require.NoError(t, err)
}

func TestPostgresSessionsAndRollback(t *testing.T) {
	s := freshStore(t)
	ctx := context.Background()
	_, emp, _ := seed(t, s)

	err := WithinTx(ctx, s, func(uow *UnitOfWork) error {
		return uow.Sessions.Create(ctx, &models.Session{Token: "tok-1", UserID: emp.ID})
	})
	require.NoError(t, err)

	err = WithinTx(ctx, s, func(uow *UnitOfWork) error {
		require.NoError(t, uow.Sessions.DeleteByToken(ctx, "tok-1"))
		return apperror.InvalidInput("abort")
	})
	require.Error(t, err)

	err = WithinTx(ctx, s, func(uow *UnitOfWork) error {
		sess, err := uow.Sessions.GetByToken(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, emp.ID, sess.UserID)

		require.NoError(t, uow.Sessions.DeleteByToken(ctx, "tok-1"))
		require.NoError(t, uow.Sessions.DeleteByToken(ctx, "tok-1"))
		_, err = uow.Sessions.GetByToken(ctx, "tok-1")
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}
