package tracker

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"worktrack/internal/models"
	"worktrack/internal/repository"
	"worktrack/internal/repository/repotest"
	"worktrack/pkg/crypto"

	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	crypto.BcryptCost = bcrypt.MinCost
	m.Run()
}

func date(s string) time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	store *repotest.Store
	admin models.User
	ann   models.User
	bob   models.User
	task  models.Task
}

func newFixture() *fixture {
	s := repotest.New()
	f := &fixture{store: s}
	f.admin = s.AddUser(models.User{Name: "Admin", Login: "admin", Role: models.RoleAdmin, IsActive: true})
	f.ann = s.AddUser(models.User{Name: "Ann", Login: "ann", Role: models.RoleEmployee, IsActive: true})
	f.bob = s.AddUser(models.User{Name: "Bob", Login: "bob", Role: models.RoleEmployee, IsActive: true})
	f.task = s.AddTask(models.Task{
		Title:      "T",
		AssigneeID: sql.NullInt64{Int64: int64(f.ann.ID), Valid: true},
		StartDate:  date("2024-01-01"),
		EndDate:    date("2024-01-05"),
		Priority:   3,
	})
	return f
}

// run executes fn in a committed unit of work and returns fn's error.
func (f *fixture) run(t *testing.T, fn func(context.Context, *repository.UnitOfWork) error) error {
	t.Helper()
	return repository.WithinTx(context.Background(), f.store, func(uow *repository.UnitOfWork) error {
		return fn(context.Background(), uow)
	})
}

func (f *fixture) logDay(t *testing.T, user models.User, in DayLogInput) (Outcome, error) {
	t.Helper()
	var out Outcome
	err := f.run(t, func(ctx context.Context, uow *repository.UnitOfWork) error {
		var err error
		out, err = LogDay(ctx, uow, &user, in)
		return err
	})
	return out, err
}
