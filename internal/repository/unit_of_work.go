package repository

import (
	"context"
	"errors"
)

// Committer is the transaction behind a unit of work. *sql.Tx satisfies it.
type Committer interface {
	Commit() error
	Rollback() error
}

// UnitOfWork exposes the repositories bound to one transaction. It is
// finished exactly once, by Commit or Rollback.
type UnitOfWork struct {
	Repositories
	tx   Committer
	done bool
}

func NewUnitOfWork(repos Repositories, tx Committer) *UnitOfWork {
	return &UnitOfWork{Repositories: repos, tx: tx}
}

var ErrUnitOfWorkDone = errors.New("unit of work already finished")

func (u *UnitOfWork) Commit() error {
	if u.done {
		return ErrUnitOfWorkDone
	}
	u.done = true
	return u.tx.Commit()
}

// Rollback discards the transaction. Calling it after Commit does nothing, so
// it can be deferred unconditionally.
func (u *UnitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	return u.tx.Rollback()
}

type Beginner interface {
	Begin(ctx context.Context) (*UnitOfWork, error)
}

// WithinTx runs fn in a fresh unit of work, committing when fn succeeds.
func WithinTx(ctx context.Context, b Beginner, fn func(*UnitOfWork) error) error {
	uow, err := b.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}
	return uow.Commit()
}
