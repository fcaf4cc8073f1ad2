package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store opens Postgres-backed units of work.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Begin(ctx context.Context) (*UnitOfWork, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return NewUnitOfWork(Repositories{
		Users:    &userRepo{db: tx},
		Tasks:    &taskRepo{db: tx},
		Worklogs: &worklogRepo{db: tx},
		Sessions: &sessionRepo{db: tx},
	}, tx), nil
}
