package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	commits, rollbacks int
}

func (f *fakeTx) Commit() error   { f.commits++; return nil }
func (f *fakeTx) Rollback() error { f.rollbacks++; return nil }

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (b *fakeBeginner) Begin(ctx context.Context) (*UnitOfWork, error) {
	if b.err != nil {
		return nil, b.err
	}
	return NewUnitOfWork(Repositories{}, b.tx), nil
}

func TestUnitOfWorkFinishesOnce(t *testing.T) {
	tx := &fakeTx{}
	uow := NewUnitOfWork(Repositories{}, tx)

	require.NoError(t, uow.Commit())
	assert.NoError(t, uow.Rollback())
	assert.ErrorIs(t, uow.Commit(), ErrUnitOfWorkDone)
	assert.Equal(t, 1, tx.commits)
	assert.Equal(t, 0, tx.rollbacks)
}

func TestWithinTxCommitsOnSuccess(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	err := WithinTx(context.Background(), b, func(*UnitOfWork) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 1, b.tx.commits)
	assert.Equal(t, 0, b.tx.rollbacks)
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	b := &fakeBeginner{tx: &fakeTx{}}
	boom := errors.New("boom")
	err := WithinTx(context.Background(), b, func(*UnitOfWork) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, b.tx.commits)
	assert.Equal(t, 1, b.tx.rollbacks)
}

func TestWithinTxBeginError(t *testing.T) {
	boom := errors.New("no connection")
	err := WithinTx(context.Background(), &fakeBeginner{err: boom}, func(*UnitOfWork) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorIs(t, err, boom)
}
