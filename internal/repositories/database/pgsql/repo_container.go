package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/payroll_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements every payroll repository on one pgx pool. Inside WithTx the same
// methods run against the open transaction.
type Store struct {
	BaseRepository
}

// Ensure Store implements portsrepo.Store
var _ portsrepo.Store = (*Store)(nil)

// NewStore creates a store backed by dbPool.
func NewStore(dbPool *pgxpool.Pool) *Store {
	return &Store{BaseRepository: BaseRepository{Pool: dbPool, db: dbPool}}
}

// WithTx runs fn on a store bound to a new transaction. Nested calls reuse the open one.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.Store) error) (err error) {
	if s.tx != nil {
		return fn(ctx, s)
	}

	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once the transaction is committed
	defer func() { _ = s.Rollback(ctx, tx) }()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pgsql store: transaction panicked: %v", r)
		}
	}()

	txStore := &Store{BaseRepository: BaseRepository{Pool: s.Pool, db: tx, tx: tx}}
	if err = fn(ctx, txStore); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}
