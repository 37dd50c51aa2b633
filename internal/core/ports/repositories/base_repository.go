package repositories

import (
	"context"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// WithTx runs fn against a Store bound to one transaction. The transaction commits when
	// fn returns nil and rolls back otherwise, including on panic.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
