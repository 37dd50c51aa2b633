package pgsql

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQuerier captures the statements sent through Exec.
type recordingQuerier struct {
	querier
	sql  []string
	args [][]any
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sql = append(q.sql, sql)
	q.args = append(q.args, args)
	return pgconn.NewCommandTag("SELECT 2"), nil
}

type openTx struct{ pgx.Tx }

func TestLockEmployeeCredits(t *testing.T) {
	q := &recordingQuerier{}
	store := &Store{BaseRepository: BaseRepository{db: q, tx: openTx{}}}

	require.NoError(t, store.LockEmployeeCredits(context.Background(), []string{"emp-1", "emp-2"}))

	require.Len(t, q.sql, 1)
	assert.Contains(t, q.sql[0], "FROM credits")
	assert.Contains(t, q.sql[0], "ORDER BY credit_id")
	assert.Contains(t, q.sql[0], "FOR UPDATE")
	assert.Equal(t, []any{[]string{"emp-1", "emp-2"}}, q.args[0])
}

func TestLockEmployeeCredits_NoEmployees(t *testing.T) {
	q := &recordingQuerier{}
	store := &Store{BaseRepository: BaseRepository{db: q, tx: openTx{}}}

	require.NoError(t, store.LockEmployeeCredits(context.Background(), nil))
	assert.Empty(t, q.sql)
}

func TestLockEmployeeCredits_RequiresTransaction(t *testing.T) {
	q := &recordingQuerier{}
	store := &Store{BaseRepository: BaseRepository{db: q}}

	err := store.LockEmployeeCredits(context.Background(), []string{"emp-1"})
	assert.ErrorIs(t, err, errLockOutsideTx)
	assert.Empty(t, q.sql)
}
