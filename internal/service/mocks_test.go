package service

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/tourism/internal/errs"
	"github.com/hibiken/asynq"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var nopLogger = zerolog.Nop()

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task.Type())
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func expectTask(q *mockEnqueuer, typename string) {
	q.On("EnqueueContext", mock.Anything, typename).Return(&asynq.TaskInfo{ID: "task-1"}, nil).Once()
}

func newDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	db, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.ExpectationsWereMet())
		db.Close()
	})
	return db
}

func date(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

// requireHTTPError asserts err is an *errs.HTTPError with the given status and code.
func requireHTTPError(t *testing.T, err error, status int, code string) *errs.HTTPError {
	t.Helper()
	require.Error(t, err)
	he, ok := err.(*errs.HTTPError)
	require.True(t, ok, "expected *errs.HTTPError, got %T: %v", err, err)
	assert.Equal(t, status, he.Status)
	if code != "" {
		assert.Equal(t, code, he.Code)
	}
	return he
}
