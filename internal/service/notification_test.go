package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/tourism/internal/lib/job"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotificationStore struct {
	mock.Mock
}

func (m *mockNotificationStore) CreateBroadcast(ctx context.Context, broadcastID uuid.UUID, userIDs []uuid.UUID, title, message string, link *string) (int64, error) {
	args := m.Called(ctx, broadcastID, userIDs, title, message, link)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationStore) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, p model.PaginationQuery) ([]model.Notification, int64, error) {
	args := m.Called(ctx, userID, unreadOnly, p)
	items, _ := args.Get(0).([]model.Notification)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationStore) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationStore) MarkRead(ctx context.Context, userID, id uuid.UUID) (*model.Notification, error) {
	args := m.Called(ctx, userID, id)
	n, _ := args.Get(0).(*model.Notification)
	return n, args.Error(1)
}

func (m *mockNotificationStore) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockNotificationStore) PurgeReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type mockRecipients struct {
	mock.Mock
}

func (m *mockRecipients) ListIDsByRole(ctx context.Context, role model.UserRole, after uuid.UUID, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, role, after, limit)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func TestNotificationService_Broadcast_Batches(t *testing.T) {
	store := new(mockNotificationStore)
	recipients := new(mockRecipients)
	first, second := ids(broadcastBatchSize), ids(3)
	role := "user"

	recipients.On("ListIDsByRole", mock.Anything, model.RoleUser, uuid.Nil, broadcastBatchSize).Return(first, nil).Once()
	recipients.On("ListIDsByRole", mock.Anything, model.RoleUser, first[len(first)-1], broadcastBatchSize).Return(second, nil).Once()
	broadcastID := uuid.New()
	store.On("CreateBroadcast", mock.Anything, broadcastID, first, "Eid sale", "20% off tours", (*string)(nil)).
		Return(int64(len(first)), nil).Once()
	store.On("CreateBroadcast", mock.Anything, broadcastID, second, "Eid sale", "20% off tours", (*string)(nil)).
		Return(int64(len(second)), nil).Once()

	s := NewNotificationService(store, recipients, nil, &nopLogger)
	n, err := s.Broadcast(context.Background(), job.BroadcastPayload{BroadcastID: broadcastID, Title: "Eid sale", Message: "20% off tours", Role: &role})
	require.NoError(t, err)
	assert.Equal(t, int64(broadcastBatchSize+3), n)
	store.AssertExpectations(t)
	recipients.AssertExpectations(t)
}

func TestNotificationService_Broadcast_NoRecipients(t *testing.T) {
	store := new(mockNotificationStore)
	recipients := new(mockRecipients)
	recipients.On("ListIDsByRole", mock.Anything, model.UserRole(""), uuid.Nil, broadcastBatchSize).Return([]uuid.UUID{}, nil).Once()

	n, err := NewNotificationService(store, recipients, nil, &nopLogger).Broadcast(context.Background(), job.BroadcastPayload{Title: "t", Message: "m"})
	require.NoError(t, err)
	assert.Zero(t, n)
	store.AssertNotCalled(t, "CreateBroadcast", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// dedupingStore keeps one row per (broadcast, user) like the partial unique
// index does, and can fail a given call once.
type dedupingStore struct {
	mockNotificationStore
	rows   map[uuid.UUID]map[uuid.UUID]bool
	calls  int
	failAt int
}

func (f *dedupingStore) CreateBroadcast(_ context.Context, broadcastID uuid.UUID, userIDs []uuid.UUID, _, _ string, _ *string) (int64, error) {
	f.calls++
	if f.calls == f.failAt {
		return 0, errors.New("connection reset")
	}
	if f.rows[broadcastID] == nil {
		f.rows[broadcastID] = map[uuid.UUID]bool{}
	}
	var n int64
	for _, id := range userIDs {
		if !f.rows[broadcastID][id] {
			f.rows[broadcastID][id] = true
			n++
		}
	}
	return n, nil
}

func TestNotificationService_Broadcast_RetryAfterFailedBatch(t *testing.T) {
	first, second := ids(broadcastBatchSize), ids(7)
	recipients := new(mockRecipients)
	recipients.On("ListIDsByRole", mock.Anything, model.UserRole(""), uuid.Nil, broadcastBatchSize).Return(first, nil)
	recipients.On("ListIDsByRole", mock.Anything, model.UserRole(""), first[len(first)-1], broadcastBatchSize).Return(second, nil)

	store := &dedupingStore{rows: map[uuid.UUID]map[uuid.UUID]bool{}, failAt: 2}
	s := NewNotificationService(store, recipients, nil, &nopLogger)
	p := job.BroadcastPayload{BroadcastID: uuid.New(), Title: "Eid sale", Message: "20% off tours"}

	n, err := s.Broadcast(context.Background(), p)
	require.Error(t, err)
	assert.Equal(t, int64(broadcastBatchSize), n)

	n, err = s.Broadcast(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(len(second)), n)

	assert.Equal(t, 4, store.calls)
	require.Len(t, store.rows, 1, "retry must reuse the broadcast id")
	assert.Len(t, store.rows[p.BroadcastID], broadcastBatchSize+len(second))
}

func TestNotificationService_QueueBroadcast(t *testing.T) {
	jobs := new(mockEnqueuer)
	expectTask(jobs, job.TaskNotificationBroadcast)

	s := NewNotificationService(new(mockNotificationStore), new(mockRecipients), jobs, &nopLogger)
	got, err := s.QueueBroadcast(context.Background(), &model.BroadcastRequest{Title: "Maintenance", Message: "Tonight 2am", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, &model.BroadcastAccepted{TaskID: "task-1", Status: "queued"}, got)
	jobs.AssertExpectations(t)
}

func TestNotificationService_PurgeRead(t *testing.T) {
	store := new(mockNotificationStore)
	s := NewNotificationService(store, new(mockRecipients), nil, &nopLogger)
	s.now = func() time.Time { return fixedNow }

	store.On("PurgeReadBefore", mock.Anything, fixedNow.Add(-90*24*time.Hour)).Return(int64(12), nil).Once()

	n, err := s.PurgeRead(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}

func TestNotificationService_List(t *testing.T) {
	store := new(mockNotificationStore)
	user := uuid.New()
	q := &model.ListNotificationsQuery{PaginationQuery: model.PaginationQuery{Page: 2, Limit: 10}, Unread: true}

	store.On("ListForUser", mock.Anything, user, true, q.PaginationQuery).Return([]model.Notification(nil), int64(11), nil).Once()

	res, err := NewNotificationService(store, new(mockRecipients), nil, &nopLogger).List(context.Background(), user, q)
	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.NotNil(t, res.Data)
	assert.Equal(t, int64(11), res.Total)
}
