package job

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/tourism/internal/lib/email"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendWelcomeEmail(ctx context.Context, to string, data email.WelcomeData) error {
	return m.Called(ctx, to, data).Error(0)
}

func (m *mockMailer) SendBookingReceivedEmail(ctx context.Context, to string, data email.BookingData) error {
	return m.Called(ctx, to, data).Error(0)
}

func (m *mockMailer) SendBookingStatusEmail(ctx context.Context, to string, data email.BookingData) error {
	return m.Called(ctx, to, data).Error(0)
}

func (m *mockMailer) SendContactAckEmail(ctx context.Context, to string, data email.ContactAckData) error {
	return m.Called(ctx, to, data).Error(0)
}

type mockBroadcaster struct {
	mock.Mock
}

func (m *mockBroadcaster) Broadcast(ctx context.Context, p BroadcastPayload) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func newHandlers(t *testing.T) (*TaskHandlers, *mockMailer, *mockBroadcaster, *asynq.ServeMux) {
	t.Helper()
	logger := zerolog.Nop()
	mailer := &mockMailer{}
	broadcaster := &mockBroadcaster{}
	h := NewTaskHandlers(mailer, broadcaster, func(context.Context) string { return "Noor Travel" }, &logger)

	mux := asynq.NewServeMux()
	mux.Use(h.observe)
	h.Register(mux)

	t.Cleanup(func() {
		mailer.AssertExpectations(t)
		broadcaster.AssertExpectations(t)
	})
	return h, mailer, broadcaster, mux
}

func TestWelcomeEmailTask(t *testing.T) {
	_, mailer, _, mux := newHandlers(t)

	task, err := NewWelcomeEmailTask("aisha@example.com", "Aisha")
	require.NoError(t, err)

	mailer.On("SendWelcomeEmail", mock.Anything, "aisha@example.com", email.WelcomeData{
		Common: email.Common{SiteName: "Noor Travel"},
		Name:   "Aisha",
	}).Return(nil)

	assert.NoError(t, mux.ProcessTask(context.Background(), task))
}

func TestBookingReceivedTask_PropagatesFailure(t *testing.T) {
	_, mailer, _, mux := newHandlers(t)

	data := email.BookingData{Name: "Omar", Reference: "abc", Type: "car", Status: "pending"}
	task, err := NewBookingReceivedTask("omar@example.com", data)
	require.NoError(t, err)

	want := data
	want.SiteName = "Noor Travel"
	boom := errors.New("resend unavailable")
	mailer.On("SendBookingReceivedEmail", mock.Anything, "omar@example.com", want).Return(boom)

	assert.ErrorIs(t, mux.ProcessTask(context.Background(), task), boom)
}

func TestBroadcastTask(t *testing.T) {
	_, _, broadcaster, mux := newHandlers(t)

	role := "user"
	p := BroadcastPayload{BroadcastID: uuid.New(), Title: "Eid offers", Message: "15% off tours", Role: &role}
	task, err := NewBroadcastTask(p)
	require.NoError(t, err)

	broadcaster.On("Broadcast", mock.Anything, p).Return(int64(120), nil)

	assert.NoError(t, mux.ProcessTask(context.Background(), task))
}

func TestMalformedPayload_SkipsRetry(t *testing.T) {
	_, _, _, mux := newHandlers(t)

	err := mux.ProcessTask(context.Background(), asynq.NewTask(TaskContactAck, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
