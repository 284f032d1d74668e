package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/tourism/internal/lib/email"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Task type names, used by asynq to route tasks to handlers.
const (
	TaskWelcome               = "email:welcome"
	TaskBookingReceived       = "email:booking_received"
	TaskBookingStatus         = "email:booking_status"
	TaskContactAck            = "email:contact_ack"
	TaskNotificationBroadcast = "notification:broadcast"
)

type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

type BookingEmailPayload struct {
	To      string            `json:"to"`
	Booking email.BookingData `json:"booking"`
}

type ContactAckPayload struct {
	To    string `json:"to"`
	Name  string `json:"name"`
	Topic string `json:"topic"`
}

// BroadcastPayload targets every user, or only users with Role when set.
// BroadcastID stays the same across retries of the task.
type BroadcastPayload struct {
	BroadcastID uuid.UUID `json:"broadcast_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Role        *string   `json:"role,omitempty"`
	Link        *string   `json:"link,omitempty"`
}

func newTask(typename string, payload any, opts ...asynq.Option) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(typename, data, opts...), nil
}

func NewWelcomeEmailTask(to, name string) (*asynq.Task, error) {
	return newTask(TaskWelcome, WelcomeEmailPayload{To: to, Name: name},
		asynq.MaxRetry(3),
		asynq.Queue(QueueDefault),
		asynq.Timeout(30*time.Second),
	)
}

func NewBookingReceivedTask(to string, booking email.BookingData) (*asynq.Task, error) {
	return newTask(TaskBookingReceived, BookingEmailPayload{To: to, Booking: booking},
		asynq.MaxRetry(5),
		asynq.Queue(QueueCritical),
		asynq.Timeout(30*time.Second),
	)
}

func NewBookingStatusTask(to string, booking email.BookingData) (*asynq.Task, error) {
	return newTask(TaskBookingStatus, BookingEmailPayload{To: to, Booking: booking},
		asynq.MaxRetry(5),
		asynq.Queue(QueueCritical),
		asynq.Timeout(30*time.Second),
	)
}

func NewContactAckTask(to, name, topic string) (*asynq.Task, error) {
	return newTask(TaskContactAck, ContactAckPayload{To: to, Name: name, Topic: topic},
		asynq.MaxRetry(3),
		asynq.Queue(QueueLow),
		asynq.Timeout(30*time.Second),
	)
}

// NewBroadcastTask fans a notification out to many users, so it gets a
// longer timeout than the email tasks.
func NewBroadcastTask(p BroadcastPayload) (*asynq.Task, error) {
	return newTask(TaskNotificationBroadcast, p,
		asynq.MaxRetry(2),
		asynq.Queue(QueueDefault),
		asynq.Timeout(5*time.Minute),
	)
}
