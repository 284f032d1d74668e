package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/tourism/internal/lib/email"
	"github.com/deppfellow/tourism/internal/lib/metrics"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Mailer is implemented by *email.Client.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, to string, data email.WelcomeData) error
	SendBookingReceivedEmail(ctx context.Context, to string, data email.BookingData) error
	SendBookingStatusEmail(ctx context.Context, to string, data email.BookingData) error
	SendContactAckEmail(ctx context.Context, to string, data email.ContactAckData) error
}

// Broadcaster writes a broadcast notification for every targeted user and
// returns how many rows were created.
type Broadcaster interface {
	Broadcast(ctx context.Context, p BroadcastPayload) (int64, error)
}

type TaskHandlers struct {
	mailer      Mailer
	broadcaster Broadcaster
	siteName    func(ctx context.Context) string
	logger      *zerolog.Logger
}

// NewTaskHandlers builds the handlers. siteName may be nil.
func NewTaskHandlers(mailer Mailer, broadcaster Broadcaster, siteName func(ctx context.Context) string, logger *zerolog.Logger) *TaskHandlers {
	if siteName == nil {
		siteName = func(context.Context) string { return "" }
	}
	return &TaskHandlers{
		mailer:      mailer,
		broadcaster: broadcaster,
		siteName:    siteName,
		logger:      logger,
	}
}

func (h *TaskHandlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskWelcome, h.handleWelcomeEmail)
	mux.HandleFunc(TaskBookingReceived, h.handleBookingReceived)
	mux.HandleFunc(TaskBookingStatus, h.handleBookingStatus)
	mux.HandleFunc(TaskContactAck, h.handleContactAck)
	mux.HandleFunc(TaskNotificationBroadcast, h.handleBroadcast)
}

// observe logs and counts every task run.
func (h *TaskHandlers) observe(next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
		start := time.Now()
		err := next.ProcessTask(ctx, t)

		status := "ok"
		event := h.logger.Info()
		if err != nil {
			status = "error"
			event = h.logger.Error().Err(err)
		}
		metrics.JobsProcessed.WithLabelValues(t.Type(), status).Inc()
		event.
			Str("task", t.Type()).
			Dur("duration", time.Since(start)).
			Msg("task processed")
		return err
	})
}

func decode(t *asynq.Task, v any) error {
	if err := json.Unmarshal(t.Payload(), v); err != nil {
		// Retrying cannot fix a malformed payload.
		return fmt.Errorf("unmarshal %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return nil
}

func (h *TaskHandlers) handleWelcomeEmail(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := decode(t, &p); err != nil {
		return err
	}
	return h.mailer.SendWelcomeEmail(ctx, p.To, email.WelcomeData{
		Common: email.Common{SiteName: h.siteName(ctx)},
		Name:   p.Name,
	})
}

func (h *TaskHandlers) handleBookingReceived(ctx context.Context, t *asynq.Task) error {
	var p BookingEmailPayload
	if err := decode(t, &p); err != nil {
		return err
	}
	p.Booking.SiteName = h.siteName(ctx)
	return h.mailer.SendBookingReceivedEmail(ctx, p.To, p.Booking)
}

func (h *TaskHandlers) handleBookingStatus(ctx context.Context, t *asynq.Task) error {
	var p BookingEmailPayload
	if err := decode(t, &p); err != nil {
		return err
	}
	p.Booking.SiteName = h.siteName(ctx)
	return h.mailer.SendBookingStatusEmail(ctx, p.To, p.Booking)
}

func (h *TaskHandlers) handleContactAck(ctx context.Context, t *asynq.Task) error {
	var p ContactAckPayload
	if err := decode(t, &p); err != nil {
		return err
	}
	return h.mailer.SendContactAckEmail(ctx, p.To, email.ContactAckData{
		Common: email.Common{SiteName: h.siteName(ctx)},
		Name:   p.Name,
		Topic:  p.Topic,
	})
}

func (h *TaskHandlers) handleBroadcast(ctx context.Context, t *asynq.Task) error {
	var p BroadcastPayload
	if err := decode(t, &p); err != nil {
		return err
	}
	n, err := h.broadcaster.Broadcast(ctx, p)
	if err != nil {
		return err
	}
	h.logger.Info().Int64("recipients", n).Str("title", p.Title).Msg("broadcast delivered")
	return nil
}
