package service

import (
	"context"
	"time"

	"github.com/deppfellow/tourism/internal/lib/job"
	"github.com/deppfellow/tourism/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	broadcastBatchSize = 500
	readRetention      = 90 * 24 * time.Hour
)

type NotificationStore interface {
	CreateBroadcast(ctx context.Context, broadcastID uuid.UUID, userIDs []uuid.UUID, title, message string, link *string) (int64, error)
	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, p model.PaginationQuery) ([]model.Notification, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) (*model.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	PurgeReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type RecipientStore interface {
	ListIDsByRole(ctx context.Context, role model.UserRole, after uuid.UUID, limit int) ([]uuid.UUID, error)
}

type NotificationService struct {
	notifications NotificationStore
	recipients    RecipientStore
	jobs          job.Enqueuer
	logger        *zerolog.Logger
	now           func() time.Time
}

func NewNotificationService(notifications NotificationStore, recipients RecipientStore, jobs job.Enqueuer, logger *zerolog.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		recipients:    recipients,
		jobs:          jobs,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, q *model.ListNotificationsQuery) (*model.PaginatedResponse[model.Notification], error) {
	items, total, err := s.notifications.ListForUser(ctx, userID, q.Unread, q.PaginationQuery)
	if err != nil {
		return nil, err
	}
	return model.NewPaginatedResponse(items, q.PaginationQuery, total), nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (*model.UnreadCount, error) {
	n, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.UnreadCount{Count: n}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) (*model.Notification, error) {
	return s.notifications.MarkRead(ctx, userID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := s.notifications.MarkAllRead(ctx, userID)
	return err
}

func (s *NotificationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.notifications.Delete(ctx, userID, id)
}

// QueueBroadcast hands the fan-out to the worker and returns at once.
func (s *NotificationService) QueueBroadcast(ctx context.Context, req *model.BroadcastRequest) (*model.BroadcastAccepted, error) {
	p := job.BroadcastPayload{BroadcastID: uuid.New(), Title: req.Title, Message: req.Message, Link: req.Link}
	if req.Role != "" {
		role := string(req.Role)
		p.Role = &role
	}

	task, err := job.NewBroadcastTask(p)
	if err != nil {
		return nil, err
	}
	info, err := s.jobs.EnqueueContext(ctx, task)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("task_id", info.ID).
		Str("broadcast_id", p.BroadcastID.String()).
		Str("title", req.Title).
		Msg("broadcast queued")
	return &model.BroadcastAccepted{TaskID: info.ID, Status: "queued"}, nil
}

// Broadcast inserts the notification for every targeted user, one batch
// of ids at a time. Batches are keyed by the payload's broadcast id, so a
// retry after a failed batch only writes the rows that are still missing.
// The returned count covers rows written by this run.
func (s *NotificationService) Broadcast(ctx context.Context, p job.BroadcastPayload) (int64, error) {
	if p.BroadcastID == uuid.Nil {
		p.BroadcastID = uuid.New()
		s.logger.Warn().Str("title", p.Title).Msg("broadcast without id, retries may duplicate notifications")
	}

	var role model.UserRole
	if p.Role != nil {
		role = model.UserRole(*p.Role)
	}

	var (
		after uuid.UUID
		total int64
	)
	for {
		ids, err := s.recipients.ListIDsByRole(ctx, role, after, broadcastBatchSize)
		if err != nil {
			return total, err
		}
		if len(ids) == 0 {
			return total, nil
		}

		n, err := s.notifications.CreateBroadcast(ctx, p.BroadcastID, ids, p.Title, p.Message, p.Link)
		if err != nil {
			return total, err
		}
		total += n

		if len(ids) < broadcastBatchSize {
			return total, nil
		}
		after = ids[len(ids)-1]
	}
}

// PurgeRead drops read notifications past the retention window.
func (s *NotificationService) PurgeRead(ctx context.Context) (int64, error) {
	return s.notifications.PurgeReadBefore(ctx, s.now().Add(-readRetention))
}
