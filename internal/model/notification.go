package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBooking   NotificationType = "booking"
	NotificationTypeSystem    NotificationType = "system"
	NotificationTypeBroadcast NotificationType = "broadcast"
)

type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Link      *string          `json:"link"`
	IsRead    bool             `json:"is_read"`
	ReadAt    *time.Time       `json:"read_at"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewNotification is the insert shape of a notification.
type NewNotification struct {
	UserID  uuid.UUID
	Type    NotificationType
	Title   string
	Message string
	Link    *string
}

type ListNotificationsQuery struct {
	PaginationQuery
	Unread bool `query:"unread"`
}

func (q *ListNotificationsQuery) Validate() error {
	if err := validate.Struct(q); err != nil {
		return err
	}
	q.Normalize()
	return nil
}

type UnreadCount struct {
	Count int64 `json:"count"`
}

type BroadcastRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Message string   `json:"message" validate:"required,max=2000"`
	Role    UserRole `json:"role" validate:"omitempty,oneof=user admin"`
	Link    *string  `json:"link" validate:"omitempty,max=500"`
}

func (r *BroadcastRequest) Validate() error {
	return validate.Struct(r)
}

type BroadcastAccepted struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}
