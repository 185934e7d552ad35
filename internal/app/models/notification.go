package models

import "time"

// NotificationType labels the origin of a notification
type NotificationType string

const (
	NotificationInternEnding NotificationType = "intern_ending"
	NotificationSystem       NotificationType = "system"
)

// Notification is a per-user message row from the 'notifications' table
type Notification struct {
	ID          int64            `json:"id" db:"id"`
	RecipientID int64            `json:"recipientId" db:"recipient_id"`
	InternID    *int64           `json:"internId,omitempty" db:"intern_id"`
	Type        NotificationType `json:"type" db:"type"`
	Title       string           `json:"title" db:"title"`
	Body        string           `json:"body" db:"body"`
	IsRead      bool             `json:"isRead" db:"is_read"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
}
