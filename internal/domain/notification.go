package domain

import "time"

// NotificationType identifies what triggered a notification.
type NotificationType string

const (
	NotificationTypeResponse     NotificationType = "response"
	NotificationTypeStatusChange NotificationType = "status_change"
)

// Notification is a directed message created as a side effect of a ticket
// response or status change. Never created by its recipient.
type Notification struct {
	ID          string
	RecipientID string
	TicketID    string
	Type        NotificationType
	Message     string
	IsRead      bool
	CreatedAt   time.Time

	// Subject of the referenced ticket, populated on list reads.
	TicketSubject string
}
