package dto

import (
	"time"

	"github.com/campusdesk/helpdesk/internal/domain"
)

// NotificationResponse is the wire representation of a notification.
type NotificationResponse struct {
	ID            string                  `json:"id"`
	TicketID      string                  `json:"ticket_id"`
	Type          domain.NotificationType `json:"type"`
	Message       string                  `json:"message"`
	IsRead        bool                    `json:"is_read"`
	CreatedAt     time.Time               `json:"created_at"`
	TicketSubject string                  `json:"ticket_subject,omitempty"`
}

// NewNotificationResponses converts domain notifications.
func NewNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	result := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, NotificationResponse{
			ID:            n.ID,
			TicketID:      n.TicketID,
			Type:          n.Type,
			Message:       n.Message,
			IsRead:        n.IsRead,
			CreatedAt:     n.CreatedAt,
			TicketSubject: n.TicketSubject,
		})
	}
	return result
}
