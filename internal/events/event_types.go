package events

import (
	"time"

	"github.com/campusdesk/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventResponseAdded EventType = "response_added"
	EventStatusChanged EventType = "status_changed"
)

// Actor encapsulates who triggered an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by the ticket service after the
// primary write is durable. Handlers run best-effort; their failures never
// affect the triggering operation.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ResponseAddedPayload payload.
type ResponseAddedPayload struct {
	ResponseID    string `json:"response_id"`
	TicketOwnerID string `json:"ticket_owner_id"`
	TicketSubject string `json:"ticket_subject"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	TicketOwnerID string              `json:"ticket_owner_id"`
	TicketSubject string              `json:"ticket_subject"`
	OldStatus     domain.TicketStatus `json:"old_status"`
	NewStatus     domain.TicketStatus `json:"new_status"`
}
