package dto

import (
	"time"

	"github.com/campusdesk/helpdesk/internal/domain"
	"github.com/campusdesk/helpdesk/internal/sla"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Category    string `json:"category"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	IsUrgent    bool   `json:"is_urgent"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// AssignDepartmentRequest payload. A null department clears the assignment.
type AssignDepartmentRequest struct {
	Department *domain.Department `json:"department"`
}

// RespondRequest payload.
type RespondRequest struct {
	Message string `json:"message"`
}

// TicketResponse is the wire representation of a ticket. Owner identity is
// present only on admin-scoped reads; SLAStatus is derived at render time
// and never stored.
type TicketResponse struct {
	ID                 string                `json:"id"`
	UserID             string                `json:"user_id"`
	Category           string                `json:"category"`
	Subject            string                `json:"subject"`
	Description        string                `json:"description"`
	Priority           domain.TicketPriority `json:"priority"`
	Status             domain.TicketStatus   `json:"status"`
	IsUrgent           bool                  `json:"is_urgent"`
	SLADeadline        *time.Time            `json:"sla_deadline"`
	SLAStatus          sla.State             `json:"sla_status"`
	AssignedDepartment *domain.Department    `json:"assigned_department"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
	UserName           string                `json:"user_name,omitempty"`
	UserEmail          string                `json:"user_email,omitempty"`
}

// ResponseEntry is the wire representation of a thread entry.
type ResponseEntry struct {
	ID        string      `json:"id"`
	TicketID  string      `json:"ticket_id"`
	UserID    string      `json:"user_id"`
	Message   string      `json:"message"`
	CreatedAt time.Time   `json:"created_at"`
	UserName  string      `json:"user_name,omitempty"`
	UserRole  domain.Role `json:"user_role,omitempty"`
}

// NewTicketResponse converts a domain ticket.
func NewTicketResponse(ticket *domain.Ticket, now time.Time) TicketResponse {
	return TicketResponse{
		ID:                 ticket.ID,
		UserID:             ticket.OwnerID,
		Category:           ticket.Category,
		Subject:            ticket.Subject,
		Description:        ticket.Description,
		Priority:           ticket.Priority,
		Status:             ticket.Status,
		IsUrgent:           ticket.IsUrgent,
		SLADeadline:        ticket.SLADeadline,
		SLAStatus:          sla.Status(ticket.SLADeadline, ticket.Status, now),
		AssignedDepartment: ticket.AssignedDepartment,
		CreatedAt:          ticket.CreatedAt,
		UpdatedAt:          ticket.UpdatedAt,
		UserName:           ticket.OwnerName,
		UserEmail:          ticket.OwnerEmail,
	}
}

// NewTicketResponses converts a slice of domain tickets.
func NewTicketResponses(tickets []domain.Ticket, now time.Time) []TicketResponse {
	result := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		result = append(result, NewTicketResponse(&tickets[i], now))
	}
	return result
}

// NewResponseEntry converts a domain response.
func NewResponseEntry(response *domain.Response) ResponseEntry {
	return ResponseEntry{
		ID:        response.ID,
		TicketID:  response.TicketID,
		UserID:    response.AuthorID,
		Message:   response.Message,
		CreatedAt: response.CreatedAt,
		UserName:  response.AuthorName,
		UserRole:  response.AuthorRole,
	}
}

// NewResponseEntries converts a thread.
func NewResponseEntries(responses []domain.Response) []ResponseEntry {
	result := make([]ResponseEntry, 0, len(responses))
	for i := range responses {
		result = append(result, NewResponseEntry(&responses[i]))
	}
	return result
}
