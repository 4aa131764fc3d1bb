package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// ValidStatus reports whether s is one of the four lifecycle states.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// StatusLabel returns the human-readable label used in notifications.
func StatusLabel(s TicketStatus) string {
	switch s {
	case TicketStatusOpen:
		return "Open"
	case TicketStatusInProgress:
		return "In Progress"
	case TicketStatusResolved:
		return "Resolved"
	case TicketStatusClosed:
		return "Closed"
	}
	return string(s)
}

// TicketPriority enumerates SLA urgency tiers.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// Ticket is the aggregate for helpdesk requests. Priority is derived at
// creation (urgent flag wins, otherwise medium) and SLADeadline is set once,
// only for urgent tickets.
type Ticket struct {
	ID                 string
	OwnerID            string
	Category           string
	Subject            string
	Description        string
	Priority           TicketPriority
	Status             TicketStatus
	IsUrgent           bool
	SLADeadline        *time.Time
	AssignedDepartment *Department
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Owner name/email, populated only on admin-scoped reads.
	OwnerName  string
	OwnerEmail string
}

// TicketStats aggregates ticket counts by status.
type TicketStats struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}
