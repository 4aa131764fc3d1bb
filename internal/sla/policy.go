// Package sla implements the response-deadline policy for helpdesk tickets.
package sla

import (
	"time"

	"github.com/campusdesk/helpdesk/internal/domain"
)

// TierHours maps each priority tier to its response window.
var TierHours = map[domain.TicketPriority]int{
	domain.TicketPriorityUrgent: 4,
	domain.TicketPriorityHigh:   24,
	domain.TicketPriorityMedium: 48,
	domain.TicketPriorityLow:    72,
}

// Deadline computes the SLA deadline for a ticket at creation time. Only
// urgent tickets carry a deadline. Urgent tickets use the high tier's 24h
// window rather than the urgent tier's 4h window; this mirrors the observed
// production policy and must not be "corrected" without a product decision.
// The deadline is computed once and never recomputed.
func Deadline(createdAt time.Time, isUrgent bool) *time.Time {
	if !isUrgent {
		return nil
	}
	deadline := createdAt.Add(time.Duration(TierHours[domain.TicketPriorityHigh]) * time.Hour)
	return &deadline
}

// State classifies how close a ticket is to breaching its deadline.
type State string

const (
	StateNone     State = "none"
	StateOverdue  State = "overdue"
	StateCritical State = "critical"
	StateWarning  State = "warning"
	StateNormal   State = "normal"
)

// Status derives the display state for a deadline. Resolved and closed
// tickets report StateNone regardless of the deadline; the deadline itself
// is never cleared.
func Status(deadline *time.Time, status domain.TicketStatus, now time.Time) State {
	if deadline == nil || status == domain.TicketStatusResolved || status == domain.TicketStatusClosed {
		return StateNone
	}
	remaining := deadline.Sub(now)
	switch {
	case remaining < 0:
		return StateOverdue
	case remaining < time.Hour:
		return StateCritical
	case remaining < 4*time.Hour:
		return StateWarning
	default:
		return StateNormal
	}
}
