package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/helpdesk/internal/domain"
)

func TestDeadlineOnlyForUrgentTickets(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Nil(t, Deadline(createdAt, false))

	deadline := Deadline(createdAt, true)
	require.NotNil(t, deadline)
	// Urgent tickets get the 24h window, not the urgent tier's 4h.
	assert.Equal(t, createdAt.Add(24*time.Hour), *deadline)
}

func TestStatusClassification(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	deadlineAt := func(d time.Duration) *time.Time {
		at := now.Add(d)
		return &at
	}

	tests := []struct {
		name     string
		deadline *time.Time
		status   domain.TicketStatus
		want     State
	}{
		{"no deadline", nil, domain.TicketStatusOpen, StateNone},
		{"resolved hides state", deadlineAt(-time.Hour), domain.TicketStatusResolved, StateNone},
		{"closed hides state", deadlineAt(10 * time.Hour), domain.TicketStatusClosed, StateNone},
		{"past deadline", deadlineAt(-time.Minute), domain.TicketStatusOpen, StateOverdue},
		{"under an hour left", deadlineAt(30 * time.Minute), domain.TicketStatusOpen, StateCritical},
		{"under four hours left", deadlineAt(2 * time.Hour), domain.TicketStatusInProgress, StateWarning},
		{"plenty of time", deadlineAt(10 * time.Hour), domain.TicketStatusOpen, StateNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.deadline, tt.status, now))
		})
	}
}
