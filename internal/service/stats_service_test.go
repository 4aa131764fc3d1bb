package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusdesk/helpdesk/internal/domain"
)

func seedStatsTickets(t *testing.T, repo *fakeTicketRepo) {
	t.Helper()
	ctx := context.Background()
	seed := []struct {
		owner  string
		status domain.TicketStatus
	}{
		{"user-1", domain.TicketStatusOpen},
		{"user-1", domain.TicketStatusInProgress},
		{"user-1", domain.TicketStatusResolved},
		{"user-2", domain.TicketStatusOpen},
		{"user-2", domain.TicketStatusClosed},
	}
	for _, s := range seed {
		ticket := &domain.Ticket{
			OwnerID:     s.owner,
			Category:    "technical",
			Subject:     "subject",
			Description: "description",
			Priority:    domain.TicketPriorityMedium,
			Status:      s.status,
		}
		require.NoError(t, repo.Create(ctx, ticket))
	}
}

func TestAdminStatsAreGlobal(t *testing.T) {
	repo := newFakeTicketRepo()
	seedStatsTickets(t, repo)
	svc := NewStatsService(repo, nil, 0, zap.NewNop())

	stats, err := svc.AdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, int64(2), stats.Open)
	assert.Equal(t, int64(1), stats.InProgress)
	assert.Equal(t, int64(1), stats.Resolved)
	assert.Equal(t, int64(1), stats.Closed)
}

func TestUserStatsScope(t *testing.T) {
	repo := newFakeTicketRepo()
	seedStatsTickets(t, repo)
	svc := NewStatsService(repo, nil, 0, zap.NewNop())

	stats, err := svc.UserStats(context.Background(), Caller{ID: "user-1", Role: domain.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Open)
	assert.Equal(t, int64(1), stats.Resolved)
	assert.Zero(t, stats.Closed)

	// Admins see the global counts on their dashboard.
	stats, err = svc.UserStats(context.Background(), Caller{ID: "user-9", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Total)
}
