package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusdesk/helpdesk/internal/domain"
)

func TestCanPerform(t *testing.T) {
	tests := []struct {
		name    string
		role    domain.Role
		action  Action
		ownerID string
		caller  string
		want    bool
	}{
		{"admin views any ticket", domain.RoleAdmin, ActionViewTicket, "u1", "a1", true},
		{"admin deletes any ticket", domain.RoleAdmin, ActionDeleteTicket, "u1", "a1", true},
		{"admin changes status", domain.RoleAdmin, ActionChangeStatus, "", "a1", true},
		{"admin assigns department", domain.RoleAdmin, ActionAssignDepartment, "", "a1", true},
		{"user views own ticket", domain.RoleUser, ActionViewTicket, "u1", "u1", true},
		{"user views other ticket", domain.RoleUser, ActionViewTicket, "u2", "u1", false},
		{"user responds on own ticket", domain.RoleUser, ActionRespondTicket, "u1", "u1", true},
		{"user deletes own ticket", domain.RoleUser, ActionDeleteTicket, "u1", "u1", true},
		{"user deletes other ticket", domain.RoleUser, ActionDeleteTicket, "u2", "u1", false},
		{"user cannot change status even on own ticket", domain.RoleUser, ActionChangeStatus, "u1", "u1", false},
		{"user cannot assign department", domain.RoleUser, ActionAssignDepartment, "u1", "u1", false},
		{"empty owner never matches", domain.RoleUser, ActionViewTicket, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPerform(tt.role, tt.action, tt.ownerID, tt.caller))
		})
	}
}
