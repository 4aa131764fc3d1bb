package auth

import "github.com/campusdesk/helpdesk/internal/domain"

// Action names an operation subject to authorization.
type Action string

const (
	ActionViewTicket       Action = "ticket:view"
	ActionRespondTicket    Action = "ticket:respond"
	ActionDeleteTicket     Action = "ticket:delete"
	ActionChangeStatus     Action = "ticket:change_status"
	ActionAssignDepartment Action = "ticket:assign_department"
)

// CanPerform is the single authorization check evaluated per operation.
// Admins may perform any action on any ticket; users only owner-scoped
// actions on their own tickets. Status-dependent rules (owner cannot delete
// resolved/closed tickets) are validation concerns layered on top.
func CanPerform(role domain.Role, action Action, resourceOwnerID, callerID string) bool {
	if role.IsAdmin() {
		return true
	}
	switch action {
	case ActionViewTicket, ActionRespondTicket, ActionDeleteTicket:
		return resourceOwnerID != "" && resourceOwnerID == callerID
	default:
		return false
	}
}
