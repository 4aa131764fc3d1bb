package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campusdesk/helpdesk/internal/auth"
	"github.com/campusdesk/helpdesk/internal/domain"
	"github.com/campusdesk/helpdesk/internal/events"
	"github.com/campusdesk/helpdesk/internal/repository"
	"github.com/campusdesk/helpdesk/internal/sla"
	apperrors "github.com/campusdesk/helpdesk/pkg/util"
)

// Caller identifies the authenticated user performing an operation.
type Caller struct {
	ID   string
	Role domain.Role
}

// TicketService coordinates the ticket lifecycle: creation, the response
// thread, status and department changes, deletion, search. State-changing
// operations publish events consumed by the notification fan-out.
type TicketService struct {
	tickets    repository.TicketRepository
	responses  repository.ResponseRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo   repository.TicketRepository
	ResponseRepo repository.ResponseRepository
	Dispatcher   events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		responses:  deps.ResponseRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicketInput describes ticket creation payload.
type CreateTicketInput struct {
	Category    string
	Subject     string
	Description string
	IsUrgent    bool
}

// SortOrder selects a listing order.
type SortOrder string

const (
	SortNewest   SortOrder = "newest"
	SortOldest   SortOrder = "oldest"
	SortPriority SortOrder = "priority"
	SortSLA      SortOrder = "sla"
)

// ListOptions narrows and orders a ticket listing.
type ListOptions struct {
	Status *domain.TicketStatus
	Sort   SortOrder
}

// CreateTicket validates input and persists a new open ticket. Priority and
// the SLA deadline are derived here, once; neither is caller-settable.
func (s *TicketService) CreateTicket(ctx context.Context, ownerID string, input CreateTicketInput) (*domain.Ticket, error) {
	category := strings.TrimSpace(input.Category)
	subject := strings.TrimSpace(input.Subject)
	description := strings.TrimSpace(input.Description)
	if category == "" || subject == "" || description == "" {
		return nil, apperrors.NewValidationError("Category, subject, and description are required", nil)
	}

	priority := domain.TicketPriorityMedium
	if input.IsUrgent {
		priority = domain.TicketPriorityUrgent
	}
	now := time.Now()

	ticket := &domain.Ticket{
		OwnerID:     ownerID,
		Category:    category,
		Subject:     subject,
		Description: description,
		Priority:    priority,
		Status:      domain.TicketStatusOpen,
		IsUrgent:    input.IsUrgent,
		SLADeadline: sla.Deadline(now, input.IsUrgent),
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// ListTickets returns the tickets visible to the caller: all tickets joined
// with owner identity for admins, only the caller's own otherwise.
func (s *TicketService) ListTickets(ctx context.Context, caller Caller, opts ListOptions) ([]domain.Ticket, error) {
	var (
		tickets []domain.Ticket
		err     error
	)
	if caller.Role.IsAdmin() {
		tickets, err = s.tickets.ListAllWithOwner(ctx)
	} else {
		tickets, err = s.tickets.ListByOwner(ctx, caller.ID)
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if opts.Status != nil {
		filtered := tickets[:0]
		for _, ticket := range tickets {
			if ticket.Status == *opts.Status {
				filtered = append(filtered, ticket)
			}
		}
		tickets = filtered
	}
	sortTickets(tickets, opts.Sort)
	return tickets, nil
}

// GetTicket fetches a ticket with its response thread, oldest first. A
// ticket invisible to the caller is indistinguishable from a missing one.
func (s *TicketService) GetTicket(ctx context.Context, caller Caller, ticketID string) (*domain.Ticket, []domain.Response, error) {
	ticket, err := s.fetchVisible(ctx, caller, ticketID)
	if err != nil {
		return nil, nil, err
	}
	thread, err := s.responses.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return ticket, thread, nil
}

// AddResponse appends to the ticket thread, touches the ticket's updated_at
// and publishes a response_added event for the notification fan-out.
func (s *TicketService) AddResponse(ctx context.Context, caller Caller, ticketID, message string) (*domain.Response, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.NewValidationError("Message is required", nil)
	}
	ticket, err := s.fetchVisible(ctx, caller, ticketID)
	if err != nil {
		return nil, err
	}

	response := &domain.Response{
		TicketID: ticket.ID,
		AuthorID: caller.ID,
		Message:  message,
	}
	if err := s.responses.Create(ctx, response); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.tickets.Touch(ctx, ticket.ID); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventResponseAdded,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: caller.ID, Role: caller.Role},
		Payload: events.ResponseAddedPayload{
			ResponseID:    response.ID,
			TicketOwnerID: ticket.OwnerID,
			TicketSubject: ticket.Subject,
		},
	})
	return response, nil
}

// UpdateStatus changes a ticket's status. Admin only. Always notifies the
// owner through a status_changed event, even when the admin owns the ticket.
func (s *TicketService) UpdateStatus(ctx context.Context, caller Caller, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !auth.CanPerform(caller.Role, auth.ActionChangeStatus, "", caller.ID) {
		return nil, apperrors.NewForbidden("Admin access required")
	}
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("Invalid status", nil)
	}

	current, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, mapTicketError(err)
	}

	ticket, err := s.tickets.UpdateStatus(ctx, ticketID, newStatus)
	if err != nil {
		return nil, mapTicketError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventStatusChanged,
		TicketID: ticket.ID,
		Actor:    events.Actor{UserID: caller.ID, Role: caller.Role},
		Payload: events.StatusChangedPayload{
			TicketOwnerID: ticket.OwnerID,
			TicketSubject: ticket.Subject,
			OldStatus:     current.Status,
			NewStatus:     newStatus,
		},
	})
	return ticket, nil
}

// AssignDepartment routes a ticket to one of the fixed departments, or
// clears the assignment when department is nil. Admin only.
func (s *TicketService) AssignDepartment(ctx context.Context, caller Caller, ticketID string, department *domain.Department) (*domain.Ticket, error) {
	if !auth.CanPerform(caller.Role, auth.ActionAssignDepartment, "", caller.ID) {
		return nil, apperrors.NewForbidden("Admin access required")
	}
	if department != nil && !domain.ValidDepartment(*department) {
		return nil, apperrors.NewValidationError("Invalid department", nil)
	}

	ticket, err := s.tickets.UpdateDepartment(ctx, ticketID, department)
	if err != nil {
		return nil, mapTicketError(err)
	}
	return ticket, nil
}

// DeleteTicket removes a ticket; responses and notifications cascade. The
// owner may delete only while the ticket is neither resolved nor closed;
// admins may delete any ticket.
func (s *TicketService) DeleteTicket(ctx context.Context, caller Caller, ticketID string) error {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return mapTicketError(err)
	}
	if !auth.CanPerform(caller.Role, auth.ActionDeleteTicket, ticket.OwnerID, caller.ID) {
		return apperrors.NewForbidden("You can only delete your own tickets")
	}
	if !caller.Role.IsAdmin() &&
		(ticket.Status == domain.TicketStatusResolved || ticket.Status == domain.TicketStatusClosed) {
		return apperrors.NewValidationError("Cannot delete resolved or closed tickets", nil)
	}
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		return mapTicketError(err)
	}
	return nil
}

// SearchTickets matches the query against subject, description, category
// and status, scoped to the caller's tickets unless admin. A blank query is
// an empty result, not an error.
func (s *TicketService) SearchTickets(ctx context.Context, caller Caller, query string) ([]domain.Ticket, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.Ticket{}, nil
	}
	var ownerScope *string
	if !caller.Role.IsAdmin() {
		ownerScope = &caller.ID
	}
	tickets, err := s.tickets.Search(ctx, ownerScope, query)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return tickets, nil
}

// fetchVisible loads a ticket enforcing visibility: admins see everything
// (with owner identity joined), users only their own tickets.
func (s *TicketService) fetchVisible(ctx context.Context, caller Caller, ticketID string) (*domain.Ticket, error) {
	var (
		ticket *domain.Ticket
		err    error
	)
	if caller.Role.IsAdmin() {
		ticket, err = s.tickets.GetByIDWithOwner(ctx, ticketID)
	} else {
		ticket, err = s.tickets.GetByID(ctx, ticketID)
	}
	if err != nil {
		return nil, mapTicketError(err)
	}
	if !auth.CanPerform(caller.Role, auth.ActionViewTicket, ticket.OwnerID, caller.ID) {
		return nil, apperrors.NewNotFound("Ticket", nil)
	}
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

var priorityRank = map[domain.TicketPriority]int{
	domain.TicketPriorityUrgent: 1,
	domain.TicketPriorityHigh:   2,
	domain.TicketPriorityMedium: 3,
	domain.TicketPriorityLow:    4,
}

func sortTickets(tickets []domain.Ticket, order SortOrder) {
	switch order {
	case SortOldest:
		sort.SliceStable(tickets, func(i, j int) bool {
			return tickets[i].CreatedAt.Before(tickets[j].CreatedAt)
		})
	case SortPriority:
		sort.SliceStable(tickets, func(i, j int) bool {
			return priorityRank[tickets[i].Priority] < priorityRank[tickets[j].Priority]
		})
	case SortSLA:
		// Deadline ascending, tickets without a deadline last.
		sort.SliceStable(tickets, func(i, j int) bool {
			a, b := tickets[i].SLADeadline, tickets[j].SLADeadline
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return a.Before(*b)
		})
	default: // SortNewest
		sort.SliceStable(tickets, func(i, j int) bool {
			return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
		})
	}
}

func mapTicketError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("Ticket", nil)
	}
	return apperrors.MapError(err)
}
