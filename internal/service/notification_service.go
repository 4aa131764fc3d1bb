package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campusdesk/helpdesk/internal/domain"
	"github.com/campusdesk/helpdesk/internal/events"
	"github.com/campusdesk/helpdesk/internal/repository"
	apperrors "github.com/campusdesk/helpdesk/pkg/util"
)

// NotificationService consumes ticket events and fans notifications out to
// the interested parties. Delivery is best effort: a failed insert is
// logged and dropped, never surfaced to the triggering operation.
type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to ticket events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventResponseAdded, n.handleResponseAdded)
	n.dispatcher.Subscribe(events.EventStatusChanged, n.handleStatusChanged)
}

// handleResponseAdded applies the response fan-out rules: an admin reply
// notifies the owner unless the admin owns the ticket; an owner reply
// notifies every admin. An admin replying to their own ticket notifies
// nobody.
func (n *NotificationService) handleResponseAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ResponseAddedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for response_added", zap.String("event_id", event.ID))
		return nil
	}

	if event.Actor.Role.IsAdmin() {
		if payload.TicketOwnerID == event.Actor.UserID {
			return nil
		}
		n.deliver(ctx, &domain.Notification{
			RecipientID: payload.TicketOwnerID,
			TicketID:    event.TicketID,
			Type:        domain.NotificationTypeResponse,
			Message:     fmt.Sprintf("Staff replied to your ticket: %q", payload.TicketSubject),
		})
		return nil
	}

	admins, err := n.users.ListAdmins(ctx)
	if err != nil {
		n.logger.Error("list admins for fan-out", zap.Error(err), zap.String("ticket_id", event.TicketID))
		return nil
	}
	for _, admin := range admins {
		n.deliver(ctx, &domain.Notification{
			RecipientID: admin.ID,
			TicketID:    event.TicketID,
			Type:        domain.NotificationTypeResponse,
			Message:     fmt.Sprintf("New response on ticket: %q", payload.TicketSubject),
		})
	}
	return nil
}

// handleStatusChanged always notifies the owner, even when the acting admin
// owns the ticket. The asymmetry with the response case is intentional.
func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.StatusChangedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for status_changed", zap.String("event_id", event.ID))
		return nil
	}

	n.deliver(ctx, &domain.Notification{
		RecipientID: payload.TicketOwnerID,
		TicketID:    event.TicketID,
		Type:        domain.NotificationTypeStatusChange,
		Message: fmt.Sprintf("Ticket %q status changed to %s",
			payload.TicketSubject, domain.StatusLabel(payload.NewStatus)),
	})
	return nil
}

func (n *NotificationService) deliver(ctx context.Context, notification *domain.Notification) {
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Error("notification delivery failed",
			zap.Error(err),
			zap.String("recipient_id", notification.RecipientID),
			zap.String("ticket_id", notification.TicketID),
			zap.String("type", string(notification.Type)),
		)
	}
}

// ListForUser returns the caller's most recent notifications and the unread
// count.
func (n *NotificationService) ListForUser(ctx context.Context, userID string) ([]domain.Notification, int64, error) {
	notifications, err := n.notifications.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	unread, err := n.notifications.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return notifications, unread, nil
}

// MarkRead marks one of the caller's notifications as read. Idempotent.
func (n *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if err := n.notifications.MarkRead(ctx, userID, notificationID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// MarkAllRead marks every notification of the caller as read. Idempotent.
func (n *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := n.notifications.MarkAllRead(ctx, userID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
