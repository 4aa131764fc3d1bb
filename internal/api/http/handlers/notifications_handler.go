package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusdesk/helpdesk/internal/api/dto"
	"github.com/campusdesk/helpdesk/internal/service"
)

// NotificationsHandler serves the caller's notification feed.
type NotificationsHandler struct {
	service *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{service: notificationService}
}

// List GET /api/notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	notifications, unread, err := h.service.ListForUser(c.Context(), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"notifications": dto.NewNotificationResponses(notifications),
		"unreadCount":   unread,
	})
}

// MarkRead PUT /api/notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	if err := h.service.MarkRead(c.Context(), caller.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// MarkAllRead PUT /api/notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	if err := h.service.MarkAllRead(c.Context(), caller.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
