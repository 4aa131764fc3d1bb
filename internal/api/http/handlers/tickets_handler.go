package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campusdesk/helpdesk/internal/api/dto"
	"github.com/campusdesk/helpdesk/internal/auth"
	"github.com/campusdesk/helpdesk/internal/domain"
	"github.com/campusdesk/helpdesk/internal/service"
	apperrors "github.com/campusdesk/helpdesk/pkg/util"
)

// TicketsHandler manages ticket endpoints for users and admins.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Create POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.CreateTicket(c.Context(), caller.ID, service.CreateTicketInput{
		Category:    req.Category,
		Subject:     req.Subject,
		Description: req.Description,
		IsUrgent:    req.IsUrgent,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ticket": dto.NewTicketResponse(ticket, time.Now())})
}

// List GET /api/tickets. Supports optional ?status= and ?sort= filters.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}

	opts := service.ListOptions{Sort: service.SortOrder(c.Query("sort", string(service.SortNewest)))}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.TicketStatus(statusStr)
		if !domain.ValidStatus(status) {
			return apperrors.NewValidationError("Invalid status", nil)
		}
		opts.Status = &status
	}

	tickets, err := h.service.ListTickets(c.Context(), caller, opts)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tickets": dto.NewTicketResponses(tickets, time.Now())})
}

// Search GET /api/tickets/search?q=.
func (h *TicketsHandler) Search(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.SearchTickets(c.Context(), caller, c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"tickets": dto.NewTicketResponses(tickets, time.Now())})
}

// Get GET /api/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	ticket, thread, err := h.service.GetTicket(c.Context(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"ticket":    dto.NewTicketResponse(ticket, time.Now()),
		"responses": dto.NewResponseEntries(thread),
	})
}

// Delete DELETE /api/tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteTicket(c.Context(), caller, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "Ticket deleted successfully"})
}

// Respond POST /api/tickets/:id/respond.
func (h *TicketsHandler) Respond(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	var req dto.RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	response, err := h.service.AddResponse(c.Context(), caller, c.Params("id"), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"response": dto.NewResponseEntry(response)})
}

// UpdateStatus PUT /api/tickets/:id/status. Admin only.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.UpdateStatus(c.Context(), caller, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ticket": dto.NewTicketResponse(ticket, time.Now())})
}

// AssignDepartment PUT /api/tickets/:id/assign. Admin only.
func (h *TicketsHandler) AssignDepartment(c *fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return err
	}
	var req dto.AssignDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.AssignDepartment(c.Context(), caller, c.Params("id"), req.Department)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ticket": dto.NewTicketResponse(ticket, time.Now())})
}

func callerFromContext(c *fiber.Ctx) (service.Caller, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return service.Caller{}, apperrors.NewUnauthorized("Please log in to continue")
	}
	return service.Caller{ID: principal.User.ID, Role: principal.Role}, nil
}
