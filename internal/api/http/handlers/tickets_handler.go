package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/view"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// TicketsHandler exposes ticket listing, reading and mutation endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// List GET /tickets. Query parameters map directly onto the view
// controls; role scoping is always derived from the authenticated user.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	controls := parseControls(c)
	tickets, err := h.service.ListView(c.Context(), user, controls)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.FromTicket(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Report GET /tickets/report.
func (h *TicketsHandler) Report(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	archived, _ := strconv.ParseBool(c.Query("archived", "false"))
	report, err := h.service.Report(c.Context(), user, archived)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": report})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.service.Get(c.Context(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Create(c.Context(), user, service.TicketCreateInput{
		Subject:     req.Subject,
		Description: req.Description,
		CustomerID:  req.CustomerID,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// Update PATCH /tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.UpdateFields(c.Context(), user, c.Params("id"), service.TicketUpdateInput{
		Subject:     req.Subject,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// Reassign POST /tickets/:id/assignee.
func (h *TicketsHandler) Reassign(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ReassignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Reassign(c.Context(), user, c.Params("id"), req.AgentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// AddComment POST /tickets/:id/comments. A whitespace-only body is
// accepted and ignored: 204, no mutation.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comment, err := h.service.AddComment(c.Context(), user, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	if comment == nil {
		return c.SendStatus(http.StatusNoContent)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CommentResponse{
		ID:        comment.ID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}})
}

// ToggleArchive POST /tickets/:id/archive.
func (h *TicketsHandler) ToggleArchive(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.service.ToggleArchive(c.Context(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

func parseControls(c *fiber.Ctx) view.Controls {
	controls := view.Controls{
		Search:       c.Query("search"),
		DateSort:     view.SortDesc,
		PrioritySort: view.PrioritySortNone,
	}
	if status := c.Query("status"); status != "" && status != "all" {
		controls.Status = domain.TicketStatus(status)
	}
	if archived, err := strconv.ParseBool(c.Query("archived", "false")); err == nil {
		controls.Archived = archived
	}
	if unassigned, err := strconv.ParseBool(c.Query("unassigned", "false")); err == nil {
		controls.UnassignedOnly = unassigned
	}
	if field := c.Query("filter_field"); field != "" {
		controls.FieldFilter = &view.FieldFilter{
			Field: field,
			Value: c.Query("filter_value"),
		}
	}
	if c.Query("date_sort") == string(view.SortAsc) {
		controls.DateSort = view.SortAsc
	}
	switch c.Query("priority_sort") {
	case string(view.PrioritySortAsc):
		controls.PrioritySort = view.PrioritySortAsc
	case string(view.PrioritySortDesc):
		controls.PrioritySort = view.PrioritySortDesc
	}
	return controls
}
