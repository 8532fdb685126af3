package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// SuggestionsHandler exposes the category/priority suggestion endpoint.
type SuggestionsHandler struct {
	service *service.SuggestionService
}

// NewSuggestionsHandler constructs handler.
func NewSuggestionsHandler(suggestionService *service.SuggestionService) *SuggestionsHandler {
	return &SuggestionsHandler{service: suggestionService}
}

// Suggest POST /suggestions. A collaborator failure returns an empty
// suggestion; a superseded request returns 204 so the stale result is
// never applied.
func (h *SuggestionsHandler) Suggest(c *fiber.Ctx) error {
	var req dto.SuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("description required", nil)
	}

	suggestion, err := h.service.Suggest(c.Context(), req.Description)
	if err != nil {
		if errors.Is(err, service.ErrSuperseded) {
			return c.SendStatus(http.StatusNoContent)
		}
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SuggestionResponse{
		Category: suggestion.Category,
		Priority: suggestion.Priority,
	}})
}
