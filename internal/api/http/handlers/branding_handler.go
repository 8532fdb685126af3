package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// BrandingHandler exposes branding read and update endpoints. Reads are
// public so the login screen can render the configured identity.
type BrandingHandler struct {
	service *service.BrandingService
}

// NewBrandingHandler constructs handler.
func NewBrandingHandler(brandingService *service.BrandingService) *BrandingHandler {
	return &BrandingHandler{service: brandingService}
}

// Get GET /branding.
func (h *BrandingHandler) Get(c *fiber.Ctx) error {
	branding, err := h.service.Get(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BrandingResponse{
		CompanyName: branding.CompanyName,
		LogoURL:     branding.LogoURL,
	}})
}

// Update PUT /branding.
func (h *BrandingHandler) Update(c *fiber.Ctx) error {
	user, _ := auth.CurrentUser(c)
	var req dto.BrandingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	branding, err := h.service.Update(c.Context(), user, domain.Branding{
		CompanyName: req.CompanyName,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.BrandingResponse{
		CompanyName: branding.CompanyName,
		LogoURL:     branding.LogoURL,
	}})
}
