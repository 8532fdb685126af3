package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// BrandingService manages the tenant branding document.
type BrandingService struct {
	branding   repository.BrandingRepository
	dispatcher events.Dispatcher
}

// NewBrandingService builds the service.
func NewBrandingService(branding repository.BrandingRepository, dispatcher events.Dispatcher) *BrandingService {
	return &BrandingService{branding: branding, dispatcher: dispatcher}
}

// Get returns the current branding. Shown unauthenticated on the login
// screen, so it never errors on empty state.
func (s *BrandingService) Get(ctx context.Context) (*domain.Branding, error) {
	branding, err := s.branding.Get(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return branding, nil
}

// Update replaces the branding document.
func (s *BrandingService) Update(ctx context.Context, actor *domain.User, branding domain.Branding) (*domain.Branding, error) {
	branding.CompanyName = strings.TrimSpace(branding.CompanyName)
	if branding.CompanyName == "" {
		return nil, apperrors.NewValidationError("company name required", nil)
	}

	if err := s.branding.Save(ctx, &branding); err != nil {
		return nil, apperrors.MapError(err)
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventBrandingUpdated,
			Actor:     actorOf(actor),
			Timestamp: time.Now(),
			Payload:   events.BrandingUpdatedPayload{CompanyName: branding.CompanyName},
		})
	}
	return &branding, nil
}
