package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/store"
)

func newBrandingService(t *testing.T) (*BrandingService, events.Dispatcher) {
	t.Helper()
	snapshots := store.NewSnapshotStore(filepath.Join(t.TempDir(), "helpdesk.json"), zap.NewNop())
	dispatcher := events.NewInMemoryDispatcher()
	return NewBrandingService(snapshots.Branding(), dispatcher), dispatcher
}

func TestBrandingUpdateTrimsAndPersists(t *testing.T) {
	svc, dispatcher := newBrandingService(t)
	var published bool
	dispatcher.Subscribe(events.EventBrandingUpdated, func(_ context.Context, _ events.Event) error {
		published = true
		return nil
	})
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}

	updated, err := svc.Update(context.Background(), admin, domain.Branding{
		CompanyName: "  Acme Support  ",
		LogoURL:     "https://example.com/logo.svg",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Support", updated.CompanyName)
	assert.True(t, published)

	current, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Acme Support", current.CompanyName)
	assert.Equal(t, "https://example.com/logo.svg", current.LogoURL)
}

func TestBrandingUpdateRequiresCompanyName(t *testing.T) {
	svc, _ := newBrandingService(t)
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}

	_, err := svc.Update(context.Background(), admin, domain.Branding{CompanyName: "   "})

	requireDomainErrorCode(t, err, "VALIDATION_FAILED")
}
