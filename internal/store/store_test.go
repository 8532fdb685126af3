package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

func newTestStore(t *testing.T) (*SnapshotStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "helpdesk.json")
	return NewSnapshotStore(path, zap.NewNop()), path
}

func TestNewSnapshotStoreSeedsWhenFileMissing(t *testing.T) {
	s, _ := newTestStore(t)

	tickets, err := s.Tickets().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tickets, 2)

	users, err := s.Users().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 4)

	branding, err := s.Branding().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "HelpDesk Pro", branding.CompanyName)
}

func TestNewSnapshotStoreSeedsWhenFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "helpdesk.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewSnapshotStore(path, zap.NewNop())

	tickets, err := s.Tickets().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tickets, 2)
}

func TestMutationsPersistAcrossRestart(t *testing.T) {
	s, path := newTestStore(t)
	ctx := context.Background()

	ticket := &domain.Ticket{
		ID:         "TICKET-NEW",
		Subject:    "Monitor flickers",
		CustomerID: "user-1",
		Status:     domain.TicketStatusOpen,
		Priority:   domain.TicketPriorityLow,
		Category:   domain.TicketCategoryHardware,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	require.NoError(t, s.Tickets().Create(ctx, ticket))

	reloaded := NewSnapshotStore(path, zap.NewNop())
	got, err := reloaded.Tickets().GetByID(ctx, "TICKET-NEW")
	require.NoError(t, err)
	assert.Equal(t, "Monitor flickers", got.Subject)
}

func TestTicketUpdateUnknownIDReturnsNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.Tickets().Update(context.Background(), &domain.Ticket{ID: "TICKET-MISSING"})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketReadsReturnIndependentCopies(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first, err := s.Tickets().GetByID(ctx, "TICKET-1234")
	require.NoError(t, err)
	first.Subject = "mutated by caller"
	first.Comments = append(first.Comments, domain.Comment{ID: "rogue"})

	second, err := s.Tickets().GetByID(ctx, "TICKET-1234")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated by caller", second.Subject)
	assert.Len(t, second.Comments, 1)
}

func TestUserCreateRejectsDuplicateUsername(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	err := s.Users().Create(ctx, &domain.User{
		ID:       "user-99",
		Name:     "Second Alice",
		Username: "alice",
		Role:     domain.RoleCustomer,
	})

	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserDeleteRemovesAccount(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users().Delete(ctx, "user-2"))

	_, err := s.Users().GetByID(ctx, "user-2")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = s.Users().Delete(ctx, "user-2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBrandingSaveRoundTrip(t *testing.T) {
	s, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Branding().Save(ctx, &domain.Branding{
		CompanyName: "Acme Support",
		LogoURL:     "https://example.com/logo.png",
	}))

	reloaded := NewSnapshotStore(path, zap.NewNop())
	branding, err := reloaded.Branding().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme Support", branding.CompanyName)
	assert.Equal(t, "https://example.com/logo.png", branding.LogoURL)
}
