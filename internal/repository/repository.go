package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist,
// regardless of which backend serves the repository.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint (username) would be
// violated.
var ErrDuplicate = errors.New("record already exists")

// TicketRepository encapsulates ticket persistence. List returns the full
// set in insertion order; all filtering and sorting happens in the view
// engine so the ordering contract lives in one place.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
}

// UserRepository encapsulates account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// BrandingRepository persists the single branding document.
type BrandingRepository interface {
	Get(ctx context.Context) (*domain.Branding, error)
	Save(ctx context.Context, branding *domain.Branding) error
}
