package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// UserService implements admin account management: create, role change,
// PIN reset, delete.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
	now        func() time.Time
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost, now: time.Now}
}

// UserCreateInput describes a new account.
type UserCreateInput struct {
	Name      string
	Username  string
	Role      domain.Role
	PIN       string
	AvatarURL string
}

// UserUpdateInput applies any subset of role and PIN.
type UserUpdateInput struct {
	Role *domain.Role
	PIN  *string
}

// Create registers a new account with a hashed PIN.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	username := strings.TrimSpace(input.Username)
	if name == "" || username == "" {
		return nil, apperrors.NewValidationError("name and username required", nil)
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
	}
	if err := auth.ValidatePINFormat(input.PIN); err != nil {
		return nil, err
	}

	hash, err := auth.HashPIN(input.PIN, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	now := s.now()
	user := &domain.User{
		ID:        "user-" + uuid.NewString(),
		Name:      name,
		Username:  username,
		Role:      input.Role,
		AvatarURL: input.AvatarURL,
		PINHash:   hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("username already taken", map[string]any{"username": username})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Update applies role and PIN changes.
func (s *UserService) Update(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	changed := false
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *input.Role})
		}
		user.Role = *input.Role
		changed = true
	}
	if input.PIN != nil {
		if err := auth.ValidatePINFormat(*input.PIN); err != nil {
			return nil, err
		}
		hash, err := auth.HashPIN(*input.PIN, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		user.PINHash = hash
		changed = true
	}
	if !changed {
		return user, nil
	}

	user.UpdatedAt = s.now()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete removes an account. Admins cannot delete themselves so the
// system always keeps at least one way in.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if actor != nil && actor.ID == id {
		return apperrors.NewConflict("cannot delete your own account", nil)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// List returns all accounts.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}
