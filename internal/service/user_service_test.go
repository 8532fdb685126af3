package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/store"
)

func newUserService(t *testing.T) (*UserService, repository.UserRepository) {
	t.Helper()
	snapshots := store.NewSnapshotStore(filepath.Join(t.TempDir(), "helpdesk.json"), zap.NewNop())
	return NewUserService(snapshots.Users(), bcrypt.MinCost), snapshots.Users()
}

func TestUserCreateHashesPIN(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.Create(context.Background(), UserCreateInput{
		Name:     "Erin Example",
		Username: "erin",
		Role:     domain.RoleAgent,
		PIN:      "2468",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "2468", user.PINHash)
	assert.NoError(t, auth.ComparePIN(user.PINHash, "2468"))
	assert.True(t, user.CreatedAt.Equal(user.UpdatedAt))
}

func TestUserCreateValidation(t *testing.T) {
	svc, _ := newUserService(t)
	tests := []struct {
		name  string
		input UserCreateInput
	}{
		{"blank name", UserCreateInput{Username: "x", Role: domain.RoleAgent, PIN: "1234"}},
		{"blank username", UserCreateInput{Name: "x", Role: domain.RoleAgent, PIN: "1234"}},
		{"unknown role", UserCreateInput{Name: "x", Username: "y", Role: "Owner", PIN: "1234"}},
		{"bad pin", UserCreateInput{Name: "x", Username: "y", Role: domain.RoleAgent, PIN: "12"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			requireDomainErrorCode(t, err, "VALIDATION_FAILED")
		})
	}
}

func TestUserCreateDuplicateUsernameConflicts(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Create(context.Background(), UserCreateInput{
		Name:     "Alice Clone",
		Username: "alice",
		Role:     domain.RoleCustomer,
		PIN:      "1234",
	})

	requireDomainErrorCode(t, err, "CONFLICT")
}

func TestUserUpdateRoleAndPIN(t *testing.T) {
	svc, users := newUserService(t)
	role := domain.RoleAdmin
	pin := "9999"

	updated, err := svc.Update(context.Background(), "agent-1", UserUpdateInput{Role: &role, PIN: &pin})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleAdmin, updated.Role)
	assert.NoError(t, auth.ComparePIN(updated.PINHash, "9999"))

	stored, err := users.GetByID(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, stored.Role)
}

func TestUserUpdateUnknownID(t *testing.T) {
	svc, _ := newUserService(t)
	role := domain.RoleAgent

	_, err := svc.Update(context.Background(), "user-ghost", UserUpdateInput{Role: &role})

	requireDomainErrorCode(t, err, "NOT_FOUND")
}

func TestUserDeleteBlocksSelfDeletion(t *testing.T) {
	svc, users := newUserService(t)
	admin, err := users.GetByID(context.Background(), "admin-1")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), admin, admin.ID)
	requireDomainErrorCode(t, err, "CONFLICT")

	err = svc.Delete(context.Background(), admin, "user-2")
	require.NoError(t, err)
	_, err = users.GetByID(context.Background(), "user-2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
