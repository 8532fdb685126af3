package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/store"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	snapshots := store.NewSnapshotStore(filepath.Join(t.TempDir(), "helpdesk.json"), zap.NewNop())
	return NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 15,
	}, snapshots.Users())
}

func TestLoginSucceedsWithSeedCredentials(t *testing.T) {
	svc := newAuthService(t)

	user, token, expiresAt, err := svc.Login(context.Background(), "alice", "1234")
	require.NoError(t, err)

	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Role, claims.Role)
}

func TestLoginRejectsWrongPIN(t *testing.T) {
	svc := newAuthService(t)

	_, _, _, err := svc.Login(context.Background(), "alice", "9999")

	requireDomainErrorCode(t, err, "UNAUTHORIZED")
}

func TestLoginRejectsUnknownUsername(t *testing.T) {
	svc := newAuthService(t)

	_, _, _, err := svc.Login(context.Background(), "mallory", "1234")

	requireDomainErrorCode(t, err, "UNAUTHORIZED")
}

func TestLoginValidatesPINFormatFirst(t *testing.T) {
	svc := newAuthService(t)

	_, _, _, err := svc.Login(context.Background(), "alice", "12ab")
	requireDomainErrorCode(t, err, "VALIDATION_FAILED")

	_, _, _, err = svc.Login(context.Background(), "", "1234")
	requireDomainErrorCode(t, err, "VALIDATION_FAILED")
}
