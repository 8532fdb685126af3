package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	PIN      string `json:"pin"`
}

// LoginResponse carries the session token and the authenticated user.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse never includes the PIN hash.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	AvatarURL string      `json:"avatar_url,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CreateUserRequest payload for admin account creation.
type CreateUserRequest struct {
	Name      string      `json:"name"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	PIN       string      `json:"pin"`
	AvatarURL string      `json:"avatar_url,omitempty"`
}

// UpdateUserRequest applies role and/or PIN changes.
type UpdateUserRequest struct {
	Role *domain.Role `json:"role,omitempty"`
	PIN  *string      `json:"pin,omitempty"`
}

// FromUser maps a domain user to its response form.
func FromUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Role:      user.Role,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
