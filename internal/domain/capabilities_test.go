package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTechnician(t *testing.T) {
	assert.False(t, IsTechnician(nil))
	assert.False(t, IsTechnician(&User{Role: RoleCustomer}))
	assert.True(t, IsTechnician(&User{Role: RoleAgent}))
	assert.True(t, IsTechnician(&User{Role: RoleAdmin}))
}

func TestCanViewTicket(t *testing.T) {
	ticket := &Ticket{ID: "TICKET-1", CustomerID: "user-1"}

	assert.True(t, CanViewTicket(&User{ID: "user-1", Role: RoleCustomer}, ticket))
	assert.False(t, CanViewTicket(&User{ID: "user-2", Role: RoleCustomer}, ticket))
	assert.True(t, CanViewTicket(&User{ID: "agent-1", Role: RoleAgent}, ticket))
	assert.True(t, CanViewTicket(&User{ID: "admin-1", Role: RoleAdmin}, ticket))
	assert.False(t, CanViewTicket(nil, ticket))
}

func TestCanEditTicket(t *testing.T) {
	ticket := &Ticket{ID: "TICKET-1", CustomerID: "user-1"}

	// Owning the ticket does not grant edit rights.
	assert.False(t, CanEditTicket(&User{ID: "user-1", Role: RoleCustomer}, ticket))
	assert.True(t, CanEditTicket(&User{ID: "agent-1", Role: RoleAgent}, ticket))
	assert.False(t, CanEditTicket(&User{ID: "agent-1", Role: RoleAgent}, nil))
}

func TestCanCommentMirrorsVisibility(t *testing.T) {
	ticket := &Ticket{ID: "TICKET-1", CustomerID: "user-1"}

	assert.True(t, CanComment(&User{ID: "user-1", Role: RoleCustomer}, ticket))
	assert.False(t, CanComment(&User{ID: "user-2", Role: RoleCustomer}, ticket))
	assert.True(t, CanComment(&User{ID: "agent-1", Role: RoleAgent}, ticket))
}

func TestAdminOnlyCapabilities(t *testing.T) {
	assert.True(t, CanManageUsers(&User{Role: RoleAdmin}))
	assert.False(t, CanManageUsers(&User{Role: RoleAgent}))
	assert.False(t, CanManageUsers(nil))

	assert.True(t, CanManageBranding(&User{Role: RoleAdmin}))
	assert.False(t, CanManageBranding(&User{Role: RoleCustomer}))
}
