package domain

// IsTechnician reports whether the user works tickets (agents and admins).
func IsTechnician(user *User) bool {
	if user == nil {
		return false
	}
	return user.Role == RoleAgent || user.Role == RoleAdmin
}

// CanViewTicket reports whether the user may see the ticket at all.
// Customers only see their own tickets.
func CanViewTicket(user *User, ticket *Ticket) bool {
	if user == nil || ticket == nil {
		return false
	}
	if IsTechnician(user) {
		return true
	}
	return ticket.CustomerID == user.ID
}

// CanEditTicket reports whether the user may change ticket fields,
// reassign, or archive. Only technicians qualify.
func CanEditTicket(user *User, ticket *Ticket) bool {
	return IsTechnician(user) && ticket != nil
}

// CanComment reports whether the user may append to the ticket thread.
// The owning customer and any technician qualify.
func CanComment(user *User, ticket *Ticket) bool {
	return CanViewTicket(user, ticket)
}

// CanManageUsers gates account creation, role changes, PIN resets and
// deletion.
func CanManageUsers(user *User) bool {
	return user != nil && user.Role == RoleAdmin
}

// CanManageBranding gates changes to the company name and logo.
func CanManageBranding(user *User) bool {
	return user != nil && user.Role == RoleAdmin
}
