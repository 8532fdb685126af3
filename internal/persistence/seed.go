package persistence

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// Seed PINs for the built-in accounts; only meaningful for fresh
// installs and local development.
const (
	seedAdminPIN    = "0000"
	seedAgentPIN    = "1111"
	seedCustomerPIN = "1234"
)

// SeedSnapshot builds the fallback dataset used when no snapshot exists
// or the persisted one cannot be parsed.
func SeedSnapshot() *Snapshot {
	alice := domain.User{
		ID:        "user-1",
		Name:      "Alice Johnson",
		Username:  "alice",
		Role:      domain.RoleCustomer,
		AvatarURL: "https://i.pravatar.cc/150?u=alice",
		PINHash:   hashSeedPIN(seedCustomerPIN),
		CreatedAt: seedTime("2023-10-01T09:00:00Z"),
		UpdatedAt: seedTime("2023-10-01T09:00:00Z"),
	}
	bob := domain.User{
		ID:        "user-2",
		Name:      "Bob Williams",
		Username:  "bob",
		Role:      domain.RoleCustomer,
		AvatarURL: "https://i.pravatar.cc/150?u=bob",
		PINHash:   hashSeedPIN(seedCustomerPIN),
		CreatedAt: seedTime("2023-10-01T09:00:00Z"),
		UpdatedAt: seedTime("2023-10-01T09:00:00Z"),
	}
	charlie := domain.User{
		ID:        "agent-1",
		Name:      "Charlie Brown",
		Username:  "charlie",
		Role:      domain.RoleAgent,
		AvatarURL: "https://i.pravatar.cc/150?u=charlie",
		PINHash:   hashSeedPIN(seedAgentPIN),
		CreatedAt: seedTime("2023-10-01T09:00:00Z"),
		UpdatedAt: seedTime("2023-10-01T09:00:00Z"),
	}
	admin := domain.User{
		ID:        "admin-1",
		Name:      "Dana Admin",
		Username:  "admin",
		Role:      domain.RoleAdmin,
		AvatarURL: "https://i.pravatar.cc/150?u=dana",
		PINHash:   hashSeedPIN(seedAdminPIN),
		CreatedAt: seedTime("2023-10-01T09:00:00Z"),
		UpdatedAt: seedTime("2023-10-01T09:00:00Z"),
	}

	agentID := charlie.ID
	tickets := []domain.Ticket{
		{
			ID:          "TICKET-1234",
			Subject:     "Cannot connect to the office Wi-Fi",
			Description: `My laptop is unable to connect to the "Office-Guest" Wi-Fi network. I have tried restarting my machine and forgetting the network, but it still fails to connect.`,
			CustomerID:  alice.ID,
			AgentID:     &agentID,
			Status:      domain.TicketStatusOpen,
			Priority:    domain.TicketPriorityHigh,
			Category:    domain.TicketCategoryNetwork,
			CreatedAt:   seedTime("2023-10-27T10:00:00Z"),
			UpdatedAt:   seedTime("2023-10-27T10:05:00Z"),
			Comments: []domain.Comment{
				{
					ID:        "comment-1",
					AuthorID:  charlie.ID,
					Content:   `Hi Alice, I am looking into this issue for you. Have you tried connecting to the main "Office-Secure" network?`,
					CreatedAt: seedTime("2023-10-27T10:05:00Z"),
				},
			},
			AssignmentHistory: []domain.AssignmentEntry{
				{AgentID: nil, Timestamp: seedTime("2023-10-27T10:00:00Z")},
				{AgentID: &agentID, Timestamp: seedTime("2023-10-27T10:02:00Z")},
			},
		},
		{
			ID:          "TICKET-5678",
			Subject:     `Software installation request for "SuperDesign Pro"`,
			Description: `I need to have "SuperDesign Pro" installed on my workstation for a new project. My machine is a Dell Precision Tower 5820.`,
			CustomerID:  bob.ID,
			AgentID:     &agentID,
			Status:      domain.TicketStatusInProgress,
			Priority:    domain.TicketPriorityMedium,
			Category:    domain.TicketCategorySoftware,
			CreatedAt:   seedTime("2023-10-26T14:30:00Z"),
			UpdatedAt:   seedTime("2023-10-27T09:15:00Z"),
			Comments:    []domain.Comment{},
			AssignmentHistory: []domain.AssignmentEntry{
				{AgentID: &agentID, Timestamp: seedTime("2023-10-26T14:30:00Z")},
			},
		},
	}

	return &Snapshot{
		Tickets: tickets,
		Users:   []domain.User{alice, bob, charlie, admin},
		Branding: &domain.Branding{
			CompanyName: "HelpDesk Pro",
		},
	}
}

func hashSeedPIN(pin string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return ""
	}
	return string(hashed)
}

func seedTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
