package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func ticketAt(id, customerID string, created time.Time) domain.Ticket {
	return domain.Ticket{
		ID:         id,
		Subject:    "subject " + id,
		CustomerID: customerID,
		Status:     domain.TicketStatusOpen,
		Priority:   domain.TicketPriorityMedium,
		Category:   domain.TicketCategoryOther,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func ids(tickets []domain.Ticket) []string {
	out := make([]string, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, t.ID)
	}
	return out
}

var baseTime = time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)

func TestComputeScopesCustomersToTheirOwnTickets(t *testing.T) {
	engine := NewEngine(nil)
	tickets := []domain.Ticket{
		ticketAt("T-1", "user-1", baseTime),
		ticketAt("T-2", "user-2", baseTime.Add(time.Hour)),
		ticketAt("T-3", "user-1", baseTime.Add(2*time.Hour)),
	}
	customer := &domain.User{ID: "user-1", Role: domain.RoleCustomer}

	result := engine.Compute(tickets, customer, Controls{})

	assert.Equal(t, []string{"T-3", "T-1"}, ids(result))
}

func TestComputeShowsTechniciansEveryTicket(t *testing.T) {
	engine := NewEngine(nil)
	tickets := []domain.Ticket{
		ticketAt("T-1", "user-1", baseTime),
		ticketAt("T-2", "user-2", baseTime.Add(time.Hour)),
	}

	for _, role := range []domain.Role{domain.RoleAgent, domain.RoleAdmin} {
		result := engine.Compute(tickets, &domain.User{ID: "staff", Role: role}, Controls{})
		assert.Len(t, result, 2, "role %s", role)
	}
}

func TestComputeArchivePartitionIsDisjointAndExhaustive(t *testing.T) {
	engine := NewEngine(nil)
	archived := ticketAt("T-old", "user-1", baseTime)
	archived.Archived = true
	tickets := []domain.Ticket{
		ticketAt("T-1", "user-1", baseTime),
		archived,
		ticketAt("T-2", "user-2", baseTime.Add(time.Hour)),
	}
	agent := &domain.User{ID: "agent-1", Role: domain.RoleAgent}

	active := engine.Compute(tickets, agent, Controls{Archived: false})
	stored := engine.Compute(tickets, agent, Controls{Archived: true})

	require.Len(t, active, 2)
	require.Len(t, stored, 1)
	assert.Equal(t, "T-old", stored[0].ID)

	seen := map[string]int{}
	for _, ticket := range append(active, stored...) {
		seen[ticket.ID]++
	}
	assert.Len(t, seen, len(tickets))
	for id, count := range seen {
		assert.Equal(t, 1, count, "ticket %s appears in both partitions", id)
	}
}

func TestComputeUnassignedFilter(t *testing.T) {
	engine := NewEngine(nil)
	agentID := "agent-1"
	assigned := ticketAt("T-1", "user-1", baseTime)
	assigned.AgentID = &agentID
	tickets := []domain.Ticket{
		assigned,
		ticketAt("T-2", "user-1", baseTime.Add(time.Hour)),
	}
	agent := &domain.User{ID: agentID, Role: domain.RoleAgent}

	result := engine.Compute(tickets, agent, Controls{UnassignedOnly: true})

	require.Len(t, result, 1)
	assert.Equal(t, "T-2", result[0].ID)
}

func TestComputeFieldFilterMatchesNamedFieldOnly(t *testing.T) {
	engine := NewEngine(nil)
	hardware := ticketAt("T-1", "user-1", baseTime)
	hardware.Category = domain.TicketCategoryHardware
	software := ticketAt("T-2", "user-1", baseTime.Add(time.Hour))
	software.Category = domain.TicketCategorySoftware
	tickets := []domain.Ticket{hardware, software}
	agent := &domain.User{ID: "agent-1", Role: domain.RoleAgent}

	result := engine.Compute(tickets, agent, Controls{
		FieldFilter: &FieldFilter{Field: "category", Value: "Hardware"},
	})
	require.Len(t, result, 1)
	assert.Equal(t, "T-1", result[0].ID)

	// The same literal on a different field must not cross-match.
	result = engine.Compute(tickets, agent, Controls{
		FieldFilter: &FieldFilter{Field: "status", Value: "Hardware"},
	})
	assert.Empty(t, result)
}

func TestComputeFieldFilterOnAgent(t *testing.T) {
	engine := NewEngine(nil)
	agentID := "agent-1"
	assigned := ticketAt("T-1", "user-1", baseTime)
	assigned.AgentID = &agentID
	tickets := []domain.Ticket{
		assigned,
		ticketAt("T-2", "user-1", baseTime.Add(time.Hour)),
	}
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}

	result := engine.Compute(tickets, admin, Controls{
		FieldFilter: &FieldFilter{Field: "agent_id", Value: agentID},
	})

	require.Len(t, result, 1)
	assert.Equal(t, "T-1", result[0].ID)
}

func TestComputeSearchIsCaseInsensitiveAcrossSubjectIDAndCustomerName(t *testing.T) {
	users := map[string]*domain.User{
		"user-1": {ID: "user-1", Name: "Alice Johnson"},
		"user-2": {ID: "user-2", Name: "Bob Williams"},
	}
	engine := NewEngine(func(id string) (*domain.User, bool) {
		user, ok := users[id]
		return user, ok
	})
	printer := ticketAt("TICKET-100", "user-1", baseTime)
	printer.Subject = "Printer is jammed"
	wifi := ticketAt("TICKET-200", "user-2", baseTime.Add(time.Hour))
	wifi.Subject = "Wi-Fi keeps dropping"
	tickets := []domain.Ticket{printer, wifi}
	agent := &domain.User{ID: "agent-1", Role: domain.RoleAgent}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"subject match", "PRINTER", []string{"TICKET-100"}},
		{"id match", "ticket-200", []string{"TICKET-200"}},
		{"customer name match", "alice", []string{"TICKET-100"}},
		{"no match yields empty list", "nonexistent", []string{}},
		{"blank search matches everything", "   ", []string{"TICKET-200", "TICKET-100"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Compute(tickets, agent, Controls{Search: tt.search})
			assert.Equal(t, tt.want, ids(result))
		})
	}
}

func TestComputeDateSortDirections(t *testing.T) {
	engine := NewEngine(nil)
	tickets := []domain.Ticket{
		ticketAt("T-mid", "user-1", baseTime.Add(time.Hour)),
		ticketAt("T-old", "user-1", baseTime),
		ticketAt("T-new", "user-1", baseTime.Add(2*time.Hour)),
	}
	agent := &domain.User{ID: "agent-1", Role: domain.RoleAgent}

	newest := engine.Compute(tickets, agent, Controls{DateSort: SortDesc})
	assert.Equal(t, []string{"T-new", "T-mid", "T-old"}, ids(newest))

	oldest := engine.Compute(tickets, agent, Controls{DateSort: SortAsc})
	assert.Equal(t, []string{"T-old", "T-mid", "T-new"}, ids(oldest))
}

func TestComputePrioritySortWithDateTieBreak(t *testing.T) {
	engine := NewEngine(nil)
	lowOld := ticketAt("T-low-old", "user-1", baseTime)
	lowOld.Priority = domain.TicketPriorityLow
	lowNew := ticketAt("T-low-new", "user-1", baseTime.Add(time.Hour))
	lowNew.Priority = domain.TicketPriorityLow
	critical := ticketAt("T-critical", "user-1", baseTime.Add(30*time.Minute))
	critical.Priority = domain.TicketPriorityCritical
	tickets := []domain.Ticket{lowOld, critical, lowNew}
	agent := &domain.User{ID: "agent-1", Role: domain.RoleAgent}

	result := engine.Compute(tickets, agent, Controls{
		PrioritySort: PrioritySortDesc,
		DateSort:     SortDesc,
	})
	assert.Equal(t, []string{"T-critical", "T-low-new", "T-low-old"}, ids(result))

	result = engine.Compute(tickets, agent, Controls{
		PrioritySort: PrioritySortAsc,
		DateSort:     SortAsc,
	})
	assert.Equal(t, []string{"T-low-old", "T-low-new", "T-critical"}, ids(result))
}

func TestComputeIsStableForFullyEqualKeys(t *testing.T) {
	engine := NewEngine(nil)
	tickets := []domain.Ticket{
		ticketAt("T-a", "user-1", baseTime),
		ticketAt("T-b", "user-1", baseTime),
		ticketAt("T-c", "user-1", baseTime),
	}
	agent := &domain.User{ID: "agent-1", Role: domain.RoleAgent}

	first := engine.Compute(tickets, agent, Controls{PrioritySort: PrioritySortDesc})
	second := engine.Compute(tickets, agent, Controls{PrioritySort: PrioritySortDesc})

	assert.Equal(t, []string{"T-a", "T-b", "T-c"}, ids(first))
	assert.Equal(t, ids(first), ids(second))
}

func TestComputeDoesNotMutateInput(t *testing.T) {
	engine := NewEngine(nil)
	tickets := []domain.Ticket{
		ticketAt("T-1", "user-1", baseTime.Add(time.Hour)),
		ticketAt("T-2", "user-1", baseTime),
	}
	agent := &domain.User{ID: "agent-1", Role: domain.RoleAgent}

	_ = engine.Compute(tickets, agent, Controls{DateSort: SortAsc})

	assert.Equal(t, []string{"T-1", "T-2"}, ids(tickets))
}

func TestComputeStatusFilter(t *testing.T) {
	engine := NewEngine(nil)
	open := ticketAt("T-open", "user-1", baseTime)
	resolved := ticketAt("T-resolved", "user-1", baseTime.Add(time.Hour))
	resolved.Status = domain.TicketStatusResolved
	tickets := []domain.Ticket{open, resolved}
	agent := &domain.User{ID: "agent-1", Role: domain.RoleAgent}

	result := engine.Compute(tickets, agent, Controls{Status: domain.TicketStatusResolved})

	require.Len(t, result, 1)
	assert.Equal(t, "T-resolved", result[0].ID)
}
