package view

import (
	"sort"
	"strings"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SortDirection orders tickets by a key ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// PrioritySort optionally makes priority the primary sort key.
type PrioritySort string

const (
	PrioritySortNone PrioritySort = "none"
	PrioritySortAsc  PrioritySort = "asc"
	PrioritySortDesc PrioritySort = "desc"
)

// FieldFilter retains tickets whose named field equals the given value.
// It arises from drill-down clicks on the aggregate report; matching is
// keyed by field name first so equal literals on different fields never
// cross-match.
type FieldFilter struct {
	Field string
	Value string
}

// Controls captures everything that shapes the visible ticket list.
// The zero value shows active tickets of every status, newest first.
type Controls struct {
	Status         domain.TicketStatus // empty means all statuses
	Archived       bool
	UnassignedOnly bool
	Search         string
	FieldFilter    *FieldFilter
	DateSort       SortDirection
	PrioritySort   PrioritySort
}

// UserLookup resolves a user ID to the user, for search over customer
// display names.
type UserLookup func(id string) (*domain.User, bool)

// Engine derives the ordered, filtered ticket list to display. It is a
// pure projection of its inputs: no mutation ever happens here, and
// recomputing with unchanged inputs yields an identical ordering.
type Engine struct {
	users UserLookup
}

// NewEngine builds an engine with the given user resolver. A nil resolver
// disables customer-name search matching.
func NewEngine(users UserLookup) *Engine {
	return &Engine{users: users}
}

// Compute applies the view pipeline in fixed stage order: role scoping,
// archive partition, status filter, unassigned filter, ad-hoc field
// filter, free-text search, then a stable sort. Each stage feeds the
// next; an empty result is a valid outcome of every stage.
func (e *Engine) Compute(tickets []domain.Ticket, current *domain.User, controls Controls) []domain.Ticket {
	result := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if !e.visible(&ticket, current, controls) {
			continue
		}
		result = append(result, ticket)
	}
	e.sortTickets(result, controls)
	return result
}

func (e *Engine) visible(ticket *domain.Ticket, current *domain.User, controls Controls) bool {
	if current != nil && current.Role == domain.RoleCustomer && ticket.CustomerID != current.ID {
		return false
	}
	if ticket.Archived != controls.Archived {
		return false
	}
	if controls.Status != "" && ticket.Status != controls.Status {
		return false
	}
	if controls.UnassignedOnly && ticket.AgentID != nil {
		return false
	}
	if controls.FieldFilter != nil && !matchesField(ticket, *controls.FieldFilter) {
		return false
	}
	if term := strings.TrimSpace(controls.Search); term != "" && !e.matchesSearch(ticket, term) {
		return false
	}
	return true
}

func matchesField(ticket *domain.Ticket, filter FieldFilter) bool {
	switch filter.Field {
	case "status":
		return string(ticket.Status) == filter.Value
	case "priority":
		return string(ticket.Priority) == filter.Value
	case "category":
		return string(ticket.Category) == filter.Value
	case "customer_id":
		return ticket.CustomerID == filter.Value
	case "agent_id":
		return ticket.AgentID != nil && *ticket.AgentID == filter.Value
	default:
		return false
	}
}

func (e *Engine) matchesSearch(ticket *domain.Ticket, term string) bool {
	needle := strings.ToLower(term)
	if strings.Contains(strings.ToLower(ticket.Subject), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(ticket.ID), needle) {
		return true
	}
	if e.users != nil {
		if customer, ok := e.users(ticket.CustomerID); ok {
			if strings.Contains(strings.ToLower(customer.Name), needle) {
				return true
			}
		}
	}
	return false
}

// sortTickets orders the slice in place. When a priority direction is
// requested, priority is the primary key and the date direction breaks
// ties; otherwise creation time alone decides. The sort is stable so
// equal keys preserve their relative input order.
func (e *Engine) sortTickets(tickets []domain.Ticket, controls Controls) {
	dateAsc := controls.DateSort == SortAsc

	byDate := func(a, b *domain.Ticket) bool {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return false
		}
		if dateAsc {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	}

	sort.SliceStable(tickets, func(i, j int) bool {
		a, b := &tickets[i], &tickets[j]
		switch controls.PrioritySort {
		case PrioritySortAsc:
			if a.Priority.Rank() != b.Priority.Rank() {
				return a.Priority.Rank() < b.Priority.Rank()
			}
		case PrioritySortDesc:
			if a.Priority.Rank() != b.Priority.Rank() {
				return a.Priority.Rank() > b.Priority.Rank()
			}
		}
		return byDate(a, b)
	})
}
