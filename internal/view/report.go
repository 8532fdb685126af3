package view

import "github.com/spec-kit/helpdesk-service/internal/domain"

// Report aggregates counts over a ticket set, feeding the dashboard
// widgets whose drill-down clicks become ad-hoc field filters.
type Report struct {
	Total      int                           `json:"total"`
	Unassigned int                           `json:"unassigned"`
	ByStatus   map[domain.TicketStatus]int   `json:"by_status"`
	ByPriority map[domain.TicketPriority]int `json:"by_priority"`
	ByCategory map[domain.TicketCategory]int `json:"by_category"`
	ByAgent    map[string]int                `json:"by_agent"`
}

// BuildReport tallies the given tickets. Callers pass a set that is
// already role-scoped and archive-partitioned so the counts line up with
// what the drill-down filter will show.
func BuildReport(tickets []domain.Ticket) Report {
	report := Report{
		Total:      len(tickets),
		ByStatus:   make(map[domain.TicketStatus]int),
		ByPriority: make(map[domain.TicketPriority]int),
		ByCategory: make(map[domain.TicketCategory]int),
		ByAgent:    make(map[string]int),
	}
	for _, ticket := range tickets {
		report.ByStatus[ticket.Status]++
		report.ByPriority[ticket.Priority]++
		report.ByCategory[ticket.Category]++
		if ticket.AgentID == nil {
			report.Unassigned++
		} else {
			report.ByAgent[*ticket.AgentID]++
		}
	}
	return report
}
