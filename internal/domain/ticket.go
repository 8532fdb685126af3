package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

// Valid reports whether the status is a known value.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency, totally ordered Low < Medium < High < Critical.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "Low"
	TicketPriorityMedium   TicketPriority = "Medium"
	TicketPriorityHigh     TicketPriority = "High"
	TicketPriorityCritical TicketPriority = "Critical"
)

var priorityRanks = map[TicketPriority]int{
	TicketPriorityLow:      0,
	TicketPriorityMedium:   1,
	TicketPriorityHigh:     2,
	TicketPriorityCritical: 3,
}

// Valid reports whether the priority is a known value.
func (p TicketPriority) Valid() bool {
	_, ok := priorityRanks[p]
	return ok
}

// Rank returns the position of the priority in the fixed total order.
// Unknown priorities rank below Low.
func (p TicketPriority) Rank() int {
	if rank, ok := priorityRanks[p]; ok {
		return rank
	}
	return -1
}

// TicketCategory enumerates the support areas a ticket can belong to.
type TicketCategory string

const (
	TicketCategoryHardware TicketCategory = "Hardware"
	TicketCategorySoftware TicketCategory = "Software"
	TicketCategoryNetwork  TicketCategory = "Network"
	TicketCategoryAccount  TicketCategory = "Account"
	TicketCategoryOther    TicketCategory = "Other"
)

// Valid reports whether the category is a known value.
func (c TicketCategory) Valid() bool {
	switch c {
	case TicketCategoryHardware, TicketCategorySoftware, TicketCategoryNetwork, TicketCategoryAccount, TicketCategoryOther:
		return true
	}
	return false
}

// Comment is a single entry in a ticket thread. Comments are immutable and
// append-only.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// AssignmentEntry records one reassignment event. A nil AgentID means the
// ticket was left unassigned. Entries are append-only and ordered by
// insertion; every reassignment call is recorded, including re-confirming
// the current agent.
type AssignmentEntry struct {
	AgentID   *string   `json:"agent_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Ticket is the aggregate for support requests. Tickets are never deleted;
// UpdatedAt is refreshed on every mutation and is always >= CreatedAt.
type Ticket struct {
	ID                string            `json:"id"`
	Subject           string            `json:"subject"`
	Description       string            `json:"description"`
	CustomerID        string            `json:"customer_id"`
	AgentID           *string           `json:"agent_id,omitempty"`
	Status            TicketStatus      `json:"status"`
	Priority          TicketPriority    `json:"priority"`
	Category          TicketCategory    `json:"category"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	Comments          []Comment         `json:"comments"`
	Archived          bool              `json:"archived"`
	AssignmentHistory []AssignmentEntry `json:"assignment_history"`
}

// Clone returns a deep copy so callers can hand tickets out of the store
// without exposing shared slices.
func (t *Ticket) Clone() *Ticket {
	copied := *t
	if t.AgentID != nil {
		agentID := *t.AgentID
		copied.AgentID = &agentID
	}
	copied.Comments = append([]Comment(nil), t.Comments...)
	copied.AssignmentHistory = make([]AssignmentEntry, len(t.AssignmentHistory))
	for i, entry := range t.AssignmentHistory {
		copied.AssignmentHistory[i] = entry
		if entry.AgentID != nil {
			agentID := *entry.AgentID
			copied.AssignmentHistory[i].AgentID = &agentID
		}
	}
	return &copied
}
