package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload. CustomerID is only honored for
// technicians creating on a customer's behalf.
type CreateTicketRequest struct {
	Subject     string                `json:"subject"`
	Description string                `json:"description"`
	CustomerID  string                `json:"customer_id,omitempty"`
	Category    domain.TicketCategory `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
}

// UpdateTicketRequest applies any subset of the editable fields.
type UpdateTicketRequest struct {
	Subject     *string                `json:"subject,omitempty"`
	Description *string                `json:"description,omitempty"`
	Status      *domain.TicketStatus   `json:"status,omitempty"`
	Priority    *domain.TicketPriority `json:"priority,omitempty"`
	Category    *domain.TicketCategory `json:"category,omitempty"`
}

// ReassignRequest payload. A null agent_id unassigns the ticket.
type ReassignRequest struct {
	AgentID *string `json:"agent_id"`
}

// CommentRequest payload.
type CommentRequest struct {
	Content string `json:"content"`
}

// TicketResponse is the full ticket representation.
type TicketResponse struct {
	ID                string                    `json:"id"`
	Subject           string                    `json:"subject"`
	Description       string                    `json:"description"`
	CustomerID        string                    `json:"customer_id"`
	AgentID           *string                   `json:"agent_id,omitempty"`
	Status            domain.TicketStatus       `json:"status"`
	Priority          domain.TicketPriority     `json:"priority"`
	Category          domain.TicketCategory     `json:"category"`
	Archived          bool                      `json:"archived"`
	CreatedAt         time.Time                 `json:"created_at"`
	UpdatedAt         time.Time                 `json:"updated_at"`
	Comments          []CommentResponse         `json:"comments"`
	AssignmentHistory []AssignmentEntryResponse `json:"assignment_history"`
}

// CommentResponse represents one thread entry.
type CommentResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// AssignmentEntryResponse represents one reassignment event.
type AssignmentEntryResponse struct {
	AgentID   *string   `json:"agent_id"`
	Timestamp time.Time `json:"timestamp"`
}

// FromTicket maps a domain ticket to its response form.
func FromTicket(ticket *domain.Ticket) TicketResponse {
	comments := make([]CommentResponse, 0, len(ticket.Comments))
	for _, comment := range ticket.Comments {
		comments = append(comments, CommentResponse{
			ID:        comment.ID,
			AuthorID:  comment.AuthorID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		})
	}
	history := make([]AssignmentEntryResponse, 0, len(ticket.AssignmentHistory))
	for _, entry := range ticket.AssignmentHistory {
		history = append(history, AssignmentEntryResponse{
			AgentID:   entry.AgentID,
			Timestamp: entry.Timestamp,
		})
	}
	return TicketResponse{
		ID:                ticket.ID,
		Subject:           ticket.Subject,
		Description:       ticket.Description,
		CustomerID:        ticket.CustomerID,
		AgentID:           ticket.AgentID,
		Status:            ticket.Status,
		Priority:          ticket.Priority,
		Category:          ticket.Category,
		Archived:          ticket.Archived,
		CreatedAt:         ticket.CreatedAt,
		UpdatedAt:         ticket.UpdatedAt,
		Comments:          comments,
		AssignmentHistory: history,
	}
}
