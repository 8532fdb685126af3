package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated    EventType = "ticket_created"
	EventTicketUpdated    EventType = "ticket_updated"
	EventTicketReassigned EventType = "ticket_reassigned"
	EventTicketArchived   EventType = "ticket_archived"
	EventCommentAdded     EventType = "comment_added"
	EventBrandingUpdated  EventType = "branding_updated"
)

// Actor identifies who triggered an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Subject  string                `json:"subject"`
	Category domain.TicketCategory `json:"category"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketUpdatedPayload lists which fields changed.
type TicketUpdatedPayload struct {
	ChangedFields []string `json:"changed_fields"`
}

// TicketReassignedPayload payload. Nil agent IDs mean unassigned.
type TicketReassignedPayload struct {
	OldAgentID *string `json:"old_agent_id,omitempty"`
	NewAgentID *string `json:"new_agent_id,omitempty"`
}

// TicketArchivedPayload payload.
type TicketArchivedPayload struct {
	Archived bool `json:"archived"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID   string `json:"comment_id"`
	AuthorID    string `json:"author_id"`
	BodyPreview string `json:"body_preview"`
}

// BrandingUpdatedPayload payload.
type BrandingUpdatedPayload struct {
	CompanyName string `json:"company_name"`
}
