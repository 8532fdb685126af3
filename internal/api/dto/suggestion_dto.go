package dto

import "github.com/spec-kit/helpdesk-service/internal/domain"

// SuggestionRequest carries the free-text ticket description.
type SuggestionRequest struct {
	Description string `json:"description"`
}

// SuggestionResponse carries the optional suggested fields. Both are
// omitted when the collaborator had nothing usable.
type SuggestionResponse struct {
	Category *domain.TicketCategory `json:"category,omitempty"`
	Priority *domain.TicketPriority `json:"priority,omitempty"`
}
