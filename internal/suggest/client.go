// Package suggest integrates the external category/priority suggestion
// collaborator. The endpoint is opaque: description in, optional
// category and priority out. Failures degrade to "no suggestion" and
// must never block ticket creation.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// Suggestion carries the validated response fields. Either may be nil
// when the collaborator returned nothing usable for it.
type Suggestion struct {
	Category *domain.TicketCategory `json:"category,omitempty"`
	Priority *domain.TicketPriority `json:"priority,omitempty"`
}

// Empty reports whether the suggestion carries no usable field.
func (s Suggestion) Empty() bool {
	return s.Category == nil && s.Priority == nil
}

// Client calls the configured suggestion endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a client. An empty endpoint yields a disabled client
// whose Suggest always errors; callers degrade to manual selection.
func NewClient(cfg config.SuggestConfig) *Client {
	return &Client{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
	}
}

type suggestRequest struct {
	Description string `json:"description"`
}

type suggestResponse struct {
	Category string `json:"category"`
	Priority string `json:"priority"`
}

// Suggest posts the description and returns the validated suggestion.
// Enum values the service does not recognize are discarded rather than
// surfaced as ticket fields.
func (c *Client) Suggest(ctx context.Context, description string) (Suggestion, error) {
	if c.endpoint == "" {
		return Suggestion{}, fmt.Errorf("suggestion endpoint not configured")
	}

	body, err := json.Marshal(suggestRequest{Description: description})
	if err != nil {
		return Suggestion{}, fmt.Errorf("encode suggestion request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Suggestion{}, fmt.Errorf("build suggestion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Suggestion{}, fmt.Errorf("call suggestion endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Suggestion{}, fmt.Errorf("suggestion endpoint returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return Suggestion{}, fmt.Errorf("read suggestion response: %w", err)
	}
	var parsed suggestResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Suggestion{}, fmt.Errorf("parse suggestion response: %w", err)
	}

	var suggestion Suggestion
	if category := domain.TicketCategory(parsed.Category); category.Valid() {
		suggestion.Category = &category
	}
	if priority := domain.TicketPriority(parsed.Priority); priority.Valid() {
		suggestion.Priority = &priority
	}
	return suggestion, nil
}
