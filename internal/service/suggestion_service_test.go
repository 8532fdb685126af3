package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/suggest"
)

func newSuggestionService(endpoint string) *SuggestionService {
	cfg := config.SuggestConfig{Endpoint: endpoint, TimeoutSeconds: 2}
	return NewSuggestionService(suggest.NewClient(cfg), nil, cfg, zap.NewNop())
}

func TestSuggestReturnsValidatedFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"category":"Network","priority":"High"}`))
	}))
	defer server.Close()
	svc := newSuggestionService(server.URL)

	suggestion, err := svc.Suggest(context.Background(), "wifi keeps dropping")
	require.NoError(t, err)

	require.NotNil(t, suggestion.Category)
	assert.Equal(t, domain.TicketCategoryNetwork, *suggestion.Category)
	require.NotNil(t, suggestion.Priority)
	assert.Equal(t, domain.TicketPriorityHigh, *suggestion.Priority)
}

func TestSuggestDiscardsUnknownEnumValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"category":"Gardening","priority":"High"}`))
	}))
	defer server.Close()
	svc := newSuggestionService(server.URL)

	suggestion, err := svc.Suggest(context.Background(), "plant my desk fern")
	require.NoError(t, err)

	assert.Nil(t, suggestion.Category)
	require.NotNil(t, suggestion.Priority)
	assert.Equal(t, domain.TicketPriorityHigh, *suggestion.Priority)
}

func TestSuggestFailureDegradesToEmptySuggestion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	svc := newSuggestionService(server.URL)

	suggestion, err := svc.Suggest(context.Background(), "anything")

	require.NoError(t, err)
	assert.True(t, suggestion.Empty())
}

func TestSuggestUnconfiguredEndpointDegradesToEmptySuggestion(t *testing.T) {
	svc := newSuggestionService("")

	suggestion, err := svc.Suggest(context.Background(), "anything")

	require.NoError(t, err)
	assert.True(t, suggestion.Empty())
}

func TestSuggestStaleResponseIsSuperseded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		_, _ = w.Write([]byte(`{"category":"Hardware","priority":"Low"}`))
	}))
	defer server.Close()
	svc := newSuggestionService(server.URL)

	type outcome struct {
		suggestion suggest.Suggestion
		err        error
	}
	firstDone := make(chan outcome, 1)
	go func() {
		suggestion, err := svc.Suggest(context.Background(), "first description")
		firstDone <- outcome{suggestion, err}
	}()

	// A newer request bumps the sequence before the first response lands.
	<-started
	svc.seq.Add(1)
	close(release)

	first := <-firstDone
	assert.ErrorIs(t, first.err, ErrSuperseded)
	assert.True(t, first.suggestion.Empty())
}
