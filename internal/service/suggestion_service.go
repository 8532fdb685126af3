package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/suggest"
)

// ErrSuperseded marks a suggestion response that arrived after a newer
// request was issued. Last request wins; stale results are discarded,
// never applied.
var ErrSuperseded = errors.New("suggestion superseded by newer request")

// SuggestionService wraps the suggestion client with a best-effort redis
// cache and last-request-wins sequencing.
type SuggestionService struct {
	client *suggest.Client
	cache  *persistence.Redis
	cfg    config.SuggestConfig
	logger *zap.Logger
	seq    atomic.Uint64
}

// NewSuggestionService builds the service. The cache may be nil.
func NewSuggestionService(client *suggest.Client, cache *persistence.Redis, cfg config.SuggestConfig, logger *zap.Logger) *SuggestionService {
	return &SuggestionService{client: client, cache: cache, cfg: cfg, logger: logger}
}

// Suggest fetches a category/priority suggestion for the description.
// Any collaborator failure degrades to an empty suggestion with a nil
// error: the caller keeps whatever category and priority were already
// chosen, and creation is never blocked. A response whose request was
// superseded returns ErrSuperseded.
func (s *SuggestionService) Suggest(ctx context.Context, description string) (suggest.Suggestion, error) {
	seq := s.seq.Add(1)

	if cached, ok := s.cacheGet(ctx, description); ok {
		return cached, nil
	}

	suggestion, err := s.client.Suggest(ctx, description)
	if err != nil {
		s.logger.Warn("suggestion call failed; leaving selection to the user", zap.Error(err))
		return suggest.Suggestion{}, nil
	}

	if s.seq.Load() != seq {
		return suggest.Suggestion{}, ErrSuperseded
	}

	s.cacheSet(ctx, description, suggestion)
	return suggestion, nil
}

func (s *SuggestionService) cacheKey(description string) string {
	sum := sha256.Sum256([]byte(description))
	return "suggestion:" + hex.EncodeToString(sum[:])
}

func (s *SuggestionService) cacheGet(ctx context.Context, description string) (suggest.Suggestion, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return suggest.Suggestion{}, false
	}
	raw, err := s.cache.Client.Get(ctx, s.cacheKey(description)).Result()
	if err != nil {
		return suggest.Suggestion{}, false
	}
	var suggestion suggest.Suggestion
	if err := json.Unmarshal([]byte(raw), &suggestion); err != nil {
		return suggest.Suggestion{}, false
	}
	return suggestion, true
}

func (s *SuggestionService) cacheSet(ctx context.Context, description string, suggestion suggest.Suggestion) {
	if s.cache == nil || s.cache.Client == nil || suggestion.Empty() {
		return
	}
	raw, err := json.Marshal(suggestion)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, s.cacheKey(description), raw, s.cfg.CacheTTL()).Err(); err != nil {
		s.logger.Debug("suggestion cache write failed", zap.Error(err))
	}
}
