// Package store provides the snapshot-backed implementation of the
// repositories: a canonical in-memory collection mirrored to a JSON
// snapshot file after every successful mutation. It is the default
// backend and the direct analog of the original app's local storage.
package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// SnapshotStore owns the canonical ticket, user and branding state.
// Reads copy data out; writes mutate under the lock and then persist as
// a side effect, never interleaved with the mutation itself.
type SnapshotStore struct {
	mu       sync.RWMutex
	path     string
	logger   *zap.Logger
	tickets  []domain.Ticket
	users    []domain.User
	branding domain.Branding
}

// NewSnapshotStore loads state from the snapshot file at path. A missing
// or corrupt snapshot falls back to the built-in seed dataset; startup
// never fails on bad persisted state.
func NewSnapshotStore(path string, logger *zap.Logger) *SnapshotStore {
	s := &SnapshotStore{path: path, logger: logger}

	snapshot, err := persistence.LoadSnapshot(path)
	if err != nil {
		logger.Warn("snapshot unreadable; falling back to seed data",
			zap.String("path", path), zap.Error(err))
		snapshot = persistence.SeedSnapshot()
	}
	s.tickets = snapshot.Tickets
	s.users = snapshot.Users
	if snapshot.Branding != nil {
		s.branding = *snapshot.Branding
	}
	return s
}

// persist writes the current state back to disk. Called with the write
// lock held, after the mutation has already succeeded in memory.
func (s *SnapshotStore) persist() {
	snapshot := &persistence.Snapshot{
		Tickets:  s.tickets,
		Users:    s.users,
		Branding: &s.branding,
	}
	if err := persistence.SaveSnapshot(s.path, snapshot); err != nil {
		s.logger.Error("failed to persist snapshot", zap.Error(err))
	}
}

// Tickets returns the ticket repository view of the store.
func (s *SnapshotStore) Tickets() repository.TicketRepository { return (*ticketStore)(s) }

// Users returns the user repository view of the store.
func (s *SnapshotStore) Users() repository.UserRepository { return (*userStore)(s) }

// Branding returns the branding repository view of the store.
func (s *SnapshotStore) Branding() repository.BrandingRepository { return (*brandingStore)(s) }

type ticketStore SnapshotStore

func (s *ticketStore) Create(_ context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = append(s.tickets, *ticket.Clone())
	(*SnapshotStore)(s).persist()
	return nil
}

func (s *ticketStore) Update(_ context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tickets {
		if s.tickets[i].ID == ticket.ID {
			s.tickets[i] = *ticket.Clone()
			(*SnapshotStore)(s).persist()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *ticketStore) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.tickets {
		if s.tickets[i].ID == id {
			return s.tickets[i].Clone(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *ticketStore) List(_ context.Context) ([]domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Ticket, 0, len(s.tickets))
	for i := range s.tickets {
		result = append(result, *s.tickets[i].Clone())
	}
	return result, nil
}

type userStore SnapshotStore

func (s *userStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	s.users = append(s.users, *user)
	(*SnapshotStore)(s).persist()
	return nil
}

func (s *userStore) Update(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == user.ID {
			s.users[i] = *user
			(*SnapshotStore)(s).persist()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *userStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			(*SnapshotStore)(s).persist()
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *userStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *userStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Username == username {
			user := s.users[i]
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *userStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.User(nil), s.users...), nil
}

type brandingStore SnapshotStore

func (s *brandingStore) Get(_ context.Context) (*domain.Branding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	branding := s.branding
	return &branding, nil
}

func (s *brandingStore) Save(_ context.Context, branding *domain.Branding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branding = *branding
	(*SnapshotStore)(s).persist()
	return nil
}
