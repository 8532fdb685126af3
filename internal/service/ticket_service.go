package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/view"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// TicketService coordinates ticket reads and mutations. All writes stamp
// UpdatedAt and hand the changed ticket to the repository; persistence
// is the repository's side effect, never interleaved here.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	engine     *view.Engine
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TicketDependencies bundles requirements for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Now        func() time.Time
}

// TicketCreateInput describes ticket creation payload. CustomerID may be
// empty when the acting user is the customer.
type TicketCreateInput struct {
	Subject     string
	Description string
	CustomerID  string
	Category    domain.TicketCategory
	Priority    domain.TicketPriority
}

// TicketUpdateInput applies any subset of the editable fields; nil
// fields are left untouched.
type TicketUpdateInput struct {
	Subject     *string
	Description *string
	Status      *domain.TicketStatus
	Priority    *domain.TicketPriority
	Category    *domain.TicketCategory
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	svc := &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		now:        deps.Now,
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	svc.engine = view.NewEngine(func(id string) (*domain.User, bool) {
		user, err := svc.users.GetByID(context.Background(), id)
		if err != nil {
			return nil, false
		}
		return user, true
	})
	return svc
}

// Create opens a new ticket: status Open, no comments, a single
// unassigned assignment entry, archived false, CreatedAt == UpdatedAt.
func (s *TicketService) Create(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	subject := strings.TrimSpace(input.Subject)
	description := strings.TrimSpace(input.Description)
	if subject == "" || description == "" {
		return nil, apperrors.NewValidationError("subject and description required", nil)
	}

	customerID := input.CustomerID
	if customerID == "" {
		customerID = actor.ID
	}
	if actor.Role == domain.RoleCustomer && customerID != actor.ID {
		return nil, apperrors.NewForbidden("customers can only open their own tickets")
	}
	if _, err := s.users.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewValidationError("unknown customer", map[string]any{"customer_id": customerID})
		}
		return nil, apperrors.MapError(err)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}
	category := input.Category
	if category == "" {
		category = domain.TicketCategoryOther
	}
	if !category.Valid() {
		return nil, apperrors.NewValidationError("invalid category", map[string]any{"category": category})
	}

	now := s.now()
	ticket := &domain.Ticket{
		ID:          generateTicketID(),
		Subject:     subject,
		Description: description,
		CustomerID:  customerID,
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
		Comments:    []domain.Comment{},
		AssignmentHistory: []domain.AssignmentEntry{
			{AgentID: nil, Timestamp: now},
		},
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    actorOf(actor),
		Payload: events.TicketCreatedPayload{
			Subject:  ticket.Subject,
			Category: ticket.Category,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// UpdateFields applies the present fields after enum validation.
func (s *TicketService) UpdateFields(ctx context.Context, actor *domain.User, ticketID string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.loadForEdit(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	var changed []string
	if input.Subject != nil {
		subject := strings.TrimSpace(*input.Subject)
		if subject == "" {
			return nil, apperrors.NewValidationError("subject cannot be empty", nil)
		}
		ticket.Subject = subject
		changed = append(changed, "subject")
	}
	if input.Description != nil {
		ticket.Description = strings.TrimSpace(*input.Description)
		changed = append(changed, "description")
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		ticket.Status = *input.Status
		changed = append(changed, "status")
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": *input.Priority})
		}
		ticket.Priority = *input.Priority
		changed = append(changed, "priority")
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, apperrors.NewValidationError("invalid category", map[string]any{"category": *input.Category})
		}
		ticket.Category = *input.Category
		changed = append(changed, "category")
	}
	if len(changed) == 0 {
		return ticket, nil
	}

	ticket.UpdatedAt = s.now()
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		Actor:    actorOf(actor),
		Payload:  events.TicketUpdatedPayload{ChangedFields: changed},
	})
	return ticket, nil
}

// Reassign sets the assigned agent (nil unassigns) and appends an
// assignment-history entry unconditionally, including when the agent is
// unchanged: the history is an audit log of reassignment calls.
func (s *TicketService) Reassign(ctx context.Context, actor *domain.User, ticketID string, agentID *string) (*domain.Ticket, error) {
	ticket, err := s.loadForEdit(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	if agentID != nil {
		agent, err := s.users.GetByID(ctx, *agentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewNotFound("agent", map[string]any{"agent_id": *agentID})
			}
			return nil, apperrors.MapError(err)
		}
		if !domain.IsTechnician(agent) {
			return nil, apperrors.NewValidationError("assignee must be a technician", map[string]any{"agent_id": *agentID})
		}
	}

	oldAgent := ticket.AgentID
	now := s.now()
	ticket.AgentID = agentID
	ticket.AssignmentHistory = append(ticket.AssignmentHistory, domain.AssignmentEntry{
		AgentID:   agentID,
		Timestamp: now,
	})
	ticket.UpdatedAt = now

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketReassigned,
		TicketID: ticket.ID,
		Actor:    actorOf(actor),
		Payload: events.TicketReassignedPayload{
			OldAgentID: oldAgent,
			NewAgentID: agentID,
		},
	})
	return ticket, nil
}

// AddComment appends to the ticket thread. Whitespace-only content is a
// no-op, not an error: the returned comment is nil and the ticket,
// including UpdatedAt, is untouched.
func (s *TicketService) AddComment(ctx context.Context, actor *domain.User, ticketID, content string) (*domain.Comment, error) {
	ticket, err := s.load(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !domain.CanComment(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, nil
	}

	now := s.now()
	comment := domain.Comment{
		ID:        "comment-" + uuid.NewString(),
		AuthorID:  actor.ID,
		Content:   trimmed,
		CreatedAt: now,
	}
	ticket.Comments = append(ticket.Comments, comment)
	ticket.UpdatedAt = now

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventCommentAdded,
		TicketID: ticket.ID,
		Actor:    actorOf(actor),
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			AuthorID:    comment.AuthorID,
			BodyPreview: preview(comment.Content, 120),
		},
	})
	return &comment, nil
}

// ToggleArchive flips the archived flag. Archival is independent of
// status; toggling twice restores the original value.
func (s *TicketService) ToggleArchive(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.loadForEdit(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	ticket.Archived = !ticket.Archived
	ticket.UpdatedAt = s.now()

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketArchived,
		TicketID: ticket.ID,
		Actor:    actorOf(actor),
		Payload:  events.TicketArchivedPayload{Archived: ticket.Archived},
	})
	return ticket, nil
}

// ListView computes the ordered, filtered ticket list for the acting
// user and controls.
func (s *TicketService) ListView(ctx context.Context, actor *domain.User, controls view.Controls) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.engine.Compute(tickets, actor, controls), nil
}

// Report aggregates counts over the role-scoped, archive-partitioned
// set, ignoring the remaining filters so drill-down numbers match what
// a fresh filter will show.
func (s *TicketService) Report(ctx context.Context, actor *domain.User, archived bool) (view.Report, error) {
	scoped, err := s.ListView(ctx, actor, view.Controls{Archived: archived})
	if err != nil {
		return view.Report{}, err
	}
	return view.BuildReport(scoped), nil
}

// Get fetches a single ticket, enforcing visibility.
func (s *TicketService) Get(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.load(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !domain.CanViewTicket(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

func (s *TicketService) load(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) loadForEdit(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.load(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !domain.CanEditTicket(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorOf(user *domain.User) events.Actor {
	if user == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: user.ID, Role: user.Role}
}

func generateTicketID() string {
	return "TICKET-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
