package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository returns a Postgres-backed ticket repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (id, subject, description, customer_id, agent_id, status, priority, category, archived, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	if _, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.Subject,
		ticket.Description,
		ticket.CustomerID,
		ticket.AgentID,
		ticket.Status,
		ticket.Priority,
		ticket.Category,
		ticket.Archived,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	); err != nil {
		return err
	}
	return r.appendChildren(ctx, ticket)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET subject=$1, description=$2, agent_id=$3, status=$4,
            priority=$5, category=$6, archived=$7, updated_at=$8
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Subject,
		ticket.Description,
		ticket.AgentID,
		ticket.Status,
		ticket.Priority,
		ticket.Category,
		ticket.Archived,
		ticket.UpdatedAt,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return r.appendChildren(ctx, ticket)
}

// appendChildren writes comments and assignment entries. Both logs are
// append-only, so conflicts on already-stored rows are ignored; rows are
// never updated or deleted once written.
func (r *ticketRepository) appendChildren(ctx context.Context, ticket *domain.Ticket) error {
	const commentQuery = `
        INSERT INTO ticket_comments (id, ticket_id, author_id, content, created_at)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (id) DO NOTHING`
	for _, comment := range ticket.Comments {
		if _, err := r.pool.Exec(ctx, commentQuery,
			comment.ID, ticket.ID, comment.AuthorID, comment.Content, comment.CreatedAt,
		); err != nil {
			return err
		}
	}

	const assignQuery = `
        INSERT INTO ticket_assignments (ticket_id, seq, agent_id, assigned_at)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (ticket_id, seq) DO NOTHING`
	for seq, entry := range ticket.AssignmentHistory {
		if _, err := r.pool.Exec(ctx, assignQuery,
			ticket.ID, seq, entry.AgentID, entry.Timestamp,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, subject, description, customer_id, agent_id, status, priority, category,
               archived, created_at, updated_at
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Subject,
		&ticket.Description,
		&ticket.CustomerID,
		&ticket.AgentID,
		&ticket.Status,
		&ticket.Priority,
		&ticket.Category,
		&ticket.Archived,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	tickets := []domain.Ticket{ticket}
	if err := r.hydrate(ctx, tickets); err != nil {
		return nil, err
	}
	return &tickets[0], nil
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT id, subject, description, customer_id, agent_id, status, priority, category,
               archived, created_at, updated_at
        FROM tickets ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Subject,
			&ticket.Description,
			&ticket.CustomerID,
			&ticket.AgentID,
			&ticket.Status,
			&ticket.Priority,
			&ticket.Category,
			&ticket.Archived,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.hydrate(ctx, tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// hydrate attaches comments and assignment history to the given tickets.
func (r *ticketRepository) hydrate(ctx context.Context, tickets []domain.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	index := make(map[string]*domain.Ticket, len(tickets))
	ids := make([]string, 0, len(tickets))
	for i := range tickets {
		tickets[i].Comments = []domain.Comment{}
		tickets[i].AssignmentHistory = []domain.AssignmentEntry{}
		index[tickets[i].ID] = &tickets[i]
		ids = append(ids, tickets[i].ID)
	}

	const commentQuery = `
        SELECT ticket_id, id, author_id, content, created_at
        FROM ticket_comments WHERE ticket_id = ANY($1) ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, commentQuery, ids)
	if err != nil {
		return err
	}
	for rows.Next() {
		var ticketID string
		var comment domain.Comment
		if err := rows.Scan(&ticketID, &comment.ID, &comment.AuthorID, &comment.Content, &comment.CreatedAt); err != nil {
			rows.Close()
			return err
		}
		if ticket, ok := index[ticketID]; ok {
			ticket.Comments = append(ticket.Comments, comment)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	const assignQuery = `
        SELECT ticket_id, agent_id, assigned_at
        FROM ticket_assignments WHERE ticket_id = ANY($1) ORDER BY ticket_id, seq`
	rows, err = r.pool.Query(ctx, assignQuery, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var ticketID string
		var entry domain.AssignmentEntry
		if err := rows.Scan(&ticketID, &entry.AgentID, &entry.Timestamp); err != nil {
			return err
		}
		if ticket, ok := index[ticketID]; ok {
			ticket.AssignmentHistory = append(ticket.AssignmentHistory, entry)
		}
	}
	return rows.Err()
}
