package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusdesk/helpdesk/internal/domain"
)

// ResponseRepository persists ticket thread entries. The thread is
// append-only; responses are never updated or deleted individually.
type ResponseRepository interface {
	Create(ctx context.Context, response *domain.Response) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Response, error)
}

type responseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository constructs repository.
func NewResponseRepository(pool *pgxpool.Pool) ResponseRepository {
	return &responseRepository{pool: pool}
}

func (r *responseRepository) Create(ctx context.Context, response *domain.Response) error {
	const query = `
        INSERT INTO ticket_responses (ticket_id, author_id, message)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		response.TicketID,
		response.AuthorID,
		response.Message,
	).Scan(&response.ID, &response.CreatedAt)
}

// ListByTicket returns the thread oldest-first, joined with author name and
// role for display.
func (r *responseRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Response, error) {
	const query = `
        SELECT tr.id, tr.ticket_id, tr.author_id, tr.message, tr.created_at, u.name, u.role
        FROM ticket_responses tr
        JOIN users u ON tr.author_id = u.id
        WHERE tr.ticket_id=$1
        ORDER BY tr.created_at ASC`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Response
	for rows.Next() {
		var response domain.Response
		if err := rows.Scan(
			&response.ID,
			&response.TicketID,
			&response.AuthorID,
			&response.Message,
			&response.CreatedAt,
			&response.AuthorName,
			&response.AuthorRole,
		); err != nil {
			return nil, err
		}
		result = append(result, response)
	}
	return result, rows.Err()
}
