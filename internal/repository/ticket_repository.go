package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusdesk/helpdesk/internal/domain"
)

// searchLimit caps search results, matching the API contract.
const searchLimit = 20

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByIDWithOwner(ctx context.Context, id string) (*domain.Ticket, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Ticket, error)
	ListAllWithOwner(ctx context.Context) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error)
	UpdateDepartment(ctx context.Context, id string, department *domain.Department) (*domain.Ticket, error)
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, ownerID *string, term string) ([]domain.Ticket, error)
	CountByStatus(ctx context.Context, ownerID *string) (domain.TicketStats, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `t.id, t.owner_id, t.category, t.subject, t.description,
        t.priority, t.status, t.is_urgent, t.sla_deadline, t.assigned_department,
        t.created_at, t.updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (owner_id, category, subject, description, priority, status, is_urgent, sla_deadline)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.OwnerID,
		ticket.Category,
		ticket.Subject,
		ticket.Description,
		ticket.Priority,
		ticket.Status,
		ticket.IsUrgent,
		ticket.SLADeadline,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets t WHERE t.id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(ticketFields(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) GetByIDWithOwner(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + `, u.name, u.email
        FROM tickets t JOIN users u ON t.owner_id = u.id
        WHERE t.id=$1`
	var ticket domain.Ticket
	fields := append(ticketFields(&ticket), &ticket.OwnerName, &ticket.OwnerEmail)
	if err := r.pool.QueryRow(ctx, query, id).Scan(fields...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets t
        WHERE t.owner_id=$1 ORDER BY t.created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows, false)
}

func (r *ticketRepository) ListAllWithOwner(ctx context.Context) ([]domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + `, u.name, u.email
        FROM tickets t JOIN users u ON t.owner_id = u.id
        ORDER BY t.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows, true)
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	query := `UPDATE tickets t SET status=$1, updated_at=NOW() WHERE t.id=$2
        RETURNING ` + ticketColumns
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, status, id).Scan(ticketFields(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) UpdateDepartment(ctx context.Context, id string, department *domain.Department) (*domain.Ticket, error) {
	query := `UPDATE tickets t SET assigned_department=$1, updated_at=NOW() WHERE t.id=$2
        RETURNING ` + ticketColumns
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, department, id).Scan(ticketFields(&ticket)...); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Touch(ctx context.Context, id string) error {
	const query = `UPDATE tickets SET updated_at=NOW() WHERE id=$1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tickets WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Search matches the term case-insensitively against subject, description,
// category and status. Admin scope passes a nil ownerID.
func (r *ticketRepository) Search(ctx context.Context, ownerID *string, term string) ([]domain.Ticket, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"

	if ownerID != nil {
		query := `SELECT ` + ticketColumns + ` FROM tickets t
            WHERE t.owner_id=$1 AND (LOWER(t.subject) LIKE $2 OR LOWER(t.description) LIKE $2
                OR LOWER(t.category) LIKE $2 OR LOWER(t.status) LIKE $2)
            ORDER BY t.created_at DESC LIMIT ` + strconv.Itoa(searchLimit)
		rows, err := r.pool.Query(ctx, query, *ownerID, pattern)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		return scanTickets(rows, false)
	}

	query := `SELECT ` + ticketColumns + `, u.name, u.email
        FROM tickets t JOIN users u ON t.owner_id = u.id
        WHERE LOWER(t.subject) LIKE $1 OR LOWER(t.description) LIKE $1
            OR LOWER(t.category) LIKE $1 OR LOWER(t.status) LIKE $1
        ORDER BY t.created_at DESC LIMIT ` + strconv.Itoa(searchLimit)
	rows, err := r.pool.Query(ctx, query, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows, true)
}

func (r *ticketRepository) CountByStatus(ctx context.Context, ownerID *string) (domain.TicketStats, error) {
	var stats domain.TicketStats

	base := `SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE status = 'open'),
            COUNT(*) FILTER (WHERE status = 'in_progress'),
            COUNT(*) FILTER (WHERE status = 'resolved'),
            COUNT(*) FILTER (WHERE status = 'closed')
        FROM tickets`

	var row pgx.Row
	if ownerID != nil {
		row = r.pool.QueryRow(ctx, base+` WHERE owner_id=$1`, *ownerID)
	} else {
		row = r.pool.QueryRow(ctx, base)
	}
	if err := row.Scan(&stats.Total, &stats.Open, &stats.InProgress, &stats.Resolved, &stats.Closed); err != nil {
		return domain.TicketStats{}, err
	}
	return stats, nil
}

func ticketFields(t *domain.Ticket) []any {
	return []any{
		&t.ID,
		&t.OwnerID,
		&t.Category,
		&t.Subject,
		&t.Description,
		&t.Priority,
		&t.Status,
		&t.IsUrgent,
		&t.SLADeadline,
		&t.AssignedDepartment,
		&t.CreatedAt,
		&t.UpdatedAt,
	}
}

func scanTickets(rows pgx.Rows, withOwner bool) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		fields := ticketFields(&ticket)
		if withOwner {
			fields = append(fields, &ticket.OwnerName, &ticket.OwnerEmail)
		}
		if err := rows.Scan(fields...); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

