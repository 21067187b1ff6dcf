package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/growvest-engine/internal/domain"
)

const ticketColumns = `id, user_id, subject, message, status, admin_replies, created_at, updated_at`

type ticketRepository struct {
	db *sqlx.DB
}

func NewTicketRepository(db *sqlx.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.SupportTicket) error {
	query := `
		INSERT INTO support_tickets (id, user_id, subject, message, status, admin_replies, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		ticket.ID,
		ticket.UserID,
		ticket.Subject,
		ticket.Message,
		ticket.Status,
		ticket.AdminReplies,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)

	return err
}

func (r *ticketRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SupportTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM support_tickets WHERE id = $1`

	var ticket domain.SupportTicket
	err := r.db.GetContext(ctx, &ticket, query, id)
	if err != nil {
		return nil, err
	}

	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, userID *uuid.UUID, status string) ([]*domain.SupportTicket, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if userID != nil {
		args = append(args, *userID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if status != "" {
		args = append(args, status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + ticketColumns + ` FROM support_tickets`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	var tickets []*domain.SupportTicket
	err := r.db.SelectContext(ctx, &tickets, query, args...)
	if err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *ticketRepository) AppendReply(ctx context.Context, id uuid.UUID, reply domain.TicketReply) (*domain.SupportTicket, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var ticket domain.SupportTicket
	err = tx.GetContext(ctx, &ticket, `SELECT `+ticketColumns+` FROM support_tickets WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, err
	}

	ticket.Append(reply)
	ticket.UpdatedAt = reply.Timestamp

	query := `
		UPDATE support_tickets
		SET admin_replies = $2, status = $3, updated_at = $4
		WHERE id = $1
	`
	_, err = tx.ExecContext(ctx, query, ticket.ID, ticket.AdminReplies, ticket.Status, ticket.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &ticket, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.SupportTicket, error) {
	query := `
		UPDATE support_tickets
		SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + ticketColumns

	var ticket domain.SupportTicket
	err := r.db.GetContext(ctx, &ticket, query, id, status, time.Now())
	if err != nil {
		return nil, err
	}

	return &ticket, nil
}
