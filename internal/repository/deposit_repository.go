package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/growvest-engine/internal/domain"
)

const depositColumns = `id, user_id, amount, method, tx_id, proof_url, status, reviewed_by, review_note, reviewed_at, created_at`

type depositRepository struct {
	db *sqlx.DB
}

func NewDepositRepository(db *sqlx.DB) DepositRepository {
	return &depositRepository{db: db}
}

func (r *depositRepository) Create(ctx context.Context, deposit *domain.Deposit) error {
	query := `
		INSERT INTO deposits (id, user_id, amount, method, tx_id, proof_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		deposit.ID,
		deposit.UserID,
		deposit.Amount,
		deposit.Method,
		deposit.TxID,
		deposit.ProofURL,
		deposit.Status,
		deposit.CreatedAt,
	)

	return err
}

func (r *depositRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deposit, error) {
	query := `SELECT ` + depositColumns + ` FROM deposits WHERE id = $1`

	var deposit domain.Deposit
	err := r.db.GetContext(ctx, &deposit, query, id)
	if err != nil {
		return nil, err
	}

	return &deposit, nil
}

func (r *depositRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deposit, error) {
	return r.List(ctx, domain.ReviewFilter{UserID: &userID})
}

func (r *depositRepository) List(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Deposit, error) {
	query, args := reviewListQuery(`SELECT `+depositColumns+` FROM deposits`, filter)

	var deposits []*domain.Deposit
	err := r.db.SelectContext(ctx, &deposits, query, args...)
	if err != nil {
		return nil, err
	}

	return deposits, nil
}

func (r *depositRepository) Review(ctx context.Context, review domain.Review) (*domain.Deposit, error) {
	query := `
		UPDATE deposits
		SET status = $2, reviewed_by = $3, review_note = $4, reviewed_at = $5
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + depositColumns

	var deposit domain.Deposit
	err := r.db.GetContext(ctx, &deposit, query,
		review.ID,
		review.Status,
		review.ReviewedBy,
		review.Note,
		review.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}

	return &deposit, nil
}
