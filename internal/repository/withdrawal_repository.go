package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/shopspring/decimal"
)

const withdrawalColumns = `id, user_id, amount, method_details, status, reviewed_by, review_note, reviewed_at, created_at`

type withdrawalRepository struct {
	db *sqlx.DB
}

func NewWithdrawalRepository(db *sqlx.DB) WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

func (r *withdrawalRepository) CreateFunded(ctx context.Context, withdrawal *domain.Withdrawal) (decimal.Decimal, error) {
	query := `
		INSERT INTO withdrawals (id, user_id, amount, method_details, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback()

	if err = lockUser(ctx, tx, withdrawal.UserID); err != nil {
		return decimal.Zero, err
	}

	balance, err := selectBalance(ctx, tx, withdrawal.UserID)
	if err != nil {
		return decimal.Zero, err
	}

	available := balance.Withdrawable()
	if withdrawal.Amount.GreaterThan(available) {
		return available, ErrInsufficientBalance
	}

	_, err = tx.ExecContext(ctx, query,
		withdrawal.ID,
		withdrawal.UserID,
		withdrawal.Amount,
		withdrawal.MethodDetails,
		withdrawal.Status,
		withdrawal.CreatedAt,
	)
	if err != nil {
		return available, err
	}

	return available, tx.Commit()
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = $1`

	var withdrawal domain.Withdrawal
	err := r.db.GetContext(ctx, &withdrawal, query, id)
	if err != nil {
		return nil, err
	}

	return &withdrawal, nil
}

func (r *withdrawalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Withdrawal, error) {
	return r.List(ctx, domain.ReviewFilter{UserID: &userID})
}

func (r *withdrawalRepository) List(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Withdrawal, error) {
	query, args := reviewListQuery(`SELECT `+withdrawalColumns+` FROM withdrawals`, filter)

	var withdrawals []*domain.Withdrawal
	err := r.db.SelectContext(ctx, &withdrawals, query, args...)
	if err != nil {
		return nil, err
	}

	return withdrawals, nil
}

func (r *withdrawalRepository) Review(ctx context.Context, review domain.Review) (*domain.Withdrawal, error) {
	query := `
		UPDATE withdrawals
		SET status = $2, reviewed_by = $3, review_note = $4, reviewed_at = $5
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + withdrawalColumns

	var withdrawal domain.Withdrawal
	err := r.db.GetContext(ctx, &withdrawal, query,
		review.ID,
		review.Status,
		review.ReviewedBy,
		review.Note,
		review.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}

	return &withdrawal, nil
}
