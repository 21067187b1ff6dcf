package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/shopspring/decimal"
)

const investmentColumns = `id, user_id, plan_id, amount, profit_accrued, start_date, end_date, status, created_at, updated_at`

type investmentRepository struct {
	db *sqlx.DB
}

func NewInvestmentRepository(db *sqlx.DB) InvestmentRepository {
	return &investmentRepository{db: db}
}

func (r *investmentRepository) CreateFunded(ctx context.Context, inv *domain.Investment) (decimal.Decimal, error) {
	query := `
		INSERT INTO investments (id, user_id, plan_id, amount, profit_accrued, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback()

	if err = lockUser(ctx, tx, inv.UserID); err != nil {
		return decimal.Zero, err
	}

	balance, err := selectBalance(ctx, tx, inv.UserID)
	if err != nil {
		return decimal.Zero, err
	}

	available := balance.Unallocated()
	if inv.Amount.GreaterThan(available) {
		return available, ErrInsufficientBalance
	}

	_, err = tx.ExecContext(ctx, query,
		inv.ID,
		inv.UserID,
		inv.PlanID,
		inv.Amount,
		inv.ProfitAccrued,
		inv.StartDate,
		inv.EndDate,
		inv.Status,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		return available, err
	}

	return available, tx.Commit()
}

func (r *investmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE id = $1`

	var inv domain.Investment
	err := r.db.GetContext(ctx, &inv, query, id)
	if err != nil {
		return nil, err
	}

	return &inv, nil
}

func (r *investmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE user_id = $1 ORDER BY created_at DESC`

	var investments []*domain.Investment
	err := r.db.SelectContext(ctx, &investments, query, userID)
	if err != nil {
		return nil, err
	}

	return investments, nil
}

func (r *investmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (*domain.Investment, error) {
	query := `
		UPDATE investments
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
		RETURNING ` + investmentColumns

	var inv domain.Investment
	err := r.db.GetContext(ctx, &inv, query, id, from, to, time.Now())
	if err != nil {
		return nil, err
	}

	return &inv, nil
}

func (r *investmentRepository) ListMatured(ctx context.Context, asOf time.Time) ([]*domain.Investment, error) {
	query := `
		SELECT ` + investmentColumns + `
		FROM investments
		WHERE status = 'active' AND end_date <= $1
		ORDER BY end_date
	`

	var investments []*domain.Investment
	err := r.db.SelectContext(ctx, &investments, query, asOf)
	if err != nil {
		return nil, err
	}

	return investments, nil
}
