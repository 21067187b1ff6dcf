package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/growvest-engine/internal/domain"
)

// Principal of a completed investment goes back to the owner only when its plan is refundable.
// Cancelled investments release their principal into unallocated funds.
const balanceQuery = `
	SELECT
		COALESCE((SELECT SUM(amount) FROM deposits
			WHERE user_id = $1 AND status = 'approved'), 0) AS approved_deposits,
		COALESCE((SELECT SUM(amount) FROM investments
			WHERE user_id = $1 AND status <> 'cancelled'), 0) AS invested,
		COALESCE((SELECT SUM(profit_accrued) FROM investments
			WHERE user_id = $1), 0) AS profit_accrued,
		COALESCE((SELECT SUM(i.amount) FROM investments i JOIN plans p ON p.id = i.plan_id
			WHERE i.user_id = $1 AND i.status = 'completed' AND p.refundable_principal), 0) AS returned_principal,
		COALESCE((SELECT SUM(amount) FROM withdrawals
			WHERE user_id = $1 AND status IN ('pending', 'approved')), 0) AS committed_withdrawals
`

const lockUserQuery = `SELECT id FROM users WHERE id = $1 FOR UPDATE`

type balanceRepository struct {
	db *sqlx.DB
}

func NewBalanceRepository(db *sqlx.DB) BalanceRepository {
	return &balanceRepository{db: db}
}

func (r *balanceRepository) GetBalance(ctx context.Context, userID uuid.UUID) (*domain.Balance, error) {
	return selectBalance(ctx, r.db, userID)
}

func selectBalance(ctx context.Context, q sqlx.QueryerContext, userID uuid.UUID) (*domain.Balance, error) {
	var balance domain.Balance
	if err := sqlx.GetContext(ctx, q, &balance, balanceQuery, userID); err != nil {
		return nil, err
	}

	return &balance, nil
}

// lockUser serializes balance-dependent writes of one user for the rest of the transaction
func lockUser(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) error {
	var id uuid.UUID
	return tx.GetContext(ctx, &id, lockUserQuery, userID)
}
