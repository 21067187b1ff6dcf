package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/pkg/utils"
	"github.com/shopspring/decimal"
)

const ledgerColumns = `id, date, total_distributed, investments_credited, created_by, created_at`

type profitRepository struct {
	db *sqlx.DB
}

func NewProfitRepository(db *sqlx.DB) ProfitRepository {
	return &profitRepository{db: db}
}

func (r *profitRepository) Distribute(ctx context.Context, ledger *domain.ProfitLedger, profit ProfitFunc) (bool, error) {
	claimQuery := `
		INSERT INTO profit_ledgers (id, date, total_distributed, investments_credited, created_by, created_at)
		VALUES ($1, $2::date, 0, 0, $3, $4)
		ON CONFLICT (date) DO NOTHING
		RETURNING id
	`
	activeQuery := `
		SELECT i.id, i.user_id, i.amount, i.profit_accrued, p.daily_percent
		FROM investments i
		JOIN plans p ON p.id = i.plan_id
		WHERE i.status = 'active'
		ORDER BY i.id
		FOR UPDATE OF i
	`
	creditQuery := `
		UPDATE investments
		SET profit_accrued = profit_accrued + $2, updated_at = $3
		WHERE id = $1
	`
	totalsQuery := `
		UPDATE profit_ledgers
		SET total_distributed = $2, investments_credited = $3
		WHERE id = $1
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	// Dates are bound as YYYY-MM-DD so the session time zone cannot shift them
	// A concurrent run for the same date blocks here on the unique index until it finishes
	var ledgerID uuid.UUID
	err = tx.QueryRowxContext(ctx, claimQuery, ledger.ID, utils.FormatDate(ledger.Date), ledger.CreatedBy, ledger.CreatedAt).Scan(&ledgerID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var investments []domain.ActiveInvestment
	if err = tx.SelectContext(ctx, &investments, activeQuery); err != nil {
		return false, err
	}

	total := decimal.Zero
	for _, inv := range investments {
		amount := profit(inv)
		if _, err = tx.ExecContext(ctx, creditQuery, inv.ID, amount, ledger.CreatedAt); err != nil {
			return false, err
		}
		total = total.Add(amount)
	}

	if _, err = tx.ExecContext(ctx, totalsQuery, ledgerID, total, len(investments)); err != nil {
		return false, err
	}

	if err = tx.Commit(); err != nil {
		return false, err
	}

	ledger.ID = ledgerID
	ledger.TotalDistributed = total
	ledger.InvestmentsCredited = len(investments)

	return true, nil
}

func (r *profitRepository) GetByDate(ctx context.Context, date time.Time) (*domain.ProfitLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM profit_ledgers WHERE date = $1::date`

	var ledger domain.ProfitLedger
	err := r.db.GetContext(ctx, &ledger, query, utils.FormatDate(date))
	if err != nil {
		return nil, err
	}

	return &ledger, nil
}

func (r *profitRepository) List(ctx context.Context, limit int) ([]*domain.ProfitLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM profit_ledgers ORDER BY date DESC LIMIT $1`

	var ledgers []*domain.ProfitLedger
	err := r.db.SelectContext(ctx, &ledgers, query, limit)
	if err != nil {
		return nil, err
	}

	return ledgers, nil
}
