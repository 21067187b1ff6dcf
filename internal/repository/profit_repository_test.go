package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var activeInvestmentColumns = []string{"id", "user_id", "amount", "profit_accrued", "daily_percent"}

func newLedger(adminID uuid.UUID) *domain.ProfitLedger {
	return &domain.ProfitLedger{
		ID:        uuid.New(),
		Date:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CreatedBy: adminID,
		CreatedAt: time.Now(),
	}
}

func TestProfitRepository_Distribute(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfitRepository(db)

	adminID := uuid.New()
	ledger := newLedger(adminID)
	userID := uuid.New()
	inv1 := uuid.New()
	inv2 := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO profit_ledgers")).
		WithArgs(ledger.ID, "2024-06-01", adminID, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(ledger.ID.String()))
	mock.ExpectQuery(`WHERE i\.status = 'active'\s+ORDER BY i\.id\s+FOR UPDATE OF i`).
		WillReturnRows(sqlmock.NewRows(activeInvestmentColumns).
			AddRow(inv1.String(), userID.String(), "1000.00", "0.00", "1.00").
			AddRow(inv2.String(), userID.String(), "500.00", "30.00", "3.00"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE investments")).
		WithArgs(inv1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE investments")).
		WithArgs(inv2, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE profit_ledgers")).
		WithArgs(ledger.ID, "25", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var credited []uuid.UUID
	claimed, err := repo.Distribute(context.Background(), ledger, func(inv domain.ActiveInvestment) decimal.Decimal {
		credited = append(credited, inv.ID)
		return utils.CalculateDailyProfit(inv.Amount, inv.DailyPercent)
	})

	require.NoError(t, err)
	assert.True(t, claimed)
	assert.Equal(t, []uuid.UUID{inv1, inv2}, credited)
	assert.True(t, ledger.TotalDistributed.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, 2, ledger.InvestmentsCredited)
}

func TestProfitRepository_Distribute_AlreadyClaimed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfitRepository(db)

	ledger := newLedger(uuid.New())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO profit_ledgers")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	claimed, err := repo.Distribute(context.Background(), ledger, func(inv domain.ActiveInvestment) decimal.Decimal {
		t.Fatal("no investment should be credited when the date is already claimed")
		return decimal.Zero
	})

	require.NoError(t, err)
	assert.False(t, claimed)
	assert.True(t, ledger.TotalDistributed.IsZero())
}

func TestProfitRepository_Distribute_RollsBackOnCreditFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfitRepository(db)

	ledger := newLedger(uuid.New())
	inv := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO profit_ledgers")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(ledger.ID.String()))
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF i")).
		WillReturnRows(sqlmock.NewRows(activeInvestmentColumns).
			AddRow(inv.String(), uuid.NewString(), "1000.00", "0.00", "1.00"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE investments")).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	claimed, err := repo.Distribute(context.Background(), ledger, dailyProfit)

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.False(t, claimed)
	assert.Equal(t, 0, ledger.InvestmentsCredited)
}

func TestProfitRepository_Distribute_NoActiveInvestments(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfitRepository(db)

	ledger := newLedger(uuid.New())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO profit_ledgers")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(ledger.ID.String()))
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE OF i")).
		WillReturnRows(sqlmock.NewRows(activeInvestmentColumns))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE profit_ledgers")).
		WithArgs(ledger.ID, "0", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	claimed, err := repo.Distribute(context.Background(), ledger, dailyProfit)

	require.NoError(t, err)
	assert.True(t, claimed)
	assert.True(t, ledger.TotalDistributed.IsZero())
	assert.Equal(t, 0, ledger.InvestmentsCredited)
}

func TestProfitRepository_GetByDate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfitRepository(db)

	id := uuid.New()
	adminID := uuid.New()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM profit_ledgers WHERE date = $1::date")).
		WithArgs("2024-06-01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "total_distributed", "investments_credited", "created_by", "created_at"}).
			AddRow(id.String(), date, "10.00", 1, adminID.String(), time.Now()))

	ledger, err := repo.GetByDate(context.Background(), date.Add(13*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, id, ledger.ID)
	assert.Equal(t, adminID, ledger.CreatedBy)
	assert.True(t, ledger.TotalDistributed.Equal(decimal.NewFromInt(10)))
}

func dailyProfit(inv domain.ActiveInvestment) decimal.Decimal {
	return utils.CalculateDailyProfit(inv.Amount, inv.DailyPercent)
}
