package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	InvestmentStatusActive    = "active"
	InvestmentStatusCompleted = "completed"
	InvestmentStatusCancelled = "cancelled"
)

// Investment represents a user's funded commitment to a plan
type Investment struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	UserID        uuid.UUID       `json:"user_id" db:"user_id"`
	PlanID        uuid.UUID       `json:"plan_id" db:"plan_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	ProfitAccrued decimal.Decimal `json:"profit_accrued" db:"profit_accrued"`
	StartDate     time.Time       `json:"start_date" db:"start_date"`
	EndDate       time.Time       `json:"end_date" db:"end_date"`
	Status        string          `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// ActiveInvestment is an active investment joined with its plan's daily rate
type ActiveInvestment struct {
	ID            uuid.UUID       `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	Amount        decimal.Decimal `db:"amount"`
	ProfitAccrued decimal.Decimal `db:"profit_accrued"`
	DailyPercent  decimal.Decimal `db:"daily_percent"`
}

type ActivateInvestmentRequest struct {
	PlanID uuid.UUID       `json:"plan_id" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"decimal_gt=0,money"`
}
