package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfitLedger records one completed distribution run; at most one row exists per date
type ProfitLedger struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	Date                time.Time       `json:"date" db:"date"`
	TotalDistributed    decimal.Decimal `json:"total_distributed" db:"total_distributed"`
	InvestmentsCredited int             `json:"investments_credited" db:"investments_credited"`
	CreatedBy           uuid.UUID       `json:"created_by" db:"created_by"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
}

type RunDailyProfitRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type ProfitRunResponse struct {
	Message             string          `json:"message"`
	Date                string          `json:"date"`
	TotalDistributed    decimal.Decimal `json:"total_distributed"`
	InvestmentsCredited int             `json:"investments_credited"`
	AlreadyDistributed  bool            `json:"already_distributed"`
}
