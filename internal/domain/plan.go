package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Plan is immutable reference data describing a fixed-rate, fixed-term offer
type Plan struct {
	ID                  uuid.UUID       `json:"id" db:"id"`
	Name                string          `json:"name" db:"name"`
	DailyPercent        decimal.Decimal `json:"daily_percent" db:"daily_percent"`
	LockPeriodDays      int             `json:"lock_period_days" db:"lock_period_days"`
	RefundablePrincipal bool            `json:"refundable_principal" db:"refundable_principal"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
}
