package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Withdrawal represents a user's request to take funds out
type Withdrawal struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	UserID        uuid.UUID       `json:"user_id" db:"user_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	MethodDetails string          `json:"method_details" db:"method_details"`
	Status        string          `json:"status" db:"status"`
	ReviewedBy    *uuid.UUID      `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewNote    *string         `json:"review_note,omitempty" db:"review_note"`
	ReviewedAt    *time.Time      `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

type CreateWithdrawalRequest struct {
	Amount        decimal.Decimal `json:"amount" validate:"decimal_gt=0,money"`
	MethodDetails string          `json:"method_details" validate:"required,max=1000"`
}
