package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Review states shared by deposits and withdrawals
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// Deposit represents funds a user claims to have sent, awaiting admin review
type Deposit struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	UserID     uuid.UUID       `json:"user_id" db:"user_id"`
	Amount     decimal.Decimal `json:"amount" db:"amount"`
	Method     string          `json:"method" db:"method"`
	TxID       *string         `json:"tx_id,omitempty" db:"tx_id"`
	ProofURL   *string         `json:"proof_url,omitempty" db:"proof_url"`
	Status     string          `json:"status" db:"status"`
	ReviewedBy *uuid.UUID      `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewNote *string         `json:"review_note,omitempty" db:"review_note"`
	ReviewedAt *time.Time      `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// Review is the outcome an admin applies to a pending deposit or withdrawal
type Review struct {
	ID         uuid.UUID
	Status     string
	ReviewedBy uuid.UUID
	Note       *string
	ReviewedAt time.Time
}

// ReviewFilter narrows admin listings of deposits and withdrawals
type ReviewFilter struct {
	Status string
	UserID *uuid.UUID
}

type CreateDepositRequest struct {
	Amount decimal.Decimal `validate:"decimal_gt=0,money"`
	Method string          `validate:"required,max=64"`
	TxID   string          `validate:"max=128"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// ProofUpload is a deposit proof file read from a multipart request
type ProofUpload struct {
	Filename string
	Data     []byte
}
