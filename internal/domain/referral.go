package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Referral is a commission earned by a referrer on a referred user's approved deposit
type Referral struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	ReferrerID       uuid.UUID       `json:"referrer_id" db:"referrer_id"`
	ReferredID       uuid.UUID       `json:"referred_id" db:"referred_id"`
	DepositID        uuid.UUID       `json:"deposit_id" db:"deposit_id"`
	CommissionAmount decimal.Decimal `json:"commission_amount" db:"commission_amount"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

type ReferralStats struct {
	TotalReferrals  int             `json:"total_referrals" db:"total_referrals"`
	TotalCommission decimal.Decimal `json:"total_commission" db:"total_commission"`
}
