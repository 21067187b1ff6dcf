package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/segyhp/growvest-engine/internal/domain"
)

type referralRepository struct {
	db *sqlx.DB
}

func NewReferralRepository(db *sqlx.DB) ReferralRepository {
	return &referralRepository{db: db}
}

func (r *referralRepository) Create(ctx context.Context, referral *domain.Referral) (bool, error) {
	query := `
		INSERT INTO referrals (id, referrer_id, referred_id, deposit_id, commission_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (deposit_id) DO NOTHING
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRowxContext(ctx, query,
		referral.ID,
		referral.ReferrerID,
		referral.ReferredID,
		referral.DepositID,
		referral.CommissionAmount,
		referral.CreatedAt,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *referralRepository) ListByReferrer(ctx context.Context, referrerID uuid.UUID) ([]*domain.Referral, error) {
	query := `
		SELECT id, referrer_id, referred_id, deposit_id, commission_amount, created_at
		FROM referrals
		WHERE referrer_id = $1
		ORDER BY created_at DESC
	`

	var referrals []*domain.Referral
	err := r.db.SelectContext(ctx, &referrals, query, referrerID)
	if err != nil {
		return nil, err
	}

	return referrals, nil
}

func (r *referralRepository) GetStats(ctx context.Context, referrerID uuid.UUID) (*domain.ReferralStats, error) {
	query := `
		SELECT COUNT(DISTINCT referred_id) AS total_referrals,
		       COALESCE(SUM(commission_amount), 0) AS total_commission
		FROM referrals
		WHERE referrer_id = $1
	`

	var stats domain.ReferralStats
	err := r.db.GetContext(ctx, &stats, query, referrerID)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
