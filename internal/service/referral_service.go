package service

import (
	"context"

	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/internal/repository"
	customError "github.com/segyhp/growvest-engine/pkg/errors"
)

type ReferralService struct {
	ReferralRepo repository.ReferralRepository
}

func NewReferralService(referralRepo repository.ReferralRepository) *ReferralService {
	return &ReferralService{ReferralRepo: referralRepo}
}

// List returns commissions the caller earned as a referrer
func (s *ReferralService) List(ctx context.Context, principal domain.Principal) ([]*domain.Referral, error) {
	referrals, err := s.ReferralRepo.ListByReferrer(ctx, principal.UserID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return referrals, nil
}

func (s *ReferralService) Stats(ctx context.Context, principal domain.Principal) (*domain.ReferralStats, error) {
	stats, err := s.ReferralRepo.GetStats(ctx, principal.UserID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return stats, nil
}
