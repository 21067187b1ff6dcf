package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/internal/repository"
	customError "github.com/segyhp/growvest-engine/pkg/errors"
	"github.com/segyhp/growvest-engine/pkg/utils"
	"github.com/sirupsen/logrus"
)

type WithdrawalService struct {
	WithdrawalRepo repository.WithdrawalRepository
	log            logrus.FieldLogger
	now            func() time.Time
}

func NewWithdrawalService(withdrawalRepo repository.WithdrawalRepository, log logrus.FieldLogger) *WithdrawalService {
	return &WithdrawalService{
		WithdrawalRepo: withdrawalRepo,
		log:            log,
		now:            time.Now,
	}
}

// Create records a pending withdrawal if the caller's withdrawable balance covers it
func (s *WithdrawalService) Create(ctx context.Context, principal domain.Principal, request *domain.CreateWithdrawalRequest) (*domain.Withdrawal, error) {
	if !utils.IsMoneyAmount(request.Amount) {
		return nil, customError.WrapValidation("Amount must be greater than zero with at most 2 decimal places")
	}

	withdrawal := &domain.Withdrawal{
		ID:            uuid.New(),
		UserID:        principal.UserID,
		Amount:        utils.RoundMoney(request.Amount),
		MethodDetails: request.MethodDetails,
		Status:        domain.ReviewStatusPending,
		CreatedAt:     s.now(),
	}

	available, err := s.WithdrawalRepo.CreateFunded(ctx, withdrawal)
	if errors.Is(err, repository.ErrInsufficientBalance) {
		return nil, customError.WrapInsufficientFunds(withdrawal.Amount.StringFixed(2), available.StringFixed(2))
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.WithFields(logrus.Fields{
		"withdrawal_id": withdrawal.ID,
		"user_id":       principal.UserID,
		"amount":        withdrawal.Amount.StringFixed(2),
	}).Info("withdrawal requested")

	return withdrawal, nil
}

// ListMine returns the caller's withdrawals
func (s *WithdrawalService) ListMine(ctx context.Context, principal domain.Principal) ([]*domain.Withdrawal, error) {
	withdrawals, err := s.WithdrawalRepo.ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return withdrawals, nil
}

// List returns withdrawals across users for review
func (s *WithdrawalService) List(ctx context.Context, principal domain.Principal, filter domain.ReviewFilter) ([]*domain.Withdrawal, error) {
	if !principal.IsAdmin() {
		return nil, customError.WrapForbidden("Only admins can list all withdrawals")
	}

	withdrawals, err := s.WithdrawalRepo.List(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return withdrawals, nil
}
