package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/config"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/internal/metrics"
	"github.com/segyhp/growvest-engine/internal/repository"
	customError "github.com/segyhp/growvest-engine/pkg/errors"
	"github.com/segyhp/growvest-engine/pkg/utils"
	"github.com/sirupsen/logrus"
)

const (
	entityDeposit    = "deposit"
	entityWithdrawal = "withdrawal"
)

// ApprovalService moves deposits and withdrawals out of pending.
// Approved and rejected are terminal; reviewing them again is a conflict.
type ApprovalService struct {
	DepositRepo    repository.DepositRepository
	WithdrawalRepo repository.WithdrawalRepository
	UserRepo       repository.UserRepository
	ReferralRepo   repository.ReferralRepository
	audit          *AuditService
	recorder       metrics.Recorder
	config         *config.Config
	log            logrus.FieldLogger
	now            func() time.Time
}

func NewApprovalService(
	depositRepo repository.DepositRepository,
	withdrawalRepo repository.WithdrawalRepository,
	userRepo repository.UserRepository,
	referralRepo repository.ReferralRepository,
	audit *AuditService,
	recorder metrics.Recorder,
	config *config.Config,
	log logrus.FieldLogger,
) *ApprovalService {
	return &ApprovalService{
		DepositRepo:    depositRepo,
		WithdrawalRepo: withdrawalRepo,
		UserRepo:       userRepo,
		ReferralRepo:   referralRepo,
		audit:          audit,
		recorder:       recorder,
		config:         config,
		log:            log,
		now:            time.Now,
	}
}

func (s *ApprovalService) ApproveDeposit(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Deposit, error) {
	deposit, err := s.reviewDeposit(ctx, principal, id, domain.ReviewStatusApproved, nil)
	if err != nil {
		return nil, err
	}

	s.creditReferral(ctx, deposit)

	s.audit.Record(ctx, principal.UserID, domain.ActionApproveDeposit, map[string]interface{}{
		"deposit_id": deposit.ID.String(),
		"user_id":    deposit.UserID.String(),
		"amount":     deposit.Amount.StringFixed(2),
	})
	s.audit.Publish(ctx, domain.EventDepositApproved, map[string]interface{}{
		"deposit_id": deposit.ID.String(),
		"user_id":    deposit.UserID.String(),
		"amount":     deposit.Amount.StringFixed(2),
	})

	return deposit, nil
}

func (s *ApprovalService) RejectDeposit(ctx context.Context, principal domain.Principal, id uuid.UUID, reason string) (*domain.Deposit, error) {
	deposit, err := s.reviewDeposit(ctx, principal, id, domain.ReviewStatusRejected, note(reason))
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, principal.UserID, domain.ActionRejectDeposit, map[string]interface{}{
		"deposit_id": deposit.ID.String(),
		"reason":     reason,
	})
	s.audit.Publish(ctx, domain.EventDepositRejected, map[string]interface{}{
		"deposit_id": deposit.ID.String(),
		"user_id":    deposit.UserID.String(),
	})

	return deposit, nil
}

func (s *ApprovalService) ApproveWithdrawal(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Withdrawal, error) {
	withdrawal, err := s.reviewWithdrawal(ctx, principal, id, domain.ReviewStatusApproved, nil)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, principal.UserID, domain.ActionApproveWithdrawal, map[string]interface{}{
		"withdrawal_id": withdrawal.ID.String(),
		"user_id":       withdrawal.UserID.String(),
		"amount":        withdrawal.Amount.StringFixed(2),
	})
	s.audit.Publish(ctx, domain.EventWithdrawalApproved, map[string]interface{}{
		"withdrawal_id": withdrawal.ID.String(),
		"user_id":       withdrawal.UserID.String(),
		"amount":        withdrawal.Amount.StringFixed(2),
	})

	return withdrawal, nil
}

func (s *ApprovalService) RejectWithdrawal(ctx context.Context, principal domain.Principal, id uuid.UUID, reason string) (*domain.Withdrawal, error) {
	withdrawal, err := s.reviewWithdrawal(ctx, principal, id, domain.ReviewStatusRejected, note(reason))
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, principal.UserID, domain.ActionRejectWithdrawal, map[string]interface{}{
		"withdrawal_id": withdrawal.ID.String(),
		"reason":        reason,
	})
	s.audit.Publish(ctx, domain.EventWithdrawalRejected, map[string]interface{}{
		"withdrawal_id": withdrawal.ID.String(),
		"user_id":       withdrawal.UserID.String(),
	})

	return withdrawal, nil
}

func (s *ApprovalService) reviewDeposit(ctx context.Context, principal domain.Principal, id uuid.UUID, status string, reviewNote *string) (*domain.Deposit, error) {
	if !principal.IsAdmin() {
		return nil, customError.WrapForbidden("Only admins can review deposits")
	}

	deposit, err := s.DepositRepo.Review(ctx, s.review(principal, id, status, reviewNote))
	if errors.Is(err, sql.ErrNoRows) {
		// Either missing or no longer pending
		current, getErr := s.DepositRepo.GetByID(ctx, id)
		if errors.Is(getErr, sql.ErrNoRows) {
			return nil, customError.WrapNotFound("Deposit", id.String())
		}
		if getErr != nil {
			return nil, customError.WrapDatabaseError(getErr)
		}
		return nil, customError.WrapAlreadyReviewed("Deposit", id.String(), current.Status)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.recorder.Review(entityDeposit, status)
	s.log.WithFields(logrus.Fields{
		"deposit_id": id,
		"admin_id":   principal.UserID,
		"status":     status,
	}).Info("deposit reviewed")

	return deposit, nil
}

func (s *ApprovalService) reviewWithdrawal(ctx context.Context, principal domain.Principal, id uuid.UUID, status string, reviewNote *string) (*domain.Withdrawal, error) {
	if !principal.IsAdmin() {
		return nil, customError.WrapForbidden("Only admins can review withdrawals")
	}

	withdrawal, err := s.WithdrawalRepo.Review(ctx, s.review(principal, id, status, reviewNote))
	if errors.Is(err, sql.ErrNoRows) {
		current, getErr := s.WithdrawalRepo.GetByID(ctx, id)
		if errors.Is(getErr, sql.ErrNoRows) {
			return nil, customError.WrapNotFound("Withdrawal", id.String())
		}
		if getErr != nil {
			return nil, customError.WrapDatabaseError(getErr)
		}
		return nil, customError.WrapAlreadyReviewed("Withdrawal", id.String(), current.Status)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.recorder.Review(entityWithdrawal, status)
	s.log.WithFields(logrus.Fields{
		"withdrawal_id": id,
		"admin_id":      principal.UserID,
		"status":        status,
	}).Info("withdrawal reviewed")

	return withdrawal, nil
}

func (s *ApprovalService) review(principal domain.Principal, id uuid.UUID, status string, reviewNote *string) domain.Review {
	return domain.Review{
		ID:         id,
		Status:     status,
		ReviewedBy: principal.UserID,
		Note:       reviewNote,
		ReviewedAt: s.now(),
	}
}

// creditReferral books the referrer's commission for an approved deposit.
// The approval already committed, so failures are logged rather than returned.
func (s *ApprovalService) creditReferral(ctx context.Context, deposit *domain.Deposit) {
	logger := s.log.WithField("deposit_id", deposit.ID)

	depositor, err := s.UserRepo.GetByID(ctx, deposit.UserID)
	if err != nil {
		logger.WithError(err).Error("failed to load depositor for referral credit")
		return
	}
	if depositor.ReferredBy == nil {
		return
	}

	referral := &domain.Referral{
		ID:               uuid.New(),
		ReferrerID:       *depositor.ReferredBy,
		ReferredID:       depositor.ID,
		DepositID:        deposit.ID,
		CommissionAmount: utils.CalculateCommission(deposit.Amount, s.config.GetReferralRate()),
		CreatedAt:        s.now(),
	}

	created, err := s.ReferralRepo.Create(ctx, referral)
	if err != nil {
		logger.WithError(err).Error("failed to credit referral commission")
		return
	}
	if !created {
		logger.Warn("referral commission already credited for deposit")
		return
	}

	logger.WithFields(logrus.Fields{
		"referrer_id": referral.ReferrerID,
		"commission":  referral.CommissionAmount.StringFixed(2),
	}).Info("referral commission credited")
}

func note(reason string) *string {
	if reason == "" {
		return nil
	}
	return &reason
}
