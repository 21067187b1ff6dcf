package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/config"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/internal/repository"
	"github.com/segyhp/growvest-engine/internal/storage"
	customError "github.com/segyhp/growvest-engine/pkg/errors"
	"github.com/segyhp/growvest-engine/pkg/utils"
	"github.com/sirupsen/logrus"
)

type DepositService struct {
	DepositRepo repository.DepositRepository
	proofs      storage.ProofStore
	config      *config.Config
	log         logrus.FieldLogger
	now         func() time.Time
}

func NewDepositService(depositRepo repository.DepositRepository, proofs storage.ProofStore, config *config.Config, log logrus.FieldLogger) *DepositService {
	return &DepositService{
		DepositRepo: depositRepo,
		proofs:      proofs,
		config:      config,
		log:         log,
		now:         time.Now,
	}
}

// Create records a pending deposit, storing the optional proof file first
func (s *DepositService) Create(ctx context.Context, principal domain.Principal, request *domain.CreateDepositRequest, proof *domain.ProofUpload) (*domain.Deposit, error) {
	if !utils.IsMoneyAmount(request.Amount) {
		return nil, customError.WrapValidation("Amount must be greater than zero with at most 2 decimal places")
	}

	now := s.now()
	deposit := &domain.Deposit{
		ID:        uuid.New(),
		UserID:    principal.UserID,
		Amount:    utils.RoundMoney(request.Amount),
		Method:    request.Method,
		Status:    domain.ReviewStatusPending,
		CreatedAt: now,
	}
	if request.TxID != "" {
		txID := request.TxID
		deposit.TxID = &txID
	}

	if proof != nil && len(proof.Data) > 0 {
		url, err := s.storeProof(ctx, now, proof)
		if err != nil {
			return nil, err
		}
		deposit.ProofURL = &url
	}

	if err := s.DepositRepo.Create(ctx, deposit); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.WithFields(logrus.Fields{
		"deposit_id": deposit.ID,
		"user_id":    principal.UserID,
		"amount":     deposit.Amount.StringFixed(2),
		"has_proof":  deposit.ProofURL != nil,
	}).Info("deposit submitted")

	return deposit, nil
}

func (s *DepositService) storeProof(ctx context.Context, now time.Time, proof *domain.ProofUpload) (string, error) {
	if limit := s.config.Storage.MaxUploadBytes; limit > 0 && int64(len(proof.Data)) > limit {
		return "", customError.WrapValidation(fmt.Sprintf("Proof file exceeds %d bytes", limit))
	}

	contentType, ext, ok := storage.DetectProofType(proof.Data)
	if !ok {
		return "", customError.WrapUnsupportedProofFormat(contentType)
	}

	key, err := storage.ProofKey(now, ext)
	if err != nil {
		return "", customError.WrapStorageError(err)
	}

	url, err := s.proofs.Save(ctx, key, contentType, proof.Data)
	if err != nil {
		return "", customError.WrapStorageError(err)
	}

	return url, nil
}

// ListMine returns the caller's deposits
func (s *DepositService) ListMine(ctx context.Context, principal domain.Principal) ([]*domain.Deposit, error) {
	deposits, err := s.DepositRepo.ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return deposits, nil
}

// List returns deposits across users for review
func (s *DepositService) List(ctx context.Context, principal domain.Principal, filter domain.ReviewFilter) ([]*domain.Deposit, error) {
	if !principal.IsAdmin() {
		return nil, customError.WrapForbidden("Only admins can list all deposits")
	}

	deposits, err := s.DepositRepo.List(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return deposits, nil
}
