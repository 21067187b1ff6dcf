package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/internal/repository"
	customError "github.com/segyhp/growvest-engine/pkg/errors"
	"github.com/segyhp/growvest-engine/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type InvestmentService struct {
	InvestmentRepo repository.InvestmentRepository
	PlanRepo       repository.PlanRepository
	audit          *AuditService
	log            logrus.FieldLogger
	now            func() time.Time
}

func NewInvestmentService(
	investmentRepo repository.InvestmentRepository,
	planRepo repository.PlanRepository,
	audit *AuditService,
	log logrus.FieldLogger,
) *InvestmentService {
	return &InvestmentService{
		InvestmentRepo: investmentRepo,
		PlanRepo:       planRepo,
		audit:          audit,
		log:            log,
		now:            time.Now,
	}
}

// Activate commits the caller's unallocated funds to a plan
func (s *InvestmentService) Activate(ctx context.Context, principal domain.Principal, request *domain.ActivateInvestmentRequest) (*domain.Investment, error) {
	if !utils.IsMoneyAmount(request.Amount) {
		return nil, customError.WrapValidation("Amount must be greater than zero with at most 2 decimal places")
	}

	plan, err := s.PlanRepo.GetByID(ctx, request.PlanID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapPlanNotFound(request.PlanID.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	now := s.now()
	investment := &domain.Investment{
		ID:            uuid.New(),
		UserID:        principal.UserID,
		PlanID:        plan.ID,
		Amount:        utils.RoundMoney(request.Amount),
		ProfitAccrued: decimal.Zero,
		StartDate:     now,
		EndDate:       utils.CalculateEndDate(now, plan.LockPeriodDays),
		Status:        domain.InvestmentStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	available, err := s.InvestmentRepo.CreateFunded(ctx, investment)
	if errors.Is(err, repository.ErrInsufficientBalance) {
		return nil, customError.WrapInsufficientFunds(investment.Amount.StringFixed(2), available.StringFixed(2))
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.WithFields(logrus.Fields{
		"investment_id": investment.ID,
		"user_id":       principal.UserID,
		"plan":          plan.Name,
		"amount":        investment.Amount.StringFixed(2),
	}).Info("investment activated")

	s.audit.Publish(ctx, domain.EventInvestmentActivated, map[string]interface{}{
		"investment_id": investment.ID.String(),
		"user_id":       principal.UserID.String(),
		"plan_id":       plan.ID.String(),
		"amount":        investment.Amount.StringFixed(2),
	})

	return investment, nil
}

// ListMine returns the caller's investments
func (s *InvestmentService) ListMine(ctx context.Context, principal domain.Principal) ([]*domain.Investment, error) {
	investments, err := s.InvestmentRepo.ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return investments, nil
}

// Cancel stops an active investment; its principal returns to unallocated funds
func (s *InvestmentService) Cancel(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Investment, error) {
	return s.close(ctx, principal, id, domain.InvestmentStatusCancelled, domain.ActionCancelInvestment)
}

// Complete closes an active investment at the end of its term
func (s *InvestmentService) Complete(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Investment, error) {
	return s.close(ctx, principal, id, domain.InvestmentStatusCompleted, domain.ActionCompleteInvestment)
}

// CompleteMatured completes every active investment whose end date has passed.
// Investments closed concurrently are skipped.
func (s *InvestmentService) CompleteMatured(ctx context.Context, principal domain.Principal) (int, error) {
	if !principal.IsAdmin() {
		return 0, customError.WrapForbidden("Only admins can complete investments")
	}

	matured, err := s.InvestmentRepo.ListMatured(ctx, s.now())
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	completed := 0
	for _, inv := range matured {
		_, err := s.close(ctx, principal, inv.ID, domain.InvestmentStatusCompleted, domain.ActionCompleteInvestment)
		if customError.CodeOf(err) == customError.ErrCodeInvalidStatus {
			continue
		}
		if err != nil {
			return completed, err
		}
		completed++
	}

	s.log.WithField("completed", completed).Info("matured investments completed")

	return completed, nil
}

func (s *InvestmentService) close(ctx context.Context, principal domain.Principal, id uuid.UUID, status, action string) (*domain.Investment, error) {
	if !principal.IsAdmin() {
		return nil, customError.WrapForbidden("Only admins can close investments")
	}

	investment, err := s.InvestmentRepo.UpdateStatus(ctx, id, domain.InvestmentStatusActive, status)
	if errors.Is(err, sql.ErrNoRows) {
		current, getErr := s.InvestmentRepo.GetByID(ctx, id)
		if errors.Is(getErr, sql.ErrNoRows) {
			return nil, customError.WrapNotFound("Investment", id.String())
		}
		if getErr != nil {
			return nil, customError.WrapDatabaseError(getErr)
		}
		return nil, customError.WrapInvalidStatus("Investment", id.String(), current.Status, status)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.audit.Record(ctx, principal.UserID, action, map[string]interface{}{
		"investment_id": id.String(),
		"user_id":       investment.UserID.String(),
	})
	s.audit.Publish(ctx, domain.EventInvestmentClosed, map[string]interface{}{
		"investment_id": id.String(),
		"user_id":       investment.UserID.String(),
		"status":        status,
	})

	return investment, nil
}
