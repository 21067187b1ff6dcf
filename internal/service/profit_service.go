package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/cache"
	"github.com/segyhp/growvest-engine/internal/config"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/internal/metrics"
	"github.com/segyhp/growvest-engine/internal/repository"
	customError "github.com/segyhp/growvest-engine/pkg/errors"
	"github.com/segyhp/growvest-engine/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	msgProfitDistributed        = "Daily profit distributed successfully"
	msgProfitAlreadyDistributed = "Daily profit has already been distributed for %s"

	profitLockPrefix = "profit-run:"
)

// ProfitService runs the once-per-date profit distribution
type ProfitService struct {
	ProfitRepo repository.ProfitRepository
	locker     RunLocker
	audit      *AuditService
	recorder   metrics.Recorder
	config     *config.Config
	log        logrus.FieldLogger
	now        func() time.Time
}

func NewProfitService(
	profitRepo repository.ProfitRepository,
	locker RunLocker,
	audit *AuditService,
	recorder metrics.Recorder,
	config *config.Config,
	log logrus.FieldLogger,
) *ProfitService {
	return &ProfitService{
		ProfitRepo: profitRepo,
		locker:     locker,
		audit:      audit,
		recorder:   recorder,
		config:     config,
		log:        log,
		now:        time.Now,
	}
}

// RunDailyProfit credits one day of profit to every active investment.
// A zero date means today in the scheduler timezone. Running a date twice
// returns the first run's ledger with AlreadyDistributed set.
func (s *ProfitService) RunDailyProfit(ctx context.Context, principal domain.Principal, date time.Time) (*domain.ProfitRunResponse, error) {
	if !principal.IsAdmin() {
		return nil, customError.WrapForbidden("Only admins can run profit distribution")
	}

	if date.IsZero() {
		date = s.now().In(s.config.GetSchedulerLocation())
	}
	date = utils.NormalizeDate(date)
	day := utils.FormatDate(date)

	logger := s.log.WithFields(logrus.Fields{
		"date":     day,
		"admin_id": principal.UserID,
	})

	release, err := s.locker.AcquireLock(ctx, profitLockPrefix+day, s.config.Business.ProfitLockTTL)
	switch {
	case errors.Is(err, cache.ErrLockHeld):
		return nil, customError.WrapProfitRunInProgress(day)
	case err != nil:
		// The ledger's unique date still prevents a double credit
		logger.WithError(err).Warn("profit lock unavailable, relying on ledger uniqueness")
	default:
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				logger.WithError(err).Warn("failed to release profit lock")
			}
		}()
	}

	ledger := &domain.ProfitLedger{
		ID:        uuid.New(),
		Date:      date,
		CreatedBy: principal.UserID,
		CreatedAt: s.now(),
	}

	distributed, err := s.ProfitRepo.Distribute(ctx, ledger, dailyProfit)
	if err != nil {
		s.recorder.ProfitRun(metrics.OutcomeFailed, decimal.Zero, 0)
		logger.WithError(err).Error("profit distribution failed")
		return nil, customError.WrapDatabaseError(err)
	}

	if !distributed {
		existing, err := s.ProfitRepo.GetByDate(ctx, date)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}

		s.recorder.ProfitRun(metrics.OutcomeAlreadyDistributed, decimal.Zero, 0)
		logger.Info("profit already distributed")

		return &domain.ProfitRunResponse{
			Message:             fmt.Sprintf(msgProfitAlreadyDistributed, day),
			Date:                day,
			TotalDistributed:    existing.TotalDistributed,
			InvestmentsCredited: existing.InvestmentsCredited,
			AlreadyDistributed:  true,
		}, nil
	}

	s.recorder.ProfitRun(metrics.OutcomeDistributed, ledger.TotalDistributed, ledger.InvestmentsCredited)
	logger.WithFields(logrus.Fields{
		"total":    ledger.TotalDistributed.StringFixed(2),
		"credited": ledger.InvestmentsCredited,
	}).Info("daily profit distributed")

	s.audit.Record(ctx, principal.UserID, domain.ActionRunDailyProfit, map[string]interface{}{
		"date":                 day,
		"total_distributed":    ledger.TotalDistributed.StringFixed(2),
		"investments_credited": ledger.InvestmentsCredited,
	})
	s.audit.Publish(ctx, domain.EventProfitDistributed, map[string]interface{}{
		"ledger_id":            ledger.ID.String(),
		"date":                 day,
		"total_distributed":    ledger.TotalDistributed.StringFixed(2),
		"investments_credited": ledger.InvestmentsCredited,
	})

	return &domain.ProfitRunResponse{
		Message:             msgProfitDistributed,
		Date:                day,
		TotalDistributed:    ledger.TotalDistributed,
		InvestmentsCredited: ledger.InvestmentsCredited,
	}, nil
}

// ListLedgers returns the most recent distribution runs
func (s *ProfitService) ListLedgers(ctx context.Context, principal domain.Principal, limit int) ([]*domain.ProfitLedger, error) {
	if !principal.IsAdmin() {
		return nil, customError.WrapForbidden("Only admins can view profit ledgers")
	}
	if limit <= 0 {
		limit = s.config.Business.LedgerPageSize
	}

	ledgers, err := s.ProfitRepo.List(ctx, limit)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return ledgers, nil
}

func dailyProfit(inv domain.ActiveInvestment) decimal.Decimal {
	return utils.CalculateDailyProfit(inv.Amount, inv.DailyPercent)
}
