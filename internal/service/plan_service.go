package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/internal/repository"
	customError "github.com/segyhp/growvest-engine/pkg/errors"
	"github.com/sirupsen/logrus"
)

type PlanService struct {
	PlanRepo repository.PlanRepository
	cache    PlanCache
	log      logrus.FieldLogger
}

func NewPlanService(planRepo repository.PlanRepository, cache PlanCache, log logrus.FieldLogger) *PlanService {
	return &PlanService{
		PlanRepo: planRepo,
		cache:    cache,
		log:      log,
	}
}

// ListPlans serves plans from the cache, falling back to the database
func (s *PlanService) ListPlans(ctx context.Context) ([]*domain.Plan, error) {
	plans, err := s.cache.GetPlans(ctx)
	if err == nil {
		return plans, nil
	}

	plans, err = s.PlanRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	// A cache failure only costs the next request a database read
	if err := s.cache.SetPlans(ctx, plans); err != nil {
		s.log.WithError(err).Warn("failed to cache plans")
	}

	return plans, nil
}

func (s *PlanService) GetPlan(ctx context.Context, id uuid.UUID) (*domain.Plan, error) {
	plan, err := s.PlanRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("Plan", id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return plan, nil
}
