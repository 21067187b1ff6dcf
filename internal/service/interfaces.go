package service

import (
	"context"
	"time"

	"github.com/segyhp/growvest-engine/internal/domain"
)

// PlanCache caches the plan list
type PlanCache interface {
	GetPlans(ctx context.Context) ([]*domain.Plan, error)
	SetPlans(ctx context.Context, plans []*domain.Plan) error
}

// RunLocker grants a single holder a named lock for at most ttl
type RunLocker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error)
}
