package mocks

import (
	"context"
	"time"

	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockPublisher mocks events.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockProofStore mocks storage.ProofStore
type MockProofStore struct {
	mock.Mock
}

func (m *MockProofStore) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}

// MockRecorder mocks metrics.Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) ProfitRun(outcome string, total decimal.Decimal, credited int) {
	m.Called(outcome, total, credited)
}

func (m *MockRecorder) Review(entity, status string) {
	m.Called(entity, status)
}

// MockPlanCache mocks the plan cache
type MockPlanCache struct {
	mock.Mock
}

func (m *MockPlanCache) GetPlans(ctx context.Context) ([]*domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Plan), args.Error(1)
}

func (m *MockPlanCache) SetPlans(ctx context.Context, plans []*domain.Plan) error {
	args := m.Called(ctx, plans)
	return args.Error(0)
}

// MockRunLocker mocks the distributed run lock
type MockRunLocker struct {
	mock.Mock
}

func (m *MockRunLocker) AcquireLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	args := m.Called(ctx, key, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func(context.Context) error), args.Error(1)
}
