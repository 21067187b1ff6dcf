package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, request *domain.RegisterRequest) (*domain.AuthResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, request *domain.LoginRequest) (*domain.AuthResponse, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, accessToken string) (*domain.Principal, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, principal domain.Principal, id uuid.UUID, request *domain.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, principal, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetBalance(ctx context.Context, principal domain.Principal) (*domain.BalanceResponse, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceResponse), args.Error(1)
}

type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) ListPlans(ctx context.Context) ([]*domain.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Plan), args.Error(1)
}

func (m *MockPlanService) GetPlan(ctx context.Context, id uuid.UUID) (*domain.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}

type MockInvestmentService struct {
	mock.Mock
}

func (m *MockInvestmentService) Activate(ctx context.Context, principal domain.Principal, request *domain.ActivateInvestmentRequest) (*domain.Investment, error) {
	args := m.Called(ctx, principal, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Investment), args.Error(1)
}

func (m *MockInvestmentService) ListMine(ctx context.Context, principal domain.Principal) ([]*domain.Investment, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Investment), args.Error(1)
}

func (m *MockInvestmentService) Cancel(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Investment, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Investment), args.Error(1)
}

func (m *MockInvestmentService) Complete(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Investment, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Investment), args.Error(1)
}

type MockDepositService struct {
	mock.Mock
}

func (m *MockDepositService) Create(ctx context.Context, principal domain.Principal, request *domain.CreateDepositRequest, proof *domain.ProofUpload) (*domain.Deposit, error) {
	args := m.Called(ctx, principal, request, proof)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

func (m *MockDepositService) ListMine(ctx context.Context, principal domain.Principal) ([]*domain.Deposit, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deposit), args.Error(1)
}

func (m *MockDepositService) List(ctx context.Context, principal domain.Principal, filter domain.ReviewFilter) ([]*domain.Deposit, error) {
	args := m.Called(ctx, principal, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deposit), args.Error(1)
}

type MockWithdrawalService struct {
	mock.Mock
}

func (m *MockWithdrawalService) Create(ctx context.Context, principal domain.Principal, request *domain.CreateWithdrawalRequest) (*domain.Withdrawal, error) {
	args := m.Called(ctx, principal, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalService) ListMine(ctx context.Context, principal domain.Principal) ([]*domain.Withdrawal, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalService) List(ctx context.Context, principal domain.Principal, filter domain.ReviewFilter) ([]*domain.Withdrawal, error) {
	args := m.Called(ctx, principal, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Withdrawal), args.Error(1)
}

type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) ApproveDeposit(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Deposit, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

func (m *MockApprovalService) RejectDeposit(ctx context.Context, principal domain.Principal, id uuid.UUID, reason string) (*domain.Deposit, error) {
	args := m.Called(ctx, principal, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deposit), args.Error(1)
}

func (m *MockApprovalService) ApproveWithdrawal(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Withdrawal, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

func (m *MockApprovalService) RejectWithdrawal(ctx context.Context, principal domain.Principal, id uuid.UUID, reason string) (*domain.Withdrawal, error) {
	args := m.Called(ctx, principal, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

type MockProfitService struct {
	mock.Mock
}

func (m *MockProfitService) RunDailyProfit(ctx context.Context, principal domain.Principal, date time.Time) (*domain.ProfitRunResponse, error) {
	args := m.Called(ctx, principal, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitRunResponse), args.Error(1)
}

func (m *MockProfitService) ListLedgers(ctx context.Context, principal domain.Principal, limit int) ([]*domain.ProfitLedger, error) {
	args := m.Called(ctx, principal, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ProfitLedger), args.Error(1)
}

type MockTicketService struct {
	mock.Mock
}

func (m *MockTicketService) Create(ctx context.Context, principal domain.Principal, request *domain.CreateTicketRequest) (*domain.SupportTicket, error) {
	args := m.Called(ctx, principal, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportTicket), args.Error(1)
}

func (m *MockTicketService) Get(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.SupportTicket, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportTicket), args.Error(1)
}

func (m *MockTicketService) List(ctx context.Context, principal domain.Principal, status string) ([]*domain.SupportTicket, error) {
	args := m.Called(ctx, principal, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SupportTicket), args.Error(1)
}

func (m *MockTicketService) Reply(ctx context.Context, principal domain.Principal, id uuid.UUID, request *domain.ReplyTicketRequest) (*domain.SupportTicket, error) {
	args := m.Called(ctx, principal, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportTicket), args.Error(1)
}

func (m *MockTicketService) UpdateStatus(ctx context.Context, principal domain.Principal, id uuid.UUID, status string) (*domain.SupportTicket, error) {
	args := m.Called(ctx, principal, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportTicket), args.Error(1)
}

type MockReferralService struct {
	mock.Mock
}

func (m *MockReferralService) List(ctx context.Context, principal domain.Principal) ([]*domain.Referral, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Referral), args.Error(1)
}

func (m *MockReferralService) Stats(ctx context.Context, principal domain.Principal) (*domain.ReferralStats, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferralStats), args.Error(1)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) List(ctx context.Context, principal domain.Principal, limit int) ([]*domain.AdminLog, error) {
	args := m.Called(ctx, principal, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AdminLog), args.Error(1)
}
