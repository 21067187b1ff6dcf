package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/domain"
)

// Services the HTTP layer depends on. The concrete types live in internal/service.

type AuthService interface {
	Register(ctx context.Context, request *domain.RegisterRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, request *domain.LoginRequest) (*domain.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthResponse, error)
	Authenticate(ctx context.Context, accessToken string) (*domain.Principal, error)
}

type UserService interface {
	GetUser(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.User, error)
	UpdateUser(ctx context.Context, principal domain.Principal, id uuid.UUID, request *domain.UpdateUserRequest) (*domain.User, error)
	GetBalance(ctx context.Context, principal domain.Principal) (*domain.BalanceResponse, error)
}

type PlanService interface {
	ListPlans(ctx context.Context) ([]*domain.Plan, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*domain.Plan, error)
}

type InvestmentService interface {
	Activate(ctx context.Context, principal domain.Principal, request *domain.ActivateInvestmentRequest) (*domain.Investment, error)
	ListMine(ctx context.Context, principal domain.Principal) ([]*domain.Investment, error)
	Cancel(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Investment, error)
	Complete(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Investment, error)
}

type DepositService interface {
	Create(ctx context.Context, principal domain.Principal, request *domain.CreateDepositRequest, proof *domain.ProofUpload) (*domain.Deposit, error)
	ListMine(ctx context.Context, principal domain.Principal) ([]*domain.Deposit, error)
	List(ctx context.Context, principal domain.Principal, filter domain.ReviewFilter) ([]*domain.Deposit, error)
}

type WithdrawalService interface {
	Create(ctx context.Context, principal domain.Principal, request *domain.CreateWithdrawalRequest) (*domain.Withdrawal, error)
	ListMine(ctx context.Context, principal domain.Principal) ([]*domain.Withdrawal, error)
	List(ctx context.Context, principal domain.Principal, filter domain.ReviewFilter) ([]*domain.Withdrawal, error)
}

type ApprovalService interface {
	ApproveDeposit(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Deposit, error)
	RejectDeposit(ctx context.Context, principal domain.Principal, id uuid.UUID, reason string) (*domain.Deposit, error)
	ApproveWithdrawal(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.Withdrawal, error)
	RejectWithdrawal(ctx context.Context, principal domain.Principal, id uuid.UUID, reason string) (*domain.Withdrawal, error)
}

type ProfitService interface {
	RunDailyProfit(ctx context.Context, principal domain.Principal, date time.Time) (*domain.ProfitRunResponse, error)
	ListLedgers(ctx context.Context, principal domain.Principal, limit int) ([]*domain.ProfitLedger, error)
}

type TicketService interface {
	Create(ctx context.Context, principal domain.Principal, request *domain.CreateTicketRequest) (*domain.SupportTicket, error)
	Get(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.SupportTicket, error)
	List(ctx context.Context, principal domain.Principal, status string) ([]*domain.SupportTicket, error)
	Reply(ctx context.Context, principal domain.Principal, id uuid.UUID, request *domain.ReplyTicketRequest) (*domain.SupportTicket, error)
	UpdateStatus(ctx context.Context, principal domain.Principal, id uuid.UUID, status string) (*domain.SupportTicket, error)
}

type ReferralService interface {
	List(ctx context.Context, principal domain.Principal) ([]*domain.Referral, error)
	Stats(ctx context.Context, principal domain.Principal) (*domain.ReferralStats, error)
}

type AuditService interface {
	List(ctx context.Context, principal domain.Principal, limit int) ([]*domain.AdminLog, error)
}
