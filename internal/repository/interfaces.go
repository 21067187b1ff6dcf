package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/shopspring/decimal"
)

// ProfitFunc computes the profit credited to one active investment in a run
type ProfitFunc func(inv domain.ActiveInvestment) decimal.Decimal

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user, returning ErrDuplicate when email or referral code is taken
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByReferralCode retrieves the owner of a referral code
	GetByReferralCode(ctx context.Context, code string) (*domain.User, error)

	// Update persists role and suspension changes
	Update(ctx context.Context, user *domain.User) error
}

// PlanRepository defines the interface for plan reference data
type PlanRepository interface {
	// List returns all plans ordered by name
	List(ctx context.Context) ([]*domain.Plan, error)

	// GetByID retrieves a plan by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Plan, error)
}

// InvestmentRepository defines the interface for investment data operations
type InvestmentRepository interface {
	// CreateFunded inserts the investment if the owner's unallocated funds cover it.
	// It returns the unallocated amount seen under the owner's row lock, and
	// ErrInsufficientBalance when the amount exceeds it.
	CreateFunded(ctx context.Context, inv *domain.Investment) (decimal.Decimal, error)

	// GetByID retrieves an investment by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Investment, error)

	// ListByUser returns a user's investments, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Investment, error)

	// UpdateStatus moves an investment from one status to another.
	// It returns sql.ErrNoRows when no investment with that ID is in status from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (*domain.Investment, error)

	// ListMatured returns active investments whose end date is at or before asOf
	ListMatured(ctx context.Context, asOf time.Time) ([]*domain.Investment, error)
}

// ProfitRepository defines the interface for profit distribution
type ProfitRepository interface {
	// Distribute claims the ledger date and credits every active investment in one
	// transaction. It reports false, without crediting anything, when a ledger row
	// for the date already exists. On success the ledger totals are filled in.
	Distribute(ctx context.Context, ledger *domain.ProfitLedger, profit ProfitFunc) (bool, error)

	// GetByDate retrieves the ledger row for a calendar date
	GetByDate(ctx context.Context, date time.Time) (*domain.ProfitLedger, error)

	// List returns the most recent ledger rows
	List(ctx context.Context, limit int) ([]*domain.ProfitLedger, error)
}

// DepositRepository defines the interface for deposit data operations
type DepositRepository interface {
	// Create creates a new pending deposit
	Create(ctx context.Context, deposit *domain.Deposit) error

	// GetByID retrieves a deposit by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deposit, error)

	// ListByUser returns a user's deposits, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deposit, error)

	// List returns deposits matching the filter, newest first
	List(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Deposit, error)

	// Review applies a review to a pending deposit.
	// It returns sql.ErrNoRows when no pending deposit with that ID exists.
	Review(ctx context.Context, review domain.Review) (*domain.Deposit, error)
}

// WithdrawalRepository defines the interface for withdrawal data operations
type WithdrawalRepository interface {
	// CreateFunded inserts the withdrawal if the owner's withdrawable balance covers it.
	// It returns the withdrawable amount seen under the owner's row lock, and
	// ErrInsufficientBalance when the amount exceeds it.
	CreateFunded(ctx context.Context, withdrawal *domain.Withdrawal) (decimal.Decimal, error)

	// GetByID retrieves a withdrawal by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Withdrawal, error)

	// ListByUser returns a user's withdrawals, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Withdrawal, error)

	// List returns withdrawals matching the filter, newest first
	List(ctx context.Context, filter domain.ReviewFilter) ([]*domain.Withdrawal, error)

	// Review applies a review to a pending withdrawal.
	// It returns sql.ErrNoRows when no pending withdrawal with that ID exists.
	Review(ctx context.Context, review domain.Review) (*domain.Withdrawal, error)
}

// BalanceRepository aggregates a user's funds across tables
type BalanceRepository interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*domain.Balance, error)
}

// ReferralRepository defines the interface for referral commissions
type ReferralRepository interface {
	// Create records a commission; it reports false when the deposit already has one
	Create(ctx context.Context, referral *domain.Referral) (bool, error)

	// ListByReferrer returns commissions earned by a referrer, newest first
	ListByReferrer(ctx context.Context, referrerID uuid.UUID) ([]*domain.Referral, error)

	// GetStats returns the referral totals of a referrer
	GetStats(ctx context.Context, referrerID uuid.UUID) (*domain.ReferralStats, error)
}

// TicketRepository defines the interface for support tickets
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.SupportTicket) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.SupportTicket, error)

	// List returns tickets newest first; a nil userID lists every user's tickets
	List(ctx context.Context, userID *uuid.UUID, status string) ([]*domain.SupportTicket, error)

	// AppendReply adds a reply to the ticket thread under a row lock
	AppendReply(ctx context.Context, id uuid.UUID, reply domain.TicketReply) (*domain.SupportTicket, error)

	// UpdateStatus sets the ticket status
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.SupportTicket, error)
}

// AdminLogRepository defines the interface for the admin audit log
type AdminLogRepository interface {
	Create(ctx context.Context, log *domain.AdminLog) error

	// List returns the most recent entries
	List(ctx context.Context, limit int) ([]*domain.AdminLog, error)
}
