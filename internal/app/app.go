// Package app wires configuration, infrastructure and services for the binaries.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segyhp/growvest-engine/internal/cache"
	"github.com/segyhp/growvest-engine/internal/config"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/internal/events"
	"github.com/segyhp/growvest-engine/internal/metrics"
	"github.com/segyhp/growvest-engine/internal/repository"
	"github.com/segyhp/growvest-engine/internal/service"
	"github.com/segyhp/growvest-engine/internal/storage"
	"github.com/sirupsen/logrus"
)

// Services holds every application service
type Services struct {
	Auth        *service.AuthService
	Users       *service.UserService
	Plans       *service.PlanService
	Investments *service.InvestmentService
	Deposits    *service.DepositService
	Withdrawals *service.WithdrawalService
	Approvals   *service.ApprovalService
	Profits     *service.ProfitService
	Tickets     *service.TicketService
	Referrals   *service.ReferralService
	Audit       *service.AuditService
}

// App owns the process-wide connections
type App struct {
	Config    *config.Config
	Log       logrus.FieldLogger
	DB        *sqlx.DB
	Redis     *redis.Client
	Cache     *cache.RedisCache
	Publisher events.Publisher
	Services  Services
}

// New connects to Postgres, Redis, the proof store and the event broker and builds the services
func New(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*App, error) {
	db, err := initDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := initRedis(cfg)

	proofs, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, fmt.Errorf("failed to initialize proof storage: %w", err)
	}

	publisher, err := events.New(cfg.Events, log)
	if err != nil {
		db.Close()
		redisClient.Close()
		return nil, fmt.Errorf("failed to initialize event publisher: %w", err)
	}

	a := &App{
		Config:    cfg,
		Log:       log,
		DB:        db,
		Redis:     redisClient,
		Cache:     cache.NewRedisCache(redisClient, cfg.Business.PlanCacheTTL),
		Publisher: publisher,
	}
	a.Services = a.buildServices(proofs)

	return a, nil
}

func (a *App) buildServices(proofs storage.ProofStore) Services {
	cfg, log := a.Config, a.Log
	recorder := metrics.PrometheusRecorder{}

	// Initialize repositories
	userRepo := repository.NewUserRepository(a.DB)
	planRepo := repository.NewPlanRepository(a.DB)
	investmentRepo := repository.NewInvestmentRepository(a.DB)
	depositRepo := repository.NewDepositRepository(a.DB)
	withdrawalRepo := repository.NewWithdrawalRepository(a.DB)
	balanceRepo := repository.NewBalanceRepository(a.DB)
	profitRepo := repository.NewProfitRepository(a.DB)
	referralRepo := repository.NewReferralRepository(a.DB)
	ticketRepo := repository.NewTicketRepository(a.DB)
	adminLogRepo := repository.NewAdminLogRepository(a.DB)

	audit := service.NewAuditService(adminLogRepo, a.Publisher, log)

	return Services{
		Auth:        service.NewAuthService(userRepo, cfg, log),
		Users:       service.NewUserService(userRepo, balanceRepo, audit),
		Plans:       service.NewPlanService(planRepo, a.Cache, log),
		Investments: service.NewInvestmentService(investmentRepo, planRepo, audit, log),
		Deposits:    service.NewDepositService(depositRepo, proofs, cfg, log),
		Withdrawals: service.NewWithdrawalService(withdrawalRepo, log),
		Approvals:   service.NewApprovalService(depositRepo, withdrawalRepo, userRepo, referralRepo, audit, recorder, cfg, log),
		Profits:     service.NewProfitService(profitRepo, a.Cache, audit, recorder, cfg, log),
		Tickets:     service.NewTicketService(ticketRepo, audit, log),
		Referrals:   service.NewReferralService(referralRepo),
		Audit:       audit,
	}
}

// AdminPrincipal resolves the account background jobs act as
func (a *App) AdminPrincipal(ctx context.Context, email string) (domain.Principal, error) {
	user, err := repository.NewUserRepository(a.DB).GetByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Principal{}, fmt.Errorf("admin account %s not found", email)
	}
	if err != nil {
		return domain.Principal{}, err
	}
	if user.Role != domain.RoleAdmin || user.IsSuspended {
		return domain.Principal{}, fmt.Errorf("account %s is not an active admin", email)
	}

	return domain.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// Close releases connections in reverse order of acquisition
func (a *App) Close() {
	if err := a.Publisher.Close(); err != nil {
		a.Log.WithError(err).Warn("failed to close event publisher")
	}
	if err := a.Redis.Close(); err != nil {
		a.Log.WithError(err).Warn("failed to close redis client")
	}
	if err := a.DB.Close(); err != nil {
		a.Log.WithError(err).Warn("failed to close database")
	}
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
