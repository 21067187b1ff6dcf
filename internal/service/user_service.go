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
)

type UserService struct {
	UserRepo    repository.UserRepository
	BalanceRepo repository.BalanceRepository
	audit       *AuditService
	now         func() time.Time
}

func NewUserService(userRepo repository.UserRepository, balanceRepo repository.BalanceRepository, audit *AuditService) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		BalanceRepo: balanceRepo,
		audit:       audit,
		now:         time.Now,
	}
}

// GetUser returns a user to themselves or to an admin
func (s *UserService) GetUser(ctx context.Context, principal domain.Principal, id uuid.UUID) (*domain.User, error) {
	if !principal.CanAccess(id) {
		return nil, customError.WrapForbidden("You can only view your own account")
	}

	user, err := s.UserRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("User", id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return user, nil
}

// UpdateUser changes a user's role or suspension flag
func (s *UserService) UpdateUser(ctx context.Context, principal domain.Principal, id uuid.UUID, request *domain.UpdateUserRequest) (*domain.User, error) {
	if !principal.IsAdmin() {
		return nil, customError.WrapForbidden("Only admins can update users")
	}

	user, err := s.UserRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("User", id.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	meta := map[string]interface{}{"user_id": id.String()}
	if request.Role != nil {
		user.Role = *request.Role
		meta["role"] = *request.Role
	}
	if request.IsSuspended != nil {
		user.IsSuspended = *request.IsSuspended
		meta["is_suspended"] = *request.IsSuspended
	}
	user.UpdatedAt = s.now()

	if err := s.UserRepo.Update(ctx, user); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.audit.Record(ctx, principal.UserID, domain.ActionUpdateUser, meta)

	return user, nil
}

// GetBalance summarizes the caller's funds
func (s *UserService) GetBalance(ctx context.Context, principal domain.Principal) (*domain.BalanceResponse, error) {
	balance, err := s.BalanceRepo.GetBalance(ctx, principal.UserID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	response := domain.NewBalanceResponse(*balance)
	return &response, nil
}
