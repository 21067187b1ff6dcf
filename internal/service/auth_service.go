package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/config"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/internal/repository"
	customError "github.com/segyhp/growvest-engine/pkg/errors"
	"github.com/segyhp/growvest-engine/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	referralCodeAttempts = 5
)

// Claims are carried by both access and refresh tokens
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Type  string `json:"typ"`
	jwt.RegisteredClaims
}

type AuthService struct {
	UserRepo repository.UserRepository
	config   *config.Config
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, config *config.Config, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		config:   config,
		log:      log,
		now:      time.Now,
	}
}

// Register creates a user account, linking it to a referrer when a code is given
func (s *AuthService) Register(ctx context.Context, request *domain.RegisterRequest) (*domain.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(request.Email))

	_, err := s.UserRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, customError.WrapEmailAlreadyExists(email)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	var referredBy *uuid.UUID
	if request.ReferralCode != "" {
		referrer, err := s.UserRepo.GetByReferralCode(ctx, strings.ToUpper(request.ReferralCode))
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapInvalidReferralCode(request.ReferralCode)
		}
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		referredBy = &referrer.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), s.config.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		ReferredBy:   referredBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.createWithReferralCode(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"referred": referredBy != nil,
	}).Info("user registered")

	return s.issueTokens(user)
}

// createWithReferralCode retries on a duplicate, which is either a referral code
// collision or an email registered concurrently
func (s *AuthService) createWithReferralCode(ctx context.Context, user *domain.User) error {
	for attempt := 0; attempt < referralCodeAttempts; attempt++ {
		code, err := utils.GenerateReferralCode()
		if err != nil {
			return fmt.Errorf("generate referral code: %w", err)
		}
		user.ReferralCode = code

		err = s.UserRepo.Create(ctx, user)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return customError.WrapDatabaseError(err)
		}

		if _, lookupErr := s.UserRepo.GetByEmail(ctx, user.Email); lookupErr == nil {
			return customError.WrapEmailAlreadyExists(user.Email)
		}
	}

	return customError.WrapDatabaseError(errors.New("could not allocate a unique referral code"))
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, request *domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.UserRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(request.Email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapInvalidCredentials()
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return nil, customError.WrapInvalidCredentials()
	}

	if user.IsSuspended {
		return nil, customError.WrapAccountSuspended()
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResponse, error) {
	claims, err := s.parse(refreshToken, s.refreshSecret(), tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.loadActiveUser(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// Authenticate resolves an access token to the calling principal
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.Principal, error) {
	claims, err := s.parse(accessToken, []byte(s.config.Auth.JWTSecret), tokenTypeAccess)
	if err != nil {
		return nil, err
	}

	user, err := s.loadActiveUser(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	return &domain.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// CreateAdmin creates an admin account or promotes an existing user
func (s *AuthService) CreateAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.UserRepo.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role == domain.RoleAdmin {
			return existing, nil
		}
		existing.Role = domain.RoleAdmin
		existing.UpdatedAt = s.now()
		if err := s.UserRepo.Update(ctx, existing); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		s.log.WithField("user_id", existing.ID).Info("user promoted to admin")
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	if len(password) < 8 {
		return nil, customError.WrapValidation("Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.createWithReferralCode(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithField("user_id", user.ID).Info("admin created")
	return user, nil
}

func (s *AuthService) loadActiveUser(ctx context.Context, subject string) (*domain.User, error) {
	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, customError.WrapUnauthorized("Invalid token subject")
	}

	user, err := s.UserRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapUnauthorized("User no longer exists")
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if user.IsSuspended {
		return nil, customError.WrapAccountSuspended()
	}

	return user, nil
}

func (s *AuthService) issueTokens(user *domain.User) (*domain.AuthResponse, error) {
	access, err := s.sign(user, tokenTypeAccess, s.config.Auth.AccessTokenTTL, []byte(s.config.Auth.JWTSecret))
	if err != nil {
		return nil, err
	}

	refresh, err := s.sign(user, tokenTypeRefresh, s.config.Auth.RefreshTokenTTL, s.refreshSecret())
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User: domain.UserSummary{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

func (s *AuthService) sign(user *domain.User, tokenType string, ttl time.Duration, secret []byte) (string, error) {
	now := s.now()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		Type:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *AuthService) parse(raw string, secret []byte, tokenType string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, customError.WrapUnauthorized("Invalid or expired token")
	}

	if claims.Type != tokenType {
		return nil, customError.WrapUnauthorized("Wrong token type")
	}

	return claims, nil
}

func (s *AuthService) refreshSecret() []byte {
	if s.config.Auth.JWTRefreshSecret != "" {
		return []byte(s.config.Auth.JWTRefreshSecret)
	}
	return []byte(s.config.Auth.JWTSecret)
}
