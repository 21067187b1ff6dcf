package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/internal/repository"
	"github.com/segyhp/growvest-engine/internal/repository/mocks"
	svcmocks "github.com/segyhp/growvest-engine/internal/service/mocks"
	customError "github.com/segyhp/growvest-engine/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newDepositService() (*DepositService, *mocks.MockDepositRepository, *svcmocks.MockProofStore) {
	depositRepo := &mocks.MockDepositRepository{}
	proofs := &svcmocks.MockProofStore{}

	service := &DepositService{
		DepositRepo: depositRepo,
		proofs:      proofs,
		config:      testConfig(),
		log:         nullLogger(),
		now:         clock,
	}

	return service, depositRepo, proofs
}

func TestCreateDeposit_WithProof(t *testing.T) {
	service, depositRepo, proofs := newDepositService()
	user := userPrincipal()

	proofs.On("Save", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "proof-") && strings.HasSuffix(key, ".png")
	}), "image/png", pngHeader).Return("https://proofs.example.com/proof-1.png", nil)
	depositRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.Deposit) bool {
		return d.UserID == user.UserID &&
			d.Status == domain.ReviewStatusPending &&
			d.Amount.Equal(decimal.NewFromInt(1000)) &&
			d.TxID != nil && *d.TxID == "0xabc" &&
			d.ProofURL != nil && *d.ProofURL == "https://proofs.example.com/proof-1.png"
	})).Return(nil)

	deposit, err := service.Create(context.Background(), user, &domain.CreateDepositRequest{
		Amount: decimal.NewFromInt(1000),
		Method: "USDT",
		TxID:   "0xabc",
	}, &domain.ProofUpload{Filename: "receipt.png", Data: pngHeader})

	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusPending, deposit.Status)
	proofs.AssertExpectations(t)
	depositRepo.AssertExpectations(t)
}

func TestCreateDeposit_WithoutProof(t *testing.T) {
	service, depositRepo, proofs := newDepositService()

	depositRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.Deposit) bool {
		return d.TxID == nil && d.ProofURL == nil
	})).Return(nil)

	_, err := service.Create(context.Background(), userPrincipal(), &domain.CreateDepositRequest{
		Amount: decimal.NewFromInt(50),
		Method: "bank",
	}, nil)

	require.NoError(t, err)
	proofs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateDeposit_ProofErrors(t *testing.T) {
	tests := []struct {
		name         string
		data         []byte
		setupMocks   func(proofs *svcmocks.MockProofStore)
		expectedCode string
	}{
		{
			name:         "oversized file",
			data:         append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2048)...),
			setupMocks:   func(*svcmocks.MockProofStore) {},
			expectedCode: customError.ErrCodeValidation,
		},
		{
			name:         "unsupported format",
			data:         []byte("plain text is not a proof"),
			setupMocks:   func(*svcmocks.MockProofStore) {},
			expectedCode: customError.ErrCodeUnsupportedProofFormat,
		},
		{
			name: "store failure",
			data: pngHeader,
			setupMocks: func(proofs *svcmocks.MockProofStore) {
				proofs.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket missing"))
			},
			expectedCode: customError.ErrCodeStorageError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, depositRepo, proofs := newDepositService()
			tt.setupMocks(proofs)

			deposit, err := service.Create(context.Background(), userPrincipal(), &domain.CreateDepositRequest{
				Amount: decimal.NewFromInt(10),
				Method: "bank",
			}, &domain.ProofUpload{Data: tt.data})

			assert.Nil(t, deposit)
			assert.Equal(t, tt.expectedCode, customError.CodeOf(err))
			depositRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateDeposit_InvalidAmount(t *testing.T) {
	for _, amount := range []string{"0", "-10", "0.001", "25.125"} {
		t.Run(amount, func(t *testing.T) {
			service, depositRepo, proofs := newDepositService()

			deposit, err := service.Create(context.Background(), userPrincipal(), &domain.CreateDepositRequest{
				Amount: decimal.RequireFromString(amount),
				Method: "bank",
			}, &domain.ProofUpload{Data: pngHeader})

			assert.Nil(t, deposit)
			assert.Equal(t, customError.ErrCodeValidation, customError.CodeOf(err))
			depositRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			proofs.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestListDeposits(t *testing.T) {
	service, depositRepo, _ := newDepositService()
	userID := uuid.New()
	filter := domain.ReviewFilter{Status: domain.ReviewStatusPending, UserID: &userID}
	deposits := []*domain.Deposit{{ID: uuid.New()}}

	depositRepo.On("List", mock.Anything, filter).Return(deposits, nil)

	result, err := service.List(context.Background(), adminPrincipal(), filter)
	require.NoError(t, err)
	assert.Equal(t, deposits, result)

	_, err = service.List(context.Background(), userPrincipal(), filter)
	assert.Equal(t, customError.ErrCodeForbidden, customError.CodeOf(err))

	user := userPrincipal()
	depositRepo.On("ListByUser", mock.Anything, user.UserID).Return(deposits, nil)
	mine, err := service.ListMine(context.Background(), user)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestCreateWithdrawal(t *testing.T) {
	tests := []struct {
		name         string
		amount       decimal.Decimal
		setupMocks   func(repo *mocks.MockWithdrawalRepository)
		expectedCode string
	}{
		{
			name:   "within withdrawable balance",
			amount: decimal.RequireFromString("345.50"),
			setupMocks: func(repo *mocks.MockWithdrawalRepository) {
				repo.On("CreateFunded", mock.Anything, mock.MatchedBy(func(w *domain.Withdrawal) bool {
					return w.Status == domain.ReviewStatusPending && w.Amount.Equal(decimal.RequireFromString("345.50"))
				})).Return(decimal.RequireFromString("345.50"), nil)
			},
		},
		{
			name:   "exceeds withdrawable balance",
			amount: decimal.NewFromInt(500),
			setupMocks: func(repo *mocks.MockWithdrawalRepository) {
				repo.On("CreateFunded", mock.Anything, mock.Anything).
					Return(decimal.RequireFromString("345.50"), repository.ErrInsufficientBalance)
			},
			expectedCode: customError.ErrCodeInsufficientFunds,
		},
		{
			name:         "negative amount",
			amount:       decimal.NewFromInt(-5),
			setupMocks:   func(*mocks.MockWithdrawalRepository) {},
			expectedCode: customError.ErrCodeValidation,
		},
		{
			name:         "sub-cent amount",
			amount:       decimal.RequireFromString("0.001"),
			setupMocks:   func(*mocks.MockWithdrawalRepository) {},
			expectedCode: customError.ErrCodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.MockWithdrawalRepository{}
			tt.setupMocks(repo)
			service := &WithdrawalService{WithdrawalRepo: repo, log: nullLogger(), now: clock}

			withdrawal, err := service.Create(context.Background(), userPrincipal(), &domain.CreateWithdrawalRequest{
				Amount:        tt.amount,
				MethodDetails: "IBAN DE00 0000",
			})

			if tt.expectedCode != "" {
				assert.Nil(t, withdrawal)
				assert.Equal(t, tt.expectedCode, customError.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.ReviewStatusPending, withdrawal.Status)
			repo.AssertExpectations(t)
		})
	}
}

func TestListWithdrawals(t *testing.T) {
	repo := &mocks.MockWithdrawalRepository{}
	service := NewWithdrawalService(repo, nullLogger())
	user := userPrincipal()

	repo.On("ListByUser", mock.Anything, user.UserID).Return([]*domain.Withdrawal{}, nil)
	repo.On("List", mock.Anything, domain.ReviewFilter{}).Return(nil, errors.New("boom"))

	mine, err := service.ListMine(context.Background(), user)
	require.NoError(t, err)
	assert.Empty(t, mine)

	_, err = service.List(context.Background(), adminPrincipal(), domain.ReviewFilter{})
	assert.Equal(t, customError.ErrCodeDatabaseError, customError.CodeOf(err))
}
