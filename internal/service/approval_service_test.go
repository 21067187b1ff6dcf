package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/internal/repository/mocks"
	svcmocks "github.com/segyhp/growvest-engine/internal/service/mocks"
	customError "github.com/segyhp/growvest-engine/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type approvalFixture struct {
	service        *ApprovalService
	depositRepo    *mocks.MockDepositRepository
	withdrawalRepo *mocks.MockWithdrawalRepository
	userRepo       *mocks.MockUserRepository
	referralRepo   *mocks.MockReferralRepository
	logRepo        *mocks.MockAdminLogRepository
	publisher      *svcmocks.MockPublisher
	recorder       *svcmocks.MockRecorder
}

func newApprovalFixture() *approvalFixture {
	audit, logRepo, publisher := newTestAudit()
	f := &approvalFixture{
		depositRepo:    &mocks.MockDepositRepository{},
		withdrawalRepo: &mocks.MockWithdrawalRepository{},
		userRepo:       &mocks.MockUserRepository{},
		referralRepo:   &mocks.MockReferralRepository{},
		logRepo:        logRepo,
		publisher:      publisher,
		recorder:       &svcmocks.MockRecorder{},
	}
	f.service = &ApprovalService{
		DepositRepo:    f.depositRepo,
		WithdrawalRepo: f.withdrawalRepo,
		UserRepo:       f.userRepo,
		ReferralRepo:   f.referralRepo,
		audit:          audit,
		recorder:       f.recorder,
		config:         testConfig(),
		log:            nullLogger(),
		now:            clock,
	}
	return f
}

func TestApproveDeposit_Success(t *testing.T) {
	f := newApprovalFixture()
	admin := adminPrincipal()
	depositID := uuid.New()
	depositor := &domain.User{ID: uuid.New(), Role: domain.RoleUser}
	approved := &domain.Deposit{
		ID:         depositID,
		UserID:     depositor.ID,
		Amount:     decimal.NewFromInt(1000),
		Status:     domain.ReviewStatusApproved,
		ReviewedBy: &admin.UserID,
	}

	f.depositRepo.On("Review", mock.Anything, mock.MatchedBy(func(review domain.Review) bool {
		return review.ID == depositID &&
			review.Status == domain.ReviewStatusApproved &&
			review.ReviewedBy == admin.UserID &&
			review.ReviewedAt.Equal(fixedNow) &&
			review.Note == nil
	})).Return(approved, nil)
	f.userRepo.On("GetByID", mock.Anything, depositor.ID).Return(depositor, nil)
	f.recorder.On("Review", "deposit", domain.ReviewStatusApproved).Once()
	f.logRepo.On("Create", mock.Anything, logWithAction(admin.UserID, domain.ActionApproveDeposit)).Return(nil).Once()
	f.publisher.On("Publish", mock.Anything, eventOfType(domain.EventDepositApproved)).Return(nil).Once()

	deposit, err := f.service.ApproveDeposit(context.Background(), admin, depositID)

	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusApproved, deposit.Status)
	assert.Equal(t, admin.UserID, *deposit.ReviewedBy)
	f.referralRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.depositRepo.AssertExpectations(t)
	f.logRepo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.recorder.AssertExpectations(t)
}

func TestApproveDeposit_CreditsReferrer(t *testing.T) {
	f := newApprovalFixture()
	allowAudit(f.logRepo, f.publisher)
	f.recorder.On("Review", mock.Anything, mock.Anything)

	referrerID := uuid.New()
	depositor := &domain.User{ID: uuid.New(), ReferredBy: &referrerID}
	deposit := &domain.Deposit{
		ID:     uuid.New(),
		UserID: depositor.ID,
		Amount: decimal.RequireFromString("250.50"),
		Status: domain.ReviewStatusApproved,
	}

	f.depositRepo.On("Review", mock.Anything, mock.Anything).Return(deposit, nil)
	f.userRepo.On("GetByID", mock.Anything, depositor.ID).Return(depositor, nil)
	f.referralRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Referral) bool {
		return r.ReferrerID == referrerID &&
			r.ReferredID == depositor.ID &&
			r.DepositID == deposit.ID &&
			r.CommissionAmount.Equal(decimal.RequireFromString("12.52"))
	})).Return(true, nil)

	_, err := f.service.ApproveDeposit(context.Background(), adminPrincipal(), deposit.ID)

	require.NoError(t, err)
	f.referralRepo.AssertExpectations(t)
}

func TestApproveDeposit_ReferralFailureDoesNotFailApproval(t *testing.T) {
	f := newApprovalFixture()
	allowAudit(f.logRepo, f.publisher)
	f.recorder.On("Review", mock.Anything, mock.Anything)

	referrerID := uuid.New()
	depositor := &domain.User{ID: uuid.New(), ReferredBy: &referrerID}
	deposit := &domain.Deposit{ID: uuid.New(), UserID: depositor.ID, Amount: decimal.NewFromInt(100)}

	f.depositRepo.On("Review", mock.Anything, mock.Anything).Return(deposit, nil)
	f.userRepo.On("GetByID", mock.Anything, depositor.ID).Return(depositor, nil)
	f.referralRepo.On("Create", mock.Anything, mock.Anything).Return(false, errors.New("connection reset"))

	result, err := f.service.ApproveDeposit(context.Background(), adminPrincipal(), deposit.ID)

	require.NoError(t, err)
	assert.Equal(t, deposit, result)
}

func TestReviewDeposit_Errors(t *testing.T) {
	depositID := uuid.New()

	tests := []struct {
		name         string
		principal    domain.Principal
		setupMocks   func(f *approvalFixture)
		expectedCode string
	}{
		{
			name:         "non admin is forbidden",
			principal:    userPrincipal(),
			setupMocks:   func(f *approvalFixture) {},
			expectedCode: customError.ErrCodeForbidden,
		},
		{
			name:      "missing deposit is not found",
			principal: adminPrincipal(),
			setupMocks: func(f *approvalFixture) {
				f.depositRepo.On("Review", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)
				f.depositRepo.On("GetByID", mock.Anything, depositID).Return(nil, sql.ErrNoRows)
			},
			expectedCode: customError.ErrCodeNotFound,
		},
		{
			name:      "approved deposit is a conflict",
			principal: adminPrincipal(),
			setupMocks: func(f *approvalFixture) {
				f.depositRepo.On("Review", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)
				f.depositRepo.On("GetByID", mock.Anything, depositID).
					Return(&domain.Deposit{ID: depositID, Status: domain.ReviewStatusApproved}, nil)
			},
			expectedCode: customError.ErrCodeAlreadyReviewed,
		},
		{
			name:      "database failure",
			principal: adminPrincipal(),
			setupMocks: func(f *approvalFixture) {
				f.depositRepo.On("Review", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
			},
			expectedCode: customError.ErrCodeDatabaseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newApprovalFixture()
			tt.setupMocks(f)

			deposit, err := f.service.ApproveDeposit(context.Background(), tt.principal, depositID)

			assert.Nil(t, deposit)
			require.Error(t, err)
			assert.Equal(t, tt.expectedCode, customError.CodeOf(err))
			f.logRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestRejectDeposit_AlreadyRejected(t *testing.T) {
	f := newApprovalFixture()
	depositID := uuid.New()

	f.depositRepo.On("Review", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)
	f.depositRepo.On("GetByID", mock.Anything, depositID).
		Return(&domain.Deposit{ID: depositID, Status: domain.ReviewStatusRejected}, nil)

	_, err := f.service.RejectDeposit(context.Background(), adminPrincipal(), depositID, "duplicate")

	require.Error(t, err)
	assert.True(t, errors.Is(err, customError.ErrAlreadyReviewed))
	assert.Contains(t, err.Error(), "already rejected")
}

func TestRejectDeposit_StoresReason(t *testing.T) {
	f := newApprovalFixture()
	allowAudit(f.logRepo, f.publisher)
	f.recorder.On("Review", "deposit", domain.ReviewStatusRejected).Once()
	depositID := uuid.New()

	f.depositRepo.On("Review", mock.Anything, mock.MatchedBy(func(review domain.Review) bool {
		return review.Status == domain.ReviewStatusRejected && review.Note != nil && *review.Note == "blurry proof"
	})).Return(&domain.Deposit{ID: depositID, Status: domain.ReviewStatusRejected}, nil)

	deposit, err := f.service.RejectDeposit(context.Background(), adminPrincipal(), depositID, "blurry proof")

	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusRejected, deposit.Status)
	f.userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	f.recorder.AssertExpectations(t)
}

func TestApproveWithdrawal(t *testing.T) {
	f := newApprovalFixture()
	admin := adminPrincipal()
	withdrawalID := uuid.New()

	f.withdrawalRepo.On("Review", mock.Anything, mock.MatchedBy(func(review domain.Review) bool {
		return review.ID == withdrawalID && review.Status == domain.ReviewStatusApproved
	})).Return(&domain.Withdrawal{ID: withdrawalID, Status: domain.ReviewStatusApproved, Amount: decimal.NewFromInt(50)}, nil)
	f.recorder.On("Review", "withdrawal", domain.ReviewStatusApproved).Once()
	f.logRepo.On("Create", mock.Anything, logWithAction(admin.UserID, domain.ActionApproveWithdrawal)).Return(nil).Once()
	f.publisher.On("Publish", mock.Anything, eventOfType(domain.EventWithdrawalApproved)).Return(nil).Once()

	withdrawal, err := f.service.ApproveWithdrawal(context.Background(), admin, withdrawalID)

	require.NoError(t, err)
	assert.Equal(t, domain.ReviewStatusApproved, withdrawal.Status)
	f.logRepo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestRejectWithdrawal_Errors(t *testing.T) {
	withdrawalID := uuid.New()

	t.Run("non admin is forbidden", func(t *testing.T) {
		f := newApprovalFixture()
		_, err := f.service.RejectWithdrawal(context.Background(), userPrincipal(), withdrawalID, "")
		assert.Equal(t, customError.ErrCodeForbidden, customError.CodeOf(err))
		f.withdrawalRepo.AssertNotCalled(t, "Review", mock.Anything, mock.Anything)
	})

	t.Run("terminal withdrawal is a conflict", func(t *testing.T) {
		f := newApprovalFixture()
		f.withdrawalRepo.On("Review", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)
		f.withdrawalRepo.On("GetByID", mock.Anything, withdrawalID).
			Return(&domain.Withdrawal{ID: withdrawalID, Status: domain.ReviewStatusApproved}, nil)

		_, err := f.service.RejectWithdrawal(context.Background(), adminPrincipal(), withdrawalID, "")
		assert.Equal(t, customError.ErrCodeAlreadyReviewed, customError.CodeOf(err))
	})

	t.Run("missing withdrawal is not found", func(t *testing.T) {
		f := newApprovalFixture()
		f.withdrawalRepo.On("Review", mock.Anything, mock.Anything).Return(nil, sql.ErrNoRows)
		f.withdrawalRepo.On("GetByID", mock.Anything, withdrawalID).Return(nil, sql.ErrNoRows)

		_, err := f.service.RejectWithdrawal(context.Background(), adminPrincipal(), withdrawalID, "")
		assert.Equal(t, customError.ErrCodeNotFound, customError.CodeOf(err))
	})
}
