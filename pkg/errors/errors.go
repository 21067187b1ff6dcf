package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound               = errors.New("resource not found")
	ErrForbidden              = errors.New("forbidden")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountSuspended       = errors.New("account is suspended")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrInvalidReferralCode    = errors.New("invalid referral code")
	ErrPlanNotFound           = errors.New("investment plan not found")
	ErrAlreadyReviewed        = errors.New("record has already been reviewed")
	ErrInvalidStatus          = errors.New("invalid status transition")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrProfitRunInProgress    = errors.New("profit distribution already in progress")
	ErrValidation             = errors.New("validation failed")
	ErrUnsupportedProofFormat = errors.New("only images and PDF files are allowed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeNotFound               = "NOT_FOUND"
	ErrCodeForbidden              = "FORBIDDEN"
	ErrCodeUnauthorized           = "UNAUTHORIZED"
	ErrCodeInvalidCredentials     = "INVALID_CREDENTIALS"
	ErrCodeAccountSuspended       = "ACCOUNT_SUSPENDED"
	ErrCodeEmailAlreadyExists     = "EMAIL_ALREADY_EXISTS"
	ErrCodeInvalidReferralCode    = "INVALID_REFERRAL_CODE"
	ErrCodePlanNotFound           = "PLAN_NOT_FOUND"
	ErrCodeAlreadyReviewed        = "ALREADY_REVIEWED"
	ErrCodeInvalidStatus          = "INVALID_STATUS_TRANSITION"
	ErrCodeInsufficientFunds      = "INSUFFICIENT_FUNDS"
	ErrCodeProfitRunInProgress    = "PROFIT_RUN_IN_PROGRESS"
	ErrCodeValidation             = "VALIDATION_ERROR"
	ErrCodeUnsupportedProofFormat = "UNSUPPORTED_PROOF_FORMAT"
	ErrCodeDatabaseError          = "DATABASE_ERROR"
	ErrCodeCacheError             = "CACHE_ERROR"
	ErrCodeStorageError           = "STORAGE_ERROR"
)

// Wrap common errors with business context
func WrapNotFound(entity, id string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("%s with ID %s not found", entity, id),
		ErrNotFound,
	)
}

func WrapForbidden(message string) *BusinessError {
	return NewBusinessError(ErrCodeForbidden, message, ErrForbidden)
}

func WrapUnauthorized(message string) *BusinessError {
	return NewBusinessError(ErrCodeUnauthorized, message, ErrUnauthorized)
}

func WrapInvalidCredentials() *BusinessError {
	return NewBusinessError(ErrCodeInvalidCredentials, "Invalid credentials", ErrInvalidCredentials)
}

func WrapAccountSuspended() *BusinessError {
	return NewBusinessError(ErrCodeAccountSuspended, "Account is suspended", ErrAccountSuspended)
}

func WrapEmailAlreadyExists(email string) *BusinessError {
	return NewBusinessError(
		ErrCodeEmailAlreadyExists,
		fmt.Sprintf("User with email %s already exists", email),
		ErrEmailAlreadyExists,
	)
}

func WrapInvalidReferralCode(code string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidReferralCode,
		fmt.Sprintf("Invalid referral code %s", code),
		ErrInvalidReferralCode,
	)
}

func WrapPlanNotFound(planID string) *BusinessError {
	return NewBusinessError(
		ErrCodePlanNotFound,
		fmt.Sprintf("Investment plan %s not found", planID),
		ErrPlanNotFound,
	)
}

func WrapAlreadyReviewed(entity, id, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeAlreadyReviewed,
		fmt.Sprintf("%s with ID %s is already %s", entity, id, status),
		ErrAlreadyReviewed,
	)
}

func WrapInvalidStatus(entity, id, from, to string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidStatus,
		fmt.Sprintf("%s with ID %s cannot move from %s to %s", entity, id, from, to),
		ErrInvalidStatus,
	)
}

func WrapInsufficientFunds(requested, available string) *BusinessError {
	return NewBusinessError(
		ErrCodeInsufficientFunds,
		fmt.Sprintf("Requested amount %s exceeds available balance %s", requested, available),
		ErrInsufficientFunds,
	)
}

func WrapProfitRunInProgress(date string) *BusinessError {
	return NewBusinessError(
		ErrCodeProfitRunInProgress,
		fmt.Sprintf("Profit distribution for %s is already running", date),
		ErrProfitRunInProgress,
	)
}

func WrapValidation(message string) *BusinessError {
	return NewBusinessError(ErrCodeValidation, message, ErrValidation)
}

func WrapUnsupportedProofFormat(contentType string) *BusinessError {
	return NewBusinessError(
		ErrCodeUnsupportedProofFormat,
		fmt.Sprintf("Unsupported proof content type %s", contentType),
		ErrUnsupportedProofFormat,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

func WrapStorageError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeStorageError,
		"Storage operation failed",
		err,
	)
}

// CodeOf returns the business code carried by err, or an empty string.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
