package handler

import (
	"errors"
	"net/http"

	customError "github.com/segyhp/growvest-engine/pkg/errors"
	"github.com/segyhp/growvest-engine/pkg/response"
	"github.com/sirupsen/logrus"
)

var statusByCode = map[string]int{
	customError.ErrCodeNotFound:               http.StatusNotFound,
	customError.ErrCodeForbidden:              http.StatusForbidden,
	customError.ErrCodeUnauthorized:           http.StatusUnauthorized,
	customError.ErrCodeInvalidCredentials:     http.StatusUnauthorized,
	customError.ErrCodeAccountSuspended:       http.StatusUnauthorized,
	customError.ErrCodeValidation:             http.StatusBadRequest,
	customError.ErrCodePlanNotFound:           http.StatusBadRequest,
	customError.ErrCodeInvalidReferralCode:    http.StatusBadRequest,
	customError.ErrCodeUnsupportedProofFormat: http.StatusBadRequest,
	customError.ErrCodeAlreadyReviewed:        http.StatusConflict,
	customError.ErrCodeProfitRunInProgress:    http.StatusConflict,
	customError.ErrCodeEmailAlreadyExists:     http.StatusConflict,
	customError.ErrCodeInvalidStatus:          http.StatusConflict,
	customError.ErrCodeInsufficientFunds:      http.StatusUnprocessableEntity,
}

// writeError renders a service error with the status its business code maps to
func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	var be *customError.BusinessError
	if !errors.As(err, &be) {
		log.WithError(err).Error("unhandled error")
		response.InternalServerError(w, "Internal server error", nil)
		return
	}

	status, ok := statusByCode[be.Code]
	if !ok {
		// Database, cache and storage failures; the cause stays in the log
		log.WithError(err).WithField("code", be.Code).Error("request failed")
		response.ErrorWithCode(w, http.StatusInternalServerError, be.Code, be.Message, nil)
		return
	}

	response.ErrorWithCode(w, status, be.Code, be.Message, nil)
}
