package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/segyhp/growvest-engine/internal/domain"
	customError "github.com/segyhp/growvest-engine/pkg/errors"
	"github.com/segyhp/growvest-engine/pkg/response"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// multipart overhead allowed on top of the proof file itself
const formOverheadBytes = 1 << 20

// FundsHandler serves the caller's deposits, withdrawals and investments
type FundsHandler struct {
	deposits       DepositService
	withdrawals    WithdrawalService
	investments    InvestmentService
	maxUploadBytes int64
	validator      *validator.Validate
	log            logrus.FieldLogger
}

func NewFundsHandler(
	deposits DepositService,
	withdrawals WithdrawalService,
	investments InvestmentService,
	maxUploadBytes int64,
	log logrus.FieldLogger,
) *FundsHandler {
	return &FundsHandler{
		deposits:       deposits,
		withdrawals:    withdrawals,
		investments:    investments,
		maxUploadBytes: maxUploadBytes,
		validator:      newValidator(),
		log:            log,
	}
}

// CreateDeposit handles POST /deposits as multipart/form-data with an optional proof file
func (h *FundsHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+formOverheadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form", err)
		return
	}

	amount, err := decimal.NewFromString(r.FormValue("amount"))
	if err != nil {
		response.ErrorWithCode(w, http.StatusBadRequest, customError.ErrCodeValidation, "Amount must be a decimal number", err)
		return
	}

	req := domain.CreateDepositRequest{
		Amount: amount,
		Method: r.FormValue("method"),
		TxID:   r.FormValue("tx_id"),
	}
	if !validate(w, h.validator, &req) {
		return
	}

	proof, err := h.readProof(r)
	if err != nil {
		response.BadRequest(w, "Invalid proof file", err)
		return
	}

	deposit, err := h.deposits.Create(r.Context(), principalOf(r), &req, proof)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Created(w, deposit)
}

// readProof returns nil when no proof was attached. At most one byte beyond the
// limit is read so the service can reject oversized files.
func (h *FundsHandler) readProof(r *http.Request) (*domain.ProofUpload, error) {
	file, header, err := r.FormFile("proof")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		return nil, err
	}

	return &domain.ProofUpload{Filename: header.Filename, Data: data}, nil
}

// ListDeposits handles GET /deposits
func (h *FundsHandler) ListDeposits(w http.ResponseWriter, r *http.Request) {
	deposits, err := h.deposits.ListMine(r.Context(), principalOf(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, deposits)
}

// CreateWithdrawal handles POST /withdrawals
func (h *FundsHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateWithdrawalRequest
	if !decodeAndValidate(w, r, h.validator, &req, false) {
		return
	}

	withdrawal, err := h.withdrawals.Create(r.Context(), principalOf(r), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Created(w, withdrawal)
}

// ListWithdrawals handles GET /withdrawals
func (h *FundsHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.withdrawals.ListMine(r.Context(), principalOf(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, withdrawals)
}

// ActivateInvestment handles POST /investments/activate
func (h *FundsHandler) ActivateInvestment(w http.ResponseWriter, r *http.Request) {
	var req domain.ActivateInvestmentRequest
	if !decodeAndValidate(w, r, h.validator, &req, false) {
		return
	}

	investment, err := h.investments.Activate(r.Context(), principalOf(r), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Created(w, investment)
}

// ListInvestments handles GET /investments
func (h *FundsHandler) ListInvestments(w http.ResponseWriter, r *http.Request) {
	investments, err := h.investments.ListMine(r.Context(), principalOf(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, investments)
}
