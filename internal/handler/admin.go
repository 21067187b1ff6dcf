package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/segyhp/growvest-engine/internal/domain"
	customError "github.com/segyhp/growvest-engine/pkg/errors"
	"github.com/segyhp/growvest-engine/pkg/response"
	"github.com/segyhp/growvest-engine/pkg/utils"
	"github.com/sirupsen/logrus"
)

// AdminHandler serves the admin-only review, profit and maintenance endpoints
type AdminHandler struct {
	approvals   ApprovalService
	deposits    DepositService
	withdrawals WithdrawalService
	investments InvestmentService
	profits     ProfitService
	audit       AuditService
	validator   *validator.Validate
	log         logrus.FieldLogger
}

func NewAdminHandler(
	approvals ApprovalService,
	deposits DepositService,
	withdrawals WithdrawalService,
	investments InvestmentService,
	profits ProfitService,
	audit AuditService,
	log logrus.FieldLogger,
) *AdminHandler {
	return &AdminHandler{
		approvals:   approvals,
		deposits:    deposits,
		withdrawals: withdrawals,
		investments: investments,
		profits:     profits,
		audit:       audit,
		validator:   newValidator(),
		log:         log,
	}
}

// ApproveDeposit handles PATCH /admin/deposits/{id}/approve
func (h *AdminHandler) ApproveDeposit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if _, err := h.approvals.ApproveDeposit(r.Context(), principalOf(r), id); err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Message(w, "Deposit approved successfully")
}

// RejectDeposit handles PATCH /admin/deposits/{id}/reject with an optional {"reason"}
func (h *AdminHandler) RejectDeposit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req domain.RejectRequest
	if !decodeAndValidate(w, r, h.validator, &req, true) {
		return
	}

	if _, err := h.approvals.RejectDeposit(r.Context(), principalOf(r), id, req.Reason); err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Message(w, "Deposit rejected successfully")
}

// ApproveWithdrawal handles PATCH /admin/withdrawals/{id}/approve
func (h *AdminHandler) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if _, err := h.approvals.ApproveWithdrawal(r.Context(), principalOf(r), id); err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Message(w, "Withdrawal approved successfully")
}

// RejectWithdrawal handles PATCH /admin/withdrawals/{id}/reject with an optional {"reason"}
func (h *AdminHandler) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req domain.RejectRequest
	if !decodeAndValidate(w, r, h.validator, &req, true) {
		return
	}

	if _, err := h.approvals.RejectWithdrawal(r.Context(), principalOf(r), id, req.Reason); err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Message(w, "Withdrawal rejected successfully")
}

// ListDeposits handles GET /admin/deposits?status=&user_id=
func (h *AdminHandler) ListDeposits(w http.ResponseWriter, r *http.Request) {
	filter, ok := reviewFilter(w, r)
	if !ok {
		return
	}

	deposits, err := h.deposits.List(r.Context(), principalOf(r), filter)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, deposits)
}

// ListWithdrawals handles GET /admin/withdrawals?status=&user_id=
func (h *AdminHandler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	filter, ok := reviewFilter(w, r)
	if !ok {
		return
	}

	withdrawals, err := h.withdrawals.List(r.Context(), principalOf(r), filter)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, withdrawals)
}

// RunDailyProfit handles POST /admin/run-daily-profit with an optional {"date":"YYYY-MM-DD"}
func (h *AdminHandler) RunDailyProfit(w http.ResponseWriter, r *http.Request) {
	var req domain.RunDailyProfitRequest
	if !decodeAndValidate(w, r, h.validator, &req, true) {
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := utils.ParseDate(req.Date)
		if err != nil {
			response.ErrorWithCode(w, http.StatusBadRequest, customError.ErrCodeValidation, "Date must be YYYY-MM-DD", err)
			return
		}
		date = parsed
	}

	result, err := h.profits.RunDailyProfit(r.Context(), principalOf(r), date)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, result)
}

// ListLedgers handles GET /admin/profit-ledgers?limit=
func (h *AdminHandler) ListLedgers(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}

	ledgers, err := h.profits.ListLedgers(r.Context(), principalOf(r), limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, ledgers)
}

// CancelInvestment handles PATCH /admin/investments/{id}/cancel
func (h *AdminHandler) CancelInvestment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	investment, err := h.investments.Cancel(r.Context(), principalOf(r), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, investment)
}

// CompleteInvestment handles PATCH /admin/investments/{id}/complete
func (h *AdminHandler) CompleteInvestment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	investment, err := h.investments.Complete(r.Context(), principalOf(r), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, investment)
}

// ListAdminLogs handles GET /admin/logs?limit=
func (h *AdminHandler) ListAdminLogs(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}

	logs, err := h.audit.List(r.Context(), principalOf(r), limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, logs)
}

func reviewFilter(w http.ResponseWriter, r *http.Request) (domain.ReviewFilter, bool) {
	query := r.URL.Query()
	filter := domain.ReviewFilter{Status: query.Get("status")}

	switch filter.Status {
	case "", domain.ReviewStatusPending, domain.ReviewStatusApproved, domain.ReviewStatusRejected:
	default:
		response.ErrorWithCode(w, http.StatusBadRequest, customError.ErrCodeValidation, "Status must be pending, approved or rejected", nil)
		return filter, false
	}

	if raw := query.Get("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid user_id format", err)
			return filter, false
		}
		filter.UserID = &userID
	}

	return filter, true
}

func queryLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		response.BadRequest(w, "Limit must be a non-negative integer", err)
		return 0, false
	}
	return limit, true
}
