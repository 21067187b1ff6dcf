package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/pkg/response"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	users     UserService
	referrals ReferralService
	validator *validator.Validate
	log       logrus.FieldLogger
}

func NewUserHandler(users UserService, referrals ReferralService, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{
		users:     users,
		referrals: referrals,
		validator: newValidator(),
		log:       log,
	}
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), principalOf(r), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, user)
}

// UpdateUser handles PATCH /users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateUserRequest
	if !decodeAndValidate(w, r, h.validator, &req, false) {
		return
	}

	user, err := h.users.UpdateUser(r.Context(), principalOf(r), id, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, user)
}

// GetBalance handles GET /users/me/balance
func (h *UserHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.users.GetBalance(r.Context(), principalOf(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, balance)
}

// ListReferrals handles GET /referrals
func (h *UserHandler) ListReferrals(w http.ResponseWriter, r *http.Request) {
	referrals, err := h.referrals.List(r.Context(), principalOf(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, referrals)
}

// ReferralStats handles GET /referrals/stats
func (h *UserHandler) ReferralStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.referrals.Stats(r.Context(), principalOf(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, stats)
}
