package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/pkg/response"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	service   AuthService
	validator *validator.Validate
	log       logrus.FieldLogger
}

func NewAuthHandler(service AuthService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: newValidator(),
		log:       log,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decodeAndValidate(w, r, h.validator, &req, false) {
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Created(w, resp)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeAndValidate(w, r, h.validator, &req, false) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, resp)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if !decodeAndValidate(w, r, h.validator, &req, false) {
		return
	}

	resp, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, resp)
}

// principalOf returns the caller set by the Authenticate middleware
func principalOf(r *http.Request) domain.Principal {
	principal, _ := PrincipalFrom(r.Context())
	return principal
}

// pathID parses the {id} route variable, writing a 400 when it is not a UUID
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid ID format", err)
		return uuid.Nil, false
	}
	return id, true
}
