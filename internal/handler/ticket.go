package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/segyhp/growvest-engine/internal/domain"
	"github.com/segyhp/growvest-engine/pkg/response"
	"github.com/sirupsen/logrus"
)

type TicketHandler struct {
	service   TicketService
	validator *validator.Validate
	log       logrus.FieldLogger
}

func NewTicketHandler(service TicketService, log logrus.FieldLogger) *TicketHandler {
	return &TicketHandler{
		service:   service,
		validator: newValidator(),
		log:       log,
	}
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTicketRequest
	if !decodeAndValidate(w, r, h.validator, &req, false) {
		return
	}

	ticket, err := h.service.Create(r.Context(), principalOf(r), &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Created(w, ticket)
}

// ListTickets handles GET /tickets?status=
func (h *TicketHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.service.List(r.Context(), principalOf(r), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, tickets)
}

// GetTicket handles GET /tickets/{id}
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ticket, err := h.service.Get(r.Context(), principalOf(r), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, ticket)
}

// ReplyTicket handles POST /tickets/{id}/reply
func (h *TicketHandler) ReplyTicket(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req domain.ReplyTicketRequest
	if !decodeAndValidate(w, r, h.validator, &req, false) {
		return
	}

	ticket, err := h.service.Reply(r.Context(), principalOf(r), id, &req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, ticket)
}

// UpdateTicketStatus handles PATCH /tickets/{id}/status
func (h *TicketHandler) UpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateTicketStatusRequest
	if !decodeAndValidate(w, r, h.validator, &req, false) {
		return
	}

	ticket, err := h.service.UpdateStatus(r.Context(), principalOf(r), id, req.Status)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, ticket)
}
