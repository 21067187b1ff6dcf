package handler

import (
	"net/http"

	"github.com/segyhp/growvest-engine/pkg/response"
	"github.com/sirupsen/logrus"
)

type PlanHandler struct {
	service PlanService
	log     logrus.FieldLogger
}

func NewPlanHandler(service PlanService, log logrus.FieldLogger) *PlanHandler {
	return &PlanHandler{service: service, log: log}
}

// ListPlans handles GET /plans
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, plans)
}

// GetPlan handles GET /plans/{id}
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	plan, err := h.service.GetPlan(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	response.Success(w, plan)
}
