package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/segyhp/growvest-engine/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Health  *HealthHandler
	Auth    *AuthHandler
	Users   *UserHandler
	Plans   *PlanHandler
	Funds   *FundsHandler
	Tickets *TicketHandler
	Admin   *AdminHandler
}

// NewRouter mounts the API under /api/v1. authService resolves bearer tokens.
func NewRouter(h Handlers, authService AuthService, log logrus.FieldLogger) http.Handler {
	router := mux.NewRouter()
	router.Use(AccessLog(log))

	// Health check
	router.HandleFunc("/health", h.Health.Health).Methods("GET")
	router.HandleFunc("/health/ready", h.Health.Ready).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/register", h.Auth.Register).Methods("POST")
	api.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods("POST")

	api.HandleFunc("/plans", h.Plans.ListPlans).Methods("GET")
	api.HandleFunc("/plans/{id}", h.Plans.GetPlan).Methods("GET")

	// Authenticated routes
	user := api.NewRoute().Subrouter()
	user.Use(Authenticate(authService, log))

	user.HandleFunc("/users/me/balance", h.Users.GetBalance).Methods("GET")
	user.HandleFunc("/users/{id}", h.Users.GetUser).Methods("GET")
	user.HandleFunc("/users/{id}", h.Users.UpdateUser).Methods("PATCH")

	user.HandleFunc("/deposits", h.Funds.CreateDeposit).Methods("POST")
	user.HandleFunc("/deposits", h.Funds.ListDeposits).Methods("GET")
	user.HandleFunc("/withdrawals", h.Funds.CreateWithdrawal).Methods("POST")
	user.HandleFunc("/withdrawals", h.Funds.ListWithdrawals).Methods("GET")
	user.HandleFunc("/investments/activate", h.Funds.ActivateInvestment).Methods("POST")
	user.HandleFunc("/investments", h.Funds.ListInvestments).Methods("GET")

	user.HandleFunc("/tickets", h.Tickets.CreateTicket).Methods("POST")
	user.HandleFunc("/tickets", h.Tickets.ListTickets).Methods("GET")
	user.HandleFunc("/tickets/{id}", h.Tickets.GetTicket).Methods("GET")
	user.HandleFunc("/tickets/{id}/reply", h.Tickets.ReplyTicket).Methods("POST")
	user.HandleFunc("/tickets/{id}/status", h.Tickets.UpdateTicketStatus).Methods("PATCH")

	user.HandleFunc("/referrals", h.Users.ListReferrals).Methods("GET")
	user.HandleFunc("/referrals/stats", h.Users.ReferralStats).Methods("GET")

	// Admin routes
	admin := user.PathPrefix("/admin").Subrouter()
	admin.Use(RequireAdmin)

	admin.HandleFunc("/deposits", h.Admin.ListDeposits).Methods("GET")
	admin.HandleFunc("/deposits/{id}/approve", h.Admin.ApproveDeposit).Methods("PATCH")
	admin.HandleFunc("/deposits/{id}/reject", h.Admin.RejectDeposit).Methods("PATCH")
	admin.HandleFunc("/withdrawals", h.Admin.ListWithdrawals).Methods("GET")
	admin.HandleFunc("/withdrawals/{id}/approve", h.Admin.ApproveWithdrawal).Methods("PATCH")
	admin.HandleFunc("/withdrawals/{id}/reject", h.Admin.RejectWithdrawal).Methods("PATCH")
	admin.HandleFunc("/run-daily-profit", h.Admin.RunDailyProfit).Methods("POST")
	admin.HandleFunc("/profit-ledgers", h.Admin.ListLedgers).Methods("GET")
	admin.HandleFunc("/investments/{id}/cancel", h.Admin.CancelInvestment).Methods("PATCH")
	admin.HandleFunc("/investments/{id}/complete", h.Admin.CompleteInvestment).Methods("PATCH")
	admin.HandleFunc("/logs", h.Admin.ListAdminLogs).Methods("GET")

	return CORS(router)
}
