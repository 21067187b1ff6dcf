package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/growvest-engine/internal/app"
	"github.com/segyhp/growvest-engine/internal/config"
	"github.com/segyhp/growvest-engine/internal/handler"
	"github.com/segyhp/growvest-engine/internal/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(cfg.Logging)

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}
	defer a.Close()

	router := handler.NewRouter(newHandlers(a), a.Services.Auth, log)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		return
	}

	log.Info("Server exited")
}

func newHandlers(a *app.App) handler.Handlers {
	s, log := a.Services, a.Log

	return handler.Handlers{
		Health: handler.NewHealthHandler(a.Config.Health.Timeout, map[string]handler.CheckFunc{
			"database": a.DB.PingContext,
			"redis":    a.Cache.Ping,
		}),
		Auth:    handler.NewAuthHandler(s.Auth, log),
		Users:   handler.NewUserHandler(s.Users, s.Referrals, log),
		Plans:   handler.NewPlanHandler(s.Plans, log),
		Funds:   handler.NewFundsHandler(s.Deposits, s.Withdrawals, s.Investments, a.Config.Storage.MaxUploadBytes, log),
		Tickets: handler.NewTicketHandler(s.Tickets, log),
		Admin:   handler.NewAdminHandler(s.Approvals, s.Deposits, s.Withdrawals, s.Investments, s.Profits, s.Audit, log),
	}
}
