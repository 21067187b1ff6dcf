package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/segyhp/growvest-engine/internal/app"
	"github.com/segyhp/growvest-engine/internal/config"
	"github.com/segyhp/growvest-engine/internal/logger"
	"github.com/sirupsen/logrus"
)

// upper bound for a single job run
const jobTimeout = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(cfg.Logging)
	log.Info("Starting growvest scheduler...")

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize application")
	}
	defer a.Close()

	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(cfg.GetSchedulerLocation()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	if err := setupCronJobs(c, a); err != nil {
		log.WithError(err).Fatal("Failed to schedule jobs")
	}

	c.Start()
	log.WithField("timezone", cfg.Scheduler.Timezone).Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	log.Info("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, a *app.App) error {
	cfg := a.Config

	// Daily profit distribution for today's date
	if _, err := c.AddFunc(cfg.Scheduler.ProfitCron, func() {
		runJob(a, "daily_profit", func(ctx context.Context, log logrus.FieldLogger) error {
			admin, err := a.AdminPrincipal(ctx, cfg.Scheduler.AdminEmail)
			if err != nil {
				return err
			}

			result, err := a.Services.Profits.RunDailyProfit(ctx, admin, time.Time{})
			if err != nil {
				return err
			}

			log.WithFields(logrus.Fields{
				"date":                 result.Date,
				"total_distributed":    result.TotalDistributed.String(),
				"investments_credited": result.InvestmentsCredited,
				"already_distributed":  result.AlreadyDistributed,
			}).Info(result.Message)
			return nil
		})
	}); err != nil {
		return err
	}

	// Close investments whose lock period has ended
	if _, err := c.AddFunc(cfg.Scheduler.MaturityCron, func() {
		runJob(a, "maturity_sweep", func(ctx context.Context, log logrus.FieldLogger) error {
			admin, err := a.AdminPrincipal(ctx, cfg.Scheduler.AdminEmail)
			if err != nil {
				return err
			}

			completed, err := a.Services.Investments.CompleteMatured(ctx, admin)
			if err != nil {
				return err
			}

			log.WithField("completed", completed).Info("Matured investments completed")
			return nil
		})
	}); err != nil {
		return err
	}

	a.Log.WithFields(logrus.Fields{
		"profit_cron":   cfg.Scheduler.ProfitCron,
		"maturity_cron": cfg.Scheduler.MaturityCron,
	}).Info("Cron jobs scheduled successfully")
	return nil
}

func runJob(a *app.App, name string, job func(ctx context.Context, log logrus.FieldLogger) error) {
	log := a.Log.WithField("job", name)
	log.Info("Running job")

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := job(ctx, log); err != nil {
		log.WithError(err).Error("Job failed")
	}
}
