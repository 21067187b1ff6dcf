package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/segyhp/growvest-engine/internal/app"
	"github.com/segyhp/growvest-engine/internal/config"
	"github.com/segyhp/growvest-engine/internal/logger"
	"github.com/segyhp/growvest-engine/pkg/utils"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(runProfitCmd)

	createAdminCmd.Flags().String("email", "", "Email of the admin account")
	createAdminCmd.Flags().String("password", "", "Password for a new account (ignored when promoting an existing user)")
	_ = createAdminCmd.MarkFlagRequired("email")

	runProfitCmd.Flags().String("date", "", "Calendar date to distribute, YYYY-MM-DD (default today)")
	runProfitCmd.Flags().String("as", "", "Admin email to run as (default SCHEDULER_ADMIN_EMAIL)")
}

var rootCmd = &cobra.Command{
	Use:           "growvestctl",
	Short:         "Operate a growvest deployment",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ─── create-admin ───────────────────────────────────────────────────────────

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account or promote an existing user",
	Args:  cobra.NoArgs,
	RunE:  runCreateAdmin,
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
		user, err := a.Services.Auth.CreateAdmin(ctx, email, password)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "admin %s ready (id %s)\n", user.Email, user.ID)
		return nil
	})
}

// ─── run-profit ─────────────────────────────────────────────────────────────

var runProfitCmd = &cobra.Command{
	Use:   "run-profit",
	Short: "Distribute daily profit for a date",
	Args:  cobra.NoArgs,
	RunE:  runRunProfit,
}

func runRunProfit(cmd *cobra.Command, args []string) error {
	rawDate, _ := cmd.Flags().GetString("date")
	as, _ := cmd.Flags().GetString("as")

	var date time.Time
	if rawDate != "" {
		parsed, err := utils.ParseDate(rawDate)
		if err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
		}
		date = parsed
	}

	return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
		if as == "" {
			as = a.Config.Scheduler.AdminEmail
		}

		admin, err := a.AdminPrincipal(ctx, as)
		if err != nil {
			return err
		}

		result, err := a.Services.Profits.RunDailyProfit(ctx, admin, date)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\ndate: %s\ntotal distributed: %s\ninvestments credited: %d\n",
			result.Message, result.Date, result.TotalDistributed.StringFixed(2), result.InvestmentsCredited)
		return nil
	})
}

func withApp(ctx context.Context, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	a, err := app.New(ctx, cfg, logger.New(cfg.Logging))
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
