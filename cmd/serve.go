package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	database "schoolku_backend/internals/databases"
	paymentRepo "schoolku_backend/internals/features/finance/payments/repository"
	paymentScheduler "schoolku_backend/internals/features/finance/payments/scheduler"
	feeService "schoolku_backend/internals/features/finance/payments/service"
	authScheduler "schoolku_backend/internals/features/users/auth/scheduler"
	helper "schoolku_backend/internals/helpers"
	middlewares "schoolku_backend/internals/middlewares"
	routes "schoolku_backend/internals/route"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and background jobs",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "run AutoMigrate before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	defer database.Close(db)

	if serveMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	node, err := snowflake.NewNode(cfg.Fees.SnowflakeNode)
	if err != nil {
		return fmt.Errorf("snowflake node: %w", err)
	}
	if cfg.Midtrans.ServerKey == "" {
		log.Warn("MIDTRANS_SERVER_KEY is empty; online orders will fail")
	}

	opt := feeService.OptionsFromConfig(cfg)
	opt.Store = paymentRepo.NewGormLedgerStore(db)
	opt.Gateway = feeService.NewMidtransGateway(cfg.Midtrans)
	opt.IDNode = node
	opt.Log = log
	fees := feeService.NewFeeService(opt)

	// ⏱ scheduler setelah DB siap
	c := cron.New()
	if _, err := paymentScheduler.RegisterOrderReaper(c, fees, cfg.Fees.ReaperSchedule, log); err != nil {
		return fmt.Errorf("register order reaper: %w", err)
	}
	if _, err := authScheduler.RegisterBlacklistCleanup(c, db, cfg.Fees.BlacklistSchedule, cfg.Fees.BlacklistRetention, log); err != nil {
		return fmt.Errorf("register blacklist cleanup: %w", err)
	}
	c.Start()
	defer c.Stop()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.FiberErrorHandler,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ReadTimeout:             15 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             90 * time.Second,
	})
	middlewares.SetupMiddlewares(app, cfg, log)
	routes.SetupRoutes(app, routes.Deps{DB: db, Cfg: cfg, Log: log, Fees: fees})

	errCh := make(chan error, 1)
	go func() {
		log.Info("✅ listening", zap.String("port", cfg.Port))
		errCh <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	return app.ShutdownWithContext(ctx)
}
