package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/centerpulse/centerpulse/internal/api/handlers"
	"github.com/centerpulse/centerpulse/internal/api/router"
	"github.com/centerpulse/centerpulse/internal/config"
	"github.com/centerpulse/centerpulse/internal/engine"
	"github.com/centerpulse/centerpulse/internal/notify"
	"github.com/centerpulse/centerpulse/internal/pkg/logger"
	"github.com/centerpulse/centerpulse/internal/pkg/validator"
	"github.com/centerpulse/centerpulse/internal/repository/sqlite"
	"github.com/centerpulse/centerpulse/internal/services"
	"github.com/centerpulse/centerpulse/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	validator.Init()

	db, err := sqlite.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := sqlite.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	centerRepo := sqlite.NewCenterRepository(db)
	ruleRepo := sqlite.NewRuleRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	sentAlertRepo := sqlite.NewSentAlertRepository(db)
	dealFlowRepo := sqlite.NewDealFlowRepository(db)
	metricsProvider := sqlite.NewMetricsProvider(db)

	// Notification transports
	dispatcher := notify.NewDispatcher(log,
		notify.NewSlackTransport(cfg.Slack, log),
		notify.NewEmailTransport(cfg.Email, log),
		notify.NewPushTransport(cfg.Push, log),
		notify.NewWhatsAppTransport(cfg.WhatsApp, log),
	)

	// Evaluation pipeline
	clock := engine.NewClock()
	evaluator := engine.NewEvaluator(metricsProvider, clock, log)
	gate := engine.NewGate(sentAlertRepo, cfg.Alerting.Cooldown, clock)
	orchestrator := engine.NewOrchestrator(
		centerRepo, ruleRepo, userRepo, sentAlertRepo,
		evaluator, gate, dispatcher, clock, log,
		cfg.Alerting.DashboardURL,
	)

	// Services
	sentAlertService := services.NewSentAlertService(sentAlertRepo, clock, log)
	ruleService := services.NewRuleService(ruleRepo, clock, log)
	centerService := services.NewCenterService(centerRepo, clock, log)
	saleService := services.NewSaleNotificationService(centerRepo, userRepo, dispatcher, log)

	val := validator.New()
	h := &router.Handlers{
		Health:   handlers.NewHealthHandler(db, log),
		Cron:     handlers.NewCronHandler(orchestrator, clock, log),
		Alert:    handlers.NewAlertHandler(sentAlertService, clock, log, val),
		Rule:     handlers.NewRuleHandler(ruleService, log, val),
		Center:   handlers.NewCenterHandler(centerService, log, val),
		Sales:    handlers.NewSalesHandler(saleService, log, val),
		DealFlow: handlers.NewDealFlowHandler(dealFlowRepo, clock, log, val),
	}

	sweeper := worker.NewSweeper(orchestrator, clock, cfg.Alerting, log)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("Failed to start sweeper: %v", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Info("Server stopped")
}
