package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "simplymail/internal/adapter/http"
	"simplymail/internal/adapter/postgres"
	"simplymail/internal/adapter/usecase"
	"simplymail/internal/config"
	"simplymail/internal/core/port"
	"simplymail/internal/db"
	"simplymail/internal/dispatch"
	"simplymail/internal/mailer"
)

// main is the entry point of the simplymail service. It loads configuration,
// optionally runs database migrations and demo seeding, wires the
// repositories, usecases and the delivery dispatcher, then starts the HTTP
// server. On receiving a termination signal it gracefully shuts down the
// server and drains the dispatcher.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		// Initialise structured logger based on configuration.
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	// Optionally run migrations if configured. We use the Psql sub‑config.
	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.SeedDemo {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else {
			logger.Info("demo data seeded")
		}
	}

	campaignRepo := postgres.NewCampaignRepository(pool)
	scheduleRepo := postgres.NewScheduleRepository(pool)
	subscriberRepo := postgres.NewSubscriberRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// With no SendGrid key configured outbound mail only gets logged.
	var outbound port.Mailer
	if cfg.Mail.SendGridKey != "" {
		outbound = mailer.NewSendGrid(cfg.Mail.SendGridKey, cfg.Mail.FromEmail, cfg.Mail.FromName)
	} else {
		logger.Warn("no sendgrid key set, using console mailer")
		outbound = mailer.NewConsole(logger)
	}

	dispatcher := dispatch.New(
		campaignRepo, scheduleRepo, subscriberRepo, deliveryRepo,
		outbound, logger, cfg.Mail.BaseURL, cfg.Dispatch.QueueSize,
	)
	if err = dispatcher.Start(ctx, cfg.Dispatch.PollSpec); err != nil {
		logger.Error("dispatcher start error", slog.Any("error", err))
		os.Exit(1)
	}

	campaignUC := usecase.NewCampaignUseCase(campaignRepo, scheduleRepo, dispatcher)
	scheduleUC := usecase.NewScheduleUseCase(campaignRepo, scheduleRepo)
	analyticsUC := usecase.NewAnalyticsUseCase(campaignRepo, deliveryRepo, subscriberRepo)
	subscriberUC := usecase.NewSubscriberUseCase(subscriberRepo)
	authUC := usecase.NewAuthUseCase(userRepo, cfg.Auth.Secret, cfg.Auth.TokenTTL)

	handler := httpadapter.NewHandler(
		campaignUC, scheduleUC, analyticsUC, subscriberUC, authUC,
		deliveryRepo, logger, cfg.Auth.Secret,
	)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}

	cancel()
	dispatcher.Wait()
	logger.Info("dispatcher drained")
}
