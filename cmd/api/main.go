package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/haroonchishty/sca-backend/internal/api/http"
	"github.com/haroonchishty/sca-backend/internal/api/http/handlers"
	"github.com/haroonchishty/sca-backend/internal/auth"
	"github.com/haroonchishty/sca-backend/internal/billing"
	"github.com/haroonchishty/sca-backend/internal/config"
	"github.com/haroonchishty/sca-backend/internal/observability"
	"github.com/haroonchishty/sca-backend/internal/persistence"
	"github.com/haroonchishty/sca-backend/internal/repository"
	"github.com/haroonchishty/sca-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := persistence.NewDynamo(ctx, cfg.Dynamo, logger)
	if err != nil {
		logger.Fatal("failed to init document store", zap.Error(err))
	}

	caseRepo := repository.NewCaseRepository(store, cfg.Dynamo.CasesTable)
	userRepo := repository.NewUserRepository(store, cfg.Dynamo.UsersTable)

	caseService := service.NewCaseService(caseRepo, logger)
	userService := service.NewUserService(userRepo, logger)

	uploadService, err := service.NewUploadService(ctx, cfg.Dynamo.Region, cfg.Upload, logger)
	if err != nil {
		logger.Fatal("failed to init upload service", zap.Error(err))
	}

	// Identity provider configuration may be absent; authentication then
	// fails closed with 401 rather than failing open.
	var verifier auth.TokenVerifier
	if v, err := auth.NewCognitoVerifier(cfg.Cognito); err != nil {
		logger.Warn("token verifier unavailable, authenticated requests will be rejected", zap.Error(err))
	} else {
		verifier = v
	}
	authMiddleware := auth.NewMiddleware(verifier, logger)

	var subscriptionService *service.SubscriptionService
	if stripeClient, err := billing.New(cfg.Stripe, logger); err != nil {
		logger.Warn("payment processor unavailable", zap.Error(err))
	} else {
		subscriptionService = service.NewSubscriptionService(stripeClient, userService, logger)
	}

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(store),
		Cases:    handlers.NewCasesHandler(caseService),
		Users:    handlers.NewUsersHandler(userService, subscriptionService),
		Uploads:  handlers.NewUploadsHandler(uploadService),
		Webhooks: handlers.NewWebhooksHandler(subscriptionService, cfg.Stripe.WebhookSecret, logger),
		Auth:     authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()

	requests, errs := metrics.Snapshot()
	logger.Info("request totals",
		zap.Any("requests", requests),
		zap.Any("errors", errs))
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
