package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/client-service/internal/api/http"
	"github.com/spec-kit/client-service/internal/api/http/handlers"
	"github.com/spec-kit/client-service/internal/config"
	"github.com/spec-kit/client-service/internal/directory"
	"github.com/spec-kit/client-service/internal/events"
	"github.com/spec-kit/client-service/internal/observability"
	"github.com/spec-kit/client-service/internal/persistence"
	"github.com/spec-kit/client-service/internal/repository"
	"github.com/spec-kit/client-service/internal/service"
	"github.com/spec-kit/client-service/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Configured() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var clientRepo repository.ClientRepository
	if pg.Configured() {
		clientRepo = repository.NewPostgresClientRepository(pg.PoolHandle())
	} else {
		clientRepo = repository.NewMemoryClientRepository()
	}

	// One long-lived HTTP client shared read-only across requests.
	directoryClient := directory.NewHTTPClient(cfg.Directory, &http.Client{
		Timeout: cfg.Directory.Timeout(),
	}, logger)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	clientService := service.NewClientService(service.ClientDependencies{
		ClientRepo: clientRepo,
		Directory:  directoryClient,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	clientsHandler := handlers.NewClientsHandler(clientService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  healthHandler,
		Clients: clientsHandler,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
