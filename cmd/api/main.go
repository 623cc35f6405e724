package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "cremacao_pet/docs"
	"cremacao_pet/internal/adapter/http/handlers"
	"cremacao_pet/internal/adapter/http/routes"
	"cremacao_pet/internal/adapter/persistence/repository"
	"cremacao_pet/internal/domain/entities"
	"cremacao_pet/internal/infrastructure/cache"
	"cremacao_pet/internal/infrastructure/config"
	"cremacao_pet/internal/infrastructure/database"
	"cremacao_pet/internal/infrastructure/logger"
	"cremacao_pet/internal/infrastructure/metrics"
	"cremacao_pet/internal/infrastructure/notification"
	"cremacao_pet/internal/infrastructure/scheduler"
	"cremacao_pet/internal/usecase"
	"cremacao_pet/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Cremação Pet API
// @version         1.0
// @description     Pet cremation removal service: intake, pickup, financial review, cremation and delivery.

// @contact.name   API Support

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Role
// @in header
// @name X-User-Role
// @description Caller role (receptor, motorista, operacional, financeiro_junior, financeiro_master, admin, cliente).

type repositories struct {
	removals interfaces.IRemovalRepository
	batches  interfaces.ICremationBatchRepository
	stock    interfaces.IStockRepository
	prices   interfaces.IPriceRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String("service", cfg.App.Name), zap.String("env", cfg.App.Env))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := buildRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal("storage unavailable", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	locker := buildLocker(ctx, cfg, log)

	messenger, err := notification.NewWhatsAppMessenger(cfg.WhatsApp, log)
	if err != nil {
		log.Warn("whatsapp messenger not configured, driver messages disabled", zap.Error(err))
	}

	m := metrics.NewPrometheus()
	inbox := notification.NewInbox(0, log)

	store := usecase.NewRemovalStore(repos.removals, repos.prices, inbox, m, log)
	stock := usecase.NewStockUseCase(repos.stock, inbox, m, log)
	var driverMessenger interfaces.IMessenger
	if messenger != nil {
		driverMessenger = messenger
	}
	transitions := usecase.NewTransitionUseCase(store, repos.prices, stock, driverMessenger, locker, m, log, usecase.TransitionOptions{
		DailyDeliveryCapacity: cfg.Delivery.DailyCapacity,
	})
	batches := usecase.NewCremationBatchUseCase(repos.batches, store, inbox, m, log)
	prices := usecase.NewPriceTableUseCase(repos.prices, log)
	lotes := usecase.NewBillingLoteUseCase(store, m, log)

	router := routes.NewRouter(routes.Handlers{
		Removals:      handlers.NewRemovalHandler(store, transitions, log),
		Batches:       handlers.NewCremationBatchHandler(batches, log),
		Stock:         handlers.NewStockHandler(stock, log),
		Prices:        handlers.NewPriceTableHandler(prices, log),
		Lotes:         handlers.NewBillingLoteHandler(lotes, log),
		Notifications: handlers.NewNotificationHandler(inbox, log),
	}, log, m)

	var runner *scheduler.SweepRunner
	if cfg.Scheduler.Enabled {
		sweep := usecase.NewSchedulingSweep(store, m, log, cfg.Location(), cfg.Scheduler.Window)
		runner = scheduler.NewSweepRunner(sweep, locker, cfg.Scheduler.Interval, log)
		runner.Start(ctx)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to startup the application", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if runner != nil {
		if err := runner.Stop(shutdownCtx); err != nil {
			log.Warn("sweep runner did not stop cleanly", zap.Error(err))
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", zap.Error(err))
	}
}

func buildRepositories(ctx context.Context, cfg *config.Config, log *zap.Logger) (repositories, error) {
	if cfg.Storage.Driver != config.StorageDynamoDB {
		log.Info("using in-memory storage")
		return repositories{
			removals: repository.NewRemovalMemoryRepository(),
			batches:  repository.NewCremationBatchMemoryRepository(),
			stock:    repository.NewStockMemoryRepository(),
			prices:   repository.NewPriceMemoryRepository(entities.NewPriceTable()),
		}, nil
	}

	ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
	if err != nil {
		return repositories{}, err
	}
	log.Info("using dynamodb storage", zap.String("region", cfg.DynamoDB.Region), zap.String("endpoint", cfg.DynamoDB.Endpoint))
	return repositories{
		removals: repository.NewRemovalDynamoRepository(ddb, cfg.DynamoDB.RemovalsTable, cfg.DynamoDB.HistoryTable),
		batches:  repository.NewCremationBatchDynamoRepository(ddb, cfg.DynamoDB.BatchesTable),
		stock:    repository.NewStockDynamoRepository(ddb, cfg.DynamoDB.StockTable),
		prices:   repository.NewPriceDynamoRepository(ddb, cfg.DynamoDB.PricesTable),
	}, nil
}

// buildLocker prefers Redis so several instances share the sweep and delivery locks.
func buildLocker(ctx context.Context, cfg *config.Config, log *zap.Logger) interfaces.ILocker {
	if !cfg.RedisEnabled() {
		return cache.NewMemoryLocker(cfg.Redis.LockTTL)
	}
	client, err := cache.NewRedisClient(ctx, cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Warn("redis unavailable, using in-process lock", zap.String("addr", cfg.RedisAddr()), zap.Error(err))
		return cache.NewMemoryLocker(cfg.Redis.LockTTL)
	}
	owner, _ := os.Hostname()
	return cache.NewRedisLocker(client, cfg.Redis, owner+"-"+uuid.NewString())
}
