package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	debiadapter "github.com/debipro/checkout-service/internal/adapters/debi"
	"github.com/debipro/checkout-service/internal/adapters/postgres"
	"github.com/debipro/checkout-service/internal/config"
	"github.com/debipro/checkout-service/internal/domain"
	checkoutHandler "github.com/debipro/checkout-service/internal/handlers/checkout"
	checkoutService "github.com/debipro/checkout-service/internal/services/checkout"
	pkghttp "github.com/debipro/checkout-service/pkg/http"
	"github.com/debipro/checkout-service/pkg/logging"
	"github.com/debipro/checkout-service/pkg/observability"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	zapLogger := initLogger(cfg.Logger)
	defer func() { _ = zapLogger.Sync() }()
	logger := logging.NewZapLogger(zapLogger)

	zapLogger.Info("starting checkout service",
		zap.Bool("sandbox_mode", cfg.Provider.SandboxMode),
		zap.Int("port", cfg.Server.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.ConnectionString())
	if err != nil {
		zapLogger.Fatal("connect to database", zap.Error(err))
	}
	defer pool.Close()

	httpClient := pkghttp.NewHTTPClient(
		pkghttp.ProviderClientConfig(),
		time.Duration(cfg.Provider.Timeout)*time.Second,
	)
	gateway := debiadapter.NewClient(cfg.Provider.Token(), cfg.Provider.SandboxMode, httpClient, logger)

	orders := postgres.NewOrderRepository(pool)
	cart := postgres.NewCartStore(pool)
	profile := postgres.NewCustomerProfileStore(pool)
	financing := postgres.NewProductFinancingRepository(pool)

	returnURL := func(order *domain.Order) string {
		return cfg.Checkout.ReturnURLBase + "/" + order.ID
	}

	service := checkoutService.NewService(orders, cart, profile, financing, gateway, logger, returnURL)

	if !cfg.Logger.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	checkoutHandler.NewHandler(service, logger).RegisterRoutes(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	metricsServer := observability.StartMetricsServer(fmt.Sprintf(":%d", cfg.Server.MetricsPort))

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("http server shutdown", zap.Error(err))
	}
	if err := observability.ShutdownMetricsServer(metricsServer); err != nil {
		zapLogger.Error("metrics server shutdown", zap.Error(err))
	}
}

func initLogger(cfg config.LoggerConfig) *zap.Logger {
	var zapCfg zap.Config
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
