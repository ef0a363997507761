package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"transferbff/docs"
	"transferbff/internal/auth"
	"transferbff/internal/cache"
	"transferbff/internal/client"
	"transferbff/internal/config"
	"transferbff/internal/db"
	"transferbff/internal/handler"
	"transferbff/internal/repository"
	"transferbff/internal/router"
	"transferbff/internal/service"
	"transferbff/internal/telemetry"
)

// @title Transfer BFF API
// @version 1.0
// @description Transfer API with fee calculation, customer lookups and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger := telemetry.InitLogger(cfg.ServiceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Error("tracer init", slog.Any("error", err))
		os.Exit(1)
	}
	defer shutdownTracer()

	gormDB, err := db.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		logger.Error("database init", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			logger.Warn("failed to drop tables", slog.Any("error", err))
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		logger.Error("migrate", slog.Any("error", err))
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.KeyPrefix)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, customer cache disabled until it recovers", slog.Any("error", err))
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(gormDB)
	transferRepo := repository.NewTransferRepository(gormDB)

	// Initialize services
	customerService := service.NewCustomerService(customerRepo, cacheClient)

	var directory client.CustomerDirectory
	if cfg.CustomerService.URL != "" {
		directory = client.NewCustomerClient(cfg.CustomerService.URL, cfg.CustomerService.Timeout)
		logger.Info("using remote customer directory", slog.String("url", cfg.CustomerService.URL))
	} else {
		directory = service.NewLocalCustomerDirectory(customerService)
		logger.Info("using local customer directory")
	}
	transferService := service.NewTransferService(transferRepo, directory)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	router.Register(e, jwtService, router.Handlers{
		Transfer: handler.NewTransferHandler(transferService),
		Customer: handler.NewCustomerHandler(customerService),
		Seed:     handler.NewSeedHandler(customerRepo),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	logger.Info("swagger documentation available",
		slog.String("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html"))

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("server starting", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			logger.Error("server start", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
}
