package main

import (
	"context"
	"log/slog"
	"os"

	"transferbff/internal/auth"
	"transferbff/internal/config"
	"transferbff/internal/db"
	"transferbff/internal/repository"
	"transferbff/internal/seed"
	"transferbff/internal/telemetry"
)

func main() {
	cfg := config.Load()
	logger := telemetry.InitLogger(cfg.ServiceName+"-seed", cfg.LogLevel)
	ctx := context.Background()

	gormDB, err := db.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("connected to database", slog.String("driver", cfg.Database.Driver))

	if err := db.Migrate(gormDB); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	records, err := seed.Load(ctx, cfg.Seed.URL, cfg.Seed.File)
	if err != nil {
		logger.Error("failed to load customer feed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("loaded customer feed", slog.Int("records", len(records)))

	customerRepo := repository.NewCustomerRepository(gormDB)
	res, err := seed.Upsert(ctx, customerRepo, records)
	if err != nil {
		logger.Error("failed to seed customers", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("seed completed",
		slog.Int("created", res.Created),
		slog.Int("updated", res.Updated),
		slog.Int("skipped", res.Skipped),
	)

	if cfg.Seed.TokenEmail != "" {
		token, err := seed.IssueToken(ctx, customerRepo, auth.NewJWTService(cfg.JWTSecret), cfg.Seed.TokenEmail)
		if err != nil {
			logger.Error("failed to issue dev token", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("dev bearer token issued",
			slog.String("email", cfg.Seed.TokenEmail),
			slog.String("token", token),
		)
	}
}
