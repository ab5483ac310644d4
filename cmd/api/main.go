package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"rocketcart/internal/config"
	"rocketcart/internal/domain/model"
	"rocketcart/internal/handler"
	"rocketcart/internal/infra/db"
	infraRepo "rocketcart/internal/infra/repository"
	"rocketcart/internal/logger"
	"rocketcart/internal/server"
	"rocketcart/internal/telemetry"
	"rocketcart/internal/usecase"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(logger.Options{Service: "inventory-api", Env: cfg.GoEnv, Level: cfg.LogLevel, AddSource: true})
	if err != nil {
		panic(err)
	}
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Options{Service: "inventory-api", Version: "v1.0.0", Endpoint: cfg.OTelEndpoint})
	if err != nil {
		log.Error("tracing init failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracing shutdown failed", slog.Any("err", err))
		}
	}()

	//DB接続
	dsn := cfg.DatabaseURL
	if dsn == "" {
		dsn = db.DSN(cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode)
	}
	gormDB, err := db.Connect(dsn)
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	if err := gormDB.WithContext(ctx).AutoMigrate(&model.Product{}); err != nil {
		log.Error("migrate failed", slog.Any("err", err))
		os.Exit(1)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Error("db handle failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	//Repository / Usecase
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	productUC := usecase.NewProductUsecase(productRepo).WithTx(infraRepo.NewTxManagerGorm(gormDB))

	if cfg.SeedFile != "" {
		products, err := loadSeedFile(cfg.SeedFile)
		if err != nil {
			log.Error("seed file failed", slog.String("path", cfg.SeedFile), slog.Any("err", err))
			os.Exit(1)
		}
		if err := productUC.Seed(ctx, products); err != nil {
			log.Error("seed failed", slog.Any("err", err))
			os.Exit(1)
		}
		log.Info("seeded products", slog.Int("count", len(products)))
	}

	//Handler / Server
	productH := handler.NewProductHandler(productUC)
	e := server.New(log, productH, sqlDB.PingContext)

	if err := server.Start(ctx, e, cfg.Addr(), log); err != nil {
		log.Error("http server failed", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}
