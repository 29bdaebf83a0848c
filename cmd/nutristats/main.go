package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	adapthttp "nutristats/internal/adapter/http"
	"nutristats/internal/adapter/memory"
	"nutristats/internal/adapter/postgres"
	"nutristats/internal/app"
	"nutristats/internal/config"
	"nutristats/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback, _ := zap.NewDevelopment()
		fallback.Sugar().Fatalw("load config", "error", err)
	}

	log := buildLogger(cfg.LogMode)
	defer func() { _ = log.Sync() }()

	var (
		consumptions domain.ConsumptionRepository
		statistics   domain.StatisticsRepository
		profiles     domain.ProfileRepository
	)
	switch cfg.Store {
	case "memory":
		db := memory.New()
		consumptions, statistics, profiles = db, db, db
		log.Warnw("using in-memory store, data will not survive a restart")
	default:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalw("db open", "error", err)
		}
		defer func() { _ = db.Close() }()
		consumptions, statistics, profiles = db, db, db
	}

	var authSvc *app.AuthService
	if cfg.OIDC.Disabled {
		log.Warnw("auth disabled, trusting X-User-ID header")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		authSvc, err = app.NewAuthService(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID)
		cancel()
		if err != nil {
			log.Fatalw("oidc setup", "issuer", cfg.OIDC.Issuer, "error", err)
		}
	}

	statsSvc := app.NewStatisticsService(consumptions, statistics, log, time.Now)
	weightSvc := app.NewWeightService(statistics, profiles, log, time.Now)
	consSvc := app.NewConsumptionService(consumptions, time.Now)

	h := adapthttp.New(statsSvc, weightSvc, consSvc, authSvc, log).Handler()
	log.Infow("listening", "addr", cfg.Addr, "store", cfg.Store)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalw("server", "error", err)
	}
}

func buildLogger(mode string) *zap.SugaredLogger {
	var zcfg zap.Config
	switch mode {
	case "prod", "production":
		zcfg = zap.NewProductionConfig()
	default:
		zcfg = zap.NewDevelopmentConfig()
	}
	logger, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	return logger.Sugar()
}
