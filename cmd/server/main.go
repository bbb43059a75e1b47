package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ballknowledge/ballknowledge-go/internal/api"
	"github.com/ballknowledge/ballknowledge-go/internal/config"
	"github.com/ballknowledge/ballknowledge-go/internal/factory"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
		Daily:       &cfg.Daily,
		Scoring:     &cfg.Scoring,
		Anomaly:     &cfg.Anomaly,
		Suggest:     &cfg.Suggest,
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := cfg.Redis
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		Clock:              app.Clock,
		UserService:        app.UserService,
		DailyService:       app.DailyService,
		SessionController:  app.SessionController,
		StreakService:      app.StreakService,
		AnomalyDetector:    app.AnomalyDetector,
		HintService:        app.HintService,
		SuggestService:     app.SuggestService,
		LeaderboardService: app.LeaderboardService,
	})

	server := api.NewServer(router, cfg.Server, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
