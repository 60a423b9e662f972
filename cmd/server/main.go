package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/assistantcoach/coach-api/internal/config"
	"github.com/assistantcoach/coach-api/internal/dataset"
	"github.com/assistantcoach/coach-api/internal/grid"
	"github.com/assistantcoach/coach-api/internal/handlers"
	"github.com/assistantcoach/coach-api/internal/logic"
	"github.com/assistantcoach/coach-api/internal/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	store := dataset.NewStore(func(game string) ([]models.MatchStatRow, error) {
		return dataset.LoadGame(cfg.DataDir, game)
	}, logger)
	if err := store.Preload(cfg.DefaultGame); err != nil {
		sugar.Fatalw("Failed to load default dataset", "game", cfg.DefaultGame, "dataDir", cfg.DataDir, "error", err)
	}

	gridClient := grid.NewClient(cfg.GridBaseURL, cfg.GridAPIKey, cfg.GridTimeout)
	if !gridClient.Configured() {
		sugar.Infow("GRID_API_KEY not set, live match ingestion disabled")
	}

	h := handlers.New(handlers.Config{
		Store:       store,
		Grid:        gridClient,
		Logger:      logger,
		DefaultGame: cfg.DefaultGame,
		Analysis:    logic.NewAnalysisService(store, cfg.RecentWindow),
		Review:      logic.NewReviewService(store),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Routes(cfg.AllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		sugar.Infow("Server starting", "port", cfg.Port, "env", cfg.Env, "defaultGame", cfg.DefaultGame)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Graceful shutdown failed", "error", err)
	}
	sugar.Info("Server stopped")
}
