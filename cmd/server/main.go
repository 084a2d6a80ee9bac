package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"wordisland/internal/config"
	"wordisland/internal/display"
	"wordisland/internal/handlers"
	"wordisland/internal/questgen"
	"wordisland/internal/security"
	"wordisland/internal/service"
	"wordisland/internal/store"
	"wordisland/internal/utils"
)

func main() {
	cfg := config.Load()

	logger, err := utils.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer st.Close()

	if cfg.TokenSecret == "change-me" {
		logger.Warn("TOKEN_SECRET is not set, player tokens use the default secret")
	}

	hub := display.NewHub(display.Durations{
		Toast:   cfg.ToastDuration,
		LevelUp: cfg.LevelUpDuration,
	})
	defer hub.Close()

	engine := service.NewEngine(st, service.PlayerOptions{
		Calendar:       service.NewCalendar(cfg.Location()),
		Provider:       questProvider(ctx, cfg, logger),
		MilestoneDelay: cfg.MilestoneToastDelay,
		Logger:         logger,
	}, func(playerID string) service.Notifier {
		return hub.For(playerID)
	})

	handler := handlers.NewRouter(handlers.Dependencies{
		Engine:  engine,
		Hub:     hub,
		Tokens:  security.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL),
		Limiter: security.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		Logger:  logger,
	})

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr), zap.String("store", cfg.StoreEngine))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}

// questProvider uses Gemini when an API key is configured and the built-in
// quest otherwise.
func questProvider(ctx context.Context, cfg *config.Config, logger *zap.Logger) questgen.Provider {
	if cfg.GeminiAPIKey == "" {
		logger.Info("GEMINI_API_KEY not set, daily quests use the default mission")
		return questgen.NewStaticProvider()
	}
	client, err := questgen.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logger.Error("gemini unavailable, daily quests use the default mission", zap.Error(err))
		return questgen.NewStaticProvider()
	}
	return questgen.NewGeminiProvider(client.Models, questgen.GeminiOptions{
		Model:      cfg.GeminiModel,
		Timeout:    cfg.QuestTimeout,
		MaxRetries: 2,
		RetryWait:  time.Second,
	}, logger)
}
