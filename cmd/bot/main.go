package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"topupbot/internal/bot"
	"topupbot/internal/config"
	"topupbot/internal/model"
	"topupbot/internal/store"
)

const livenessBody = "🚀 Topup Admin Bot Running"

func main() {
	// 1. Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	// 2. Logger
	logger, err := newLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	// 3. Store backend
	ctx := context.Background()
	st, cleanup, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("store init failed", zap.Error(err))
	}
	defer cleanup()

	// 4. Dispatcher + bot
	registry := model.NewRegistry(cfg.Categories)
	dispatcher := bot.NewDispatcher(st, registry, logger)

	b, err := bot.New(bot.Config{Token: cfg.TelegramToken, WebhookURL: cfg.WebhookURL}, dispatcher, logger)
	if err != nil {
		logger.Fatal("bot init failed", zap.Error(err))
	}

	// 5. Liveness endpoint, plus the webhook mount when configured
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, livenessBody)
	})
	if wh := b.Webhook(); wh != nil {
		mux.Handle("/bot"+cfg.TelegramToken, wh)
	}
	go func() {
		addr := ":" + cfg.ListenPort
		logger.Info("http server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	b.Start()
}

func newLogger(appEnv string) (*zap.Logger, error) {
	if appEnv == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newStore picks Firebase when credentials are configured, the local
// sqlite backend otherwise.
func newStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Client, func(), error) {
	if cfg.FirebaseCredentials != "" && cfg.FirebaseDBURL != "" {
		st, err := store.NewFirebaseStore(ctx, []byte(cfg.FirebaseCredentials), cfg.FirebaseDBURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using firebase store", zap.String("url", cfg.FirebaseDBURL))
		return st, func() {}, nil
	}

	st, err := store.NewSQLiteStore(cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("using local sqlite store", zap.String("path", cfg.SQLitePath))
	return st, func() { st.Close() }, nil
}
