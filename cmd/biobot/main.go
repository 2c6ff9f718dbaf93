package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"biobot/internal/bot"
	"biobot/internal/config"
	"biobot/internal/logger"
	"biobot/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Ошибка конфигурации: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("❌ Ошибка логгера: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("бот остановлен с ошибкой", zap.Error(err))
	}
	lg.Info("бот остановлен")
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return err
	}

	repo := repository.New(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	lg.Info("база данных готова", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return err
	}
	api.Debug = cfg.BotDebug

	b := bot.New(api, repo, lg, loc)
	if err := b.StartDigest(ctx, cfg.DigestSchedule); err != nil {
		return err
	}
	return b.Start(ctx)
}
