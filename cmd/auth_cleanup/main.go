package main

import (
	"context"
	"os"
	"time"

	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain/auth"
	applog "hotelbooking/internal/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := applog.New(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		level.Error(logger).Log("msg", "db connect failed", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := auth.NewUserRepository(db).ClearExpiredResetTokens(ctx, time.Now())
	if err != nil {
		level.Error(logger).Log("msg", "cleanup reset tokens failed", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "auth cleanup completed", "reset_tokens", n)
}
