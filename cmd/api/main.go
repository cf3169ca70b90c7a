package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
	"github.com/oklog/run"

	"hotelbooking/internal/app"
	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	applog "hotelbooking/internal/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := applog.New(cfg.LogLevel)
	if err := serve(cfg, logger); err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
}

func serve(cfg *config.Config, logger log.Logger) error {
	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := database.Migrate(db, domain.Models()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	a := app.New(cfg, db, logger)

	var g run.Group
	{
		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           a.Router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Add(func() error {
			level.Info(logger).Log("msg", "api listening", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}, func(error) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				level.Error(logger).Log("msg", "api shutdown", "err", err)
			}
		})
	}
	{
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           a.Metrics.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Add(func() error {
			level.Info(logger).Log("msg", "metrics listening", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}, func(error) {
			_ = srv.Close()
		})
	}
	g.Add(run.SignalHandler(context.Background(), syscall.SIGINT, syscall.SIGTERM))

	err = g.Run()
	var sig run.SignalError
	if errors.As(err, &sig) {
		level.Info(logger).Log("msg", "shutting down", "signal", sig.Signal)
		return nil
	}
	return err
}
