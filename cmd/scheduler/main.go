package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"vaccine-scheduler/internal/auth"
	"vaccine-scheduler/internal/cli"
	"vaccine-scheduler/internal/config"
	"vaccine-scheduler/internal/logger"
	"vaccine-scheduler/internal/scheduler"
	"vaccine-scheduler/internal/store"
	"vaccine-scheduler/internal/store/memory"
	"vaccine-scheduler/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Fatal("config", "error", err)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "vaccine-scheduler"})

	st := openStore(cfg, log)
	defer st.Close()

	svc := scheduler.New(st,
		auth.NewTokens(cfg.SessionSecret, cfg.SessionTTL),
		auth.NewLoginLimiter(cfg.LoginRate, cfg.LoginBurst),
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- cli.New(svc, os.Stdin, os.Stdout, log).Run(ctx)
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-done:
		if err != nil {
			log.Error("input", "error", err)
		}
	case sig := <-ch:
		log.Info("shutting down", "signal", sig.String())
	}
}

func openStore(cfg *config.Config, log *logger.Logger) store.Store {
	if cfg.StoreDriver == config.DriverMemory {
		log.Warn("using in-memory store; nothing is persisted")
		return memory.New()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBConnTimeout)
	defer cancel()

	pg, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("cannot connect to database", "error", err)
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		log.Fatal("cannot prepare schema", "error", err)
	}
	log.Info("connected to postgres")
	return pg
}
