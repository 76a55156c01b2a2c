package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/infrastructure/config"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/infrastructure/logging"
	"github.com/hansfischmann-pm/planner-test-sub004/internal/server"
)

func main() {
	port := flag.String("port", "", "Server port (overrides env)")
	configPath := flag.String("config", "", "Optional YAML config file")
	storageDir := flag.String("storage", "", "Layout session directory (overrides env)")
	dev := flag.Bool("dev", false, "Development mode: colored logs, debug level")
	flag.Parse()

	cfg, err := config.LoadWithFile(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *storageDir != "" {
		cfg.Storage.Path = *storageDir
	}
	if *dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	srv := server.New(cfg, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	case err := <-errChan:
		logger.Fatal("server error", zap.Error(err))
	}
}
