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

	"github.com/joho/godotenv"

	"stockledger/config"
	"stockledger/internal/app"
	"stockledger/internal/pkg/logger"
)

func main() {
	// The .env file is optional; variables may come from the environment
	// (e.g. Docker).
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env not found, using the process environment only")
	}

	cfg := config.LoadConfig()
	logr := logger.NewLogger(logger.Config{Env: cfg.Environment, Level: cfg.LogLevel})
	logr.Info("configuration loaded", map[string]interface{}{"driver": cfg.DBDriver, "auth": cfg.AuthEnabled()})

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to start stockledger", err)
	}
	defer a.Close()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.HTTPHandler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logr.Info("stockledger listening", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logr.Info("shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Error("forced server shutdown", err)
	}
	logr.Info("server stopped", nil)
}
