// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/natemartinsf/auto-bean/cliparse"
	"github.com/natemartinsf/auto-bean/db"
	"github.com/natemartinsf/auto-bean/logger"
	"github.com/natemartinsf/auto-bean/ratelimit"
	"github.com/natemartinsf/auto-bean/router"
	"github.com/natemartinsf/auto-bean/scope"
	"github.com/natemartinsf/auto-bean/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger.New(logger.Config{
		Writer: os.Stdout,
		Format: cfg.LogFormat,
		Level:  logger.ParseLevel(cfg.LogLevel),
	}))

	// Connect and verify
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	if _, err := scope.Bootstrap(context.Background(), store.New(dbConn), cfg.BootstrapAdminEmail, cfg.BootstrapOrgName); err != nil {
		slog.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}

	limiter := ratelimit.New(cfg.VoteRateLimit, cfg.VoteRateBurst)
	defer limiter.Stop()

	// Create server
	server := http.Server{
		Handler:           router.NewRouter(dbConn, cfg, limiter),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		// Wait for Ctrl-C signal, then drain in-flight requests
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "auth_model", cfg.AuthModel, "base_url", cfg.BaseURL)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
		return
	}
	<-drained
	slog.Info("Server closed")
}
