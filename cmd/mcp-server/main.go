// cmd/mcp-server/main.go — HTTP MCP server for gosimp
//
// Exposes the gosimp tools as an HTTP endpoint for AI agent frameworks.
//
// Usage:
//
//	go run ./cmd/mcp-server -config gosimp.yaml
//
// Tool call endpoint: POST /tool
// Batch endpoint:     POST /batch
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
// Metrics endpoint:   GET  /metrics
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/njchilds90/gosimp/internal/config"
	"github.com/njchilds90/gosimp/internal/telemetry"
	"github.com/njchilds90/gosimp/internal/tools"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (default: $GOSIMP_CONFIG or ./gosimp.yaml)")
	addr := flag.String("addr", "", "Listen address, overrides server.addr")
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		fmt.Fprintln(os.Stderr, "mcp-server:", err)
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logger := telemetry.NewLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Error("tracer shutdown failed", "error", err)
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	dispatcher := tools.NewDispatcher(
		tools.WithLogger(logger),
		tools.WithMaxBatch(cfg.Engine.MaxBatch),
		tools.WithWorkers(cfg.Engine.BatchWorkers),
	)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(newServer(dispatcher, logger, cfg.Server.MaxBodyBytes)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("gosimp MCP server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}
