package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dgallion1/scriptcoach/internal/api"
	"github.com/dgallion1/scriptcoach/internal/coach"
	"github.com/dgallion1/scriptcoach/internal/config"
	"github.com/dgallion1/scriptcoach/internal/feedback"
	"github.com/dgallion1/scriptcoach/internal/mcptools"
	"github.com/dgallion1/scriptcoach/internal/observe"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := config.LoadDotEnv(); err != nil {
		log.Error("failed to load .env", "error", err)
		os.Exit(1)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	catalog, err := feedback.LoadCatalog(cfg.TemplatesFile)
	if err != nil {
		log.Error("failed to load feedback templates", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry.
	shutdownTelemetry, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceVersion: cfg.ServiceVersion,
	})
	if err != nil {
		log.Error("failed to init telemetry", "error", err)
		os.Exit(1)
	}
	metrics := observe.DefaultMetrics()
	stats := observe.NewReviewStats(cfg.StatsWindow)

	c := coach.New(cfg, catalog, metrics, stats, log)

	// MCP over streamable HTTP. Reading files by path stays disabled here.
	tools := &mcptools.Tools{Coach: c, Metrics: metrics, MaxBytes: cfg.MaxUploadBytes}
	mcpServer := mcptools.NewServer(tools, cfg.ServiceVersion)
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, &mcp.StreamableHTTPOptions{Stateless: true, JSONResponse: true})

	srv := api.NewServer(c, mcpHandler, metrics, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown", "error", err)
		}
	}()

	log.Info("starting scriptcoach",
		"port", cfg.Port,
		"version", cfg.ServiceVersion,
		"auth", cfg.APIKey != "",
		"templates", cfg.TemplatesFile,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
