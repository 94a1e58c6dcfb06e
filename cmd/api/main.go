package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"orr-overpotential/internal/config"
	"orr-overpotential/internal/electrochem"
	"orr-overpotential/internal/observability"
	"orr-overpotential/internal/server"
)

func main() {

	ctx := context.Background()

	// Config
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	level := cfg.LogLevel
	if level == "" {
		level = "info"
	}
	err = observability.InitLogger(level)
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing, OTLP logs, metrics
	telemetryShutdown, err := initTelemetry(ctx, cfg.OTLPEnabled)
	if err != nil {
		panic(err)
	}
	defer telemetryShutdown(ctx)

	// Engine defaults and presets
	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		panic(err)
	}
	presets, err := config.LoadPresets(cfg.PresetsFile)
	if err != nil {
		panic(err)
	}

	// Router
	router := server.NewRouter(electrochem.NewService(engineCfg, presets))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", cfg.Addr),
			zap.String("reaction_type", engineCfg.ReactionType.String()),
			zap.Float64("equilibrium_potential", engineCfg.EquilibriumPotential),
			zap.Int("presets", presets.Len()),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	waitForShutdown(srv, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("server shutdown", zap.Error(err))
	}
}
