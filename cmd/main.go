package main

//
//  @title           ccpmargin API
//  @version         1.0
//  @description     Bilateral vs CCP margin simulation service for IRS and FX forward portfolios.
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        simulations
//  @tag.description Run margin simulations and query past runs
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/marginlab/ccpmargin/config"
	_ "github.com/marginlab/ccpmargin/docs" // swagger docs
	"github.com/marginlab/ccpmargin/internal/app"
	"github.com/marginlab/ccpmargin/internal/domain/dto"
	"github.com/marginlab/ccpmargin/internal/domain/models"
	"github.com/marginlab/ccpmargin/internal/ingestion"
	"github.com/marginlab/ccpmargin/internal/logger"
	"github.com/marginlab/ccpmargin/internal/service"
	"github.com/marginlab/ccpmargin/internal/storage"
)

// startServer starts the HTTP server in a goroutine and returns it so the
// caller can shut it down gracefully.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown blocks until SIGINT/SIGTERM, then drains the server and
// runs the cleanup callback.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runOnce executes one simulation from CSV files on disk and writes
// results.json into outdir.
func runOnce(ctx context.Context, tradesPath, ratesPath, fxPath, outdir string, persist bool, sc models.Scenario) error {
	in, err := ingestion.LoadFiles(ctx, tradesPath, ratesPath, fxPath)
	if err != nil {
		return err
	}

	var repo storage.SnapshotRepository
	if persist {
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		repo = storage.NewSnapshotRepository(db)
	}

	snap, err := service.NewSimulationService(repo).Run(ctx, in, sc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outdir, 0755); err != nil {
		return err
	}
	out, err := json.MarshalIndent(dto.NewSnapshotResponse(snap), "", "  ")
	if err != nil {
		return err
	}
	target := filepath.Join(outdir, "results.json")
	if err := os.WriteFile(target, out, 0644); err != nil {
		return err
	}

	logger.L().Info().Str("run_id", snap.RunID).Str("file", target).Msg("results written")
	return nil
}

// main is the entry point.
//
// Modes (selected via --mode flag):
//   - run: one-shot simulation from CSV files, results written to --outdir.
//   - api: REST API exposing simulations over HTTP.
func main() {
	ctx := context.Background()

	config.LoadConfig()
	logger.Init()

	mode := flag.String("mode", "run", "Mode: run or api")
	trades := flag.String("trades", "./data/trades.csv", "Trades CSV file")
	rates := flag.String("rates", "./data/rates.csv", "Rates history CSV file")
	fx := flag.String("fx", "./data/fx.csv", "FX spot history CSV file")
	outdir := flag.String("outdir", "./out", "Directory for results.json")
	persist := flag.Bool("persist", false, "Also store the snapshot in PostgreSQL")
	stressMult := flag.Float64("stress-mult", config.AppConfig.Scenario.StressMult, "P&L stress multiplier")
	concThreshold := flag.Float64("conc-threshold", config.AppConfig.Scenario.ConcThreshold, "Gross notional concentration threshold (0 disables)")
	concAddonPct := flag.Float64("conc-addon-pct", config.AppConfig.Scenario.ConcAddonPct, "IM add-on fraction applied above the threshold")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "run":
		sc := models.Scenario{
			StressMult:    *stressMult,
			ConcThreshold: *concThreshold,
			ConcAddonPct:  *concAddonPct,
		}
		if err := runOnce(ctx, *trades, *rates, *fx, *outdir, *persist, sc); err != nil {
			logger.L().Fatal().Err(err).Msg("simulation failed")
		}

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
