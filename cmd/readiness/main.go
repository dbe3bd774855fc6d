package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/Readiness/internal/api"
	"github.com/MikeSquared-Agency/Readiness/internal/catalog"
	"github.com/MikeSquared-Agency/Readiness/internal/config"
	"github.com/MikeSquared-Agency/Readiness/internal/hermes"
	"github.com/MikeSquared-Agency/Readiness/internal/mirror"
	"github.com/MikeSquared-Agency/Readiness/internal/scoring"
	"github.com/MikeSquared-Agency/Readiness/internal/sheets"
	"github.com/MikeSquared-Agency/Readiness/internal/store"
	"github.com/MikeSquared-Agency/Readiness/internal/telemetry"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing (optional)
	shutdownTracing, err := telemetry.InitTracing(ctx, telemetry.Config{
		Endpoint:       cfg.Tracing.Endpoint,
		Insecure:       cfg.Tracing.Insecure,
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: version,
		SampleRate:     cfg.Tracing.SampleRate,
	})
	if err != nil {
		logger.Warn("failed to start tracing, continuing without", "error", err)
		shutdownTracing = func(context.Context) error { return nil }
	}

	// Database and catalog
	db, tools, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("storage ready", "driver", cfg.Database.Driver)

	lookup := catalog.NewRetrying(tools, cfg.Catalog.MaxTries, cfg.CatalogBackoff(), logger)

	engine, err := scoring.NewEngine(scoring.DefaultConfig(), lookup, logger)
	if err != nil {
		logger.Error("failed to build scoring engine", "error", err)
		os.Exit(1)
	}

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// Sheet mirror (optional, needs hermes)
	if cfg.Sheets.Enabled && hermesClient != nil {
		sheetClient := sheets.NewHTTPClient(cfg.Sheets.BaseURL, cfg.Sheets.SpreadsheetID, cfg.Sheets.Range, cfg.Sheets.Token)
		worker := mirror.New(hermesClient, sheetClient, cfg.SheetsTimeout(), logger)
		if err := worker.SetupSubscriptions(); err != nil {
			logger.Warn("failed to subscribe sheet mirror", "error", err)
		} else {
			logger.Info("sheet mirror started", "spreadsheet_id", cfg.Sheets.SpreadsheetID)
		}
	} else if cfg.Sheets.Enabled {
		logger.Warn("sheet mirror enabled but hermes is unavailable, mirror disabled")
	}

	// API server
	router := api.NewRouter(engine, db, lookup, hermesClient, cfg, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(db),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown", "error", err)
	}

	logger.Info("shutdown complete")
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}
	if cfg.Logging.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// openStorage connects the assessment store and the tool catalog for the
// configured driver. Both share one connection.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, catalog.Catalog, error) {
	if cfg.Database.Driver == config.DriverPostgres {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		return pg, catalog.NewPostgresCatalog(pg.Pool()), nil
	}

	sqlDB, err := store.OpenSQLite(cfg.Database.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.NewSQLiteStore(ctx, sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	c, err := catalog.NewSQLiteCatalog(ctx, sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	if cfg.Database.SeedCatalog {
		n, err := c.Count(ctx)
		if err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("count catalog: %w", err)
		}
		if n == 0 {
			if err := c.Seed(ctx, catalog.DefaultTools()); err != nil {
				sqlDB.Close()
				return nil, nil, err
			}
			logger.Info("seeded tool catalog", "tools", len(catalog.DefaultTools()))
		}
	}
	return s, c, nil
}
