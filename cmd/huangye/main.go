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

	"github.com/joho/godotenv"

	"huangye/internal/api"
	"huangye/internal/web"
	"huangye/pkg/cache"
	"huangye/pkg/company"
	"huangye/pkg/config"
	"huangye/pkg/db"
	"huangye/pkg/export"
	"huangye/pkg/logging"
	"huangye/pkg/page"
	"huangye/pkg/places"
	"huangye/pkg/probe"
	"huangye/pkg/request"
	"huangye/pkg/store"
	"huangye/pkg/version"
)

var initConfig = flag.Bool("init-config", false, "Generate default config file and exit")

func main() {
	flag.Parse()

	// Handle --init-config flag
	if *initConfig {
		if err := config.GenerateDefault("configs/huangye.yaml"); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config file generated: configs/huangye.yaml")
		return
	}

	if err := run(context.Background(), "configs/huangye.yaml"); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Secrets live in .env, never in the config file.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("Huangye started", "version", version.Version, "addr", cfg.Server.Addr, "provider", cfg.Places.Provider, "live", cfg.Places.Enabled)

	// Startup checks: the company data file is required, local photos are
	// optional.
	results := probe.Run(ctx, []probe.Probe{
		probe.FileProbe("Company data", cfg.Data.CompaniesPath, true),
		probe.DirProbe("Place photos", cfg.Data.PhotoDir, false),
	})
	if err := probe.AnalyzeResults(results); err != nil {
		return fmt.Errorf("startup checks failed: %w", err)
	}

	dbConn, err := db.Init(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbConn.Close()
	st := store.NewSQLiteStore(dbConn)

	companies := company.NewStore(cfg.Data.CompaniesPath)

	placeSvc := initPlaces(cfg, companies)
	if cfg.Places.Prefetch && placeSvc.Enabled() {
		go placeSvc.PrefetchAll(ctx)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	exporters := initExporters(ctx, cfg)

	stream := api.NewStreamHandler()
	srv := api.NewServer(cfg.Server.Addr,
		api.NewPageHandler(companies, placeSvc, page.NewBuilder(placeSvc), renderer, cfg.Directory.PinnedCities),
		api.NewPhotoHandler(placeSvc),
		api.NewSubmitHandler(st, exporters, stream),
		api.NewSubmissionsHandler(st),
		stream,
	)

	return runServerLifecycle(ctx, srv)
}

// initPlaces builds the caching places service. The service always exists;
// a disabled or unknown provider just makes it cache-only.
func initPlaces(cfg *config.Config, companies *company.Store) *places.Service {
	var provider places.Provider
	if cfg.Places.Enabled {
		if cfg.Places.Key == "" {
			slog.Warn("Live places enabled but PLACES_API_KEY is empty, running cache-only")
		} else {
			reqClient := request.New(
				time.Duration(cfg.Request.Timeout),
				request.NewProviderBackoff(
					time.Duration(cfg.Request.Backoff.BaseDelay),
					time.Duration(cfg.Request.Backoff.MaxDelay)))

			switch cfg.Places.Provider {
			case "google":
				provider = places.NewGoogleProvider(reqClient, cfg.Places.Key)
			case "serpapi":
				provider = places.NewSerpAPIProvider(reqClient, cfg.Places.Key)
			case "searchapi":
				provider = places.NewSearchAPIProvider(reqClient, cfg.Places.Key)
			}
		}
	}

	return places.NewService(places.ServiceConfig{
		Provider:      provider,
		Disk:          cache.OpenDisk(cfg.Cache.DiskPath),
		PhotoDir:      cfg.Data.PhotoDir,
		TTL:           time.Duration(cfg.Cache.TTL),
		Companies:     companies,
		PrefetchDelay: time.Duration(cfg.Places.PrefetchDelay),
	})
}

// initExporters assembles the enabled submission mirrors. A sink that
// fails to initialize is skipped, never fatal.
func initExporters(ctx context.Context, cfg *config.Config) []export.Exporter {
	var exporters []export.Exporter

	if cfg.Export.Sheets.Enabled {
		if cfg.Export.Sheets.CredentialsFile == "" {
			slog.Warn("Sheets mirror enabled but SHEETS_CREDENTIALS_FILE is empty, skipping")
		} else {
			sheets, err := export.NewSheetsExporter(ctx,
				cfg.Export.Sheets.CredentialsFile,
				cfg.Export.Sheets.SpreadsheetID,
				cfg.Export.Sheets.SheetRange)
			if err != nil {
				slog.Error("Failed to initialize sheets exporter", "error", err)
			} else {
				exporters = append(exporters, sheets)
			}
		}
	}

	if cfg.Export.Feishu.Enabled {
		if cfg.Export.Feishu.AppID == "" || cfg.Export.Feishu.AppSecret == "" {
			slog.Warn("Feishu mirror enabled but app credentials are empty, skipping")
		} else {
			exporters = append(exporters, export.NewFeishuExporter(
				cfg.Export.Feishu.AppID,
				cfg.Export.Feishu.AppSecret,
				cfg.Export.Feishu.AppToken,
				cfg.Export.Feishu.TableID,
				""))
		}
	}

	return exporters
}

func runServerLifecycle(ctx context.Context, srv *http.Server) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	slog.Info("Starting server", "addr", srv.Addr)
	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case <-quit:
		slog.Info("Shutting down server...")
	case <-ctx.Done():
		slog.Info("Context cancelled, shutting down...")
	case err := <-serverErrors:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
