package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/countries/internal/config"
	"github.com/JonMunkholm/countries/internal/core"
	_ "github.com/JonMunkholm/countries/internal/core/views" // Register all views
	"github.com/JonMunkholm/countries/internal/dataset"
	"github.com/JonMunkholm/countries/internal/logging"
	"github.com/JonMunkholm/countries/internal/metrics"
	"github.com/JonMunkholm/countries/internal/web"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ds, source, err := dataset.Load(ctx, cfg.Dataset)
	if err != nil {
		slog.Error("failed to load dataset", "error", err, "hint", core.FormatUserError(err))
		os.Exit(1)
	}

	slog.Info("dataset loaded",
		"id", ds.ID(),
		"source", source,
		"records", ds.Len(),
		"languages", len(ds.Languages()),
	)

	if !ds.HasLanguage(core.Language(cfg.Web.DefaultLanguage)) {
		slog.Error("default language not in dataset",
			"language", cfg.Web.DefaultLanguage,
			"languages", ds.Languages(),
		)
		os.Exit(1)
	}

	slog.Info("views registered", "count", core.ViewCount(), "groups", len(core.Groups()))
	for _, group := range core.Groups() {
		slog.Debug("view group", "group", group, "views", len(core.ByGroup(group)))
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		m.SetDatasetRecords(ds.Len())
	}

	server := web.NewServer(core.NewEngine(ds), cfg, m)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server starting", "addr", cfg.Server.Addr())
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
