package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/newthinker/navscope/internal/analytics"
	"github.com/newthinker/navscope/internal/app"
	"github.com/newthinker/navscope/internal/catalog"
	"github.com/newthinker/navscope/internal/config"
	"github.com/newthinker/navscope/internal/logger"
	"github.com/newthinker/navscope/internal/metrics"
	"github.com/newthinker/navscope/internal/provider"
	"github.com/newthinker/navscope/internal/provider/amfi"
	"github.com/newthinker/navscope/internal/provider/cached"
	"github.com/newthinker/navscope/internal/provider/mfapi"
	"github.com/newthinker/navscope/internal/report"
	"github.com/newthinker/navscope/internal/storage/archive"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env holds everything a command needs, built from config and flags
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	metrics  *metrics.Registry
	store    archive.Storage
	analyzer *app.Analyzer
	catalog  *catalog.Catalog
	printer  *report.Renderer
}

func loadConfig(cmd *cobra.Command) (*config.Config, bool, error) {
	var cfg *config.Config
	var err error

	fromFile := cfgFile != ""
	if fromFile {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, false, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
	}

	if cmd.Flags().Changed("format") {
		cfg.Report.Format = format
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, false, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, fromFile, nil
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, fromFile, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	// Initialize logger
	log, err := logger.New(logger.Options{
		Development: debug,
		Level:       cfg.Log.Level,
		Encoding:    cfg.Log.Encoding,
	})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	if !fromFile {
		log.Debug("no config file specified, using defaults")
	}

	e := &env{
		cfg:     cfg,
		log:     log,
		metrics: metrics.NewRegistry(),
	}

	client := mfapi.New(cfg.Provider.BaseURL, cfg.Provider.Timeout)
	registry := provider.NewRegistry()
	registry.Register(client)
	registry.RegisterCatalog(client)
	registry.RegisterCatalog(amfi.New(cfg.Provider.CatalogURL, cfg.Provider.Timeout))

	p, ok := registry.Get(cfg.Provider.Name)
	if !ok {
		return nil, fmt.Errorf("provider %q not registered (have %v)", cfg.Provider.Name, registry.Names())
	}
	src, ok := registry.Catalog(cfg.Provider.Catalog)
	if !ok {
		return nil, fmt.Errorf("catalog %q not registered", cfg.Provider.Catalog)
	}

	if cfg.Cache.Enabled {
		store, err := openStore(cfg.Cache)
		if err != nil {
			return nil, err
		}
		e.store = store
		p = cached.New(p, store, log, cached.WithObserver(e.metrics))
		src = cached.NewCatalog(src, store, log, cached.WithObserver(e.metrics))
		log.Debug("response cache enabled", zap.String("type", cfg.Cache.Type))
	}

	e.analyzer = app.New(p, analytics.NewCalculator(cfg.Analytics.Horizons...), log, app.WithRecorder(e.metrics))
	e.catalog = catalog.New(src)

	e.printer, err = report.New(report.Options{
		Format:   cfg.Report.Format,
		Currency: cfg.Report.Currency,
		Style:    cfg.Report.Style,
	})
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	return e, nil
}

func openStore(cfg config.CacheConfig) (archive.Storage, error) {
	switch cfg.Type {
	case "s3":
		store, err := archive.NewS3(archive.S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("creating s3 cache: %w", err)
		}
		return store, nil
	default:
		store, err := archive.NewLocalFS(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("creating local cache: %w", err)
		}
		return store, nil
	}
}

// close writes the metrics textfile and flushes the logger
func (e *env) close() {
	if n, ok := e.catalog.Size(); ok {
		e.metrics.SetCatalogSize(n)
	}
	if path := e.cfg.Metrics.Textfile; path != "" {
		if err := e.metrics.WriteTextfile(path); err != nil {
			e.log.Warn("failed to write metrics", zap.String("path", path), zap.Error(err))
		}
	}
	_ = e.log.Sync()
}

// signalContext is canceled on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
