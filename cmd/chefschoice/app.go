package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sandeepkv93/chefschoice/internal/api"
	"github.com/sandeepkv93/chefschoice/internal/logging"
	"github.com/sandeepkv93/chefschoice/internal/session"
	"github.com/sandeepkv93/chefschoice/internal/storage"
	"github.com/sandeepkv93/chefschoice/internal/telemetry"
	"github.com/sandeepkv93/chefschoice/internal/update"
)

// app holds everything a command needs once configuration is resolved.
type app struct {
	cfg      update.RuntimeConfig
	log      *zap.Logger
	store    storage.Repository
	client   *api.Client
	shutdown telemetry.ShutdownFunc
	otelOut  *os.File
}

func openApp(ctx context.Context, v *viper.Viper) (*app, error) {
	cfg, err := update.RuntimeConfigFrom(v)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logging.Config{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	var otelOut *os.File
	if cfg.OTelEnabled && cfg.OTelStdout && cfg.LogFile != "" {
		otelOut, err = os.OpenFile(cfg.LogFile+".otel", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			_ = log.Sync()
			return nil, fmt.Errorf("open telemetry output: %w", err)
		}
	}
	tcfg := telemetry.Config{
		Enabled:         cfg.OTelEnabled,
		Stdout:          cfg.OTelStdout,
		MetricsEndpoint: cfg.OTelMetricsEndpoint,
	}
	if otelOut != nil {
		tcfg.Writer = otelOut
	}
	shutdown, err := telemetry.Init(ctx, tcfg, "chefschoice", Version)
	if err != nil {
		closeFile(otelOut)
		_ = log.Sync()
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		_ = shutdown(ctx)
		closeFile(otelOut)
		_ = log.Sync()
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	client := api.NewClient(cfg.BaseURL,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithRetries(cfg.HTTPRetries),
		api.WithLogger(log),
	)
	log.Info("chefschoice started",
		zap.String("version", Version),
		zap.String("base_url", cfg.BaseURL),
		zap.String("db_path", cfg.DBPath),
	)
	return &app{cfg: cfg, log: log, store: store, client: client, shutdown: shutdown, otelOut: otelOut}, nil
}

func closeFile(f *os.File) {
	if f != nil {
		_ = f.Close()
	}
}

// identity reads the stored token once.
func (a *app) identity(ctx context.Context) (session.Identity, error) {
	return session.Resolve(ctx, a.store)
}

func (a *app) Close(ctx context.Context) error {
	var errs []error
	if err := a.store.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	closeFile(a.otelOut)
	_ = a.log.Sync()
	return errors.Join(errs...)
}
