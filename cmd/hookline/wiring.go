package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/metrics"
	"github.com/sant0-9/hookline/internal/router"
	"github.com/sant0-9/hookline/internal/store"
)

// loadConfig resolves the config file and environment overrides.
func loadConfig() (*config.Config, bool, error) {
	cfg, found, err := config.Resolve()
	if err != nil {
		return nil, false, fmt.Errorf("load config: %w", err)
	}
	return cfg, found, nil
}

// newCompleter builds the completion client. When no provider can be
// built it returns a completer that fails every call with
// llm.ErrNoProvider, and ok is false.
func newCompleter(cfg *config.Config, m *metrics.Metrics) (c *llm.Completer, ok bool) {
	opts := []llm.CompleterOption{
		llm.WithModel(cfg.Model),
		llm.WithTimeout(cfg.RequestTimeout),
		llm.WithRetries(cfg.MaxRetries),
		llm.WithLogger(logger),
	}
	if m != nil {
		opts = append(opts, llm.WithObserver(m))
	}

	if !cfg.HasCredentials() {
		logger.Warn("provider has no credentials", zap.String("provider", cfg.Provider))
		return llm.NewCompleter(nil, opts...), false
	}
	p, err := llm.NewProvider(cfg)
	if err != nil {
		logger.Warn("provider unavailable", zap.String("provider", cfg.Provider), zap.Error(err))
		return llm.NewCompleter(nil, opts...), false
	}
	return llm.NewCompleter(p, opts...), true
}

// requireProvider fails with llm.ErrNoProvider when cfg cannot reach a
// provider. The interactive CLI refuses to start without one.
func requireProvider(cfg *config.Config) error {
	if !cfg.HasCredentials() {
		return fmt.Errorf("%w: %s has no credentials (set HOOKLINE_API_KEY or edit the config file)", llm.ErrNoProvider, cfg.Provider)
	}
	if _, err := llm.NewProvider(cfg); err != nil {
		return fmt.Errorf("%w: %v", llm.ErrNoProvider, err)
	}
	return nil
}

func newRouter(cfg *config.Config, st store.Store, m *metrics.Metrics) (*router.Router, bool) {
	c, ok := newCompleter(cfg, m)
	opts := []router.RouterOption{
		router.WithProjects(st),
		router.WithLogger(logger),
	}
	if m != nil {
		opts = append(opts, router.WithObserver(m))
	}
	return router.New(c, cfg, opts...), ok
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	st, err := store.FromConfig(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
