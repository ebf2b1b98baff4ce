package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sant0-9/hookline/internal/api"
	"github.com/sant0-9/hookline/internal/config"
	"github.com/sant0-9/hookline/internal/llm"
	"github.com/sant0-9/hookline/internal/metrics"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chat API over HTTP and websocket",
	Long: `Serve the chat API.

Without a configured provider the server still starts in degraded mode:
hook requests are answered from templates and every response carries
metadata.degraded=true.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	m := metrics.New(nil)
	r, ok := newRouter(cfg, st, m)

	srv := api.New(st, r, m, logger, api.Options{
		Addr:           cfg.Server.Addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Degraded:       !ok,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if ok {
		g.Go(func() error {
			checkProvider(gctx, cfg)
			return nil
		})
	}
	return g.Wait()
}

// checkProvider logs whether the provider answers. A failure is not
// fatal: turns will report provider errors to the client.
func checkProvider(ctx context.Context, cfg *config.Config) {
	p, err := llm.NewProvider(cfg)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		logger.Warn("provider ping failed", zap.String("provider", p.Name()), zap.Error(err))
		return
	}
	logger.Info("provider reachable", zap.String("provider", p.Name()), zap.String("model", cfg.Model))
}
