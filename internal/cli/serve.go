package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"api_catalog/api"
	"api_catalog/internal/catalog"
	"api_catalog/internal/config"
	"api_catalog/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// ServeOptions holds flags that override the loaded config.
type ServeOptions struct {
	Addr     string
	Latency  time.Duration
	SeedFile string
	LogLevel string
}

// NewServeCommand creates the serve command.
func NewServeCommand(root *RootOptions) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(root.ConfigPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr = opts.Addr
			}
			if flags.Changed("latency") {
				cfg.Latency = opts.Latency
			}
			if flags.Changed("seed") {
				cfg.SeedFile = opts.SeedFile
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = opts.LogLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (default from config, :8081)")
	cmd.Flags().DurationVar(&opts.Latency, "latency", 0, "simulated latency per operation")
	cmd.Flags().StringVar(&opts.SeedFile, "seed", "", "YAML or JSON seed file replacing the built-in catalog")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "debug, info, warn or error")

	return cmd
}

// newService wires storage, seed and latency from cfg.
func newService(cfg config.Config) (*catalog.Service, error) {
	opts := []catalog.Option{catalog.WithDelay(catalog.FixedDelay(cfg.Latency))}
	if cfg.SeedFile != "" {
		seed, err := catalog.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, catalog.WithSeed(seed))
	}
	return catalog.NewService(catalog.NewLocalStorage(), opts...)
}

func runServer(ctx context.Context, cfg config.Config) error {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	svc, err := newService(cfg)
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(svc, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("catalog server starting",
			zap.String("addr", cfg.Addr),
			zap.Duration("latency", cfg.Latency),
			zap.String("seed_file", cfg.SeedFile),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error trying to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutdown requested")
	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(stopCtx); err != nil {
		log.Warn("graceful stop timeout, forcing stop", zap.Error(err))
		_ = srv.Close()
	}
	log.Info("bye")
	return nil
}
