package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/codepairhq/codepair-server/internal/app"
	"github.com/codepairhq/codepair-server/internal/config"
	"github.com/codepairhq/codepair-server/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "codepair-server",
		Short:         "Collaborative code session server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var (
		configPath        string
		addr              string
		logLevel          string
		readHeaderTimeout time.Duration
		shutdownTimeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the session server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(logLevel)

			cfg, path, err := config.Load(logger, configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// Flags set explicitly override file and env values.
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("read-header-timeout") {
				cfg.ReadHeaderTimeout = readHeaderTimeout
			}
			if cmd.Flags().Changed("shutdown-timeout") {
				cfg.ShutdownTimeout = shutdownTimeout
			}
			logger = log.New(cfg.LogLevel)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application := app.New(cfg, logger)

			logger.Info().Str("addr", cfg.Addr).Str("config", path).Msg("starting codepair server")
			if err := application.Run(ctx); err != nil {
				return fmt.Errorf("server exited: %w", err)
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	defaults := config.Default()
	cmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	cmd.Flags().StringVar(&addr, "addr", defaults.Addr, "HTTP listen address")
	cmd.Flags().StringVar(&logLevel, "log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
	cmd.Flags().DurationVar(&readHeaderTimeout, "read-header-timeout", defaults.ReadHeaderTimeout, "HTTP read header timeout")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", defaults.ShutdownTimeout, "graceful shutdown timeout")

	return cmd
}
