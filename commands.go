package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sjsage522/jobaggregator/internal/collector"
	"sjsage522/jobaggregator/logger"
	"sjsage522/jobaggregator/services/scheduler"
)

var runDryRun bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one batch and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		services, err := initializeServices(ctx, cfg, runDryRun)
		if err != nil {
			return err
		}
		defer services.Cleanup()

		_, err = newWorker(cfg, services).RunOnce(ctx)
		return err
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run batches on the crawl interval until interrupted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logger.Default

		log.Info().
			Str("environment", cfg.Environment).
			Dur("crawl_interval", cfg.CrawlInterval).
			Strs("platforms", cfg.Platforms).
			Msg("Starting application")

		// Set up context with cancellation on shutdown signals
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		services, err := initializeServices(ctx, cfg, false)
		if err != nil {
			return err
		}
		defer services.Cleanup()

		if err := scheduler.New(newWorker(cfg, services), cfg.CrawlInterval).Run(ctx); err != nil {
			return err
		}

		log.Info().Msg("Shutting down gracefully...")
		return nil
	},
}

var urlsCmd = &cobra.Command{
	Use:   "urls",
	Short: "Print the planned search URLs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		for _, u := range collector.URLs(collector.Plan(cfg.PlanOptions())) {
			fmt.Fprintln(cmd.OutOrStdout(), u)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Write cleaned jobs to stdout instead of the configured sink")

	rootCmd.AddCommand(runCmd, serveCmd, urlsCmd)
}
