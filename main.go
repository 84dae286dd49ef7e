package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sjsage522/jobaggregator/config"
	"sjsage522/jobaggregator/logger"
)

var rootCmd = &cobra.Command{
	Use:   "jobaggregator",
	Short: "Job posting aggregation worker",
	Long:  "jobaggregator crawls LinkedIn, Indeed and Glassdoor search pages, cleans the listings and publishes them to Redis streams or Postgres.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.Init()
	},
	SilenceUsage: true,
}

func main() {
	// Load environment variables
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads and validates the configuration
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
