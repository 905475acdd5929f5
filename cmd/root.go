package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hackeyzlife02/elfsight-hcp-webhook/internal/config"
	"github.com/hackeyzlife02/elfsight-hcp-webhook/internal/lead"
	"github.com/hackeyzlife02/elfsight-hcp-webhook/internal/resilience"
	"github.com/hackeyzlife02/elfsight-hcp-webhook/pkg/hcp"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "hcp-webhook",
	Short: "Elfsight form to Housecall Pro lead bridge",
	Long:  "Receives Elfsight lead-capture submissions, matches them against existing Housecall Pro customers, and creates structured sales leads.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newCreator wires the HCP client and lead creator from config. The rate
// limiter lives on the client, so every command shares one quota.
func newCreator() (*lead.Creator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := hcp.NewClient(cfg.HCP.Key,
		hcp.WithBaseURL(cfg.HCP.BaseURL),
		hcp.WithRateDelay(time.Duration(cfg.HCP.RateDelaySecs*float64(time.Second))),
		hcp.WithRetry(resilience.RetryConfig{MaxAttempts: cfg.HCP.MaxRetries}),
	)

	return lead.NewCreator(client, cfg.Lead), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
