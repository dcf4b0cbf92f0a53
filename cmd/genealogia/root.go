// Genealogia - Mathematics Genealogy Graph Analytics
// Copyright 2026 Rafael M. (rfmoraes)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rfmoraes/genealogia

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rfmoraes/genealogia/internal/config"
	"github.com/rfmoraes/genealogia/internal/logging"
	"github.com/rfmoraes/genealogia/internal/metrics"
)

var (
	cfg *config.Config

	flagConfig     string
	flagCountry    string
	flagWorkers    int
	flagSequential bool
	flagUseCache   bool
	flagNoCache    bool
)

var rootCmd = &cobra.Command{
	Use:   "genealogia",
	Short: "Mathematics Genealogy fetcher and graph analytics",
	Long: `genealogia fetches Mathematics Genealogy Project records for
mathematicians trained in a country (Brazil by default), caches them
locally, builds the advisor-student graph, and exports CSV and JSON
analytics.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if flagConfig != "" {
			cfg, err = config.LoadFile(flagConfig)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		applyFlagOverrides(cmd)

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logging.Init(logging.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			Timestamp: true,
		})

		if cfg.Metrics.Enabled {
			metrics.Serve(cfg.Metrics.Addr)
		}
		return nil
	},
}

// applyFlagOverrides lets explicit command-line flags win over the config
// file and environment.
func applyFlagOverrides(cmd *cobra.Command) {
	if cmd.Flags().Changed("country") {
		cfg.Fetch.Country = flagCountry
	}
	if cmd.Flags().Changed("workers") {
		cfg.Fetch.Workers = flagWorkers
	}
	if cmd.Flags().Changed("sequential") {
		cfg.Fetch.Sequential = flagSequential
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagConfig, "config", "c", "", "path to config file (default: search standard locations)")
	pf.StringVar(&flagCountry, "country", "Brazil", "country filter for the genealogy search")
	pf.IntVar(&flagWorkers, "workers", 10, "parallel fetch workers")
	pf.BoolVar(&flagSequential, "sequential", false, "fetch records one at a time")
	pf.BoolVar(&flagUseCache, "use-cache", false, "reuse an existing cache without prompting")
	pf.BoolVar(&flagNoCache, "no-cache", false, "discard any existing cache and refetch everything")
	rootCmd.MarkFlagsMutuallyExclusive("use-cache", "no-cache")

	rootCmd.AddCommand(runCmd, fetchCmd, analyzeCmd)
}
