// SPDX-License-Identifier: MIT

// Command coop computes pairwise covariance, correlation and cosine similarity
// matrices of the columns of numeric CSV files.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/coop/internal/config"
)

// app carries the state shared by every subcommand.
type app struct {
	cfgFile   string
	verbose   bool
	threshold int
	workers   int
	precision int
	header    bool
	fill      float64
	doFill    bool

	cfg    *config.Config
	logger *log.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Tests construct a fresh tree per case.
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "coop",
		Short: "Pairwise covariance, correlation and cosine similarity of CSV columns",
		Long: `coop reads numeric CSV files (one row per observation, one column per
variable) and prints the n×n covariance, Pearson correlation or cosine
similarity matrix of the columns as CSV.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "YAML config file path")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.IntVar(&a.threshold, "threshold", 0, "parallelize when rows*cols exceeds this (overrides config)")
	flags.IntVarP(&a.workers, "workers", "w", 0, "worker goroutines, 0 = GOMAXPROCS (overrides config)")
	flags.IntVarP(&a.precision, "precision", "p", 0, "digits after the decimal point (overrides config)")
	flags.BoolVar(&a.header, "header", false, "first CSV row holds column names (overrides config)")
	flags.Float64Var(&a.fill, "fill-nan", 0, "replace NaN/Inf results (zero-variance columns) with this value")

	root.AddCommand(
		a.statCmd("cov", "Sample covariance matrix (Bessel-corrected)"),
		a.statCmd("cor", "Pearson correlation matrix"),
		a.statCmd("cos", "Cosine similarity matrix"),
		a.batchCmd(),
		a.sparsityCmd(),
		a.infoCmd(),
	)

	return root
}

// init sets up logging and merges the config file with explicitly set flags.
func (a *app) init(cmd *cobra.Command) error {
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix:          "coop",
		ReportTimestamp: true,
	})
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		a.logger.Error("loading config", "path", a.cfgFile, "err", err)
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.ParallelThreshold = a.threshold
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("precision") {
		cfg.Precision = a.precision
	}
	if flags.Changed("header") {
		cfg.Header = a.header
	}
	a.doFill = flags.Changed("fill-nan")
	if err = cfg.Validate(); err != nil {
		a.logger.Error("invalid settings", "err", err)
		return err
	}

	a.cfg = cfg
	a.logger.Debug("configuration",
		"threshold", cfg.ParallelThreshold,
		"workers", cfg.Workers,
		"scratch_limit", cfg.ScratchLimit,
		"precision", cfg.Precision,
		"header", cfg.Header)

	return nil
}
