// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"runtime"
	"time"

	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/coop/internal/kernel"
	"github.com/katalvlaran/coop/matrix"
	"github.com/katalvlaran/coop/sparse"
)

// statCmd builds one of the single-file cov/cor/cos commands.
func (a *app) statCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " FILE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stat, err := matrix.ParseStatistic(name)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err = a.process(&buf, stat, args[0], a.cfg.Options()...); err != nil {
				a.logger.Error("computation failed", "file", args[0], "stat", stat, "err", err)
				return err
			}
			_, err = cmd.OutOrStdout().Write(buf.Bytes())

			return err
		},
	}
}

// batchCmd builds the multi-file command.
func (a *app) batchCmd() *cobra.Command {
	var statName string

	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Process several CSV files concurrently",
		Long: `batch computes the same statistic for every FILE. Files are processed
concurrently (at most --workers at a time) on one shared worker pool; each
result is printed after a "# FILE" line, in argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stat, err := matrix.ParseStatistic(statName)
			if err != nil {
				return err
			}

			return a.batch(cmd, stat, args)
		},
	}
	cmd.Flags().StringVarP(&statName, "stat", "s", "cor", "statistic: cov, cor or cos")

	return cmd
}

// batch runs one job per file. The first failure cancels the files not yet
// started; nothing is printed unless every file succeeds.
func (a *app) batch(cmd *cobra.Command, stat matrix.Statistic, files []string) error {
	pool := workerpool.New(a.cfg.Workers)
	defer pool.Close()

	opts := append(a.cfg.Options(),
		matrix.WithPool(pool),
		matrix.WithScratch(matrix.NewPoolScratch(a.cfg.ScratchLimit)),
	)

	results := make([]bytes.Buffer, len(files))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(pool.NumWorkers())
	for k, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return a.process(&results[k], stat, file, opts...)
		})
	}
	if err := g.Wait(); err != nil {
		a.logger.Error("batch failed", "stat", stat, "err", err)
		return err
	}

	out := cmd.OutOrStdout()
	for k, file := range files {
		if _, err := fmt.Fprintf(out, "# %s\n", file); err != nil {
			return err
		}
		if _, err := out.Write(results[k].Bytes()); err != nil {
			return err
		}
	}

	return nil
}

// process reads file, computes stat over its columns and writes the CSV result to buf.
func (a *app) process(buf *bytes.Buffer, stat matrix.Statistic, file string, opts ...matrix.Option) error {
	start := time.Now()
	t, err := readTableFile(file, a.cfg.Comma(), a.cfg.Header)
	if err != nil {
		return err
	}

	res, err := matrix.Pairwise(stat, t.data, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if a.doFill {
		replaced, err := matrix.ReplaceNonFinite(res.RawData(), a.fill)
		if err != nil {
			return err
		}
		if replaced > 0 {
			a.logger.Warn("replaced non-finite results", "file", file, "count", replaced)
		}
	}
	a.logger.Debug("computed",
		"file", file,
		"stat", stat,
		"rows", t.data.Rows(),
		"cols", t.data.Cols(),
		"elapsed", time.Since(start))

	return writeMatrix(buf, res, t.names, a.cfg.Comma(), a.cfg.Precision)
}

// sparsityCmd reports how many entries of each file are (near) zero.
func (a *app) sparsityCmd() *cobra.Command {
	var tol float64

	cmd := &cobra.Command{
		Use:   "sparsity FILE...",
		Short: "Count near-zero entries and report density",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, file := range args {
				t, err := readTableFile(file, a.cfg.Comma(), a.cfg.Header)
				if err != nil {
					a.logger.Error("reading input", "file", file, "err", err)
					return err
				}
				m, n := t.data.Rows(), t.data.Cols()
				zeros := sparse.SparsityFloat(m, n, t.data.RawData(), tol)
				if _, err = fmt.Fprintf(out, "%s\t%dx%d\tzeros=%d\tdensity=%.4f\n",
					file, m, n, zeros, sparse.Density(m, n, zeros)); err != nil {
					return err
				}
			}

			return nil
		},
	}
	cmd.Flags().Float64Var(&tol, "tol", 1e-12, "magnitude below which an entry counts as zero")

	return cmd
}

// infoCmd prints the runtime and kernel dispatch in effect.
func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show runtime and kernel information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, err := fmt.Fprintf(out,
				"os/arch: %s/%s\ncpus: %d\ngomaxprocs: %d\nkernel: %s\nparallel threshold: %d\n",
				runtime.GOOS, runtime.GOARCH, runtime.NumCPU(), runtime.GOMAXPROCS(0),
				kernel.Current(), a.cfg.ParallelThreshold)

			return err
		},
	}
}
