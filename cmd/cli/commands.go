package main

import (
	"context"
	"fmt"

	"goprob/adapters/excel"
	"goprob/app"
	"goprob/internal"
	"goprob/internal/config"
	"goprob/internal/errors"
	"goprob/internal/report"
	"goprob/internal/scenario"

	"github.com/spf13/cobra"
)

// cli carries what every command needs
type cli struct {
	cfg     *config.Config
	logger  *internal.Logger
	service *app.ProbabilityService
}

func newRootCmd(cfg *config.Config, logger *internal.Logger, service *app.ProbabilityService) *cobra.Command {
	c := &cli{cfg: cfg, logger: logger, service: service}

	rootCmd := &cobra.Command{
		Use:           "goprob",
		Short:         "Exact and Monte Carlo probabilities for dice, cards, queues and doors",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		c.newListCmd(),
		c.newExactCmd(),
		c.newSimulateCmd(),
		c.newConvergeCmd(),
		c.newRunCmd(),
	)
	return rootCmd
}

func (c *cli) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the scenario catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, s := range scenario.All() {
				kinds := ""
				if s.HasExact() {
					kinds += "exact "
				}
				if s.HasSimulation() {
					kinds += "simulate"
				}
				fmt.Fprintf(out, "%-30s %-15s %s\n", s.Name, kinds, s.Description)
			}
			return nil
		},
	}
}

func (c *cli) newExactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exact <scenario>",
		Short: "Count matching outcomes by full enumeration",
		Example: `  goprob exact full-house
  goprob exact four-sixes-in-seven-dice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			res, err := c.service.Exact(ctx, args[0])
			if err != nil {
				return errors.Wrapf(err, "exact %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.ExactLine(*res.Exact))
			return nil
		},
	}
}

func (c *cli) newSimulateCmd() *cobra.Command {
	var trials int
	var seed int64

	cmd := &cobra.Command{
		Use:   "simulate <scenario>",
		Short: "Estimate a scenario by Monte Carlo",
		Example: `  goprob simulate monty-hall-switch --trials 1000000 --seed 42
  goprob simulate circle-intersection-area`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			res, err := c.service.Simulate(ctx, app.SimulationRequest{
				Scenario: args[0],
				Trials:   trials,
				Seed:     c.seed(seed),
			})
			if err != nil {
				return errors.Wrapf(err, "simulate %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.EstimateLine(*res.Estimate, c.reportOptions()))
			c.logger.Info("%s: %d trials, seed %d, %d ms", res.Scenario, res.Estimate.Trials, res.Seed, res.RuntimeMs)
			return nil
		},
	}

	cmd.Flags().IntVar(&trials, "trials", c.cfg.Simulation.Trials, "Number of trials (0 uses the scenario default)")
	cmd.Flags().Int64Var(&seed, "seed", c.cfg.Simulation.Seed, "Random seed (0 picks one from the clock)")
	return cmd
}

func (c *cli) newConvergeCmd() *cobra.Command {
	var trials, batches int
	var seed int64

	cmd := &cobra.Command{
		Use:   "converge <scenario>",
		Short: "Run repeated simulation batches and show how they spread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			conv, err := c.service.Converge(ctx, app.SimulationRequest{
				Scenario: args[0],
				Trials:   trials,
				Seed:     c.seed(seed),
			}, batches)
			if err != nil {
				return errors.Wrapf(err, "converge %s", args[0])
			}

			opts := c.reportOptions()
			out := cmd.OutOrStdout()
			for i, v := range conv.Values {
				fmt.Fprintf(out, "batch %d: %s\n", i+1, opts.Decimal(v))
			}
			fmt.Fprintln(out, report.EstimateLine(conv.Pooled, opts))
			fmt.Fprintf(out, "mean %s sd %s min %s max %s over %d x %d trials\n",
				opts.Decimal(conv.Mean), opts.Decimal(conv.StdDev), opts.Decimal(conv.Min), opts.Decimal(conv.Max),
				conv.Batches, conv.PerBatch)
			return nil
		},
	}

	cmd.Flags().IntVar(&trials, "trials", c.cfg.Simulation.Trials, "Trials per batch (0 uses the scenario default)")
	cmd.Flags().IntVar(&batches, "batches", c.cfg.Simulation.Batches, "Number of batches")
	cmd.Flags().Int64Var(&seed, "seed", c.cfg.Simulation.Seed, "Random seed (0 picks one from the clock)")
	return cmd
}

func (c *cli) newRunCmd() *cobra.Command {
	var (
		format    string
		xlsxPath  string
		trials    int
		seed      int64
		workers   int
		scenarios []string
		noExact   bool
		noSim     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate the whole catalogue and render a report",
		Long: `Evaluate every scenario (or those named with --scenario) exactly and by
simulation. Scenarios run concurrently, each on its own random stream, and the
report lists them in catalogue order.

Example: goprob run --format markdown --seed 42 --xlsx report.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return errors.InvalidInput(err.Error())
			}

			ctx, cancel := c.context(cmd)
			defer cancel()

			batch, err := c.service.RunAll(ctx, app.BatchRequest{
				Scenarios: scenarios,
				Trials:    trials,
				Seed:      c.seed(seed),
				Workers:   workers,
				Exact:     !noExact,
				Simulate:  !noSim,
			})
			if err != nil {
				return errors.Wrap(err, "run failed")
			}

			if err := report.Write(cmd.OutOrStdout(), batch, f, c.reportOptions()); err != nil {
				return errors.Wrap(err, "failed to write report")
			}

			if xlsxPath != "" {
				if err := excel.NewWorkbookWriter().Write(batch, xlsxPath); err != nil {
					return errors.ExportFailed(xlsxPath, err)
				}
				c.logger.Info("workbook written to %s", xlsxPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", c.cfg.Report.Format, "Report format: text, markdown or html")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", c.cfg.Report.XLSXPath, "Also export the results to this xlsx workbook")
	cmd.Flags().IntVar(&trials, "trials", c.cfg.Simulation.Trials, "Trials per simulation (0 uses each scenario's default)")
	cmd.Flags().Int64Var(&seed, "seed", c.cfg.Simulation.Seed, "Random seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&workers, "workers", c.cfg.Simulation.Workers, "Scenarios evaluated in parallel")
	cmd.Flags().StringSliceVar(&scenarios, "scenario", nil, "Limit the run to these scenarios")
	cmd.Flags().BoolVar(&noExact, "no-exact", false, "Skip enumeration")
	cmd.Flags().BoolVar(&noSim, "no-simulate", false, "Skip simulation")
	return cmd
}

// context bounds a command by the configured timeout
func (c *cli) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, c.cfg.Simulation.Timeout)
}

// seed keeps explicit seeds and logs clock seeds so a run can be replayed
func (c *cli) seed(flag int64) int64 {
	if flag != 0 {
		return flag
	}
	seed := c.cfg.ResolveSeed()
	c.logger.Info("using seed %d", seed)
	return seed
}

func (c *cli) reportOptions() report.Options {
	return report.Options{Precision: c.cfg.Report.Precision}
}
