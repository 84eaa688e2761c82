package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/vrptw/app"
	"github.com/kilianp07/vrptw/config"
	"github.com/kilianp07/vrptw/infra/logger"
	"github.com/kilianp07/vrptw/infra/solomon"
	"github.com/kilianp07/vrptw/internal/bench"
)

var (
	benchRuns      int
	benchSeed      int64
	benchCustomers int
	benchTimeout   time.Duration
	benchOut       string
)

var benchCmd = &cobra.Command{
	Use:   "bench <instance>...",
	Short: "Benchmark the solver over one or more instances",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchRuns, "runs", 10, "seeded runs per instance")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1000, "base seed")
	benchCmd.Flags().IntVar(&benchCustomers, "customers", 0, "truncate instances to N customers (0 = all)")
	benchCmd.Flags().DurationVar(&benchTimeout, "per_run_timeout", 0, "timeout per run (0 = none)")
	benchCmd.Flags().StringVar(&benchOut, "out", "", "CSV output path (empty = stdout summary only)")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("bench-command").Errorf("service close: %v", err)
		}
	}()

	runner := bench.Runner{Runs: benchRuns, BaseSeed: benchSeed, PerRunTimeout: benchTimeout}

	var records []bench.Record
	for _, path := range args {
		inst, err := solomon.Load(path, benchCustomers)
		if err != nil {
			return err
		}
		rec, err := runner.RunInstance(ctx, svc, inst)
		if err != nil {
			return fmt.Errorf("bench %s: %w", inst.Name, err)
		}
		records = append(records, rec)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: best %.2f mean %.2f (std %.2f), %d vehicles, %.1fms/run\n",
			rec.Instance, rec.CostBest, rec.CostMean, rec.CostStd, rec.VehiclesBest, rec.TimeMeanMs)
	}

	if benchOut != "" {
		if err := bench.WriteCSV(benchOut, records); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	return nil
}
