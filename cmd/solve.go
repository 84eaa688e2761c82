package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/vrptw/app"
	"github.com/kilianp07/vrptw/config"
	"github.com/kilianp07/vrptw/infra/logger"
	"github.com/kilianp07/vrptw/infra/metrics"
)

var solveCustomers int

var solveCmd = &cobra.Command{
	Use:   "solve <instance>",
	Short: "Solve a Solomon VRPTW instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().IntVar(&solveCustomers, "customers", 0, "truncate the instance to its first N customers (0 = all)")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
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
			logger.New("solve-command").Errorf("service close: %v", err)
		}
	}()

	if cfg.Metrics.PromAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, cfg.Metrics.PromAddr); err != nil {
				logger.New("solve-command").Errorf("prom server: %v", err)
			}
		}()
	}

	out, err := svc.Solve(ctx, args[0], solveCustomers)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Instance string      `json:"instance"`
		Cost     float64     `json:"cost"`
		Vehicles int         `json:"vehicles"`
		Feasible bool        `json:"feasible"`
		Routes   interface{} `json:"routes"`
	}{
		Instance: out.Result.Instance,
		Cost:     out.Result.FinalCost,
		Vehicles: out.Result.Vehicles,
		Feasible: out.Result.Feasible,
		Routes:   out.Solution.Routes,
	})
}
