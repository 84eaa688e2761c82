// Package bench runs repeated seeded solves over an instance and aggregates
// cost and timing statistics.
package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kilianp07/vrptw/app"
	"github.com/kilianp07/vrptw/infra/solomon"
)

// Runner configures the benchmark policy.
type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
}

// Record aggregates one instance's benchmark outcome.
type Record struct {
	Instance string
	Runs     int

	CostBest float64
	CostMean float64
	CostStd  float64

	VehiclesBest int

	TimeMeanMs float64
	TimeStdMs  float64
}

// RunInstance solves inst r.Runs times with consecutive seeds and aggregates
// the results. Infeasible outcomes fail the benchmark rather than skewing the
// stats.
func (r Runner) RunInstance(ctx context.Context, svc *app.Service, inst *solomon.Instance) (Record, error) {
	if r.Runs <= 0 {
		return Record{}, fmt.Errorf("runs must be > 0 (got %d)", r.Runs)
	}

	costs := make([]float64, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	bestVehicles := 0

	for i := 0; i < r.Runs; i++ {
		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}

		start := time.Now()
		out, err := svc.SolveInstance(runCtx, inst, r.BaseSeed+int64(i))
		dur := time.Since(start)
		cancel()

		if err != nil {
			return Record{}, fmt.Errorf("run %d: %w", i, err)
		}
		if !out.Result.Feasible {
			return Record{}, fmt.Errorf("run %d: infeasible solution", i)
		}

		costs = append(costs, out.Result.FinalCost)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
		if bestVehicles == 0 || out.Result.Vehicles < bestVehicles {
			bestVehicles = out.Result.Vehicles
		}
	}

	costStats := Summarize(costs)
	timeStats := Summarize(timesMs)

	return Record{
		Instance:     inst.Name,
		Runs:         r.Runs,
		CostBest:     costStats.Best,
		CostMean:     costStats.Mean,
		CostStd:      costStats.Std,
		VehiclesBest: bestVehicles,
		TimeMeanMs:   timeStats.Mean,
		TimeStdMs:    timeStats.Std,
	}, nil
}

// WriteCSV writes the records to path, creating parent directories as needed.
func WriteCSV(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"instance", "runs",
		"cost_best", "cost_mean", "cost_std",
		"vehicles_best",
		"time_mean_ms", "time_std_ms",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Instance,
			strconv.Itoa(r.Runs),
			ftoa(r.CostBest),
			ftoa(r.CostMean),
			ftoa(r.CostStd),
			strconv.Itoa(r.VehiclesBest),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 3, 64)
}
