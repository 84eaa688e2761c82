package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/vrptw/config"
	corelogger "github.com/kilianp07/vrptw/core/logger"
	coremetrics "github.com/kilianp07/vrptw/core/metrics"
	"github.com/kilianp07/vrptw/core/model"
	"github.com/kilianp07/vrptw/core/solver"
	"github.com/kilianp07/vrptw/infra/logger"
	"github.com/kilianp07/vrptw/infra/metrics"
	"github.com/kilianp07/vrptw/infra/mqtt"
	"github.com/kilianp07/vrptw/infra/solomon"
	"github.com/kilianp07/vrptw/internal/eventbus"
)

// Service wires the solver to its configured observers: logger, metrics
// sinks and the optional MQTT result publisher.
type Service struct {
	cfg  *config.Config
	log  corelogger.Logger
	sink coremetrics.MetricsSink
	pub  mqtt.Publisher
}

// Outcome bundles the solved routes with the recorded run summary.
type Outcome struct {
	Solution model.Solution
	Result   coremetrics.SolveResult
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	log := logger.NewZerologLogger("service", cfg.Logging.Level)

	metrics.RegisterBuiltinSinks()
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	svc := &Service{cfg: cfg, log: log, sink: sink}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.pub = pub
	}
	return svc, nil
}

// Close releases external connections.
func (s *Service) Close() error {
	if s.pub != nil {
		s.pub.Close()
	}
	return nil
}

// Solve loads the Solomon instance at path and runs one construction plus
// local-search pass over it. maxCustomers > 0 truncates the instance.
func (s *Service) Solve(ctx context.Context, path string, maxCustomers int) (*Outcome, error) {
	inst, err := solomon.Load(path, maxCustomers)
	if err != nil {
		return nil, err
	}
	return s.SolveInstance(ctx, inst, s.cfg.Solver.Seed)
}

// SolveInstance runs construction and local search over an already parsed
// instance. seed != 0 randomises construction tie-breaking.
func (s *Service) SolveInstance(ctx context.Context, inst *solomon.Instance, seed int64) (*Outcome, error) {
	runID := uuid.NewString()
	table := model.NewCustomerTable(inst.Customers)

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	s.log.Infof("solving %s: %d customers, capacity %d, run %s",
		inst.Name, len(inst.Customers), inst.Capacity, runID)

	initial := solver.Construct(inst.Customers, inst.Depot, inst.Capacity, rng)

	bus := eventbus.New()
	defer bus.Close()
	done := s.forwardMoves(bus, runID)

	search := solver.NewSearcher(table, inst.Depot, inst.Capacity, solver.Options{
		MaxIterations: s.cfg.Solver.MaxIterations,
		MaxAttempts:   s.cfg.Solver.MaxAttempts,
	}, s.log, bus)

	sol, stats, err := search.Improve(ctx, initial)
	bus.Close()
	<-done
	if err != nil {
		return nil, fmt.Errorf("local search: %w", err)
	}

	res := coremetrics.SolveResult{
		RunID:       runID,
		Instance:    inst.Name,
		Customers:   sol.CustomerCount(),
		Vehicles:    len(sol.Routes),
		InitialCost: stats.InitialCost,
		FinalCost:   stats.FinalCost,
		Iterations:  stats.Iterations,
		Moves:       stats.Moves,
		Feasible:    solver.SolutionFeasible(sol, table, inst.Depot, inst.Capacity),
		Duration:    stats.Duration,
		Time:        time.Now(),
	}
	if err := s.sink.RecordSolveResult(res); err != nil {
		s.log.Warnf("record solve result: %v", err)
	}
	if s.pub != nil {
		if err := s.pub.PublishResult(res, sol.Routes); err != nil {
			s.log.Warnf("publish result: %v", err)
		}
	}

	s.log.Infof("solved %s: cost %.2f -> %.2f, %d vehicles, %d iterations",
		inst.Name, res.InitialCost, res.FinalCost, res.Vehicles, res.Iterations)

	return &Outcome{Solution: sol, Result: res}, nil
}

// forwardMoves drains improvement events from the bus into the metrics sink.
// The returned channel closes once the bus does.
func (s *Service) forwardMoves(bus *eventbus.Bus, runID string) <-chan struct{} {
	sub := bus.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range sub {
			imp, ok := ev.(solver.Improvement)
			if !ok {
				continue
			}
			if err := s.sink.RecordMove(coremetrics.MoveEvent{
				RunID:     runID,
				Operator:  imp.Operator,
				Iteration: imp.Iteration,
				Delta:     imp.Delta,
				Cost:      imp.Cost,
				Time:      time.Now(),
			}); err != nil {
				s.log.Warnf("record move: %v", err)
			}
		}
	}()
	return done
}
