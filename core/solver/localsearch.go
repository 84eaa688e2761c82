package solver

import (
	"context"
	"time"

	"github.com/kilianp07/vrptw/core/logger"
	"github.com/kilianp07/vrptw/core/model"
	"github.com/kilianp07/vrptw/internal/eventbus"
)

// Operator names as reported in stats, events and metrics labels.
const (
	OpTwoOptStar = "2opt_star"
	OpRelocate   = "relocate"
	OpTwoOpt     = "2opt"
)

// Options tunes the local-search driver.
type Options struct {
	// MaxIterations caps outer improvement passes.
	MaxIterations int
	// MaxAttempts is the evaluation budget handed to each inter-route
	// operator invocation.
	MaxAttempts int
}

// Improvement is published on the event bus for every accepted move.
type Improvement struct {
	Iteration int
	Operator  string
	Delta     float64
	Cost      float64
}

// Stats summarises one Improve call.
type Stats struct {
	Iterations  int
	Moves       map[string]int
	InitialCost float64
	FinalCost   float64
	Duration    time.Duration
}

// Searcher drives the move operators over a solution until none of them
// improves it or the iteration cap is reached. Inputs are read-only for the
// duration of a call; a Searcher holds no state across calls and is safe for
// concurrent use as long as the instance data is not mutated underneath it.
type Searcher struct {
	customers []model.Customer
	depot     model.Depot
	capacity  int
	opts      Options
	log       logger.Logger
	bus       eventbus.EventBus
}

// NewSearcher builds a Searcher over a dense customer table. bus may be nil
// when no observer is interested in per-move events.
func NewSearcher(customers []model.Customer, depot model.Depot, capacity int, opts Options, log logger.Logger, bus eventbus.EventBus) *Searcher {
	return &Searcher{
		customers: customers,
		depot:     depot,
		capacity:  capacity,
		opts:      opts,
		log:       log,
		bus:       bus,
	}
}

// Improve runs improvement passes over a copy of sol. Each pass tries the
// operators in a fixed order and applies the first move found: tail exchange
// first since it rebalances two routes at once, then single-customer
// relocation, then intra-route reversal. Returns the improved solution and
// per-run stats; the input solution is never mutated.
func (s *Searcher) Improve(ctx context.Context, sol model.Solution) (model.Solution, Stats, error) {
	start := time.Now()
	cur := sol.Clone()

	stats := Stats{
		Moves:       make(map[string]int),
		InitialCost: SolutionCost(cur, s.customers, s.depot, s.capacity),
	}
	cost := stats.InitialCost

	for stats.Iterations < s.opts.MaxIterations {
		if err := ctx.Err(); err != nil {
			stats.FinalCost = cost
			stats.Duration = time.Since(start)
			return cur, stats, err
		}
		stats.Iterations++

		op, ok := s.step(&cur)
		if !ok {
			break
		}

		newCost := SolutionCost(cur, s.customers, s.depot, s.capacity)
		delta := cost - newCost
		cost = newCost
		stats.Moves[op]++

		s.log.Debugw("move accepted", map[string]any{
			"iteration": stats.Iterations,
			"operator":  op,
			"delta":     delta,
			"cost":      cost,
		})
		if s.bus != nil {
			s.bus.Publish(Improvement{
				Iteration: stats.Iterations,
				Operator:  op,
				Delta:     delta,
				Cost:      cost,
			})
		}
	}

	stats.FinalCost = cost
	stats.Duration = time.Since(start)
	return cur, stats, nil
}

// step applies the first improving move it finds and reports which operator
// produced it.
func (s *Searcher) step(sol *model.Solution) (string, bool) {
	if mv := TwoOptStar(sol.Routes, s.customers, s.depot, s.capacity, s.opts.MaxAttempts); mv.Found {
		s.apply(sol, mv)
		return OpTwoOptStar, true
	}
	if mv := Relocate(sol.Routes, s.customers, s.depot, s.capacity, s.opts.MaxAttempts); mv.Found {
		s.apply(sol, mv)
		return OpRelocate, true
	}
	for i, r := range sol.Routes {
		if cand, ok := TwoOpt(r, s.customers, s.depot, s.capacity); ok {
			sol.Routes[i] = cand
			return OpTwoOpt, true
		}
	}
	return "", false
}

func (s *Searcher) apply(sol *model.Solution, mv Move) {
	sol.Routes[mv.Route1] = mv.NewRoute1
	sol.Routes[mv.Route2] = mv.NewRoute2
	sol.DropEmptyRoutes()
}
