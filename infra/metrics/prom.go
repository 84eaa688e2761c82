package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/vrptw/core/metrics"
	"github.com/kilianp07/vrptw/core/factory"
)

// PromSink records solver activity in Prometheus metrics.
type PromSink struct {
	solves      *prometheus.CounterVec
	moves       *prometheus.CounterVec
	improvement *prometheus.HistogramVec
	cost        prometheus.Gauge
	vehicles    prometheus.Gauge
}

// NewPromSink registers solver metrics on the provided Prometheus registerer.
// If reg is nil, the default registerer is used. If the collectors are already
// registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vrptw_solves_total",
		Help: "Total number of completed solve runs",
	}, []string{"feasible"})
	moves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vrptw_moves_total",
		Help: "Total number of accepted local-search moves",
	}, []string{"operator"})
	improvement := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vrptw_move_improvement",
		Help:    "Cost reduction per accepted move",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"operator"})
	cost := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vrptw_solution_cost",
		Help: "Cost of the most recent solution",
	})
	vehicles := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vrptw_solution_vehicles",
		Help: "Vehicle count of the most recent solution",
	})

	s := &PromSink{solves: solves, moves: moves, improvement: improvement, cost: cost, vehicles: vehicles}
	for _, c := range []prometheus.Collector{solves, moves, improvement, cost, vehicles} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordSolveResult updates the run counter and solution gauges.
func (s *PromSink) RecordSolveResult(res coremetrics.SolveResult) error {
	s.solves.WithLabelValues(strconv.FormatBool(res.Feasible)).Inc()
	s.cost.Set(res.FinalCost)
	s.vehicles.Set(float64(res.Vehicles))
	return nil
}

// RecordMove counts the move and observes its improvement delta.
func (s *PromSink) RecordMove(ev coremetrics.MoveEvent) error {
	s.moves.WithLabelValues(ev.Operator).Inc()
	s.improvement.WithLabelValues(ev.Operator).Observe(ev.Delta)
	return nil
}

func newPromSinkFactory(map[string]any) (coremetrics.MetricsSink, error) {
	return NewPromSink(nil)
}

var _ factory.Factory[coremetrics.MetricsSink] = newPromSinkFactory
