package metrics

import "time"

// SolveResult captures one completed solve run.
type SolveResult struct {
	RunID       string
	Instance    string
	Customers   int
	Vehicles    int
	InitialCost float64
	FinalCost   float64
	Iterations  int
	Moves       map[string]int
	Feasible    bool
	Duration    time.Duration
	Time        time.Time
}

// MoveEvent records a single accepted local-search move.
type MoveEvent struct {
	RunID     string
	Operator  string
	Iteration int
	Delta     float64
	Cost      float64
	Time      time.Time
}

// MetricsSink records solver activity for observability purposes.
type MetricsSink interface {
	RecordSolveResult(res SolveResult) error
	RecordMove(ev MoveEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSolveResult(SolveResult) error { return nil }
func (NopSink) RecordMove(MoveEvent) error          { return nil }
