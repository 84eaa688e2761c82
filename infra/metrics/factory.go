package metrics

import (
	"sync"

	coremetrics "github.com/kilianp07/vrptw/core/metrics"
)

var registerOnce sync.Once

// RegisterBuiltinSinks registers the sink implementations of this package
// ("prom", "influx", "nop") with the core registry. Safe to call multiple
// times.
func RegisterBuiltinSinks() {
	registerOnce.Do(func() {
		_ = coremetrics.RegisterMetricsSink("prom", newPromSinkFactory)
		_ = coremetrics.RegisterMetricsSink("influx", newInfluxSinkFactory)
		_ = coremetrics.RegisterMetricsSink("nop", func(map[string]any) (coremetrics.MetricsSink, error) {
			return coremetrics.NopSink{}, nil
		})
	})
}
