package config

import "github.com/kilianp07/vrptw/core/factory"

// MetricsConfig defines settings for metrics sinks.
type MetricsConfig struct {
	// Sinks lists the sinks to instantiate, by type ("prom", "influx",
	// "nop") with per-sink configuration.
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PromAddr, when set, exposes a /metrics endpoint on this address for
	// the duration of the run.
	PromAddr string `json:"prom_addr"`
}
