package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kilianp07/vrptw/core/factory"
	coremetrics "github.com/kilianp07/vrptw/core/metrics"
	"github.com/kilianp07/vrptw/infra/logger"
)

// InfluxConfig holds connection settings for the InfluxDB sink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes solver records to an InfluxDB instance using the official
// client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// when the health check fails, so a missing database never blocks a solve.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg.URL, cfg.Token, cfg.Org, cfg.Bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSolveResult writes the run summary as a single point.
func (s *InfluxSink) RecordSolveResult(res coremetrics.SolveResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("solve_result").
		AddTag("instance", res.Instance).
		AddTag("run_id", res.RunID).
		AddField("customers", res.Customers).
		AddField("vehicles", res.Vehicles).
		AddField("initial_cost", res.InitialCost).
		AddField("final_cost", res.FinalCost).
		AddField("iterations", res.Iterations).
		AddField("feasible", res.Feasible).
		AddField("duration_ms", float64(res.Duration.Microseconds())/1000.0).
		SetTime(res.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordMove writes one accepted move as a point.
func (s *InfluxSink) RecordMove(ev coremetrics.MoveEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("solver_move").
		AddTag("run_id", ev.RunID).
		AddTag("operator", ev.Operator).
		AddField("iteration", ev.Iteration).
		AddField("delta", ev.Delta).
		AddField("cost", ev.Cost).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

func newInfluxSinkFactory(conf map[string]any) (coremetrics.MetricsSink, error) {
	var cfg InfluxConfig
	if err := factory.Decode(conf, &cfg); err != nil {
		return nil, err
	}
	return NewInfluxSinkWithFallback(cfg), nil
}
