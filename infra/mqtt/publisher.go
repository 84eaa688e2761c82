package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	coremetrics "github.com/kilianp07/vrptw/core/metrics"
	"github.com/kilianp07/vrptw/core/model"
	"github.com/kilianp07/vrptw/infra/logger"
)

// Config defines the connection parameters for the Paho result publisher.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// Validate checks mandatory fields when the publisher is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("broker is required")
	}
	if c.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	return nil
}

// Publisher pushes finished solutions to downstream fleet systems.
type Publisher interface {
	PublishResult(res coremetrics.SolveResult, routes []model.Route) error
	Close()
}

// resultPayload is the JSON shape published on the result topic.
type resultPayload struct {
	RunID     string        `json:"run_id"`
	Instance  string        `json:"instance"`
	Vehicles  int           `json:"vehicles"`
	Customers int           `json:"customers"`
	Cost      float64       `json:"cost"`
	Feasible  bool          `json:"feasible"`
	Routes    []model.Route `json:"routes"`
	Time      time.Time     `json:"time"`
}

// pahoClient is the subset of the Paho API the publisher needs; tests swap in
// a fake.
type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoPublisher implements Publisher using Eclipse Paho.
type PahoPublisher struct {
	cli   pahoClient
	topic string
	qos   byte
	log   logger.Logger
}

// NewPahoPublisher connects to the MQTT broker described by cfg.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	cli := newMQTTClient(opts)
	if tok := cli.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", tok.Error())
	}
	return &PahoPublisher{
		cli:   cli,
		topic: cfg.Topic,
		qos:   cfg.QoS,
		log:   logger.New("mqtt-publisher"),
	}, nil
}

// PublishResult publishes the solution as JSON on the configured topic.
func (p *PahoPublisher) PublishResult(res coremetrics.SolveResult, routes []model.Route) error {
	payload := resultPayload{
		RunID:     res.RunID,
		Instance:  res.Instance,
		Vehicles:  res.Vehicles,
		Customers: res.Customers,
		Cost:      res.FinalCost,
		Feasible:  res.Feasible,
		Routes:    routes,
		Time:      res.Time,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if tok := p.cli.Publish(p.topic, p.qos, false, data); tok.Wait() && tok.Error() != nil {
		return fmt.Errorf("publish result: %w", tok.Error())
	}
	p.log.Debugf("published result %s to %s", res.RunID, p.topic)
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() {
	if p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
