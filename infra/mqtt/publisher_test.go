package mqtt

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/vrptw/core/metrics"
	"github.com/kilianp07/vrptw/core/model"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type fakeClient struct {
	connected    bool
	connectErr   error
	publishErr   error
	disconnected bool

	topic   string
	qos     byte
	payload []byte
}

func (c *fakeClient) IsConnected() bool { return c.connected }

func (c *fakeClient) Connect() paho.Token {
	if c.connectErr == nil {
		c.connected = true
	}
	return &fakeToken{err: c.connectErr}
}

func (c *fakeClient) Disconnect(uint) {
	c.connected = false
	c.disconnected = true
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	c.topic = topic
	c.qos = qos
	c.payload = payload.([]byte)
	return &fakeToken{err: c.publishErr}
}

func withFakeClient(t *testing.T, cli *fakeClient) {
	t.Helper()
	orig := newMQTTClient
	newMQTTClient = func(*paho.ClientOptions) pahoClient { return cli }
	t.Cleanup(func() { newMQTTClient = orig })
}

func TestPahoPublisher_PublishResult(t *testing.T) {
	cli := &fakeClient{}
	withFakeClient(t, cli)

	pub, err := NewPahoPublisher(Config{Broker: "tcp://broker:1883", Topic: "fleet/results", QoS: 1})
	require.NoError(t, err)

	res := coremetrics.SolveResult{
		RunID:     "run-1",
		Instance:  "C101",
		Vehicles:  2,
		Customers: 4,
		FinalCost: 42.5,
		Feasible:  true,
		Time:      time.Unix(100, 0).UTC(),
	}
	routes := []model.Route{{0, 3}, {2, 1}}
	require.NoError(t, pub.PublishResult(res, routes))

	assert.Equal(t, "fleet/results", cli.topic)
	assert.Equal(t, byte(1), cli.qos)

	var got resultPayload
	require.NoError(t, json.Unmarshal(cli.payload, &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, "C101", got.Instance)
	assert.Equal(t, 42.5, got.Cost)
	assert.True(t, got.Feasible)
	assert.Equal(t, routes, got.Routes)

	pub.Close()
	assert.True(t, cli.disconnected)
}

func TestNewPahoPublisher_ConnectError(t *testing.T) {
	withFakeClient(t, &fakeClient{connectErr: fmt.Errorf("broker down")})
	_, err := NewPahoPublisher(Config{Broker: "tcp://broker:1883", Topic: "fleet/results"})
	assert.Error(t, err)
}

func TestPahoPublisher_PublishError(t *testing.T) {
	cli := &fakeClient{publishErr: fmt.Errorf("timeout")}
	withFakeClient(t, cli)

	pub, err := NewPahoPublisher(Config{Broker: "tcp://broker:1883", Topic: "fleet/results"})
	require.NoError(t, err)
	assert.Error(t, pub.PublishResult(coremetrics.SolveResult{}, nil))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Config{}.Validate())
	assert.NoError(t, Config{Enabled: true, Broker: "tcp://b:1883", Topic: "t"}.Validate())
	assert.Error(t, Config{Enabled: true, Topic: "t"}.Validate())
	assert.Error(t, Config{Enabled: true, Broker: "tcp://b:1883"}.Validate())
}
