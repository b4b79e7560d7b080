package mqtt

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/mikesmitty/hygrometry/pkg/env"
)

const (
	publishTimeout = 5 * time.Second
	statusTopic    = "homeassistant/status"
)

type Client struct {
	client      paho.Client
	clientID    string
	topicPrefix string
	qos         byte
	retained    bool
	hassSensors map[string]HassSensor
	envSensors  *envSensors
	closed      bool
	subscribed  []string
	mu          sync.Mutex
	wg          sync.WaitGroup
}

type envSensors struct {
	temperature      string
	humidity         string
	pressure         string
	dewpoint         string
	wetBulb          string
	heatIndex        string
	absoluteHumidity string
	mixingRatio      string
}

func NewClient(broker *url.URL) *Client {
	c := &Client{}

	var urls []*url.URL
	urls = append(urls, broker)

	hostname, _ := os.Hostname()
	hostname = strings.Split(hostname, ".")[0]
	clientID := hostname
	if clientID == "" {
		now := time.Now().UnixNano()
		sum := md5.Sum([]byte(strconv.FormatInt(now, 10)))
		clientID = hex.EncodeToString(sum[:])
	}

	c.qos = 1
	c.topicPrefix = "hygrometry/" + clientID
	c.clientID = clientID
	c.hassSensors = make(map[string]HassSensor)

	slog.Info("connecting to mqtt", "url", broker, "clientid", clientID)
	c.client = paho.NewClient(&paho.ClientOptions{
		Servers:        urls,
		ClientID:       clientID,
		ConnectTimeout: 30 * time.Second,
	})

	return c
}

func (c *Client) Connect() error {
	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		slog.Error("mqtt connection failed", "error", token.Error())
		return fmt.Errorf("mqtt: %w", token.Error())
	}
	return nil
}

// Close drops subscriptions, waits for pending publishes and disconnects.
// Nothing is published after Close.
func (c *Client) Close() {
	c.mu.Lock()
	c.closed = true
	topics := c.subscribed
	c.subscribed = nil
	c.mu.Unlock()

	if len(topics) > 0 {
		if t := c.client.Unsubscribe(topics...); !t.WaitTimeout(publishTimeout) || t.Error() != nil {
			slog.Error("mqtt unsubscribe failed", "error", t.Error(), "topics", topics)
		}
	}
	c.wg.Wait()
	c.client.Disconnect(250)
}

func (c *Client) Subscribe(topic string, handler paho.MessageHandler) error {
	if token := c.client.Subscribe(topic, c.qos, handler); token.Wait() && token.Error() != nil {
		slog.Error("mqtt subscription failed", "error", token.Error())
		return fmt.Errorf("mqtt: %w", token.Error())
	}
	c.mu.Lock()
	c.subscribed = append(c.subscribed, topic)
	c.mu.Unlock()
	return nil
}

func (c *Client) registerEnvSensors() *envSensors {
	if c.envSensors == nil {
		c.envSensors = &envSensors{
			temperature:      c.RegisterHassSensor(c.NewHassSensor("Temperature", HassSensorTemperature)),
			humidity:         c.RegisterHassSensor(c.NewHassSensor("Humidity", HassSensorHumidity)),
			pressure:         c.RegisterHassSensor(c.NewHassSensor("Pressure", HassSensorPressure)),
			dewpoint:         c.RegisterHassSensor(c.NewHassSensor("Dewpoint", HassSensorTemperature)),
			wetBulb:          c.RegisterHassSensor(c.NewHassSensor("Wet Bulb", HassSensorTemperature)),
			heatIndex:        c.RegisterHassSensor(c.NewHassSensor("Heat Index", HassSensorTemperature)),
			absoluteHumidity: c.RegisterHassSensor(c.NewHassSensor("Absolute Humidity", HassSensorAbsoluteHumidity)),
			mixingRatio:      c.RegisterHassSensor(c.NewHassSensor("Mixing Ratio", HassSensorMixingRatio)),
		}
	}
	return c.envSensors
}

type sensorState struct {
	id    string
	state string
}

// states formats the reading for publishing. Home Assistant rejects
// non-numeric measurements, so NaN and Inf values are left out.
func (s *envSensors) states(e env.Env) []sensorState {
	var out []sensorState
	for _, v := range []struct {
		id    string
		value float64
		prec  int
	}{
		{s.temperature, e.Temperature, 2},
		{s.humidity, e.Humidity, 2},
		{s.pressure, e.Pressure, 2},
		{s.dewpoint, e.Dewpoint, 2},
		{s.wetBulb, e.WetBulb, 2},
		{s.heatIndex, e.HeatIndex, 2},
		{s.absoluteHumidity, e.AbsoluteHumidity, 3},
		{s.mixingRatio, e.MixingRatio, 3},
	} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			slog.Debug("mqtt skipping undefined value", "module", "mqtt", "sensor", v.id)
			continue
		}
		out = append(out, sensorState{v.id, strconv.FormatFloat(v.value, 'f', v.prec, 64)})
	}
	return out
}

// PublishEnv announces the sensors on first use and publishes the reading.
func (c *Client) PublishEnv(e env.Env) error {
	first := c.envSensors == nil
	s := c.registerEnvSensors()
	if first {
		c.HassAnnounceAll()
	}

	slog.Debug("mqtt publishing", "module", "mqtt", "temp", e.Temperature, "humidity", e.Humidity)
	for _, st := range s.states(e) {
		if err := c.HassPublishSensor(st.id, st.state); err != nil {
			return err
		}
	}
	return nil
}

// Publish sends msg without waiting for delivery; Close waits for it.
func (c *Client) Publish(topic string, msg string) {
	c.wg.Add(1)
	t := c.client.Publish(topic, c.qos, c.retained, msg)
	go func() {
		defer c.wg.Done()
		_ = t.WaitTimeout(publishTimeout)
		if t.Error() != nil {
			slog.Error("mqtt message publish failed", "error", t.Error(), "topic", topic)
		}
	}()
}
