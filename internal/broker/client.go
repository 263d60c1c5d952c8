// Package broker wraps the paho MQTT client with the narrow surface the
// comparator needs: connect, subscribe to one topic, deliver payload bytes.
package broker

import (
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// Handler receives each message payload in arrival order.
type Handler func(payload []byte)

// Options carry the connection and subscription parameters.
type Options struct {
	URI       string
	ClientID  string
	Username  string
	Password  string
	Keepalive time.Duration
	Topic     string
	QoS       byte
}

// Client is a connected-or-connecting MQTT subscriber.
type Client struct {
	cli      mqtt.Client
	topic    string
	qos      byte
	handle   Handler
	announce func(string)
	log      *slog.Logger
}

// New builds a client that delivers payloads to handle. Connection and
// subscription status lines go through announce, sharing the comparator's
// output stream. A random client id is generated when none is configured.
func New(opts Options, handle Handler, announce func(string), log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	if opts.ClientID == "" {
		opts.ClientID = "mqttdiff-" + uuid.New().String()[:8]
	}

	c := &Client{
		topic:    opts.Topic,
		qos:      opts.QoS,
		handle:   handle,
		announce: announce,
		log:      log,
	}

	po := mqtt.NewClientOptions().
		AddBroker(opts.URI).
		SetClientID(opts.ClientID).
		SetKeepAlive(opts.Keepalive).
		SetAutoReconnect(true).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Warn("connection lost", "error", err)
		})
	if opts.Username != "" {
		po.SetUsername(opts.Username)
		po.SetPassword(opts.Password)
	}

	c.cli = mqtt.NewClient(po)
	return c
}

// onConnect runs on every (re)connect, so the subscription survives broker
// restarts.
func (c *Client) onConnect(cli mqtt.Client) {
	c.announce("Connected to MQTT broker")
	c.announce(fmt.Sprintf("Subscribing to topic: %s (qos=%d)", c.topic, c.qos))

	token := cli.Subscribe(c.topic, c.qos, func(_ mqtt.Client, m mqtt.Message) {
		c.handle(m.Payload())
	})
	token.Wait()
	if err := token.Error(); err != nil {
		c.log.Error("subscribe failed", "topic", c.topic, "error", err)
	}
}

// Connect blocks until the broker accepts the connection or refuses it.
func (c *Client) Connect() error {
	t := c.cli.Connect()
	t.Wait()
	if err := t.Error(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	return nil
}

// Disconnect flushes in-flight work and drops the connection.
func (c *Client) Disconnect() {
	c.cli.Disconnect(250)
}
