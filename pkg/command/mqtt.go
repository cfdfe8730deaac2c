package command

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/openquad/go-go1/internal/log"
)

// Go1 broker defaults.
const (
	// BrokerPort is the MQTT port of the on-board broker.
	BrokerPort = 1883
	// ConnectTimeout bounds broker connection attempts so an
	// unreachable robot never blocks construction.
	ConnectTimeout = 3 * time.Second

	keepAlive = 5 * time.Second
)

// MQTTPublisher implements Publisher over the robot's on-board MQTT
// broker.
type MQTTPublisher struct {
	client mqtt.Client
}

// Ensure MQTTPublisher implements Publisher.
var _ Publisher = (*MQTTPublisher)(nil)

// ConnectMQTT connects to the broker on the given host. It fails fast:
// an unreachable host returns an error within ConnectTimeout instead
// of retrying.
func ConnectMQTT(host string) (*MQTTPublisher, error) {
	broker := fmt.Sprintf("tcp://%s:%d", host, BrokerPort)
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(fmt.Sprintf("go-go1-%s", uuid.NewString()[:8])).
		SetKeepAlive(keepAlive).
		SetConnectTimeout(ConnectTimeout).
		SetConnectRetry(false).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(ConnectTimeout) {
		client.Disconnect(0)
		return nil, fmt.Errorf("mqtt connect %s: timeout after %s", broker, ConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, err)
	}

	log.Info("connected to robot broker", "broker", broker)
	return &MQTTPublisher{client: client}, nil
}

// Publish sends a payload on a topic with the given QoS.
func (p *MQTTPublisher) Publish(topic string, payload []byte, qos byte) error {
	if !p.client.IsConnected() {
		return fmt.Errorf("publish %s: not connected", topic)
	}
	token := p.client.Publish(topic, qos, false, payload)
	if qos > 0 {
		token.Wait()
	}
	return token.Error()
}

// Subscribe registers a handler for a topic. The handler runs on the
// paho callback goroutine.
func (p *MQTTPublisher) Subscribe(topic string, handler func(payload []byte)) error {
	token := p.client.Subscribe(topic, 1, func(_ mqtt.Client, msg mqtt.Message) {
		handler(msg.Payload())
	})
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

// IsConnected reports whether the broker connection is up.
func (p *MQTTPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(250)
	return nil
}
