// Package command publishes normalized motion vectors and mode changes
// to the Go1 over its pub/sub transport, and runs the bounded-rate
// continuous-motion loop.
package command

// Go1 MQTT topics.
const (
	// TopicStick carries motion vectors: four little-endian float32
	// axes (strafe, turn, vertical, forward), at-most-once.
	TopicStick = "controller/stick"
	// TopicAction carries mode change requests as plain mode strings.
	TopicAction = "controller/action"
	// TopicCode carries snippets for the on-board programming bridge.
	TopicCode = "programming/code"
	// TopicFirmware carries robot status frames (despite the name).
	TopicFirmware = "firmware/version"
	// TopicBMS carries battery state frames.
	TopicBMS = "bms/state"
)

// Publisher is the transport the command channel publishes on. The
// hardware implementation is MQTT; tests substitute a recorder.
type Publisher interface {
	// Publish sends a payload on a topic. QoS 0 is at-most-once,
	// QoS 1 at-least-once.
	Publish(topic string, payload []byte, qos byte) error

	// Subscribe registers a handler for inbound payloads on a topic.
	// Handlers run on the transport's callback goroutine.
	Subscribe(topic string, handler func(payload []byte)) error

	// IsConnected reports whether the transport is usable.
	IsConnected() bool

	// Close tears down the transport.
	Close() error
}
