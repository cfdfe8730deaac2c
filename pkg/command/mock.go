package command

import "sync"

// MockPublisher implements Publisher without a transport. It records
// every publish for verification and can replay payloads into
// subscribed handlers.
type MockPublisher struct {
	// PublishErr, when set, is returned by every Publish call.
	PublishErr error

	mu        sync.Mutex
	published []MockPublish
	handlers  map[string][]func(payload []byte)
	closed    bool
}

// MockPublish records one Publish invocation.
type MockPublish struct {
	Topic   string
	Payload []byte
	QoS     byte
}

// NewMockPublisher creates an empty recording publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{handlers: make(map[string][]func(payload []byte))}
}

// Publish records the call.
func (m *MockPublisher) Publish(topic string, payload []byte, qos byte) error {
	if m.PublishErr != nil {
		return m.PublishErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	m.published = append(m.published, MockPublish{Topic: topic, Payload: cp, QoS: qos})
	return nil
}

// Subscribe registers the handler for later Deliver calls.
func (m *MockPublisher) Subscribe(topic string, handler func(payload []byte)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[topic] = append(m.handlers[topic], handler)
	return nil
}

// Deliver invokes the handlers subscribed to a topic, simulating an
// inbound transport message.
func (m *MockPublisher) Deliver(topic string, payload []byte) {
	m.mu.Lock()
	handlers := append([]func([]byte){}, m.handlers[topic]...)
	m.mu.Unlock()
	for _, h := range handlers {
		h(payload)
	}
}

// IsConnected reports true until Close.
func (m *MockPublisher) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

// Close marks the publisher disconnected.
func (m *MockPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Published returns a copy of all recorded publishes.
func (m *MockPublisher) Published() []MockPublish {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockPublish, len(m.published))
	copy(out, m.published)
	return out
}

// PublishedOn returns the recorded publishes for one topic.
func (m *MockPublisher) PublishedOn(topic string) []MockPublish {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []MockPublish
	for _, p := range m.published {
		if p.Topic == topic {
			out = append(out, p)
		}
	}
	return out
}

// Reset clears the recorded publishes.
func (m *MockPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = nil
}

// Ensure MockPublisher implements Publisher.
var _ Publisher = (*MockPublisher)(nil)
