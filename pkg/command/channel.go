package command

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/openquad/go-go1/internal/log"
)

// moveFreqHz is the republish rate of the continuous-motion loop.
const moveFreqHz = 10

// Vector is one motion command: strafe, turn, vertical and forward
// axes. Each axis is clamped to [-1, 1] before transmission.
type Vector struct {
	X, Y, Z, W float64
}

// Clamp returns the vector with every axis limited to [-1, 1].
func (v Vector) Clamp() Vector {
	return Vector{
		X: clampAxis(v.X),
		Y: clampAxis(v.Y),
		Z: clampAxis(v.Z),
		W: clampAxis(v.W),
	}
}

func clampAxis(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// Encode serializes the vector as four little-endian float32 values,
// the wire format of the controller/stick topic.
func (v Vector) Encode() []byte {
	buf := make([]byte, 16)
	for i, axis := range [4]float64{v.X, v.Y, v.Z, v.W} {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(float32(axis)))
	}
	return buf
}

// Channel publishes motion commands on a Publisher. It is stateless
// apart from the transport handle; every vector is constructed per
// call.
type Channel struct {
	pub Publisher
}

// NewChannel wraps a publisher.
func NewChannel(pub Publisher) *Channel {
	return &Channel{pub: pub}
}

// PublishVector clamps and sends one motion vector, at-most-once.
func (c *Channel) PublishVector(x, y, z, w float64) error {
	v := Vector{X: x, Y: y, Z: z, W: w}.Clamp()
	if err := c.pub.Publish(TopicStick, v.Encode(), 0); err != nil {
		return fmt.Errorf("publish vector: %w", err)
	}
	return nil
}

// Stop sends the zero vector.
func (c *Channel) Stop() error {
	return c.PublishVector(0, 0, 0, 0)
}

// ChangeMode requests a locomotion mode. A zero vector is published
// first so the mode transition never happens mid-motion.
func (c *Channel) ChangeMode(mode Mode) error {
	if err := c.Stop(); err != nil {
		return err
	}
	if err := c.pub.Publish(TopicAction, []byte(mode), 1); err != nil {
		return fmt.Errorf("publish mode %s: %w", mode, err)
	}
	log.Debug("mode change requested", "mode", string(mode))
	return nil
}

// ChangeLED sets the head LED color through the programming bridge.
func (c *Channel) ChangeLED(r, g, b uint8) error {
	code := fmt.Sprintf("child_conn.send('change_light(%d,%d,%d)')", r, g, b)
	if err := c.pub.Publish(TopicCode, []byte(code), 0); err != nil {
		return fmt.Errorf("publish led color: %w", err)
	}
	return nil
}

// MoveOverTime republishes the same vector at 10 Hz for the given
// duration, then unconditionally publishes a zero vector. The failsafe
// stop means the robot never keeps moving after the call returns, even
// when the caller forgets to stop explicitly.
//
// The loop blocks the calling goroutine for the whole duration; there
// is no mid-flight cancel. Callers needing earlier termination must
// bound the duration up front.
func (c *Channel) MoveOverTime(x, y, z, w float64, duration time.Duration) error {
	defer func() {
		if err := c.Stop(); err != nil {
			log.Warn("failsafe stop failed", "error", err)
		}
	}()

	interval := time.Second / moveFreqHz
	ticks := int(duration / interval)
	var firstErr error
	for i := 0; i < ticks; i++ {
		if err := c.PublishVector(x, y, z, w); err != nil && firstErr == nil {
			firstErr = err
		}
		time.Sleep(interval)
	}
	return firstErr
}
