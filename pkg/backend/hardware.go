package backend

import (
	"fmt"
	"sync"
	"time"

	"github.com/openquad/go-go1/internal/config"
	"github.com/openquad/go-go1/internal/log"
	"github.com/openquad/go-go1/pkg/command"
	"github.com/openquad/go-go1/pkg/telemetry"
)

// standSettleDelay is how long the robot gets to stabilize between the
// Stand request and the initial locomotion mode. Overridable in tests.
var standSettleDelay = 2 * time.Second

// Hardware drives a physical Go1 through the command channel and
// consumes its telemetry topics.
type Hardware struct {
	channel *command.Channel
	pub     command.Publisher
	cfg     config.RobotConfig

	// Latest decoded frames, swapped wholesale under the mutex so a
	// reader never observes a half-updated frame.
	mu    sync.RWMutex
	robot *telemetry.RobotState
	bms   *telemetry.BMSState
}

// NewHardware wires a backend onto an existing transport. Most callers
// want Connect, which also handles broker dialing and mock fallback.
func NewHardware(pub command.Publisher, cfg config.RobotConfig) (*Hardware, error) {
	h := &Hardware{
		channel: command.NewChannel(pub),
		pub:     pub,
		cfg:     cfg,
	}

	if err := pub.Subscribe(command.TopicFirmware, h.handleRobotFrame); err != nil {
		return nil, fmt.Errorf("subscribe robot telemetry: %w", err)
	}
	if err := pub.Subscribe(command.TopicBMS, h.handleBMSFrame); err != nil {
		return nil, fmt.Errorf("subscribe bms telemetry: %w", err)
	}
	return h, nil
}

// Connect dials the robot's broker and returns a hardware backend, or
// a mock when the robot is unreachable. The fallback is first-class:
// callers observe it through Kind, never through an error.
func Connect(cfg config.RobotConfig) Robot {
	pub, err := command.ConnectMQTT(cfg.Host)
	if err != nil {
		log.Warn("robot unreachable, using mock backend", "host", cfg.Host, "error", err)
		return NewMock(cfg)
	}

	h, err := NewHardware(pub, cfg)
	if err != nil {
		log.Warn("telemetry subscription failed, using mock backend", "error", err)
		pub.Close()
		return NewMock(cfg)
	}

	if err := h.initialize(); err != nil {
		log.Warn("robot initialization incomplete", "error", err)
	}
	return h
}

// initialize runs the safe startup sequence: stand, settle, then the
// configured locomotion mode.
func (h *Hardware) initialize() error {
	if err := h.channel.ChangeMode(command.ModeStand); err != nil {
		return err
	}
	time.Sleep(standSettleDelay)

	mode, err := command.ParseMode(h.cfg.InitialMode)
	if err != nil {
		mode = command.ModeWalk
		log.Warn("unknown initial mode, defaulting to walk", "mode", h.cfg.InitialMode)
	}
	return h.channel.ChangeMode(mode)
}

// Move maps a direction to a motion vector and runs it for the given
// duration. Speed is clamped to [0,1] before it reaches the transport.
func (h *Hardware) Move(direction string, speed, duration float64) bool {
	d, ok := normalizeDirection(direction)
	if !ok {
		log.Warn("invalid direction", "direction", direction)
		return false
	}

	speed = clampSpeed(speed)
	dur := time.Duration(duration * float64(time.Second))

	var err error
	switch d {
	case "up":
		err = h.channel.MoveOverTime(0, 0, 0, speed, dur)
	case "down":
		err = h.channel.MoveOverTime(0, 0, 0, -speed, dur)
	case "left":
		err = h.channel.MoveOverTime(-speed, 0, 0, 0, dur)
	case "right":
		err = h.channel.MoveOverTime(speed, 0, 0, 0, dur)
	}
	if err != nil {
		log.Error("move failed", "direction", d, "error", err)
		return false
	}
	return true
}

// ChangeMode requests a locomotion mode.
func (h *Hardware) ChangeMode(mode command.Mode) error {
	return h.channel.ChangeMode(mode)
}

// ChangeLED sets the head LED color.
func (h *Hardware) ChangeLED(r, g, b uint8) error {
	return h.channel.ChangeLED(r, g, b)
}

// LatestTelemetry returns the last decoded robot status frame, or nil
// before the first frame arrives.
func (h *Hardware) LatestTelemetry() *telemetry.RobotState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.robot
}

// LatestBMS returns the last decoded battery frame, or nil before the
// first frame arrives.
func (h *Hardware) LatestBMS() *telemetry.BMSState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.bms
}

// handleRobotFrame runs on the transport callback goroutine; the frame
// is rebuilt from scratch and swapped in whole.
func (h *Hardware) handleRobotFrame(payload []byte) {
	state := telemetry.DecodeRobot(payload)
	h.mu.Lock()
	h.robot = state
	h.mu.Unlock()
}

func (h *Hardware) handleBMSFrame(payload []byte) {
	state, err := telemetry.DecodeBMS(payload)
	if err != nil {
		log.Warn("undecodable bms frame", "error", err)
		return
	}
	h.mu.Lock()
	h.bms = state
	h.mu.Unlock()
}

// Kind returns KindHardware.
func (h *Hardware) Kind() Kind {
	return KindHardware
}

// Close stops the robot and tears down the transport.
func (h *Hardware) Close() error {
	if err := h.channel.Stop(); err != nil {
		log.Warn("stop on close failed", "error", err)
	}
	return h.pub.Close()
}

// Ensure Hardware implements Robot.
var _ Robot = (*Hardware)(nil)
