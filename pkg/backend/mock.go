package backend

import (
	"sync"

	"github.com/openquad/go-go1/internal/config"
	"github.com/openquad/go-go1/internal/log"
	"github.com/openquad/go-go1/pkg/command"
)

// Mock satisfies the move contract without any transport. Every
// command is recorded so tests can assert on what would have been sent
// to the robot.
type Mock struct {
	cfg config.RobotConfig

	mu   sync.Mutex
	cmds []MockCommand
	mode command.Mode
}

// MockCommand records one movement or mode command.
type MockCommand struct {
	Action   string // "forward", "backward", "left", "right", "mode"
	Mode     command.Mode
	Speed    float64
	Duration float64
}

// directionActions maps backend directions to the motion the hardware
// would perform.
var directionActions = map[string]string{
	"up":    "forward",
	"down":  "backward",
	"left":  "left",
	"right": "right",
}

// NewMock creates a mock backend in the configured initial mode.
func NewMock(cfg config.RobotConfig) *Mock {
	m := &Mock{cfg: cfg}
	if mode, err := command.ParseMode(cfg.InitialMode); err == nil {
		m.mode = mode
	} else {
		m.mode = command.ModeWalk
	}
	return m
}

// Move validates and records the command, mirroring the hardware
// contract including the speed clamp.
func (m *Mock) Move(direction string, speed, duration float64) bool {
	d, ok := normalizeDirection(direction)
	if !ok {
		log.Warn("invalid direction", "direction", direction)
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cmds = append(m.cmds, MockCommand{
		Action:   directionActions[d],
		Speed:    clampSpeed(speed),
		Duration: duration,
	})
	return true
}

// ChangeMode records the mode request.
func (m *Mock) ChangeMode(mode command.Mode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = mode
	m.cmds = append(m.cmds, MockCommand{Action: "mode", Mode: mode})
	return nil
}

// Mode returns the last requested mode.
func (m *Mock) Mode() command.Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Commands returns a copy of all recorded commands.
func (m *Mock) Commands() []MockCommand {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCommand, len(m.cmds))
	copy(out, m.cmds)
	return out
}

// Reset clears the recorded commands.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cmds = nil
}

// Kind returns KindMock.
func (m *Mock) Kind() Kind {
	return KindMock
}

// Close is a no-op.
func (m *Mock) Close() error {
	return nil
}

// Ensure Mock implements Robot.
var _ Robot = (*Mock)(nil)
