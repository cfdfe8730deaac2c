package backend

import (
	"github.com/openquad/go-go1/internal/log"
	"github.com/openquad/go-go1/pkg/grid"
)

// Simulated steps a grid engine: exactly one cell per Move call.
// Speed and duration are accepted for parity and ignored.
type Simulated struct {
	engine *grid.Engine
}

// NewSimulated wraps a grid engine.
func NewSimulated(engine *grid.Engine) *Simulated {
	return &Simulated{engine: engine}
}

// Move performs one grid step. Outcome detail stays inside the engine;
// this layer surfaces only the boolean.
func (s *Simulated) Move(direction string, _, _ float64) bool {
	d, ok := normalizeDirection(direction)
	if !ok {
		log.Warn("invalid direction", "direction", direction)
		return false
	}
	ok, outcome := s.engine.Move(grid.Direction(d))
	if !ok {
		log.Info("move blocked", "direction", d, "outcome", string(outcome))
	}
	return ok
}

// Engine exposes the underlying grid engine for the simulator facade.
func (s *Simulated) Engine() *grid.Engine {
	return s.engine
}

// Kind returns KindSimulated.
func (s *Simulated) Kind() Kind {
	return KindSimulated
}

// Close is a no-op: the engine holds no resources.
func (s *Simulated) Close() error {
	return nil
}

// Ensure Simulated implements Robot.
var _ Robot = (*Simulated)(nil)
