// Package robot is the top-level facade: one Robot value drives either
// the grid simulator or the physical Go1 with identical move calls.
//
// The backend is fixed at construction and never swapped for the
// lifetime of the value. Simulator-only operations (walls, mazes,
// move log) degrade gracefully on hardware instead of failing.
package robot

import (
	"context"
	"errors"
	"time"

	"github.com/openquad/go-go1/internal/config"
	"github.com/openquad/go-go1/internal/log"
	"github.com/openquad/go-go1/pkg/backend"
	"github.com/openquad/go-go1/pkg/command"
	"github.com/openquad/go-go1/pkg/grid"
	"github.com/openquad/go-go1/pkg/render"
	"github.com/openquad/go-go1/pkg/telemetry"
)

// ErrNotSimulated is returned by world-shaping operations when the
// robot runs on a non-simulated backend.
var ErrNotSimulated = errors.New("robot: operation requires the simulated backend")

// Robot drives one backend through a uniform move API.
type Robot struct {
	cfg config.Config
	bk  backend.Robot

	// simulator-only, nil on hardware and mock
	engine *grid.Engine
	sync   *render.Sync
}

// NewSimulated builds a simulated robot with a fresh grid engine and
// a render sync drawing on surface. A nil surface disables rendering.
func NewSimulated(cfg config.Config, surface render.Surface) (*Robot, error) {
	engine, err := grid.New(cfg.Sim.GridWidth, cfg.Sim.GridHeight,
		grid.Position{X: cfg.Sim.StartX, Y: cfg.Sim.StartY})
	if err != nil {
		return nil, err
	}

	r := &Robot{
		cfg:    cfg,
		bk:     backend.NewSimulated(engine),
		engine: engine,
	}
	if surface != nil {
		delay := time.Duration(cfg.Sim.MoveDelayMs) * time.Millisecond
		r.sync = render.New(surface, engine, delay)
	}
	return r, nil
}

// NewHardware connects to the physical robot, falling back to the
// recording mock when the broker is unreachable. Kind reports which
// one you got.
func NewHardware(cfg config.Config) *Robot {
	return &Robot{
		cfg: cfg,
		bk:  backend.Connect(cfg.Robot),
	}
}

// NewWithBackend wraps an existing backend. Used by tests and by
// callers that construct the backend themselves.
func NewWithBackend(cfg config.Config, bk backend.Robot) *Robot {
	r := &Robot{cfg: cfg, bk: bk}
	if sim, ok := bk.(*backend.Simulated); ok {
		r.engine = sim.Engine()
	}
	return r
}

// Start blocks until the render surface has drawn the initial scene,
// so scripted moves are never lost before a viewer can see them. It
// returns immediately when rendering is disabled.
func (r *Robot) Start(ctx context.Context) error {
	if r.sync == nil {
		return nil
	}
	select {
	case <-r.sync.Ready():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AttachRenderer wires a draw surface to a simulated robot after
// construction, for callers whose surface needs the engine first (the
// web dashboard does). No-op on other backends.
func (r *Robot) AttachRenderer(surface render.Surface) {
	if r.engine == nil || surface == nil {
		return
	}
	delay := time.Duration(r.cfg.Sim.MoveDelayMs) * time.Millisecond
	r.sync = render.New(surface, r.engine, delay)
}

// Engine exposes the simulated world, nil on other backends.
func (r *Robot) Engine() *grid.Engine {
	return r.engine
}

// moveParams carries the per-move speed and duration.
type moveParams struct {
	speed    float64
	duration float64
}

// MoveOption overrides the configured motion parameters for one move.
type MoveOption func(*moveParams)

// WithSpeed sets the stick magnitude for this move. Values outside
// [0,1] are clamped downstream.
func WithSpeed(speed float64) MoveOption {
	return func(p *moveParams) { p.speed = speed }
}

// WithDuration sets how long the move is held, in seconds.
func WithDuration(seconds float64) MoveOption {
	return func(p *moveParams) { p.duration = seconds }
}

// paramsFor picks the configured defaults for a direction: forward
// and backward steps use the move parameters, sideways steps the turn
// parameters.
func (r *Robot) paramsFor(direction string) moveParams {
	rc := r.cfg.Robot
	switch direction {
	case string(grid.Left), string(grid.Right):
		return moveParams{speed: rc.TurnSpeed, duration: rc.TurnTime}
	default:
		return moveParams{speed: rc.MoveSpeed, duration: rc.MoveTime}
	}
}

// Move performs one step in the given direction and reports success.
// The same call works against every backend.
func (r *Robot) Move(direction string, opts ...MoveOption) bool {
	params := r.paramsFor(direction)
	for _, opt := range opts {
		opt(&params)
	}

	if r.engine == nil {
		return r.bk.Move(direction, params.speed, params.duration)
	}

	from := r.engine.Position()
	logBefore := len(r.engine.MoveLog())

	ok := r.bk.Move(direction, params.speed, params.duration)

	if r.sync != nil && len(r.engine.MoveLog()) > logBefore {
		r.sync.RobotMoved(from, r.engine.Position(), ok)
	}
	return ok
}

// AddWall places a wall in the simulated world. On hardware it is a
// logged no-op: the real world supplies its own obstacles.
func (r *Robot) AddWall(x, y int) error {
	if r.engine == nil {
		log.Info("walls only exist in the simulator", "backend", r.bk.Kind())
		return nil
	}
	if err := r.engine.AddWall(x, y); err != nil {
		return err
	}
	if r.sync != nil {
		r.sync.Redraw()
	}
	return nil
}

// LoadMaze replaces the simulated world with the given layout.
func (r *Robot) LoadMaze(layout []string) error {
	if r.engine == nil {
		return ErrNotSimulated
	}
	if err := r.engine.LoadMaze(layout); err != nil {
		return err
	}
	if r.sync != nil {
		r.sync.Reload()
	}
	return nil
}

// Reset returns the simulated robot to its start cell and clears the
// stopped flag. On hardware it is a logged no-op.
func (r *Robot) Reset() {
	if r.engine == nil {
		log.Info("reset only applies to the simulator", "backend", r.bk.Kind())
		return
	}
	r.engine.Reset()
	if r.sync != nil {
		r.sync.Reload()
	}
}

// Position reports the simulated cell, or a zero position on other
// backends.
func (r *Robot) Position() grid.Position {
	if r.engine == nil {
		return grid.Position{}
	}
	return r.engine.Position()
}

// Stopped reports whether the simulated robot has hit something.
func (r *Robot) Stopped() bool {
	if r.engine == nil {
		return false
	}
	return r.engine.Stopped()
}

// MoveLog returns the simulator's move history, nil on other backends.
func (r *Robot) MoveLog() []grid.MoveRecord {
	if r.engine == nil {
		return nil
	}
	return r.engine.MoveLog()
}

// Kind identifies the active backend variant.
func (r *Robot) Kind() backend.Kind {
	return r.bk.Kind()
}

// Backend exposes the underlying backend for variant-specific calls.
func (r *Robot) Backend() backend.Robot {
	return r.bk
}

// RenderSync returns the attached render sync, nil when rendering is
// disabled or the backend is not simulated.
func (r *Robot) RenderSync() *render.Sync {
	return r.sync
}

// LatestTelemetry returns the most recent robot status frame, nil
// until one arrives or on non-hardware backends.
func (r *Robot) LatestTelemetry() *telemetry.RobotState {
	if hw, ok := r.bk.(*backend.Hardware); ok {
		return hw.LatestTelemetry()
	}
	return nil
}

// LatestBMS returns the most recent battery frame, nil until one
// arrives or on non-hardware backends.
func (r *Robot) LatestBMS() *telemetry.BMSState {
	if hw, ok := r.bk.(*backend.Hardware); ok {
		return hw.LatestBMS()
	}
	return nil
}

// ChangeMode switches the locomotion mode on backends that have one.
func (r *Robot) ChangeMode(mode string) error {
	m, err := command.ParseMode(mode)
	if err != nil {
		return err
	}
	switch bk := r.bk.(type) {
	case *backend.Hardware:
		return bk.ChangeMode(m)
	case *backend.Mock:
		return bk.ChangeMode(m)
	default:
		log.Info("mode changes only apply to the physical robot", "backend", r.bk.Kind())
		return nil
	}
}

// ChangeLED sets the head LED color on the physical robot.
func (r *Robot) ChangeLED(red, green, blue uint8) error {
	if hw, ok := r.bk.(*backend.Hardware); ok {
		return hw.ChangeLED(red, green, blue)
	}
	log.Info("LED control only applies to the physical robot", "backend", r.bk.Kind())
	return nil
}

// Close releases the backend.
func (r *Robot) Close() error {
	return r.bk.Close()
}
