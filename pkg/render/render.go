// Package render bridges the move-executor and the render loop of the
// grid simulator.
//
// Grid state is final before any animation begins: the executor
// mutates the engine synchronously, then hands a visual transition to
// this package. The render side only ever reads. Transitions are
// animated one at a time; moves that arrive while a transition is
// playing queue up in FIFO order, so the executor can race ahead of
// rendering without corrupting anything.
package render

import (
	"sync"
	"time"

	"github.com/openquad/go-go1/internal/log"
	"github.com/openquad/go-go1/pkg/grid"
)

// Surface is the drawable target. Implementations own the render
// context; After schedules a callback on it and is the only way this
// package runs code there.
type Surface interface {
	Clear()
	DrawGrid(width, height int)
	DrawWalls(walls map[grid.Position]bool)
	DrawRobot(pos grid.Position)
	DrawTrailSegment(from, to grid.Position)
	After(delay time.Duration, fn func())
}

// segment is one queued visual transition.
type segment struct {
	from, to grid.Position
	delay    time.Duration
}

// Sync owns the animation queue and the persistent trail.
type Sync struct {
	surface Surface
	engine  *grid.Engine
	delay   time.Duration

	ready     chan struct{}
	readyOnce sync.Once

	mu        sync.Mutex
	animating bool
	queue     []segment
	trail     []grid.Position
}

// New creates a sync for the given engine and surface. delay is the
// duration of one animated step.
func New(surface Surface, engine *grid.Engine, delay time.Duration) *Sync {
	return &Sync{
		surface: surface,
		engine:  engine,
		delay:   delay,
		ready:   make(chan struct{}),
		trail:   []grid.Position{engine.Position()},
	}
}

// Ready is closed once the surface has signalled it is initialized.
// The move-executor awaits this instead of sleep-polling.
func (s *Sync) Ready() <-chan struct{} {
	return s.ready
}

// MarkReady is called by the surface owner once the render context is
// up. It also draws the initial scene.
func (s *Sync) MarkReady() {
	s.readyOnce.Do(func() {
		s.Redraw()
		close(s.ready)
	})
}

// RobotMoved is called by the move-executor after every move attempt,
// with the engine state already committed.
//
// A successful move becomes a visual transition: played immediately
// when idle, queued otherwise. A failed move triggers an immediate
// reset-and-redraw; the reset position joins the trail so resets stay
// visible as part of the path.
func (s *Sync) RobotMoved(from, to grid.Position, success bool) {
	if !success {
		s.resetAndRedraw()
		return
	}

	s.mu.Lock()
	s.trail = append(s.trail, to)
	if s.animating {
		s.queue = append(s.queue, segment{from: from, to: to, delay: s.delay})
		s.mu.Unlock()
		return
	}
	s.animating = true
	s.mu.Unlock()

	s.animate(segment{from: from, to: to, delay: s.delay})
}

// animate plays one transition on the render context, then drains the
// next queued segment if any.
func (s *Sync) animate(seg segment) {
	s.surface.DrawRobot(seg.from)
	s.surface.After(seg.delay, func() {
		s.surface.DrawTrailSegment(seg.from, seg.to)
		s.surface.DrawRobot(seg.to)

		s.mu.Lock()
		if len(s.queue) > 0 {
			next := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()
			s.animate(next)
			return
		}
		s.animating = false
		s.mu.Unlock()
	})
}

// resetAndRedraw handles a blocked move: the engine goes back to its
// start cell and the whole scene is repainted. The trail is preserved.
func (s *Sync) resetAndRedraw() {
	s.engine.Reset()

	s.mu.Lock()
	s.trail = append(s.trail, s.engine.Position())
	s.queue = nil
	s.animating = false
	s.mu.Unlock()

	log.Info("move blocked, robot reset", "position", s.engine.Position().String())
	s.Redraw()
}

// Redraw repaints the full scene from current engine state: grid,
// walls, every trail segment, then the robot.
func (s *Sync) Redraw() {
	width, height := s.engine.Size()

	s.mu.Lock()
	trail := make([]grid.Position, len(s.trail))
	copy(trail, s.trail)
	s.mu.Unlock()

	s.surface.Clear()
	s.surface.DrawGrid(width, height)
	s.surface.DrawWalls(s.engine.Walls())
	for i := 1; i < len(trail); i++ {
		if trail[i] != trail[i-1] {
			s.surface.DrawTrailSegment(trail[i-1], trail[i])
		}
	}
	s.surface.DrawRobot(s.engine.Position())
}

// Reload discards the trail and any queued animation, reseeds the
// trail at the engine's current position, and repaints. Called after
// the world itself changes, such as loading a new maze.
func (s *Sync) Reload() {
	s.mu.Lock()
	s.trail = []grid.Position{s.engine.Position()}
	s.queue = nil
	s.animating = false
	s.mu.Unlock()

	s.Redraw()
}

// Trail returns a copy of the recorded path, including reset points.
func (s *Sync) Trail() []grid.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]grid.Position, len(s.trail))
	copy(out, s.trail)
	return out
}

// Animating reports whether a transition is currently playing.
func (s *Sync) Animating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.animating
}
