// Package grid implements the deterministic movement and collision engine
// that backs the simulated robot. The engine is a pure state machine: it
// owns the robot position, grid bounds, wall set and move history, and
// performs no I/O.
package grid

import (
	"errors"
	"fmt"
	"sync"
)

// Direction is one of the fixed movement directions the robot understands.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
	// Backward moves west, the same displacement as Left: the dog faces
	// east, so "backward" is an alias, not a distinct motion.
	Backward Direction = "backward"
)

// Outcome classifies the result of a single move attempt.
type Outcome string

const (
	Success          Outcome = "success"
	BoundaryBlocked  Outcome = "boundary"
	WallBlocked      Outcome = "obstacle"
	InvalidDirection Outcome = "invalid_direction"
)

// Position is a grid cell. Equality is by field.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// MoveRecord is one entry of the append-only move history.
type MoveRecord struct {
	Direction      Direction `json:"direction"`
	Outcome        Outcome   `json:"outcome"`
	PositionBefore Position  `json:"position_before"`
	SequenceNumber int       `json:"sequence_number"`
}

// Succeeded reports whether the recorded move committed a new position.
func (r MoveRecord) Succeeded() bool {
	return r.Outcome == Success
}

var (
	// ErrWallAtRobot is returned when a wall would be placed on the cell
	// the robot currently occupies.
	ErrWallAtRobot = errors.New("wall placement on robot cell")
	// ErrOutOfBounds is returned when a cell lies outside the grid.
	ErrOutOfBounds = errors.New("cell outside grid bounds")
)

// Engine is the grid state machine.
//
// All mutation happens synchronously inside the caller's goroutine; reads
// are safe from other goroutines (the render loop only ever reads).
// While the engine is not stopped, the current position is always inside
// the grid and never inside a wall. Any illegal move stops the engine
// until Reset is called.
type Engine struct {
	mu      sync.RWMutex
	start   Position
	current Position
	width   int
	height  int
	walls   map[Position]bool
	moveLog []MoveRecord
	stopped bool
}

// New creates an engine with the given bounds and start cell.
// Width and height must be at least 1 and the start cell must be in bounds.
func New(width, height int, start Position) (*Engine, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("grid size %dx%d: %w", width, height, ErrOutOfBounds)
	}
	if !inBounds(start, width, height) {
		return nil, fmt.Errorf("start %s: %w", start, ErrOutOfBounds)
	}
	return &Engine{
		start:   start,
		current: start,
		width:   width,
		height:  height,
		walls:   make(map[Position]bool),
	}, nil
}

func inBounds(p Position, width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// displacement resolves a direction to its per-step delta.
func displacement(d Direction) (dx, dy int, ok bool) {
	switch d {
	case Up:
		return 0, 1, true
	case Down:
		return 0, -1, true
	case Left, Backward:
		return -1, 0, true
	case Right:
		return 1, 0, true
	}
	return 0, 0, false
}

// Move attempts one step in the given direction.
//
// Every call appends exactly one record to the move log, except the
// immediate no-op when the engine is already stopped. Any failure other
// than the stopped no-op is terminal: the engine stays stopped until
// Reset.
func (e *Engine) Move(d Direction) (bool, Outcome) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return false, InvalidDirection
	}

	dx, dy, ok := displacement(d)
	if !ok {
		e.appendRecord(d, InvalidDirection)
		e.stopped = true
		return false, InvalidDirection
	}

	next := Position{X: e.current.X + dx, Y: e.current.Y + dy}

	if !inBounds(next, e.width, e.height) {
		e.appendRecord(d, BoundaryBlocked)
		e.stopped = true
		return false, BoundaryBlocked
	}
	if e.walls[next] {
		e.appendRecord(d, WallBlocked)
		e.stopped = true
		return false, WallBlocked
	}

	e.appendRecord(d, Success)
	e.current = next
	return true, Success
}

// appendRecord must be called with the write lock held, before the
// position is committed so PositionBefore is accurate.
func (e *Engine) appendRecord(d Direction, o Outcome) {
	e.moveLog = append(e.moveLog, MoveRecord{
		Direction:      d,
		Outcome:        o,
		PositionBefore: e.current,
		SequenceNumber: len(e.moveLog) + 1,
	})
}

// AddWall places a wall at the given cell. Placement on the robot's
// current cell or outside the grid is rejected with no state change.
// Placing an existing wall again is a no-op.
func (e *Engine) AddWall(x, y int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := Position{X: x, Y: y}
	if p == e.current {
		return fmt.Errorf("%s: %w", p, ErrWallAtRobot)
	}
	if !inBounds(p, e.width, e.height) {
		return fmt.Errorf("%s: %w", p, ErrOutOfBounds)
	}
	e.walls[p] = true
	return nil
}

// Reset restores the start position, clears the move log and the stopped
// flag. It is unconditional and cannot fail.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current = e.start
	e.moveLog = nil
	e.stopped = false
}

// Position returns the current robot cell.
func (e *Engine) Position() Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Start returns the configured start cell.
func (e *Engine) Start() Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.start
}

// Size returns the grid bounds.
func (e *Engine) Size() (width, height int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.width, e.height
}

// Stopped reports whether the engine halted on an illegal move.
func (e *Engine) Stopped() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stopped
}

// MoveLog returns a copy of the move history.
func (e *Engine) MoveLog() []MoveRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]MoveRecord, len(e.moveLog))
	copy(out, e.moveLog)
	return out
}

// Walls returns a copy of the wall set.
func (e *Engine) Walls() map[Position]bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[Position]bool, len(e.walls))
	for p := range e.walls {
		out[p] = true
	}
	return out
}
