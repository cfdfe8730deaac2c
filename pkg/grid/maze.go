package grid

import (
	"errors"
	"fmt"
)

// Maze layout symbols.
const (
	cellEmpty = '.'
	cellWall  = '#'
	cellStart = 'S'
)

var (
	// ErrEmptyLayout is returned for a layout with no rows or columns.
	ErrEmptyLayout = errors.New("empty maze layout")
	// ErrRaggedLayout is returned when rows differ in length.
	ErrRaggedLayout = errors.New("maze rows have unequal length")
	// ErrBadSymbol is returned for a cell symbol outside {., #, S}.
	ErrBadSymbol = errors.New("unknown maze symbol")
	// ErrStartInWall is returned when the resolved start cell is a wall
	// and the layout carries no explicit start marker.
	ErrStartInWall = errors.New("start position inside a wall")
)

// LoadMaze replaces the grid bounds, wall set and (when the layout marks
// one) the start position from a symbol grid of '.' (empty), '#' (wall)
// and 'S' (start, first occurrence wins).
//
// Row 0 of the layout maps to the highest y: layouts read top-down the
// way the rendered scene looks, while the engine keeps y=0 at the
// bottom. Loading clears the move log and the stopped flag.
func (e *Engine) LoadMaze(layout []string) error {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return ErrEmptyLayout
	}

	height := len(layout)
	width := len(layout[0])
	walls := make(map[Position]bool)

	var start *Position
	for row, line := range layout {
		if len(line) != width {
			return fmt.Errorf("row %d: %w", row, ErrRaggedLayout)
		}
		y := height - 1 - row
		for x, cell := range []byte(line) {
			switch cell {
			case cellWall:
				walls[Position{X: x, Y: y}] = true
			case cellStart:
				if start == nil {
					start = &Position{X: x, Y: y}
				}
			case cellEmpty:
			default:
				return fmt.Errorf("row %d col %d %q: %w", row, x, cell, ErrBadSymbol)
			}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if start == nil {
		if walls[e.start] {
			return fmt.Errorf("%s: %w", e.start, ErrStartInWall)
		}
		if !inBounds(e.start, width, height) {
			return fmt.Errorf("start %s: %w", e.start, ErrOutOfBounds)
		}
	}

	e.width = width
	e.height = height
	e.walls = walls
	if start != nil {
		e.start = *start
	}
	e.current = e.start
	e.moveLog = nil
	e.stopped = false
	return nil
}
