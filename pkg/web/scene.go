package web

import (
	"sort"

	"github.com/openquad/go-go1/pkg/grid"
)

// SceneEvent is one incremental drawing instruction pushed to viewers.
type SceneEvent struct {
	Type   string          `json:"type"`
	Width  int             `json:"width,omitempty"`
	Height int             `json:"height,omitempty"`
	Walls  []grid.Position `json:"walls,omitempty"`
	Robot  *grid.Position  `json:"robot,omitempty"`
	From   *grid.Position  `json:"from,omitempty"`
	To     *grid.Position  `json:"to,omitempty"`
}

const (
	eventClear = "clear"
	eventGrid  = "grid"
	eventWalls = "walls"
	eventRobot = "robot"
	eventTrail = "trail"
)

func (s *Server) broadcast(ev SceneEvent) {
	if err := s.sceneHub.BroadcastJSON(ev); err != nil {
		// encoding failure only; events are plain structs
		return
	}
}

// Clear wipes the viewers' canvases.
func (s *Server) Clear() {
	s.broadcast(SceneEvent{Type: eventClear})
}

// DrawGrid paints the board outline and cell lines.
func (s *Server) DrawGrid(width, height int) {
	s.broadcast(SceneEvent{Type: eventGrid, Width: width, Height: height})
}

// DrawWalls paints every wall cell.
func (s *Server) DrawWalls(walls map[grid.Position]bool) {
	s.broadcast(SceneEvent{Type: eventWalls, Walls: sortedWalls(walls)})
}

// DrawRobot paints the robot marker at pos.
func (s *Server) DrawRobot(pos grid.Position) {
	p := pos
	s.broadcast(SceneEvent{Type: eventRobot, Robot: &p})
}

// DrawTrailSegment paints one segment of the movement trail.
func (s *Server) DrawTrailSegment(from, to grid.Position) {
	f, t := from, to
	s.broadcast(SceneEvent{Type: eventTrail, From: &f, To: &t})
}

func sortedWalls(walls map[grid.Position]bool) []grid.Position {
	out := make([]grid.Position, 0, len(walls))
	for p := range walls {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
