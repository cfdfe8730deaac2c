package render

import (
	"sync"
	"testing"
	"time"

	"github.com/openquad/go-go1/pkg/grid"
)

// mockSurface records draw calls and holds scheduled callbacks until
// the test pumps them, making animation order deterministic.
type mockSurface struct {
	mu        sync.Mutex
	calls     []string
	segments  [][2]grid.Position
	scheduled []func()
}

func (m *mockSurface) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockSurface) Clear()                           { m.record("clear") }
func (m *mockSurface) DrawGrid(w, h int)                { m.record("grid") }
func (m *mockSurface) DrawWalls(map[grid.Position]bool) { m.record("walls") }
func (m *mockSurface) DrawRobot(grid.Position)          { m.record("robot") }

func (m *mockSurface) DrawTrailSegment(from, to grid.Position) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "trail")
	m.segments = append(m.segments, [2]grid.Position{from, to})
}

func (m *mockSurface) After(_ time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduled = append(m.scheduled, fn)
}

// pump runs the oldest scheduled callback, simulating one render tick.
func (m *mockSurface) pump(t *testing.T) {
	m.mu.Lock()
	if len(m.scheduled) == 0 {
		m.mu.Unlock()
		t.Fatal("no scheduled callback to pump")
	}
	fn := m.scheduled[0]
	m.scheduled = m.scheduled[1:]
	m.mu.Unlock()
	fn()
}

func (m *mockSurface) segmentList() [][2]grid.Position {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][2]grid.Position, len(m.segments))
	copy(out, m.segments)
	return out
}

func newSync(t *testing.T) (*Sync, *mockSurface, *grid.Engine) {
	t.Helper()
	engine, err := grid.New(5, 5, grid.Position{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	surface := &mockSurface{}
	return New(surface, engine, 10*time.Millisecond), surface, engine
}

func TestMarkReady_ClosesOnce(t *testing.T) {
	s, _, _ := newSync(t)

	select {
	case <-s.Ready():
		t.Fatal("ready before MarkReady")
	default:
	}

	s.MarkReady()
	s.MarkReady() // second call must not panic on the closed channel

	select {
	case <-s.Ready():
	case <-time.After(time.Second):
		t.Fatal("ready channel not closed")
	}
}

func TestRobotMoved_AnimatesThenDrawsTrail(t *testing.T) {
	s, surface, _ := newSync(t)

	from := grid.Position{X: 0, Y: 0}
	to := grid.Position{X: 1, Y: 0}
	s.RobotMoved(from, to, true)

	if !s.Animating() {
		t.Fatal("not animating after successful move")
	}
	if len(surface.segmentList()) != 0 {
		t.Fatal("trail drawn before animation completed")
	}

	surface.pump(t)

	if s.Animating() {
		t.Error("still animating after pump")
	}
	segs := surface.segmentList()
	if len(segs) != 1 || segs[0] != ([2]grid.Position{from, to}) {
		t.Errorf("segments %v, want one %v->%v", segs, from, to)
	}
}

func TestRobotMoved_QueuePreservesOrder(t *testing.T) {
	s, surface, _ := newSync(t)

	a := grid.Position{X: 0, Y: 0}
	b := grid.Position{X: 1, Y: 0}
	c := grid.Position{X: 1, Y: 1}
	d := grid.Position{X: 2, Y: 1}

	// Executor races ahead of the render loop.
	s.RobotMoved(a, b, true)
	s.RobotMoved(b, c, true)
	s.RobotMoved(c, d, true)

	surface.pump(t) // finishes a->b, starts b->c
	surface.pump(t) // finishes b->c, starts c->d
	surface.pump(t) // finishes c->d

	segs := surface.segmentList()
	want := [][2]grid.Position{{a, b}, {b, c}, {c, d}}
	if len(segs) != len(want) {
		t.Fatalf("%d segments, want %d", len(segs), len(want))
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d: %v, want %v", i, segs[i], want[i])
		}
	}
	if s.Animating() {
		t.Error("still animating after queue drained")
	}
}

func TestRobotMoved_FailureResetsAndRedraws(t *testing.T) {
	s, surface, engine := newSync(t)

	// Walk to (1,0), then report a blocked move.
	engine.Move(grid.Right)
	s.RobotMoved(grid.Position{X: 0, Y: 0}, grid.Position{X: 1, Y: 0}, true)
	surface.pump(t)

	engine.Move(grid.Down) // boundary hit, engine stops
	s.RobotMoved(engine.Position(), engine.Position(), false)

	if engine.Stopped() {
		t.Error("engine not reset after collision")
	}
	if engine.Position() != (grid.Position{X: 0, Y: 0}) {
		t.Errorf("position %v after reset, want start", engine.Position())
	}

	// The reset joins the trail rather than clearing it.
	trail := s.Trail()
	if len(trail) != 3 {
		t.Fatalf("trail length %d, want 3 (start, move, reset)", len(trail))
	}
	if trail[2] != (grid.Position{X: 0, Y: 0}) {
		t.Errorf("trail end %v, want reset position", trail[2])
	}
}

func TestRedraw_PaintsTrailSegments(t *testing.T) {
	s, surface, engine := newSync(t)

	engine.Move(grid.Right)
	s.RobotMoved(grid.Position{X: 0, Y: 0}, grid.Position{X: 1, Y: 0}, true)
	surface.pump(t)
	engine.Move(grid.Up)
	s.RobotMoved(grid.Position{X: 1, Y: 0}, grid.Position{X: 1, Y: 1}, true)
	surface.pump(t)

	before := len(surface.segmentList())
	s.Redraw()
	after := len(surface.segmentList())

	if after-before != 2 {
		t.Errorf("redraw painted %d segments, want 2", after-before)
	}
}
