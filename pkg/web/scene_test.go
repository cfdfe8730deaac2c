package web

import (
	"testing"

	"github.com/openquad/go-go1/pkg/grid"
)

func TestSortedWalls_Deterministic(t *testing.T) {
	walls := map[grid.Position]bool{
		{X: 3, Y: 1}: true,
		{X: 0, Y: 2}: true,
		{X: 1, Y: 1}: true,
	}

	got := sortedWalls(walls)

	want := []grid.Position{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 0, Y: 2}}
	if len(got) != len(want) {
		t.Fatalf("got %d walls, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("wall %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSortedWalls_Empty(t *testing.T) {
	if got := sortedWalls(nil); len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}
