package resmap

import (
	"testing"

	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

func woodAt(target grid.Point) Classifier {
	return func(pt grid.Point) grid.NodeResource {
		if pt == target {
			return grid.NodeWood
		}
		return grid.NodeNothing
	}
}

func anyUsable(grid.Point) bool { return true }

func TestScoringDecaysWithDistance(t *testing.T) {
	topo := grid.NewTorus(20, 20)
	src := grid.Point{X: 10, Y: 10}
	m := New(gameworld.ResourceWood, topo, 8, false)
	m.UpdateAround(src, 3, woodAt(src))

	if got := m.Value(src); got != 9 {
		t.Errorf("value at source = %d, want 9", got)
	}
	nb := topo.Neighbor(src, grid.East)
	if got := m.Value(nb); got != 8 {
		t.Errorf("value at distance 1 = %d, want 8", got)
	}
}

func TestFindBestPosition(t *testing.T) {
	topo := grid.NewTorus(20, 20)
	src := grid.Point{X: 10, Y: 10}
	m := New(gameworld.ResourceWood, topo, 8, false)
	m.UpdateAround(src, 3, woodAt(src))

	if got := m.FindBestPosition(grid.Point{X: 9, Y: 10}, 3, 1, anyUsable); got != src {
		t.Errorf("best position = %v, want %v", got, src)
	}
	// Minimum above every score: nothing qualifies.
	if got := m.FindBestPosition(src, 3, 100, anyUsable); got != grid.InvalidPoint {
		t.Errorf("impossible minimum returned %v", got)
	}
}

func TestAvoidExcludesPermanently(t *testing.T) {
	topo := grid.NewTorus(20, 20)
	src := grid.Point{X: 10, Y: 10}
	m := New(gameworld.ResourceWood, topo, 8, false)
	m.UpdateAround(src, 3, woodAt(src))

	m.Avoid(src)
	got := m.FindBestPosition(src, 2, 1, anyUsable)
	if got == src {
		t.Fatal("avoided tile returned")
	}
	if !got.Valid() {
		t.Fatal("no fallback position found")
	}
	if m.Value(got) != 8 {
		t.Errorf("fallback value = %d, want 8", m.Value(got))
	}
}

func TestAvoidSoleCandidateYieldsInvalid(t *testing.T) {
	topo := grid.NewTorus(20, 20)
	src := grid.Point{X: 10, Y: 10}
	m := New(gameworld.ResourceWood, topo, 8, false)
	m.UpdateAround(src, 3, woodAt(src))

	onlySrc := func(pt grid.Point) bool { return pt == src }
	if got := m.FindBestPosition(src, 2, 1, onlySrc); got != src {
		t.Fatalf("sole candidate not found: %v", got)
	}
	// With the only qualifying tile avoided the search comes up empty.
	m.Avoid(src)
	if got := m.FindBestPosition(src, 2, 1, onlySrc); got != grid.InvalidPoint {
		t.Errorf("avoided sole candidate returned %v", got)
	}
}

func TestUnlimitedFloor(t *testing.T) {
	topo := grid.NewTorus(20, 20)
	src := grid.Point{X: 10, Y: 10}
	m := New(gameworld.ResourceGold, topo, 2, true)

	gold := func(pt grid.Point) grid.NodeResource {
		if pt == src {
			return grid.NodeGold
		}
		return grid.NodeNothing
	}
	m.UpdateAround(src, 2, gold)
	if m.Value(src) == 0 {
		t.Fatal("source scored zero")
	}
	// Deposit gone; an inexhaustible map keeps a floor of 1.
	m.UpdateAround(src, 2, func(grid.Point) grid.NodeResource { return grid.NodeNothing })
	if got := m.Value(src); got != 1 {
		t.Errorf("unlimited floor = %d, want 1", got)
	}
}

func TestMultipleCountsForSubsurface(t *testing.T) {
	topo := grid.NewTorus(20, 20)
	src := grid.Point{X: 5, Y: 5}
	coal := New(gameworld.ResourceCoal, topo, 2, false)
	wood := New(gameworld.ResourceWood, topo, 8, false)

	multi := func(pt grid.Point) grid.NodeResource {
		if pt == src {
			return grid.NodeMultiple
		}
		return grid.NodeNothing
	}
	coal.UpdateAround(src, 2, multi)
	wood.UpdateAround(src, 2, multi)
	if coal.Value(src) == 0 {
		t.Error("Multiple did not count for a mine map")
	}
	if wood.Value(src) != 0 {
		t.Error("Multiple counted for a surface map")
	}
}
