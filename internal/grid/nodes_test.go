package grid

import "testing"

func allFeasible(Point) bool { return true }

func TestFloodReachable(t *testing.T) {
	topo := NewTorus(12, 12)
	m := NewNodeMap(topo)
	m.FloodReachable([]Point{{5, 5}}, allFeasible)
	for i := 0; i < topo.NumPoints(); i++ {
		if !m.At(topo.PointAt(i)).Reachable {
			t.Fatalf("tile %v not reached", topo.PointAt(i))
		}
	}
}

func TestFloodRespectsFeasibility(t *testing.T) {
	topo := NewTorus(12, 12)
	m := NewNodeMap(topo)
	blocked := Point{5, 6}
	m.FloodReachable([]Point{{5, 5}}, func(p Point) bool { return p != blocked })
	if m.At(blocked).Reachable {
		t.Error("infeasible tile became reachable")
	}
}

func TestFailedPenaltyCoolsDown(t *testing.T) {
	topo := NewTorus(12, 12)
	m := NewNodeMap(topo)
	p := Point{5, 6}
	m.MarkFailed(p)
	if m.At(p).Reachable {
		t.Fatal("failed tile still reachable")
	}

	// Each flood pass decrements the penalty instead of re-adding the
	// tile; only after the cooldown does it rejoin.
	for i := 0; i < maxFailedPenalty; i++ {
		m.FloodReachable([]Point{{5, 5}}, allFeasible)
		if m.At(p).Reachable {
			t.Fatalf("tile rejoined after %d passes, penalty should hold %d", i+1, maxFailedPenalty)
		}
	}
	m.FloodReachable([]Point{{5, 5}}, allFeasible)
	if !m.At(p).Reachable {
		t.Error("tile did not rejoin after cooldown")
	}
}

func TestUpdateReachableRevokes(t *testing.T) {
	topo := NewTorus(12, 12)
	m := NewNodeMap(topo)
	m.FloodReachable([]Point{{5, 5}}, allFeasible)

	// Re-flood a region with no anchors inside and nothing feasible:
	// those tiles lose reachability.
	region := topo.PointsInRadius(Point{5, 5}, 2)
	m.UpdateReachable(region,
		func(Point) bool { return false },
		func(Point) bool { return false })
	for _, pt := range region {
		if m.At(pt).Reachable {
			t.Fatalf("tile %v kept reachability without anchor", pt)
		}
	}
}
