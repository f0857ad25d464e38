package grid

import "testing"

func TestWrap(t *testing.T) {
	topo := NewTorus(10, 8)
	cases := []struct{ in, want Point }{
		{Point{0, 0}, Point{0, 0}},
		{Point{-1, 0}, Point{9, 0}},
		{Point{10, 8}, Point{0, 0}},
		{Point{-11, -9}, Point{9, 7}},
	}
	for _, c := range cases {
		if got := topo.Wrap(c.in); got != c.want {
			t.Errorf("Wrap(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNeighborOpposite(t *testing.T) {
	topo := NewTorus(10, 10)
	pts := []Point{{0, 0}, {3, 3}, {4, 7}, {9, 9}, {5, 4}}
	for _, p := range pts {
		for d := Direction(0); d < NumDirections; d++ {
			nb := topo.Neighbor(p, d)
			back := topo.Neighbor(nb, d.Opposite())
			if back != p {
				t.Errorf("Neighbor(%v, %v) then opposite gave %v", p, d, back)
			}
		}
	}
}

func TestDistanceWraps(t *testing.T) {
	topo := NewTorus(10, 10)
	if d := topo.Distance(Point{0, 0}, Point{0, 0}); d != 0 {
		t.Errorf("self distance = %d", d)
	}
	if d := topo.Distance(Point{0, 0}, Point{9, 0}); d != 1 {
		t.Errorf("wrap distance = %d, want 1", d)
	}
	a, b := Point{2, 3}, Point{7, 8}
	if topo.Distance(a, b) != topo.Distance(b, a) {
		t.Error("distance not symmetric")
	}
	for d := Direction(0); d < NumDirections; d++ {
		if got := topo.Distance(a, topo.Neighbor(a, d)); got != 1 {
			t.Errorf("neighbor %v at distance %d", d, got)
		}
	}
}

func TestPointsInRadius(t *testing.T) {
	topo := NewTorus(20, 20)
	center := Point{10, 10}

	ring1 := topo.PointsInRadius(center, 1)
	if len(ring1) != 6 {
		t.Fatalf("radius 1: %d points, want 6", len(ring1))
	}
	ring2 := topo.PointsInRadius(center, 2)
	if len(ring2) != 18 {
		t.Fatalf("radius 2: %d points, want 18", len(ring2))
	}
	// Ordered by nondecreasing distance, center excluded.
	prev := 0
	for _, pt := range ring2 {
		d := topo.Distance(center, pt)
		if d == 0 {
			t.Fatal("center included")
		}
		if d < prev {
			t.Fatalf("ordering broken at %v: %d after %d", pt, d, prev)
		}
		prev = d
	}
}
