// Package grid provides the toroidal hex-like map topology and the dense
// per-tile node cache the AI reasons over. Tiles are addressed by (x, y)
// offset coordinates; odd rows are shifted half a tile east, giving each
// tile six neighbors. Both axes wrap.
package grid

// Point is a tile position in offset coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InvalidPoint is the sentinel returned by searches that found nothing.
var InvalidPoint = Point{X: -1, Y: -1}

// Valid reports whether p is a real tile position.
func (p Point) Valid() bool {
	return p.X >= 0 && p.Y >= 0
}

// Direction identifies one of the six neighbor directions.
type Direction uint8

const (
	West Direction = iota
	NorthWest
	NorthEast
	East
	SouthEast
	SouthWest
	NumDirections
)

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return Direction((d + 3) % NumDirections)
}

func (d Direction) String() string {
	switch d {
	case West:
		return "W"
	case NorthWest:
		return "NW"
	case NorthEast:
		return "NE"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case SouthWest:
		return "SW"
	default:
		return "?"
	}
}

// Torus describes the wrapping map extent.
type Torus struct {
	W int
	H int
}

// NewTorus creates a topology of the given extent.
func NewTorus(w, h int) Torus {
	return Torus{W: w, H: h}
}

// NumPoints returns the total tile count.
func (t Torus) NumPoints() int {
	return t.W * t.H
}

// Index maps a point to its position in a dense per-tile slice.
func (t Torus) Index(p Point) int {
	return p.Y*t.W + p.X
}

// PointAt is the inverse of Index.
func (t Torus) PointAt(i int) Point {
	return Point{X: i % t.W, Y: i / t.W}
}

// Wrap normalizes a point onto the torus.
func (t Torus) Wrap(p Point) Point {
	p.X = ((p.X % t.W) + t.W) % t.W
	p.Y = ((p.Y % t.H) + t.H) % t.H
	return p
}

// neighborOffsets is indexed by row parity then direction. Odd rows are
// shifted east, so the diagonal neighbors depend on parity.
var neighborOffsets = [2][NumDirections]Point{
	{ // even row
		{-1, 0}, {-1, -1}, {0, -1}, {1, 0}, {0, 1}, {-1, 1},
	},
	{ // odd row
		{-1, 0}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1},
	},
}

// Neighbor returns the adjacent tile in the given direction.
func (t Torus) Neighbor(p Point, d Direction) Point {
	off := neighborOffsets[p.Y&1][d]
	return t.Wrap(Point{X: p.X + off.X, Y: p.Y + off.Y})
}

// Neighbors returns all six adjacent tiles.
func (t Torus) Neighbors(p Point) [NumDirections]Point {
	var result [NumDirections]Point
	for d := Direction(0); d < NumDirections; d++ {
		result[d] = t.Neighbor(p, d)
	}
	return result
}

// axial converts offset coordinates to axial hex coordinates for distance
// math. The torus wrap is handled by Distance, not here.
func axial(p Point) (q, r int) {
	return p.X - (p.Y-(p.Y&1))/2, p.Y
}

func hexDist(aq, ar, bq, br int) int {
	dq := aq - bq
	dr := ar - br
	ds := -dq - dr
	if dq < 0 {
		dq = -dq
	}
	if dr < 0 {
		dr = -dr
	}
	if ds < 0 {
		ds = -ds
	}
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

// Distance returns the hex distance between two tiles, taking the shorter
// way around the torus on both axes.
func (t Torus) Distance(a, b Point) int {
	a = t.Wrap(a)
	b = t.Wrap(b)
	best := -1
	// Try the nine wrap translations of b and keep the shortest.
	for _, dy := range [3]int{-t.H, 0, t.H} {
		for _, dx := range [3]int{-t.W, 0, t.W} {
			shifted := Point{X: b.X + dx, Y: b.Y + dy}
			aq, ar := axial(a)
			bq, br := axial(shifted)
			d := hexDist(aq, ar, bq, br)
			if best < 0 || d < best {
				best = d
			}
		}
	}
	return best
}

// PointsInRadius returns all tiles within the given hex distance of center,
// ordered by increasing distance. The center itself is excluded.
func (t Torus) PointsInRadius(center Point, radius int) []Point {
	center = t.Wrap(center)
	type entry struct {
		pt   Point
		dist int
	}
	visited := map[Point]bool{center: true}
	queue := []entry{{pt: center, dist: 0}}
	var result []Point
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.dist >= radius {
			continue
		}
		for _, nb := range t.Neighbors(cur.pt) {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			result = append(result, nb)
			queue = append(queue, entry{pt: nb, dist: cur.dist + 1})
		}
	}
	return result
}
