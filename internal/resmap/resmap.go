// Package resmap implements the per-resource desirability maps used to
// rank candidate building sites. A map is a dense scalar field over the
// grid: the value at a tile aggregates matching resource tiles within
// the resource's search radius, decayed by distance. Maps are refreshed
// lazily around points of interest, never globally per tick.
package resmap

import (
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

// Classifier reports the resource class of a tile as the AI currently
// understands it.
type Classifier func(pt grid.Point) grid.NodeResource

// Map is one resource's desirability field plus its avoid-set.
type Map struct {
	Res       gameworld.Resource
	Radius    int // aggregation radius for this resource kind
	Unlimited bool

	topo   grid.Torus
	values []int
	avoid  []bool
}

// nodeResourceOf maps a desirability-map kind to the node classification
// it aggregates. Borderland has no node class; it is scored separately.
func nodeResourceOf(res gameworld.Resource) grid.NodeResource {
	switch res {
	case gameworld.ResourceWood:
		return grid.NodeWood
	case gameworld.ResourceStones:
		return grid.NodeStones
	case gameworld.ResourceGold:
		return grid.NodeGold
	case gameworld.ResourceIronOre:
		return grid.NodeIronOre
	case gameworld.ResourceCoal:
		return grid.NodeCoal
	case gameworld.ResourceGranite:
		return grid.NodeGranite
	case gameworld.ResourceFish:
		return grid.NodeFish
	case gameworld.ResourcePlantspace:
		return grid.NodePlantspace
	default:
		return grid.NodeNothing
	}
}

// New allocates a desirability map for the whole grid.
func New(res gameworld.Resource, topo grid.Torus, radius int, unlimited bool) *Map {
	return &Map{
		Res:       res,
		Radius:    radius,
		Unlimited: unlimited,
		topo:      topo,
		values:    make([]int, topo.NumPoints()),
		avoid:     make([]bool, topo.NumPoints()),
	}
}

// Value returns the current desirability at a tile.
func (m *Map) Value(pt grid.Point) int {
	return m.values[m.topo.Index(m.topo.Wrap(pt))]
}

// matches reports whether a tile's classification counts toward this map.
// Multiple counts for every sub-surface kind: it means a sub-surface
// resource hidden under surface wood or stone.
func (m *Map) matches(res grid.NodeResource) bool {
	if m.Res == gameworld.ResourceBorderland {
		// Borderland classifiers emit any non-Nothing marker for border
		// tiles; there is no node class for it.
		return res != grid.NodeNothing
	}
	want := nodeResourceOf(m.Res)
	if res == want {
		return true
	}
	if res == grid.NodeMultiple {
		switch m.Res {
		case gameworld.ResourceGold, gameworld.ResourceIronOre,
			gameworld.ResourceCoal, gameworld.ResourceGranite:
			return true
		}
	}
	return false
}

// UpdateAround recomputes the field for every tile within radius of pt.
// The classify callback supplies the current tile classification, or a
// border check for the borderland map.
func (m *Map) UpdateAround(pt grid.Point, radius int, classify Classifier) {
	region := m.topo.PointsInRadius(pt, radius)
	m.recompute(pt, classify)
	for _, cur := range region {
		m.recompute(cur, classify)
	}
}

func (m *Map) recompute(pt grid.Point, classify Classifier) {
	score := 0
	if m.matches(classify(pt)) {
		score += m.Radius + 1
	}
	for _, near := range m.topo.PointsInRadius(pt, m.Radius) {
		if m.matches(classify(near)) {
			score += m.Radius + 1 - m.topo.Distance(pt, near)
		}
	}
	idx := m.topo.Index(m.topo.Wrap(pt))
	if m.Unlimited && score < 1 && m.values[idx] > 0 {
		// Inexhaustible world setting: a spot that ever produced keeps a
		// minimum productive value.
		score = 1
	}
	m.values[idx] = score
}

// Avoid permanently excludes a tile from best-position queries. Used
// when a placement passed the score check but failed post-hoc
// validation (no reachable fish, stone out of range, ...).
func (m *Map) Avoid(pt grid.Point) {
	m.avoid[m.topo.Index(m.topo.Wrap(pt))] = true
}

// Avoided reports whether a tile is excluded.
func (m *Map) Avoided(pt grid.Point) bool {
	return m.avoid[m.topo.Index(m.topo.Wrap(pt))]
}

// ClearAvoid removes an exclusion.
func (m *Map) ClearAvoid(pt grid.Point) {
	m.avoid[m.topo.Index(m.topo.Wrap(pt))] = false
}

// FindBestPosition scans tiles within radius of pt that satisfy the
// usable predicate (reachability, ownership, building size fit) and are
// not avoided, and returns the highest-valued one meeting the minimum
// score. Returns grid.InvalidPoint when nothing qualifies.
func (m *Map) FindBestPosition(pt grid.Point, radius, minimum int, usable func(grid.Point) bool) grid.Point {
	best := grid.InvalidPoint
	bestScore := minimum - 1
	candidates := append([]grid.Point{m.topo.Wrap(pt)}, m.topo.PointsInRadius(pt, radius)...)
	for _, cur := range candidates {
		if m.Avoided(cur) || !usable(cur) {
			continue
		}
		if v := m.Value(cur); v > bestScore {
			bestScore = v
			best = cur
		}
	}
	return best
}

// Borderland builds the classifier for the borderland map: tiles score
// by proximity to the player's border, which is how military buildings
// are drawn toward contested ground.
func Borderland(isBorder func(grid.Point) bool) Classifier {
	return func(pt grid.Point) grid.NodeResource {
		if isBorder(pt) {
			return grid.NodeMultiple
		}
		return grid.NodeNothing
	}
}
