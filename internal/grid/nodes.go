package grid

// BuildQuality is the cached buildability class of a tile.
type BuildQuality uint8

const (
	BQNothing BuildQuality = iota
	BQFlag
	BQHut
	BQHouse
	BQCastle
	BQMine
	BQHarbor
)

// Fits reports whether a tile of quality bq can hold a building that
// requires the given size class. Mines and harbors only match exactly;
// everything else is ordered hut < house < castle.
func (bq BuildQuality) Fits(size BuildQuality) bool {
	switch size {
	case BQMine:
		return bq == BQMine
	case BQHarbor:
		return bq == BQHarbor
	case BQNothing, BQFlag:
		return bq >= size
	default:
		if bq == BQMine || bq == BQHarbor {
			return false
		}
		return bq >= size
	}
}

// NodeResource classifies what a tile offers the economy.
type NodeResource uint8

const (
	NodeNothing NodeResource = iota
	NodePlantspace
	NodeWood
	NodeStones
	NodeGold
	NodeIronOre
	NodeCoal
	NodeGranite
	NodeFish
	NodeMultiple // sub-surface resource under surface wood/stone
)

// Node holds the AI's cached facts about one tile. Nodes are only ever
// mutated by grid refresh operations, never by job execution.
type Node struct {
	Reachable     bool
	FailedPenalty uint8 // cooldown before an unreachable tile is retested
	Quality       BuildQuality
	Resource      NodeResource
	Owned         bool
	Border        bool
	Farmed        bool // blocked for construction by a nearby farm or charburner
}

// NodeMap is the dense per-tile cache. One per controller, sized once.
type NodeMap struct {
	Topo  Torus
	nodes []Node
}

// NewNodeMap allocates a node map for the given topology.
func NewNodeMap(topo Torus) *NodeMap {
	return &NodeMap{Topo: topo, nodes: make([]Node, topo.NumPoints())}
}

// At returns the node for a tile.
func (m *NodeMap) At(p Point) *Node {
	return &m.nodes[m.Topo.Index(m.Topo.Wrap(p))]
}

// maxFailedPenalty bounds how long an infeasible tile stays untested.
const maxFailedPenalty = 10

// FloodReachable runs the breadth-first reachability flood from the given
// anchor tiles. A neighbor joins the flood if feasible(pt) holds; a tile
// with a pending penalty counter only has the counter decremented, so
// tiles that repeatedly fail are not retested on every pass.
func (m *NodeMap) FloodReachable(anchors []Point, feasible func(Point) bool) {
	queue := make([]Point, 0, len(anchors))
	for _, pt := range anchors {
		m.At(pt).Reachable = true
		queue = append(queue, m.Topo.Wrap(pt))
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range m.Topo.Neighbors(cur) {
			node := m.At(nb)
			if node.Reachable {
				continue
			}
			if feasible(nb) {
				if node.FailedPenalty == 0 {
					node.Reachable = true
					queue = append(queue, nb)
				} else {
					node.FailedPenalty--
				}
			}
		}
	}
}

// MarkFailed records that acting on a tile failed in practice (for
// example a road could not actually be built there). The penalty keeps
// the flood from re-adding the tile for a few passes.
func (m *NodeMap) MarkFailed(p Point) {
	node := m.At(p)
	node.Reachable = false
	node.FailedPenalty = maxFailedPenalty
}

// ResetReachable marks every tile unreachable and clears penalties,
// ahead of a full reflood.
func (m *NodeMap) ResetReachable() {
	for i := range m.nodes {
		m.nodes[i].Reachable = false
		m.nodes[i].FailedPenalty = 0
	}
}

// UpdateReachable re-floods reachability for a set of tiles: tiles that
// are anchors (per the predicate) reseed the flood, everything else in
// the set is cleared first so ownership changes can revoke reachability.
func (m *NodeMap) UpdateReachable(pts []Point, anchor func(Point) bool, feasible func(Point) bool) {
	var seeds []Point
	for _, pt := range pts {
		if anchor(pt) {
			seeds = append(seeds, pt)
		} else {
			m.At(pt).Reachable = false
		}
	}
	m.FloodReachable(seeds, feasible)
}
