// Package simworld is the reference implementation of the gameworld
// interfaces: a deterministic settlement simulation detailed enough to
// exercise the AI controller. Terrain comes from layered simplex noise;
// buildings, flags, roads, territory and a simplified economy are
// tracked per tile. It is the world used by cmd/skirmish and the
// controller tests.
package simworld

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

type terrain uint8

const (
	terrainWater terrain = iota
	terrainPlain
	terrainForest
	terrainMountain
	terrainSwamp
)

// tile is the full per-tile ground truth.
type tile struct {
	terrain       terrain
	surface       gameworld.SurfaceResource
	surfaceAmount int
	sub           gameworld.SubsurfaceResource
	subAmount     int
	owner         int // -1 unowned
	flag          bool
	road          [grid.NumDirections]bool
	seaID         int // 0 = not water / landlocked puddle
	harborSpot    int // 0 = none
}

func (t *tile) hasRoad() bool {
	for _, r := range t.road {
		if r {
			return true
		}
	}
	return false
}

// building covers finished buildings and construction sites alike.
type building struct {
	pos       grid.Point
	bt        gameworld.BuildingType
	owner     int
	finished  bool
	progress  int
	connected bool

	troops    int
	maxTroops int
	coins     bool
	disabled  bool
	raided    bool // attacked since the last step

	expedition bool // harbors
	spotID     int

	// Warehouse inventory and policy.
	stock       map[gameworld.Good]int
	workers     map[gameworld.Profession]int
	ranks       map[gameworld.Rank]int
	blocked     map[gameworld.Good]bool
	blockedRank map[gameworld.Rank]bool
	collect     map[gameworld.Good]bool
	collectProf map[gameworld.Profession]bool
	collectRank map[gameworld.Rank]bool
}

type ship struct {
	id       int
	owner    int
	pos      grid.Point
	seaID    int
	waiting  bool
	canFound bool
	spotID   int // target harbor spot when waiting
}

type playerState struct {
	defeated   bool
	distrib    gameworld.DistributionSettings
	military   gameworld.MilitarySettings
	toolPrio   gameworld.ToolPriorities
	expPending int // ticks until a launched expedition surfaces a ship
	expHarbor  grid.Point
}

// World owns ground truth for every faction. It is not safe for
// concurrent use; the engine drives it from one goroutine.
type World struct {
	Topo  grid.Torus
	tiles []tile

	buildings map[grid.Point]*building
	ships     []*ship
	nextShip  int

	players []playerState
	subs    map[int][]func(gameworld.Note)

	harborSpots []gameworld.HarborSpot
	seafaring   bool

	inexhaustible bool
	tick          uint64
	rng           *rand.Rand
}

// Config controls world generation.
type Config struct {
	Width, Height int
	Seed          int64
	Players       int
	SeaLevel      float64
	MountainLvl   float64
	Inexhaustible bool
}

// DefaultConfig returns a mid-sized map for four factions.
func DefaultConfig() Config {
	return Config{
		Width: 96, Height: 96,
		Seed:        42,
		Players:     4,
		SeaLevel:    0.30,
		MountainLvl: 0.72,
	}
}

// New generates a world from layered simplex noise and places one
// headquarters per player on spread-out land.
func New(cfg Config) *World {
	topo := grid.NewTorus(cfg.Width, cfg.Height)
	w := &World{
		Topo:          topo,
		tiles:         make([]tile, topo.NumPoints()),
		buildings:     make(map[grid.Point]*building),
		players:       make([]playerState, cfg.Players),
		subs:          make(map[int][]func(gameworld.Note)),
		inexhaustible: cfg.Inexhaustible,
		rng:           rand.New(rand.NewSource(cfg.Seed)),
	}
	for i := range w.tiles {
		w.tiles[i].owner = -1
	}

	elevNoise := opensimplex.NewNormalized(cfg.Seed)
	moistNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	veinNoise := opensimplex.NewNormalized(cfg.Seed + 2)

	for i := 0; i < topo.NumPoints(); i++ {
		pt := topo.PointAt(i)
		x := float64(pt.X) + float64(pt.Y&1)*0.5
		y := float64(pt.Y) * math.Sqrt(3.0) / 2.0
		elev := octaveNoise(elevNoise, x, y, 4, 0.05, 0.5)
		moist := octaveNoise(moistNoise, x, y, 3, 0.04, 0.5)
		vein := octaveNoise(veinNoise, x, y, 2, 0.15, 0.5)
		w.tiles[i] = deriveTile(elev, moist, vein, cfg)
	}

	w.floodSeas()
	w.placeHarborSpots()
	w.spawnPlayers(cfg.Players)
	return w
}

// NewFlat builds an all-plain world, used by tests that need fully
// predictable ground.
func NewFlat(width, height, players int) *World {
	topo := grid.NewTorus(width, height)
	w := &World{
		Topo:      topo,
		tiles:     make([]tile, topo.NumPoints()),
		buildings: make(map[grid.Point]*building),
		players:   make([]playerState, players),
		subs:      make(map[int][]func(gameworld.Note)),
		rng:       rand.New(rand.NewSource(1)),
	}
	for i := range w.tiles {
		w.tiles[i].terrain = terrainPlain
		w.tiles[i].owner = -1
	}
	return w
}

func deriveTile(elev, moist, vein float64, cfg Config) tile {
	t := tile{owner: -1}
	switch {
	case elev < cfg.SeaLevel:
		t.terrain = terrainWater
		if vein > 0.6 {
			t.sub = gameworld.SubsurfaceFish
			t.subAmount = 20
		}
	case elev > cfg.MountainLvl:
		t.terrain = terrainMountain
		switch {
		case vein > 0.78:
			t.sub = gameworld.SubsurfaceGold
			t.subAmount = 12
		case vein > 0.62:
			t.sub = gameworld.SubsurfaceCoal
			t.subAmount = 25
		case vein > 0.48:
			t.sub = gameworld.SubsurfaceIronOre
			t.subAmount = 20
		default:
			t.sub = gameworld.SubsurfaceGranite
			t.subAmount = 30
		}
	case moist > 0.72 && elev < cfg.SeaLevel+0.1:
		t.terrain = terrainSwamp
	case moist > 0.52:
		t.terrain = terrainForest
		t.surface = gameworld.SurfaceWood
		t.surfaceAmount = 8
	default:
		t.terrain = terrainPlain
		if vein > 0.82 {
			t.surface = gameworld.SurfaceStones
			t.surfaceAmount = 12
		}
	}
	return t
}

// floodSeas labels connected water components so sea travel can be
// answered by id comparison.
func (w *World) floodSeas() {
	next := 1
	for i := 0; i < w.Topo.NumPoints(); i++ {
		if w.tiles[i].terrain != terrainWater || w.tiles[i].seaID != 0 {
			continue
		}
		size := 0
		queue := []grid.Point{w.Topo.PointAt(i)}
		w.tiles[i].seaID = next
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			size++
			for _, nb := range w.Topo.Neighbors(cur) {
				n := w.at(nb)
				if n.terrain == terrainWater && n.seaID == 0 {
					n.seaID = next
					queue = append(queue, nb)
				}
			}
		}
		if size < 16 {
			// Puddles are not seas.
			for j := range w.tiles {
				if w.tiles[j].seaID == next {
					w.tiles[j].seaID = 0
				}
			}
			continue
		}
		next++
	}
	w.seafaring = next > 1
}

// placeHarborSpots marks well-spaced coastal tiles as harbor spots.
func (w *World) placeHarborSpots() {
	nextID := 1
	for i := 0; i < w.Topo.NumPoints(); i++ {
		t := &w.tiles[i]
		if t.terrain != terrainPlain {
			continue
		}
		pt := w.Topo.PointAt(i)
		coastal := false
		for _, nb := range w.Topo.Neighbors(pt) {
			if w.at(nb).seaID != 0 {
				coastal = true
				break
			}
		}
		if !coastal {
			continue
		}
		tooClose := false
		for _, spot := range w.harborSpots {
			if w.Topo.Distance(pt, spot.Pos) < 12 {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		t.harborSpot = nextID
		w.harborSpots = append(w.harborSpots, gameworld.HarborSpot{ID: nextID, Pos: pt})
		nextID++
	}
}

// spawnPlayers drops one headquarters per player on buildable land,
// spread across the map.
func (w *World) spawnPlayers(players int) {
	placed := 0
	var positions []grid.Point
	for attempts := 0; placed < players && attempts < 10000; attempts++ {
		pt := grid.Point{X: w.rng.Intn(w.Topo.W), Y: w.rng.Intn(w.Topo.H)}
		if w.at(pt).terrain != terrainPlain || w.at(pt).surface != gameworld.SurfaceNothing {
			continue
		}
		ok := true
		for _, prev := range positions {
			if w.Topo.Distance(pt, prev) < (w.Topo.W+w.Topo.H)/8 {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		w.placeHeadquarters(placed, pt)
		positions = append(positions, pt)
		placed++
	}
}

// SpawnAt places a headquarters for a player at an exact point. Used by
// tests and scripted scenarios; New spawns randomly.
func (w *World) SpawnAt(player int, pt grid.Point) {
	w.placeHeadquarters(player, w.Topo.Wrap(pt))
}

func (w *World) placeHeadquarters(player int, pt grid.Point) {
	hq := &building{
		pos: pt, bt: gameworld.Headquarters, owner: player,
		finished: true, troops: 4, maxTroops: 6,
	}
	initWarehouse(hq)
	w.buildings[pt] = hq
	flag := w.Topo.Neighbor(pt, grid.SouthEast)
	w.at(flag).flag = true
	w.claimTerritory(pt, 9, player)
}

// initWarehouse seeds the starting inventory. Values mirror a standard
// campaign opening: enough boards and stones for the first settlement
// ring, a tool baseline, a modest army.
func initWarehouse(b *building) {
	b.stock = map[gameworld.Good]int{
		gameworld.GoodBoards: 44,
		gameworld.GoodStones: 34,
		gameworld.GoodWood:   20,
		gameworld.GoodFish:   8,
		gameworld.GoodBread:  10,
		gameworld.GoodBeer:   6,
		gameworld.GoodSword:  6,
		gameworld.GoodShield: 6,
	}
	for t := gameworld.Tool(0); t < gameworld.NumTools; t++ {
		b.stock[toolGood(t)] += 2
	}
	b.workers = map[gameworld.Profession]int{
		gameworld.ProfHelper:     40,
		gameworld.ProfWoodcutter: 4,
		gameworld.ProfCarpenter:  2,
		gameworld.ProfStonemason: 2,
		gameworld.ProfForester:   1,
		gameworld.ProfFisher:     2,
		gameworld.ProfMiner:      4,
		gameworld.ProfFarmer:     2,
	}
	b.ranks = map[gameworld.Rank]int{0: 24, 1: 4}
	b.blocked = make(map[gameworld.Good]bool)
	b.blockedRank = make(map[gameworld.Rank]bool)
	b.collect = make(map[gameworld.Good]bool)
	b.collectProf = make(map[gameworld.Profession]bool)
	b.collectRank = make(map[gameworld.Rank]bool)
}

func toolGood(t gameworld.Tool) gameworld.Good {
	// Tools occupy a contiguous run of the Good enum.
	return gameworld.GoodAxe + gameworld.Good(t)
}

func (w *World) at(pt grid.Point) *tile {
	return &w.tiles[w.Topo.Index(w.Topo.Wrap(pt))]
}

// claimTerritory assigns unowned tiles within radius to a player and
// fans out the ownership and discovery notes.
func (w *World) claimTerritory(center grid.Point, radius, player int) {
	region := append([]grid.Point{w.Topo.Wrap(center)}, w.Topo.PointsInRadius(center, radius)...)
	for _, pt := range region {
		t := w.at(pt)
		if t.owner == player {
			continue
		}
		if t.owner != -1 && w.Topo.Distance(pt, center) > radius/2 {
			continue // only the inner ring takes contested ground
		}
		old := t.owner
		t.owner = player
		w.notifyAll(gameworld.Note{Kind: gameworld.NoteNodeOwner, Pos: pt})
		if old == -1 && t.sub != gameworld.SubsurfaceNothing {
			w.notify(player, gameworld.Note{
				Kind: gameworld.NoteResourceFound, Pos: pt,
				Resource: subToResource(t.sub),
			})
		}
	}
}

func subToResource(s gameworld.SubsurfaceResource) gameworld.Resource {
	switch s {
	case gameworld.SubsurfaceGold:
		return gameworld.ResourceGold
	case gameworld.SubsurfaceIronOre:
		return gameworld.ResourceIronOre
	case gameworld.SubsurfaceCoal:
		return gameworld.ResourceCoal
	case gameworld.SubsurfaceGranite:
		return gameworld.ResourceGranite
	default:
		return gameworld.ResourceFish
	}
}

// Subscribe registers a notification callback for one player.
func (w *World) Subscribe(player int, fn func(gameworld.Note)) {
	w.subs[player] = append(w.subs[player], fn)
}

func (w *World) notify(player int, n gameworld.Note) {
	n.Player = player
	for _, fn := range w.subs[player] {
		fn(n)
	}
}

func (w *World) notifyAll(n gameworld.Note) {
	for p := range w.players {
		w.notify(p, n)
	}
}

// Player binds the world to one faction, yielding the view/command pair
// a controller consumes.
func (w *World) Player(id int) *Faction {
	return &Faction{w: w, id: id}
}

// Faction implements gameworld.World for a single player.
type Faction struct {
	w  *World
	id int
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
