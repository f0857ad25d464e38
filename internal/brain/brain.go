// Package brain implements the autonomous faction controller: it owns a
// cached view of the map (node grid plus desirability maps), consumes
// world notifications through a bounded event queue, schedules build and
// connect jobs under a per-tick quota, and runs the periodic strategic
// loop (planning, attacks, distribution, settings).
package brain

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/torvund/settlemind/internal/gamedata"
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
	"github.com/torvund/settlemind/internal/resmap"
)

// Recorder receives the controller's decisions for the journal. A nil
// Recorder disables recording.
type Recorder interface {
	Command(tick uint64, player int, kind string, pt grid.Point, detail string)
	Event(tick uint64, player int, kind string, pt grid.Point)
}

// Config carries everything a controller needs at construction.
type Config struct {
	Player   int
	Level    gamedata.Difficulty
	Tuning   gamedata.Tuning
	World    gameworld.World
	Notes    gameworld.Notifier
	Logger   *slog.Logger
	Seed     int64
	Recorder Recorder
}

// Controller is one faction's AI. It is not safe for concurrent use;
// the engine calls RunTick from a single goroutine.
type Controller struct {
	id    int
	level gamedata.Difficulty
	cad   gamedata.Cadence
	tun   gamedata.Tuning

	log   *slog.Logger
	rng   *rand.Rand
	world gameworld.World
	rec   Recorder

	topo    grid.Torus
	nodes   *grid.NodeMap
	resMaps [gameworld.NumResources]*resmap.Map

	events []gameworld.Note

	buildJobs   []*buildJob
	connectJobs []*connectJob

	plan planner

	upgradePos grid.Point
	defeated   bool
	warm       bool
	tick       uint64

	dirty map[grid.Point]struct{}
}

// New builds a controller bound to one player. An unknown difficulty
// tier is a configuration error.
func New(cfg Config) (*Controller, error) {
	cad, err := cfg.Tuning.CadenceFor(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("controller %d: %w", cfg.Player, err)
	}
	w, h := cfg.World.Size()
	topo := grid.NewTorus(w, h)
	c := &Controller{
		id:         cfg.Player,
		level:      cfg.Level,
		cad:        cad,
		tun:        cfg.Tuning,
		log:        cfg.Logger.With("player", cfg.Player),
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		world:      cfg.World,
		rec:        cfg.Recorder,
		topo:       topo,
		nodes:      grid.NewNodeMap(topo),
		upgradePos: grid.InvalidPoint,
		dirty:      make(map[grid.Point]struct{}),
	}
	unlimited := cfg.World.InexhaustibleMines()
	for r := gameworld.Resource(0); r < gameworld.NumResources; r++ {
		mineKind := r == gameworld.ResourceGold || r == gameworld.ResourceIronOre ||
			r == gameworld.ResourceCoal || r == gameworld.ResourceGranite
		c.resMaps[r] = resmap.New(r, topo, gamedata.ResourceRadius[r], unlimited && mineKind)
	}
	cfg.Notes.Subscribe(cfg.Player, c.enqueue)
	return c, nil
}

// Defeated reports whether the controller has surrendered.
func (c *Controller) Defeated() bool { return c.defeated }

// RunTick advances the controller by one simulation tick. The order is
// fixed: dirty-node flush, event drain, job execution, then the cadence
// phases. Cadences are salted by player id so controllers never act in
// lockstep.
func (c *Controller) RunTick(tick uint64) {
	c.tick = tick
	if c.defeated {
		return
	}
	if !c.warm {
		c.initialize()
		c.warm = true
	}
	if len(c.world.Storehouses()) == 0 {
		c.log.Info("no storehouses left, surrendering", "tick", tick)
		c.world.Surrender()
		c.defeated = true
		return
	}

	c.flushDirty()
	c.drainEvents(c.tun.EventQuota)
	c.executeJobs(c.jobQuota())

	salt := uint64(c.id)
	ai := uint64(c.cad.AttackInterval)
	bi := uint64(c.cad.BuildInterval)

	if tick%100 == 0 {
		c.plan.refresh(c)
	}
	if (tick+salt*17)%ai == 0 {
		c.tryToAttack()
	}
	if c.level != gamedata.Easy && (tick+salt*17)%73 == 0 {
		c.milUpgradeOptim()
	}
	if c.world.Seafaring() && (tick+41+salt*17)%ai == 0 {
		c.trySeaAttack()
	}
	if (tick+salt*13)%1500 == 0 {
		c.checkExpeditions()
		c.checkForesters()
		c.checkGraniteMines()
	}
	if (tick+salt*11)%150 == 0 {
		c.adjustSettings()
		c.pruneSawmills()
	}
	if (tick+salt*7)%bi == 0 {
		c.planNewBuildings()
	}
}

// initialize runs once on the first tick: full node scan, initial
// desirability maps, default distribution and settings.
func (c *Controller) initialize() {
	c.initNodes()
	c.world.ChangeDistribution(defaultDistribution())
	c.adjustSettings()
	c.plan.refresh(c)
	c.log.Info("controller initialized", "level", string(c.level),
		"attack_interval", c.cad.AttackInterval, "build_interval", c.cad.BuildInterval)
}

// initNodes fills the whole node cache and floods reachability from the
// player's flags.
func (c *Controller) initNodes() {
	var anchors []grid.Point
	for i := 0; i < c.topo.NumPoints(); i++ {
		pt := c.topo.PointAt(i)
		c.refreshNode(pt)
		if c.world.OwnFlag(pt) {
			anchors = append(anchors, pt)
		}
	}
	c.nodes.ResetReachable()
	c.nodes.FloodReachable(anchors, c.world.RoadNodeOK)
	center := grid.Point{X: c.topo.W / 2, Y: c.topo.H / 2}
	full := c.topo.W + c.topo.H
	for r := gameworld.Resource(0); r < gameworld.NumResources; r++ {
		c.resMaps[r].UpdateAround(center, full, c.classifierFor(r))
	}
}

// refreshNode re-reads the per-tile facts from the world.
func (c *Controller) refreshNode(pt grid.Point) {
	n := c.nodes.At(pt)
	n.Quality = c.world.BuildQuality(pt)
	n.Owned = c.world.OwnTerritory(pt)
	n.Border = c.world.Border(pt)
	n.Resource = c.classifyTile(pt)
}

// classifyTile implements the resource classification rule: surface
// stone or wood override a sub-surface deposit as Multiple, a blocked
// surface kills the tile, plantable off-road ground counts as
// plantspace.
func (c *Controller) classifyTile(pt grid.Point) grid.NodeResource {
	sub := c.world.Subsurface(pt).NodeResourceOf()
	switch c.world.Surface(pt) {
	case gameworld.SurfaceBlocked:
		return grid.NodeNothing
	case gameworld.SurfaceWood:
		if sub != grid.NodeNothing {
			return grid.NodeMultiple
		}
		return grid.NodeWood
	case gameworld.SurfaceStones:
		if sub != grid.NodeNothing {
			return grid.NodeMultiple
		}
		return grid.NodeStones
	default:
		if sub != grid.NodeNothing {
			return sub
		}
		if c.world.VitalGround(pt) && !c.world.OnRoad(pt) {
			return grid.NodePlantspace
		}
		return grid.NodeNothing
	}
}

// classifierFor returns the resmap classifier for one map kind. The
// borderland map scores border proximity instead of a node resource.
func (c *Controller) classifierFor(r gameworld.Resource) resmap.Classifier {
	if r == gameworld.ResourceBorderland {
		return resmap.Borderland(func(pt grid.Point) bool {
			return c.nodes.At(pt).Border
		})
	}
	return func(pt grid.Point) grid.NodeResource {
		return c.nodes.At(pt).Resource
	}
}

// updateNodesAround refreshes node facts, reachability and every
// desirability map in a radius. This is the single entry point for
// localized grid maintenance.
func (c *Controller) updateNodesAround(pt grid.Point, radius int) {
	region := append([]grid.Point{c.topo.Wrap(pt)}, c.topo.PointsInRadius(pt, radius)...)
	for _, cur := range region {
		c.refreshNode(cur)
	}
	c.nodes.UpdateReachable(region, c.world.OwnFlag, c.world.RoadNodeOK)
	for r := gameworld.Resource(0); r < gameworld.NumResources; r++ {
		c.resMaps[r].UpdateAround(pt, radius, c.classifierFor(r))
	}
}

// markDirty defers a single-tile refresh to the start of the next tick.
func (c *Controller) markDirty(pt grid.Point) {
	c.dirty[c.topo.Wrap(pt)] = struct{}{}
}

// flushDirty applies deferred tile refreshes in deterministic order.
func (c *Controller) flushDirty() {
	if len(c.dirty) == 0 {
		return
	}
	pts := make([]grid.Point, 0, len(c.dirty))
	for pt := range c.dirty {
		pts = append(pts, pt)
	}
	sort.Slice(pts, func(i, j int) bool {
		return c.topo.Index(pts[i]) < c.topo.Index(pts[j])
	})
	for _, pt := range pts {
		c.updateNodesAround(pt, 1)
	}
	c.dirty = make(map[grid.Point]struct{})
}

// flagOf returns the flag position serving a building at pt. Flags sit
// southeast of their building.
func (c *Controller) flagOf(pt grid.Point) grid.Point {
	return c.topo.Neighbor(pt, grid.SouthEast)
}

// buildingOf is the inverse of flagOf.
func (c *Controller) buildingOf(flagPos grid.Point) grid.Point {
	return c.topo.Neighbor(flagPos, grid.NorthWest)
}

func (c *Controller) record(kind string, pt grid.Point, detail string) {
	if c.rec != nil {
		c.rec.Command(c.tick, c.id, kind, pt, detail)
	}
}

func (c *Controller) recordEvent(kind string, pt grid.Point) {
	if c.rec != nil {
		c.rec.Event(c.tick, c.id, kind, pt)
	}
}

// defaultDistribution is the opening goods distribution: construction
// favored for boards, mines fed evenly, brewing kept low until the
// economy carries it.
func defaultDistribution() gameworld.DistributionSettings {
	return gameworld.DistributionSettings{
		FoodToGraniteMines:   3,
		FoodToCoalMines:      6,
		FoodToIronMines:      6,
		FoodToGoldMines:      5,
		GrainToMill:          6,
		GrainToPigFarm:       4,
		GrainToBreeder:       2,
		GrainToBrewery:       3,
		GrainToCharburner:    2,
		IronToArmory:         8,
		IronToMetalworks:     4,
		CoalToArmory:         8,
		CoalToIronsmelter:    7,
		CoalToMint:           6,
		WoodToSawmill:        9,
		WoodToCharburner:     2,
		BoardsToConstruction: 10,
		BoardsToMetalworks:   4,
		BoardsToShipyard:     4,
		WaterToBakery:        6,
		WaterToBrewery:       3,
		WaterToPigFarm:       2,
		WaterToBreeder:       2,
	}
}
