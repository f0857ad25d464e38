package brain

import (
	"github.com/torvund/settlemind/internal/gamedata"
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

// planNewBuildings is the build-interval phase: repair unconnected
// sites, rebalance goods, then seed new construction around one random
// storehouse and one random military building. Randomizing the anchors
// spreads growth across the territory over successive phases.
func (c *Controller) planNewBuildings() {
	c.checkForUnconnectedBuildingSites()
	c.distributeGoodsByBlocking(gameworld.GoodBoards, c.tun.BoardReserve)
	c.distributeGoodsByBlocking(gameworld.GoodStones, c.tun.StoneReserve)
	c.distributeMaxRankSoldiers()

	whs := c.world.Storehouses()
	if len(whs) > 0 {
		wh := whs[c.rng.Intn(len(whs))]
		c.updateNodesAround(wh.Pos, 15)
		for _, bt := range economyBuildOrder {
			if c.plan.have(bt)+c.queuedJobs(bt) < c.plan.Wanted(bt) {
				c.addBuildJob(bt, wh.Pos, false)
			}
		}
		c.addMilitaryJob(wh.Pos)
	}

	mil := c.world.MilitaryBuildings()
	if len(mil) > 0 {
		m := mil[c.rng.Intn(len(mil))]
		c.updateNodesAround(m.Pos, c.tun.SearchRadius)
		for _, bt := range gathererBuildings {
			if c.plan.have(bt)+c.queuedJobs(bt) < c.plan.Wanted(bt) {
				c.addBuildJob(bt, m.Pos, false)
			}
		}
	}

	// Military buildings enclosed by friendly land hold no frontier and
	// waste soldiers.
	for _, m := range mil {
		if m.Useless && !m.NewBuilt && !m.UnderAttack {
			c.world.DestroyBuilding(m.Pos)
			c.record("destroy_building", m.Pos, "useless "+m.Building.String())
		}
	}
}

// economyBuildOrder drives demand-gated construction around storehouses.
// Wood chain first, food production, then smelting and coin making.
var economyBuildOrder = []gameworld.BuildingType{
	gameworld.Woodcutter,
	gameworld.Sawmill,
	gameworld.Forester,
	gameworld.Quarry,
	gameworld.Fishery,
	gameworld.Hunter,
	gameworld.Farm,
	gameworld.Mill,
	gameworld.Bakery,
	gameworld.PigFarm,
	gameworld.Slaughterhouse,
	gameworld.GoldMine,
	gameworld.CoalMine,
	gameworld.IronMine,
	gameworld.GraniteMine,
	gameworld.Ironsmelter,
	gameworld.Armory,
	gameworld.Mint,
	gameworld.Metalworks,
	gameworld.Brewery,
	gameworld.Charburner,
	gameworld.DonkeyBreeder,
	gameworld.Shipyard,
	gameworld.Storehouse,
	gameworld.Catapult,
}

// pruneSawmills tears down sawmills that never produce, keeping a
// minimum fleet so the board supply cannot stall entirely.
func (c *Controller) pruneSawmills() {
	mills := c.world.Buildings(gameworld.Sawmill)
	if len(mills) <= c.tun.MinSawmills {
		return
	}
	spare := len(mills) - c.tun.MinSawmills
	for _, sm := range mills {
		if spare == 0 {
			return
		}
		if sm.HasWorker && sm.Productivity == 0 && sm.WaresWaiting == 0 {
			c.world.DestroyBuilding(sm.Pos)
			c.record("destroy_building", sm.Pos, "idle sawmill")
			spare--
		}
	}
}

// checkForesters pauses foresters whose surroundings are already dense
// with wood, and resumes them when the woodcutters catch up.
func (c *Controller) checkForesters() {
	for _, f := range c.world.Buildings(gameworld.Forester) {
		dense := c.density(f.Pos, grid.NodeWood, gamedata.ResourceRadius[gameworld.ResourceWood]) >= 50
		if dense == f.ProductionDisabled {
			continue
		}
		c.world.SetProductionEnabled(f.Pos, !dense)
		c.record("set_production", f.Pos, "forester")
	}
}

// checkGraniteMines pauses granite mines while stone stocks are flush.
func (c *Controller) checkGraniteMines() {
	mines := c.world.Buildings(gameworld.GraniteMine)
	if len(mines) == 0 {
		return
	}
	stones := 0
	whs := c.world.Storehouses()
	for _, wh := range whs {
		stones += wh.Stock[gameworld.GoodStones]
	}
	flush := stones > c.tun.StoneReserve*len(whs)
	for _, m := range mines {
		if flush == m.ProductionDisabled {
			continue
		}
		c.world.SetProductionEnabled(m.Pos, !flush)
		c.record("set_production", m.Pos, "granite mine")
	}
}

// checkForUnconnectedBuildingSites queues connect jobs for every site
// whose flag has no road yet.
func (c *Controller) checkForUnconnectedBuildingSites() {
	for _, s := range c.world.BuildingSites() {
		if !s.Connected {
			c.addConnectJob(c.flagOf(s.Pos))
		}
	}
}
