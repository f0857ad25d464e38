package brain

import (
	"github.com/torvund/settlemind/internal/gamedata"
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

// adjustSettings retunes tool production and the military sliders from
// the current stocks and worker pools.
func (c *Controller) adjustSettings() {
	c.adjustToolPriorities()
	c.world.ChangeMilitarySettings(c.calcMilSettings())
}

// primaryTools are the tools the economy dies without; they get forced
// minima before any secondary tool sees priority.
var primaryTools = [...]gameworld.Tool{
	gameworld.ToolAxe,
	gameworld.ToolSaw,
	gameworld.ToolPickAxe,
	gameworld.ToolCrucible,
}

// adjustToolPriorities sets tool production from missing workers: a
// profession we cannot staff and cannot equip raises its tool.
// Secondary tools only get priority once every primary has either a
// spare in stock or an idle worker.
func (c *Controller) adjustToolPriorities() {
	stock := make(map[gameworld.Good]int)
	workers := make(map[gameworld.Profession]int)
	for _, wh := range c.world.Storehouses() {
		for g, n := range wh.Stock {
			stock[g] += n
		}
		for p, n := range wh.Workers {
			workers[p] += n
		}
	}

	toolCovered := func(t gameworld.Tool) bool {
		if stock[gamedata.ToolToGood[t]] > 0 {
			return true
		}
		for p := gameworld.Profession(0); p < gameworld.NumProfessions; p++ {
			if pt, ok := gamedata.ProfessionTool(p); ok && pt == t && workers[p] > 0 {
				return true
			}
		}
		return false
	}

	var prio gameworld.ToolPriorities
	basicsSettled := true
	for _, t := range primaryTools {
		if !toolCovered(t) {
			prio[t] = 10
			basicsSettled = false
		} else if stock[gamedata.ToolToGood[t]] == 0 {
			prio[t] = 4
		} else {
			prio[t] = 1
		}
	}
	if basicsSettled {
		// Pull secondary tools from unstaffed sites and buildings.
		need := make(map[gameworld.Tool]bool)
		for _, s := range c.world.BuildingSites() {
			if p, ok := gamedata.BuildingWorker(s.Building); ok && workers[p] == 0 {
				if t, ok := gamedata.ProfessionTool(p); ok {
					need[t] = true
				}
			}
		}
		for bt := gameworld.BuildingType(0); bt < gameworld.NumBuildingTypes; bt++ {
			p, ok := gamedata.BuildingWorker(bt)
			if !ok {
				continue
			}
			for _, b := range c.world.Buildings(bt) {
				if !b.HasWorker && workers[p] == 0 {
					if t, ok := gamedata.ProfessionTool(p); ok {
						need[t] = true
					}
				}
			}
		}
		for t := range need {
			if prio[t] == 0 {
				prio[t] = 6
			}
		}
	}
	c.world.ChangeToolPriorities(prio)
}

// calcMilSettings scales the garrison sliders against the soldiers we
// actually have. Slider order: recruitment, defender strength,
// defenders per attack, aggression, then garrison levels for interior,
// inland, harbor and frontier buildings.
func (c *Controller) calcMilSettings() gameworld.MilitarySettings {
	soldiers := 0
	for _, wh := range c.world.Storehouses() {
		for _, n := range wh.Ranks {
			soldiers += n
		}
	}
	capacity := 0
	for _, m := range c.world.MilitaryBuildings() {
		soldiers += m.Troops
		capacity += m.MaxTroops
	}

	ms := gameworld.MilitarySettings{8, 5, 4, 5, 0, 4, 6, 8}
	if capacity == 0 {
		return ms
	}
	// Thin armies pull back from the interior before the front.
	switch {
	case soldiers*2 < capacity:
		ms[4], ms[5], ms[6], ms[7] = 0, 2, 4, 8
	case soldiers < capacity:
		ms[4], ms[5], ms[6], ms[7] = 0, 3, 5, 8
	default:
		ms[4], ms[5], ms[6], ms[7] = 1, 4, 6, 8
		ms[3] = 7 // surplus soldiers, lean forward
	}
	return ms
}

// milUpgradeOptim maintains one quiet rear building as the rank
// upgrade site: coins flow there and to the front, nowhere else, and
// interior garrisons are trimmed to a skeleton.
func (c *Controller) milUpgradeOptim() {
	mil := c.world.MilitaryBuildings()
	if len(mil) == 0 {
		c.upgradePos = grid.InvalidPoint
		return
	}

	best := grid.InvalidPoint
	bestCap := 0
	for _, m := range mil {
		if m.NewBuilt || m.Frontier == gameworld.FrontierNear {
			continue
		}
		if m.MaxTroops > bestCap {
			best = m.Pos
			bestCap = m.MaxTroops
		}
	}
	c.upgradePos = best

	maxRank := c.world.MaxRank()
	for _, m := range mil {
		wantCoins := m.Pos == best || m.Frontier == gameworld.FrontierNear || m.Frontier == gameworld.FrontierHarbor
		if m.GoldDisabled == wantCoins {
			c.world.SetCoinsAllowed(m.Pos, wantCoins)
			c.record("set_coins", m.Pos, m.Building.String())
		}
		if m.Pos == best {
			// Fill the upgrade building so recruits rotate through.
			c.world.SetTroopLimit(m.Pos, maxRank, m.MaxTroops)
			continue
		}
		if m.Frontier == gameworld.FrontierFar && !m.UnderAttack {
			c.world.SetTroopLimit(m.Pos, maxRank, gamedata.GarrisonFor(m.MaxTroops, 1))
		}
	}
}
