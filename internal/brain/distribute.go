package brain

import (
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

// distributeGoodsByBlocking balances a good across warehouses by
// toggling inbound blocking. Warehouses are grouped by road
// connectivity; within a group, if every warehouse already exceeds the
// limit the good flows freely, otherwise the full ones stop accepting
// so carriers fill the rest. Harbor-heavy maps skip blocking entirely:
// sea transport routes around blocks and just strands wares on ships.
func (c *Controller) distributeGoodsByBlocking(good gameworld.Good, limit int) {
	whs := c.world.Storehouses()
	if len(whs) < 2 {
		for _, wh := range whs {
			c.world.SetGoodBlocked(wh.Pos, good, false)
		}
		return
	}
	if c.world.Seafaring() && len(c.world.Harbors())*2 >= len(whs) {
		for _, wh := range whs {
			c.world.SetGoodBlocked(wh.Pos, good, false)
		}
		return
	}

	for _, group := range c.connectivityGroups(whs) {
		allFull := true
		for _, wh := range group {
			if wh.Stock[good] <= limit {
				allFull = false
				break
			}
		}
		for _, wh := range group {
			blocked := !allFull && wh.Stock[good] > limit
			if wh.Blocked[good] != blocked {
				c.world.SetGoodBlocked(wh.Pos, good, blocked)
			}
		}
	}
}

// connectivityGroups partitions warehouses into road-connected islands.
func (c *Controller) connectivityGroups(whs []gameworld.WarehouseInfo) [][]gameworld.WarehouseInfo {
	assigned := make([]int, len(whs))
	for i := range assigned {
		assigned[i] = -1
	}
	var groups [][]gameworld.WarehouseInfo
	for i := range whs {
		if assigned[i] >= 0 {
			continue
		}
		gi := len(groups)
		assigned[i] = gi
		group := []gameworld.WarehouseInfo{whs[i]}
		for j := i + 1; j < len(whs); j++ {
			if assigned[j] >= 0 {
				continue
			}
			if c.world.PathOnRoads(c.flagOf(whs[i].Pos), c.flagOf(whs[j].Pos)) {
				assigned[j] = gi
				group = append(group, whs[j])
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// distributeMaxRankSoldiers steers top-rank soldiers toward the
// warehouses that feed the front: any warehouse near a frontier
// garrison still short of its top-rank reserve, plus the warehouse
// serving the upgrade building. Everywhere else the top rank is blocked
// so carriers push them onward.
func (c *Controller) distributeMaxRankSoldiers() {
	whs := c.world.Storehouses()
	if len(whs) == 0 {
		return
	}
	rank := c.world.MaxRank()

	targets := make(map[grid.Point]bool)
	for _, m := range c.world.MilitaryBuildings() {
		if m.Frontier != gameworld.FrontierNear && m.Frontier != gameworld.FrontierHarbor {
			continue
		}
		wh, ok := c.closestWarehouse(m.Pos, whs)
		if !ok || wh.Ranks[rank] >= c.tun.MaxRankReserve {
			continue
		}
		targets[wh.Pos] = true
	}
	if c.upgradePos.Valid() {
		if wh, ok := c.closestWarehouse(c.upgradePos, whs); ok {
			targets[wh.Pos] = true
			c.setGatheringForUpgradeWarehouse(wh, whs, rank)
		}
	}

	if len(targets) == 0 {
		for _, wh := range whs {
			if wh.BlockedRank[rank] {
				c.world.SetRankBlocked(wh.Pos, rank, false)
			}
		}
		return
	}
	for _, wh := range whs {
		blocked := !targets[wh.Pos]
		if wh.BlockedRank[rank] != blocked {
			c.world.SetRankBlocked(wh.Pos, rank, blocked)
		}
	}
}

// setGatheringForUpgradeWarehouse concentrates upgrade inputs at one
// warehouse: top-rank collection plus the beer and weapons recruits eat
// through.
func (c *Controller) setGatheringForUpgradeWarehouse(target gameworld.WarehouseInfo, whs []gameworld.WarehouseInfo, rank gameworld.Rank) {
	for _, wh := range whs {
		collect := wh.Pos == target.Pos
		if wh.CollectRank[rank] != collect {
			c.world.SetRankCollect(wh.Pos, rank, collect)
		}
		for _, g := range [...]gameworld.Good{gameworld.GoodBeer, gameworld.GoodSword, gameworld.GoodShield} {
			if wh.Collect[g] != collect {
				c.world.SetGoodCollect(wh.Pos, g, collect)
			}
		}
	}
}

// closestWarehouse returns the warehouse nearest to pt.
func (c *Controller) closestWarehouse(pt grid.Point, whs []gameworld.WarehouseInfo) (gameworld.WarehouseInfo, bool) {
	if len(whs) == 0 {
		return gameworld.WarehouseInfo{}, false
	}
	best := whs[0]
	bestDist := c.topo.Distance(pt, best.Pos)
	for _, wh := range whs[1:] {
		if d := c.topo.Distance(pt, wh.Pos); d < bestDist {
			best = wh
			bestDist = d
		}
	}
	return best, true
}
