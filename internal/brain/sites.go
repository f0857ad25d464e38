package brain

import (
	"github.com/torvund/settlemind/internal/gamedata"
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

// usableFor builds the site predicate for a building size: owned,
// reachable by road, buildable at that size and not reserved for
// fields.
func (c *Controller) usableFor(size grid.BuildQuality) func(grid.Point) bool {
	return func(pt grid.Point) bool {
		n := c.nodes.At(pt)
		if !n.Owned || !n.Reachable || n.Farmed {
			return false
		}
		return n.Quality.Fits(size)
	}
}

// findPositionForBuildingAround picks a site for one building type near
// an anchor. Resource-driven types consult their desirability map with
// a per-type minimum; everything else takes the closest buildable tile.
// Returns grid.InvalidPoint when no site qualifies.
func (c *Controller) findPositionForBuildingAround(bt gameworld.BuildingType, around grid.Point) grid.Point {
	radius := c.tun.SearchRadius
	size := gamedata.BuildingSize[bt]
	usable := c.usableFor(size)

	switch bt {
	case gameworld.Woodcutter:
		return c.resMaps[gameworld.ResourceWood].FindBestPosition(around, radius, c.tun.WoodMinScore, usable)

	case gameworld.Forester:
		// A forester wants room to plant, not existing wood.
		return c.resMaps[gameworld.ResourceWood].FindBestPosition(around, radius, 1, func(pt grid.Point) bool {
			return usable(pt) && c.density(pt, grid.NodePlantspace, 4) >= 20
		})

	case gameworld.Farm:
		return c.resMaps[gameworld.ResourcePlantspace].FindBestPosition(around, radius, c.tun.FarmMinScore, usable)

	case gameworld.Quarry:
		min := 1 + 10*c.plan.have(gameworld.Quarry)
		if min > 40 {
			min = 40
		}
		pos := c.resMaps[gameworld.ResourceStones].FindBestPosition(around, radius, min, usable)
		if pos.Valid() && !c.world.ResourceReachableFrom(pos, gameworld.ResourceStones) {
			// Stones in score range but across water or enemy land.
			c.resMaps[gameworld.ResourceStones].Avoid(pos)
			return grid.InvalidPoint
		}
		return pos

	case gameworld.Fishery:
		pos := c.resMaps[gameworld.ResourceFish].FindBestPosition(around, radius, 1, usable)
		if pos.Valid() && !c.world.ResourceReachableFrom(pos, gameworld.ResourceFish) {
			c.resMaps[gameworld.ResourceFish].Avoid(pos)
			return grid.InvalidPoint
		}
		return pos

	case gameworld.Hunter:
		return c.simpleFindPosition(around, radius, size, func(pt grid.Point) bool {
			return c.world.HuntablesNear(pt, 2)
		})

	case gameworld.GoldMine, gameworld.IronMine, gameworld.CoalMine, gameworld.GraniteMine,
		gameworld.Barracks, gameworld.Guardhouse, gameworld.Watchtower, gameworld.Fortress:
		res, _ := gamedata.MapResourceFor(bt)
		return c.resMaps[res].FindBestPosition(around, radius, 1, usable)

	case gameworld.Storehouse:
		return c.simpleFindPosition(around, radius, size, func(pt grid.Point) bool {
			return !c.warehouseNear(pt, c.tun.WarehouseSpread)
		})

	case gameworld.HarborBuilding:
		return c.findHarborPosition(around)

	default:
		return c.simpleFindPosition(around, radius, size, nil)
	}
}

// simpleFindPosition returns the closest usable tile to the anchor,
// optionally filtered by an extra predicate.
func (c *Controller) simpleFindPosition(around grid.Point, radius int, size grid.BuildQuality, extra func(grid.Point) bool) grid.Point {
	usable := c.usableFor(size)
	candidates := append([]grid.Point{c.topo.Wrap(around)}, c.topo.PointsInRadius(around, radius)...)
	for _, pt := range candidates {
		if !usable(pt) {
			continue
		}
		if extra != nil && !extra(pt) {
			continue
		}
		return pt
	}
	return grid.InvalidPoint
}

// findHarborPosition picks the nearest free harbor spot we own.
func (c *Controller) findHarborPosition(around grid.Point) grid.Point {
	best := grid.InvalidPoint
	bestDist := 0
	for _, spot := range c.world.HarborSpots() {
		if !c.world.HarborSpotFree(spot.ID) {
			continue
		}
		n := c.nodes.At(spot.Pos)
		if !n.Owned || !n.Quality.Fits(grid.BQHarbor) {
			continue
		}
		d := c.topo.Distance(around, spot.Pos)
		if !best.Valid() || d < bestDist {
			best = spot.Pos
			bestDist = d
		}
	}
	return best
}

// density returns the percentage of tiles within radius carrying the
// given classification.
func (c *Controller) density(pt grid.Point, res grid.NodeResource, radius int) int {
	region := c.topo.PointsInRadius(pt, radius)
	if len(region) == 0 {
		return 0
	}
	hits := 0
	for _, cur := range region {
		if c.nodes.At(cur).Resource == res {
			hits++
		}
	}
	return hits * 100 / len(region)
}
