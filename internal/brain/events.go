package brain

import (
	"github.com/torvund/settlemind/internal/gamedata"
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

// enqueue is the notification subscription callback. It runs on the
// simulation tick and must only record; all reactions happen during
// drainEvents.
func (c *Controller) enqueue(n gameworld.Note) {
	switch n.Kind {
	case gameworld.NoteNodeBQ, gameworld.NoteNodeOwner:
		// High-volume grid deltas bypass the queue; they only dirty tiles.
		c.markDirty(n.Pos)
		return
	}
	c.events = append(c.events, n)
}

// drainEvents dispatches up to quota queued events in FIFO order. The
// backlog persists across ticks; nothing is dropped.
func (c *Controller) drainEvents(quota int) {
	for quota > 0 && len(c.events) > 0 {
		n := c.events[0]
		c.events = c.events[1:]
		quota--
		c.recordEvent(n.Kind.String(), n.Pos)
		c.dispatch(n)
	}
}

func (c *Controller) dispatch(n gameworld.Note) {
	switch n.Kind {
	case gameworld.NoteBuildingFinished:
		c.handleBuildingFinished(n)
	case gameworld.NoteBuildingDestroyed:
		c.handleBuildingDestroyed(n)
	case gameworld.NoteBuildingConquered:
		c.handleMilitaryOccupied(n.Pos)
	case gameworld.NoteBuildingLost, gameworld.NoteLostLand:
		c.handleLostGround(n.Pos)
	case gameworld.NoteResourcesExhausted:
		c.handleResourcesExhausted(n)
	case gameworld.NoteConstructionOrder:
		c.handleConstructionOrder(n)
	case gameworld.NoteExpeditionWaiting:
		c.handleWaitingShips()
	case gameworld.NoteColonyFounded:
		c.handleColonyFounded(n.Pos)
	case gameworld.NoteResourceFound:
		c.handleResourceFound(n)
	case gameworld.NoteRoadComplete:
		c.handleRoadComplete(n)
	case gameworld.NoteRoadFailed:
		c.handleRoadFailed(n)
	case gameworld.NoteShipBuilt:
		c.handleShipBuilt()
	}
}

func (c *Controller) handleBuildingFinished(n gameworld.Note) {
	c.updateNodesAround(n.Pos, 8)
	switch {
	case n.Building == gameworld.HarborBuilding:
		c.removeAllUnusedRoads(n.Pos)
		c.checkExpeditions()
	case n.Building == gameworld.Woodcutter:
		// Every woodcutter pulls a sawmill toward it if demand allows.
		if c.plan.have(gameworld.Sawmill)+c.queuedJobs(gameworld.Sawmill) < c.plan.Wanted(gameworld.Sawmill) {
			c.addBuildJob(gameworld.Sawmill, n.Pos, false)
		}
	case n.Building.IsMilitary():
		c.handleMilitaryOccupied(n.Pos)
	}
}

func (c *Controller) handleBuildingDestroyed(n gameworld.Note) {
	switch {
	case n.Building == gameworld.Farm || n.Building == gameworld.Charburner:
		// Release the construction exclusion around the fields.
		for _, pt := range c.topo.PointsInRadius(n.Pos, 3) {
			c.nodes.At(pt).Farmed = false
		}
	case n.Building == gameworld.HarborBuilding:
		// Clear our own clutter so the harbor spot can be rebuilt.
		for _, pt := range c.topo.PointsInRadius(n.Pos, 2) {
			if bt, ok := c.world.BuildingAt(pt); ok && !bt.IsWarehouse() {
				c.world.DestroyBuilding(pt)
				c.record("destroy_building", pt, bt.String())
			}
		}
	}
	c.updateNodesAround(n.Pos, 4)
}

// handleMilitaryOccupied runs when a military building is newly garrisoned,
// whether built or conquered: territory grew, so repair the road net and
// seed construction around the new ground.
func (c *Controller) handleMilitaryOccupied(pt grid.Point) {
	c.updateNodesAround(pt, 11)
	c.removeAllUnusedRoads(pt)
	c.plan.refresh(c)

	if c.world.Seafaring() {
		c.addBuildJob(gameworld.HarborBuilding, pt, false)
		if c.plan.have(gameworld.Shipyard)+c.queuedJobs(gameworld.Shipyard) < c.plan.Wanted(gameworld.Shipyard) {
			c.addBuildJob(gameworld.Shipyard, pt, false)
		}
	}
	c.addMilitaryJob(pt)
	for _, bt := range gathererBuildings {
		if c.plan.have(bt)+c.queuedJobs(bt) < c.plan.Wanted(bt) {
			c.addBuildJob(bt, pt, false)
		}
	}
	// A storehouse only when no other warehouse is near.
	if !c.warehouseNear(pt, c.tun.WarehouseSpread) {
		c.addBuildJob(gameworld.Storehouse, pt, false)
	}
}

func (c *Controller) handleLostGround(pt grid.Point) {
	if len(c.world.Storehouses()) == 0 {
		return
	}
	c.updateNodesAround(pt, 11)
	c.removeAllUnusedRoads(pt)
}

func (c *Controller) handleResourcesExhausted(n gameworld.Note) {
	bt, ok := c.world.BuildingAt(n.Pos)
	if !ok {
		return
	}
	switch bt {
	case gameworld.Woodcutter:
		if c.servesForester(n.Pos) {
			return
		}
	case gameworld.Fishery:
		c.resMaps[gameworld.ResourceFish].Avoid(n.Pos)
	}
	c.world.DestroyBuilding(n.Pos)
	c.record("destroy_building", n.Pos, bt.String())
	c.updateNodesAround(n.Pos, 11)
	c.removeUnusedRoad(c.flagOf(n.Pos))

	// Replace the lost producer and keep expanding.
	c.addBuildJob(bt, n.Pos, false)
	if c.plan.have(gameworld.Farm)+c.queuedJobs(gameworld.Farm) < c.plan.Wanted(gameworld.Farm) {
		c.addBuildJob(gameworld.Farm, n.Pos, false)
	}
	c.addMilitaryJob(n.Pos)
}

// servesForester keeps the two woodcutters closest to a nearby forester
// alive even when their surroundings are cut bare; the forester will
// replant for them.
func (c *Controller) servesForester(pos grid.Point) bool {
	for _, f := range c.world.Buildings(gameworld.Forester) {
		if c.topo.Distance(pos, f.Pos) > gamedata.ResourceRadius[gameworld.ResourceWood] {
			continue
		}
		closer := 0
		for _, w := range c.world.Buildings(gameworld.Woodcutter) {
			if w.Pos != pos && c.topo.Distance(w.Pos, f.Pos) < c.topo.Distance(pos, f.Pos) {
				closer++
			}
		}
		if closer < 2 {
			return true
		}
	}
	return false
}

func (c *Controller) handleConstructionOrder(n gameworld.Note) {
	job := &buildJob{bt: n.Building, around: n.Pos, fixed: n.Forced}
	if n.Forced {
		job.at = n.Pos
	}
	c.pushFrontBuild(job)
}

func (c *Controller) handleColonyFounded(pt grid.Point) {
	c.updateNodesAround(pt, 8)
	c.addConnectJob(c.flagOf(pt))
}

func (c *Controller) handleResourceFound(n gameworld.Note) {
	r := n.Resource
	c.updateNodesAround(n.Pos, gamedata.ResourceRadius[r])
}

// handleRoadComplete places intermediate flags along a freshly built
// road so goods can be handed over in shorter hops. When the far end is
// a warehouse flag the walk starts there, putting the first split where
// carrier congestion is worst.
func (c *Controller) handleRoadComplete(n gameworld.Note) {
	pos := n.Pos
	dir := n.Dir
	if far, back, ok := c.roadFarEnd(pos, dir); ok &&
		!c.flagFrontsWarehouse(pos) && c.flagFrontsWarehouse(far) {
		pos, dir = far, back
	}
	steps := 0
	cur := pos
	for {
		cur = c.topo.Neighbor(cur, dir)
		if !c.world.OnRoad(cur) || c.world.OwnFlag(cur) {
			return
		}
		steps++
		if steps%2 == 0 && c.world.PlaceFlag(cur) {
			c.record("place_flag", cur, "road split")
		}
		next, ok := c.roadContinuation(cur, dir.Opposite())
		if !ok {
			return
		}
		dir = next
	}
}

// roadFarEnd follows a road from a flag to the flag at its other end,
// returning that flag and the direction leading back onto the road.
func (c *Controller) roadFarEnd(pos grid.Point, dir grid.Direction) (grid.Point, grid.Direction, bool) {
	cur := pos
	for i := 0; i < c.tun.MaxRoadLength*2; i++ {
		next := c.topo.Neighbor(cur, dir)
		if c.world.OwnFlag(next) {
			return next, dir.Opposite(), true
		}
		if !c.world.OnRoad(next) {
			return grid.InvalidPoint, 0, false
		}
		cont, ok := c.roadContinuation(next, dir.Opposite())
		if !ok {
			return grid.InvalidPoint, 0, false
		}
		cur, dir = next, cont
	}
	return grid.InvalidPoint, 0, false
}

func (c *Controller) flagFrontsWarehouse(fp grid.Point) bool {
	bt, ok := c.world.BuildingAt(c.buildingOf(fp))
	return ok && bt.IsWarehouse()
}

// roadContinuation picks the direction a road continues in from a road
// tile, excluding the direction we came from.
func (c *Controller) roadContinuation(pt grid.Point, from grid.Direction) (grid.Direction, bool) {
	for d := grid.Direction(0); d < grid.NumDirections; d++ {
		if d == from {
			continue
		}
		nb := c.topo.Neighbor(pt, d)
		if c.world.OnRoad(nb) || c.world.OwnFlag(nb) {
			return d, true
		}
	}
	return 0, false
}

func (c *Controller) handleRoadFailed(n gameworld.Note) {
	c.nodes.MarkFailed(n.Pos)
	if !c.world.OwnFlag(n.Pos) {
		return
	}
	if c.world.ConnectedToRoadNet(n.Pos) {
		return
	}
	c.removeUnusedRoad(n.Pos)
	if c.world.OwnFlag(n.Pos) {
		c.pushFrontConnect(&connectJob{flag: n.Pos})
	}
}

// warehouseNear reports whether any storehouse sits within dist of pt.
func (c *Controller) warehouseNear(pt grid.Point, dist int) bool {
	for _, wh := range c.world.Storehouses() {
		if c.topo.Distance(pt, wh.Pos) < dist {
			return true
		}
	}
	return false
}

// gathererBuildings are seeded around fresh territory in this order.
var gathererBuildings = []gameworld.BuildingType{
	gameworld.Woodcutter,
	gameworld.Quarry,
	gameworld.Sawmill,
	gameworld.Fishery,
	gameworld.Hunter,
	gameworld.Farm,
	gameworld.GoldMine,
	gameworld.CoalMine,
	gameworld.IronMine,
}
