package brain

import (
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

// handleWaitingShips gives orders to every expedition ship awaiting
// them: found a colony when possible, otherwise try the exploration
// directions from a random starting offset, and cancel when the sea is
// exhausted.
func (c *Controller) handleWaitingShips() {
	for _, s := range c.world.Ships() {
		if !s.WaitingOrders {
			continue
		}
		if s.CanFoundColony {
			c.world.FoundColony(s.ID)
			c.record("found_colony", s.Pos, "")
			continue
		}
		start := grid.Direction(c.rng.Intn(int(grid.NumDirections)))
		moved := false
		for i := grid.Direction(0); i < grid.NumDirections; i++ {
			d := (start + i) % grid.NumDirections
			if c.world.ExplorationPossible(s.ID, d) {
				c.world.TravelToNextSpot(s.ID, d)
				moved = true
				break
			}
		}
		if !moved {
			c.world.CancelExpedition(s.ID)
			c.record("cancel_expedition", s.Pos, "")
		}
	}
}

// handleShipBuilt caps the fleet: shipyards stop producing once we have
// enough hulls for the seas we sail.
func (c *Controller) handleShipBuilt() {
	yards := c.world.Buildings(gameworld.Shipyard)
	if len(yards) == 0 {
		return
	}
	limit := 3 * len(yards)
	if limit > 7 {
		limit = 7
	}
	if n := len(c.ownSeaIDs()); n > 0 && limit > 2*n+1 {
		limit = 2*n + 1
	}
	satisfied := len(c.world.Ships()) >= limit
	for _, y := range yards {
		if y.ProductionDisabled != satisfied {
			c.world.SetProductionEnabled(y.Pos, !satisfied)
			c.record("set_production", y.Pos, "shipyard")
		}
	}
}

// checkExpeditions toggles harbor expeditions by usefulness: a harbor
// launches only while a free, sea-reachable harbor spot remains to
// colonize. Ships already waiting get their orders re-run.
func (c *Controller) checkExpeditions() {
	harbors := c.world.Harbors()
	for _, h := range harbors {
		useful := c.freeSpotReachableFrom(h)
		if useful != h.ExpeditionActive {
			c.world.StartExpedition(h.Pos, useful)
			c.record("start_expedition", h.Pos, "")
		}
	}
	c.handleWaitingShips()
}

// freeSpotReachableFrom reports whether any free harbor spot shares a
// sea with the given harbor.
func (c *Controller) freeSpotReachableFrom(h gameworld.HarborInfo) bool {
	seas := c.world.SeaIDsAtSpot(h.SpotID)
	if len(seas) == 0 {
		return false
	}
	for _, spot := range c.world.HarborSpots() {
		if spot.ID == h.SpotID || !c.world.HarborSpotFree(spot.ID) {
			continue
		}
		for _, sid := range c.world.SeaIDsAtSpot(spot.ID) {
			for _, own := range seas {
				if sid == own {
					return true
				}
			}
		}
	}
	return false
}
