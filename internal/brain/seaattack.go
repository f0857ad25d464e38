package brain

import (
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

// trySeaAttack launches at most one ship-borne attack per trigger.
// Candidate targets are enemy harbor buildings (undefended ones first)
// and military buildings near free harbor spots; a bounded scan with a
// random skip keeps the spot walk cheap on large coasts.
func (c *Controller) trySeaAttack() {
	seaIDs := c.ownSeaIDs()
	if len(seaIDs) == 0 {
		return
	}
	attackers := 0
	for _, id := range seaIDs {
		attackers += c.world.SeaAttackerCount(id)
	}
	if attackers == 0 {
		return
	}

	spots := c.world.HarborSpots()
	if len(spots) == 0 {
		return
	}

	var undefended, defended, nearSpots []gameworld.TargetInfo
	seen := make(map[grid.Point]bool)
	scanned := 0
	start := c.rng.Intn(len(spots))
	for i := 0; i < len(spots) && scanned < 15; i++ {
		spot := spots[(start+i)%len(spots)]
		// Random skip so successive triggers cover different stretches.
		if len(spots) > 15 && c.rng.Intn(2) == 0 {
			continue
		}
		scanned++
		if t, ok := c.world.HarborBuildingAtSpot(spot.ID); ok && t.Owner != c.id && t.Attackable {
			if seen[t.Pos] {
				continue
			}
			seen[t.Pos] = true
			if t.Troops == 0 && !t.Defenders {
				undefended = append(undefended, t)
			} else {
				defended = append(defended, t)
			}
			continue
		}
		if !c.world.HarborSpotFree(spot.ID) {
			continue
		}
		for _, t := range c.world.EnemyMilitaryInRange(spot.Pos, 6) {
			if t.Attackable && t.Visible && !seen[t.Pos] {
				seen[t.Pos] = true
				nearSpots = append(nearSpots, t)
			}
		}
	}

	c.rng.Shuffle(len(undefended), func(i, j int) {
		undefended[i], undefended[j] = undefended[j], undefended[i]
	})
	ordered := append(undefended, append(defended, nearSpots...)...)
	for _, t := range ordered {
		if !c.world.ReachableBySea(t.Pos, seaIDs) {
			continue
		}
		n := c.world.SeaAttackersForTarget(t.Pos)
		if n == 0 {
			continue
		}
		c.world.SeaAttack(t.Pos, n)
		c.record("sea_attack", t.Pos, t.Building.String())
		c.log.Info("sea attack", "target", t.Pos, "attackers", n)
		return
	}
}

// ownSeaIDs collects the distinct seas our harbors touch.
func (c *Controller) ownSeaIDs() []int {
	seen := make(map[int]bool)
	var ids []int
	for _, h := range c.world.Harbors() {
		for _, id := range c.world.SeaIDsAtSpot(h.SpotID) {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
