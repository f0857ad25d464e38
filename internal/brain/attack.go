package brain

import (
	"github.com/torvund/settlemind/internal/gamedata"
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

// tryToAttack scans for enemy targets near our military buildings and
// launches at most one attack per trigger. Undefended headquarters and
// harbors are the jackpot: taking one cripples the owner, so they come
// first. Everything else is shuffled so repeated triggers do not hammer
// the same target.
func (c *Controller) tryToAttack() {
	mil := c.world.MilitaryBuildings()
	if len(mil) == 0 {
		return
	}

	seen := make(map[grid.Point]bool)
	var undefended, regular []gameworld.TargetInfo
	for _, m := range mil {
		// On sprawling fronts, sample a bounded subset of own buildings
		// instead of scanning every garrison each trigger.
		if len(mil) > c.tun.AttackSampling && c.rng.Intn(len(mil)) >= c.tun.AttackSampling {
			continue
		}
		for _, t := range c.world.EnemyMilitaryInRange(m.Pos, c.tun.AttackDistance) {
			if !t.Attackable || !t.Visible || seen[t.Pos] {
				continue
			}
			seen[t.Pos] = true
			if !t.IsMilitary && t.Troops == 0 && !t.Defenders {
				undefended = append(undefended, t)
			} else {
				regular = append(regular, t)
			}
		}
	}
	c.rng.Shuffle(len(regular), func(i, j int) {
		regular[i], regular[j] = regular[j], regular[i]
	})

	for _, t := range append(undefended, regular...) {
		count, strength := c.attackersFor(t.Pos, mil)
		if count == 0 {
			continue
		}
		// Hard tier does the arithmetic before committing troops.
		if c.level == gamedata.Hard && t.Troops > 0 && strength <= t.Strength*t.Troops {
			continue
		}
		c.world.Attack(t.Pos, count, true)
		c.record("attack", t.Pos, t.Building.String())
		c.log.Info("attacking", "target", t.Pos, "building", t.Building.String(), "attackers", count)
		return
	}
}

// attackersFor totals the soldiers our garrisons can send at a target.
func (c *Controller) attackersFor(target grid.Point, mil []gameworld.MilitaryInfo) (int, int) {
	count, strength := 0, 0
	for _, m := range mil {
		if c.topo.Distance(m.Pos, target) > c.tun.AttackDistance {
			continue
		}
		n, s := c.world.AttackersFromBuilding(m.Pos, target)
		count += n
		strength += s
	}
	return count, strength
}
