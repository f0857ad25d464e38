package brain

import "github.com/torvund/settlemind/internal/gameworld"

// planner tracks how many buildings of each type exist (finished plus
// under construction) and how many the economy currently wants. Demand
// is recomputed periodically, never per placement.
type planner struct {
	finished [gameworld.NumBuildingTypes]int
	sites    [gameworld.NumBuildingTypes]int
	wanted   [gameworld.NumBuildingTypes]int
}

// have returns finished plus in-construction counts for a type.
func (p *planner) have(bt gameworld.BuildingType) int {
	return p.finished[bt] + p.sites[bt]
}

// Wanted returns the current demand for a building type.
func (p *planner) Wanted(bt gameworld.BuildingType) int {
	return p.wanted[bt]
}

// refresh recounts from world queries, then recomputes demand from the
// refreshed counts. The wood chain leads, gatherers scale with military
// expansion, and processing buildings wait for their inputs.
func (p *planner) refresh(c *Controller) {
	for bt := gameworld.BuildingType(0); bt < gameworld.NumBuildingTypes; bt++ {
		p.finished[bt] = 0
		p.sites[bt] = 0
	}
	for bt := gameworld.BuildingType(0); bt < gameworld.NumBuildingTypes; bt++ {
		if bt.IsMilitary() || bt.IsWarehouse() {
			continue
		}
		p.finished[bt] = len(c.world.Buildings(bt))
	}
	p.finished[gameworld.Storehouse] = len(c.world.Storehouses())
	for _, m := range c.world.MilitaryBuildings() {
		p.finished[m.Building]++
	}
	for _, s := range c.world.BuildingSites() {
		p.sites[s.Building]++
	}

	mil := 0
	for _, m := range c.world.MilitaryBuildings() {
		if !m.NewBuilt {
			mil++
		}
	}

	w := &p.wanted
	w[gameworld.Woodcutter] = capInt(2+mil/2, 12)
	w[gameworld.Sawmill] = capInt(1+w[gameworld.Woodcutter]/4, 6)
	w[gameworld.Forester] = 0
	if p.have(gameworld.Sawmill) > 0 {
		w[gameworld.Forester] = capInt(1+w[gameworld.Woodcutter]/3, 4)
	}
	w[gameworld.Quarry] = capInt(2+mil/6, 6)
	w[gameworld.Fishery] = capInt(1+mil/4, 5)
	w[gameworld.Hunter] = 1
	w[gameworld.Farm] = capInt(1+mil/3, 8)
	w[gameworld.Mill] = p.have(gameworld.Farm) / 2
	w[gameworld.Bakery] = p.have(gameworld.Mill)
	w[gameworld.PigFarm] = p.have(gameworld.Farm) / 4
	w[gameworld.Slaughterhouse] = p.have(gameworld.PigFarm)
	w[gameworld.Brewery] = 0
	if p.have(gameworld.Farm) >= 3 {
		w[gameworld.Brewery] = 1
	}

	// Mines follow the smelting chain; coal runs hotter than iron
	// because the armory and mint compete for it.
	w[gameworld.IronMine] = capInt(1+mil/5, 4)
	w[gameworld.CoalMine] = w[gameworld.IronMine] + 1
	w[gameworld.GoldMine] = capInt(1+mil/8, 2)
	w[gameworld.GraniteMine] = 1
	w[gameworld.Ironsmelter] = w[gameworld.IronMine]
	w[gameworld.Armory] = p.have(gameworld.Ironsmelter)
	w[gameworld.Mint] = p.have(gameworld.GoldMine)
	w[gameworld.Metalworks] = 1
	w[gameworld.Charburner] = 0
	if p.have(gameworld.CoalMine) == 0 && p.have(gameworld.Ironsmelter) > 0 {
		w[gameworld.Charburner] = 1
	}
	w[gameworld.DonkeyBreeder] = 0
	if mil >= 6 {
		w[gameworld.DonkeyBreeder] = 1
	}
	w[gameworld.Shipyard] = 0
	if c.world.Seafaring() {
		w[gameworld.Shipyard] = 1
	}
	w[gameworld.Storehouse] = 1 + mil/6
	w[gameworld.Catapult] = mil / 8
}

func capInt(v, max int) int {
	if v > max {
		return max
	}
	return v
}
