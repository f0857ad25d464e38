// Package gamedata holds the read-only content tables the AI consults:
// building footprints, resource search radii, worker/tool associations
// and the per-difficulty cadence constants.
package gamedata

import (
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

// BuildingSize gives the buildability class a building type requires.
var BuildingSize = [gameworld.NumBuildingTypes]grid.BuildQuality{
	gameworld.Headquarters:   grid.BQCastle,
	gameworld.Storehouse:     grid.BQHouse,
	gameworld.HarborBuilding: grid.BQHarbor,
	gameworld.Woodcutter:     grid.BQHut,
	gameworld.Forester:       grid.BQHut,
	gameworld.Sawmill:        grid.BQHouse,
	gameworld.Quarry:         grid.BQHut,
	gameworld.Fishery:        grid.BQHut,
	gameworld.Hunter:         grid.BQHut,
	gameworld.Farm:           grid.BQCastle,
	gameworld.Mill:           grid.BQHouse,
	gameworld.Bakery:         grid.BQHouse,
	gameworld.PigFarm:        grid.BQCastle,
	gameworld.Slaughterhouse: grid.BQHouse,
	gameworld.Brewery:        grid.BQHouse,
	gameworld.Charburner:     grid.BQCastle,
	gameworld.GoldMine:       grid.BQMine,
	gameworld.CoalMine:       grid.BQMine,
	gameworld.IronMine:       grid.BQMine,
	gameworld.GraniteMine:    grid.BQMine,
	gameworld.Ironsmelter:    grid.BQHouse,
	gameworld.Mint:           grid.BQHouse,
	gameworld.Armory:         grid.BQHouse,
	gameworld.Metalworks:     grid.BQHouse,
	gameworld.Shipyard:       grid.BQHouse,
	gameworld.DonkeyBreeder:  grid.BQCastle,
	gameworld.Barracks:       grid.BQHut,
	gameworld.Guardhouse:     grid.BQHut,
	gameworld.Watchtower:     grid.BQHouse,
	gameworld.Fortress:       grid.BQCastle,
	gameworld.Catapult:       grid.BQHouse,
}

// ResourceRadius is the search radius per desirability-map kind: how far
// a worker of the matching building actually ranges.
var ResourceRadius = [gameworld.NumResources]int{
	gameworld.ResourceWood:       8,
	gameworld.ResourceStones:     8,
	gameworld.ResourceGold:       2,
	gameworld.ResourceIronOre:    2,
	gameworld.ResourceCoal:       2,
	gameworld.ResourceGranite:    2,
	gameworld.ResourcePlantspace: 3,
	gameworld.ResourceBorderland: 5,
	gameworld.ResourceFish:       5,
}

// ToolToGood maps a tool to the good it is stored as.
var ToolToGood = [gameworld.NumTools]gameworld.Good{
	gameworld.ToolAxe:        gameworld.GoodAxe,
	gameworld.ToolSaw:        gameworld.GoodSaw,
	gameworld.ToolPickAxe:    gameworld.GoodPickAxe,
	gameworld.ToolHammer:     gameworld.GoodHammer,
	gameworld.ToolScythe:     gameworld.GoodScythe,
	gameworld.ToolRollingPin: gameworld.GoodRollingPin,
	gameworld.ToolShovel:     gameworld.GoodShovel,
	gameworld.ToolCrucible:   gameworld.GoodCrucible,
	gameworld.ToolTongs:      gameworld.GoodTongs,
	gameworld.ToolCleaver:    gameworld.GoodCleaver,
	gameworld.ToolRodAndLine: gameworld.GoodRodAndLine,
	gameworld.ToolBow:        gameworld.GoodBow,
}

// ProfessionTool maps a profession to the tool it needs, or false when
// the job needs none.
func ProfessionTool(p gameworld.Profession) (gameworld.Tool, bool) {
	switch p {
	case gameworld.ProfWoodcutter:
		return gameworld.ToolAxe, true
	case gameworld.ProfCarpenter:
		return gameworld.ToolSaw, true
	case gameworld.ProfStonemason, gameworld.ProfMiner:
		return gameworld.ToolPickAxe, true
	case gameworld.ProfForester:
		return gameworld.ToolShovel, true
	case gameworld.ProfFisher:
		return gameworld.ToolRodAndLine, true
	case gameworld.ProfHunter:
		return gameworld.ToolBow, true
	case gameworld.ProfFarmer:
		return gameworld.ToolScythe, true
	case gameworld.ProfBaker:
		return gameworld.ToolRollingPin, true
	case gameworld.ProfButcher:
		return gameworld.ToolCleaver, true
	case gameworld.ProfSmelter, gameworld.ProfMinter:
		return gameworld.ToolCrucible, true
	case gameworld.ProfArmorer, gameworld.ProfMetalworker, gameworld.ProfShipwright:
		return gameworld.ToolTongs, true
	default:
		return 0, false
	}
}

// BuildingWorker maps a building to the profession that runs it, or
// false for buildings worked by soldiers or nobody.
func BuildingWorker(bt gameworld.BuildingType) (gameworld.Profession, bool) {
	switch bt {
	case gameworld.Woodcutter:
		return gameworld.ProfWoodcutter, true
	case gameworld.Sawmill:
		return gameworld.ProfCarpenter, true
	case gameworld.Quarry:
		return gameworld.ProfStonemason, true
	case gameworld.Forester:
		return gameworld.ProfForester, true
	case gameworld.Fishery:
		return gameworld.ProfFisher, true
	case gameworld.Hunter:
		return gameworld.ProfHunter, true
	case gameworld.Farm:
		return gameworld.ProfFarmer, true
	case gameworld.Mill:
		return gameworld.ProfMiller, true
	case gameworld.Bakery:
		return gameworld.ProfBaker, true
	case gameworld.PigFarm:
		return gameworld.ProfPigBreeder, true
	case gameworld.Slaughterhouse:
		return gameworld.ProfButcher, true
	case gameworld.Brewery:
		return gameworld.ProfBrewer, true
	case gameworld.Charburner:
		return gameworld.ProfCharburner, true
	case gameworld.GoldMine, gameworld.CoalMine, gameworld.IronMine, gameworld.GraniteMine:
		return gameworld.ProfMiner, true
	case gameworld.Ironsmelter:
		return gameworld.ProfSmelter, true
	case gameworld.Mint:
		return gameworld.ProfMinter, true
	case gameworld.Armory:
		return gameworld.ProfArmorer, true
	case gameworld.Metalworks:
		return gameworld.ProfMetalworker, true
	case gameworld.Shipyard:
		return gameworld.ProfShipwright, true
	case gameworld.DonkeyBreeder:
		return gameworld.ProfDonkeyBreeder, true
	default:
		return 0, false
	}
}

// MapResourceFor gives the desirability map a building type is sited
// against, or false for buildings placed by plain position search.
func MapResourceFor(bt gameworld.BuildingType) (gameworld.Resource, bool) {
	switch bt {
	case gameworld.Woodcutter, gameworld.Forester:
		return gameworld.ResourceWood, true
	case gameworld.Quarry:
		return gameworld.ResourceStones, true
	case gameworld.GoldMine:
		return gameworld.ResourceGold, true
	case gameworld.IronMine:
		return gameworld.ResourceIronOre, true
	case gameworld.CoalMine:
		return gameworld.ResourceCoal, true
	case gameworld.GraniteMine:
		return gameworld.ResourceGranite, true
	case gameworld.Fishery:
		return gameworld.ResourceFish, true
	case gameworld.Farm:
		return gameworld.ResourcePlantspace, true
	case gameworld.Barracks, gameworld.Guardhouse, gameworld.Watchtower, gameworld.Fortress:
		return gameworld.ResourceBorderland, true
	default:
		return 0, false
	}
}

// GarrisonFor returns the troop count a military building should hold at
// a given garrison slider setting (0..8).
func GarrisonFor(maxTroops, setting int) int {
	if setting <= 0 {
		return 0
	}
	n := 1 + (maxTroops-1)*setting/8
	if n > maxTroops {
		n = maxTroops
	}
	return n
}
