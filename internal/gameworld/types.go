// Package gameworld defines the narrow interface boundary between the AI
// controller and the simulation that owns ground truth. The controller
// only ever reads world state through View and mutates it through
// Command; notifications arrive through Notifier subscriptions.
package gameworld

import "github.com/torvund/settlemind/internal/grid"

// BuildingType enumerates every constructible building.
type BuildingType uint8

const (
	Headquarters BuildingType = iota
	Storehouse
	HarborBuilding
	Woodcutter
	Forester
	Sawmill
	Quarry
	Fishery
	Hunter
	Farm
	Mill
	Bakery
	PigFarm
	Slaughterhouse
	Brewery
	Charburner
	GoldMine
	CoalMine
	IronMine
	GraniteMine
	Ironsmelter
	Mint
	Armory
	Metalworks
	Shipyard
	DonkeyBreeder
	Barracks
	Guardhouse
	Watchtower
	Fortress
	Catapult
	NumBuildingTypes
)

var buildingNames = [NumBuildingTypes]string{
	"headquarters", "storehouse", "harbor", "woodcutter", "forester",
	"sawmill", "quarry", "fishery", "hunter", "farm", "mill", "bakery",
	"pigfarm", "slaughterhouse", "brewery", "charburner", "goldmine",
	"coalmine", "ironmine", "granitemine", "ironsmelter", "mint", "armory",
	"metalworks", "shipyard", "donkeybreeder", "barracks", "guardhouse",
	"watchtower", "fortress", "catapult",
}

func (b BuildingType) String() string {
	if int(b) < len(buildingNames) {
		return buildingNames[b]
	}
	return "unknown"
}

// IsMilitary reports whether the building holds troops and claims land.
func (b BuildingType) IsMilitary() bool {
	switch b {
	case Barracks, Guardhouse, Watchtower, Fortress:
		return true
	}
	return false
}

// IsWarehouse reports whether the building stores goods and people.
func (b BuildingType) IsWarehouse() bool {
	switch b {
	case Headquarters, Storehouse, HarborBuilding:
		return true
	}
	return false
}

// IsMine reports whether the building sits on mountain tiles.
func (b BuildingType) IsMine() bool {
	switch b {
	case GoldMine, CoalMine, IronMine, GraniteMine:
		return true
	}
	return false
}

// Good enumerates transportable wares.
type Good uint8

const (
	GoodBoards Good = iota
	GoodStones
	GoodWood
	GoodGrain
	GoodFlour
	GoodBread
	GoodHam
	GoodFish
	GoodWater
	GoodBeer
	GoodGold
	GoodCoins
	GoodCoal
	GoodIronOre
	GoodIron
	GoodSword
	GoodShield
	GoodAxe
	GoodSaw
	GoodPickAxe
	GoodHammer
	GoodScythe
	GoodRollingPin
	GoodShovel
	GoodCrucible
	GoodTongs
	GoodCleaver
	GoodRodAndLine
	GoodBow
	NumGoods
)

// Tool enumerates producible tools (a subset of goods).
type Tool uint8

const (
	ToolAxe Tool = iota
	ToolSaw
	ToolPickAxe
	ToolHammer
	ToolScythe
	ToolRollingPin
	ToolShovel
	ToolCrucible
	ToolTongs
	ToolCleaver
	ToolRodAndLine
	ToolBow
	NumTools
)

// Profession enumerates specialist workers.
type Profession uint8

const (
	ProfHelper Profession = iota
	ProfWoodcutter
	ProfCarpenter
	ProfStonemason
	ProfForester
	ProfFisher
	ProfHunter
	ProfFarmer
	ProfMiller
	ProfBaker
	ProfPigBreeder
	ProfButcher
	ProfBrewer
	ProfCharburner
	ProfMiner
	ProfSmelter
	ProfMinter
	ProfArmorer
	ProfMetalworker
	ProfShipwright
	ProfDonkeyBreeder
	NumProfessions
)

// Rank is a soldier rank, 0 = lowest. The highest available rank depends
// on world settings (View.MaxRank).
type Rank uint8

// NumRanks is the size of the full rank ladder.
const NumRanks = 5

// Resource enumerates the kinds the AI keeps desirability maps for.
type Resource uint8

const (
	ResourceWood Resource = iota
	ResourceStones
	ResourceGold
	ResourceIronOre
	ResourceCoal
	ResourceGranite
	ResourcePlantspace
	ResourceBorderland
	ResourceFish
	NumResources
)

var resourceNames = [NumResources]string{
	"wood", "stones", "gold", "ironore", "coal", "granite",
	"plantspace", "borderland", "fish",
}

func (r Resource) String() string {
	if int(r) < len(resourceNames) {
		return resourceNames[r]
	}
	return "unknown"
}

// SurfaceResource is what visibly sits on a tile.
type SurfaceResource uint8

const (
	SurfaceNothing SurfaceResource = iota
	SurfaceWood
	SurfaceStones
	SurfaceBlocked
)

// SubsurfaceResource is what a mine or well would extract below a tile.
type SubsurfaceResource uint8

const (
	SubsurfaceNothing SubsurfaceResource = iota
	SubsurfaceGold
	SubsurfaceIronOre
	SubsurfaceCoal
	SubsurfaceGranite
	SubsurfaceFish
)

// NodeResourceOf maps a subsurface resource to its node classification.
func (s SubsurfaceResource) NodeResourceOf() grid.NodeResource {
	switch s {
	case SubsurfaceGold:
		return grid.NodeGold
	case SubsurfaceIronOre:
		return grid.NodeIronOre
	case SubsurfaceCoal:
		return grid.NodeCoal
	case SubsurfaceGranite:
		return grid.NodeGranite
	case SubsurfaceFish:
		return grid.NodeFish
	default:
		return grid.NodeNothing
	}
}

// FrontierDistance classifies a military building's distance to contested
// territory.
type FrontierDistance uint8

const (
	FrontierFar FrontierDistance = iota
	FrontierMid
	FrontierNear
	FrontierHarbor
)
