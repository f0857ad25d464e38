package gameworld

import "github.com/torvund/settlemind/internal/grid"

// WarehouseInfo is a read-only snapshot of one of the player's warehouses.
type WarehouseInfo struct {
	Pos     grid.Point
	Stock   map[Good]int
	Workers map[Profession]int
	Ranks   map[Rank]int

	// Current inventory policy as last commanded.
	Blocked     map[Good]bool
	BlockedRank map[Rank]bool
	Collect     map[Good]bool
	CollectProf map[Profession]bool
	CollectRank map[Rank]bool
}

// MilitaryInfo is a read-only snapshot of one of the player's military
// buildings.
type MilitaryInfo struct {
	Pos          grid.Point
	Building     BuildingType
	Frontier     FrontierDistance
	NewBuilt     bool // garrison not yet arrived
	Troops       int
	MaxTroops    int
	GoldDisabled bool
	UnderAttack  bool
	Useless      bool // fully enclosed by own land, no frontier purpose
}

// BuildingInfo is a read-only snapshot of a production building.
type BuildingInfo struct {
	Pos                grid.Point
	Building           BuildingType
	Productivity       int // percent
	HasWorker          bool
	WaresWaiting       int
	OrderedWares       int
	ProductionDisabled bool
}

// SiteInfo describes an unfinished building site.
type SiteInfo struct {
	Pos       grid.Point
	Building  BuildingType
	Connected bool // flag has at least one road
}

// HarborInfo describes one of the player's harbor buildings.
type HarborInfo struct {
	Pos              grid.Point
	SpotID           int
	ExpeditionActive bool
}

// ShipInfo describes one of the player's ships.
type ShipInfo struct {
	ID             int
	Pos            grid.Point
	SeaID          int
	WaitingOrders  bool // expedition ship waiting for instructions
	CanFoundColony bool
}

// TargetInfo describes a potentially attackable enemy structure.
type TargetInfo struct {
	Pos        grid.Point
	Owner      int
	Building   BuildingType
	IsMilitary bool // garrison building, as opposed to HQ or harbor
	NewBuilt   bool
	Troops     int
	Strength   int
	Defenders  bool // any defenders available
	Attackable bool
	Visible    bool
}

// HarborSpot is a fixed coastal position where a harbor may be built.
type HarborSpot struct {
	ID  int
	Pos grid.Point
}

// View is the read side of the world boundary, already bound to one
// player: territory, visibility and building lists are that player's.
type View interface {
	Size() (w, h int)

	// Per-tile queries.
	BuildQuality(pt grid.Point) grid.BuildQuality
	OwnTerritory(pt grid.Point) bool
	Border(pt grid.Point) bool
	OnRoad(pt grid.Point) bool
	VitalGround(pt grid.Point) bool // terrain that can grow plants
	Surface(pt grid.Point) SurfaceResource
	Subsurface(pt grid.Point) SubsurfaceResource
	RoadNodeOK(pt grid.Point) bool // path-construction feasibility
	OwnFlag(pt grid.Point) bool
	BuildingAt(pt grid.Point) (BuildingType, bool) // own building on tile
	SiteAt(pt grid.Point) (BuildingType, bool)     // own building site on tile

	// Own-structure lists.
	Storehouses() []WarehouseInfo
	MilitaryBuildings() []MilitaryInfo
	Buildings(bt BuildingType) []BuildingInfo
	BuildingSites() []SiteInfo
	Harbors() []HarborInfo
	Ships() []ShipInfo

	// Road network queries.
	ConnectedToRoadNet(flagPos grid.Point) bool
	PathOnRoads(a, b grid.Point) bool
	RoadPathToNetwork(flagPos grid.Point, maxLen int) ([]grid.Direction, bool)
	FlagsAround(pt grid.Point, radius int) []grid.Point
	RoadsAtFlag(flagPos grid.Point) []grid.Direction

	// Combat queries.
	EnemyMilitaryInRange(pt grid.Point, radius int) []TargetInfo
	AttackersFromBuilding(bldPos, target grid.Point) (count, strength int)

	// Sea queries.
	Seafaring() bool
	SeaAttackerCount(seaID int) int
	SeaAttackersForTarget(target grid.Point) int
	ReachableBySea(target grid.Point, seaIDs []int) bool
	HarborSpots() []HarborSpot
	HarborBuildingAtSpot(id int) (TargetInfo, bool)
	SeaIDsAtSpot(id int) []int
	HarborSpotFree(id int) bool
	ExplorationPossible(shipID int, dir grid.Direction) bool

	// Validation helpers for chosen sites.
	ResourceReachableFrom(pt grid.Point, res Resource) bool
	HuntablesNear(pt grid.Point, min int) bool

	// World settings.
	MaxRank() Rank
	InexhaustibleMines() bool
}

// Command is the write side of the boundary. The simulation remains the
// sole mutator of ground truth; these are intents that may fail silently
// or asynchronously (results arrive as notes).
type Command interface {
	PlaceBuildingSite(pt grid.Point, bt BuildingType) bool
	DestroyBuilding(pt grid.Point)
	DestroyFlag(pt grid.Point)
	DestroyRoad(flagPos grid.Point, dir grid.Direction)
	PlaceFlag(pt grid.Point) bool
	BuildRoad(flagPos grid.Point, route []grid.Direction) bool

	SetGoodBlocked(whPos grid.Point, good Good, blocked bool)
	SetRankBlocked(whPos grid.Point, rank Rank, blocked bool)
	SetGoodCollect(whPos grid.Point, good Good, collect bool)
	SetProfessionCollect(whPos grid.Point, p Profession, collect bool)
	SetRankCollect(whPos grid.Point, rank Rank, collect bool)

	SetCoinsAllowed(bldPos grid.Point, allowed bool)
	SetTroopLimit(bldPos grid.Point, rank Rank, limit int)
	SetProductionEnabled(bldPos grid.Point, enabled bool)

	ChangeDistribution(d DistributionSettings)
	ChangeMilitarySettings(s MilitarySettings)
	ChangeToolPriorities(p ToolPriorities)

	Attack(target grid.Point, attackers int, strongSoldiers bool)
	SeaAttack(target grid.Point, attackers int)

	StartExpedition(harborPos grid.Point, start bool)
	FoundColony(shipID int)
	TravelToNextSpot(shipID int, dir grid.Direction)
	CancelExpedition(shipID int)

	Chat(msg string)
	Surrender()
}

// World combines both sides; a controller holds exactly one.
type World interface {
	View
	Command
}

// DistributionSettings is the global per-consumer goods distribution
// table (shares 0..10).
type DistributionSettings struct {
	FoodToGraniteMines   int
	FoodToCoalMines      int
	FoodToIronMines      int
	FoodToGoldMines      int
	GrainToMill          int
	GrainToPigFarm       int
	GrainToBreeder       int
	GrainToBrewery       int
	GrainToCharburner    int
	IronToArmory         int
	IronToMetalworks     int
	CoalToArmory         int
	CoalToIronsmelter    int
	CoalToMint           int
	WoodToSawmill        int
	WoodToCharburner     int
	BoardsToConstruction int
	BoardsToMetalworks   int
	BoardsToShipyard     int
	WaterToBakery        int
	WaterToBrewery       int
	WaterToPigFarm       int
	WaterToBreeder       int
}

// MilitarySettings is the global military slider vector (each 0..8):
// recruitment rate, defender strength, defenders per attack, outward
// aggression, then garrison levels for interior, inland, harbor and
// frontier buildings.
type MilitarySettings [8]int

// ToolPriorities is the tool production priority table (each 0..10).
type ToolPriorities [NumTools]int

// NoteKind tags an asynchronous world notification.
type NoteKind uint8

const (
	NoteBuildingFinished NoteKind = iota
	NoteBuildingDestroyed
	NoteBuildingConquered
	NoteBuildingLost
	NoteLostLand
	NoteResourcesExhausted
	NoteConstructionOrder // scripted/forced construction order
	NoteExpeditionWaiting
	NoteColonyFounded
	NoteResourceFound
	NoteRoadComplete
	NoteRoadFailed
	NoteShipBuilt
	NoteNodeBQ    // buildability changed at a tile
	NoteNodeOwner // ownership changed at a tile
)

var noteNames = map[NoteKind]string{
	NoteBuildingFinished:   "building_finished",
	NoteBuildingDestroyed:  "building_destroyed",
	NoteBuildingConquered:  "building_conquered",
	NoteBuildingLost:       "building_lost",
	NoteLostLand:           "lost_land",
	NoteResourcesExhausted: "resources_exhausted",
	NoteConstructionOrder:  "construction_order",
	NoteExpeditionWaiting:  "expedition_waiting",
	NoteColonyFounded:      "colony_founded",
	NoteResourceFound:      "resource_found",
	NoteRoadComplete:       "road_complete",
	NoteRoadFailed:         "road_failed",
	NoteShipBuilt:          "ship_built",
	NoteNodeBQ:             "node_bq",
	NoteNodeOwner:          "node_owner",
}

func (k NoteKind) String() string {
	if s, ok := noteNames[k]; ok {
		return s
	}
	return "unknown"
}

// Note is one asynchronous world notification, already filtered to the
// receiving player where player-specific.
type Note struct {
	Kind     NoteKind
	Player   int
	Pos      grid.Point
	Building BuildingType
	Resource Resource
	Dir      grid.Direction
	Forced   bool // NoteConstructionOrder: build exactly at Pos
}

// Notifier delivers notes. Subscription callbacks run synchronously on
// the simulation tick; they must only record, never act.
type Notifier interface {
	Subscribe(player int, fn func(Note))
}
