package simworld

import (
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

func (f *Faction) Size() (int, int) { return f.w.Topo.W, f.w.Topo.H }

// BuildQuality derives buildability from terrain and the immediate
// surroundings: mountains carry mines, designated coast tiles carry
// harbors, open land scales from hut to castle with clearance.
func (f *Faction) BuildQuality(pt grid.Point) grid.BuildQuality {
	w := f.w
	t := w.at(pt)
	if _, ok := w.buildings[w.Topo.Wrap(pt)]; ok {
		return grid.BQNothing
	}
	if t.flag {
		return grid.BQNothing
	}
	if t.hasRoad() {
		return grid.BQFlag
	}
	if t.surface != gameworld.SurfaceNothing {
		return grid.BQNothing
	}
	switch t.terrain {
	case terrainWater, terrainSwamp:
		return grid.BQNothing
	case terrainMountain:
		return grid.BQMine
	}
	if t.harborSpot != 0 {
		return grid.BQHarbor
	}

	// Clearance shrinks the allowed footprint.
	size := grid.BQCastle
	for _, nb := range w.Topo.Neighbors(pt) {
		n := w.at(nb)
		if n.terrain == terrainWater || n.terrain == terrainMountain {
			size = grid.BQHouse
		}
		if _, ok := w.buildings[nb]; ok || n.flag {
			return grid.BQHut
		}
	}
	if size == grid.BQCastle {
		for _, far := range w.Topo.PointsInRadius(pt, 2) {
			if _, ok := w.buildings[far]; ok {
				size = grid.BQHouse
				break
			}
		}
	}
	return size
}

func (f *Faction) OwnTerritory(pt grid.Point) bool { return f.w.at(pt).owner == f.id }

func (f *Faction) Border(pt grid.Point) bool {
	if f.w.at(pt).owner != f.id {
		return false
	}
	for _, nb := range f.w.Topo.Neighbors(pt) {
		if f.w.at(nb).owner != f.id {
			return true
		}
	}
	return false
}

func (f *Faction) OnRoad(pt grid.Point) bool { return f.w.at(pt).hasRoad() }

func (f *Faction) VitalGround(pt grid.Point) bool {
	t := f.w.at(pt).terrain
	return t == terrainPlain || t == terrainForest
}

func (f *Faction) Surface(pt grid.Point) gameworld.SurfaceResource {
	t := f.w.at(pt)
	if t.terrain == terrainSwamp {
		return gameworld.SurfaceBlocked
	}
	return t.surface
}

func (f *Faction) Subsurface(pt grid.Point) gameworld.SubsurfaceResource {
	return f.w.at(pt).sub
}

// RoadNodeOK reports whether a carrier path may cross the tile.
func (f *Faction) RoadNodeOK(pt grid.Point) bool {
	w := f.w
	t := w.at(pt)
	if t.owner != f.id {
		return false
	}
	if t.terrain == terrainWater || t.terrain == terrainSwamp {
		return false
	}
	_, occupied := w.buildings[w.Topo.Wrap(pt)]
	return !occupied
}

func (f *Faction) OwnFlag(pt grid.Point) bool {
	t := f.w.at(pt)
	return t.flag && t.owner == f.id
}

func (f *Faction) BuildingAt(pt grid.Point) (gameworld.BuildingType, bool) {
	b, ok := f.w.buildings[f.w.Topo.Wrap(pt)]
	if !ok || b.owner != f.id || !b.finished {
		return 0, false
	}
	return b.bt, true
}

func (f *Faction) SiteAt(pt grid.Point) (gameworld.BuildingType, bool) {
	b, ok := f.w.buildings[f.w.Topo.Wrap(pt)]
	if !ok || b.owner != f.id || b.finished {
		return 0, false
	}
	return b.bt, true
}

func (f *Faction) Storehouses() []gameworld.WarehouseInfo {
	var out []gameworld.WarehouseInfo
	for _, b := range f.w.buildings {
		if b.owner != f.id || !b.finished || !b.bt.IsWarehouse() {
			continue
		}
		out = append(out, gameworld.WarehouseInfo{
			Pos: b.pos, Stock: b.stock, Workers: b.workers, Ranks: b.ranks,
			Blocked: b.blocked, BlockedRank: b.blockedRank,
			Collect: b.collect, CollectProf: b.collectProf, CollectRank: b.collectRank,
		})
	}
	return out
}

func (f *Faction) MilitaryBuildings() []gameworld.MilitaryInfo {
	var out []gameworld.MilitaryInfo
	for _, b := range f.w.buildings {
		if b.owner != f.id || !b.finished || !b.bt.IsMilitary() {
			continue
		}
		out = append(out, gameworld.MilitaryInfo{
			Pos: b.pos, Building: b.bt,
			Frontier:     f.w.frontierOf(b),
			NewBuilt:     b.troops == 0,
			Troops:       b.troops,
			MaxTroops:    b.maxTroops,
			GoldDisabled: !b.coins,
			UnderAttack:  b.raided,
			Useless:      f.w.uselessMilitary(b),
		})
	}
	return out
}

func (f *Faction) Buildings(bt gameworld.BuildingType) []gameworld.BuildingInfo {
	var out []gameworld.BuildingInfo
	for _, b := range f.w.buildings {
		if b.owner != f.id || !b.finished || b.bt != bt {
			continue
		}
		out = append(out, gameworld.BuildingInfo{
			Pos: b.pos, Building: b.bt,
			Productivity:       f.w.productivityOf(b),
			HasWorker:          true,
			ProductionDisabled: b.disabled,
		})
	}
	return out
}

func (f *Faction) BuildingSites() []gameworld.SiteInfo {
	var out []gameworld.SiteInfo
	for _, b := range f.w.buildings {
		if b.owner != f.id || b.finished {
			continue
		}
		flag := f.w.Topo.Neighbor(b.pos, grid.SouthEast)
		out = append(out, gameworld.SiteInfo{
			Pos: b.pos, Building: b.bt,
			Connected: f.w.at(flag).hasRoad(),
		})
	}
	return out
}

func (f *Faction) Harbors() []gameworld.HarborInfo {
	var out []gameworld.HarborInfo
	for _, b := range f.w.buildings {
		if b.owner != f.id || !b.finished || b.bt != gameworld.HarborBuilding {
			continue
		}
		out = append(out, gameworld.HarborInfo{
			Pos: b.pos, SpotID: b.spotID, ExpeditionActive: b.expedition,
		})
	}
	return out
}

func (f *Faction) Ships() []gameworld.ShipInfo {
	var out []gameworld.ShipInfo
	for _, s := range f.w.ships {
		if s.owner != f.id {
			continue
		}
		out = append(out, gameworld.ShipInfo{
			ID: s.id, Pos: s.pos, SeaID: s.seaID,
			WaitingOrders: s.waiting, CanFoundColony: s.canFound,
		})
	}
	return out
}

// ConnectedToRoadNet reports whether the flag reaches any warehouse
// flag over roads.
func (f *Faction) ConnectedToRoadNet(flagPos grid.Point) bool {
	w := f.w
	targets := make(map[grid.Point]bool)
	for _, b := range w.buildings {
		if b.owner == f.id && b.finished && b.bt.IsWarehouse() {
			targets[w.Topo.Neighbor(b.pos, grid.SouthEast)] = true
		}
	}
	if len(targets) == 0 {
		return false
	}
	found := false
	w.walkRoadNet(flagPos, func(pt grid.Point) bool {
		if targets[pt] {
			found = true
			return false
		}
		return true
	})
	return found
}

func (f *Faction) PathOnRoads(a, b grid.Point) bool {
	target := f.w.Topo.Wrap(b)
	found := false
	f.w.walkRoadNet(a, func(pt grid.Point) bool {
		if pt == target {
			found = true
			return false
		}
		return true
	})
	return found
}

// RoadPathToNetwork searches for a buildable route from a flag to the
// nearest other own flag, avoiding buildings and hostile ground.
func (f *Faction) RoadPathToNetwork(flagPos grid.Point, maxLen int) ([]grid.Direction, bool) {
	w := f.w
	start := w.Topo.Wrap(flagPos)
	type visit struct {
		from grid.Point
		dir  grid.Direction
	}
	prev := map[grid.Point]visit{start: {}}
	depth := map[grid.Point]int{start: 0}
	queue := []grid.Point{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if depth[cur] >= maxLen {
			continue
		}
		for d := grid.Direction(0); d < grid.NumDirections; d++ {
			nb := w.Topo.Neighbor(cur, d)
			if _, seen := prev[nb]; seen {
				continue
			}
			t := w.at(nb)
			if t.flag && t.owner == f.id {
				// Reached the network; rebuild the route.
				prev[nb] = visit{from: cur, dir: d}
				var route []grid.Direction
				for at := nb; at != start; at = prev[at].from {
					route = append([]grid.Direction{prev[at].dir}, route...)
				}
				return route, true
			}
			if !f.RoadNodeOK(nb) || t.hasRoad() {
				continue
			}
			prev[nb] = visit{from: cur, dir: d}
			depth[nb] = depth[cur] + 1
			queue = append(queue, nb)
		}
	}
	return nil, false
}

func (f *Faction) FlagsAround(pt grid.Point, radius int) []grid.Point {
	var out []grid.Point
	for _, cur := range f.w.Topo.PointsInRadius(pt, radius) {
		t := f.w.at(cur)
		if t.flag && t.owner == f.id {
			out = append(out, cur)
		}
	}
	return out
}

func (f *Faction) RoadsAtFlag(flagPos grid.Point) []grid.Direction {
	t := f.w.at(flagPos)
	var out []grid.Direction
	for d := grid.Direction(0); d < grid.NumDirections; d++ {
		if t.road[d] {
			out = append(out, d)
		}
	}
	return out
}

func (f *Faction) EnemyMilitaryInRange(pt grid.Point, radius int) []gameworld.TargetInfo {
	var out []gameworld.TargetInfo
	for _, b := range f.w.buildings {
		if b.owner == f.id || !b.finished {
			continue
		}
		if !b.bt.IsMilitary() && !b.bt.IsWarehouse() {
			continue
		}
		if f.w.Topo.Distance(pt, b.pos) > radius {
			continue
		}
		out = append(out, f.w.targetInfo(b))
	}
	return out
}

// AttackersFromBuilding leaves one soldier home and sends the rest.
func (f *Faction) AttackersFromBuilding(bldPos, target grid.Point) (int, int) {
	b, ok := f.w.buildings[f.w.Topo.Wrap(bldPos)]
	if !ok || b.owner != f.id || !b.bt.IsMilitary() || b.troops <= 1 {
		return 0, 0
	}
	n := b.troops - 1
	return n, n * 2
}

func (f *Faction) Seafaring() bool { return f.w.seafaring }

func (f *Faction) SeaAttackerCount(seaID int) int {
	n := 0
	for _, s := range f.w.ships {
		if s.owner == f.id && s.seaID == seaID && !s.waiting {
			n += 5 // soldiers per hull
		}
	}
	return n
}

func (f *Faction) SeaAttackersForTarget(target grid.Point) int {
	total := 0
	for id := range f.w.seasNear(target) {
		total += f.SeaAttackerCount(id)
	}
	return total
}

func (f *Faction) ReachableBySea(target grid.Point, seaIDs []int) bool {
	near := f.w.seasNear(target)
	for _, id := range seaIDs {
		if near[id] {
			return true
		}
	}
	return false
}

func (f *Faction) HarborSpots() []gameworld.HarborSpot { return f.w.harborSpots }

func (f *Faction) HarborBuildingAtSpot(id int) (gameworld.TargetInfo, bool) {
	for _, b := range f.w.buildings {
		if b.finished && b.bt == gameworld.HarborBuilding && b.spotID == id {
			return f.w.targetInfo(b), true
		}
	}
	return gameworld.TargetInfo{}, false
}

func (f *Faction) SeaIDsAtSpot(id int) []int {
	for _, spot := range f.w.harborSpots {
		if spot.ID != id {
			continue
		}
		var out []int
		for sid := range f.w.seasNear(spot.Pos) {
			out = append(out, sid)
		}
		return out
	}
	return nil
}

func (f *Faction) HarborSpotFree(id int) bool {
	_, taken := f.HarborBuildingAtSpot(id)
	return !taken
}

func (f *Faction) ExplorationPossible(shipID int, dir grid.Direction) bool {
	for _, s := range f.w.ships {
		if s.id != shipID || s.owner != f.id {
			continue
		}
		nb := f.w.Topo.Neighbor(s.pos, dir)
		return f.w.at(nb).seaID == s.seaID
	}
	return false
}

func (f *Faction) ResourceReachableFrom(pt grid.Point, res gameworld.Resource) bool {
	w := f.w
	switch res {
	case gameworld.ResourceStones:
		for _, cur := range w.Topo.PointsInRadius(pt, 3) {
			if w.at(cur).surface == gameworld.SurfaceStones {
				return true
			}
		}
	case gameworld.ResourceFish:
		for _, cur := range w.Topo.PointsInRadius(pt, 3) {
			t := w.at(cur)
			if t.terrain == terrainWater && t.sub == gameworld.SubsurfaceFish {
				return true
			}
		}
	}
	return false
}

// HuntablesNear treats forest density as game density.
func (f *Faction) HuntablesNear(pt grid.Point, min int) bool {
	forest := 0
	for _, cur := range f.w.Topo.PointsInRadius(pt, 4) {
		if f.w.at(cur).terrain == terrainForest {
			forest++
		}
	}
	return forest/4 >= min
}

func (f *Faction) MaxRank() gameworld.Rank { return gameworld.NumRanks - 1 }

func (f *Faction) InexhaustibleMines() bool { return f.w.inexhaustible }

// walkRoadNet visits every flag reachable over roads from start. The
// visit callback returns false to stop early.
func (w *World) walkRoadNet(start grid.Point, visit func(grid.Point) bool) {
	start = w.Topo.Wrap(start)
	if !w.at(start).flag {
		return
	}
	seen := map[grid.Point]bool{start: true}
	queue := []grid.Point{start}
	if !visit(start) {
		return
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for d := grid.Direction(0); d < grid.NumDirections; d++ {
			if !w.at(cur).road[d] {
				continue
			}
			end, ok := w.followRoad(cur, d)
			if !ok || seen[end] {
				continue
			}
			seen[end] = true
			if !visit(end) {
				return
			}
			queue = append(queue, end)
		}
	}
}

// followRoad walks road tiles from a flag until the next flag.
func (w *World) followRoad(from grid.Point, d grid.Direction) (grid.Point, bool) {
	cur := w.Topo.Neighbor(from, d)
	in := d.Opposite()
	for steps := 0; steps < w.Topo.NumPoints(); steps++ {
		if w.at(cur).flag {
			return cur, true
		}
		moved := false
		for nd := grid.Direction(0); nd < grid.NumDirections; nd++ {
			if nd == in || !w.at(cur).road[nd] {
				continue
			}
			cur = w.Topo.Neighbor(cur, nd)
			in = nd.Opposite()
			moved = true
			break
		}
		if !moved {
			return grid.InvalidPoint, false
		}
	}
	return grid.InvalidPoint, false
}

func (w *World) seasNear(pt grid.Point) map[int]bool {
	out := make(map[int]bool)
	for _, cur := range w.Topo.PointsInRadius(pt, 3) {
		if id := w.at(cur).seaID; id != 0 {
			out[id] = true
		}
	}
	return out
}

func (w *World) frontierOf(b *building) gameworld.FrontierDistance {
	if b.bt == gameworld.HarborBuilding {
		return gameworld.FrontierHarbor
	}
	nearest := -1
	for _, pt := range w.Topo.PointsInRadius(b.pos, 7) {
		if w.at(pt).owner != b.owner {
			d := w.Topo.Distance(b.pos, pt)
			if nearest < 0 || d < nearest {
				nearest = d
			}
		}
	}
	switch {
	case nearest < 0:
		return gameworld.FrontierFar
	case nearest <= 3:
		return gameworld.FrontierNear
	default:
		return gameworld.FrontierMid
	}
}

// uselessMilitary reports a garrison fully enclosed by friendly land.
func (w *World) uselessMilitary(b *building) bool {
	for _, pt := range w.Topo.PointsInRadius(b.pos, claimRadius(b.bt)+2) {
		if w.at(pt).owner != b.owner {
			return false
		}
	}
	return true
}

func (w *World) targetInfo(b *building) gameworld.TargetInfo {
	strength := 2
	return gameworld.TargetInfo{
		Pos: b.pos, Owner: b.owner, Building: b.bt,
		IsMilitary: b.bt.IsMilitary(),
		NewBuilt:   b.bt.IsMilitary() && b.troops == 0,
		Troops:     b.troops,
		Strength:   strength,
		Defenders:  b.troops > 0,
		Attackable: true,
		Visible:    true,
	}
}

// productivityOf is a coarse stand-in: producers near their input run
// hot, stranded ones idle.
func (w *World) productivityOf(b *building) int {
	switch b.bt {
	case gameworld.Woodcutter:
		return w.surfaceDensity(b.pos, gameworld.SurfaceWood)
	case gameworld.Quarry:
		return w.surfaceDensity(b.pos, gameworld.SurfaceStones)
	case gameworld.Sawmill:
		if w.surfaceDensity(b.pos, gameworld.SurfaceWood) > 0 {
			return 70
		}
		return 0
	default:
		return 50
	}
}

func (w *World) surfaceDensity(pt grid.Point, s gameworld.SurfaceResource) int {
	region := w.Topo.PointsInRadius(pt, 8)
	hits := 0
	for _, cur := range region {
		if w.at(cur).surface == s {
			hits++
		}
	}
	return hits * 100 / len(region)
}
