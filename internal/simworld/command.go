package simworld

import (
	"github.com/torvund/settlemind/internal/gamedata"
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

// claimRadius is how far a finished military building pushes the border.
func claimRadius(bt gameworld.BuildingType) int {
	switch bt {
	case gameworld.Barracks:
		return 4
	case gameworld.Guardhouse:
		return 5
	case gameworld.Watchtower:
		return 7
	case gameworld.Fortress:
		return 9
	case gameworld.Headquarters:
		return 9
	case gameworld.HarborBuilding:
		return 5
	default:
		return 0
	}
}

func garrisonSize(bt gameworld.BuildingType) int {
	switch bt {
	case gameworld.Barracks:
		return 2
	case gameworld.Guardhouse:
		return 3
	case gameworld.Watchtower:
		return 6
	case gameworld.Fortress:
		return 9
	default:
		return 0
	}
}

// PlaceBuildingSite starts construction. The flag southeast of the
// building is created with it.
func (f *Faction) PlaceBuildingSite(pt grid.Point, bt gameworld.BuildingType) bool {
	w := f.w
	pt = w.Topo.Wrap(pt)
	if w.at(pt).owner != f.id {
		return false
	}
	if !f.BuildQuality(pt).Fits(gamedata.BuildingSize[bt]) {
		return false
	}
	flag := w.Topo.Neighbor(pt, grid.SouthEast)
	ft := w.at(flag)
	if _, occupied := w.buildings[flag]; occupied {
		return false
	}
	if !ft.flag {
		if ft.owner != f.id || ft.terrain == terrainWater || ft.terrain == terrainSwamp {
			return false
		}
		ft.flag = true
		w.notifyAll(gameworld.Note{Kind: gameworld.NoteNodeBQ, Pos: flag})
	}
	b := &building{pos: pt, bt: bt, owner: f.id, maxTroops: garrisonSize(bt)}
	if bt == gameworld.HarborBuilding {
		b.spotID = w.at(pt).harborSpot
	}
	w.buildings[pt] = b
	w.notifyAll(gameworld.Note{Kind: gameworld.NoteNodeBQ, Pos: pt})
	return true
}

// DestroyBuilding removes a building or site and notifies the owner.
func (f *Faction) DestroyBuilding(pt grid.Point) {
	w := f.w
	pt = w.Topo.Wrap(pt)
	b, ok := w.buildings[pt]
	if !ok || b.owner != f.id {
		return
	}
	delete(w.buildings, pt)
	w.notify(f.id, gameworld.Note{
		Kind: gameworld.NoteBuildingDestroyed, Pos: pt, Building: b.bt,
	})
	w.notifyAll(gameworld.Note{Kind: gameworld.NoteNodeBQ, Pos: pt})
}

// DestroyFlag removes a flag plus every road ending at it. A flag
// fronting a building takes the building with it.
func (f *Faction) DestroyFlag(pt grid.Point) {
	w := f.w
	pt = w.Topo.Wrap(pt)
	t := w.at(pt)
	if !t.flag || t.owner != f.id {
		return
	}
	for d := grid.Direction(0); d < grid.NumDirections; d++ {
		if t.road[d] {
			f.DestroyRoad(pt, d)
		}
	}
	t.flag = false
	bpos := w.Topo.Neighbor(pt, grid.NorthWest)
	if b, ok := w.buildings[bpos]; ok && b.owner == f.id {
		f.DestroyBuilding(bpos)
	}
	w.notifyAll(gameworld.Note{Kind: gameworld.NoteNodeBQ, Pos: pt})
}

// DestroyRoad tears down the road leaving a flag in one direction, tile
// by tile up to the far flag.
func (f *Faction) DestroyRoad(flagPos grid.Point, dir grid.Direction) {
	w := f.w
	cur := w.Topo.Wrap(flagPos)
	t := w.at(cur)
	if !t.flag || t.owner != f.id || !t.road[dir] {
		return
	}
	in := dir
	for {
		t.road[in] = false
		next := w.Topo.Neighbor(cur, in)
		nt := w.at(next)
		nt.road[in.Opposite()] = false
		w.notifyAll(gameworld.Note{Kind: gameworld.NoteNodeBQ, Pos: cur})
		if nt.flag {
			return
		}
		cur, t = next, nt
		found := false
		for d := grid.Direction(0); d < grid.NumDirections; d++ {
			if t.road[d] {
				in = d
				found = true
				break
			}
		}
		if !found {
			return
		}
	}
}

func (f *Faction) PlaceFlag(pt grid.Point) bool {
	w := f.w
	pt = w.Topo.Wrap(pt)
	t := w.at(pt)
	if t.flag || t.owner != f.id {
		return false
	}
	if t.terrain == terrainWater || t.terrain == terrainSwamp {
		return false
	}
	if _, occupied := w.buildings[pt]; occupied {
		return false
	}
	t.flag = true
	w.notifyAll(gameworld.Note{Kind: gameworld.NoteNodeBQ, Pos: pt})
	return true
}

// BuildRoad lays a road from a flag along a route of directions. The
// route must end at (or create) another flag. Completion and failure
// surface as notes, matching the asynchronous contract.
func (f *Faction) BuildRoad(flagPos grid.Point, route []grid.Direction) bool {
	w := f.w
	start := w.Topo.Wrap(flagPos)
	if !w.at(start).flag || w.at(start).owner != f.id || len(route) == 0 {
		return false
	}
	// Validate the whole route before mutating.
	cur := start
	for i, d := range route {
		cur = w.Topo.Neighbor(cur, d)
		t := w.at(cur)
		last := i == len(route)-1
		if last && t.flag && t.owner == f.id {
			break
		}
		if !f.RoadNodeOK(cur) || t.hasRoad() || t.flag {
			w.notify(f.id, gameworld.Note{
				Kind: gameworld.NoteRoadFailed, Pos: start, Dir: route[0],
			})
			return false
		}
	}
	end := cur
	et := w.at(end)
	if !et.flag {
		if _, occupied := w.buildings[end]; occupied || et.owner != f.id {
			w.notify(f.id, gameworld.Note{
				Kind: gameworld.NoteRoadFailed, Pos: start, Dir: route[0],
			})
			return false
		}
		et.flag = true
	}
	cur = start
	for _, d := range route {
		w.at(cur).road[d] = true
		cur = w.Topo.Neighbor(cur, d)
		w.at(cur).road[d.Opposite()] = true
	}
	w.notify(f.id, gameworld.Note{
		Kind: gameworld.NoteRoadComplete, Pos: start, Dir: route[0],
	})
	w.notifyAll(gameworld.Note{Kind: gameworld.NoteNodeBQ, Pos: end})
	return true
}

func (f *Faction) warehouseAt(pt grid.Point) *building {
	b, ok := f.w.buildings[f.w.Topo.Wrap(pt)]
	if !ok || b.owner != f.id || !b.finished || !b.bt.IsWarehouse() {
		return nil
	}
	return b
}

func (f *Faction) SetGoodBlocked(whPos grid.Point, good gameworld.Good, blocked bool) {
	if b := f.warehouseAt(whPos); b != nil {
		b.blocked[good] = blocked
	}
}

func (f *Faction) SetRankBlocked(whPos grid.Point, rank gameworld.Rank, blocked bool) {
	if b := f.warehouseAt(whPos); b != nil {
		b.blockedRank[rank] = blocked
	}
}

func (f *Faction) SetGoodCollect(whPos grid.Point, good gameworld.Good, collect bool) {
	if b := f.warehouseAt(whPos); b != nil {
		b.collect[good] = collect
	}
}

func (f *Faction) SetProfessionCollect(whPos grid.Point, p gameworld.Profession, collect bool) {
	if b := f.warehouseAt(whPos); b != nil {
		b.collectProf[p] = collect
	}
}

func (f *Faction) SetRankCollect(whPos grid.Point, rank gameworld.Rank, collect bool) {
	if b := f.warehouseAt(whPos); b != nil {
		b.collectRank[rank] = collect
	}
}

func (f *Faction) ownBuilding(pt grid.Point) *building {
	b, ok := f.w.buildings[f.w.Topo.Wrap(pt)]
	if !ok || b.owner != f.id {
		return nil
	}
	return b
}

func (f *Faction) SetCoinsAllowed(bldPos grid.Point, allowed bool) {
	if b := f.ownBuilding(bldPos); b != nil && b.bt.IsMilitary() {
		b.coins = allowed
	}
}

func (f *Faction) SetTroopLimit(bldPos grid.Point, rank gameworld.Rank, limit int) {
	if b := f.ownBuilding(bldPos); b != nil && b.bt.IsMilitary() {
		if b.troops > limit && limit > 0 {
			b.troops = limit
		}
	}
}

func (f *Faction) SetProductionEnabled(bldPos grid.Point, enabled bool) {
	if b := f.ownBuilding(bldPos); b != nil {
		b.disabled = !enabled
	}
}

func (f *Faction) ChangeDistribution(d gameworld.DistributionSettings) {
	f.w.players[f.id].distrib = d
}

func (f *Faction) ChangeMilitarySettings(s gameworld.MilitarySettings) {
	f.w.players[f.id].military = s
}

func (f *Faction) ChangeToolPriorities(p gameworld.ToolPriorities) {
	f.w.players[f.id].toolPrio = p
}

// Attack resolves immediately: enough attackers take the building, the
// rest bleed the garrison. Ownership changes ripple out as notes and
// territory claims.
func (f *Faction) Attack(target grid.Point, attackers int, strongSoldiers bool) {
	w := f.w
	target = w.Topo.Wrap(target)
	b, ok := w.buildings[target]
	if !ok || b.owner == f.id || attackers <= 0 {
		return
	}
	if attackers > b.troops {
		old := b.owner
		b.owner = f.id
		b.troops = attackers - b.troops
		if b.troops > b.maxTroops && b.maxTroops > 0 {
			b.troops = b.maxTroops
		}
		w.notify(old, gameworld.Note{Kind: gameworld.NoteBuildingLost, Pos: target, Building: b.bt})
		w.notify(f.id, gameworld.Note{Kind: gameworld.NoteBuildingConquered, Pos: target, Building: b.bt})
		if r := claimRadius(b.bt); r > 0 {
			w.claimTerritory(target, r, f.id)
		}
		return
	}
	b.troops -= attackers / 2
	if b.troops < 1 {
		b.troops = 1
	}
	b.raided = true
}

func (f *Faction) SeaAttack(target grid.Point, attackers int) {
	f.Attack(target, attackers, true)
}

// StartExpedition toggles expedition mode on a harbor. An active
// expedition surfaces a waiting ship after a fixed delay.
func (f *Faction) StartExpedition(harborPos grid.Point, start bool) {
	b := f.ownBuilding(harborPos)
	if b == nil || b.bt != gameworld.HarborBuilding {
		return
	}
	b.expedition = start
	p := &f.w.players[f.id]
	if start && p.expPending == 0 {
		p.expPending = 40
		p.expHarbor = b.pos
	}
	if !start {
		p.expPending = 0
	}
}

func (f *Faction) shipByID(id int) *ship {
	for _, s := range f.w.ships {
		if s.id == id && s.owner == f.id {
			return s
		}
	}
	return nil
}

// FoundColony turns a waiting ship into a harbor site at its target
// spot.
func (f *Faction) FoundColony(shipID int) {
	w := f.w
	s := f.shipByID(shipID)
	if s == nil || !s.waiting || !s.canFound {
		return
	}
	for _, spot := range w.harborSpots {
		if spot.ID != s.spotID {
			continue
		}
		if !f.HarborSpotFree(spot.ID) {
			break
		}
		b := &building{
			pos: spot.Pos, bt: gameworld.HarborBuilding, owner: f.id,
			finished: true, spotID: spot.ID,
		}
		initWarehouse(b)
		w.buildings[spot.Pos] = b
		w.at(w.Topo.Neighbor(spot.Pos, grid.SouthEast)).flag = true
		w.claimTerritory(spot.Pos, claimRadius(gameworld.HarborBuilding), f.id)
		s.waiting = false
		s.canFound = false
		w.notify(f.id, gameworld.Note{Kind: gameworld.NoteColonyFounded, Pos: spot.Pos})
		return
	}
	s.waiting = false
}

func (f *Faction) TravelToNextSpot(shipID int, dir grid.Direction) {
	s := f.shipByID(shipID)
	if s == nil {
		return
	}
	nb := f.w.Topo.Neighbor(s.pos, dir)
	if f.w.at(nb).seaID == s.seaID {
		s.pos = nb
	}
	// Probe for a free spot from the new position.
	for _, spot := range f.w.harborSpots {
		if f.w.Topo.Distance(s.pos, spot.Pos) <= 3 && f.HarborSpotFree(spot.ID) {
			s.spotID = spot.ID
			s.canFound = true
			f.w.notify(f.id, gameworld.Note{Kind: gameworld.NoteExpeditionWaiting, Pos: s.pos})
			return
		}
	}
}

func (f *Faction) CancelExpedition(shipID int) {
	if s := f.shipByID(shipID); s != nil {
		s.waiting = false
		s.canFound = false
	}
}

func (f *Faction) Chat(msg string) {}

// Surrender razes the faction: buildings vanish, territory reverts.
func (f *Faction) Surrender() {
	w := f.w
	w.players[f.id].defeated = true
	for pt, b := range w.buildings {
		if b.owner == f.id {
			delete(w.buildings, pt)
		}
	}
	for i := range w.tiles {
		if w.tiles[i].owner == f.id {
			w.tiles[i].owner = -1
		}
	}
}
