package simworld

import (
	"sort"

	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
)

const (
	buildTicks      = 30 // ticks from connected site to finished building
	productionEvery = 10
	shipEvery       = 200
)

// Step advances the world one tick: construction progresses, producers
// run, expeditions surface ships. Buildings are walked in position
// order so replays are deterministic regardless of map iteration.
func (w *World) Step(tick uint64) {
	w.tick = tick
	for _, b := range w.sortedBuildings() {
		b.raided = false
		if !b.finished {
			w.progressSite(b)
			continue
		}
		if tick%productionEvery == 0 && !b.disabled {
			w.produce(b)
		}
	}
	if tick%shipEvery == 0 {
		w.runShipyards()
	}
	w.advanceExpeditions()
}

func (w *World) sortedBuildings() []*building {
	out := make([]*building, 0, len(w.buildings))
	for _, b := range w.buildings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return w.Topo.Index(out[i].pos) < w.Topo.Index(out[j].pos)
	})
	return out
}

// progressSite advances construction once the site flag has a road.
func (w *World) progressSite(b *building) {
	flag := w.Topo.Neighbor(b.pos, grid.SouthEast)
	if !w.at(flag).hasRoad() && b.bt != gameworld.Headquarters {
		return
	}
	b.progress++
	if b.progress < buildTicks {
		return
	}
	b.finished = true
	if b.bt.IsWarehouse() {
		initWarehouse(b)
	}
	if b.bt.IsMilitary() {
		w.garrison(b)
		if r := claimRadius(b.bt); r > 0 {
			w.claimTerritory(b.pos, r, b.owner)
		}
	}
	w.notify(b.owner, gameworld.Note{
		Kind: gameworld.NoteBuildingFinished, Pos: b.pos, Building: b.bt,
	})
	w.notifyAll(gameworld.Note{Kind: gameworld.NoteNodeBQ, Pos: b.pos})
}

// garrison moves soldiers from the nearest warehouse into a freshly
// finished military building.
func (w *World) garrison(b *building) {
	wh := w.nearestWarehouse(b.owner, b.pos)
	if wh == nil {
		return
	}
	want := b.maxTroops
	for r := gameworld.Rank(0); r < gameworld.NumRanks && want > 0; r++ {
		for wh.ranks[r] > 0 && want > 0 {
			wh.ranks[r]--
			b.troops++
			want--
		}
	}
}

func (w *World) nearestWarehouse(owner int, pt grid.Point) *building {
	var best *building
	bestDist := 0
	for _, b := range w.buildings {
		if b.owner != owner || !b.finished || !b.bt.IsWarehouse() {
			continue
		}
		d := w.Topo.Distance(pt, b.pos)
		if best == nil || d < bestDist {
			best = b
			bestDist = d
		}
	}
	return best
}

// produce runs one production step for a finished building. The economy
// is deliberately coarse: inputs are drawn from and outputs delivered
// to the nearest warehouse, and extraction depletes the map, firing
// exhaustion notes the controller must react to.
func (w *World) produce(b *building) {
	wh := w.nearestWarehouse(b.owner, b.pos)
	if wh == nil {
		return
	}
	switch b.bt {
	case gameworld.Woodcutter:
		if w.depleteSurface(b, gameworld.SurfaceWood, 8) {
			wh.stock[gameworld.GoodWood]++
		}
	case gameworld.Quarry:
		if w.depleteSurface(b, gameworld.SurfaceStones, 8) {
			wh.stock[gameworld.GoodStones]++
		}
	case gameworld.Sawmill:
		if wh.stock[gameworld.GoodWood] > 0 {
			wh.stock[gameworld.GoodWood]--
			wh.stock[gameworld.GoodBoards]++
		}
	case gameworld.Fishery:
		if w.depleteSub(b, gameworld.SubsurfaceFish, 5) {
			wh.stock[gameworld.GoodFish]++
		}
	case gameworld.GoldMine:
		if w.depleteSub(b, gameworld.SubsurfaceGold, 2) {
			wh.stock[gameworld.GoodGold]++
		}
	case gameworld.CoalMine:
		if w.depleteSub(b, gameworld.SubsurfaceCoal, 2) {
			wh.stock[gameworld.GoodCoal]++
		}
	case gameworld.IronMine:
		if w.depleteSub(b, gameworld.SubsurfaceIronOre, 2) {
			wh.stock[gameworld.GoodIronOre]++
		}
	case gameworld.GraniteMine:
		if w.depleteSub(b, gameworld.SubsurfaceGranite, 2) {
			wh.stock[gameworld.GoodStones]++
		}
	case gameworld.Farm:
		wh.stock[gameworld.GoodGrain]++
	case gameworld.Mill:
		if wh.stock[gameworld.GoodGrain] > 0 {
			wh.stock[gameworld.GoodGrain]--
			wh.stock[gameworld.GoodFlour]++
		}
	case gameworld.Bakery:
		if wh.stock[gameworld.GoodFlour] > 0 {
			wh.stock[gameworld.GoodFlour]--
			wh.stock[gameworld.GoodBread]++
		}
	case gameworld.Ironsmelter:
		if wh.stock[gameworld.GoodIronOre] > 0 && wh.stock[gameworld.GoodCoal] > 0 {
			wh.stock[gameworld.GoodIronOre]--
			wh.stock[gameworld.GoodCoal]--
			wh.stock[gameworld.GoodIron]++
		}
	case gameworld.Armory:
		if wh.stock[gameworld.GoodIron] > 0 && wh.stock[gameworld.GoodCoal] > 0 {
			wh.stock[gameworld.GoodIron]--
			wh.stock[gameworld.GoodCoal]--
			wh.stock[gameworld.GoodSword]++
			wh.stock[gameworld.GoodShield]++
		}
	case gameworld.Mint:
		if wh.stock[gameworld.GoodGold] > 0 && wh.stock[gameworld.GoodCoal] > 0 {
			wh.stock[gameworld.GoodGold]--
			wh.stock[gameworld.GoodCoal]--
			wh.stock[gameworld.GoodCoins]++
		}
	}
}

// depleteSurface consumes one unit of a surface resource in range.
// Returns false and fires ResourcesExhausted when nothing is left.
func (w *World) depleteSurface(b *building, s gameworld.SurfaceResource, radius int) bool {
	for _, pt := range w.Topo.PointsInRadius(b.pos, radius) {
		t := w.at(pt)
		if t.surface != s || t.surfaceAmount <= 0 {
			continue
		}
		if !w.inexhaustible {
			t.surfaceAmount--
			if t.surfaceAmount == 0 {
				t.surface = gameworld.SurfaceNothing
				w.notifyAll(gameworld.Note{Kind: gameworld.NoteNodeBQ, Pos: pt})
			}
		}
		return true
	}
	w.notify(b.owner, gameworld.Note{
		Kind: gameworld.NoteResourcesExhausted, Pos: b.pos, Building: b.bt,
	})
	return false
}

func (w *World) depleteSub(b *building, s gameworld.SubsurfaceResource, radius int) bool {
	for _, pt := range w.Topo.PointsInRadius(b.pos, radius) {
		t := w.at(pt)
		if t.sub != s || t.subAmount <= 0 {
			continue
		}
		if !w.inexhaustible {
			t.subAmount--
			if t.subAmount == 0 {
				t.sub = gameworld.SubsurfaceNothing
			}
		}
		return true
	}
	w.notify(b.owner, gameworld.Note{
		Kind: gameworld.NoteResourcesExhausted, Pos: b.pos, Building: b.bt,
	})
	return false
}

// runShipyards launches one hull per enabled shipyard with sea access.
func (w *World) runShipyards() {
	for _, b := range w.sortedBuildings() {
		if !b.finished || b.bt != gameworld.Shipyard || b.disabled {
			continue
		}
		seaID := 0
		var launch grid.Point
		for _, pt := range w.Topo.PointsInRadius(b.pos, 3) {
			if id := w.at(pt).seaID; id != 0 {
				seaID = id
				launch = pt
				break
			}
		}
		if seaID == 0 {
			continue
		}
		w.nextShip++
		w.ships = append(w.ships, &ship{
			id: w.nextShip, owner: b.owner, pos: launch, seaID: seaID,
		})
		w.notify(b.owner, gameworld.Note{Kind: gameworld.NoteShipBuilt, Pos: launch})
	}
}

// advanceExpeditions counts down pending expeditions and surfaces a
// waiting ship at the launching harbor.
func (w *World) advanceExpeditions() {
	for id := range w.players {
		p := &w.players[id]
		if p.expPending == 0 {
			continue
		}
		p.expPending--
		if p.expPending > 0 {
			continue
		}
		seaID := 0
		var at grid.Point
		for _, pt := range w.Topo.PointsInRadius(p.expHarbor, 3) {
			if sid := w.at(pt).seaID; sid != 0 {
				seaID = sid
				at = pt
				break
			}
		}
		if seaID == 0 {
			continue
		}
		w.nextShip++
		s := &ship{id: w.nextShip, owner: id, pos: at, seaID: seaID, waiting: true}
		// A free spot on the same sea makes the ship colony-capable.
		for _, spot := range w.harborSpots {
			taken := false
			for _, b := range w.buildings {
				if b.bt == gameworld.HarborBuilding && b.spotID == spot.ID {
					taken = true
					break
				}
			}
			if taken {
				continue
			}
			for sid := range w.seasNear(spot.Pos) {
				if sid == seaID {
					s.canFound = true
					s.spotID = spot.ID
					break
				}
			}
			if s.canFound {
				break
			}
		}
		w.ships = append(w.ships, s)
		w.notify(id, gameworld.Note{Kind: gameworld.NoteExpeditionWaiting, Pos: at})
	}
}
