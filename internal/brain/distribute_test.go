package brain

import (
	"testing"

	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
	"github.com/torvund/settlemind/internal/simworld"
)

// twoConnectedWarehouses builds a flat world with two headquarters for
// one player, joined by a road between their flags.
func twoConnectedWarehouses(t *testing.T) (*simworld.World, *Controller) {
	t.Helper()
	world := simworld.NewFlat(32, 32, 1)
	a := grid.Point{X: 10, Y: 10}
	b := grid.Point{X: 10, Y: 15}
	world.SpawnAt(0, a)
	world.SpawnAt(0, b)

	view := world.Player(0)
	c := newTestController(t, world, 0, nil)
	flagA := c.flagOf(a)
	route, ok := view.RoadPathToNetwork(flagA, 30)
	if !ok {
		t.Fatal("no road route between warehouses")
	}
	if !view.BuildRoad(flagA, route) {
		t.Fatal("road construction refused")
	}
	if !view.PathOnRoads(flagA, c.flagOf(b)) {
		t.Fatal("warehouses not connected after road build")
	}
	return world, c
}

func stockOf(view gameworld.View, pos grid.Point) map[gameworld.Good]int {
	for _, wh := range view.Storehouses() {
		if wh.Pos == pos {
			return wh.Stock
		}
	}
	return nil
}

func blockedAt(view gameworld.View, pos grid.Point, good gameworld.Good) bool {
	for _, wh := range view.Storehouses() {
		if wh.Pos == pos {
			return wh.Blocked[good]
		}
	}
	return false
}

func TestDistributionUnblocksWhenAllFull(t *testing.T) {
	world, c := twoConnectedWarehouses(t)
	view := world.Player(0)
	a := grid.Point{X: 10, Y: 10}
	b := grid.Point{X: 10, Y: 15}

	// Both warehouses start above the board reserve.
	c.distributeGoodsByBlocking(gameworld.GoodBoards, c.tun.BoardReserve)
	if blockedAt(view, a, gameworld.GoodBoards) || blockedAt(view, b, gameworld.GoodBoards) {
		t.Error("boards blocked although every warehouse is above the limit")
	}
}

func TestDistributionBlocksFullWarehouses(t *testing.T) {
	world, c := twoConnectedWarehouses(t)
	view := world.Player(0)
	a := grid.Point{X: 10, Y: 10}
	b := grid.Point{X: 10, Y: 15}

	stockOf(view, b)[gameworld.GoodBoards] = 0
	c.distributeGoodsByBlocking(gameworld.GoodBoards, c.tun.BoardReserve)
	if !blockedAt(view, a, gameworld.GoodBoards) {
		t.Error("full warehouse not blocked")
	}
	if blockedAt(view, b, gameworld.GoodBoards) {
		t.Error("empty warehouse blocked")
	}

	// Once the empty one catches up, the group unblocks again.
	stockOf(view, b)[gameworld.GoodBoards] = c.tun.BoardReserve + 1
	c.distributeGoodsByBlocking(gameworld.GoodBoards, c.tun.BoardReserve)
	if blockedAt(view, a, gameworld.GoodBoards) || blockedAt(view, b, gameworld.GoodBoards) {
		t.Error("group did not unblock after recovery")
	}
}

// frontierWorld overrides the military listing so frontier scenarios
// can be set up without growing a border in the test world.
type frontierWorld struct {
	gameworld.World
	mil []gameworld.MilitaryInfo
}

func (w *frontierWorld) MilitaryBuildings() []gameworld.MilitaryInfo { return w.mil }

func ranksOf(view gameworld.View, pos grid.Point) map[gameworld.Rank]int {
	for _, wh := range view.Storehouses() {
		if wh.Pos == pos {
			return wh.Ranks
		}
	}
	return nil
}

func rankBlockedAt(view gameworld.View, pos grid.Point, rank gameworld.Rank) bool {
	for _, wh := range view.Storehouses() {
		if wh.Pos == pos {
			return wh.BlockedRank[rank]
		}
	}
	return false
}

func TestMaxRankReserveRedirectsSurplus(t *testing.T) {
	world, c := twoConnectedWarehouses(t)
	view := world.Player(0)
	a := grid.Point{X: 10, Y: 10}
	b := grid.Point{X: 10, Y: 15}
	rank := view.MaxRank()

	c.world = &frontierWorld{World: c.world, mil: []gameworld.MilitaryInfo{
		{Pos: grid.Point{X: 9, Y: 9}, Building: gameworld.Barracks, Frontier: gameworld.FrontierNear},
		{Pos: grid.Point{X: 9, Y: 16}, Building: gameworld.Barracks, Frontier: gameworld.FrontierNear},
	}}
	// Warehouse a already holds its full top-rank reserve.
	ranksOf(view, a)[rank] = c.tun.MaxRankReserve

	c.distributeMaxRankSoldiers()
	if !rankBlockedAt(view, a, rank) {
		t.Error("warehouse at its top-rank reserve still gathering")
	}
	if rankBlockedAt(view, b, rank) {
		t.Error("frontier warehouse below the reserve blocked")
	}
}

func TestDistributionSingleWarehouseNeverBlocks(t *testing.T) {
	world := simworld.NewFlat(32, 32, 1)
	a := grid.Point{X: 10, Y: 10}
	world.SpawnAt(0, a)
	c := newTestController(t, world, 0, nil)
	view := world.Player(0)

	c.distributeGoodsByBlocking(gameworld.GoodStones, 0)
	if blockedAt(view, a, gameworld.GoodStones) {
		t.Error("lone warehouse blocked")
	}
}
