package gamedata

import (
	"testing"

	"github.com/torvund/settlemind/internal/gameworld"
)

func TestMapResourceForSitedTypes(t *testing.T) {
	cases := map[gameworld.BuildingType]gameworld.Resource{
		gameworld.Woodcutter:  gameworld.ResourceWood,
		gameworld.Forester:    gameworld.ResourceWood,
		gameworld.Quarry:      gameworld.ResourceStones,
		gameworld.GoldMine:    gameworld.ResourceGold,
		gameworld.IronMine:    gameworld.ResourceIronOre,
		gameworld.CoalMine:    gameworld.ResourceCoal,
		gameworld.GraniteMine: gameworld.ResourceGranite,
		gameworld.Fishery:     gameworld.ResourceFish,
		gameworld.Farm:        gameworld.ResourcePlantspace,
		gameworld.Barracks:    gameworld.ResourceBorderland,
		gameworld.Guardhouse:  gameworld.ResourceBorderland,
		gameworld.Watchtower:  gameworld.ResourceBorderland,
		gameworld.Fortress:    gameworld.ResourceBorderland,
	}
	for bt, want := range cases {
		got, ok := MapResourceFor(bt)
		if !ok || got != want {
			t.Errorf("MapResourceFor(%s) = %v, %v; want %v", bt, got, ok, want)
		}
	}
	// Plain position-search types carry no map.
	for _, bt := range [...]gameworld.BuildingType{gameworld.Sawmill, gameworld.Storehouse, gameworld.HarborBuilding} {
		if _, ok := MapResourceFor(bt); ok {
			t.Errorf("MapResourceFor(%s) unexpectedly set", bt)
		}
	}
}

func TestGarrisonFor(t *testing.T) {
	if got := GarrisonFor(9, 0); got != 0 {
		t.Errorf("setting 0 = %d, want 0", got)
	}
	if got := GarrisonFor(9, 8); got != 9 {
		t.Errorf("full setting = %d, want 9", got)
	}
	if got := GarrisonFor(9, 1); got != 2 {
		t.Errorf("setting 1 = %d, want 2", got)
	}
}
