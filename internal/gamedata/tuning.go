package gamedata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Difficulty selects a cadence/heuristic tier for one controller.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Cadence holds the per-tier tick intervals. Values are empirically
// tuned; keep them named, do not derive.
type Cadence struct {
	AttackInterval int `yaml:"attack_interval"`
	BuildInterval  int `yaml:"build_interval"`
}

// Tuning bundles every tunable constant with a sensible default, all
// overridable from a YAML file.
type Tuning struct {
	Easy   Cadence `yaml:"easy"`
	Medium Cadence `yaml:"medium"`
	Hard   Cadence `yaml:"hard"`

	EventQuota      int `yaml:"event_quota"`       // events drained per tick
	JobQuotaCap     int `yaml:"job_quota_cap"`     // hard ceiling on jobs per tick
	SearchRadius    int `yaml:"search_radius"`     // site search radius around an anchor
	FarmMinScore    int `yaml:"farm_min_score"`    // plantspace threshold for farms
	WoodMinScore    int `yaml:"wood_min_score"`    // wood threshold for woodcutters
	ConnectRetries  int `yaml:"connect_retries"`   // road connection attempts per job
	MaxRoadLength   int `yaml:"max_road_length"`   // longest road a connect job will lay
	BoardReserve    int `yaml:"board_reserve"`     // boards kept per warehouse before blocking
	StoneReserve    int `yaml:"stone_reserve"`     // stones kept per warehouse before blocking
	MaxRankReserve  int `yaml:"max_rank_reserve"`  // top-rank soldiers gathered per frontier warehouse
	AttackDistance  int `yaml:"attack_distance"`   // max distance to consider a land target
	AttackSampling  int `yaml:"attack_sampling"`   // own military buildings sampled per evaluation
	WarehouseSpread int `yaml:"warehouse_spread"`  // min distance between storehouses
	MinSawmills     int `yaml:"min_sawmills"`      // never prune below this many sawmills
}

// DefaultTuning returns the built-in constants.
func DefaultTuning() Tuning {
	return Tuning{
		Easy:            Cadence{AttackInterval: 2500, BuildInterval: 1000},
		Medium:          Cadence{AttackInterval: 750, BuildInterval: 400},
		Hard:            Cadence{AttackInterval: 100, BuildInterval: 200},
		EventQuota:      10,
		JobQuotaCap:     40,
		SearchRadius:    11,
		FarmMinScore:    85,
		WoodMinScore:    20,
		ConnectRetries:  3,
		MaxRoadLength:   30,
		BoardReserve:    30,
		StoneReserve:    50,
		MaxRankReserve:  5,
		AttackDistance:  20,
		AttackSampling:  40,
		WarehouseSpread: 15,
		MinSawmills:     3,
	}
}

// LoadTuning reads overrides from a YAML file on top of the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// CadenceFor returns the cadence pair for a difficulty tier. An unknown
// tier is a configuration error: the cadences cannot be derived.
func (t Tuning) CadenceFor(d Difficulty) (Cadence, error) {
	switch d {
	case Easy:
		return t.Easy, nil
	case Medium:
		return t.Medium, nil
	case Hard:
		return t.Hard, nil
	default:
		return Cadence{}, fmt.Errorf("unknown difficulty %q", d)
	}
}
