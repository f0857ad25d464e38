package gamedata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCadenceForTiers(t *testing.T) {
	tun := DefaultTuning()
	cases := []struct {
		level  Difficulty
		attack int
		build  int
	}{
		{Easy, 2500, 1000},
		{Medium, 750, 400},
		{Hard, 100, 200},
	}
	for _, c := range cases {
		cad, err := tun.CadenceFor(c.level)
		if err != nil {
			t.Fatalf("%s: %v", c.level, err)
		}
		if cad.AttackInterval != c.attack || cad.BuildInterval != c.build {
			t.Errorf("%s: got %+v", c.level, cad)
		}
	}
}

func TestCadenceForUnknownTier(t *testing.T) {
	if _, err := DefaultTuning().CadenceFor("brutal"); err == nil {
		t.Fatal("unknown tier accepted")
	}
}

func TestLoadTuningOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	content := []byte("hard:\n  attack_interval: 5\n  build_interval: 7\nevent_quota: 3\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	tun, err := LoadTuning(path)
	if err != nil {
		t.Fatal(err)
	}
	if tun.Hard.AttackInterval != 5 || tun.Hard.BuildInterval != 7 {
		t.Errorf("hard cadence not overridden: %+v", tun.Hard)
	}
	if tun.EventQuota != 3 {
		t.Errorf("event quota = %d, want 3", tun.EventQuota)
	}
	// Untouched fields keep their defaults.
	if tun.Medium.AttackInterval != 750 {
		t.Errorf("medium cadence changed: %+v", tun.Medium)
	}
	if tun.JobQuotaCap != 40 {
		t.Errorf("job quota cap changed: %d", tun.JobQuotaCap)
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
