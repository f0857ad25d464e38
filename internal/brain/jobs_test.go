package brain

import (
	"io"
	"log/slog"
	"testing"

	"github.com/torvund/settlemind/internal/gamedata"
	"github.com/torvund/settlemind/internal/gameworld"
	"github.com/torvund/settlemind/internal/grid"
	"github.com/torvund/settlemind/internal/simworld"
)

// blockedRoadsWorld fails every road-path query, counting attempts.
type blockedRoadsWorld struct {
	gameworld.World
	pathAttempts int
}

func (w *blockedRoadsWorld) RoadPathToNetwork(flag grid.Point, maxLen int) ([]grid.Direction, bool) {
	w.pathAttempts++
	return nil, false
}

func newControllerFor(t *testing.T, w gameworld.World, notes gameworld.Notifier) *Controller {
	t.Helper()
	ctl, err := New(Config{
		Level:  gamedata.Medium,
		Tuning: gamedata.DefaultTuning(),
		World:  w,
		Notes:  notes,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Seed:   1,
	})
	if err != nil {
		t.Fatal(err)
	}
	return ctl
}

func TestConnectRetriesSpanTicks(t *testing.T) {
	world := simworld.NewFlat(32, 32, 1)
	world.SpawnAt(0, grid.Point{X: 10, Y: 10})
	view := world.Player(0)
	blocked := &blockedRoadsWorld{World: view}
	c := newControllerFor(t, blocked, world)

	flag := grid.Point{X: 16, Y: 10}
	if !view.PlaceFlag(flag) {
		t.Fatal("flag refused")
	}
	c.addConnectJob(flag)

	// A blocked tick spends exactly one path attempt and keeps both the
	// job and the flag for the next tick.
	c.executeJobs(10)
	if blocked.pathAttempts != 1 {
		t.Fatalf("path attempts in one tick = %d, want 1", blocked.pathAttempts)
	}
	if len(c.connectJobs) != 1 {
		t.Fatal("stalled connect job dropped")
	}
	if !view.OwnFlag(flag) {
		t.Fatal("flag torn down on the first blocked tick")
	}

	// Later ticks burn the remaining retries, then give up for good.
	c.executeJobs(10)
	c.executeJobs(10)
	if blocked.pathAttempts != gamedata.DefaultTuning().ConnectRetries {
		t.Errorf("path attempts = %d, want %d", blocked.pathAttempts, gamedata.DefaultTuning().ConnectRetries)
	}
	if len(c.connectJobs) != 0 {
		t.Fatal("job not terminal after the retry allowance")
	}
	if view.OwnFlag(flag) {
		t.Fatal("unconnectable flag kept")
	}
}

func TestBuildJobKeepsSiteWhileRoadBlocked(t *testing.T) {
	world := simworld.NewFlat(32, 32, 1)
	world.SpawnAt(0, grid.Point{X: 10, Y: 10})
	view := world.Player(0)
	blocked := &blockedRoadsWorld{World: view}
	c := newControllerFor(t, blocked, world)

	site := grid.Point{X: 14, Y: 10}
	c.buildJobs = append(c.buildJobs, &buildJob{bt: gameworld.Woodcutter, at: site, fixed: true})

	c.executeJobs(10)
	if blocked.pathAttempts != 1 {
		t.Fatalf("path attempts in one tick = %d, want 1", blocked.pathAttempts)
	}
	if len(c.buildJobs) != 1 {
		t.Fatal("connecting build job dropped")
	}
	if _, ok := view.SiteAt(site); !ok {
		t.Fatal("site destroyed while the road was only transiently blocked")
	}
}
