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

// memRecorder counts recorded commands by kind.
type memRecorder struct {
	commands map[string]int
}

func (r *memRecorder) Command(tick uint64, player int, kind string, pt grid.Point, detail string) {
	if r.commands == nil {
		r.commands = make(map[string]int)
	}
	r.commands[kind]++
}

func (r *memRecorder) Event(tick uint64, player int, kind string, pt grid.Point) {}

func newTestController(t *testing.T, world *simworld.World, player int, rec Recorder) *Controller {
	t.Helper()
	ctl, err := New(Config{
		Player:   player,
		Level:    gamedata.Medium,
		Tuning:   gamedata.DefaultTuning(),
		World:    world.Player(player),
		Notes:    world,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Seed:     1,
		Recorder: rec,
	})
	if err != nil {
		t.Fatal(err)
	}
	return ctl
}

func TestNewRejectsUnknownDifficulty(t *testing.T) {
	world := simworld.NewFlat(16, 16, 1)
	_, err := New(Config{
		Player: 0,
		Level:  "brutal",
		Tuning: gamedata.DefaultTuning(),
		World:  world.Player(0),
		Notes:  world,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err == nil {
		t.Fatal("unknown difficulty accepted")
	}
}

func TestDrainEventsQuotaAndOrder(t *testing.T) {
	world := simworld.NewFlat(32, 32, 1)
	world.SpawnAt(0, grid.Point{X: 10, Y: 10})
	c := newTestController(t, world, 0, nil)

	for i := 0; i < 5; i++ {
		c.enqueue(gameworld.Note{
			Kind:     gameworld.NoteResourceFound,
			Pos:      grid.Point{X: 5 + i, Y: 5},
			Resource: gameworld.ResourceCoal,
		})
	}
	c.drainEvents(2)
	if len(c.events) != 3 {
		t.Fatalf("backlog = %d, want 3", len(c.events))
	}
	// FIFO: the third enqueued note is now at the front.
	if c.events[0].Pos != (grid.Point{X: 7, Y: 5}) {
		t.Errorf("front of backlog = %v", c.events[0].Pos)
	}
	c.drainEvents(10)
	if len(c.events) != 0 {
		t.Errorf("backlog not drained: %d left", len(c.events))
	}
}

func TestGridDeltasBypassQueue(t *testing.T) {
	world := simworld.NewFlat(32, 32, 1)
	world.SpawnAt(0, grid.Point{X: 10, Y: 10})
	c := newTestController(t, world, 0, nil)

	c.enqueue(gameworld.Note{Kind: gameworld.NoteNodeBQ, Pos: grid.Point{X: 3, Y: 3}})
	c.enqueue(gameworld.Note{Kind: gameworld.NoteNodeOwner, Pos: grid.Point{X: 4, Y: 4}})
	if len(c.events) != 0 {
		t.Errorf("grid deltas entered the event queue: %d", len(c.events))
	}
	if len(c.dirty) != 2 {
		t.Errorf("dirty set = %d, want 2", len(c.dirty))
	}
}

func TestJobQuotaScalesWithBuildings(t *testing.T) {
	world := simworld.NewFlat(32, 32, 1)
	world.SpawnAt(0, grid.Point{X: 10, Y: 10})
	c := newTestController(t, world, 0, nil)

	if q := c.jobQuota(); q != 1 {
		t.Errorf("quota with one warehouse = %d, want 1", q)
	}
}

func TestExecuteJobsSpendsQuota(t *testing.T) {
	world := simworld.NewFlat(32, 32, 1)
	world.SpawnAt(0, grid.Point{X: 10, Y: 10})
	c := newTestController(t, world, 0, nil)
	c.initialize()
	c.warm = true

	anchor := grid.Point{X: 10, Y: 10}
	for i := 0; i < 3; i++ {
		c.buildJobs = append(c.buildJobs, &buildJob{bt: gameworld.Woodcutter, around: anchor})
	}
	// Two transitions: the first job advances to searching, then fails
	// (no wood on a flat map). The other jobs must not be touched.
	c.executeJobs(2)
	if len(c.buildJobs) != 2 {
		t.Fatalf("queue = %d jobs, want 2", len(c.buildJobs))
	}
	if c.buildJobs[0].state != jobInitial {
		t.Errorf("second job advanced to %d", c.buildJobs[0].state)
	}
}

func TestFailedJobLeavesNoSite(t *testing.T) {
	world := simworld.NewFlat(32, 32, 1)
	world.SpawnAt(0, grid.Point{X: 10, Y: 10})
	c := newTestController(t, world, 0, nil)
	c.initialize()
	c.warm = true

	c.addBuildJob(gameworld.Woodcutter, grid.Point{X: 10, Y: 10}, false)
	c.executeJobs(10)
	if len(c.buildJobs) != 0 {
		t.Fatalf("failed job still queued")
	}
	if sites := world.Player(0).BuildingSites(); len(sites) != 0 {
		t.Errorf("site placed despite failed search: %v", sites)
	}
}

func TestConnectJobWithVanishedFlag(t *testing.T) {
	world := simworld.NewFlat(32, 32, 1)
	world.SpawnAt(0, grid.Point{X: 10, Y: 10})
	c := newTestController(t, world, 0, nil)

	c.addConnectJob(grid.Point{X: 3, Y: 3}) // no flag there
	c.executeJobs(5)
	if len(c.connectJobs) != 0 {
		t.Fatal("connect job for a missing flag not dropped")
	}
}

func TestAttackWithoutMilitaryIsNoop(t *testing.T) {
	world := simworld.NewFlat(32, 32, 2)
	world.SpawnAt(0, grid.Point{X: 8, Y: 8})
	world.SpawnAt(1, grid.Point{X: 24, Y: 24})
	rec := &memRecorder{}
	c := newTestController(t, world, 0, rec)

	c.tryToAttack()
	if rec.commands["attack"] != 0 {
		t.Errorf("attack issued without military buildings")
	}
}

func TestSurrenderWithoutStorehouses(t *testing.T) {
	world := simworld.NewFlat(16, 16, 1)
	c := newTestController(t, world, 0, nil)

	c.RunTick(1)
	if !c.Defeated() {
		t.Fatal("controller did not surrender")
	}
	c.RunTick(2) // inert afterwards, must not panic
}

func TestRoadSplitStartsAtWarehouseEnd(t *testing.T) {
	world := simworld.NewFlat(32, 32, 1)
	world.SpawnAt(0, grid.Point{X: 10, Y: 10})
	c := newTestController(t, world, 0, nil)
	view := world.Player(0)

	// Six road tiles between a lone flag and the headquarters flag.
	start := grid.Point{X: 17, Y: 11}
	if !view.PlaceFlag(start) {
		t.Fatal("flag refused")
	}
	route := make([]grid.Direction, 7)
	for i := range route {
		route[i] = grid.West
	}
	if !view.BuildRoad(start, route) {
		t.Fatal("road refused")
	}

	c.handleRoadComplete(gameworld.Note{
		Kind: gameworld.NoteRoadComplete, Pos: start, Dir: grid.West,
	})
	// Splits land two hops out from the depot, not from the named flag.
	if !view.OwnFlag(grid.Point{X: 12, Y: 11}) {
		t.Error("no split two hops from the warehouse flag")
	}
	if view.OwnFlag(grid.Point{X: 15, Y: 11}) {
		t.Error("split placed counting from the far end")
	}
}

func TestPlanNewBuildingsQueuesWork(t *testing.T) {
	world := simworld.NewFlat(32, 32, 1)
	world.SpawnAt(0, grid.Point{X: 10, Y: 10})
	c := newTestController(t, world, 0, nil)
	c.initialize()
	c.warm = true

	c.planNewBuildings()
	if len(c.buildJobs) == 0 {
		t.Fatal("no build jobs queued from demand")
	}
}
