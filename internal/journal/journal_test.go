package journal

import (
	"path/filepath"
	"testing"

	"github.com/torvund/settlemind/internal/grid"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRoundtrip(t *testing.T) {
	db := openTestDB(t)

	db.Command(10, 0, "place_site", grid.Point{X: 3, Y: 4}, "woodcutter")
	db.Command(12, 1, "attack", grid.Point{X: 7, Y: 7}, "barracks")
	db.Event(11, 0, "building_finished", grid.Point{X: 3, Y: 4})
	if err := db.Flush(); err != nil {
		t.Fatal(err)
	}

	rows, err := db.CommandsSince(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("commands = %d, want 2", len(rows))
	}
	if rows[0].Kind != "place_site" || rows[0].X != 3 || rows[0].Detail != "woodcutter" {
		t.Errorf("first row = %+v", rows[0])
	}

	since, err := db.CommandsSince(11)
	if err != nil {
		t.Fatal(err)
	}
	if len(since) != 1 || since[0].Kind != "attack" {
		t.Errorf("since filter returned %+v", since)
	}
}

func TestCounts(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 3; i++ {
		db.Command(uint64(i), 0, "place_flag", grid.Point{X: i, Y: 0}, "")
	}
	db.Command(5, 2, "attack", grid.Point{X: 1, Y: 1}, "")
	if err := db.Flush(); err != nil {
		t.Fatal(err)
	}

	counts, err := db.Counts()
	if err != nil {
		t.Fatal(err)
	}
	if counts[0] != 3 || counts[2] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestFlushClearsBuffers(t *testing.T) {
	db := openTestDB(t)

	db.Command(1, 0, "chat", grid.Point{}, "hello")
	if err := db.Flush(); err != nil {
		t.Fatal(err)
	}
	// A second flush with empty buffers must not duplicate rows.
	if err := db.Flush(); err != nil {
		t.Fatal(err)
	}
	rows, err := db.CommandsSince(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want 1", len(rows))
	}
}
