// Package journal persists controller decisions to SQLite: every
// command a controller issues and every event it consumed, keyed by
// tick and player. Writes are buffered in memory and flushed in
// transactions so the hot path never touches the database.
package journal

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/torvund/settlemind/internal/grid"
)

// DB wraps the SQLite connection plus the write buffers.
type DB struct {
	conn *sqlx.DB

	commands []CommandRow
	events   []EventRow
}

// CommandRow is one issued command.
type CommandRow struct {
	Tick   uint64 `db:"tick"`
	Player int    `db:"player"`
	Kind   string `db:"kind"`
	X      int    `db:"x"`
	Y      int    `db:"y"`
	Detail string `db:"detail"`
}

// EventRow is one consumed event.
type EventRow struct {
	Tick   uint64 `db:"tick"`
	Player int    `db:"player"`
	Kind   string `db:"kind"`
	X      int    `db:"x"`
	Y      int    `db:"y"`
}

// Open opens or creates the journal database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return db, nil
}

// Close flushes remaining buffers and closes the connection.
func (db *DB) Close() error {
	if err := db.Flush(); err != nil {
		db.conn.Close()
		return err
	}
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS commands (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		player INTEGER NOT NULL,
		kind TEXT NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		detail TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tick INTEGER NOT NULL,
		player INTEGER NOT NULL,
		kind TEXT NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_commands_tick ON commands(tick);
	CREATE INDEX IF NOT EXISTS idx_commands_player ON commands(player);
	CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Command buffers one command row. Implements brain.Recorder.
func (db *DB) Command(tick uint64, player int, kind string, pt grid.Point, detail string) {
	db.commands = append(db.commands, CommandRow{
		Tick: tick, Player: player, Kind: kind, X: pt.X, Y: pt.Y, Detail: detail,
	})
}

// Event buffers one event row. Implements brain.Recorder.
func (db *DB) Event(tick uint64, player int, kind string, pt grid.Point) {
	db.events = append(db.events, EventRow{
		Tick: tick, Player: player, Kind: kind, X: pt.X, Y: pt.Y,
	})
}

// Flush writes both buffers in one transaction and clears them.
func (db *DB) Flush() error {
	if len(db.commands) == 0 && len(db.events) == 0 {
		return nil
	}
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(
		"INSERT INTO commands (tick, player, kind, x, y, detail) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	for _, c := range db.commands {
		if _, err := stmt.Exec(c.Tick, c.Player, c.Kind, c.X, c.Y, c.Detail); err != nil {
			stmt.Close()
			return fmt.Errorf("insert command: %w", err)
		}
	}
	stmt.Close()

	stmt, err = tx.Preparex(
		"INSERT INTO events (tick, player, kind, x, y) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	for _, e := range db.events {
		if _, err := stmt.Exec(e.Tick, e.Player, e.Kind, e.X, e.Y); err != nil {
			stmt.Close()
			return fmt.Errorf("insert event: %w", err)
		}
	}
	stmt.Close()

	if err := tx.Commit(); err != nil {
		return err
	}
	db.commands = db.commands[:0]
	db.events = db.events[:0]
	return nil
}

// CommandsSince returns all commands at or after a tick, oldest first.
func (db *DB) CommandsSince(tick uint64) ([]CommandRow, error) {
	var rows []CommandRow
	err := db.conn.Select(&rows,
		"SELECT tick, player, kind, x, y, detail FROM commands WHERE tick >= ? ORDER BY id",
		tick)
	return rows, err
}

// Counts returns per-player command totals.
func (db *DB) Counts() (map[int]int, error) {
	var rows []struct {
		Player int `db:"player"`
		N      int `db:"n"`
	}
	err := db.conn.Select(&rows,
		"SELECT player, COUNT(*) AS n FROM commands GROUP BY player")
	if err != nil {
		return nil, err
	}
	out := make(map[int]int, len(rows))
	for _, r := range rows {
		out[r.Player] = r.N
	}
	return out, nil
}
