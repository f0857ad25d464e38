// Command skirmish runs AI-only settlement matches: it generates a
// world, spins up one controller per faction, journals every decision
// to SQLite and optionally streams per-tick stats over a websocket.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/torvund/settlemind/internal/brain"
	"github.com/torvund/settlemind/internal/engine"
	"github.com/torvund/settlemind/internal/gamedata"
	"github.com/torvund/settlemind/internal/journal"
	"github.com/torvund/settlemind/internal/simworld"
)

func main() {
	var (
		seed       = flag.Int64("seed", 42, "world generation seed")
		size       = flag.Int("size", 96, "map width and height")
		players    = flag.Int("players", 4, "number of AI factions")
		ticks      = flag.Uint64("ticks", 20000, "ticks to simulate (0 = run until stopped)")
		dbPath     = flag.String("db", "skirmish.db", "decision journal path (empty = no journal)")
		listen     = flag.String("listen", "", "websocket observer address, e.g. :8080 (empty = off)")
		tuningPath = flag.String("tuning", "", "YAML tuning override file")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	tuning := gamedata.DefaultTuning()
	if *tuningPath != "" {
		var err error
		tuning, err = gamedata.LoadTuning(*tuningPath)
		if err != nil {
			slog.Error("failed to load tuning", "path", *tuningPath, "error", err)
			os.Exit(1)
		}
	}

	cfg := simworld.DefaultConfig()
	cfg.Seed = *seed
	cfg.Width, cfg.Height = *size, *size
	cfg.Players = *players
	world := simworld.New(cfg)
	slog.Info("world generated", "seed", *seed, "size", *size, "players", *players)

	var rec brain.Recorder
	var db *journal.DB
	if *dbPath != "" {
		var err error
		db, err = journal.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open journal", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		rec = db
	}

	levels := [...]gamedata.Difficulty{gamedata.Hard, gamedata.Medium, gamedata.Easy}
	controllers := make([]*brain.Controller, *players)
	for i := range controllers {
		ctl, err := brain.New(brain.Config{
			Player:   i,
			Level:    levels[i%len(levels)],
			Tuning:   tuning,
			World:    world.Player(i),
			Notes:    world,
			Logger:   logger,
			Seed:     *seed + int64(i),
			Recorder: rec,
		})
		if err != nil {
			slog.Error("failed to build controller", "player", i, "error", err)
			os.Exit(1)
		}
		controllers[i] = ctl
	}

	var obs *observer
	if *listen != "" {
		obs = newObserver(*listen, world, controllers)
		go obs.serve()
	}

	eng := engine.New()
	eng.Interval = 0 // headless: flat out
	eng.OnTick = func(tick uint64) {
		world.Step(tick)
		for _, ctl := range controllers {
			ctl.RunTick(tick)
		}
		if db != nil && tick%500 == 0 {
			if err := db.Flush(); err != nil {
				slog.Error("journal flush failed", "error", err)
			}
		}
		if obs != nil && tick%50 == 0 {
			obs.broadcast(tick)
		}
	}
	eng.Run(*ticks)

	alive := 0
	for _, ctl := range controllers {
		if !ctl.Defeated() {
			alive++
		}
	}
	slog.Info("skirmish finished", "ticks", eng.Tick, "factions_alive", alive)
	if db != nil {
		if counts, err := db.Counts(); err == nil {
			for p, n := range counts {
				slog.Info("journal summary", "player", p, "commands", n)
			}
		}
	}
}
