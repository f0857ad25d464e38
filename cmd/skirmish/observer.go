package main

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/torvund/settlemind/internal/brain"
	"github.com/torvund/settlemind/internal/simworld"
)

// observer streams per-tick match statistics to websocket clients.
type observer struct {
	addr        string
	world       *simworld.World
	controllers []*brain.Controller

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// tickStats is one broadcast frame.
type tickStats struct {
	Tick     uint64         `json:"tick"`
	Factions []factionStats `json:"factions"`
}

type factionStats struct {
	Player      int  `json:"player"`
	Storehouses int  `json:"storehouses"`
	Military    int  `json:"military"`
	Sites       int  `json:"sites"`
	Defeated    bool `json:"defeated"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func newObserver(addr string, world *simworld.World, controllers []*brain.Controller) *observer {
	return &observer{
		addr:        addr,
		world:       world,
		controllers: controllers,
		clients:     make(map[*websocket.Conn]bool),
	}
}

func (o *observer) serve() {
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", o.handleWatch)
	slog.Info("observer listening", "addr", o.addr)
	if err := http.ListenAndServe(o.addr, mux); err != nil {
		slog.Error("observer stopped", "error", err)
	}
}

func (o *observer) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	o.mu.Lock()
	o.clients[conn] = true
	o.mu.Unlock()

	// Drain (and discard) client messages to notice disconnects.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				o.mu.Lock()
				delete(o.clients, conn)
				o.mu.Unlock()
				conn.Close()
				return
			}
		}
	}()
}

// broadcast snapshots the match and pushes it to every client. Dead
// connections are dropped on write failure.
func (o *observer) broadcast(tick uint64) {
	stats := tickStats{Tick: tick}
	for i, ctl := range o.controllers {
		view := o.world.Player(i)
		stats.Factions = append(stats.Factions, factionStats{
			Player:      i,
			Storehouses: len(view.Storehouses()),
			Military:    len(view.MilitaryBuildings()),
			Sites:       len(view.BuildingSites()),
			Defeated:    ctl.Defeated(),
		})
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	for conn := range o.clients {
		if err := conn.WriteJSON(stats); err != nil {
			delete(o.clients, conn)
			conn.Close()
		}
	}
}
