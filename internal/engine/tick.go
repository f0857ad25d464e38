// Package engine provides the tick loop driving the world and the
// controllers.
package engine

import (
	"log/slog"
	"time"
)

// Engine advances the simulation at a fixed cadence. With Interval 0 it
// runs flat out, which is how headless skirmishes finish in seconds.
type Engine struct {
	Tick     uint64        // monotonic tick counter, never resets
	Speed    float64       // multiplier: 1.0 = real-time, 0 = paused
	Interval time.Duration // base tick interval; 0 = flat out
	Running  bool

	OnTick func(tick uint64)
}

// New creates an engine with real-time defaults.
func New() *Engine {
	return &Engine{Speed: 1.0, Interval: 50 * time.Millisecond}
}

// Run drives the loop until Stop is called or maxTicks is reached
// (0 = unbounded). Blocks.
func (e *Engine) Run(maxTicks uint64) {
	e.Running = true
	slog.Info("engine started", "tick", e.Tick, "interval", e.Interval)

	for e.Running {
		if maxTicks > 0 && e.Tick >= maxTicks {
			break
		}
		if e.Interval > 0 && e.Speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		e.Tick++
		if e.OnTick != nil {
			e.OnTick(e.Tick)
		}

		if e.Interval > 0 {
			elapsed := time.Since(start)
			target := time.Duration(float64(e.Interval) / e.Speed)
			if elapsed < target {
				time.Sleep(target - elapsed)
			}
		}
	}
	e.Running = false
	slog.Info("engine stopped", "tick", e.Tick)
}

// Stop halts the loop after the current tick.
func (e *Engine) Stop() {
	e.Running = false
}
