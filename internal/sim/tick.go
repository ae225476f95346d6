// SPDX-License-Identifier: MIT

package sim

import (
	"time"

	"tidekeep/internal/config"
	"tidekeep/internal/world"
)

// cloudUpdateInterval throttles cloud updates to ≈10 Hz per spec.md §5; the
// ≤1 Hz king update throttle lives in KingArbiter.Maybe.
const cloudUpdateInterval = 100 * time.Millisecond

// Ticker runs one fixed-interval physics-and-rules step, producing the
// ordered group of events spec.md §5 requires: stone spawns, stone pose
// updates, tower create/update/destroy, cloud updates, king update.
//
// Ticker owns no World State itself; it is handed the state owned by the
// hub's single event-loop goroutine, mirroring mk48's update.go being
// called directly from Hub.run.
type Ticker struct {
	cfg *config.Config

	spawner *Spawner
	king    KingArbiter

	lastCloudBroadcast time.Time
}

func NewTicker(cfg *config.Config) *Ticker {
	return &Ticker{
		cfg:     cfg,
		spawner: NewSpawner(2 * time.Second),
	}
}

// Tick advances the world by dt and returns the ordered events to
// broadcast this tick. now is the wall-clock time of this tick, used for
// destruction-sequence timing, return-path timing, and throttling.
func (t *Ticker) Tick(state *world.State, now time.Time, dt float32) []Event {
	var events []Event

	// 1. stone spawns
	t.spawner.Maybe(state, t.cfg, now, &events)

	// 2. stone pose updates: held stones follow their carrier, unheld
	// stones integrate under physics.
	CarryHeldStones(state, &events)
	IntegrateStones(state, t.cfg, dt)

	var settledUpdates []world.Stone
	state.ForEachStone(func(s *world.Stone) {
		settledUpdates = append(settledUpdates, *s)
	})
	if len(settledUpdates) > 0 {
		events = append(events, StoneUpdate{Stones: settledUpdates})
	}

	// 3. tower create/update/destroy
	AdvanceTowers(state, t.cfg, &events)

	// 4. cloud updates, throttled to ≈10 Hz
	if t.lastCloudBroadcast.IsZero() || now.Sub(t.lastCloudBroadcast) >= cloudUpdateInterval {
		t.lastCloudBroadcast = now
		AdvanceClouds(state, t.cfg, now, dt, &events)
	} else {
		// Still must advance the simulation even when not broadcasting;
		// AdvanceClouds both mutates and appends events, so run it and
		// drop the CloudUpdate entries that aren't due yet.
		var sub []Event
		AdvanceClouds(state, t.cfg, now, dt, &sub)
		for _, e := range sub {
			if _, isCloudUpdate := e.(CloudUpdate); isCloudUpdate {
				continue
			}
			events = append(events, e)
		}
	}

	// 5. king update, throttled to ≤1 Hz (KingArbiter.Maybe self-throttles)
	t.king.Maybe(state, t.cfg, now, &events)

	return events
}
