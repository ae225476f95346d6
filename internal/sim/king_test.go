// SPDX-License-Identifier: MIT

package sim

import (
	"testing"
	"time"

	"tidekeep/internal/config"
	"tidekeep/internal/world"
)

func TestKingArbiterCrownsPlayerAtopTallestTower(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	tower := &world.Tower{ID: world.NewTowerID(), Position: world.Vector3{X: 0, Y: 0, Z: 0}, Level: 2}
	state.AddTower(tower)

	top := tower.TopAltitude(cfg.Stone.Depth)
	player := &world.Session{ID: world.NewPlayerID(), Position: world.Vector3{X: 0, Y: top, Z: 0}}
	state.AddSession(player)

	var arbiter KingArbiter
	var events []Event
	arbiter.Maybe(state, &cfg, time.Now(), &events)

	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	king, ok := events[0].(KingUpdate)
	if !ok || king.KingID != player.ID {
		t.Errorf("events[0] = %+v, want KingUpdate{%v}", events[0], player.ID)
	}
}

func TestKingArbiterThrottlesToOnceHz(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	var arbiter KingArbiter
	now := time.Now()

	var first []Event
	arbiter.Maybe(state, &cfg, now, &first)

	var second []Event
	arbiter.Maybe(state, &cfg, now.Add(100*time.Millisecond), &second)

	if len(second) != 0 {
		t.Errorf("second call within 1s produced events: %+v", second)
	}
}

func TestKingArbiterNoEmitWhenUnchanged(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	var arbiter KingArbiter
	now := time.Now()

	var first []Event
	arbiter.Maybe(state, &cfg, now, &first) // absent -> absent, no event

	if len(first) != 0 {
		t.Errorf("first call with no towers produced events: %+v", first)
	}
}
