// SPDX-License-Identifier: MIT

package sim

import (
	"testing"

	"tidekeep/internal/config"
	"tidekeep/internal/world"
)

func settledStone(pos world.Vector3) *world.Stone {
	return &world.Stone{
		ID: world.NewStoneID(), Position: pos,
		IsThrown: true, IsStatic: true,
	}
}

func TestAdvanceTowersFormsNewTower(t *testing.T) {
	cfg := config.Default()
	cfg.Tower.StonesPerLevel = 3
	cfg.Tower.GroupRadius = 2.0
	state := newTestState(&cfg)

	state.AddStone(settledStone(world.Vector3{X: 0, Y: 0, Z: 0}))
	state.AddStone(settledStone(world.Vector3{X: 0.5, Y: 0, Z: 0}))
	state.AddStone(settledStone(world.Vector3{X: 0, Y: 0, Z: 0.5}))

	var events []Event
	AdvanceTowers(state, &cfg, &events)

	if state.TowerCount() != 1 {
		t.Fatalf("TowerCount() = %d, want 1", state.TowerCount())
	}
	if state.StoneCount() != 0 {
		t.Errorf("StoneCount() = %d, want 0 (all consumed)", state.StoneCount())
	}

	found := false
	for _, e := range events {
		if _, ok := e.(TowerCreate); ok {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a TowerCreate event, got %+v", events)
	}
}

func TestAdvanceTowersLevelsUpExistingTower(t *testing.T) {
	cfg := config.Default()
	cfg.Tower.StonesPerLevel = 3
	cfg.Tower.GroupRadius = 2.0
	state := newTestState(&cfg)

	tower := &world.Tower{ID: world.NewTowerID(), Position: world.Vector3{X: 10, Y: 0, Z: 10}, Level: 1}
	state.AddTower(tower)

	for i := 0; i < 3; i++ {
		state.AddStone(settledStone(world.Vector3{X: 10 + float32(i)*0.1, Y: 0, Z: 10}))
	}

	var events []Event
	AdvanceTowers(state, &cfg, &events)

	if tower.Level != 2 {
		t.Errorf("tower.Level = %d, want 2", tower.Level)
	}
	if state.StoneCount() != 0 {
		t.Errorf("StoneCount() = %d, want 0", state.StoneCount())
	}
}

func TestAdvanceTowersIgnoresUnsettledStones(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	for i := 0; i < 3; i++ {
		s := settledStone(world.Vector3{X: float32(i) * 0.1, Y: 0, Z: 0})
		s.IsStatic = false // moving, not settled
		state.AddStone(s)
	}

	var events []Event
	AdvanceTowers(state, &cfg, &events)

	if state.TowerCount() != 0 {
		t.Errorf("TowerCount() = %d, want 0 for unsettled stones", state.TowerCount())
	}
}

func TestDestackLevelOneRemovesTower(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	tower := &world.Tower{ID: world.NewTowerID(), Position: world.Vector3{X: 0, Y: 0, Z: 0}, Level: 1}
	state.AddTower(tower)
	player := &world.Session{ID: world.NewPlayerID(), Position: world.Vector3{X: 0, Y: 0, Z: 0}}
	state.AddSession(player)

	var events []Event
	ok := Destack(state, &cfg, player.ID, tower.ID, false, &events)

	if !ok {
		t.Fatal("Destack returned false")
	}
	if state.TowerCount() != 0 {
		t.Errorf("TowerCount() = %d, want 0", state.TowerCount())
	}
	if state.StoneCount() != cfg.Tower.StonesPerLevel {
		t.Errorf("StoneCount() = %d, want %d", state.StoneCount(), cfg.Tower.StonesPerLevel)
	}
}

func TestDestackRejectsDistantPlayer(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	tower := &world.Tower{ID: world.NewTowerID(), Position: world.Vector3{X: 0, Y: 0, Z: 0}, Level: 2}
	state.AddTower(tower)
	player := &world.Session{ID: world.NewPlayerID(), Position: world.Vector3{X: 500, Y: 0, Z: 500}}
	state.AddSession(player)

	var events []Event
	if Destack(state, &cfg, player.ID, tower.ID, false, &events) {
		t.Error("Destack should reject a distant player")
	}
}

func TestDestackAuthedBypassesDistanceCheck(t *testing.T) {
	cfg := config.Default()
	cfg.Auth = "secret"
	state := newTestState(&cfg)

	tower := &world.Tower{ID: world.NewTowerID(), Position: world.Vector3{X: 0, Y: 0, Z: 0}, Level: 2}
	state.AddTower(tower)
	player := &world.Session{ID: world.NewPlayerID(), Position: world.Vector3{X: 500, Y: 0, Z: 500}}
	state.AddSession(player)

	var events []Event
	if !Destack(state, &cfg, player.ID, tower.ID, true, &events) {
		t.Error("authed Destack should bypass the distance check")
	}
}
