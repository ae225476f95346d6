// SPDX-License-Identifier: MIT

package sim

import (
	"testing"

	"tidekeep/internal/config"
	"tidekeep/internal/world"
)

func newTestState(cfg *config.Config) *world.State {
	terrain := world.NewTerrain(cfg.World.Size, 64,
		cfg.World.TerrainXScale, cfg.World.TerrainYScale,
		cfg.World.MaxTerrainHeight, cfg.World.MinTerrainHeight, cfg.World.EdgeFalloff)
	return world.NewState(terrain)
}

func TestIntegrateStonesSkipsHeldStones(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	stone := &world.Stone{ID: world.NewStoneID(), IsHeld: true, Position: world.Vector3{X: 1, Y: 1, Z: 1}}
	state.AddStone(stone)

	IntegrateStones(state, &cfg, 1.0/60)

	if stone.Position != (world.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("held stone moved: %+v", stone.Position)
	}
}

func TestIntegrateStonesFallsUnderGravity(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	stone := &world.Stone{ID: world.NewStoneID(), Position: world.Vector3{X: 0, Y: 50, Z: 0}, IsThrown: true}
	state.AddStone(stone)

	for i := 0; i < 5; i++ {
		IntegrateStones(state, &cfg, 1.0/60)
	}

	if stone.Velocity.Y >= 0 {
		t.Errorf("stone velocity.Y = %v, want negative after falling", stone.Velocity.Y)
	}
}

func TestCapVelocityScalesDownUniformly(t *testing.T) {
	stone := &world.Stone{Velocity: world.Vector3{X: 30, Y: 30, Z: 30}}
	capVelocity(stone, 10)

	if got := stone.Velocity.Length(); got > 10.001 {
		t.Errorf("capped speed = %v, want <= 10", got)
	}
	// direction preserved
	if stone.Velocity.X != stone.Velocity.Y || stone.Velocity.Y != stone.Velocity.Z {
		t.Errorf("cap changed direction: %+v", stone.Velocity)
	}
}

func TestRestDetectionSetsStaticBelowThreshold(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	stone := &world.Stone{
		ID:       world.NewStoneID(),
		Position: world.Vector3{X: 0, Y: -30, Z: 0}, // well below terrain, forces ground collision
		IsThrown: true,
	}
	state.AddStone(stone)

	for i := 0; i < 120; i++ {
		IntegrateStones(state, &cfg, 1.0/60)
	}

	if !stone.IsStatic {
		t.Errorf("expected stone to settle to static, got velocity %+v", stone.Velocity)
	}
}
