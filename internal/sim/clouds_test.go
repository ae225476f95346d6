// SPDX-License-Identifier: MIT

package sim

import (
	"testing"
	"time"

	"tidekeep/internal/config"
	"tidekeep/internal/world"
)

func TestWanderReflectsAtMapEdge(t *testing.T) {
	cfg := config.Default()
	cloud := &world.Cloud{
		ID:        world.NewCloudID(),
		Position:  world.Vector3{X: cfg.World.Size/2 - 0.05, Y: 60, Z: 0},
		Direction: world.Vector3{X: 1, Y: 0, Z: 0},
		Speed:     1.0,
	}

	wander(cloud, &cfg, 1.0)

	if cloud.Direction.X >= 0 {
		t.Errorf("direction.X = %v, want reflected negative", cloud.Direction.X)
	}
}

func TestDestructionSequenceRunsThreePhasesThenDestroysTower(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	tower := &world.Tower{ID: world.NewTowerID(), Position: world.Vector3{X: 0, Y: 0, Z: 0}, Level: 2}
	state.AddTower(tower)

	cloud := &world.Cloud{ID: world.NewCloudID(), Position: world.Vector3{X: 0, Y: 60, Z: 0}}
	state.AddCloud(cloud)

	start := time.Now()
	seq := &world.DestructionSequence{
		CloudID: cloud.ID, TowerID: tower.ID, TowerPosition: tower.Position,
		StartPosition: cloud.Position, Phase: world.PhaseMoving, StartTime: start,
		MovingFor: movingDuration, RainingFor: rainingDuration, FloodingFor: floodingDuration,
	}
	state.StartSequence(seq)

	var events []Event
	advanceSequences(state, &cfg, start.Add(movingDuration+time.Millisecond), &events)
	if seq.Phase != world.PhaseRaining {
		t.Fatalf("phase = %v, want raining", seq.Phase)
	}

	events = nil
	advanceSequences(state, &cfg, seq.StartTime.Add(rainingDuration+time.Millisecond), &events)
	if seq.Phase != world.PhaseFlooding {
		t.Fatalf("phase = %v, want flooding", seq.Phase)
	}

	events = nil
	advanceSequences(state, &cfg, seq.StartTime.Add(floodingDuration+time.Millisecond), &events)
	if state.TowerCount() != 0 {
		t.Errorf("TowerCount() = %d, want 0 after flooding completes", state.TowerCount())
	}
	if state.Sequence(cloud.ID) != nil {
		t.Error("sequence should be ended")
	}
	if state.ReturnPath(cloud.ID) == nil {
		t.Error("expected a return path to be scheduled")
	}
}

func TestCloudInActiveSequenceIsExcludedFromWander(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	cloud := &world.Cloud{ID: world.NewCloudID(), Position: world.Vector3{X: 0, Y: 60, Z: 0}}
	state.AddCloud(cloud)
	state.StartSequence(&world.DestructionSequence{CloudID: cloud.ID, Phase: world.PhaseRaining, StartTime: time.Now()})

	before := cloud.Position
	var events []Event
	AdvanceClouds(state, &cfg, time.Now(), 1.0/60, &events)

	if cloud.Position != before {
		t.Errorf("cloud in active sequence moved via wander: %+v -> %+v", before, cloud.Position)
	}
}
