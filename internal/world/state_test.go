// SPDX-License-Identifier: MIT

package world

import "testing"

func TestRemoveTowerReturnsVacatedIndex(t *testing.T) {
	state := NewState(nil)

	a := &Tower{ID: "a"}
	b := &Tower{ID: "b"}
	c := &Tower{ID: "c"}
	state.AddTower(a)
	state.AddTower(b)
	state.AddTower(c)

	idx := state.RemoveTower("b")
	if idx != 1 {
		t.Errorf("RemoveTower(b) index = %d, want 1", idx)
	}
	if state.TowerIndex("c") != 1 {
		t.Errorf("after removal, TowerIndex(c) = %d, want 1", state.TowerIndex("c"))
	}
}

func TestRemoveTowerUnknownReturnsNegativeOne(t *testing.T) {
	state := NewState(nil)
	if idx := state.RemoveTower("missing"); idx != -1 {
		t.Errorf("RemoveTower(missing) = %d, want -1", idx)
	}
}

func TestTowerHasActiveSequenceInvariant(t *testing.T) {
	state := NewState(nil)
	state.StartSequence(&DestructionSequence{CloudID: "c1", TowerID: "t1"})

	if !state.TowerHasActiveSequence("t1") {
		t.Error("expected t1 to have an active sequence")
	}
	if state.TowerHasActiveSequence("t2") {
		t.Error("expected t2 to have no active sequence")
	}
}

func TestForEachTowerInOrderPreservesFormationOrder(t *testing.T) {
	state := NewState(nil)
	ids := []TowerID{"first", "second", "third"}
	for _, id := range ids {
		state.AddTower(&Tower{ID: id})
	}

	var seen []TowerID
	state.ForEachTowerInOrder(func(t *Tower) { seen = append(seen, t.ID) })

	for i, id := range ids {
		if seen[i] != id {
			t.Errorf("seen[%d] = %v, want %v", i, seen[i], id)
		}
	}
}
