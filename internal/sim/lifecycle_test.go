// SPDX-License-Identifier: MIT

package sim

import (
	"testing"
	"time"

	"tidekeep/internal/config"
	"tidekeep/internal/world"
)

func TestJoinRegistersSessionAndBroadcasts(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	var events []Event
	Join(state, world.Session{ID: "p1", Username: "alice"}, &events)

	if state.Session("p1") == nil {
		t.Fatal("session not registered")
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if _, ok := events[0].(PlayerJoin); !ok {
		t.Errorf("events[0] = %T, want PlayerJoin", events[0])
	}
}

func TestPickupRejectsAlreadyHeldStone(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	state.AddSession(&world.Session{ID: "p1"})
	state.AddSession(&world.Session{ID: "p2"})
	stone := &world.Stone{ID: "s1", IsHeld: true, HeldBy: "p1"}
	state.AddStone(stone)

	var events []Event
	if Pickup(state, "p2", "s1", &events) {
		t.Error("expected pickup of held stone to be rejected")
	}
}

func TestPickupThenThrowRoundTrip(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	state.AddSession(&world.Session{ID: "p1"})
	state.AddStone(&world.Stone{ID: "s1"})

	var events []Event
	if !Pickup(state, "p1", "s1", &events) {
		t.Fatal("pickup failed")
	}
	stone := state.Stone("s1")
	if !stone.IsHeld || stone.HeldBy != "p1" {
		t.Fatalf("stone not held correctly: %+v", stone)
	}

	events = nil
	if !Throw(state, "p1", "s1", 0, time.Now(), &events) {
		t.Fatal("throw failed")
	}
	if stone.IsHeld {
		t.Error("stone still held after throw")
	}
	if !stone.IsThrown {
		t.Error("stone not marked thrown")
	}
	if stone.Velocity.HorizontalSpeed() < 5 || stone.Velocity.HorizontalSpeed() > 7.1 {
		t.Errorf("throw horizontal speed = %v, want in [5, 7]", stone.Velocity.HorizontalSpeed())
	}
}

func TestThrowRejectsNonHolder(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	state.AddSession(&world.Session{ID: "p1"})
	state.AddSession(&world.Session{ID: "p2"})
	state.AddStone(&world.Stone{ID: "s1", IsHeld: true, HeldBy: "p1"})

	var events []Event
	if Throw(state, "p2", "s1", 0, time.Now(), &events) {
		t.Error("expected throw by non-holder to be rejected")
	}
}

func TestDisconnectDropsHeldStonesAndRemovesSession(t *testing.T) {
	cfg := config.Default()
	state := newTestState(&cfg)

	session := &world.Session{ID: "p1"}
	state.AddSession(session)
	stone := &world.Stone{ID: "s1", IsHeld: true, HeldBy: "p1"}
	state.AddStone(stone)
	session.HoldStone("s1")

	var events []Event
	Disconnect(state, "p1", time.Now(), &events)

	if state.Session("p1") != nil {
		t.Error("session not removed")
	}
	if stone.IsHeld {
		t.Error("stone still held after disconnect")
	}
	if !stone.IsThrown {
		t.Error("dropped stone should be marked thrown")
	}
}
