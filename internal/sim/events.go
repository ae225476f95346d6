// Package sim implements the fixed-interval physics and rules tick
// (spec.md §4, component C7) plus the World-State-mutating operations that
// back the protocol gateway's message handlers (C8). It has no notion of
// the wire format: Tick and the session operations return plain Event
// values, which internal/protocol translates into outbound JSON messages.
package sim

import "tidekeep/internal/world"

// Event is the sum type of everything a tick (or a session operation) can
// produce for broadcast, mirroring the outbound catalogue in spec.md §6.
type Event interface{}

type StoneSpawned struct {
	Stone world.Stone
}

type StoneUpdate struct {
	Stones []world.Stone
}

type StonePickup struct {
	StoneID  world.StoneID
	PlayerID world.PlayerID
	Position world.Vector3
}

type StoneThrow struct {
	StoneID  world.StoneID
	PlayerID world.PlayerID
	Position world.Vector3
	Velocity world.Vector3
}

type TowerCreate struct {
	Tower         world.Tower
	ConsumedStones []world.StoneID
}

type TowerUpdate struct {
	TowerID        world.TowerID
	NewLevel       int
	ConsumedStones []world.StoneID
	WasDestacked   bool
}

type TowerDestroy struct {
	TowerIndex int
}

type CloudUpdate struct {
	Clouds []world.Cloud
}

type TowerStartDestruction struct {
	Sequence world.DestructionSequence
}

type TowerUpdateDestruction struct {
	CloudID world.CloudID
	TowerID world.TowerID
	Phase   world.DestructionPhase
}

type KingUpdate struct {
	KingID world.PlayerID // empty means absent
}

type PlayerJoin struct {
	Session world.Session
}

type PlayerLeave struct {
	PlayerID world.PlayerID
}

type PlayerUpdate struct {
	Session world.Session
}
