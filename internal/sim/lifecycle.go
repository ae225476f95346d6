// SPDX-License-Identifier: MIT

package sim

import (
	"math/rand"
	"time"

	"github.com/chewxy/math32"

	"tidekeep/internal/world"
)

// Join registers a new session and broadcasts player_join to every other
// session, per spec.md §4.10. The caller (internal/protocol) is
// responsible for detecting a playerId collision with a live session
// before calling Join; per SPEC_FULL.md §5 that is an authority violation
// and must be logged and ignored rather than reaching here.
func Join(state *world.State, session world.Session, events *[]Event) {
	state.AddSession(&session)
	*events = append(*events, PlayerJoin{Session: session})
}

// UpdateSession applies a pose and heldStones update and broadcasts
// player_update to every other session, per spec.md §4.10. heldStones is
// client-supplied (e.g. a reordering of the carried stack) but is
// authoritatively filtered down to the stone IDs actually held by this
// session, per §3's session invariant: any ID the client names that is not
// held by playerID is dropped rather than trusted.
func UpdateSession(state *world.State, playerID world.PlayerID, position, rotation world.Vector3, heldStones []world.StoneID, now time.Time, events *[]Event) bool {
	session := state.Session(playerID)
	if session == nil {
		return false
	}
	session.Position = position
	session.Rotation = rotation
	session.LastUpdate = now
	session.HeldStones = filterHeld(state, playerID, heldStones)
	*events = append(*events, PlayerUpdate{Session: *session})
	return true
}

// filterHeld keeps only the stone IDs that are actually held by playerID,
// preserving the client's requested order (used for visible stack order by
// the carrier step, §4.4), and drops anything else as an authority mismatch.
func filterHeld(state *world.State, playerID world.PlayerID, requested []world.StoneID) []world.StoneID {
	var kept []world.StoneID
	for _, id := range requested {
		stone := state.Stone(id)
		if stone == nil || !stone.IsHeld || stone.HeldBy != playerID {
			continue
		}
		kept = append(kept, id)
	}
	return kept
}

// Pickup handles a stone_pickup request. Validated only in that the
// target stone exists and is not currently held, per §4.10.
func Pickup(state *world.State, playerID world.PlayerID, stoneID world.StoneID, events *[]Event) bool {
	session := state.Session(playerID)
	if session == nil {
		return false
	}
	stone := state.Stone(stoneID)
	if stone == nil || stone.IsHeld {
		return false
	}

	stone.IsHeld = true
	stone.HeldBy = playerID
	stone.IsThrown = false
	stone.Velocity = world.Vector3{}
	stone.Rotation.X += (rand.Float32()*2 - 1) * 0.1
	stone.Rotation.Z += (rand.Float32()*2 - 1) * 0.1

	session.HoldStone(stoneID)

	*events = append(*events, StonePickup{StoneID: stoneID, PlayerID: playerID, Position: stone.Position})
	return true
}

// Throw handles a stone_throw request. Valid only if the stone is held by
// the requester. direction is the client-supplied horizontal throw angle
// in radians.
func Throw(state *world.State, playerID world.PlayerID, stoneID world.StoneID, direction float32, now time.Time, events *[]Event) bool {
	session := state.Session(playerID)
	if session == nil {
		return false
	}
	stone := state.Stone(stoneID)
	if stone == nil || !stone.IsHeld || stone.HeldBy != playerID {
		return false
	}

	angle := direction + (rand.Float32()*2-1)*(math32.Pi/12)
	horizontal := 5 + rand.Float32()*2   // [5, 7]
	vertical := 2 + rand.Float32()       // [2, 3]

	stone.Velocity = world.Vector3{
		X: math32.Cos(angle) * horizontal,
		Y: vertical,
		Z: math32.Sin(angle) * horizontal,
	}
	stone.IsThrown = true
	stone.IsStatic = false
	stone.ThrowTime = now
	stone.ClearHeld()

	session.ReleaseStone(stoneID)

	*events = append(*events, StoneThrow{
		StoneID: stoneID, PlayerID: playerID,
		Position: stone.Position, Velocity: stone.Velocity,
	})
	return true
}

// Disconnect drops every stone held by the session and removes it,
// broadcasting player_leave.
func Disconnect(state *world.State, playerID world.PlayerID, now time.Time, events *[]Event) {
	session := state.Session(playerID)
	if session == nil {
		return
	}

	for _, stoneID := range session.ReleaseAll() {
		stone := state.Stone(stoneID)
		if stone == nil {
			continue
		}
		stone.ClearHeld()
		stone.IsThrown = true
		stone.Velocity = world.Vector3{}
		stone.ThrowTime = now
	}

	state.RemoveSession(playerID)
	*events = append(*events, PlayerLeave{PlayerID: playerID})
}
