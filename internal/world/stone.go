// SPDX-License-Identifier: MIT

package world

import "time"

// StoneRadius is the stone's collision radius, fixed per spec.md §3.
const StoneRadius = 0.5

// Stone is a mobile rigid body: position, velocity, rotation, and the
// held/thrown/static phase flags from spec.md §3.
type Stone struct {
	ID        StoneID   `json:"stoneId"`
	Position  Vector3   `json:"position"`
	Velocity  Vector3   `json:"velocity"`
	Rotation  Vector3   `json:"rotation"`
	IsHeld    bool      `json:"isHeld"`
	HeldBy    PlayerID  `json:"heldBy,omitempty"` // zero value means none
	IsThrown  bool      `json:"isThrown"`
	ThrowTime time.Time `json:"-"`
	IsStatic  bool      `json:"isStatic"`
}

// Settled reports whether a stone is eligible for tower formation/leveling
// (spec.md §4.6: "settled" = ¬isHeld ∧ isThrown ∧ isStatic).
func (s *Stone) Settled() bool {
	return !s.IsHeld && s.IsThrown && s.IsStatic
}

// ClearHeld drops the stone: used by the carrier's holder-less self-heal
// (§7), by throw, and by session disconnect (§4.10).
func (s *Stone) ClearHeld() {
	s.IsHeld = false
	s.HeldBy = ""
}
