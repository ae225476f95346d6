// SPDX-License-Identifier: MIT

package world

import "time"

// DestructionPhase is a phase of the cloud-initiated destruction FSM
// (spec.md §4.7).
type DestructionPhase string

const (
	PhaseMoving   DestructionPhase = "moving"
	PhaseRaining  DestructionPhase = "raining"
	PhaseFlooding DestructionPhase = "flooding"
)

// Cloud is a wandering weather agent that can initiate tower destruction
// (spec.md §3). Named Cloud per the wire protocol; unrelated to the
// internal/report package's AWS "cloud" concept (mk48 has the same
// coincidental naming split between a game Cloud entity on the client and
// an infra Cloud type in its server package).
type Cloud struct {
	ID        CloudID `json:"cloudId"`
	Position  Vector3 `json:"position"`
	Direction Vector3 `json:"direction"` // unit vector, Y == 0
	Speed     float32 `json:"speed"`     // in [0.5, 2.0]
}

// DestructionSequence is the three-phase process that removes a tower
// (spec.md §3/§4.7). Owns the cloud's movement for its duration.
type DestructionSequence struct {
	CloudID       CloudID          `json:"cloudId"`
	TowerID       TowerID          `json:"towerId"`
	TowerIndex    int              `json:"towerIndex"`
	TowerPosition Vector3          `json:"towerPosition"`
	StartPosition Vector3          `json:"startPosition"` // cloud pose at sequence start
	Phase         DestructionPhase `json:"phase"`
	StartTime     time.Time        `json:"-"`
	MovingFor     time.Duration    `json:"-"`
	RainingFor    time.Duration    `json:"-"`
	FloodingFor   time.Duration    `json:"-"`
}

// ReturnPath is the post-destruction cloud trajectory back to idle
// wandering (spec.md §3/§4.7).
type ReturnPath struct {
	CloudID       CloudID   `json:"-"`
	StartPosition Vector3   `json:"-"`
	EndPosition   Vector3   `json:"-"`
	StartTime     time.Time `json:"-"`
	Duration      time.Duration `json:"-"`
}
