// SPDX-License-Identifier: MIT

package sim

import (
	"math/rand"
	"time"

	"tidekeep/internal/config"
	"tidekeep/internal/world"
)

// Spawner tracks the beach-spawn cadence from spec.md §4.3.
type Spawner struct {
	LastSpawn time.Time
	Interval  time.Duration
}

func NewSpawner(interval time.Duration) *Spawner {
	return &Spawner{LastSpawn: time.Time{}, Interval: interval}
}

// Maybe spawns at most one stone if the cap and cadence allow it, per §4.3.
func (sp *Spawner) Maybe(state *world.State, cfg *config.Config, now time.Time, events *[]Event) {
	if state.StoneCount() >= cfg.Stone.MaxCount {
		return
	}
	if !sp.LastSpawn.IsZero() && now.Sub(sp.LastSpawn) < sp.Interval {
		return
	}

	sp.LastSpawn = now

	half := cfg.World.Size / 2
	edgeDist := 1.2 * cfg.World.ShoreRadius * half
	perp := (rand.Float32()*2 - 1) * 0.3 * cfg.World.Size

	// The offset axis is perpendicular to the edge's inward-facing axis;
	// the small inward nudge (§4.3) is applied on that same offset axis.
	var x, z float32
	var velX, velZ float32
	switch rand.Intn(4) {
	case 0: // north edge (z = -edgeDist)
		x, z = perp, -edgeDist
		velX = 0.4 * (rand.Float32()*2 - 1)
	case 1: // south edge
		x, z = perp, edgeDist
		velX = 0.4 * (rand.Float32()*2 - 1)
	case 2: // west edge
		x, z = -edgeDist, perp
		velZ = 0.4 * (rand.Float32()*2 - 1)
	default: // east edge
		x, z = edgeDist, perp
		velZ = 0.4 * (rand.Float32()*2 - 1)
	}

	stone := world.Stone{
		ID:       world.NewStoneID(),
		Position: world.Vector3{X: x, Y: -8, Z: z},
		Velocity: world.Vector3{X: velX, Y: 1.5, Z: velZ},
	}

	state.AddStone(&stone)
	*events = append(*events, StoneSpawned{Stone: stone})
}
