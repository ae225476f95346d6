// SPDX-License-Identifier: MIT

package sim

import (
	"github.com/chewxy/math32"

	"tidekeep/internal/world"
)

// CarryHeldStones overwrites the pose of every held stone from its
// holder's pose, per spec.md §4.4. Stones whose holder has disconnected
// are self-healed (§7: invariant breach) by clearing the held flag; the
// tick loop picks them up as unheld stones on the next integration pass.
func CarryHeldStones(state *world.State, events *[]Event) {
	state.ForEachStone(func(stone *world.Stone) {
		if !stone.IsHeld {
			return
		}

		holder := state.Session(stone.HeldBy)
		if holder == nil {
			stone.ClearHeld()
			return
		}

		k := holder.HeldIndex(stone.ID)
		if k < 0 {
			// Holder's bookkeeping disagrees with the stone's HeldBy; self-heal.
			stone.ClearHeld()
			return
		}

		yaw := holder.Rotation.Y
		const halfPi = math32.Pi / 2

		stone.Position = world.Vector3{
			X: holder.Position.X - math32.Sin(yaw)*1.0 + math32.Sin(yaw+halfPi)*0.9,
			Y: holder.Position.Y - 0.5 + float32(k)*0.9,
			Z: holder.Position.Z - math32.Cos(yaw)*1.0 + math32.Cos(yaw+halfPi)*0.9,
		}
		stone.Rotation = world.Vector3{X: 0.2, Y: yaw + halfPi, Z: 0.2}
	})

	_ = events // carrier does not itself broadcast; stone_update covers it
}
