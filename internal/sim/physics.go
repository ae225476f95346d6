// SPDX-License-Identifier: MIT

package sim

import (
	"tidekeep/internal/config"
	"tidekeep/internal/world"
)

// IntegrateStones advances every unheld stone by one tick per spec.md §4.2.
// Held stones are excluded: their pose is set by CarryHeldStones instead.
func IntegrateStones(state *world.State, cfg *config.Config, dt float32) {
	m := cfg.Physics.SpeedMultiplier
	mg := 0.2 * m

	state.ForEachStone(func(stone *world.Stone) {
		if stone.IsHeld {
			return
		}
		integrateStone(stone, state.Terrain, cfg, m, mg, dt)
	})
}

func integrateStone(stone *world.Stone, terrain *world.Terrain, cfg *config.Config, m, mg, dt float32) {
	prevX, prevZ := stone.Position.X, stone.Position.Z

	// 2. vertical velocity integration
	stone.Velocity.Y += cfg.World.Gravity * dt * mg

	// 3. position integration
	stone.Position.X += stone.Velocity.X * dt * m
	stone.Position.Y += stone.Velocity.Y * dt * mg
	stone.Position.Z += stone.Velocity.Z * dt * m

	// 4. roll kinematics
	dx := stone.Position.X - prevX
	dz := stone.Position.Z - prevZ
	stone.Rotation.Z = world.WrapAngle(stone.Rotation.Z - dx)
	stone.Rotation.X = world.WrapAngle(stone.Rotation.X + dz)

	// 5. water advection
	applyWaterAdvection(stone, cfg)

	// 6. ground collision
	applyGroundCollision(stone, terrain, cfg, m)

	// 7. velocity cap
	capVelocity(stone, cfg.Stone.MaxVelocity)

	// 8. rest detection
	speed := stone.Velocity.HorizontalSpeed()
	if speed < cfg.Stone.StopThreshold {
		stone.IsStatic = true
	} else if stone.IsStatic {
		stone.IsStatic = false
	}
}

func applyWaterAdvection(stone *world.Stone, cfg *config.Config) {
	x, z := stone.Position.X, stone.Position.Z
	r := world.Vector3{X: x, Z: z}.HorizontalLength()
	rBeach := (cfg.World.Size / 2) * cfg.World.ShoreRadius
	if r <= rBeach || r == 0 {
		return
	}

	df := (r - rBeach) / (0.1 * cfg.World.Size / 2)
	if df > 1 {
		df = 1
	}

	m := cfg.Physics.SpeedMultiplier
	force := cfg.Stone.WaveStrength * m * df
	invR := 1 / r
	stone.Velocity.X += (-x * invR) * force
	stone.Velocity.Z += (-z * invR) * force
	stone.Velocity.Y += 0.16 * cfg.Stone.WaveStrength * m * df
}

func applyGroundCollision(stone *world.Stone, terrain *world.Terrain, cfg *config.Config, m float32) {
	h := terrain.Height(stone.Position.X, stone.Position.Z)
	const stoneHalfHeight = 0.25
	yStar := h + stoneHalfHeight + 0.01

	if stone.Position.Y >= yStar {
		return
	}

	stone.Position.Y = yStar

	if stone.Velocity.Y < -0.05 {
		stone.Velocity.Y = -stone.Velocity.Y * cfg.Stone.Bounce
	} else {
		stone.Velocity.Y = 0
	}

	sh := stone.Velocity.HorizontalSpeed()
	stone.Velocity.X *= cfg.Stone.Friction
	stone.Velocity.Z *= cfg.Stone.Friction

	if sh < 0.5*cfg.Stone.StopThreshold {
		stone.Velocity.X = 0
		stone.Velocity.Z = 0
		if abs32(stone.Velocity.Y) < 0.01 {
			stone.IsStatic = true
			stone.Position.Y = yStar
		}
		return
	}

	slopeX, slopeZ, _ := terrain.Slope(stone.Position.X, stone.Position.Z)
	stone.Velocity.X += slopeX * cfg.Stone.RollFactor * m
	stone.Velocity.Z += slopeZ * cfg.Stone.RollFactor * m
}

func capVelocity(stone *world.Stone, maxVelocity float32) {
	speed := stone.Velocity.Length()
	if speed > maxVelocity && speed > 0 {
		scale := maxVelocity / speed
		stone.Velocity.X *= scale
		stone.Velocity.Y *= scale
		stone.Velocity.Z *= scale
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
