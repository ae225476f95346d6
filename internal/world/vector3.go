// SPDX-License-Identifier: MIT

package world

import "github.com/chewxy/math32"

// Vector3 is a tuple of three finite real numbers, matching spec.md §3.
// Value semantics throughout, mirroring mk48's world.Vec2f.
type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3) Mul(factor float32) Vector3 {
	return Vector3{v.X * factor, v.Y * factor, v.Z * factor}
}

func (v Vector3) AddScaled(o Vector3, factor float32) Vector3 {
	return Vector3{v.X + o.X*factor, v.Y + o.Y*factor, v.Z + o.Z*factor}
}

// HorizontalDistance returns the distance between v and o ignoring Y.
func (v Vector3) HorizontalDistance(o Vector3) float32 {
	return math32.Sqrt(v.HorizontalDistanceSquared(o))
}

func (v Vector3) HorizontalDistanceSquared(o Vector3) float32 {
	dx := v.X - o.X
	dz := v.Z - o.Z
	return dx*dx + dz*dz
}

// HorizontalLength is sqrt(x^2 + z^2), used for the water-advection radius.
func (v Vector3) HorizontalLength() float32 {
	return math32.Hypot(v.X, v.Z)
}

func (v Vector3) HorizontalSpeed() float32 {
	return math32.Hypot(v.X, v.Z)
}

// Length is the full 3D Euclidean norm, used for the velocity cap.
func (v Vector3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func clamp32(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

const twoPi = math32.Pi * 2

// WrapAngle reduces a into [0, 2π), matching the "modulo 2π" rule in §4.2.
func WrapAngle(a float32) float32 {
	a = math32.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}
