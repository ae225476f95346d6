// SPDX-License-Identifier: MIT

package world

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestWrapAngleReducesIntoRange(t *testing.T) {
	cases := []float32{0, twoPi, -0.0001, 10 * math32.Pi, -10 * math32.Pi}
	for _, a := range cases {
		got := WrapAngle(a)
		if got < 0 || got >= twoPi {
			t.Errorf("WrapAngle(%v) = %v, want in [0, 2π)", a, got)
		}
	}
}

func TestVector3HorizontalLengthIgnoresY(t *testing.T) {
	v := Vector3{X: 3, Y: 1000, Z: 4}
	if got := v.HorizontalLength(); got != 5 {
		t.Errorf("HorizontalLength() = %v, want 5", got)
	}
}

func TestVector3AddScaled(t *testing.T) {
	v := Vector3{X: 1, Y: 1, Z: 1}
	got := v.AddScaled(Vector3{X: 2, Y: 2, Z: 2}, 3)
	want := Vector3{X: 7, Y: 7, Z: 7}
	if got != want {
		t.Errorf("AddScaled() = %v, want %v", got, want)
	}
}
