// SPDX-License-Identifier: MIT

package world

import "testing"

func TestTerrainHeightWithinClamps(t *testing.T) {
	terrain := NewTerrain(1000, 64, 18, 18, 35, -25, 4)

	for x := float32(-480); x <= 480; x += 97 {
		for z := float32(-480); z <= 480; z += 131 {
			h := terrain.Height(x, z)
			if h < -25.01 || h > 35.01 {
				t.Errorf("Height(%v, %v) = %v, want within [-25, 35]", x, z, h)
			}
		}
	}
}

func TestTerrainSlopeMagnitudeNonNegative(t *testing.T) {
	terrain := NewTerrain(1000, 64, 18, 18, 35, -25, 4)
	_, _, mag := terrain.Slope(50, 50)
	if mag < 0 {
		t.Errorf("Slope magnitude = %v, want >= 0", mag)
	}
}

func TestTerrainHeightOutsideGridReturnsZero(t *testing.T) {
	terrain := NewTerrain(1000, 64, 18, 18, 35, -25, 4)
	if h := terrain.Height(100000, 100000); h != 0 {
		t.Errorf("Height far outside grid = %v, want 0", h)
	}
}
