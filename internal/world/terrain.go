// SPDX-License-Identifier: MIT

package world

import "github.com/chewxy/math32"

// Terrain is the immutable heightfield over the square island described in
// spec.md §3/§4.1. Unlike mk48's terrain (a chunked, sculptable,
// perlin-seeded heightmap streamed to clients over the wire), Tidekeep's
// terrain is a small closed-form function: there is nothing to stream, no
// sculpting, no repair pass, so the whole package collapses to one pure
// value with an N×N cached grid for the bilinear lookup.
type Terrain struct {
	size       float32
	gridSize   int
	xScale     float32
	yScale     float32
	maxHeight  float32
	minHeight  float32
	edgeFall   float32
	samples    [][]float32 // samples[i][j], i,j in [0, gridSize)
}

// NewTerrain builds the N×N sample grid once at startup.
func NewTerrain(size float32, gridSize int, xScale, yScale, maxHeight, minHeight, edgeFalloff float32) *Terrain {
	t := &Terrain{
		size:      size,
		gridSize:  gridSize,
		xScale:    xScale,
		yScale:    yScale,
		maxHeight: maxHeight,
		minHeight: minHeight,
		edgeFall:  edgeFalloff,
	}
	t.samples = make([][]float32, gridSize)
	for i := 0; i < gridSize; i++ {
		t.samples[i] = make([]float32, gridSize)
		for j := 0; j < gridSize; j++ {
			t.samples[i][j] = t.sampleHeight(i, j)
		}
	}
	return t
}

// sampleHeight computes h(i, j) per spec.md §3:
//
//	h(i, j) = max(H_min, sin(i/xs) * sin(j/ys) * H_max * e(i, j))
//	e(i, j) = max(0, 1 - (max(|nx|, |ny|) * 1.0)^k)
func (t *Terrain) sampleHeight(i, j int) float32 {
	n := float32(t.gridSize - 1)
	nx := (float32(i)/n)*2 - 1 // normalized grid coordinate in [-1, 1]
	ny := (float32(j)/n)*2 - 1

	edgeDist := math32.Max(math32.Abs(nx), math32.Abs(ny))
	e := 1 - math32.Pow(edgeDist, t.edgeFall)
	if e < 0 {
		e = 0
	}

	h := math32.Sin(float32(i)/t.xScale) * math32.Sin(float32(j)/t.yScale) * t.maxHeight * e
	if h < t.minHeight {
		h = t.minHeight
	}
	return h
}

// gridCoord maps a continuous world coordinate to fractional grid index.
func (t *Terrain) gridCoord(w float32) (idx int, frac float32) {
	n := float32(t.gridSize - 1)
	// world coordinate in [-size/2, size/2] maps to grid [0, gridSize-1]
	g := ((w/t.size)+0.5)*n
	idx = int(math32.Floor(g))
	frac = g - float32(idx)
	return
}

// Height returns the bilinearly-interpolated height at world (x, z).
// Per spec.md §3, the source swaps x and z when indexing the heightmap;
// this is almost certainly a latent upstream bug, but the client makes the
// same swap, so it is preserved deliberately here rather than "fixed" —
// see spec.md §9 and DESIGN.md.
func (t *Terrain) Height(x, z float32) float32 {
	// Swapped on purpose: z drives the i index, x drives the j index.
	i, fi := t.gridCoord(z)
	j, fj := t.gridCoord(x)

	if i < 0 || j < 0 || i >= t.gridSize-1 || j >= t.gridSize-1 {
		return 0
	}

	h00 := t.samples[i][j]
	h10 := t.samples[i+1][j]
	h01 := t.samples[i][j+1]
	h11 := t.samples[i+1][j+1]

	h0 := h00 + (h10-h00)*fi
	h1 := h01 + (h11-h01)*fi
	return h0 + (h1-h0)*fj
}

// slopeSampleDistance is the finite-difference sample distance from §4.1.
const slopeSampleDistance = 2.0

// Slope returns (slopeX, slopeZ, magnitude) at world (x, z), per §4.1:
//
//	slopeX = (H_west - H_east) / (2d)
//	slopeZ = (H_north - H_south) / (2d)
func (t *Terrain) Slope(x, z float32) (slopeX, slopeZ, magnitude float32) {
	const d = slopeSampleDistance
	hWest := t.Height(x-d, z)
	hEast := t.Height(x+d, z)
	hNorth := t.Height(x, z-d)
	hSouth := t.Height(x, z+d)

	slopeX = (hWest - hEast) / (2 * d)
	slopeZ = (hNorth - hSouth) / (2 * d)
	magnitude = math32.Hypot(slopeX, slopeZ)
	return
}
