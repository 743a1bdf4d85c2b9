package segment

import (
	"math"
	"time"
)

// chamferAxial and chamferDiagonal are the 3-4 chamfer weights. Two
// passes with these integer weights approximate Euclidean distance to
// within a few percent, in time linear in the pixel count.
const (
	chamferAxial    = 3
	chamferDiagonal = 4
	chamferScale    = 3 // divide accumulated weights by this for pixels
)

// SignedDistanceField is a per-pixel scalar field over a mask: negative
// inside the mask, positive outside, magnitude approximately the
// distance in pixels to the nearest mask boundary.
type SignedDistanceField struct {
	Values []float32
	Width  int
	Height int
}

// ComputeSignedDistanceField runs a two-pass chamfer distance transform
// over the mask data (any non-zero alpha counts as inside). Runtime is
// linear in width*height.
//
// Consumers: point-in-mask hit testing (At < 0), feathered boundary
// rendering, and distance-based falloff in mask post-processing.
func ComputeSignedDistanceField(maskData []uint8, width, height int) *SignedDistanceField {
	began := time.Now()
	n := width * height
	inside := make([]bool, n)
	outside := make([]bool, n)
	for i := 0; i < n && i < len(maskData); i++ {
		if maskData[i] != 0 {
			inside[i] = true
		} else {
			outside[i] = true
		}
	}

	distToInside := chamferDistance(inside, width, height)
	distToOutside := chamferDistance(outside, width, height)

	sdf := &SignedDistanceField{
		Values: make([]float32, n),
		Width:  width,
		Height: height,
	}
	for i := 0; i < n; i++ {
		// Inside pixels: distToInside is 0 and distToOutside is the
		// (positive) depth, so the value comes out negative.
		sdf.Values[i] = distToInside[i] - distToOutside[i]
	}
	Logger().Debug("signed distance field computed",
		"width", width, "height", height, "elapsed", time.Since(began))
	return sdf
}

// chamferDistance returns, for every pixel, the approximate distance in
// pixels to the nearest pixel where seed is true. Forward then backward
// raster scan with 3-4 chamfer weights.
func chamferDistance(seed []bool, width, height int) []float32 {
	const inf = float32(math.MaxFloat32 / 4)
	dist := make([]float32, width*height)
	for i := range dist {
		if seed[i] {
			dist[i] = 0
		} else {
			dist[i] = inf
		}
	}

	relax := func(i int, neighbor int, weight float32) {
		if d := dist[neighbor] + weight; d < dist[i] {
			dist[i] = d
		}
	}

	// Forward pass: left, up-left, up, up-right.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if x > 0 {
				relax(i, i-1, chamferAxial)
			}
			if y > 0 {
				relax(i, i-width, chamferAxial)
				if x > 0 {
					relax(i, i-width-1, chamferDiagonal)
				}
				if x < width-1 {
					relax(i, i-width+1, chamferDiagonal)
				}
			}
		}
	}
	// Backward pass: right, down-right, down, down-left.
	for y := height - 1; y >= 0; y-- {
		for x := width - 1; x >= 0; x-- {
			i := y*width + x
			if x < width-1 {
				relax(i, i+1, chamferAxial)
			}
			if y < height-1 {
				relax(i, i+width, chamferAxial)
				if x < width-1 {
					relax(i, i+width+1, chamferDiagonal)
				}
				if x > 0 {
					relax(i, i+width-1, chamferDiagonal)
				}
			}
		}
	}

	for i := range dist {
		dist[i] /= chamferScale
	}
	return dist
}

// At returns the signed distance at (x, y), clamped at the field edges.
func (s *SignedDistanceField) At(x, y int) float32 {
	if x < 0 {
		x = 0
	} else if x >= s.Width {
		x = s.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= s.Height {
		y = s.Height - 1
	}
	return s.Values[y*s.Width+x]
}

// Contains reports whether the normalized point lies inside the mask
// the field was computed from.
func (s *SignedDistanceField) Contains(pt Point) bool {
	x, y := pt.Pixel(s.Width, s.Height)
	return s.At(x, y) < 0
}

// Coverage converts the signed distance at (x, y) into an anti-aliased
// coverage value in [0, 1] with a Hermite smoothstep over the given
// transition half-width in pixels. Used for feathered boundary
// rendering of the fog reveal.
func (s *SignedDistanceField) Coverage(x, y int, halfWidth float32) float64 {
	return smoothstepCoverage(float64(s.At(x, y)), float64(halfWidth))
}

// smoothstepCoverage converts a signed distance to coverage using a
// Hermite smoothstep.
//
// sdf < -halfWidth => 1.0 (fully inside)
// sdf > +halfWidth => 0.0 (fully outside)
// Otherwise        => smooth transition
func smoothstepCoverage(sdf, halfWidth float64) float64 {
	if halfWidth <= 0 {
		if sdf < 0 {
			return 1
		}
		return 0
	}
	if sdf >= halfWidth {
		return 0
	}
	if sdf <= -halfWidth {
		return 1
	}
	t := (sdf + halfWidth) / (2 * halfWidth)
	// Hermite smoothstep: 3t^2 - 2t^3
	return 1 - (t * t * (3 - 2*t))
}
