package segment

import "math"

// CostLevel is a single resolution of the edge-cost field: one float
// per pixel in [0, 1], where strong image edges have low cost and flat
// regions have high cost. The live-wire tracer prefers low-cost pixels,
// so traced boundaries cling to edges.
type CostLevel struct {
	Width  int
	Height int
	Costs  []float32
}

// At returns the cost at (x, y), clamped at the level edges.
func (l *CostLevel) At(x, y int) float32 {
	if x < 0 {
		x = 0
	} else if x >= l.Width {
		x = l.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= l.Height {
		y = l.Height - 1
	}
	return l.Costs[y*l.Width+x]
}

// computeCostField derives the full-resolution edge cost from the
// raster's luminance channel: Sobel gradient magnitude, inverted and
// normalized so edges are cheap, then smoothIterations passes of 3x3
// box smoothing to stabilize the surface against pixel noise.
func computeCostField(r *Raster, smoothIterations int) *CostLevel {
	w, h := r.Width(), r.Height()
	level := &CostLevel{Width: w, Height: h, Costs: make([]float32, w*h)}

	maxMag := 0.0
	mags := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Sobel kernels over the luminance channel. Edge pixels
			// reuse the clamped border sample.
			tl := r.Luma(x-1, y-1)
			tc := r.Luma(x, y-1)
			tr := r.Luma(x+1, y-1)
			ml := r.Luma(x-1, y)
			mr := r.Luma(x+1, y)
			bl := r.Luma(x-1, y+1)
			bc := r.Luma(x, y+1)
			br := r.Luma(x+1, y+1)

			gx := (tr + 2*mr + br) - (tl + 2*ml + bl)
			gy := (bl + 2*bc + br) - (tl + 2*tc + tr)
			mag := math.Hypot(gx, gy)
			mags[y*w+x] = mag
			if mag > maxMag {
				maxMag = mag
			}
		}
	}

	if maxMag == 0 {
		// Perfectly flat image: uniform maximal cost.
		for i := range level.Costs {
			level.Costs[i] = 1
		}
		return level
	}
	for i, mag := range mags {
		level.Costs[i] = float32(1 - mag/maxMag)
	}

	for iter := 0; iter < smoothIterations; iter++ {
		smoothCosts(level)
	}
	return level
}

// smoothCosts applies one in-place 3x3 box-blur pass.
func smoothCosts(l *CostLevel) {
	w, h := l.Width, l.Height
	out := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float32
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					sum += l.At(x+dx, y+dy)
				}
			}
			out[y*w+x] = sum / 9
		}
	}
	l.Costs = out
}
