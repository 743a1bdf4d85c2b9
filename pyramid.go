package segment

// CostPyramid holds pre-computed downscaled versions of the edge-cost
// field.
//
// Level 0 is the full-resolution cost field; each subsequent level is
// half the linear size of the previous one, produced with a box filter
// (2x2 average). The live-wire tracer runs an unrestricted search at
// the coarsest level and restricts finer levels to a corridor around
// the coarse result, which is what keeps per-pointer-move tracing
// interactive.
type CostPyramid struct {
	levels []*CostLevel
}

// BuildCostPyramid computes the edge-cost field for the raster and
// downsamples it into a pyramid. Options default to 4 levels and one
// smoothing pass; levels are capped so the coarsest level never drops
// below 8 pixels on a side.
//
// Construction is synchronous CPU-bound work, linear in the pixel
// count. Returns nil for a nil raster.
func BuildCostPyramid(r *Raster, opts ...Option) *CostPyramid {
	if r == nil {
		return nil
	}
	o := applyOptions(opts)

	p := &CostPyramid{}
	base := computeCostField(r, o.smoothIterations)
	p.levels = append(p.levels, base)

	for len(p.levels) < o.levels {
		prev := p.levels[len(p.levels)-1]
		if prev.Width < 16 || prev.Height < 16 {
			break
		}
		p.levels = append(p.levels, downsampleCosts(prev))
	}

	Logger().Debug("cost pyramid built",
		"width", base.Width, "height", base.Height, "levels", len(p.levels))
	return p
}

// downsampleCosts creates a half-size level using a box filter
// (2x2 average), handling odd dimensions by clamping the sample.
func downsampleCosts(src *CostLevel) *CostLevel {
	dstW := max(1, src.Width/2)
	dstH := max(1, src.Height/2)
	dst := &CostLevel{Width: dstW, Height: dstH, Costs: make([]float32, dstW*dstH)}

	for dy := 0; dy < dstH; dy++ {
		for dx := 0; dx < dstW; dx++ {
			sx, sy := dx*2, dy*2
			sum := src.At(sx, sy) +
				src.At(sx+1, sy) +
				src.At(sx, sy+1) +
				src.At(sx+1, sy+1)
			dst.Costs[dy*dstW+dx] = sum / 4
		}
	}
	return dst
}

// NumLevels returns the number of levels in the pyramid.
// Returns 0 for a nil pyramid.
func (p *CostPyramid) NumLevels() int {
	if p == nil {
		return 0
	}
	return len(p.levels)
}

// Level returns the cost field at level n. Level 0 matches the source
// resolution. Returns nil if n is out of range.
func (p *CostPyramid) Level(n int) *CostLevel {
	if p == nil || n < 0 || n >= len(p.levels) {
		return nil
	}
	return p.levels[n]
}

// Base returns the full-resolution level, or nil for an empty pyramid.
func (p *CostPyramid) Base() *CostLevel {
	return p.Level(0)
}
