package segment

import "math"

// AutoWand region-grows from the clicked pixel by color or luminance
// similarity bounded by WandTolerance. With WandContiguous the growth
// is a 4-connected flood fill from the seed; without it every
// sufficiently similar pixel in the image is selected regardless of
// connectivity. The whole selection resolves on pointer-up; dragging
// only moves the seed.
type AutoWand struct {
	active bool
	erase  bool
	seed   Point
}

// ID implements Tool.
func (*AutoWand) ID() ToolID { return ToolAutoWand }

// PointerDown implements Tool.
func (a *AutoWand) PointerDown(_ *ToolContext, pt Point, ps PointerState) {
	a.active = true
	a.erase = ps.Erase
	a.seed = pt
}

// PointerMove implements Tool. The seed follows the pointer so the
// author can adjust the click before release.
func (a *AutoWand) PointerMove(_ *ToolContext, pt Point, _ PointerState) {
	if a.active {
		a.seed = pt
	}
}

// PointerUp implements Tool. Runs the selection into the preview.
func (a *AutoWand) PointerUp(tc *ToolContext, _ Point, _ PointerState) {
	if !a.active {
		return
	}
	a.active = false
	a.apply(tc)
}

// Cancel implements Tool. Idempotent.
func (a *AutoWand) Cancel(*ToolContext) {
	a.active = false
}

// apply computes the wand selection and blends it into the preview.
func (a *AutoWand) apply(tc *ToolContext) {
	r := tc.Raster
	if r == nil {
		return
	}
	sel := tc.Selection
	w, h := r.Width(), r.Height()
	sx, sy := a.seed.Pixel(w, h)
	tol := sel.WandTolerance
	if tol < 0 {
		tol = 0
	}

	diff := wandSimilarity(r, sx, sy, sel.WandSampleAllLayers)
	selected := make([]bool, w*h)
	if sel.WandContiguous {
		floodSelect(selected, diff, w, h, sx, sy, tol)
	} else {
		for i, d := range diff {
			selected[i] = d <= tol
		}
	}

	m := tc.Preview
	if a.erase {
		for i, in := range selected {
			if in {
				m.Set(i%w, i/w, 0)
			}
		}
		return
	}

	// Resolve the selection into its own mask so the post passes only
	// ever grade this gesture's boundary; earlier coverage in the
	// preview stays untouched.
	produced := NewRoomMask(m.Width(), m.Height())
	for i, in := range selected {
		if in {
			produced.Set(i%w, i/w, 255)
		}
	}
	if sel.WandAntiAlias {
		// Grade the selection boundary by coverage fraction instead of
		// leaving a hard binary staircase.
		RefineEdges(produced, 0.75)
	}
	applyFinishers(tc, produced)
	Logger().Debug("auto wand applied",
		"seed_x", sx, "seed_y", sy, "tolerance", tol, "contiguous", sel.WandContiguous)
}

// wandSimilarity returns, per pixel, the color distance in [0, 1] to
// the seed pixel. With sampleAllLayers all RGB channels contribute
// (normalized Euclidean distance); otherwise only luminance is
// compared.
func wandSimilarity(r *Raster, sx, sy int, sampleAllLayers bool) []float64 {
	w, h := r.Width(), r.Height()
	diff := make([]float64, w*h)

	if !sampleAllLayers {
		seed := r.Luma(sx, sy)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				diff[y*w+x] = math.Abs(r.Luma(x, y) - seed)
			}
		}
		return diff
	}

	sr, sg, sb, _ := r.RGBA(sx, sy)
	// sqrt(3) normalizes the RGB distance into [0, 1].
	norm := 255 * math.Sqrt(3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pr, pg, pb, _ := r.RGBA(x, y)
			dr := float64(pr) - float64(sr)
			dg := float64(pg) - float64(sg)
			db := float64(pb) - float64(sb)
			diff[y*w+x] = math.Sqrt(dr*dr+dg*dg+db*db) / norm
		}
	}
	return diff
}

// floodSelect marks the 4-connected region around the seed whose
// members all have similarity within tol.
func floodSelect(selected []bool, diff []float64, w, h, sx, sy int, tol float64) {
	start := sy*w + sx
	if diff[start] > tol {
		// Even the seed is outside tolerance only when tolerance is
		// negative-ish; still select the seed pixel itself.
		selected[start] = true
		return
	}
	stack := []int32{int32(start)}
	selected[start] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := int(cur)%w, int(cur)/w
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			ni := ny*w + nx
			if !selected[ni] && diff[ni] <= tol {
				selected[ni] = true
				stack = append(stack, int32(ni))
			}
		}
	}
}
