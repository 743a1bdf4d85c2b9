package segment

// DilateRadius is the uniform dilation distance, in pixels, applied
// when a tool's dilate flag is set. It compensates for wall thickness
// and rendering gaps between adjacent rooms.
const DilateRadius = 5

// Dilate grows the mask's covered area outward by radius pixels using
// iterated 3x3 max filtering (one pass per pixel of radius). Graded
// alpha is preserved: each output pixel takes the maximum alpha within
// the structuring element.
func Dilate(m *RoomMask, radius int) {
	if m == nil || radius < 1 {
		return
	}
	w, h := m.Width(), m.Height()
	src := m.Data()
	tmp := make([]uint8, w*h)

	for pass := 0; pass < radius; pass++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				best := src[y*w+x]
				for dy := -1; dy <= 1; dy++ {
					ny := y + dy
					if ny < 0 || ny >= h {
						continue
					}
					for dx := -1; dx <= 1; dx++ {
						nx := x + dx
						if nx < 0 || nx >= w {
							continue
						}
						if v := src[ny*w+nx]; v > best {
							best = v
						}
					}
				}
				tmp[y*w+x] = best
			}
		}
		copy(src, tmp)
	}
	m.MarkDirty()
}

// Feather replaces the mask's alpha with a smooth falloff across its
// boundary: fully opaque deeper than radius pixels inside, transparent
// past radius outside, a Hermite ramp between. radius <= 0 leaves the
// mask untouched.
func Feather(m *RoomMask, radius float64) {
	if m == nil || radius <= 0 {
		return
	}
	w, h := m.Width(), m.Height()
	sdf := ComputeSignedDistanceField(m.Data(), w, h)
	data := m.Data()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cov := smoothstepCoverage(float64(sdf.At(x, y)), radius)
			data[y*w+x] = uint8(cov*255 + 0.5)
		}
	}
	m.MarkDirty()
}

// RefineEdges cleans a raw selection boundary: the mask is first
// binarized (any alpha counts as covered), then re-graded with a
// distance-based ramp of the given half-width. This removes the jagged
// single-pixel staircase a flood fill leaves behind without moving the
// boundary.
func RefineEdges(m *RoomMask, width float64) {
	if m == nil || width <= 0 {
		return
	}
	data := m.Data()
	for i, v := range data {
		if v != 0 {
			data[i] = 255
		}
	}
	m.MarkDirty()
	Feather(m, width)
}
