package segment

import "sort"

// MaskToPolygon contour-traces the outer boundary of the mask's largest
// connected alpha region into an ordered, closed, non-self-intersecting
// vertex ring in normalized coordinates. The last vertex implicitly
// connects back to the first.
//
// The walk runs on the pixel-corner lattice, so rasterizing the result
// with FillPolygon reproduces the region's pixel coverage exactly for
// axis-aligned shapes. Masks are assumed simply connected: interior
// holes and secondary regions are ignored.
//
// Returns nil for an empty mask.
func MaskToPolygon(m *RoomMask) []Point {
	if m == nil || !m.HasCoverage() {
		return nil
	}
	w, h := m.Width(), m.Height()

	label, start := largestRegion(m)
	if start < 0 {
		return nil
	}
	inside := func(x, y int) bool {
		if x < 0 || x >= w || y < 0 || y >= h {
			return false
		}
		return label[y*w+x]
	}

	// Walk pixel-edge segments keeping inside pixels on the left of the
	// travel direction. The start corner is the top-left corner of the
	// first covered pixel in scan order, where the only legal move is
	// straight down.
	sx, sy := start%w, start/w
	corners := traceCorners(inside, sx, sy)
	corners = dropCollinear(corners)

	poly := make([]Point, len(corners))
	for i, c := range corners {
		poly[i] = Point{X: float64(c[0]) / float64(w), Y: float64(c[1]) / float64(h)}
	}
	return poly
}

// largestRegion labels 4-connected covered regions and returns a
// bitmask selecting the largest one, plus the scan-order index of its
// first pixel. Returns start -1 when nothing is covered.
func largestRegion(m *RoomMask) ([]bool, int) {
	w, h := m.Width(), m.Height()
	data := m.Data()
	labels := make([]int32, w*h)
	bestLabel, bestSize, bestStart := int32(0), 0, -1

	next := int32(0)
	var stack []int32
	for i := range labels {
		if data[i] == 0 || labels[i] != 0 {
			continue
		}
		next++
		size := 0
		stack = append(stack[:0], int32(i))
		labels[i] = next
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++
			x, y := int(cur)%w, int(cur)/w
			for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := int32(ny*w + nx)
				if data[ni] != 0 && labels[ni] == 0 {
					labels[ni] = next
					stack = append(stack, ni)
				}
			}
		}
		if size > bestSize {
			bestLabel, bestSize, bestStart = next, size, i
		}
	}
	if bestStart < 0 {
		return nil, -1
	}

	mask := make([]bool, w*h)
	for i, l := range labels {
		mask[i] = l == bestLabel
	}
	return mask, bestStart
}

// traceCorners walks the corner lattice around the region containing
// pixel (sx, sy), starting at that pixel's top-left corner heading
// down, and returns the visited corners in order.
func traceCorners(inside func(int, int) bool, sx, sy int) [][2]int {
	type dir struct{ dx, dy int }
	right := func(d dir) dir { return dir{-d.dy, d.dx} }
	left := func(d dir) dir { return dir{d.dy, -d.dx} }

	// legal reports whether moving in direction d from corner (x, y)
	// keeps an inside pixel on the left and an outside pixel on the
	// right of travel.
	legal := func(x, y int, d dir) bool {
		switch d {
		case dir{1, 0}: // right
			return inside(x, y-1) && !inside(x, y)
		case dir{-1, 0}: // left
			return inside(x-1, y) && !inside(x-1, y-1)
		case dir{0, -1}: // up
			return inside(x-1, y-1) && !inside(x, y-1)
		default: // down
			return inside(x, y) && !inside(x-1, y)
		}
	}

	x, y := sx, sy
	d := dir{0, 1}
	var corners [][2]int
	// Generous bound: every edge segment is visited at most once.
	const maxSteps = 1 << 24

	for step := 0; step < maxSteps; step++ {
		corners = append(corners, [2]int{x, y})
		x += d.dx
		y += d.dy
		if x == sx && y == sy {
			break
		}
		// Prefer the right turn at saddle corners so diagonally
		// touching pixels trace as separate 4-connected regions.
		if r := right(d); legal(x, y, r) {
			d = r
		} else if legal(x, y, d) {
			// straight on
		} else if l := left(d); legal(x, y, l) {
			d = l
		} else {
			break // isolated corner, should not happen on a labeled region
		}
	}
	return corners
}

// dropCollinear removes vertices lying on the segment between their
// neighbors, treating the ring as closed.
func dropCollinear(pts [][2]int) [][2]int {
	if len(pts) < 3 {
		return pts
	}
	out := make([][2]int, 0, len(pts))
	n := len(pts)
	for i := 0; i < n; i++ {
		a := pts[(i+n-1)%n]
		b := pts[i]
		c := pts[(i+1)%n]
		cross := (b[0]-a[0])*(c[1]-b[1]) - (b[1]-a[1])*(c[0]-b[0])
		if cross != 0 {
			out = append(out, b)
		}
	}
	return out
}

// PolygonContains reports whether the normalized point lies inside the
// closed ring, by even-odd ray casting. Used as the point-in-mask
// fallback when no distance field is at hand.
func PolygonContains(poly []Point, pt Point) bool {
	if len(poly) < 3 {
		return false
	}
	in := false
	j := len(poly) - 1
	for i := 0; i < len(poly); i++ {
		a, b := poly[i], poly[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			xCross := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if pt.X < xCross {
				in = !in
			}
		}
		j = i
	}
	return in
}

// FillPolygon rasterizes the closed normalized ring into the mask with
// even-odd scanline fill, writing value over every covered pixel.
// Rings with fewer than 3 vertices fill nothing.
func FillPolygon(m *RoomMask, poly []Point, value uint8) {
	if m == nil || len(poly) < 3 {
		return
	}
	w, h := m.Width(), m.Height()

	// Convert to pixel space once.
	px := make([]float64, len(poly))
	py := make([]float64, len(poly))
	minY, maxY := float64(h), 0.0
	for i, p := range poly {
		px[i] = p.X * float64(w)
		py[i] = p.Y * float64(h)
		if py[i] < minY {
			minY = py[i]
		}
		if py[i] > maxY {
			maxY = py[i]
		}
	}

	y0 := max(0, int(minY)-1)
	y1 := min(h-1, int(maxY)+1)
	var xs []float64
	for y := y0; y <= y1; y++ {
		cy := float64(y) + 0.5
		xs = xs[:0]
		j := len(poly) - 1
		for i := 0; i < len(poly); i++ {
			ay, by := py[i], py[j]
			if (ay > cy) != (by > cy) {
				xs = append(xs, px[i]+(cy-ay)/(by-ay)*(px[j]-px[i]))
			}
			j = i
		}
		sort.Float64s(xs)
		for k := 0; k+1 < len(xs); k += 2 {
			start := int(xs[k] + 0.5)
			end := int(xs[k+1] - 0.5)
			for x := max(0, start); x <= min(w-1, end); x++ {
				m.Set(x, y, value)
			}
		}
	}
}
