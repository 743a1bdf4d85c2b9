package segment

// Bounds is the tight bounding box of a mask's non-zero alpha, in
// normalized image coordinates. It never spans the full image unless
// coverage genuinely does; empty masks have a zero Bounds.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Empty reports whether the bounds enclose no area.
func (b Bounds) Empty() bool {
	return b.MaxX <= b.MinX || b.MaxY <= b.MinY
}

// RoomMask is a bounded raster alpha mask representing a room's
// footprint on a map image. Values range from 0 (outside) to 255
// (fully inside). The invariant len(Data()) == Width()*Height() always
// holds; Bounds() reflects the tight box of non-zero alpha.
type RoomMask struct {
	width  int
	height int
	data   []uint8

	// Coverage and bounds are cached and recomputed lazily after writes.
	dirty       bool
	hasCoverage bool
	bounds      Bounds
}

// NewRoomMask creates an empty mask with the given pixel dimensions.
func NewRoomMask(width, height int) *RoomMask {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &RoomMask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// Width returns the mask width in pixels.
func (m *RoomMask) Width() int { return m.width }

// Height returns the mask height in pixels.
func (m *RoomMask) Height() int { return m.height }

// Data returns the underlying alpha buffer. Mutating it directly
// requires a MarkDirty call so cached coverage and bounds recompute.
func (m *RoomMask) Data() []uint8 { return m.data }

// At returns the alpha value at (x, y).
// Returns 0 for coordinates outside the mask.
func (m *RoomMask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Set sets the alpha value at (x, y).
// Coordinates outside the mask are ignored.
func (m *RoomMask) Set(x, y int, value uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = value
	m.dirty = true
}

// MarkDirty invalidates the cached coverage flag and bounds after the
// caller wrote to Data() directly.
func (m *RoomMask) MarkDirty() { m.dirty = true }

// Clear sets all alpha values to 0.
func (m *RoomMask) Clear() {
	for i := range m.data {
		m.data[i] = 0
	}
	m.dirty = false
	m.hasCoverage = false
	m.bounds = Bounds{}
}

// Clone deep-copies the mask, buffer and cached bounds included.
// The clone never aliases the original's buffer.
func (m *RoomMask) Clone() *RoomMask {
	clone := NewRoomMask(m.width, m.height)
	copy(clone.data, m.data)
	clone.dirty = m.dirty
	clone.hasCoverage = m.hasCoverage
	clone.bounds = m.bounds
	return clone
}

// HasCoverage reports whether any alpha is non-zero. The result is
// cached between writes, so repeated calls on an unchanged mask are
// O(1).
func (m *RoomMask) HasCoverage() bool {
	if m.dirty {
		m.recompute()
	}
	return m.hasCoverage
}

// Bounds returns the tight bounding box of non-zero alpha in normalized
// coordinates. Empty masks return a zero Bounds.
func (m *RoomMask) Bounds() Bounds {
	if m.dirty {
		m.recompute()
	}
	return m.bounds
}

// recompute rescans the buffer for coverage and the tight bounding box.
func (m *RoomMask) recompute() {
	minX, minY := m.width, m.height
	maxX, maxY := -1, -1
	for y := 0; y < m.height; y++ {
		row := m.data[y*m.width : (y+1)*m.width]
		for x, v := range row {
			if v == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			maxY = y
		}
	}
	m.dirty = false
	if maxX < 0 {
		m.hasCoverage = false
		m.bounds = Bounds{}
		return
	}
	m.hasCoverage = true
	m.bounds = Bounds{
		MinX: float64(minX) / float64(m.width),
		MinY: float64(minY) / float64(m.height),
		MaxX: float64(maxX+1) / float64(m.width),
		MaxY: float64(maxY+1) / float64(m.height),
	}
}

// Contains reports whether the normalized point falls on a pixel with
// non-zero alpha. This is the cheap point-in-mask query the reveal
// renderer uses for hit testing; consumers needing a feathered answer
// compute a SignedDistanceField instead.
func (m *RoomMask) Contains(pt Point) bool {
	x, y := pt.Pixel(m.width, m.height)
	return m.At(x, y) != 0
}

// CoveredPixels counts pixels with non-zero alpha.
func (m *RoomMask) CoveredPixels() int {
	n := 0
	for _, v := range m.data {
		if v != 0 {
			n++
		}
	}
	return n
}
