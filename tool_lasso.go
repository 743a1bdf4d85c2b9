package segment

// lassoMinSampleDist is the minimum normalized distance between stored
// pointer samples so slow drags do not pile up thousands of vertices.
const lassoMinSampleDist = 0.002

// Lasso accumulates raw pointer samples into a polygon, closes it on
// pointer-up, and rasterizes the enclosed area with a scanline fill.
type Lasso struct {
	active bool
	erase  bool
	points []Point
}

// ID implements Tool.
func (*Lasso) ID() ToolID { return ToolLasso }

// PointerDown implements Tool.
func (l *Lasso) PointerDown(_ *ToolContext, pt Point, ps PointerState) {
	l.active = true
	l.erase = ps.Erase
	l.points = append(l.points[:0], pt)
}

// PointerMove implements Tool.
func (l *Lasso) PointerMove(_ *ToolContext, pt Point, _ PointerState) {
	if !l.active {
		return
	}
	if pt.Distance(l.points[len(l.points)-1]) < lassoMinSampleDist {
		return
	}
	l.points = append(l.points, pt)
}

// PointerUp implements Tool. Closes the outline and fills it into the
// preview; degenerate outlines (fewer than 3 vertices) fill nothing.
func (l *Lasso) PointerUp(tc *ToolContext, pt Point, _ PointerState) {
	if !l.active {
		return
	}
	l.active = false
	if pt.Distance(l.points[len(l.points)-1]) >= lassoMinSampleDist {
		l.points = append(l.points, pt)
	}
	fillOutline(tc, l.points, l.erase)
	l.points = l.points[:0]
}

// Cancel implements Tool. Idempotent; drops the accumulated outline.
func (l *Lasso) Cancel(*ToolContext) {
	l.active = false
	l.points = l.points[:0]
}

// fillOutline rasterizes a closed outline into the preview, additively
// or subtractively. Additive fills run the shared post passes on a
// scratch mask first so they cannot touch coverage from earlier
// gestures.
func fillOutline(tc *ToolContext, outline []Point, erase bool) {
	if len(outline) < 3 {
		return
	}
	if erase {
		FillPolygon(tc.Preview, outline, 0)
		return
	}
	produced := NewRoomMask(tc.Preview.Width(), tc.Preview.Height())
	FillPolygon(produced, outline, 255)
	applyFinishers(tc, produced)
}
