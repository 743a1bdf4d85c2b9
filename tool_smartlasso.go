package segment

// legCommitDist is the normalized drag distance after which the current
// live-wire leg is frozen and a new leg starts from the cursor. Shorter
// legs retrace cheaply on every pointer move; freezing keeps the search
// local.
const legCommitDist = 0.04

// SmartLasso shares the Lasso commit path, but each drag leg is
// resolved through the live-wire tracer against the cost pyramid
// instead of raw samples, so the boundary snaps to detected image
// edges. SmartStickiness blends each leg between the raw cursor
// segment and the fully snapped trace.
type SmartLasso struct {
	active    bool
	erase     bool
	anchor    Point
	committed []Point
	pending   []Point
}

// ID implements Tool.
func (*SmartLasso) ID() ToolID { return ToolSmartLasso }

// PointerDown implements Tool.
func (s *SmartLasso) PointerDown(_ *ToolContext, pt Point, ps PointerState) {
	s.active = true
	s.erase = ps.Erase
	s.anchor = pt
	s.committed = append(s.committed[:0], pt)
	s.pending = nil
}

// PointerMove implements Tool. Retraces the live leg from the current
// anchor to the cursor; once the cursor pulls far enough away, the leg
// freezes and the cursor becomes the next anchor.
func (s *SmartLasso) PointerMove(tc *ToolContext, pt Point, _ PointerState) {
	if !s.active {
		return
	}
	s.pending = s.traceLeg(tc, s.anchor, pt)
	if pt.Distance(s.anchor) >= legCommitDist {
		s.committed = append(s.committed, s.pending...)
		s.anchor = pt
		s.pending = nil
	}
}

// PointerUp implements Tool. Resolves the final leg and fills the
// closed outline into the preview, exactly like Lasso.
func (s *SmartLasso) PointerUp(tc *ToolContext, pt Point, _ PointerState) {
	if !s.active {
		return
	}
	s.active = false
	outline := append(s.committed, s.traceLeg(tc, s.anchor, pt)...)
	fillOutline(tc, outline, s.erase)
	s.committed = nil
	s.pending = nil
}

// Cancel implements Tool. Idempotent; drops all resolved legs.
func (s *SmartLasso) Cancel(*ToolContext) {
	s.active = false
	s.committed = nil
	s.pending = nil
}

// Outline returns the resolved path so far plus the live leg, for
// preview rendering of the in-flight gesture.
func (s *SmartLasso) Outline() []Point {
	out := make([]Point, 0, len(s.committed)+len(s.pending))
	out = append(out, s.committed...)
	return append(out, s.pending...)
}

// traceLeg resolves one leg from a to b. With no pyramid (for example
// after a raster failure) the leg degrades to the raw segment, keeping
// the tool usable.
func (s *SmartLasso) traceLeg(tc *ToolContext, a, b Point) []Point {
	if tc.Pyramid.NumLevels() == 0 {
		return []Point{b}
	}
	traced := TraceLiveWire(tc.Pyramid, a, b)
	stick := clamp01(tc.Selection.SmartStickiness * tc.Selection.SnapStrength)
	if len(traced) < 2 || stick >= 1 {
		return traced
	}

	// Blend each traced point toward its raw-segment counterpart.
	out := make([]Point, len(traced))
	for i, p := range traced {
		t := float64(i) / float64(len(traced)-1)
		raw := a.Lerp(b, t)
		out[i] = raw.Lerp(p, stick)
	}
	return out
}
