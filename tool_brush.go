package segment

import "math"

// Paintbrush stamps filled circles of the configured radius along the
// drag. The primary button adds coverage, Erase removes it.
// BrushHardness controls the falloff from the stamp center: at 1 the
// stamp has a hard edge, at 0 the alpha fades radially from the center.
type Paintbrush struct {
	active bool
	erase  bool
	last   Point
}

// ID implements Tool.
func (*Paintbrush) ID() ToolID { return ToolPaintbrush }

// PointerDown implements Tool. Stamps at the initial position.
func (b *Paintbrush) PointerDown(tc *ToolContext, pt Point, ps PointerState) {
	b.active = true
	b.erase = ps.Erase
	b.last = pt
	b.stamp(tc, pt)
}

// PointerMove implements Tool. Stamps along the segment from the last
// position so fast drags leave no gaps.
func (b *Paintbrush) PointerMove(tc *ToolContext, pt Point, _ PointerState) {
	if !b.active {
		return
	}
	w := float64(tc.Preview.Width())
	h := float64(tc.Preview.Height())
	distPx := math.Hypot((pt.X-b.last.X)*w, (pt.Y-b.last.Y)*h)

	// Stamp at half-radius spacing for a solid stroke.
	spacing := math.Max(1, tc.Selection.BrushRadius/2)
	steps := int(distPx/spacing) + 1
	for i := 1; i <= steps; i++ {
		b.stamp(tc, b.last.Lerp(pt, float64(i)/float64(steps)))
	}
	b.last = pt
}

// PointerUp implements Tool.
func (b *Paintbrush) PointerUp(tc *ToolContext, pt Point, _ PointerState) {
	if !b.active {
		return
	}
	b.stamp(tc, pt)
	b.active = false
}

// Cancel implements Tool. Idempotent; gesture state simply resets.
func (b *Paintbrush) Cancel(*ToolContext) {
	b.active = false
}

// stamp blends one brush circle into the preview at the normalized
// center.
func (b *Paintbrush) stamp(tc *ToolContext, center Point) {
	m := tc.Preview
	radius := tc.Selection.BrushRadius
	hardness := clamp01(tc.Selection.BrushHardness)
	if radius < 0.5 {
		radius = 0.5
	}

	cx := center.X * float64(m.Width())
	cy := center.Y * float64(m.Height())
	x0 := int(cx-radius) - 1
	x1 := int(cx+radius) + 1
	y0 := int(cy-radius) - 1
	y1 := int(cy+radius) + 1

	// Inside hardness*radius the stamp is fully opaque; between there
	// and the rim, alpha falls off smoothly.
	core := radius * hardness
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			var cov float64
			switch {
			case d <= core:
				cov = 1
			case d >= radius:
				cov = 0
			default:
				t := (d - core) / (radius - core)
				cov = 1 - t*t*(3-2*t)
			}
			if cov <= 0 {
				continue
			}
			a := uint8(cov*255 + 0.5)
			cur := m.At(x, y)
			if b.erase {
				if a >= cur {
					m.Set(x, y, 0)
				} else {
					m.Set(x, y, cur-a)
				}
			} else if a > cur {
				m.Set(x, y, a)
			}
		}
	}
}
