package segment

// PointerState carries the modifier state of a pointer event.
type PointerState struct {
	// Erase selects subtractive application (secondary button or
	// modifier held): the gesture removes coverage instead of adding.
	Erase bool
}

// ToolContext is everything a tool may touch during a gesture: the
// source raster, the cost pyramid, the live tool parameters, and the
// preview mask. Tools mutate Preview only; the committed selection and
// all presentation state belong to the store and its subscribers.
type ToolContext struct {
	Raster    *Raster
	Pyramid   *CostPyramid
	Selection *SelectionState

	// Preview is the draft mask for the in-flight gesture. It starts
	// as a deep copy of the committed selection, so erasing gestures
	// preview correctly, and replaces the selection on a valid
	// pointer-up.
	Preview *RoomMask
}

// Tool is one segmentation tool. Exactly one gesture is live at a time:
// PointerDown begins it, PointerMove extends it, PointerUp completes it
// (the store then promotes the preview), and Cancel discards it.
//
// Cancel must be idempotent and must leave the committed selection
// untouched; it runs on Escape, pointer-leave, and tool switches.
type Tool interface {
	ID() ToolID
	PointerDown(tc *ToolContext, pt Point, ps PointerState)
	PointerMove(tc *ToolContext, pt Point, ps PointerState)
	PointerUp(tc *ToolContext, pt Point, ps PointerState)
	Cancel(tc *ToolContext)
}

// toolForID returns the tool implementation for id. Unrecognized ids
// fall back to SmartLasso, the documented default.
func toolForID(id ToolID) Tool {
	switch id {
	case ToolPaintbrush:
		return &Paintbrush{}
	case ToolLasso:
		return &Lasso{}
	case ToolSmartLasso:
		return &SmartLasso{}
	case ToolAutoWand:
		return &AutoWand{}
	default:
		Logger().Warn("unknown tool id, using smart lasso", "id", string(id))
		return &SmartLasso{}
	}
}

// applyFinishers runs the cross-cutting post passes a completed
// area-selection gesture is subject to: dilation, edge refinement,
// and feathering, in that order. The passes run on the gesture's own
// produced mask, which is then composited additively into the preview,
// so coverage committed by earlier gestures is never regraded.
func applyFinishers(tc *ToolContext, produced *RoomMask) {
	sel := tc.Selection
	if sel.DilateBy5px {
		Dilate(produced, DilateRadius)
	}
	if sel.EdgeRefinementWidth > 0 {
		RefineEdges(produced, sel.EdgeRefinementWidth)
	}
	if sel.SelectionFeather > 0 {
		Feather(produced, sel.SelectionFeather)
	}
	compositeMax(tc.Preview, produced)
}

// compositeMax merges src into dst, keeping the per-pixel maximum
// alpha. Masks of mismatched dimensions merge nothing.
func compositeMax(dst, src *RoomMask) {
	if dst == nil || src == nil ||
		dst.Width() != src.Width() || dst.Height() != src.Height() {
		return
	}
	dd, sd := dst.Data(), src.Data()
	for i, v := range sd {
		if v > dd[i] {
			dd[i] = v
		}
	}
	dst.MarkDirty()
}
