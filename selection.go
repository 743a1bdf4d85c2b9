package segment

// ToolID identifies a segmentation tool. Unrecognized ids dispatch to
// the default tool (SmartLasso) so future tool additions degrade
// gracefully instead of failing.
type ToolID string

const (
	// ToolPaintbrush stamps filled circles along the drag.
	ToolPaintbrush ToolID = "paintbrush"

	// ToolLasso accumulates raw pointer samples into a polygon.
	ToolLasso ToolID = "lasso"

	// ToolSmartLasso resolves each drag leg through the live-wire
	// tracer so the outline snaps to detected edges.
	ToolSmartLasso ToolID = "smart-lasso"

	// ToolAutoWand region-grows from the clicked pixel by color
	// similarity.
	ToolAutoWand ToolID = "auto-wand"
)

// SelectionState holds the active tool and every tool parameter, plus
// the working selection mask. It contains only plain values and one
// mask pointer, so it serializes trivially.
type SelectionState struct {
	ActiveTool ToolID

	// Mask is the committed working selection. Nil until the first
	// completed gesture of an editing session.
	Mask *RoomMask

	// BrushRadius is the paintbrush radius in pixels of the working
	// raster. BrushHardness in [0, 1] controls the alpha falloff from
	// the stamp center: 1 is a hard edge, 0 a smooth radial gradient.
	BrushRadius   float64
	BrushHardness float64

	// WandTolerance bounds color/luminance similarity for AutoWand,
	// in [0, 1] of the value range. WandContiguous selects flood fill
	// over global thresholding. WandSampleAllLayers compares full RGB
	// color distance instead of luminance alone. WandAntiAlias grades
	// boundary alpha by coverage instead of producing a hard mask.
	WandTolerance       float64
	WandContiguous      bool
	WandSampleAllLayers bool
	WandAntiAlias       bool

	// SelectionFeather and EdgeRefinementWidth post-process a raw
	// selection with distance-based smoothing, in pixels.
	SelectionFeather    float64
	EdgeRefinementWidth float64

	// SmartStickiness in [0, 1] blends the smart lasso between the raw
	// cursor polyline (0) and the fully edge-snapped trace (1).
	// SnapStrength scales how far a leg may deviate from the cursor to
	// reach an edge.
	SmartStickiness float64
	SnapStrength    float64

	// DilateBy5px applies a uniform 5 px dilation to any produced mask
	// to cover wall thickness and rendering gaps.
	DilateBy5px bool
}

// DefaultSelectionState returns the parameters a fresh editing session
// starts with.
func DefaultSelectionState() SelectionState {
	return SelectionState{
		ActiveTool:      ToolSmartLasso,
		BrushRadius:     12,
		BrushHardness:   0.8,
		WandTolerance:   0.12,
		WandContiguous:  true,
		WandAntiAlias:   true,
		SmartStickiness: 0.85,
		SnapStrength:    1,
	}
}
