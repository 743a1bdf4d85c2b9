package segment

import "errors"

// ErrUndecodableRaster indicates the source image could not be wrapped
// for segmentation (nil or zero-area). Editing mode survives this:
// callers keep the empty draft and may retry with a different image or
// tool.
var ErrUndecodableRaster = errors.New("segment: undecodable source raster")

// ErrEmptyMask indicates a commit was attempted on a draft with no
// coverage (or a degenerate, sub-triangle outline). Callers disable the
// commit affordance rather than surfacing this to the author.
var ErrEmptyMask = errors.New("segment: mask has no coverage")

// ErrNotEditing indicates a mutation that requires editing mode was
// invoked while the store was idle.
var ErrNotEditing = errors.New("segment: store is not in editing mode")

// ErrUnknownRoom indicates a room id that is not in the store's list.
var ErrUnknownRoom = errors.New("segment: unknown room id")
