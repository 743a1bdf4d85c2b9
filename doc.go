// Package segment implements the interactive raster segmentation engine
// behind the "define rooms" authoring step of a battle-map editor.
//
// # Overview
//
// An author outlines a room's footprint on a map image with one of four
// tools (paintbrush, freehand lasso, edge-snapping smart lasso, or a
// tolerance-based magic wand) and the engine turns the result into a
// bounded alpha mask that can be persisted and rendered independently.
//
// # Quick Start
//
//	import "github.com/mapforge/segment"
//
//	// Decode the map image however you like, then wrap it.
//	raster, _ := segment.NewRaster(img)
//
//	// Build the edge-cost pyramid once per image.
//	pyramid := segment.BuildCostPyramid(raster, segment.WithLevels(4))
//
//	// Drive tools through the store.
//	store := segment.NewDefineRoomsStore(raster, pyramid)
//	store.StartEditing("")
//	store.SetActiveTool(segment.ToolAutoWand)
//	store.PointerDown(segment.Pt(0.5, 0.5), segment.PointerState{})
//	store.PointerUp(segment.Pt(0.5, 0.5), segment.PointerState{})
//	room, _ := store.Finish("Great Hall")
//
// # Architecture
//
// The engine is layered leaf-first:
//   - Cost field and pyramid: per-pixel edge cost from the source image,
//     downsampled for coarse-to-fine search (cost.go, pyramid.go)
//   - Live-wire tracer: shortest-path boundary finder over the pyramid
//     (livewire.go)
//   - Signed distance field: linear-time distance transform of a mask
//     (sdf.go)
//   - RoomMask model: bounded raster mask, polygon extraction, portable
//     encoding (mask.go, polygon.go, encode.go)
//   - Tools: Paintbrush, Lasso, SmartLasso, AutoWand (tool_*.go)
//   - DefineRoomsStore: the authoring state machine (store.go)
//
// # Coordinate System
//
// Points are normalized to [0, 1] in both axes relative to the image,
// origin at the top-left, X right, Y down. Raster buffers are addressed
// in pixels; conversion happens at the tool boundary.
//
// # Concurrency
//
// The engine is single-threaded by design: tools and the store are
// driven from one pointer-event goroutine and perform no locking.
// Subscribers are notified synchronously, in registration order, after
// every mutation.
package segment
