// Command segtool runs the room segmentation engine headlessly: it
// loads a map image, performs a wand or lasso selection, and writes the
// resulting mask, manifest, and extracted polygon. Useful for tuning
// tool parameters against real maps without the editor UI.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/mapforge/segment"
	roomsqlite "github.com/mapforge/segment/roomstore/sqlite"
)

// config holds environment-variable defaults; flags override.
type config struct {
	Levels    int     `env:"SEGTOOL_LEVELS" envDefault:"4"`
	Smooth    int     `env:"SEGTOOL_SMOOTH" envDefault:"1"`
	Tolerance float64 `env:"SEGTOOL_TOLERANCE" envDefault:"0.12"`
	DBPath    string  `env:"SEGTOOL_DB"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	var (
		imagePath = flag.String("image", "", "map image to segment (PNG)")
		tool      = flag.String("tool", "wand", "tool to run: wand or lasso")
		seedX     = flag.Float64("x", 0.5, "normalized seed/center x")
		seedY     = flag.Float64("y", 0.5, "normalized seed/center y")
		radius    = flag.Float64("radius", 0.2, "normalized lasso radius")
		tolerance = flag.Float64("tolerance", cfg.Tolerance, "wand tolerance")
		levels    = flag.Int("levels", cfg.Levels, "cost pyramid levels")
		smooth    = flag.Int("smooth", cfg.Smooth, "cost smoothing passes")
		name      = flag.String("name", "Room", "room name")
		maskOut   = flag.String("mask", "mask.png", "output mask PNG")
		jsonOut   = flag.String("json", "room.json", "output manifest+polygon JSON")
		dbPath    = flag.String("db", cfg.DBPath, "optional sqlite room store")
	)
	flag.Parse()

	if *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	img, err := loadPNG(*imagePath)
	if err != nil {
		log.Fatalf("load image: %v", err)
	}

	store := segment.NewDefineRoomsStore(nil, nil)
	if err := store.PrepareImage(img,
		segment.WithLevels(*levels),
		segment.WithSmoothIterations(*smooth)); err != nil {
		log.Fatalf("prepare image: %v", err)
	}
	if err := store.StartEditing(""); err != nil {
		log.Fatalf("start editing: %v", err)
	}

	sel := segment.DefaultSelectionState()
	sel.WandTolerance = *tolerance
	center := segment.Pt(*seedX, *seedY)

	switch *tool {
	case "wand":
		sel.ActiveTool = segment.ToolAutoWand
		store.SetSelection(sel)
		store.PointerDown(center, segment.PointerState{})
		store.PointerUp(center, segment.PointerState{})
	case "lasso":
		sel.ActiveTool = segment.ToolLasso
		store.SetSelection(sel)
		dragCircle(store, center, *radius)
	default:
		log.Fatalf("unknown tool %q", *tool)
	}

	room, err := store.Finish(*name)
	if err != nil {
		log.Fatalf("finish: %v", err)
	}

	if err := writeMaskPNG(*maskOut, room.Mask); err != nil {
		log.Fatalf("write mask: %v", err)
	}
	if err := writeReport(*jsonOut, room); err != nil {
		log.Fatalf("write report: %v", err)
	}
	if *dbPath != "" {
		if err := persist(*dbPath, room); err != nil {
			log.Fatalf("persist room: %v", err)
		}
	}

	bounds := room.Mask.Bounds()
	log.Printf("room %s: %d px covered, bounds (%.3f,%.3f)-(%.3f,%.3f)",
		room.ID, room.Mask.CoveredPixels(),
		bounds.MinX, bounds.MinY, bounds.MaxX, bounds.MaxY)
}

// dragCircle drives the lasso through a circular drag around center.
func dragCircle(store *segment.DefineRoomsStore, center segment.Point, radius float64) {
	const steps = 64
	pointAt := func(i int) segment.Point {
		angle := 2 * math.Pi * float64(i) / steps
		return segment.Pt(
			center.X+radius*math.Cos(angle),
			center.Y+radius*math.Sin(angle),
		)
	}
	store.PointerDown(pointAt(0), segment.PointerState{})
	for i := 1; i < steps; i++ {
		store.PointerMove(pointAt(i), segment.PointerState{})
	}
	store.PointerUp(pointAt(0), segment.PointerState{})
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Decode(f)
}

func writeMaskPNG(path string, m *segment.RoomMask) error {
	img := image.NewGray(image.Rect(0, 0, m.Width(), m.Height()))
	copy(img.Pix, m.Data())
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, img)
}

func writeReport(path string, room *segment.Room) error {
	report := struct {
		Manifest segment.Manifest `json:"manifest"`
		Polygon  []segment.Point  `json:"polygon"`
	}{
		Manifest: room.Manifest,
		Polygon:  segment.MaskToPolygon(room.Mask),
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func persist(path string, room *segment.Room) error {
	db, err := roomsqlite.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()
	if err := db.SaveRoom(context.Background(), "default", room); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

