package segment

import (
	"image"
	"image/color"
	"testing"
)

// testImage builds an NRGBA image by calling fill for every pixel.
func testImage(w, h int, fill func(x, y int) color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fill(x, y))
		}
	}
	return img
}

// gray returns an opaque gray pixel.
func gray(v uint8) color.NRGBA {
	return color.NRGBA{R: v, G: v, B: v, A: 255}
}

// squareImage is a dark background with a uniform bright square,
// the canonical wand/lasso test scene.
func squareImage(w, h, x0, y0, size int) *image.NRGBA {
	return testImage(w, h, func(x, y int) color.NRGBA {
		if x >= x0 && x < x0+size && y >= y0 && y < y0+size {
			return gray(220)
		}
		return gray(30)
	})
}

// mustRaster wraps an image, failing the test on error.
func mustRaster(t *testing.T, img image.Image) *Raster {
	t.Helper()
	r, err := NewRaster(img)
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	return r
}

// fillRect paints a solid rectangle into a mask.
func fillRect(m *RoomMask, x0, y0, x1, y1 int, value uint8) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			m.Set(x, y, value)
		}
	}
}
